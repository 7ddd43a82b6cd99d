// Package statement classifies the text lines of a Global IME Bank statement
// and parses transaction rows into typed records.
package statement

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// UnknownHolder is the account holder reported when no header names one
const UnknownHolder = "Unknown"

// PeriodDateFormat is the layout of the statement period dates (DD-MM-YYYY)
const PeriodDateFormat = "02-01-2006"

const (
	accountNameMarker = "Account Name"
	periodMarker      = "Electronic Account Statement From"
)

var (
	accountNameRe = regexp.MustCompile(`Account Name\s+(.*?)\s+Opening Balance`)
	periodRe      = regexp.MustCompile(`From (\d{2}-\d{2}-\d{4}) To (\d{2}-\d{2}-\d{4})`)
)

// Metadata is the statement header information extracted once per document
type Metadata struct {
	AccountHolder string `json:"account_holder"`
	PeriodStart   string `json:"period_start,omitempty"`
	PeriodEnd     string `json:"period_end,omitempty"`
}

// NewMetadata returns metadata with every field at its default
func NewMetadata() Metadata {
	return Metadata{AccountHolder: UnknownHolder}
}

// HasHolder reports whether an account holder was found
func (m Metadata) HasHolder() bool {
	return m.AccountHolder != "" && m.AccountHolder != UnknownHolder
}

// HasPeriod reports whether both period bounds were found
func (m Metadata) HasPeriod() bool {
	return m.PeriodStart != "" && m.PeriodEnd != ""
}

// Complete reports whether every field has been found
func (m Metadata) Complete() bool {
	return m.HasHolder() && m.HasPeriod()
}

// Found reports whether any field has been found
func (m Metadata) Found() bool {
	return m.HasHolder() || m.HasPeriod()
}

// Merge fills the fields of m that are still unset from other.
// Fields already set are never overwritten.
func (m *Metadata) Merge(other Metadata) {
	if !m.HasHolder() && other.HasHolder() {
		m.AccountHolder = other.AccountHolder
	}
	if !m.HasPeriod() && other.HasPeriod() {
		m.PeriodStart = other.PeriodStart
		m.PeriodEnd = other.PeriodEnd
	}
}

// Period parses the raw period bounds
func (m Metadata) Period() (start, end time.Time, err error) {
	if !m.HasPeriod() {
		return time.Time{}, time.Time{}, fmt.Errorf("statement period not found")
	}
	start, err = time.Parse(PeriodDateFormat, m.PeriodStart)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("failed to parse period start: %w", err)
	}
	end, err = time.Parse(PeriodDateFormat, m.PeriodEnd)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("failed to parse period end: %w", err)
	}
	return start, end, nil
}

// ClassifyMetadata scans lines for the account holder and statement period
// headers. The first match for each field wins.
func ClassifyMetadata(lines []string) Metadata {
	meta := NewMetadata()
	for _, line := range lines {
		switch {
		case strings.Contains(line, accountNameMarker):
			if meta.HasHolder() {
				continue
			}
			if m := accountNameRe.FindStringSubmatch(line); m != nil {
				if holder := strings.TrimSpace(m[1]); holder != "" {
					meta.AccountHolder = holder
				}
			}
		case strings.Contains(line, periodMarker):
			if meta.HasPeriod() {
				continue
			}
			if m := periodRe.FindStringSubmatch(line); m != nil {
				meta.PeriodStart, meta.PeriodEnd = m[1], m[2]
			}
		}
	}
	return meta
}
