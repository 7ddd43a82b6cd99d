// Package export writes transaction tables as CSV or XLSX files.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"

	"github.com/example/statement-analyzer/pkg/transaction"
)

// Format is an export file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const (
	dateFormat = "2006-01-02"
	sheetName  = "Transactions"
)

// ParseFormat validates a user supplied format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	case "":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// ContentType returns the MIME type for the format
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// FileName returns the download name used for an export in this format
func (f Format) FileName() string {
	return "filtered_transactions." + string(f)
}

// Row is the flat export layout of one transaction
type Row struct {
	TxnDate     string `csv:"Txn Date"`
	ValueDate   string `csv:"Value Date"`
	Description string `csv:"Description"`
	Withdraw    string `csv:"Withdraw"`
	Deposit     string `csv:"Deposit"`
	Balance     string `csv:"Balance"`
	Month       int    `csv:"Month"`
	Year        int    `csv:"Year"`
	Category    string `csv:"Category"`
}

// Header lists the export columns in order
var Header = []string{"Txn Date", "Value Date", "Description", "Withdraw", "Deposit", "Balance", "Month", "Year", "Category"}

// Rows flattens tl into export rows
func Rows(tl *transaction.TransactionList) []*Row {
	rows := make([]*Row, 0, len(tl.Transactions))
	for _, t := range tl.Transactions {
		rows = append(rows, &Row{
			TxnDate:     t.TxnDate.Format(dateFormat),
			ValueDate:   t.ValueDate.Format(dateFormat),
			Description: t.Description,
			Withdraw:    t.Withdraw.StringFixed(2),
			Deposit:     t.Deposit.StringFixed(2),
			Balance:     t.Balance.StringFixed(2),
			Month:       t.Month,
			Year:        t.Year,
			Category:    t.Category,
		})
	}
	return rows
}

// Write writes tl to w in the given format
func Write(w io.Writer, format Format, tl *transaction.TransactionList) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, tl)
	case FormatXLSX:
		return WriteXLSX(w, tl)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// WriteCSV writes a UTF-8 CSV with a header row
func WriteCSV(w io.Writer, tl *transaction.TransactionList) error {
	if err := gocsv.Marshal(Rows(tl), w); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// WriteXLSX writes a workbook with a single Transactions sheet
func WriteXLSX(w io.Writer, tl *transaction.TransactionList) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, t := range tl.Transactions {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		withdraw, _ := t.Withdraw.Float64()
		deposit, _ := t.Deposit.Float64()
		balance, _ := t.Balance.Float64()
		row := []interface{}{
			t.TxnDate.Format(dateFormat),
			t.ValueDate.Format(dateFormat),
			t.Description,
			withdraw,
			deposit,
			balance,
			t.Month,
			t.Year,
			t.Category,
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
