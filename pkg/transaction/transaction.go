package transaction

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single statement line item
type Transaction struct {
	ID          string          `json:"id"`
	TxnDate     time.Time       `json:"txn_date"`
	ValueDate   time.Time       `json:"value_date"`
	Description string          `json:"description"`
	Withdraw    decimal.Decimal `json:"withdraw"`
	Deposit     decimal.Decimal `json:"deposit"`
	Balance     decimal.Decimal `json:"balance"`
	Month       int             `json:"month,omitempty"`
	Year        int             `json:"year,omitempty"`
	Category    string          `json:"category,omitempty"`
}

// IsWithdrawal reports whether money left the account
func (t Transaction) IsWithdrawal() bool {
	return t.Withdraw.IsPositive()
}

// TransactionList holds a collection of transactions
type TransactionList struct {
	Transactions []Transaction `json:"transactions"`
	Total        int           `json:"total"`
	Source       string        `json:"source"`
	ProcessedAt  time.Time     `json:"processed_at"`
}

// AddTransaction appends a transaction to the list
func (tl *TransactionList) AddTransaction(t Transaction) {
	tl.Transactions = append(tl.Transactions, t)
	tl.Total = len(tl.Transactions)
}

// Empty reports whether the list holds no transactions
func (tl *TransactionList) Empty() bool {
	return len(tl.Transactions) == 0
}

// DeriveCalendarFields sets Month and Year from each transaction's TxnDate
func (tl *TransactionList) DeriveCalendarFields() {
	for i := range tl.Transactions {
		t := &tl.Transactions[i]
		t.Month = int(t.TxnDate.Month())
		t.Year = t.TxnDate.Year()
	}
}

// FilterByCategory returns a new list holding the transactions labelled with
// category, compared case-insensitively. An empty category keeps everything.
func (tl *TransactionList) FilterByCategory(category string) *TransactionList {
	out := &TransactionList{Source: tl.Source, ProcessedAt: tl.ProcessedAt}
	for _, t := range tl.Transactions {
		if category == "" || strings.EqualFold(t.Category, category) {
			out.AddTransaction(t)
		}
	}
	return out
}

// FilterByDate returns a new list holding the transactions whose TxnDate falls
// within [from, to]. A zero bound leaves that side open.
func (tl *TransactionList) FilterByDate(from, to time.Time) *TransactionList {
	out := &TransactionList{Source: tl.Source, ProcessedAt: tl.ProcessedAt}
	for _, t := range tl.Transactions {
		if !from.IsZero() && t.TxnDate.Before(from) {
			continue
		}
		if !to.IsZero() && t.TxnDate.After(to) {
			continue
		}
		out.AddTransaction(t)
	}
	return out
}
