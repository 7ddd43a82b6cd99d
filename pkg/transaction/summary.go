package transaction

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// monthFormat keys monthly aggregates, e.g. "2023-01"
const monthFormat = "2006-01"

// Totals is the deposit/withdrawal summary over a set of transactions
type Totals struct {
	Deposit  decimal.Decimal `json:"total_deposit"`
	Withdraw decimal.Decimal `json:"total_withdraw"`
	Net      decimal.Decimal `json:"net"`
}

// MonthTotal aggregates deposits and withdrawals for one calendar month
type MonthTotal struct {
	Month    string          `json:"month"`
	Deposit  decimal.Decimal `json:"deposit"`
	Withdraw decimal.Decimal `json:"withdraw"`
}

// CategoryTotal is the withdrawn amount for one category within a month
type CategoryTotal struct {
	Month    string          `json:"month"`
	Category string          `json:"category"`
	Withdraw decimal.Decimal `json:"withdraw"`
}

// BalancePoint is one sample of the running balance
type BalancePoint struct {
	Date    time.Time       `json:"date"`
	Balance decimal.Decimal `json:"balance"`
}

// Totals sums deposits and withdrawals. Net is deposits minus withdrawals.
func (tl *TransactionList) Totals() Totals {
	var totals Totals
	for _, t := range tl.Transactions {
		totals.Deposit = totals.Deposit.Add(t.Deposit)
		totals.Withdraw = totals.Withdraw.Add(t.Withdraw)
	}
	totals.Net = totals.Deposit.Sub(totals.Withdraw)
	return totals
}

// MonthlySummary groups deposits and withdrawals by month, oldest first
func (tl *TransactionList) MonthlySummary() []MonthTotal {
	byMonth := make(map[string]*MonthTotal)
	for _, t := range tl.Transactions {
		key := t.TxnDate.Format(monthFormat)
		mt, ok := byMonth[key]
		if !ok {
			mt = &MonthTotal{Month: key}
			byMonth[key] = mt
		}
		mt.Deposit = mt.Deposit.Add(t.Deposit)
		mt.Withdraw = mt.Withdraw.Add(t.Withdraw)
	}

	out := make([]MonthTotal, 0, len(byMonth))
	for _, mt := range byMonth {
		out = append(out, *mt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// CategoryBreakdown sums withdrawals per month and category. Deposits are
// ignored. Results are ordered by month, then category name.
func (tl *TransactionList) CategoryBreakdown() []CategoryTotal {
	type key struct{ month, category string }
	sums := make(map[key]decimal.Decimal)
	for _, t := range tl.Transactions {
		if !t.IsWithdrawal() {
			continue
		}
		k := key{t.TxnDate.Format(monthFormat), t.Category}
		sums[k] = sums[k].Add(t.Withdraw)
	}

	out := make([]CategoryTotal, 0, len(sums))
	for k, v := range sums {
		out = append(out, CategoryTotal{Month: k.month, Category: k.category, Withdraw: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// BalanceSeries returns the stated balance after each transaction ordered by
// TxnDate. Same-day transactions keep statement order.
func (tl *TransactionList) BalanceSeries() []BalancePoint {
	out := make([]BalancePoint, 0, len(tl.Transactions))
	for _, t := range tl.Transactions {
		out = append(out, BalancePoint{Date: t.TxnDate, Balance: t.Balance})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
