// Package report renders a plain-text account summary.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/example/statement-analyzer/internal/statement"
	"github.com/example/statement-analyzer/pkg/transaction"
)

// Formatter renders decimal amounts in one currency
type Formatter struct {
	currency string
}

// NewFormatter returns a Formatter for an ISO 4217 code. Unknown codes fall
// back to NPR.
func NewFormatter(currency string) *Formatter {
	if money.GetCurrency(currency) == nil {
		currency = "NPR"
	}
	return &Formatter{currency: currency}
}

// Format renders d with the currency's grouping and symbol
func (f *Formatter) Format(d decimal.Decimal) string {
	return money.New(d.Shift(2).Round(0).IntPart(), f.currency).Display()
}

// Write renders the summary of tl and meta to w
func Write(w io.Writer, f *Formatter, meta statement.Metadata, tl *transaction.TransactionList) error {
	totals := tl.Totals()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Account Holder:\t%s\n", meta.AccountHolder)
	fmt.Fprintf(tw, "From:\t%s\n", orNone(meta.PeriodStart))
	fmt.Fprintf(tw, "To:\t%s\n", orNone(meta.PeriodEnd))
	if start, end, err := meta.Period(); err == nil {
		fmt.Fprintf(tw, "Days Covered:\t%d\n", int(end.Sub(start).Hours()/24)+1)
	}
	fmt.Fprintf(tw, "Transactions:\t%d\n", tl.Total)
	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "Total Deposits:\t%s\n", f.Format(totals.Deposit))
	fmt.Fprintf(tw, "Total Withdrawals:\t%s\n", f.Format(totals.Withdraw))
	fmt.Fprintf(tw, "Remaining Balance:\t%s\n", f.Format(totals.Net))

	if months := tl.MonthlySummary(); len(months) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "Month\tDeposit\tWithdraw")
		for _, m := range months {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", m.Month, f.Format(m.Deposit), f.Format(m.Withdraw))
		}
	}

	if breakdown := tl.CategoryBreakdown(); len(breakdown) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "Month\tCategory\tWithdraw")
		for _, c := range breakdown {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Month, c.Category, f.Format(c.Withdraw))
		}
	}

	return tw.Flush()
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
