package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/statement-analyzer/internal/statement"
	"github.com/example/statement-analyzer/pkg/transaction"
)

func TestFormatter(t *testing.T) {
	usd := NewFormatter("USD")
	assert.Equal(t, "$1,234.56", usd.Format(decimal.RequireFromString("1234.56")))
	assert.Equal(t, "$0.00", usd.Format(decimal.Zero))

	npr := NewFormatter("NPR")
	assert.Contains(t, npr.Format(decimal.RequireFromString("1234.56")), "1,234.56")

	fallback := NewFormatter("???")
	assert.Equal(t, npr.Format(decimal.RequireFromString("10")), fallback.Format(decimal.RequireFromString("10")))
}

func TestWrite(t *testing.T) {
	tl := &transaction.TransactionList{}
	tl.AddTransaction(transaction.Transaction{
		TxnDate:  time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC),
		Withdraw: decimal.RequireFromString("500"),
		Category: "Cash Withdrawal",
	})
	tl.AddTransaction(transaction.Transaction{
		TxnDate:  time.Date(2023, 1, 6, 0, 0, 0, 0, time.UTC),
		Deposit:  decimal.RequireFromString("20000"),
		Category: "Transfers",
	})
	meta := statement.Metadata{AccountHolder: "RAM BAHADUR THAPA", PeriodStart: "01-01-2023"}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, NewFormatter("USD"), meta, tl))

	out := buf.String()
	assert.Contains(t, out, "RAM BAHADUR THAPA")
	assert.Contains(t, out, "01-01-2023")
	assert.Regexp(t, `To:\s+-`, out)
	assert.Regexp(t, `Total Deposits:\s+\$20,000\.00`, out)
	assert.Regexp(t, `Total Withdrawals:\s+\$500\.00`, out)
	assert.Regexp(t, `Remaining Balance:\s+\$19,500\.00`, out)
	assert.Regexp(t, `2023-01\s+\$20,000\.00\s+\$500\.00`, out)
	assert.Regexp(t, `2023-01\s+Cash Withdrawal\s+\$500\.00`, out)
	assert.NotContains(t, out, "Transfers")
	assert.NotContains(t, out, "Days Covered")
}

func TestWrite_PeriodLength(t *testing.T) {
	tl := &transaction.TransactionList{}
	tl.AddTransaction(transaction.Transaction{
		TxnDate:  time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC),
		Withdraw: decimal.RequireFromString("500"),
	})
	meta := statement.Metadata{AccountHolder: "SITA", PeriodStart: "01-01-2023", PeriodEnd: "28-02-2023"}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, NewFormatter("USD"), meta, tl))

	assert.Regexp(t, `Days Covered:\s+59\n`, buf.String())
}
