package statement

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine_Withdrawal(t *testing.T) {
	txn, ok := ParseLine("2023-01-05 2023-01-05 ATM CASH WITHDRAWAL    500.00 - 10,000.00")
	require.True(t, ok)

	assert.Equal(t, time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC), txn.TxnDate)
	assert.Equal(t, time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC), txn.ValueDate)
	assert.Equal(t, "ATM CASH WITHDRAWAL", txn.Description)
	assert.True(t, txn.Withdraw.Equal(decimal.RequireFromString("500.00")), txn.Withdraw.String())
	assert.True(t, txn.Deposit.IsZero())
	assert.True(t, txn.Balance.Equal(decimal.RequireFromString("10000.00")), txn.Balance.String())
}

func TestParseLine_Deposit(t *testing.T) {
	txn, ok := ParseLine("2023-01-06 2023-01-06 SALARY TRANSFER - 20,000.00 30,000.00")
	require.True(t, ok)

	assert.Equal(t, "SALARY TRANSFER", txn.Description)
	assert.True(t, txn.Deposit.Equal(decimal.RequireFromString("20000.00")), txn.Deposit.String())
	assert.True(t, txn.Withdraw.IsZero())
	assert.True(t, txn.Balance.Equal(decimal.RequireFromString("30000.00")), txn.Balance.String())
}

func TestParseLine_ValueDateDiffers(t *testing.T) {
	txn, ok := ParseLine("  2023-03-31 2023-04-01 INTEREST CAPITALIZED - 12.34 1,000,012.34  ")
	require.True(t, ok)

	assert.Equal(t, time.March, txn.TxnDate.Month())
	assert.Equal(t, time.April, txn.ValueDate.Month())
	assert.True(t, txn.Balance.Equal(decimal.RequireFromString("1000012.34")))
}

func TestParseLine_DescriptionWithDash(t *testing.T) {
	txn, ok := ParseLine("2023-02-10 2023-02-10 MOS: NCELL - TOPUP 100.00 - 9,900.00")
	require.True(t, ok)

	assert.Equal(t, "MOS: NCELL - TOPUP", txn.Description)
	assert.True(t, txn.Withdraw.Equal(decimal.RequireFromString("100")))
	assert.True(t, txn.Deposit.IsZero())
}

func TestParseLine_Unmatched(t *testing.T) {
	lines := map[string]string{
		"empty":             "",
		"header":            "Txn Date Value Date Description Withdraw Deposit Balance",
		"missing balance":   "2023-01-05 2023-01-05 ATM CASH WITHDRAWAL 500.00 -",
		"no placeholder":    "2023-01-05 2023-01-05 ATM CASH WITHDRAWAL 500.00 10,000.00",
		"continuation":      "REF 123456789 KATHMANDU",
		"one fraction":      "2023-01-05 2023-01-05 ATM 500.0 - 10,000.00",
		"bad calendar date": "2023-02-30 2023-02-30 ATM 500.00 - 10,000.00",
		"footer":            "Page 1 of 3",
		"zero withdrawal":   "2023-01-05 2023-01-05 REVERSAL 0.00 - 10,000.00",
		"zero deposit":      "2023-01-05 2023-01-05 REVERSAL - 0.00 10,000.00",
	}
	for name, line := range lines {
		t.Run(name, func(t *testing.T) {
			_, ok := ParseLine(line)
			assert.False(t, ok)
		})
	}
}

func TestParseAmount(t *testing.T) {
	d, err := ParseAmount("1,234.56")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("1234.56")))
	assert.Equal(t, "1234.56", d.StringFixed(2))

	d, err = ParseAmount("0.05")
	require.NoError(t, err)
	assert.Equal(t, "0.05", d.String())

	_, err = ParseAmount("abc")
	assert.Error(t, err)
}
