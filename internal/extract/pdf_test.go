package extract

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// statementPDF renders a three page statement. Page 2 carries only a filled
// rectangle, standing in for a scanned page without a text layer.
func statementPDF(t *testing.T) []byte {
	t.Helper()

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetCompression(false)
	doc.SetFont("Helvetica", "", 10)

	writePage := func(lines ...string) {
		doc.AddPage()
		for i, line := range lines {
			doc.Text(15, 20+float64(i)*8, line)
		}
	}

	writePage(
		"Electronic Account Statement From 01-01-2023 To 28-02-2023",
		"Account Name RAM BAHADUR THAPA Opening Balance 10,500.00",
		"Txn Date Value Date Description Withdraw Deposit Balance",
		"2023-01-05 2023-01-05 ATM CASH WITHDRAWAL 500.00 - 10,000.00",
	)

	doc.AddPage()
	doc.SetFillColor(200, 200, 200)
	doc.Rect(15, 20, 180, 250, "F")

	writePage(
		"2023-01-06 2023-01-07 SALARY TRANSFER - 20,000.00 30,000.00",
		"2023-02-01 2023-02-01 DARAZ ONLINE STORE 1,234.56 - 28,765.44",
		"Page 3 of 3",
	)

	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}

func TestOpenPDF_Pages(t *testing.T) {
	data := statementPDF(t)

	doc, err := OpenPDF(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Equal(t, 3, doc.NumPage())

	lines, err := doc.PageLines(1)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Electronic Account Statement From 01-01-2023 To 28-02-2023",
		"Account Name RAM BAHADUR THAPA Opening Balance 10,500.00",
		"Txn Date Value Date Description Withdraw Deposit Balance",
		"2023-01-05 2023-01-05 ATM CASH WITHDRAWAL 500.00 - 10,000.00",
	}, lines)

	_, err = doc.PageLines(2)
	var pageErr *PageTextExtractionError
	require.True(t, errors.As(err, &pageErr))
	assert.Equal(t, 2, pageErr.Page)
	assert.ErrorIs(t, err, ErrNoTextLayer)

	_, err = doc.PageLines(4)
	assert.Error(t, err)
}

func TestExtract_GeneratedPDF(t *testing.T) {
	result, err := New().Extract(context.Background(), bytes.NewReader(statementPDF(t)))
	require.NoError(t, err)
	require.NoError(t, result.Validate())

	assert.Equal(t, "RAM BAHADUR THAPA", result.Metadata.AccountHolder)
	assert.Equal(t, "01-01-2023", result.Metadata.PeriodStart)
	assert.Equal(t, "28-02-2023", result.Metadata.PeriodEnd)
	assert.Equal(t, []int{2}, result.SkippedPages)

	txns := result.Transactions.Transactions
	require.Len(t, txns, 3)

	assert.Equal(t, "ATM CASH WITHDRAWAL", txns[0].Description)
	assert.Equal(t, "500", txns[0].Withdraw.String())
	assert.True(t, txns[0].Deposit.IsZero())

	assert.Equal(t, "SALARY TRANSFER", txns[1].Description)
	assert.Equal(t, "20000", txns[1].Deposit.String())
	assert.Equal(t, 7, txns[1].ValueDate.Day())

	assert.Equal(t, "DARAZ ONLINE STORE", txns[2].Description)
	assert.Equal(t, "1234.56", txns[2].Withdraw.String())
	assert.Equal(t, "28765.44", txns[2].Balance.String())
	assert.Equal(t, 2, txns[2].Month)
	assert.Equal(t, 2023, txns[2].Year)

	for _, txn := range txns {
		assert.NotEmpty(t, txn.ID)
	}
}
