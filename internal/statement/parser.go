package statement

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/statement-analyzer/pkg/transaction"
)

// TxnDateFormat is the layout of the transaction and value date columns
const TxnDateFormat = "2006-01-02"

// Both patterns anchor on a literal "-" placeholder in the unused amount
// column. They are tried in order and the first match wins.
var (
	withdrawalRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\s+(\d{4}-\d{2}-\d{2})\s+(.*?)\s+([\d,]+\.\d{2})\s+-\s+([\d,]+\.\d{2})$`)
	depositRe    = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\s+(\d{4}-\d{2}-\d{2})\s+(.*?)\s+-\s+([\d,]+\.\d{2})\s+([\d,]+\.\d{2})$`)
)

// ParseLine parses one statement row into a transaction. It returns false for
// headers, footers, wrapped description text and anything else that is not a
// complete withdrawal or deposit row.
func ParseLine(line string) (transaction.Transaction, bool) {
	line = strings.TrimSpace(line)
	if m := withdrawalRe.FindStringSubmatch(line); m != nil {
		return buildTransaction(m, true)
	}
	if m := depositRe.FindStringSubmatch(line); m != nil {
		return buildTransaction(m, false)
	}
	return transaction.Transaction{}, false
}

// buildTransaction converts regex groups (txn date, value date, description,
// amount, balance) into a record.
func buildTransaction(m []string, withdrawal bool) (transaction.Transaction, bool) {
	txnDate, err := time.Parse(TxnDateFormat, m[1])
	if err != nil {
		return transaction.Transaction{}, false
	}
	valueDate, err := time.Parse(TxnDateFormat, m[2])
	if err != nil {
		return transaction.Transaction{}, false
	}
	// a zero amount would leave both Withdraw and Deposit unset
	amount, err := ParseAmount(m[4])
	if err != nil || amount.IsZero() {
		return transaction.Transaction{}, false
	}
	balance, err := ParseAmount(m[5])
	if err != nil {
		return transaction.Transaction{}, false
	}

	t := transaction.Transaction{
		TxnDate:     txnDate,
		ValueDate:   valueDate,
		Description: strings.TrimSpace(m[3]),
		Withdraw:    decimal.Zero,
		Deposit:     decimal.Zero,
		Balance:     balance,
	}
	if withdrawal {
		t.Withdraw = amount
	} else {
		t.Deposit = amount
	}
	return t, true
}

// ParseAmount converts a statement amount such as "1,234.56" to a decimal
func ParseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
}
