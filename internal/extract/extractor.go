// Package extract turns a statement PDF into a transaction table plus the
// statement metadata.
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/example/statement-analyzer/internal/logger"
	"github.com/example/statement-analyzer/internal/statement"
	"github.com/example/statement-analyzer/pkg/transaction"
)

// Source identifies the statement layout this package understands
const Source = "Global IME Bank"

var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("statement-analyzer/transaction"))

// Result is the outcome of one extraction. It is not modified after it is
// returned.
type Result struct {
	Transactions *transaction.TransactionList `json:"transactions"`
	Metadata     statement.Metadata           `json:"metadata"`
	SkippedPages []int                        `json:"skipped_pages,omitempty"`
}

// Validate tells a usable statement apart from an unrecognized document.
// An empty table is accepted only as ErrNoTransactions when the statement
// headers were found.
func (r *Result) Validate() error {
	if !r.Transactions.Empty() {
		return nil
	}
	if r.Metadata.Found() {
		return ErrNoTransactions
	}
	return ErrUnrecognizedStatement
}

// Extractor reads statement documents. It holds no per-call state and is safe
// for concurrent use.
type Extractor struct {
	now func() time.Time
}

// New creates an Extractor
func New() *Extractor {
	return &Extractor{now: time.Now}
}

// ExtractFile opens the PDF at path, extracts it and closes it again
func (e *Extractor) ExtractFile(ctx context.Context, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DocumentOpenError{Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &DocumentOpenError{Err: err}
	}

	doc, err := OpenPDF(f, info.Size())
	if err != nil {
		return nil, err
	}
	return e.ExtractDocument(ctx, doc)
}

// Extract reads a whole PDF stream and extracts it
func (e *Extractor) Extract(ctx context.Context, r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &DocumentOpenError{Err: fmt.Errorf("failed to read input: %w", err)}
	}

	doc, err := OpenPDF(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	return e.ExtractDocument(ctx, doc)
}

// ExtractDocument walks the pages of doc in order. Metadata is classified on
// each page until every field is set, and every line is offered to the
// transaction parser. Pages whose text cannot be read are skipped. The only
// error returned is a cancelled context.
func (e *Extractor) ExtractDocument(ctx context.Context, doc Document) (*Result, error) {
	log := logger.FromContext(ctx)

	result := &Result{
		Transactions: &transaction.TransactionList{Source: Source, ProcessedAt: e.now()},
		Metadata:     statement.NewMetadata(),
	}

	pages := doc.NumPage()
	for page := 1; page <= pages; page++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("extraction cancelled at page %d: %w", page, err)
		}

		lines, err := doc.PageLines(page)
		if err != nil {
			var pageErr *PageTextExtractionError
			if !errors.As(err, &pageErr) {
				err = &PageTextExtractionError{Page: page, Err: err}
			}
			log.Warn().Err(err).Int("page", page).Msg("Skipping page")
			result.SkippedPages = append(result.SkippedPages, page)
			continue
		}

		if !result.Metadata.Complete() {
			result.Metadata.Merge(statement.ClassifyMetadata(lines))
		}

		for i, line := range lines {
			txn, ok := statement.ParseLine(line)
			if !ok {
				continue
			}
			txn.ID = transactionID(page, i, line)
			result.Transactions.AddTransaction(txn)
		}
	}

	if !result.Transactions.Empty() {
		result.Transactions.DeriveCalendarFields()
	}

	log.Debug().
		Int("pages", pages).
		Int("transactions", result.Transactions.Total).
		Ints("skipped_pages", result.SkippedPages).
		Str("account_holder", result.Metadata.AccountHolder).
		Msg("Extraction finished")

	return result, nil
}

func transactionID(page, line int, text string) string {
	return uuid.NewSHA1(idNamespace, []byte(fmt.Sprintf("%d:%d:%s", page, line, text))).String()
}
