package extract

import (
	"errors"
	"fmt"
)

var (
	// ErrNoTextLayer is reported for pages that carry no extractable text,
	// such as scanned images
	ErrNoTextLayer = errors.New("page has no text layer")

	// ErrUnrecognizedStatement means neither transactions nor statement
	// headers were found, so the document is not a supported statement
	ErrUnrecognizedStatement = errors.New("document is not a recognized Global IME Bank statement")

	// ErrNoTransactions means the statement headers were found but no
	// transaction rows were
	ErrNoTransactions = errors.New("statement contains no transactions")
)

// DocumentOpenError is returned when the input is not a readable PDF
type DocumentOpenError struct {
	Err error
}

func (e *DocumentOpenError) Error() string {
	return fmt.Sprintf("failed to open PDF document: %v", e.Err)
}

func (e *DocumentOpenError) Unwrap() error { return e.Err }

// PageTextExtractionError is returned when the text of a single page cannot
// be read. It never aborts an extraction.
type PageTextExtractionError struct {
	Page int
	Err  error
}

func (e *PageTextExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from page %d: %v", e.Page, e.Err)
}

func (e *PageTextExtractionError) Unwrap() error { return e.Err }
