package extract

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dslipak/pdf"
)

// Document is a paged source of text lines. Pages are numbered from 1.
type Document interface {
	NumPage() int
	PageLines(page int) ([]string, error)
}

const (
	// rowTolerance is how far apart, in points, two glyph runs may sit
	// vertically and still belong to the same line
	rowTolerance = 2.0

	// spaceRatio of the font size is the horizontal gap read as a space
	spaceRatio = 0.2
)

type pdfDocument struct {
	reader *pdf.Reader
}

// OpenPDF reads a PDF from ra. Any failure, including a panic inside the PDF
// library on malformed input, is reported as a *DocumentOpenError.
func OpenPDF(ra io.ReaderAt, size int64) (doc Document, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			doc, err = nil, &DocumentOpenError{Err: fmt.Errorf("malformed PDF: %v", rec)}
		}
	}()

	reader, err := pdf.NewReader(ra, size)
	if err != nil {
		return nil, &DocumentOpenError{Err: err}
	}
	return &pdfDocument{reader: reader}, nil
}

func (d *pdfDocument) NumPage() (n int) {
	defer func() {
		if rec := recover(); rec != nil {
			n = 0
		}
	}()
	return d.reader.NumPage()
}

func (d *pdfDocument) PageLines(page int) (lines []string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			lines, err = nil, &PageTextExtractionError{Page: page, Err: fmt.Errorf("%v", rec)}
		}
	}()

	p := d.reader.Page(page)
	if p.V.IsNull() {
		return nil, &PageTextExtractionError{Page: page, Err: fmt.Errorf("page not found")}
	}
	texts := p.Content().Text
	if len(texts) == 0 {
		return nil, &PageTextExtractionError{Page: page, Err: ErrNoTextLayer}
	}
	return textLines(texts), nil
}

// textLines rebuilds reading-order lines from positioned glyph runs: top to
// bottom by Y, then left to right by X.
func textLines(texts []pdf.Text) []string {
	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y > sorted[j].Y })

	var (
		lines []string
		row   []pdf.Text
		rowY  float64
	)
	flush := func() {
		if len(row) == 0 {
			return
		}
		if line := strings.TrimSpace(joinRow(row)); line != "" {
			lines = append(lines, line)
		}
		row = row[:0]
	}
	for _, t := range sorted {
		if len(row) > 0 && rowY-t.Y > rowTolerance {
			flush()
		}
		if len(row) == 0 {
			rowY = t.Y
		}
		row = append(row, t)
	}
	flush()
	return lines
}

func joinRow(row []pdf.Text) string {
	sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })

	var b strings.Builder
	var end float64
	for i, t := range row {
		if i > 0 && t.X-end > spaceGap(t) {
			b.WriteByte(' ')
		}
		b.WriteString(t.S)
		end = t.X + t.W
	}
	return b.String()
}

func spaceGap(t pdf.Text) float64 {
	if t.FontSize <= 0 {
		return 1
	}
	return t.FontSize * spaceRatio
}
