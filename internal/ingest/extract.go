package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/dishaajyoti/vedicai/internal/domain"
	"github.com/ledongthuc/pdf"
)

// Extractor is one text-extraction strategy. Strategies are tried in order;
// each failure is typed and recorded rather than probed by error type.
type Extractor interface {
	Name() string
	CanExtract(path string) bool
	Extract(path string) (string, error)
}

// TextExtractor runs an ordered list of extraction strategies and returns
// the first non-empty result.
type TextExtractor struct {
	strategies []Extractor
}

// NewTextExtractor creates a TextExtractor with the default strategy order:
// row-wise PDF extraction, whole-document PDF extraction, plain text.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{
		strategies: []Extractor{
			&pdfRowExtractor{},
			&pdfPlainTextExtractor{},
			&plainTextExtractor{},
		},
	}
}

// ExtractText extracts text from the document at path. It fails with an
// ExtractionError when every applicable strategy fails or yields only
// whitespace.
func (e *TextExtractor) ExtractText(path string) (string, error) {
	var failures []error
	tried := 0

	for _, strategy := range e.strategies {
		if !strategy.CanExtract(path) {
			continue
		}
		tried++

		text, err := strategy.Extract(path)
		if err != nil {
			log.Printf("extraction strategy %s failed for %s: %v", strategy.Name(), filepath.Base(path), err)
			failures = append(failures, fmt.Errorf("%s: %w", strategy.Name(), err))
			continue
		}
		if strings.TrimSpace(text) == "" {
			failures = append(failures, fmt.Errorf("%s: no text extracted", strategy.Name()))
			continue
		}
		return text, nil
	}

	if tried == 0 {
		return "", domain.NewExtractionError(
			fmt.Sprintf("no extraction strategy for %s", filepath.Base(path)), nil)
	}
	return "", domain.NewExtractionError(
		fmt.Sprintf("all extraction strategies failed for %s", filepath.Base(path)), errors.Join(failures...))
}

// pdfRowExtractor extracts text page by page, row by row. Better at
// preserving layout in complex PDFs.
type pdfRowExtractor struct{}

func (x *pdfRowExtractor) Name() string { return "pdf_rows" }

func (x *pdfRowExtractor) CanExtract(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

func (x *pdfRowExtractor) Extract(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var b strings.Builder
	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("page %d: %w", pageIndex, err)
		}

		for _, row := range rows {
			for _, word := range row.Content {
				b.WriteString(word.S)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return b.String(), nil
}

// pdfPlainTextExtractor extracts the whole document's plain text in one
// pass, the fallback for PDFs the row-wise strategy cannot handle.
type pdfPlainTextExtractor struct{}

func (x *pdfPlainTextExtractor) Name() string { return "pdf_plain" }

func (x *pdfPlainTextExtractor) CanExtract(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

func (x *pdfPlainTextExtractor) Extract(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// plainTextExtractor reads .txt and .md sources directly.
type plainTextExtractor struct{}

func (x *plainTextExtractor) Name() string { return "plain_text" }

func (x *plainTextExtractor) CanExtract(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".txt" || ext == ".md"
}

func (x *plainTextExtractor) Extract(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
