package service

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var (
	// ErrInvalidPDF means the upload is not a structurally valid PDF.
	ErrInvalidPDF = errors.New("uploaded file is not a valid PDF")
	// ErrNoTextContent means a valid PDF yielded no extractable text. This is
	// an extraction failure to report to the caller, not a valid empty bill.
	// Scanned/image-only PDFs land here; OCR recovery is out of scope.
	ErrNoTextContent = errors.New("no text could be extracted from the document")
)

type PDFProcessor interface {
	ExtractText(pdfData []byte) (string, int, error)
}

type pdfProcessor struct{}

func NewPDFProcessor() PDFProcessor {
	return &pdfProcessor{}
}

// ExtractText validates the PDF, then pulls its text content row by row.
// Returns the raw text and the page count.
func (p *pdfProcessor) ExtractText(pdfData []byte) (string, int, error) {
	conf := model.NewDefaultConfiguration()

	if err := api.Validate(bytes.NewReader(pdfData), conf); err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}

	pageCount, err := api.PageCount(bytes.NewReader(pdfData), conf)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}

	r, err := pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}

	var textBuilder strings.Builder
	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		rows, _ := page.GetTextByRow()
		for _, row := range rows {
			for wordIndex, word := range row.Content {
				if wordIndex > 0 {
					textBuilder.WriteString(" ")
				}
				textBuilder.WriteString(word.S)
			}
			textBuilder.WriteString("\n")
		}
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", pageCount, ErrNoTextContent
	}

	return text, pageCount, nil
}
