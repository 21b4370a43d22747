// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package preprocessors

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// maxPDFPages bounds per-document extraction time on pathological PDFs.
const maxPDFPages = 50

// PDFTextPreprocessor extracts page text from PDF reports. pdfcpu is used
// to validate the document up front so corrupt files fail with a clear
// error instead of a partial text stream; ledongthuc/pdf does the actual
// text extraction.
type PDFTextPreprocessor struct {
	pdfConfig *model.Configuration
}

// NewPDFTextPreprocessor creates a PDF text preprocessor.
func NewPDFTextPreprocessor() *PDFTextPreprocessor {
	cfg := model.NewDefaultConfiguration()
	cfg.ValidationMode = model.ValidationRelaxed
	return &PDFTextPreprocessor{pdfConfig: cfg}
}

func (p *PDFTextPreprocessor) Type() string {
	return "pdftext"
}

func (p *PDFTextPreprocessor) CanProcess(filePath string) bool {
	return strings.ToLower(filepath.Ext(filePath)) == ".pdf"
}

func (p *PDFTextPreprocessor) Process(filePath string) (*ProcessedContent, error) {
	content := newContent(filePath, "pdf", p.Type())

	if err := api.ValidateFile(filePath, p.pdfConfig); err != nil {
		return content, fmt.Errorf("invalid PDF: %w", err)
	}
	pageCount, err := api.PageCountFile(filePath)
	if err != nil {
		return content, fmt.Errorf("error counting PDF pages: %w", err)
	}
	content.PageCount = pageCount

	f, reader, err := pdf.Open(filePath)
	if err != nil {
		return content, fmt.Errorf("error opening PDF: %w", err)
	}
	defer f.Close()

	pages := pageCount
	if pages > maxPDFPages {
		pages = maxPDFPages
	}

	var sb strings.Builder
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not sink the document.
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(text)
	}

	content.Text = sb.String()
	content.fillCounts()
	return content, nil
}
