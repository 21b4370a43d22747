// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package preprocessors turns report files into plain text for the
// extraction pipeline. The pipeline itself is format-agnostic; everything
// format-specific lives here.
package preprocessors

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ProcessedContent is the decoded text of one document plus basic
// content metadata.
type ProcessedContent struct {
	OriginalPath string
	Identifier   string // base filename, used as the record identifier

	Text string

	Format    string
	PageCount int
	WordCount int
	CharCount int
	LineCount int

	ProcessorType string
}

// Preprocessor decodes one class of file into text.
type Preprocessor interface {
	// CanProcess checks if this preprocessor handles the given file.
	CanProcess(filePath string) bool

	// Process extracts text content from the file.
	Process(filePath string) (*ProcessedContent, error)

	// Type returns the preprocessor identifier.
	Type() string
}

// Router dispatches files to the first preprocessor that accepts them.
type Router struct {
	preprocessors []Preprocessor
}

// NewRouter creates a router with the given preprocessors, consulted in
// order.
func NewRouter(preprocessors ...Preprocessor) *Router {
	return &Router{preprocessors: preprocessors}
}

// NewDefaultRouter creates a router covering every supported report
// format: PDF and plain text.
func NewDefaultRouter() *Router {
	return NewRouter(NewPDFTextPreprocessor(), NewPlaintextPreprocessor())
}

// CanProcess reports whether any registered preprocessor accepts the file.
func (r *Router) CanProcess(filePath string) bool {
	for _, p := range r.preprocessors {
		if p.CanProcess(filePath) {
			return true
		}
	}
	return false
}

// Process decodes the file through the first matching preprocessor.
func (r *Router) Process(filePath string) (*ProcessedContent, error) {
	for _, p := range r.preprocessors {
		if p.CanProcess(filePath) {
			return p.Process(filePath)
		}
	}
	return nil, fmt.Errorf("unsupported file type: %s", filePath)
}

// newContent initializes content metadata shared by all preprocessors.
func newContent(filePath, format, processorType string) *ProcessedContent {
	return &ProcessedContent{
		OriginalPath:  filePath,
		Identifier:    filepath.Base(filePath),
		Format:        format,
		ProcessorType: processorType,
	}
}

// fillCounts derives word/char/line counts from the extracted text.
func (c *ProcessedContent) fillCounts() {
	c.WordCount = len(strings.Fields(c.Text))
	c.CharCount = len(c.Text)
	if c.Text != "" {
		c.LineCount = strings.Count(c.Text, "\n") + 1
	}
}
