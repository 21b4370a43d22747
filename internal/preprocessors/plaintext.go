// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package preprocessors

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var plaintextExtensions = map[string]bool{
	".txt":  true,
	".text": true,
	".md":   true,
}

// PlaintextPreprocessor reads UTF-8 text files as-is.
type PlaintextPreprocessor struct{}

// NewPlaintextPreprocessor creates a plaintext preprocessor.
func NewPlaintextPreprocessor() *PlaintextPreprocessor {
	return &PlaintextPreprocessor{}
}

func (p *PlaintextPreprocessor) Type() string {
	return "plaintext"
}

func (p *PlaintextPreprocessor) CanProcess(filePath string) bool {
	return plaintextExtensions[strings.ToLower(filepath.Ext(filePath))]
}

func (p *PlaintextPreprocessor) Process(filePath string) (*ProcessedContent, error) {
	content := newContent(filePath, "text", p.Type())

	data, err := os.ReadFile(filePath)
	if err != nil {
		return content, fmt.Errorf("error reading text file: %w", err)
	}

	content.Text = string(data)
	content.PageCount = 1
	content.fillCounts()
	return content, nil
}
