// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package textanalysis

import (
	"regexp"
	"strconv"
	"strings"
)

// Entity labels produced by entity recognition.
const (
	LabelCardinal = "CARDINAL"
	LabelPercent  = "PERCENT"
	LabelDate     = "DATE"
)

// Token is a single word-level token with its position in the token stream.
type Token struct {
	Text    string
	Index   int
	Numeric bool
}

// Entity is a recognized typed span of text.
type Entity struct {
	Text  string
	Label string
}

// Analyzer is the text-analysis capability the extraction pipeline is built
// against. Implementations must be safe for concurrent use; extractors share
// one instance across worker goroutines.
type Analyzer interface {
	// Tokens splits text into word-level tokens in document order.
	Tokens(text string) []Token

	// Entities returns typed spans recognized in the text, in document order.
	Entities(text string) []Entity

	// Sentences splits text into sentences.
	Sentences(text string) []string
}

var (
	tokenRe    = regexp.MustCompile(`[A-Za-z]+(?:'[A-Za-z]+)?|\d+(?:\.\d+)?|%`)
	percentRe  = regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*%`)
	dateRe     = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`)
	cardinalRe = regexp.MustCompile(`\b\d+\b`)
	sentenceRe = regexp.MustCompile(`[.!?]+\s+|\n{2,}`)
)

// RegexAnalyzer is the default Analyzer. It approximates the tokenization
// and entity recognition of a full NLP toolkit with compiled patterns, which
// keeps the pipeline dependency-free at runtime and fully deterministic.
type RegexAnalyzer struct{}

// NewRegexAnalyzer returns the default regex-backed analyzer.
func NewRegexAnalyzer() *RegexAnalyzer {
	return &RegexAnalyzer{}
}

// Tokens implements Analyzer.
func (a *RegexAnalyzer) Tokens(text string) []Token {
	raw := tokenRe.FindAllString(text, -1)
	tokens := make([]Token, 0, len(raw))
	for i, t := range raw {
		tokens = append(tokens, Token{
			Text:    t,
			Index:   i,
			Numeric: isNumeric(t),
		})
	}
	return tokens
}

// Entities implements Analyzer. Percent and date spans are recognized
// first; bare integers not covered by either are tagged CARDINAL.
func (a *RegexAnalyzer) Entities(text string) []Entity {
	type span struct {
		start, end int
		label      string
		text       string
	}
	var spans []span

	for _, loc := range percentRe.FindAllStringSubmatchIndex(text, -1) {
		spans = append(spans, span{loc[0], loc[1], LabelPercent, text[loc[2]:loc[3]]})
	}
	for _, loc := range dateRe.FindAllStringIndex(text, -1) {
		spans = append(spans, span{loc[0], loc[1], LabelDate, text[loc[0]:loc[1]]})
	}

outer:
	for _, loc := range cardinalRe.FindAllStringIndex(text, -1) {
		for _, s := range spans {
			if loc[0] >= s.start && loc[1] <= s.end {
				continue outer
			}
		}
		spans = append(spans, span{loc[0], loc[1], LabelCardinal, text[loc[0]:loc[1]]})
	}

	// Restore document order after the per-label passes.
	for i := 1; i < len(spans); i++ {
		for j := i; j > 0 && spans[j].start < spans[j-1].start; j-- {
			spans[j], spans[j-1] = spans[j-1], spans[j]
		}
	}

	entities := make([]Entity, 0, len(spans))
	for _, s := range spans {
		entities = append(entities, Entity{Text: s.text, Label: s.label})
	}
	return entities
}

// Sentences implements Analyzer.
func (a *RegexAnalyzer) Sentences(text string) []string {
	var sentences []string
	for _, part := range sentenceRe.Split(text, -1) {
		if s := strings.TrimSpace(part); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
