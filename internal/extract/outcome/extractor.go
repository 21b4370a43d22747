// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package outcome extracts a treatment-outcome score in [0,100] from
// free-form report text. Explicit labeled rates are tried first, then
// percentages appearing near outcome vocabulary, then a weighted lexical
// sentiment fallback. The neutral lexical default (50.0) sits below every
// downstream acceptance threshold, so "no signal" never reads as a
// positive outcome.
package outcome

import (
	"regexp"
	"strconv"
	"strings"

	"medreport-scan/internal/observability"
	"medreport-scan/internal/textanalysis"
)

// Score bounds. Candidates outside the range are discarded and the
// cascade continues.
const (
	MinScore = 0.0
	MaxScore = 100.0
)

// Lexical resolution scores.
const (
	PositiveScore = 85.0
	NegativeScore = 35.0
	NeutralScore  = 50.0
)

// Method names recorded in extraction results.
const (
	MethodLabeledRate    = "labeled_rate"
	MethodPercentContext = "percent_context"
	MethodLexical        = "lexical"
)

var (
	labeledRateRe = regexp.MustCompile(`(?i)\b(?:success\s+rate|response\s+rate|efficacy|improvement)\s*[:|]?\s*(\d{1,3}(?:\.\d+)?)\s*%?`)

	// outcomeContextTerms qualify a percentage during the windowed scan.
	outcomeContextTerms = map[string]bool{
		"response":    true,
		"efficacy":    true,
		"success":     true,
		"improvement": true,
	}
)

// windowSize is the number of tokens inspected on each side of a
// percentage token pair during the contextual scan.
const windowSize = 3

// DefaultPositiveTerms and DefaultNegativeTerms drive the lexical
// sentiment fallback. Weights are multipliers on raw occurrence counts;
// the defaults weigh every term equally.
var (
	DefaultPositiveTerms = map[string]float64{
		"improved":  1,
		"effective": 1,
		"success":   1,
		"positive":  1,
		"reduced":   1,
	}
	DefaultNegativeTerms = map[string]float64{
		"worsened":    1,
		"ineffective": 1,
		"failure":     1,
		"negative":    1,
		"increased":   1,
	}
)

// Result is the outcome of one extraction. Score is always within
// [MinScore, MaxScore]. Signal reports whether any strategy found
// evidence in the text; when false, Score is the neutral default and the
// keyword tallies are zero.
type Result struct {
	Score    float64
	Signal   bool
	Method   string
	Positive int
	Negative int
}

// Extractor derives an outcome score from report text. Extract always
// returns a usable Result; there is no failure path.
type Extractor struct {
	analyzer textanalysis.Analyzer
	positive map[string]float64
	negative map[string]float64
	observer *observability.StandardObserver
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithTermWeights replaces the lexical sentiment term tables. Terms are
// matched as whole lowercase tokens; weights scale each occurrence.
func WithTermWeights(positive, negative map[string]float64) Option {
	return func(e *Extractor) {
		if len(positive) > 0 {
			e.positive = positive
		}
		if len(negative) > 0 {
			e.negative = negative
		}
	}
}

// NewExtractor creates an outcome extractor backed by the given
// text-analysis capability.
func NewExtractor(analyzer textanalysis.Analyzer, opts ...Option) *Extractor {
	e := &Extractor{
		analyzer: analyzer,
		positive: DefaultPositiveTerms,
		negative: DefaultNegativeTerms,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetObserver sets the observability component.
func (e *Extractor) SetObserver(observer *observability.StandardObserver) {
	e.observer = observer
}

// Extract runs the cascade and resolves a score.
func (e *Extractor) Extract(text string) Result {
	var finishTiming func(bool, map[string]interface{})
	if e.observer != nil {
		finishTiming = e.observer.StartTiming("outcome_extractor", "extract", "")
	}

	result := e.extract(text)

	if finishTiming != nil {
		finishTiming(true, map[string]interface{}{
			"method": result.Method,
			"score":  result.Score,
			"signal": result.Signal,
		})
	}
	return result
}

func (e *Extractor) extract(text string) Result {
	if score, ok := e.extractLabeledRate(text); ok {
		return Result{Score: score, Signal: true, Method: MethodLabeledRate}
	}
	if score, ok := e.extractPercentInContext(text); ok {
		return Result{Score: score, Signal: true, Method: MethodPercentContext}
	}
	return e.extractLexical(text)
}

func (e *Extractor) extractLabeledRate(text string) (float64, bool) {
	m := labeledRateRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	return parseScore(m[1])
}

// extractPercentInContext accepts the first "<number> %" token pair whose
// surrounding tokens mention outcome vocabulary.
func (e *Extractor) extractPercentInContext(text string) (float64, bool) {
	tokens := e.analyzer.Tokens(text)
	for i := 0; i < len(tokens)-1; i++ {
		if !tokens[i].Numeric || tokens[i+1].Text != "%" {
			continue
		}
		lo := i - windowSize
		if lo < 0 {
			lo = 0
		}
		hi := i + 1 + windowSize + 1
		if hi > len(tokens) {
			hi = len(tokens)
		}
		for j := lo; j < hi; j++ {
			if outcomeContextTerms[strings.ToLower(tokens[j].Text)] {
				if score, ok := parseScore(tokens[i].Text); ok {
					return score, true
				}
				break
			}
		}
	}
	return 0, false
}

// extractLexical tallies weighted sentiment terms anywhere in the text.
// Zero occurrences on both sides means no signal at all: the score is
// still the neutral default, but Signal is false so callers can tell the
// two cases apart.
func (e *Extractor) extractLexical(text string) Result {
	result := Result{Method: MethodLexical}
	var posWeight, negWeight float64

	for _, tok := range e.analyzer.Tokens(text) {
		word := strings.ToLower(tok.Text)
		if w, ok := e.positive[word]; ok {
			result.Positive++
			posWeight += w
		}
		if w, ok := e.negative[word]; ok {
			result.Negative++
			negWeight += w
		}
	}

	result.Signal = result.Positive+result.Negative > 0
	switch {
	case posWeight > negWeight:
		result.Score = PositiveScore
	case negWeight > posWeight:
		result.Score = NegativeScore
	default:
		result.Score = NeutralScore
	}
	return result
}

func parseScore(s string) (float64, bool) {
	score, err := strconv.ParseFloat(s, 64)
	if err != nil || score < MinScore || score > MaxScore {
		return 0, false
	}
	return score, true
}
