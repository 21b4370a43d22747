// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package age extracts a subject age from free-form report text using an
// ordered cascade of strategies. Explicit labeled fields are tried before
// heuristic recognition so incidental numbers (dosages, dates, lab values)
// cannot shadow an explicit statement of age.
package age

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"medreport-scan/internal/observability"
	"medreport-scan/internal/textanalysis"
)

// Plausibility bounds for any age candidate. Candidates outside the range
// are discarded and the cascade moves on to the next strategy.
const (
	MinAge = 0
	MaxAge = 120
)

// Strategy names, used for ordering configuration and for metadata.
const (
	StrategyLabeledField = "labeled_field"
	StrategyPhrase       = "phrase"
	StrategyBirthYear    = "birth_year"
	StrategyEntity       = "entity"
	StrategyWindowScan   = "window_scan"
)

// DefaultStrategyOrder prefers explicit textual fields over statistical
// recognition. Birth-year back-calculation sits between the regex
// strategies and entity recognition; it can be reordered after entity
// recognition via WithStrategyOrder but it is always present, since it is
// the only strategy that derives age indirectly.
var DefaultStrategyOrder = []string{
	StrategyLabeledField,
	StrategyPhrase,
	StrategyBirthYear,
	StrategyEntity,
	StrategyWindowScan,
}

var (
	labeledRe = regexp.MustCompile(`(?i)\b(?:patient\s+)?age\b\s*[:|]?\s*(\d{1,3})\b`)
	phraseRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(\d{1,3})[\s-]*(?:years?|yrs?)[\s-]*old\b`),
		regexp.MustCompile(`(?i)\baged\s+(\d{1,3})\b`),
	}
	dobRe = regexp.MustCompile(`(?i)\bdob\s*[:|]?\s*\d{1,2}/\d{1,2}/(\d{4})\b`)
)

// ageContextTerms qualify a numeric token during the contextual window scan.
var ageContextTerms = map[string]bool{
	"age":   true,
	"aged":  true,
	"year":  true,
	"years": true,
	"yr":    true,
	"yrs":   true,
	"old":   true,
}

// windowSize is the number of tokens inspected on each side of a numeric
// token during the contextual scan.
const windowSize = 3

type strategy struct {
	name string
	fn   func(text string) (int, bool)
}

// Extractor derives an integer age from report text. It never fails:
// Extract reports false when every strategy comes up empty.
type Extractor struct {
	analyzer   textanalysis.Analyzer
	strategies []strategy
	year       int
	observer   *observability.StandardObserver
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithReferenceYear fixes the calendar year used for birth-year
// back-calculation. The default is the current wall-clock year.
func WithReferenceYear(year int) Option {
	return func(e *Extractor) { e.year = year }
}

// WithStrategyOrder reorders the cascade. Unknown names are ignored and
// omitted strategies are dropped; the birth-year strategy is re-appended
// if left out, since it must always be available as a fallback.
func WithStrategyOrder(names ...string) Option {
	return func(e *Extractor) {
		all := e.buildStrategies()
		var ordered []strategy
		for _, name := range names {
			if s, ok := all[name]; ok {
				ordered = append(ordered, s)
				delete(all, name)
			}
		}
		if s, ok := all[StrategyBirthYear]; ok {
			ordered = append(ordered, s)
		}
		e.strategies = ordered
	}
}

// NewExtractor creates an age extractor backed by the given text-analysis
// capability.
func NewExtractor(analyzer textanalysis.Analyzer, opts ...Option) *Extractor {
	e := &Extractor{
		analyzer: analyzer,
		year:     time.Now().Year(),
	}
	all := e.buildStrategies()
	for _, name := range DefaultStrategyOrder {
		e.strategies = append(e.strategies, all[name])
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

func (e *Extractor) buildStrategies() map[string]strategy {
	return map[string]strategy{
		StrategyLabeledField: {StrategyLabeledField, e.extractLabeledField},
		StrategyPhrase:       {StrategyPhrase, e.extractPhrase},
		StrategyBirthYear:    {StrategyBirthYear, e.extractBirthYear},
		StrategyEntity:       {StrategyEntity, e.extractEntity},
		StrategyWindowScan:   {StrategyWindowScan, e.extractWindowScan},
	}
}

// Extract runs the cascade and returns the first plausible age. The boolean
// reports whether any strategy produced one.
func (e *Extractor) Extract(text string) (int, bool) {
	var finishTiming func(bool, map[string]interface{})
	if e.observer != nil {
		finishTiming = e.observer.StartTiming("age_extractor", "extract", "")
	}

	for _, s := range e.strategies {
		candidate, ok := s.fn(text)
		if !ok {
			continue
		}
		if candidate < MinAge || candidate > MaxAge {
			// Implausible value: drop it and keep cascading.
			continue
		}
		if finishTiming != nil {
			finishTiming(true, map[string]interface{}{"strategy": s.name, "age": candidate})
		}
		return candidate, true
	}

	if finishTiming != nil {
		finishTiming(true, map[string]interface{}{"strategy": "none"})
	}
	return 0, false
}

func (e *Extractor) extractLabeledField(text string) (int, bool) {
	if m := labeledRe.FindStringSubmatch(text); m != nil {
		return atoi(m[1])
	}
	return 0, false
}

func (e *Extractor) extractPhrase(text string) (int, bool) {
	for _, re := range phraseRes {
		if m := re.FindStringSubmatch(text); m != nil {
			return atoi(m[1])
		}
	}
	return 0, false
}

func (e *Extractor) extractBirthYear(text string) (int, bool) {
	m := dobRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	birthYear, ok := atoi(m[1])
	if !ok {
		return 0, false
	}
	return e.year - birthYear, true
}

// extractEntity accepts the first cardinal entity that reads as a
// plausible age. Percent and date spans are already typed away by the
// analyzer, so only bare numbers reach this point.
func (e *Extractor) extractEntity(text string) (int, bool) {
	for _, ent := range e.analyzer.Entities(text) {
		if ent.Label != textanalysis.LabelCardinal {
			continue
		}
		if n, ok := atoi(ent.Text); ok && n >= 1 && n <= MaxAge {
			return n, true
		}
	}
	return 0, false
}

// extractWindowScan accepts the first numeric token whose surrounding
// tokens mention age vocabulary.
func (e *Extractor) extractWindowScan(text string) (int, bool) {
	tokens := e.analyzer.Tokens(text)
	for i, tok := range tokens {
		if !tok.Numeric {
			continue
		}
		lo := i - windowSize
		if lo < 0 {
			lo = 0
		}
		hi := i + windowSize + 1
		if hi > len(tokens) {
			hi = len(tokens)
		}
		for j := lo; j < hi; j++ {
			if j == i {
				continue
			}
			if ageContextTerms[strings.ToLower(tokens[j].Text)] {
				if n, ok := atoi(tok.Text); ok {
					return n, true
				}
				break
			}
		}
	}
	return 0, false
}

func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
