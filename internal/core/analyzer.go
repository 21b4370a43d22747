// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package core wires the extraction, classification, and aggregation
// stages into the document analysis pipeline shared by the CLI and any
// embedding caller.
package core

import (
	"path/filepath"

	"medreport-scan/internal/classify"
	"medreport-scan/internal/extract/age"
	"medreport-scan/internal/extract/outcome"
	"medreport-scan/internal/observability"
	"medreport-scan/internal/parallel"
	"medreport-scan/internal/preprocessors"
	"medreport-scan/internal/record"
	"medreport-scan/internal/stats"
	"medreport-scan/internal/textanalysis"
)

// Config holds construction options for an Analyzer. The zero value is
// usable: current-year DOB calculation, default sentiment terms, CPU-count
// workers, no observability.
type Config struct {
	// Workers is the worker pool size for batch processing. Below 1
	// means one worker per CPU.
	Workers int

	// ReferenceYear fixes the year used for birth-year back-calculation;
	// 0 means the current wall-clock year.
	ReferenceYear int

	// PositiveTerms and NegativeTerms override the lexical sentiment
	// weight tables when non-empty.
	PositiveTerms map[string]float64
	NegativeTerms map[string]float64

	// TextAnalyzer overrides the default regex-backed analysis
	// capability, mainly for tests.
	TextAnalyzer textanalysis.Analyzer

	Observer *observability.StandardObserver
}

// Analyzer runs the full pipeline: decoded text in, records and
// aggregate statistics out.
type Analyzer struct {
	text     textanalysis.Analyzer
	ages     *age.Extractor
	outcomes *outcome.Extractor
	router   *preprocessors.Router
	workers  int
	observer *observability.StandardObserver
}

// DocumentError records a per-document ingestion failure. Failures never
// abort a batch; the document still contributes a default record.
type DocumentError struct {
	FilePath string
	Err      error
}

// BatchResult holds the outcome of processing a batch of files. Records
// appear in input order.
type BatchResult struct {
	Records        []*record.Record
	ProcessedFiles int
	Failures       []DocumentError
}

// NewAnalyzer builds a pipeline from cfg.
func NewAnalyzer(cfg Config) *Analyzer {
	text := cfg.TextAnalyzer
	if text == nil {
		text = textanalysis.NewRegexAnalyzer()
	}

	var ageOpts []age.Option
	if cfg.ReferenceYear > 0 {
		ageOpts = append(ageOpts, age.WithReferenceYear(cfg.ReferenceYear))
	}
	ages := age.NewExtractor(text, ageOpts...)

	var outcomeOpts []outcome.Option
	if len(cfg.PositiveTerms) > 0 || len(cfg.NegativeTerms) > 0 {
		outcomeOpts = append(outcomeOpts, outcome.WithTermWeights(cfg.PositiveTerms, cfg.NegativeTerms))
	}
	outcomes := outcome.NewExtractor(text, outcomeOpts...)

	if cfg.Observer != nil {
		ages.SetObserver(cfg.Observer)
		outcomes.SetObserver(cfg.Observer)
	}

	return &Analyzer{
		text:     text,
		ages:     ages,
		outcomes: outcomes,
		router:   preprocessors.NewDefaultRouter(),
		workers:  cfg.Workers,
		observer: cfg.Observer,
	}
}

// AnalyzeText derives a record from already-decoded text. It never fails:
// empty or signal-free text yields a record with an Unknown bucket, no
// score, and an Undetermined decision.
func (a *Analyzer) AnalyzeText(identifier, text string) *record.Record {
	rec := &record.Record{Identifier: identifier}

	if extracted, ok := a.ages.Extract(text); ok {
		ageVal := extracted
		rec.Age = &ageVal
	}
	rec.Bucket = classify.BucketFor(rec.Age)

	result := a.outcomes.Extract(text)
	if result.Signal {
		score := result.Score
		rec.OutcomeScore = &score
		rec.Decision = classify.Decide(score)
	} else {
		rec.Decision = classify.DecideLexical(result.Positive, result.Negative)
	}

	rec.WordCount = len(a.text.Tokens(text))
	rec.EntityCount = len(a.text.Entities(text))
	return rec
}

// AnalyzeFile decodes one file and analyzes its text. On a decode
// failure it still returns a record derived from empty text, alongside
// the error, so callers can both report the failure and keep the batch
// total consistent.
func (a *Analyzer) AnalyzeFile(filePath string) (*record.Record, error) {
	identifier := filepath.Base(filePath)

	var finishStep func(bool, string)
	if a.observer != nil && a.observer.DebugObserver != nil {
		finishStep = a.observer.DebugObserver.StartStep("analyzer", "analyze_file", filePath)
	}

	content, err := a.router.Process(filePath)
	text := ""
	if content != nil {
		text = content.Text
	}
	rec := a.AnalyzeText(identifier, text)

	if finishStep != nil {
		finishStep(err == nil, rec.Decision.String())
	}
	return rec, err
}

// ProcessFiles analyzes a batch of files concurrently. Per-document
// failures are collected, not propagated; the returned records follow the
// input order regardless of worker scheduling.
func (a *Analyzer) ProcessFiles(filePaths []string) *BatchResult {
	pool := parallel.NewWorkerPool(a.workers, a.AnalyzeFile, a.observer)
	pool.Start()

	go func() {
		for i, path := range filePaths {
			pool.Submit(&parallel.Job{Index: i, FilePath: path})
		}
		pool.Close()
	}()

	ordered := make([]*record.Record, len(filePaths))
	batch := &BatchResult{}
	for result := range pool.Results() {
		if result.Err != nil {
			batch.Failures = append(batch.Failures, DocumentError{FilePath: result.FilePath, Err: result.Err})
		}
		ordered[result.Index] = result.Record
		batch.ProcessedFiles++
	}

	for _, rec := range ordered {
		if rec != nil {
			batch.Records = append(batch.Records, rec)
		}
	}
	return batch
}

// Aggregate folds records into the batch report.
func (a *Analyzer) Aggregate(records []*record.Record) (*stats.Report, error) {
	return stats.Aggregate(records)
}
