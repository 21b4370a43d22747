// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"encoding/json"

	"medreport-scan/internal/formatters"
	"medreport-scan/internal/record"
	"medreport-scan/internal/stats"
)

// Formatter implements JSON output. Unlike the display formats, JSON
// always carries every bucket, zeroed when empty, so consumers get a
// stable shape.
type Formatter struct{}

// NewFormatter creates a new JSON formatter.
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "json"
}

func (f *Formatter) Description() string {
	return "Machine-readable JSON with records and aggregate report"
}

func (f *Formatter) FileExtension() string {
	return ".json"
}

type recordJSON struct {
	Identifier   string   `json:"identifier"`
	Age          *int     `json:"age"`
	AgeBucket    string   `json:"age_bucket"`
	OutcomeScore *float64 `json:"outcome_score"`
	Decision     string   `json:"decision"`
	WordCount    int      `json:"word_count,omitempty"`
	EntityCount  int      `json:"entity_count,omitempty"`
}

type groupJSON struct {
	Total          int     `json:"total"`
	Accepted       int     `json:"accepted"`
	Rejected       int     `json:"rejected"`
	AcceptanceRate float64 `json:"acceptance_rate"`
	AvgOutcome     float64 `json:"avg_outcome"`
	FinalDecision  string  `json:"final_decision"`
}

type documentJSON struct {
	Records []recordJSON         `json:"records"`
	Buckets map[string]groupJSON `json:"age_groups"`
	Overall groupJSON            `json:"overall"`
}

func (f *Formatter) Format(records []*record.Record, report *stats.Report, options formatters.Options) (string, error) {
	doc := documentJSON{
		Records: make([]recordJSON, 0, len(records)),
		Buckets: make(map[string]groupJSON, len(record.Buckets)),
		Overall: toGroupJSON(report.Overall),
	}

	for _, rec := range records {
		rj := recordJSON{
			Identifier:   rec.Identifier,
			Age:          rec.Age,
			AgeBucket:    rec.Bucket.String(),
			OutcomeScore: rec.OutcomeScore,
			Decision:     rec.Decision.String(),
		}
		if options.Verbose {
			rj.WordCount = rec.WordCount
			rj.EntityCount = rec.EntityCount
		}
		doc.Records = append(doc.Records, rj)
	}

	for _, bucket := range record.Buckets {
		doc.Buckets[bucket.String()] = toGroupJSON(report.Buckets[bucket])
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func toGroupJSON(group *stats.GroupStats) groupJSON {
	return groupJSON{
		Total:          group.Total,
		Accepted:       group.Accepted,
		Rejected:       group.Rejected,
		AcceptanceRate: group.AcceptanceRate,
		AvgOutcome:     group.AvgOutcome,
		FinalDecision:  group.FinalDecision.String(),
	}
}

func init() {
	formatters.Register(NewFormatter())
}
