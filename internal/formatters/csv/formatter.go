// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"fmt"
	"strings"

	"medreport-scan/internal/formatters"
	"medreport-scan/internal/record"
	"medreport-scan/internal/stats"
)

// Formatter implements CSV output: one row per document, followed by an
// aggregate section.
type Formatter struct{}

// NewFormatter creates a new CSV formatter.
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "Comma-separated values for spreadsheet import"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

func (f *Formatter) Format(records []*record.Record, report *stats.Report, options formatters.Options) (string, error) {
	headers := []string{"identifier", "age", "age_bucket", "outcome_score", "decision"}
	if options.Verbose {
		headers = append(headers, "word_count", "entity_count")
	}

	rows := []string{strings.Join(headers, ",")}
	for _, rec := range records {
		rows = append(rows, f.recordRow(rec, options))
	}

	// Aggregate section, separated by a blank line so spreadsheet imports
	// can split the two tables.
	rows = append(rows, "", "group,total,accepted,rejected,acceptance_rate,avg_outcome,final_decision")
	for _, bucket := range record.Buckets {
		group := report.Buckets[bucket]
		if group.Total == 0 && !options.ShowEmptyBuckets {
			continue
		}
		rows = append(rows, f.groupRow(bucket.String(), group))
	}
	rows = append(rows, f.groupRow("Overall", report.Overall))

	return strings.Join(rows, "\n"), nil
}

func (f *Formatter) recordRow(rec *record.Record, options formatters.Options) string {
	ageField := ""
	if age, ok := rec.AgeValue(); ok {
		ageField = fmt.Sprintf("%d", age)
	}
	scoreField := ""
	if score, ok := rec.ScoreValue(); ok {
		scoreField = fmt.Sprintf("%.2f", score)
	}

	fields := []string{
		escapeField(rec.Identifier),
		ageField,
		escapeField(rec.Bucket.String()),
		scoreField,
		rec.Decision.String(),
	}
	if options.Verbose {
		fields = append(fields, fmt.Sprintf("%d", rec.WordCount), fmt.Sprintf("%d", rec.EntityCount))
	}
	return strings.Join(fields, ",")
}

func (f *Formatter) groupRow(label string, group *stats.GroupStats) string {
	return fmt.Sprintf("%s,%d,%d,%d,%.2f,%.2f,%s",
		escapeField(label), group.Total, group.Accepted, group.Rejected,
		group.AcceptanceRate, group.AvgOutcome, group.FinalDecision)
}

// escapeField quotes a CSV field when it contains a delimiter, quote, or
// newline.
func escapeField(field string) string {
	if strings.ContainsAny(field, ",\"\n") {
		return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}
	return field
}

func init() {
	formatters.Register(NewFormatter())
}
