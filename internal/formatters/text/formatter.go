// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"medreport-scan/internal/formatters"
	"medreport-scan/internal/record"
	"medreport-scan/internal/stats"

	"github.com/fatih/color"
)

// Formatter implements human-readable text output.
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter.
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"green":  color.New(color.FgGreen),
			"yellow": color.New(color.FgYellow),
			"red":    color.New(color.FgRed),
			"cyan":   color.New(color.FgCyan),
			"white":  color.New(color.FgWhite, color.Bold),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable report with per-document results and age-group statistics"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(records []*record.Record, report *stats.Report, options formatters.Options) (string, error) {
	if options.NoColor {
		color.NoColor = true
	}

	var sb strings.Builder

	sb.WriteString(f.colors["white"].Sprint("Medical Report Analysis"))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 50))
	sb.WriteString("\n\n")

	if len(records) == 0 {
		sb.WriteString("No documents analyzed.\n")
		return sb.String(), nil
	}

	sb.WriteString(f.colors["cyan"].Sprint("Document Results"))
	sb.WriteString("\n")
	for _, rec := range records {
		sb.WriteString(fmt.Sprintf("  %s: age %s (%s), outcome %s, %s\n",
			rec.Identifier,
			formatAge(rec),
			rec.Bucket,
			formatScore(rec),
			f.colorDecision(rec.Decision),
		))
		if options.Verbose {
			sb.WriteString(fmt.Sprintf("      words: %d, entities: %d\n", rec.WordCount, rec.EntityCount))
		}
	}
	sb.WriteString("\n")

	sb.WriteString(f.colors["cyan"].Sprint("Statistics by Age Group"))
	sb.WriteString("\n")
	for _, bucket := range record.Buckets {
		group := report.Buckets[bucket]
		if group.Total == 0 && !options.ShowEmptyBuckets {
			continue
		}
		f.writeGroup(&sb, bucket.String(), group)
	}

	sb.WriteString("\n")
	sb.WriteString(f.colors["cyan"].Sprint("Overall"))
	sb.WriteString("\n")
	f.writeGroup(&sb, "All documents", report.Overall)

	return sb.String(), nil
}

func (f *Formatter) writeGroup(sb *strings.Builder, label string, group *stats.GroupStats) {
	sb.WriteString(fmt.Sprintf("  %s:\n", label))
	sb.WriteString(fmt.Sprintf("    Total reports:    %d\n", group.Total))
	sb.WriteString(fmt.Sprintf("    Accepted:         %d\n", group.Accepted))
	sb.WriteString(fmt.Sprintf("    Rejected:         %d\n", group.Rejected))
	sb.WriteString(fmt.Sprintf("    Acceptance rate:  %.2f%%\n", group.AcceptanceRate))
	sb.WriteString(fmt.Sprintf("    Average outcome:  %.2f\n", group.AvgOutcome))
	sb.WriteString(fmt.Sprintf("    Final decision:   %s\n", f.colorDecision(group.FinalDecision)))
}

func (f *Formatter) colorDecision(d record.Decision) string {
	switch d {
	case record.Accepted:
		return f.colors["green"].Sprint(d.String())
	case record.Rejected:
		return f.colors["red"].Sprint(d.String())
	default:
		return f.colors["yellow"].Sprint(d.String())
	}
}

func formatAge(rec *record.Record) string {
	if age, ok := rec.AgeValue(); ok {
		return fmt.Sprintf("%d", age)
	}
	return "unknown"
}

func formatScore(rec *record.Record) string {
	if score, ok := rec.ScoreValue(); ok {
		return fmt.Sprintf("%.1f", score)
	}
	return "no signal"
}

func init() {
	formatters.Register(NewFormatter())
}
