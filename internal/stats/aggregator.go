// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package stats folds a batch of document records into per-bucket and
// overall acceptance statistics. Aggregation is a single pass over the
// record list with fixed-field accumulators; it is deterministic and
// rebuilt from scratch for every batch.
package stats

import (
	"fmt"
	"math"

	"medreport-scan/internal/record"
)

// Final-decision thresholds. The overall bar is deliberately stricter
// than the per-bucket bar: a batch-wide acceptance claim needs stronger
// evidence than a single group's.
const (
	BucketAcceptThreshold  = 80.0
	OverallAcceptThreshold = 85.0
)

// GroupStats holds the rolled-up metrics for one bucket (or the overall
// batch). Undetermined records count toward Total but neither Accepted
// nor Rejected.
type GroupStats struct {
	Total          int             `json:"total"`
	Accepted       int             `json:"accepted"`
	Rejected       int             `json:"rejected"`
	AcceptanceRate float64         `json:"acceptance_rate"`
	AvgOutcome     float64         `json:"avg_outcome"`
	FinalDecision  record.Decision `json:"-"`

	scoreSum   float64
	scoreCount int
}

// Report is the batch-level rollup. Every bucket is always present, zeroed
// when empty; presentation layers decide whether to show empty buckets.
type Report struct {
	Buckets map[record.Bucket]*GroupStats
	Overall *GroupStats
}

// Aggregate folds records into a Report. The only error it can return is
// a record carrying an out-of-enumeration bucket, which indicates a
// programming defect upstream rather than a data-quality problem.
func Aggregate(records []*record.Record) (*Report, error) {
	report := &Report{
		Buckets: make(map[record.Bucket]*GroupStats, len(record.Buckets)),
		Overall: &GroupStats{},
	}
	for _, b := range record.Buckets {
		report.Buckets[b] = &GroupStats{}
	}

	for _, rec := range records {
		group, ok := report.Buckets[rec.Bucket]
		if !ok {
			return nil, fmt.Errorf("record %q has unrecognized bucket %v", rec.Identifier, rec.Bucket)
		}
		accumulate(group, rec)
		accumulate(report.Overall, rec)
	}

	for _, group := range report.Buckets {
		finalize(group, BucketAcceptThreshold)
	}
	finalize(report.Overall, OverallAcceptThreshold)

	return report, nil
}

func accumulate(g *GroupStats, rec *record.Record) {
	g.Total++
	switch rec.Decision {
	case record.Accepted:
		g.Accepted++
	case record.Rejected:
		g.Rejected++
	}
	if score, ok := rec.ScoreValue(); ok {
		g.scoreSum += score
		g.scoreCount++
	}
}

// finalize derives the rate, average, and final decision for a group. A
// group with no scored records averages to zero, which always lands below
// the acceptance threshold: absence of evidence never yields Accepted.
func finalize(g *GroupStats, threshold float64) {
	if g.Total > 0 {
		g.AcceptanceRate = round2(100 * float64(g.Accepted) / float64(g.Total))
	}
	if g.scoreCount > 0 {
		g.AvgOutcome = round2(g.scoreSum / float64(g.scoreCount))
	}
	if g.AvgOutcome > threshold {
		g.FinalDecision = record.Accepted
	} else {
		g.FinalDecision = record.Rejected
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
