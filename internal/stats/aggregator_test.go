// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medreport-scan/internal/record"
)

func makeRecord(id string, age int, bucket record.Bucket, score float64, decision record.Decision) *record.Record {
	return &record.Record{
		Identifier:   id,
		Age:          &age,
		Bucket:       bucket,
		OutcomeScore: &score,
		Decision:     decision,
	}
}

func TestAggregate_EmptyBatch(t *testing.T) {
	report, err := Aggregate(nil)
	require.NoError(t, err)

	for _, bucket := range record.Buckets {
		group := report.Buckets[bucket]
		assert.Equal(t, 0, group.Total, "bucket %v", bucket)
		assert.Equal(t, 0.0, group.AcceptanceRate, "bucket %v", bucket)
		assert.Equal(t, 0.0, group.AvgOutcome, "bucket %v", bucket)
		assert.Equal(t, record.Rejected, group.FinalDecision, "bucket %v", bucket)
	}
	assert.Equal(t, 0, report.Overall.Total)
	assert.Equal(t, 0.0, report.Overall.AcceptanceRate)
	assert.Equal(t, 0.0, report.Overall.AvgOutcome)
	assert.Equal(t, record.Rejected, report.Overall.FinalDecision)
}

// Two documents across two buckets: acceptance rates are per bucket, the
// overall average sits between the bucket thresholds and fails the
// stricter overall bar.
func TestAggregate_TwoBuckets(t *testing.T) {
	records := []*record.Record{
		makeRecord("a.txt", 15, record.BucketBelow20, 40, record.Rejected),
		makeRecord("b.txt", 70, record.BucketAbove60, 95, record.Accepted),
	}
	report, err := Aggregate(records)
	require.NoError(t, err)

	below := report.Buckets[record.BucketBelow20]
	assert.Equal(t, 1, below.Total)
	assert.Equal(t, 0.0, below.AcceptanceRate)
	assert.Equal(t, 40.0, below.AvgOutcome)
	assert.Equal(t, record.Rejected, below.FinalDecision)

	above := report.Buckets[record.BucketAbove60]
	assert.Equal(t, 1, above.Total)
	assert.Equal(t, 100.0, above.AcceptanceRate)
	assert.Equal(t, 95.0, above.AvgOutcome)
	assert.Equal(t, record.Accepted, above.FinalDecision)

	assert.Equal(t, 2, report.Overall.Total)
	assert.Equal(t, 50.0, report.Overall.AcceptanceRate)
	assert.Equal(t, 67.5, report.Overall.AvgOutcome)
	assert.Equal(t, record.Rejected, report.Overall.FinalDecision)
}

// The overall bar is 85, stricter than the per-bucket 80: an average of
// 82 accepts a bucket but rejects the batch.
func TestAggregate_OverallThresholdStricter(t *testing.T) {
	records := []*record.Record{
		makeRecord("a.txt", 30, record.Bucket20To60, 82, record.Accepted),
	}
	report, err := Aggregate(records)
	require.NoError(t, err)

	assert.Equal(t, record.Accepted, report.Buckets[record.Bucket20To60].FinalDecision)
	assert.Equal(t, record.Rejected, report.Overall.FinalDecision)
}

// Undetermined records count toward totals but neither accepted nor
// rejected, and contribute nothing to the outcome average when unscored.
func TestAggregate_UndeterminedExcludedFromTallies(t *testing.T) {
	undetermined := &record.Record{
		Identifier: "empty.txt",
		Bucket:     record.BucketUnknown,
		Decision:   record.Undetermined,
	}
	records := []*record.Record{
		undetermined,
		makeRecord("a.txt", 30, record.Bucket20To60, 90, record.Accepted),
	}
	report, err := Aggregate(records)
	require.NoError(t, err)

	unknown := report.Buckets[record.BucketUnknown]
	assert.Equal(t, 1, unknown.Total)
	assert.Equal(t, 0, unknown.Accepted)
	assert.Equal(t, 0, unknown.Rejected)
	assert.Equal(t, 0.0, unknown.AvgOutcome)
	assert.Equal(t, record.Rejected, unknown.FinalDecision)

	assert.Equal(t, 2, report.Overall.Total)
	assert.Equal(t, 1, report.Overall.Accepted)
	assert.Equal(t, 0, report.Overall.Rejected)
	// Only the scored record participates in the average.
	assert.Equal(t, 90.0, report.Overall.AvgOutcome)
	assert.Equal(t, 50.0, report.Overall.AcceptanceRate)
}

func TestAggregate_RatesRounded(t *testing.T) {
	records := []*record.Record{
		makeRecord("a.txt", 30, record.Bucket20To60, 70, record.Rejected),
		makeRecord("b.txt", 31, record.Bucket20To60, 80, record.Rejected),
		makeRecord("c.txt", 32, record.Bucket20To60, 95, record.Accepted),
	}
	report, err := Aggregate(records)
	require.NoError(t, err)

	group := report.Buckets[record.Bucket20To60]
	assert.Equal(t, 33.33, group.AcceptanceRate)
	assert.Equal(t, 81.67, group.AvgOutcome)
}

func TestAggregate_Idempotent(t *testing.T) {
	records := []*record.Record{
		makeRecord("a.txt", 15, record.BucketBelow20, 40, record.Rejected),
		makeRecord("b.txt", 70, record.BucketAbove60, 95, record.Accepted),
		makeRecord("c.txt", 45, record.Bucket20To60, 85.5, record.Accepted),
	}
	first, err := Aggregate(records)
	require.NoError(t, err)
	second, err := Aggregate(records)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAggregate_InvalidBucketIsError(t *testing.T) {
	records := []*record.Record{
		{Identifier: "bad.txt", Bucket: record.Bucket(42), Decision: record.Rejected},
	}
	_, err := Aggregate(records)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.txt")
}
