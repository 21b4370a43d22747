// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package record

import "fmt"

// Bucket is the closed set of age-range categories a record can fall into.
// Every age (including an unknown one) maps to exactly one bucket.
type Bucket int

const (
	BucketUnknown Bucket = iota
	BucketBelow20
	Bucket20To60
	BucketAbove60
)

// Buckets lists all buckets in display order. Unknown sorts last so the
// real age ranges lead any rendered summary.
var Buckets = []Bucket{BucketBelow20, Bucket20To60, BucketAbove60, BucketUnknown}

func (b Bucket) String() string {
	switch b {
	case BucketBelow20:
		return "Below 20"
	case Bucket20To60:
		return "20 to 60"
	case BucketAbove60:
		return "Above 60"
	case BucketUnknown:
		return "Unknown"
	default:
		return fmt.Sprintf("Bucket(%d)", int(b))
	}
}

// Valid reports whether b is one of the four enumerated buckets.
func (b Bucket) Valid() bool {
	return b >= BucketUnknown && b <= BucketAbove60
}

// Decision is the categorical verdict derived for a single document.
type Decision int

const (
	Undetermined Decision = iota
	Accepted
	Rejected
)

func (d Decision) String() string {
	switch d {
	case Accepted:
		return "Accepted"
	case Rejected:
		return "Rejected"
	case Undetermined:
		return "Undetermined"
	default:
		return fmt.Sprintf("Decision(%d)", int(d))
	}
}

// Record holds the structured facts derived from one document. Records are
// produced once by the analysis pipeline and never mutated afterwards.
type Record struct {
	// Identifier names the source document (filename or similar). It is
	// carried for traceability only and never interpreted.
	Identifier string

	// Age is the extracted subject age, nil when no strategy succeeded.
	Age *int

	// Bucket is derived solely from Age.
	Bucket Bucket

	// OutcomeScore is the extracted treatment-outcome score in [0,100].
	// It is nil only when the outcome extractor found no signal at all;
	// a weak signal still yields a numeric default.
	OutcomeScore *float64

	// Decision is derived from OutcomeScore, or from lexical tallies
	// when no score exists.
	Decision Decision

	// Document analysis counters, informational only.
	WordCount   int
	EntityCount int
}

// AgeValue returns the age and whether one was extracted.
func (r *Record) AgeValue() (int, bool) {
	if r.Age == nil {
		return 0, false
	}
	return *r.Age, true
}

// ScoreValue returns the outcome score and whether one was produced.
func (r *Record) ScoreValue() (float64, bool) {
	if r.OutcomeScore == nil {
		return 0, false
	}
	return *r.OutcomeScore, true
}
