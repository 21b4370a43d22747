// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package classify holds the pure decision rules of the pipeline: age
// bucketing and outcome thresholding. Everything here is a total function
// of its inputs so the rules can be tested exhaustively at the boundaries.
package classify

import "medreport-scan/internal/record"

// AcceptThreshold is the per-document acceptance bar: a document is
// Accepted only when its outcome score is strictly above this value.
const AcceptThreshold = 80.0

// BucketFor maps an extracted age to its bucket. A nil age maps to
// Unknown. Boundaries are inclusive on the lower bound of each higher
// bucket: 19 is "Below 20", 20 and 60 are "20 to 60", 61 is "Above 60".
func BucketFor(age *int) record.Bucket {
	if age == nil {
		return record.BucketUnknown
	}
	switch {
	case *age < 20:
		return record.BucketBelow20
	case *age <= 60:
		return record.Bucket20To60
	default:
		return record.BucketAbove60
	}
}

// Decide maps a numeric outcome score to a verdict. The boundary is
// strict: exactly 80 is Rejected.
func Decide(score float64) record.Decision {
	if score > AcceptThreshold {
		return record.Accepted
	}
	return record.Rejected
}

// DecideLexical resolves a verdict from positive/negative keyword tallies
// when no numeric score exists. An exact tie (including zero/zero) is the
// only path in the pipeline that produces Undetermined.
func DecideLexical(positive, negative int) record.Decision {
	switch {
	case positive > negative:
		return record.Accepted
	case negative > positive:
		return record.Rejected
	default:
		return record.Undetermined
	}
}
