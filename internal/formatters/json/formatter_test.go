// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	encjson "encoding/json"
	"testing"

	"medreport-scan/internal/formatters"
	"medreport-scan/internal/record"
	"medreport-scan/internal/stats"
)

func TestFormat_RoundTrip(t *testing.T) {
	age := 45
	score := 90.0
	records := []*record.Record{
		{
			Identifier:   "report.pdf",
			Age:          &age,
			Bucket:       record.Bucket20To60,
			OutcomeScore: &score,
			Decision:     record.Accepted,
		},
	}
	report, err := stats.Aggregate(records)
	if err != nil {
		t.Fatal(err)
	}

	out, err := NewFormatter().Format(records, report, formatters.Options{})
	if err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Records []struct {
			Identifier   string   `json:"identifier"`
			Age          *int     `json:"age"`
			AgeBucket    string   `json:"age_bucket"`
			OutcomeScore *float64 `json:"outcome_score"`
			Decision     string   `json:"decision"`
		} `json:"records"`
		AgeGroups map[string]struct {
			Total         int    `json:"total"`
			FinalDecision string `json:"final_decision"`
		} `json:"age_groups"`
		Overall struct {
			Total          int     `json:"total"`
			AcceptanceRate float64 `json:"acceptance_rate"`
			FinalDecision  string  `json:"final_decision"`
		} `json:"overall"`
	}
	if err := encjson.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if len(doc.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(doc.Records))
	}
	rec := doc.Records[0]
	if rec.Identifier != "report.pdf" || *rec.Age != 45 || rec.AgeBucket != "20 to 60" ||
		*rec.OutcomeScore != 90.0 || rec.Decision != "Accepted" {
		t.Errorf("record = %+v", rec)
	}

	// JSON output always carries all four buckets, zeroed when empty.
	if len(doc.AgeGroups) != 4 {
		t.Errorf("got %d age groups, want 4", len(doc.AgeGroups))
	}
	if doc.AgeGroups["Below 20"].Total != 0 {
		t.Errorf("Below 20 total = %d, want 0", doc.AgeGroups["Below 20"].Total)
	}
	if doc.AgeGroups["20 to 60"].FinalDecision != "Accepted" {
		t.Errorf("20 to 60 decision = %q", doc.AgeGroups["20 to 60"].FinalDecision)
	}

	if doc.Overall.Total != 1 || doc.Overall.FinalDecision != "Accepted" {
		t.Errorf("overall = %+v", doc.Overall)
	}
}

func TestFormat_NullsForMissingValues(t *testing.T) {
	records := []*record.Record{
		{Identifier: "empty.txt", Bucket: record.BucketUnknown, Decision: record.Undetermined},
	}
	report, err := stats.Aggregate(records)
	if err != nil {
		t.Fatal(err)
	}

	out, err := NewFormatter().Format(records, report, formatters.Options{})
	if err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Records []map[string]interface{} `json:"records"`
	}
	if err := encjson.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Records[0]["age"] != nil {
		t.Errorf("age = %v, want null", doc.Records[0]["age"])
	}
	if doc.Records[0]["outcome_score"] != nil {
		t.Errorf("outcome_score = %v, want null", doc.Records[0]["outcome_score"])
	}
}
