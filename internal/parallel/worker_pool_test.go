// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"medreport-scan/internal/record"
)

func TestWorkerPool_ProcessesAllJobs(t *testing.T) {
	process := func(filePath string) (*record.Record, error) {
		return &record.Record{Identifier: filePath}, nil
	}

	pool := NewWorkerPool(4, process, nil)
	pool.Start()

	const jobs = 50
	go func() {
		for i := 0; i < jobs; i++ {
			pool.Submit(&Job{Index: i, FilePath: fmt.Sprintf("doc-%d.txt", i)})
		}
		pool.Close()
	}()

	seen := make(map[int]*Result)
	for result := range pool.Results() {
		seen[result.Index] = result
	}

	if len(seen) != jobs {
		t.Fatalf("got %d results, want %d", len(seen), jobs)
	}
	for i := 0; i < jobs; i++ {
		result, ok := seen[i]
		if !ok {
			t.Fatalf("missing result for job %d", i)
		}
		if want := fmt.Sprintf("doc-%d.txt", i); result.Record.Identifier != want {
			t.Errorf("job %d record = %q, want %q", i, result.Record.Identifier, want)
		}
	}
}

func TestWorkerPool_ErrorsCarriedPerJob(t *testing.T) {
	process := func(filePath string) (*record.Record, error) {
		if strings.Contains(filePath, "bad") {
			return &record.Record{Identifier: filePath}, errors.New("decode failed")
		}
		return &record.Record{Identifier: filePath}, nil
	}

	pool := NewWorkerPool(2, process, nil)
	pool.Start()
	go func() {
		pool.Submit(&Job{Index: 0, FilePath: "good.txt"})
		pool.Submit(&Job{Index: 1, FilePath: "bad.txt"})
		pool.Close()
	}()

	var failed int
	for result := range pool.Results() {
		if result.Err != nil {
			failed++
			if result.Record == nil {
				t.Error("failed job should still carry its record")
			}
		}
	}
	if failed != 1 {
		t.Errorf("got %d failed jobs, want 1", failed)
	}
}

func TestWorkerPool_DefaultsWorkerCount(t *testing.T) {
	pool := NewWorkerPool(0, func(string) (*record.Record, error) { return nil, nil }, nil)
	if pool.workers < 1 {
		t.Errorf("workers = %d, want >= 1", pool.workers)
	}
}
