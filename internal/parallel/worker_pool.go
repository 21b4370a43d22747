// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package parallel runs per-document analysis across worker goroutines.
// Documents are independent, so the only coordination is collecting
// results; ordering is restored by job index afterwards.
package parallel

import (
	"context"
	"runtime"
	"sync"
	"time"

	"medreport-scan/internal/observability"
	"medreport-scan/internal/record"
)

// Job is one document to analyze.
type Job struct {
	Index    int // position in the input batch, used to restore ordering
	FilePath string
}

// Result is the outcome of one job. Record may be non-nil even when Err
// is set: a failed text decode still yields a default record so one bad
// document never aborts the batch.
type Result struct {
	Index    int
	FilePath string
	Record   *record.Record
	Err      error
	Duration time.Duration
}

// ProcessFunc analyzes one document.
type ProcessFunc func(filePath string) (*record.Record, error)

// WorkerPool fans document jobs out to N workers.
type WorkerPool struct {
	workers  int
	jobs     chan *Job
	results  chan *Result
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	process  ProcessFunc
	observer *observability.StandardObserver
}

// NewWorkerPool creates a pool of the given size. A size below 1 defaults
// to the CPU count.
func NewWorkerPool(workers int, process ProcessFunc, observer *observability.StandardObserver) *WorkerPool {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &WorkerPool{
		workers:  workers,
		jobs:     make(chan *Job, workers*2),
		results:  make(chan *Result, workers*2),
		ctx:      ctx,
		cancel:   cancel,
		process:  process,
		observer: observer,
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

// Submit queues a job. It blocks when the queue is full and returns early
// if the pool has been canceled.
func (wp *WorkerPool) Submit(job *Job) {
	select {
	case wp.jobs <- job:
	case <-wp.ctx.Done():
	}
}

// Close signals that no further jobs will be submitted. Workers exit once
// the queue drains and the results channel is closed behind them.
func (wp *WorkerPool) Close() {
	close(wp.jobs)
	go func() {
		wp.wg.Wait()
		close(wp.results)
		wp.cancel()
	}()
}

// Results returns the results channel. It is closed after Close once all
// workers finish.
func (wp *WorkerPool) Results() <-chan *Result {
	return wp.results
}

func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()

	for job := range wp.jobs {
		result := wp.processJob(job, id)
		select {
		case wp.results <- result:
		case <-wp.ctx.Done():
			return
		}
	}
}

func (wp *WorkerPool) processJob(job *Job, workerID int) *Result {
	start := time.Now()

	var finishTiming func(bool, map[string]interface{})
	if wp.observer != nil {
		finishTiming = wp.observer.StartTiming("worker_pool", "process_document", job.FilePath)
	}

	rec, err := wp.process(job.FilePath)
	duration := time.Since(start)

	if finishTiming != nil {
		finishTiming(err == nil, map[string]interface{}{
			"worker_id":   workerID,
			"duration_ms": duration.Milliseconds(),
			"had_error":   err != nil,
		})
	}

	return &Result{
		Index:    job.Index,
		FilePath: job.FilePath,
		Record:   rec,
		Err:      err,
		Duration: duration,
	}
}
