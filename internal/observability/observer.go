// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// ObservabilityLevel controls how much the observer emits.
type ObservabilityLevel int

const (
	ObservabilityOff     ObservabilityLevel = 0
	ObservabilityMetrics ObservabilityLevel = 1
	ObservabilityDebug   ObservabilityLevel = 2
)

// StandardObserver records operation timings for pipeline components.
// Metrics are only written in debug mode; at the metrics level the
// observer is a cheap no-op sink components can call unconditionally.
type StandardObserver struct {
	level         ObservabilityLevel
	writer        io.Writer
	DebugObserver *DebugObserver // set when running in debug mode
}

// OperationData is one emitted metrics line.
type OperationData struct {
	Component  string                 `json:"component"`
	Operation  string                 `json:"operation"`
	Document   string                 `json:"document,omitempty"`
	DurationMs int64                  `json:"duration_ms,omitempty"`
	Success    bool                   `json:"success"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// NewStandardObserver creates an observer writing to w.
func NewStandardObserver(level ObservabilityLevel, w io.Writer) *StandardObserver {
	return &StandardObserver{level: level, writer: w}
}

// StartTiming begins timing an operation and returns the completion
// callback.
func (o *StandardObserver) StartTiming(component, operation, document string) func(success bool, metadata map[string]interface{}) {
	start := time.Now()
	return func(success bool, metadata map[string]interface{}) {
		o.logOperation(OperationData{
			Component:  component,
			Operation:  operation,
			Document:   document,
			DurationMs: time.Since(start).Milliseconds(),
			Success:    success,
			Metadata:   metadata,
		})
	}
}

func (o *StandardObserver) logOperation(data OperationData) {
	if o.level != ObservabilityDebug {
		return
	}
	json.NewEncoder(o.writer).Encode(data)
}

// DebugObserver provides indented step-by-step progress output on top of
// the standard metrics.
type DebugObserver struct {
	*StandardObserver
	indent int
}

// NewDebugObserver creates a debug observer writing to w.
func NewDebugObserver(w io.Writer) *DebugObserver {
	return &DebugObserver{StandardObserver: NewStandardObserver(ObservabilityDebug, w)}
}

// StartStep begins a processing step and returns its completion callback.
func (d *DebugObserver) StartStep(component, step, document string) func(success bool, details string) {
	start := time.Now()
	fmt.Fprintf(d.writer, "%s-> %s: %s (%s)\n", strings.Repeat("  ", d.indent), component, step, document)
	d.indent++

	return func(success bool, details string) {
		d.indent--
		status := "ok"
		if !success {
			status = "failed"
		}
		fmt.Fprintf(d.writer, "%s<- %s: %s %s (%dms) %s\n",
			strings.Repeat("  ", d.indent), component, step, status,
			time.Since(start).Milliseconds(), details)
	}
}

// LogDetail logs one detail line within the current step.
func (d *DebugObserver) LogDetail(component, detail string) {
	fmt.Fprintf(d.writer, "%s   %s: %s\n", strings.Repeat("  ", d.indent), component, detail)
}
