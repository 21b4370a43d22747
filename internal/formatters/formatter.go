// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters

import (
	"fmt"
	"sort"
	"strings"

	"medreport-scan/internal/record"
	"medreport-scan/internal/stats"
)

// Options defines configuration options for formatters.
type Options struct {
	Verbose          bool // include per-record counters and extra detail
	NoColor          bool // disable colored output
	ShowEmptyBuckets bool // render buckets with zero records
}

// Formatter renders a batch of records plus its aggregate report.
type Formatter interface {
	// Format renders records and the aggregate report.
	Format(records []*record.Record, report *stats.Report, options Options) (string, error)

	// Name returns the formatter name (e.g. "text", "csv", "json").
	Name() string

	// Description returns a brief description of the output.
	Description() string

	// FileExtension returns the recommended file extension.
	FileExtension() string
}

// Registry holds all registered formatters.
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry creates an empty formatter registry.
func NewRegistry() *Registry {
	return &Registry{formatters: make(map[string]Formatter)}
}

// Register adds a formatter to the registry.
func (r *Registry) Register(formatter Formatter) {
	r.formatters[formatter.Name()] = formatter
}

// Get retrieves a formatter by name.
func (r *Registry) Get(name string) (Formatter, bool) {
	formatter, exists := r.formatters[name]
	return formatter, exists
}

// List returns all registered formatter names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry is the global formatter registry. Formatter packages
// register themselves in init, so callers only need blank imports.
var DefaultRegistry = NewRegistry()

// Register adds a formatter to the default registry.
func Register(formatter Formatter) {
	DefaultRegistry.Register(formatter)
}

// Get retrieves a formatter from the default registry.
func Get(name string) (Formatter, bool) {
	return DefaultRegistry.Get(name)
}

// List lists all formatters in the default registry.
func List() []string {
	return DefaultRegistry.List()
}

// Export renders records and report in the named format.
func Export(format string, records []*record.Record, report *stats.Report, options Options) (string, error) {
	formatter, exists := Get(format)
	if !exists {
		return "", fmt.Errorf("unsupported format %q. Available formats: %s", format, strings.Join(List(), ", "))
	}
	return formatter.Format(records, report, options)
}
