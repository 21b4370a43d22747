// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
)

// System renders CLI help output.
type System struct {
	colors map[string]*color.Color
}

// NewSystem creates a help system. Colors are disabled when noColor is set.
func NewSystem(noColor bool) *System {
	if noColor {
		color.NoColor = true
	}
	return &System{
		colors: map[string]*color.Color{
			"title":   color.New(color.FgWhite, color.Bold),
			"header":  color.New(color.FgBlue, color.Bold),
			"example": color.New(color.FgMagenta),
		},
	}
}

// ShowGeneralHelp displays general help information.
func (h *System) ShowGeneralHelp() {
	h.colors["title"].Println("Medreport Scan - Medical Report Analysis Tool")
	fmt.Println("=============================================")
	fmt.Println()
	fmt.Println("Analyzes medical report documents (PDF or plain text), extracts subject")
	fmt.Println("age and treatment-outcome signals, and aggregates acceptance statistics")
	fmt.Println("by age group.")
	fmt.Println()
	h.colors["header"].Println("USAGE:")
	fmt.Println("  medreport-scan --file <path-to-report> [options]")
	fmt.Println("  medreport-scan --dir <path-to-folder> [options]")
	fmt.Println()

	h.colors["header"].Println("OPTIONS:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  --file\t<path>\tPath to a single report file to analyze")
	fmt.Fprintln(w, "  --dir\t<path>\tPath to a folder of report files (.pdf, .txt)")
	fmt.Fprintln(w, "  --recursive\t\tDescend into subdirectories when scanning a folder")
	fmt.Fprintln(w, "  --format\t<format>\tOutput format: text, csv, json (default: text)")
	fmt.Fprintln(w, "  --output\t<path>\tPath to output file (default: stdout)")
	fmt.Fprintln(w, "  --workers\t<n>\tNumber of analysis workers (default: number of CPUs)")
	fmt.Fprintln(w, "  --config\t<path>\tPath to configuration file (YAML)")
	fmt.Fprintln(w, "  --profile\t<name>\tProfile name to use from config file")
	fmt.Fprintln(w, "  --show-empty\t\tInclude age groups with zero documents in output")
	fmt.Fprintln(w, "  --verbose\t\tInclude per-document word and entity counts")
	fmt.Fprintln(w, "  --debug\t\tEnable step-by-step debug logging on stderr")
	fmt.Fprintln(w, "  --no-color\t\tDisable colored output")
	fmt.Fprintln(w, "  --version\t\tShow version information")
	fmt.Fprintln(w, "  --help\t\tShow this help message")
	w.Flush()

	fmt.Println()
	h.colors["header"].Println("EXAMPLES:")
	h.colors["example"].Println("  medreport-scan --file report.pdf")
	h.colors["example"].Println("  medreport-scan --dir ./reports --format csv --output results.csv")
	h.colors["example"].Println("  medreport-scan --dir ./reports --recursive --workers 8 --format json")
	h.colors["example"].Println("  medreport-scan --dir ./reports --config medreport-scan.yaml --profile batch")

	fmt.Println()
	h.colors["header"].Println("CONFIGURATION:")
	fmt.Println("  Project config: medreport-scan.yaml or .medreport-scan.yaml (current directory)")
	fmt.Println("  User config:    <user-config-dir>/medreport-scan/config.yaml")
}
