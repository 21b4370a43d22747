// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"medreport-scan/internal/config"
	"medreport-scan/internal/core"
	"medreport-scan/internal/formatters"
	_ "medreport-scan/internal/formatters/csv"
	_ "medreport-scan/internal/formatters/json"
	_ "medreport-scan/internal/formatters/text"
	"medreport-scan/internal/help"
	"medreport-scan/internal/observability"
	"medreport-scan/internal/preprocessors"
	"medreport-scan/internal/version"

	"golang.org/x/term"
)

// cliFlags holds raw command line flag values.
type cliFlags struct {
	file        string
	dir         string
	recursive   bool
	format      string
	output      string
	workers     int
	configFile  string
	profile     string
	showEmpty   bool
	verbose     bool
	debug       bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// settings holds the resolved configuration after merging config file,
// profile, and flags (flags win, then profile, then config defaults).
type settings struct {
	format    string
	workers   int
	recursive bool
	showEmpty bool
	verbose   bool
	debug     bool
	noColor   bool
}

func main() {
	flags := parseFlags()

	if flags.showVersion {
		fmt.Println(version.Info())
		return
	}
	if flags.showHelp || (flags.file == "" && flags.dir == "") {
		help.NewSystem(flags.noColor).ShowGeneralHelp()
		if flags.showHelp {
			return
		}
		os.Exit(1)
	}

	cfg := config.LoadConfigOrDefault(flags.configFile)

	var activeProfile *config.Profile
	if flags.profile != "" {
		profile, err := cfg.GetProfile(flags.profile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		activeProfile = profile
	}

	resolved := resolveSettings(cfg, activeProfile, flags)

	observer := observability.NewStandardObserver(observability.ObservabilityMetrics, os.Stderr)
	if resolved.debug {
		debugObs := observability.NewDebugObserver(os.Stderr)
		observer = debugObs.StandardObserver
		observer.DebugObserver = debugObs
	}

	files, err := collectFiles(flags, resolved.recursive)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no supported report files found (.pdf, .txt)")
		os.Exit(1)
	}

	analyzer := core.NewAnalyzer(core.Config{
		Workers:       resolved.workers,
		ReferenceYear: cfg.Analysis.ReferenceYear,
		PositiveTerms: cfg.Analysis.PositiveTerms,
		NegativeTerms: cfg.Analysis.NegativeTerms,
		Observer:      observer,
	})

	batch := analyzer.ProcessFiles(files)
	for _, failure := range batch.Failures {
		fmt.Fprintf(os.Stderr, "Warning: %s: %v\n", failure.FilePath, failure.Err)
	}

	report, err := analyzer.Aggregate(batch.Records)
	if err != nil {
		// Only reachable through a programming defect upstream.
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	options := formatters.Options{
		Verbose:          resolved.verbose,
		NoColor:          resolved.noColor || flags.output != "" || !isTerminal(os.Stdout),
		ShowEmptyBuckets: resolved.showEmpty,
	}
	output, err := formatters.Export(resolved.format, batch.Records, report, options)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flags.output != "" {
		if err := os.WriteFile(flags.output, []byte(output+"\n"), 0o600); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		return
	}
	fmt.Println(output)
}

func parseFlags() *cliFlags {
	flags := &cliFlags{}
	flag.StringVar(&flags.file, "file", "", "Path to a single report file to analyze")
	flag.StringVar(&flags.dir, "dir", "", "Path to a folder of report files")
	flag.BoolVar(&flags.recursive, "recursive", false, "Descend into subdirectories")
	flag.StringVar(&flags.format, "format", "", "Output format: text, csv, json")
	flag.StringVar(&flags.output, "output", "", "Path to output file (default: stdout)")
	flag.IntVar(&flags.workers, "workers", 0, "Number of analysis workers")
	flag.StringVar(&flags.configFile, "config", "", "Path to configuration file")
	flag.StringVar(&flags.profile, "profile", "", "Profile name from config file")
	flag.BoolVar(&flags.showEmpty, "show-empty", false, "Include empty age groups in output")
	flag.BoolVar(&flags.verbose, "verbose", false, "Include per-document counters")
	flag.BoolVar(&flags.debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")
	flag.BoolVar(&flags.showVersion, "version", false, "Show version information")
	flag.BoolVar(&flags.showHelp, "help", false, "Show help")
	flag.Usage = func() { help.NewSystem(false).ShowGeneralHelp() }
	flag.Parse()
	return flags
}

// isFlagSet reports whether a flag was explicitly provided.
func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func resolveSettings(cfg *config.Config, profile *config.Profile, flags *cliFlags) *settings {
	s := &settings{
		format:    cfg.Defaults.Format,
		workers:   cfg.Defaults.Workers,
		recursive: cfg.Defaults.Recursive,
		showEmpty: cfg.Defaults.ShowEmptyBuckets,
		verbose:   cfg.Defaults.Verbose,
		debug:     cfg.Defaults.Debug,
		noColor:   cfg.Defaults.NoColor,
	}

	if profile != nil {
		if profile.Format != "" {
			s.format = profile.Format
		}
		if profile.Workers > 0 {
			s.workers = profile.Workers
		}
		s.recursive = s.recursive || profile.Recursive
		s.showEmpty = s.showEmpty || profile.ShowEmptyBuckets
		s.verbose = s.verbose || profile.Verbose
		s.debug = s.debug || profile.Debug
		s.noColor = s.noColor || profile.NoColor
	}

	if isFlagSet("format") {
		s.format = flags.format
	}
	if isFlagSet("workers") {
		s.workers = flags.workers
	}
	if isFlagSet("recursive") {
		s.recursive = flags.recursive
	}
	if isFlagSet("show-empty") {
		s.showEmpty = flags.showEmpty
	}
	if isFlagSet("verbose") {
		s.verbose = flags.verbose
	}
	if isFlagSet("debug") {
		s.debug = flags.debug
	}
	if isFlagSet("no-color") {
		s.noColor = flags.noColor
	}
	if s.format == "" {
		s.format = "text"
	}
	return s
}

// collectFiles gathers the report files to analyze. Single-file mode
// accepts any file the router can decode; directory mode filters by
// supported extension.
func collectFiles(flags *cliFlags, recursive bool) ([]string, error) {
	router := preprocessors.NewDefaultRouter()

	if flags.file != "" {
		info, err := os.Stat(flags.file)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%s is a directory (use --dir)", flags.file)
		}
		if !router.CanProcess(flags.file) {
			return nil, fmt.Errorf("unsupported file type: %s", flags.file)
		}
		return []string{flags.file}, nil
	}

	info, err := os.Stat(flags.dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory (use --file)", flags.dir)
	}

	var files []string
	err = filepath.WalkDir(flags.dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !recursive && path != flags.dir {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if router.CanProcess(path) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
