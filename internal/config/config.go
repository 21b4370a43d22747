// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults are the baseline settings, overridable per profile and again by
// command-line flags.
type Defaults struct {
	Format           string `yaml:"format"`
	Workers          int    `yaml:"workers"`
	Recursive        bool   `yaml:"recursive"`
	Verbose          bool   `yaml:"verbose"`
	Debug            bool   `yaml:"debug"`
	NoColor          bool   `yaml:"no_color"`
	ShowEmptyBuckets bool   `yaml:"show_empty_buckets"`
}

// Analysis holds tunables for the extraction pipeline. Zero values mean
// the pipeline's own defaults.
type Analysis struct {
	// ReferenceYear fixes the year used for birth-year back-calculation,
	// mainly for reproducible runs over historical corpora.
	ReferenceYear int `yaml:"reference_year"`

	// PositiveTerms and NegativeTerms override the lexical sentiment
	// weight tables.
	PositiveTerms map[string]float64 `yaml:"positive_terms"`
	NegativeTerms map[string]float64 `yaml:"negative_terms"`
}

// Profile is a named settings bundle for a scanning scenario.
type Profile struct {
	Description      string `yaml:"description"`
	Format           string `yaml:"format"`
	Workers          int    `yaml:"workers"`
	Recursive        bool   `yaml:"recursive"`
	Verbose          bool   `yaml:"verbose"`
	Debug            bool   `yaml:"debug"`
	NoColor          bool   `yaml:"no_color"`
	ShowEmptyBuckets bool   `yaml:"show_empty_buckets"`
}

// Config is the application configuration.
type Config struct {
	Defaults Defaults           `yaml:"defaults"`
	Analysis Analysis           `yaml:"analysis"`
	Profiles map[string]Profile `yaml:"profiles"`
}

// DefaultConfig returns the built-in configuration used when no file is
// found.
func DefaultConfig() *Config {
	return &Config{
		Defaults: Defaults{
			Format: "text",
		},
	}
}

// LoadConfig reads configuration from path. An empty path returns the
// defaults; a missing or unreadable file is an error so callers can decide
// whether to fall back.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
	}
	if cfg.Defaults.Format == "" {
		cfg.Defaults.Format = "text"
	}
	return cfg, nil
}

// GetProfile looks up a named profile.
func (c *Config) GetProfile(name string) (*Profile, error) {
	profile, ok := c.Profiles[name]
	if !ok {
		return nil, fmt.Errorf("profile %q not found in configuration", name)
	}
	return &profile, nil
}

// configFileNames are checked in order in each search directory.
var configFileNames = []string{
	"medreport-scan.yaml",
	"medreport-scan.yml",
	".medreport-scan.yaml",
	".medreport-scan.yml",
}

// FindConfigFile looks for a configuration file in the current directory,
// then the user config directory. Returns "" when none exists.
func FindConfigFile() string {
	for _, name := range configFileNames {
		if fileExists(name) {
			return name
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		candidate := filepath.Join(configDir, "medreport-scan", "config.yaml")
		if fileExists(candidate) {
			return candidate
		}
	}
	return ""
}

// LoadConfigOrDefault resolves and loads configuration, falling back to the
// built-in defaults on any problem. Callers must not crash on a bad file.
func LoadConfigOrDefault(path string) *Config {
	if path == "" {
		path = FindConfigFile()
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
