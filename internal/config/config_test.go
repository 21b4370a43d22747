// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Empty(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Defaults.Format)
}

func TestLoadConfig_FromFile(t *testing.T) {
	content := `
defaults:
  format: csv
  workers: 4
  recursive: true
analysis:
  reference_year: 2024
  positive_terms:
    stabilized: 1.5
profiles:
  batch:
    description: unattended batch runs
    format: json
    workers: 16
`
	path := filepath.Join(t.TempDir(), "medreport-scan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "csv", cfg.Defaults.Format)
	assert.Equal(t, 4, cfg.Defaults.Workers)
	assert.True(t, cfg.Defaults.Recursive)
	assert.Equal(t, 2024, cfg.Analysis.ReferenceYear)
	assert.Equal(t, 1.5, cfg.Analysis.PositiveTerms["stabilized"])

	profile, err := cfg.GetProfile("batch")
	require.NoError(t, err)
	assert.Equal(t, "json", profile.Format)
	assert.Equal(t, 16, profile.Workers)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("defaults: [not a map"), 0o600))
	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestGetProfile_Unknown(t *testing.T) {
	cfg := DefaultConfig()
	_, err := cfg.GetProfile("nope")
	require.Error(t, err)
}

func TestLoadConfigOrDefault_FallsBack(t *testing.T) {
	cfg := LoadConfigOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NotNil(t, cfg)
	assert.Equal(t, "text", cfg.Defaults.Format)
}
