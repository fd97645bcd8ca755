// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "p2stat.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "log_level: debug\nworkers: 3\nquantiles: [0.5, 0.999]\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, []float64{0.5, 0.999}, cfg.Quantiles)
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "workers: 2\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, Default().Quantiles, cfg.Quantiles)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "workers: [\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "quantiles: [1.5]\n"))
	assert.ErrorContains(t, err, "1.5")

	_, err = Load(writeConfig(t, "workers: 0\n"))
	assert.ErrorContains(t, err, "workers")
}
