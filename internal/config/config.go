// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package config

import (
	"os"
	"runtime"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config drives p2stat. Zero values are replaced by defaults in Validate.
type Config struct {
	LogLevel  string    `json:"log_level" yaml:"log_level"`
	Workers   int       `json:"workers" yaml:"workers"`
	Quantiles []float64 `json:"quantiles" yaml:"quantiles"`
}

func Default() Config {
	return Config{
		LogLevel:  "info",
		Workers:   runtime.NumCPU(),
		Quantiles: []float64{0.9, 0.99},
	}
}

// Load reads a YAML file on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	file, err := os.Open(path)
	if err != nil {
		return cfg, errors.Wrap(err, "open config")
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return cfg, errors.Wrapf(err, "decode config %s", path)
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.Workers < 1 {
		return errors.Errorf("workers must be positive, got %d", c.Workers)
	}
	for _, q := range c.Quantiles {
		if !(q > 0 && q < 1) {
			return errors.Errorf("quantile %g is not strictly between 0 and 1", q)
		}
	}
	return nil
}
