// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package ingest

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/DataDog/p2-go/p2"
)

// Source is a named stream of newline separated numbers.
type Source struct {
	Name   string
	Reader io.Reader
}

// Read parses src and hands the values to emit in batches of at most size
// values. Blank lines and lines starting with # are skipped. emit owns each
// batch it receives.
func Read(src Source, size int, emit func(batch []float64) error) error {
	scanner := bufio.NewScanner(src.Reader)
	batch := make([]float64, 0, size)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return errors.Wrapf(err, "%s:%d", src.Name, line)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Wrapf(p2.ErrNonFinite, "%s:%d: %q", src.Name, line, text)
		}
		batch = append(batch, v)
		if len(batch) == size {
			if err := emit(batch); err != nil {
				return err
			}
			batch = make([]float64, 0, size)
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "read %s", src.Name)
	}
	if len(batch) > 0 {
		return emit(batch)
	}
	return nil
}
