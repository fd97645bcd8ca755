// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/DataDog/p2-go/internal/ingest"
)

func newSummarizeCmd(opts *options) *cobra.Command {
	var workers int
	var quantiles []float64
	cmd := &cobra.Command{
		Use:   "summarize [file...]",
		Short: "estimate quartiles and quantiles of the numbers in the files, or stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("workers") {
				opts.cfg.Workers = workers
			}
			if cmd.Flags().Changed("quantile") {
				opts.cfg.Quantiles = quantiles
			}
			if err := opts.cfg.Validate(); err != nil {
				return err
			}

			sources, closeAll, err := openSources(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			defer closeAll()

			opts.logger.Debug().
				Int("workers", opts.cfg.Workers).
				Floats64("quantiles", opts.cfg.Quantiles).
				Int("sources", len(sources)).
				Msg("summarizing")
			summary, err := ingest.Run(cmd.Context(), opts.logger, sources, opts.cfg.Workers, opts.cfg.Quantiles)
			if err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), summary)
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", opts.cfg.Workers, "number of shards estimated in parallel")
	cmd.Flags().Float64SliceVarP(&quantiles, "quantile", "q", opts.cfg.Quantiles, "quantiles to estimate besides the quartiles")
	return cmd
}

func openSources(stdin io.Reader, paths []string) ([]ingest.Source, func(), error) {
	if len(paths) == 0 {
		return []ingest.Source{{Name: "stdin", Reader: stdin}}, func() {}, nil
	}
	var files []*os.File
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}
	sources := make([]ingest.Source, 0, len(paths))
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			closeAll()
			return nil, nil, errors.Wrap(err, "open input")
		}
		files = append(files, f)
		sources = append(sources, ingest.Source{Name: path, Reader: f})
	}
	return sources, closeAll, nil
}

type row struct {
	name  string
	value float64
}

func printSummary(out io.Writer, s *ingest.Summary) error {
	q := s.Quartile
	rows := []row{
		{"min", q.Min()},
		{"q1", q.LowerQuartile()},
		{"median", q.Median()},
		{"q3", q.UpperQuartile()},
	}
	for _, estimator := range s.Quantiles {
		rows = append(rows, row{fmt.Sprintf("p%.4g", estimator.P()*100), estimator.Quantile()})
	}
	rows = append(rows, row{"max", q.Max()})

	if _, err := fmt.Fprintf(out, "%-8s %d\n", "count", s.Count()); err != nil {
		return err
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(out, "%-8s %g\n", r.name, r.value); err != nil {
			return err
		}
	}
	return nil
}
