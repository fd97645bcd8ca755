// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package main

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/DataDog/p2-go/dataset"
)

func newGenCmd(opts *options) *cobra.Command {
	var (
		dist string
		n    int
		seed int64
	)
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "write a synthetic stream, one value per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := dataset.ByName(dist, seed)
			if err != nil {
				return err
			}
			if n < 0 {
				return errors.Errorf("count must not be negative, got %d", n)
			}
			opts.logger.Debug().Str("dist", dist).Int("count", n).Int64("seed", seed).Msg("generating")

			w := bufio.NewWriter(cmd.OutOrStdout())
			buf := make([]byte, 0, 32)
			for i := 0; i < n; i++ {
				buf = strconv.AppendFloat(buf[:0], gen.Generate(), 'g', -1, 64)
				buf = append(buf, '\n')
				if _, err := w.Write(buf); err != nil {
					return errors.Wrap(err, "write")
				}
			}
			return errors.Wrap(w.Flush(), "flush")
		},
	}
	cmd.Flags().StringVarP(&dist, "dist", "d", "uniform", "distribution: "+strings.Join(dataset.Names(), ", "))
	cmd.Flags().IntVarP(&n, "count", "n", 1000, "number of values")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	return cmd
}
