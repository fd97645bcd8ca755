// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package ingest

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	batchSize = 1024
	// batches buffered per shard
	queueDepth = 4
)

// Run reads every source and spreads the values over workers shards, batch by
// batch in round-robin order. Each shard owns its own Summary, so no estimator
// is shared between goroutines; the shard summaries are merged once all input
// has been consumed.
func Run(ctx context.Context, logger zerolog.Logger, sources []Source, workers int, quantiles []float64) (*Summary, error) {
	if workers < 1 {
		return nil, errors.Errorf("workers must be positive, got %d", workers)
	}
	shards := make([]*Summary, workers)
	queues := make([]chan []float64, workers)
	for i := range shards {
		s, err := NewSummary(quantiles)
		if err != nil {
			return nil, err
		}
		shards[i] = s
		queues[i] = make(chan []float64, queueDepth)
	}

	g, ctx := errgroup.WithContext(ctx)
	for i := range shards {
		i, shard, queue := i, shards[i], queues[i]
		g.Go(func() error {
			for batch := range queue {
				for _, v := range batch {
					if err := shard.Add(v); err != nil {
						return errors.Wrapf(err, "shard %d", i)
					}
				}
			}
			logger.Debug().Int("shard", i).Int64("count", shard.Count()).Msg("shard drained")
			return nil
		})
	}
	g.Go(func() error {
		defer func() {
			for _, queue := range queues {
				close(queue)
			}
		}()
		next := 0
		for _, src := range sources {
			err := Read(src, batchSize, func(batch []float64) error {
				select {
				case queues[next] <- batch:
				case <-ctx.Done():
					return ctx.Err()
				}
				next = (next + 1) % workers
				return nil
			})
			if err != nil {
				return err
			}
			logger.Info().Str("source", src.Name).Msg("source consumed")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := shards[0]
	for _, shard := range shards[1:] {
		if err := total.MergeWith(shard); err != nil {
			return nil, err
		}
	}
	logger.Debug().Int("shards", workers).Int64("count", total.Count()).Msg("shards merged")
	return total, nil
}
