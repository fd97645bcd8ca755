// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package ingest

import (
	"github.com/pkg/errors"

	"github.com/DataDog/p2-go/p2"
)

// Summary is the set of estimators fed by one shard.
type Summary struct {
	Quartile  *p2.Quartile
	Quantiles []*p2.Quantile
}

func NewSummary(quantiles []float64) (*Summary, error) {
	s := &Summary{Quartile: p2.NewQuartile()}
	for _, q := range quantiles {
		estimator, err := p2.NewQuantile(q)
		if err != nil {
			return nil, errors.Wrapf(err, "quantile %g", q)
		}
		s.Quantiles = append(s.Quantiles, estimator)
	}
	return s, nil
}

func (s *Summary) Add(v float64) error {
	if err := s.Quartile.Add(v); err != nil {
		return err
	}
	for _, q := range s.Quantiles {
		if err := q.Add(v); err != nil {
			return err
		}
	}
	return nil
}

// MergeWith folds o into s. Both summaries must track the same quantiles in
// the same order; otherwise s is left unchanged.
func (s *Summary) MergeWith(o *Summary) error {
	if len(s.Quantiles) != len(o.Quantiles) {
		return p2.ErrIncompatibleMerge
	}
	for i, q := range s.Quantiles {
		if q.P() != o.Quantiles[i].P() {
			return errors.Wrapf(p2.ErrIncompatibleMerge, "quantile %g and %g", q.P(), o.Quantiles[i].P())
		}
	}
	s.Quartile.MergeWith(o.Quartile)
	for i, q := range s.Quantiles {
		if err := q.MergeWith(o.Quantiles[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Summary) Count() int64 {
	return s.Quartile.Count()
}
