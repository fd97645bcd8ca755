// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package p2

import (
	"errors"
	"math"
)

// numMarkers is the number of tracked markers: the minimum, three interior
// markers and the maximum.
const numMarkers = 5

var (
	// ErrInvalidQuantile is returned when a target quantile is not in (0, 1).
	ErrInvalidQuantile = errors.New("the quantile must be strictly between 0 and 1")
	// ErrNonFinite is returned by Add for NaN and infinite observations.
	ErrNonFinite = errors.New("the observation must be a finite number")
	// ErrIncompatibleMerge is returned when merging estimators that track
	// different quantiles.
	ErrIncompatibleMerge = errors.New("cannot merge estimators tracking different quantiles")
)

// marker is a (rank, height) pair. rank is the 1-based position among the
// observations seen so far and height the estimated value at that rank.
type marker struct {
	rank   int64
	height float64
}

// markers holds the state shared by the quantile and quartile estimators.
//
// While count < numMarkers, m[0:count] is an insertion-sorted buffer of
// the raw observations and the remaining slots repeat the largest one. From
// the fifth observation on, m[0] is the minimum (its rank counts the
// observations tied at the minimum), m[4] is the maximum (its rank is count)
// and m[1..3] track the interior fractions.
type markers struct {
	fractions [3]float64
	count     int64
	m         [numMarkers]marker
}

func newMarkers(f1, f2, f3 float64) markers {
	return markers{fractions: [3]float64{f1, f2, f3}}
}

func (s *markers) add(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrNonFinite
	}
	s.count++
	if s.count <= numMarkers {
		s.insert(v)
		return nil
	}
	s.bucket(v)
	for i := 1; i <= 3; i++ {
		s.adjust(i)
	}
	return nil
}

// insert places v into the bootstrap buffer.
func (s *markers) insert(v float64) {
	n := int(s.count)
	i := n - 1
	for ; i > 0 && s.m[i-1].height > v; i-- {
		s.m[i].height = s.m[i-1].height
	}
	s.m[i].height = v
	for j := n; j < numMarkers; j++ {
		s.m[j].height = s.m[n-1].height
	}
	if n == numMarkers {
		for j := range s.m {
			s.m[j].rank = int64(j + 1)
		}
	}
}

// bucket updates the extremes and the rank of every marker at or above v.
func (s *markers) bucket(v float64) {
	s.m[4].rank = s.count
	if v > s.m[4].height {
		s.m[4].height = v
		return
	}
	for i := 1; i <= 3; i++ {
		if v <= s.m[i].height {
			s.m[i].rank++
		}
	}
	switch {
	case v == s.m[0].height:
		s.m[0].rank++
	case v < s.m[0].height:
		s.m[0].height = v
		s.m[0].rank = 1
	}
}

// desiredRank is the rank interior marker i should sit at.
func (s *markers) desiredRank(i int) float64 {
	return float64(s.count-1)*s.fractions[i-1] + 1
}

// adjust moves interior marker i by at most one rank towards its desired rank.
func (s *markers) adjust(i int) {
	d := s.desiredRank(i) - float64(s.m[i].rank)
	switch {
	case d >= 1 && s.m[i+1].rank-s.m[i].rank > 1:
		s.m[i].height = s.advanced(i)
		s.m[i].rank++
	case d <= -1 && s.m[i].rank-s.m[i-1].rank > 1:
		s.m[i].height = s.retreated(i)
		s.m[i].rank--
	}
}

// gap returns the rank distance and the slope between markers i and i+1.
func (s *markers) gap(i int) (int64, float64) {
	h := s.m[i+1].rank - s.m[i].rank
	return h, (s.m[i+1].height - s.m[i].height) / float64(h)
}

// slope returns the derivative estimate at marker i, one-sided at the ends.
func (s *markers) slope(i int) float64 {
	switch i {
	case 0:
		h0, d0 := s.gap(0)
		h1, d1 := s.gap(1)
		return derivativeEnd(h0, d0, h1, d1)
	case numMarkers - 1:
		h3, d3 := s.gap(3)
		h2, d2 := s.gap(2)
		return derivativeEnd(h3, d3, h2, d2)
	default:
		hl, dl := s.gap(i - 1)
		hr, dr := s.gap(i)
		return derivative(hl, dl, hr, dr)
	}
}

// advanced is the height of marker i moved one rank up.
func (s *markers) advanced(i int) float64 {
	h, delta := s.gap(i)
	q := hermiteStep(s.m[i].height, s.slope(i), s.slope(i+1), h, delta)
	if !s.between(i, q) {
		q = s.m[i].height + delta
	}
	return s.clamp(i, q)
}

// retreated is the height of marker i moved one rank down.
func (s *markers) retreated(i int) float64 {
	h, delta := s.gap(i - 1)
	q := hermiteStep(s.m[i].height, -s.slope(i), -s.slope(i-1), h, -delta)
	if !s.between(i, q) {
		q = s.m[i].height - delta
	}
	return s.clamp(i, q)
}

func (s *markers) between(i int, q float64) bool {
	return s.m[i-1].height < q && q < s.m[i+1].height
}

func (s *markers) clamp(i int, q float64) float64 {
	if lo := s.m[i-1].height; !(q >= lo) {
		return lo
	}
	if hi := s.m[i+1].height; q > hi {
		return hi
	}
	return q
}

// height returns the read value of marker i.
func (s *markers) height(i int) float64 {
	switch {
	case s.count == 0:
		return math.NaN()
	case s.count >= numMarkers:
		return s.m[i].height
	case i == 0:
		return s.m[0].height
	case i == numMarkers-1:
		return s.m[s.count-1].height
	default:
		return s.m[int(s.fractions[i-1]*float64(s.count-1))].height
	}
}

func (s *markers) heights() [numMarkers]float64 {
	var h [numMarkers]float64
	for i := range h {
		h[i] = s.height(i)
	}
	return h
}

// mergeWith folds o into s. The fractions must already match.
//
// Interior heights move towards o's by o's share of the combined count. This
// is a heuristic that assumes both streams come from similar distributions;
// it is not an exact reconstruction of the union.
func (s *markers) mergeWith(o *markers) {
	if o == s {
		c := *o
		o = &c
	}
	if o.count == 0 {
		return
	}
	if s.count == 0 {
		*s = *o
		return
	}
	if o.count < numMarkers {
		s.replay(o)
		return
	}
	if s.count < numMarkers {
		buffered := *s
		*s = *o
		s.replay(&buffered)
		return
	}

	s.count += o.count
	switch {
	case o.m[0].height == s.m[0].height:
		s.m[0].rank += o.m[0].rank
	case o.m[0].height < s.m[0].height:
		s.m[0] = o.m[0]
	}
	w := float64(o.count) / float64(s.count)
	for i := 1; i <= 3; i++ {
		s.m[i].rank += o.m[i].rank
		s.m[i].height += (o.m[i].height - s.m[i].height) * w
	}
	if o.m[4].height > s.m[4].height {
		s.m[4].height = o.m[4].height
	}
	s.m[4].rank = s.count

	// The blend is ordered in exact arithmetic; undo rounding.
	for i := 1; i <= 3; i++ {
		s.m[i].height = math.Max(s.m[i].height, s.m[i-1].height)
	}
	for i := 3; i >= 1; i-- {
		s.m[i].height = math.Min(s.m[i].height, s.m[i+1].height)
	}
}

// replay adds the raw observations buffered by a bootstrapping estimator.
func (s *markers) replay(o *markers) {
	for i := int64(0); i < o.count; i++ {
		// Buffered values are finite, so add cannot fail.
		_ = s.add(o.m[i].height)
	}
}
