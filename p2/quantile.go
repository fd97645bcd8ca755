// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package p2

import (
	"bytes"
	"fmt"
	"reflect"
)

// Quantile estimates a single quantile p of a stream, along with its minimum
// and maximum, in constant memory. Besides the target marker it tracks two
// helper markers at p/2 and (1+p)/2.
//
// A Quantile is not safe for concurrent use. Use one estimator per goroutine
// and merge them with MergeWith.
type Quantile struct {
	p float64
	markers
}

// NewQuantile allocates an estimator for the quantile p, which must be
// strictly between 0 and 1.
func NewQuantile(p float64) (*Quantile, error) {
	if !(p > 0 && p < 1) {
		return nil, ErrInvalidQuantile
	}
	return &Quantile{
		p:       p,
		markers: newMarkers(p/2, p, (1+p)/2),
	}, nil
}

// Add a new observation. NaN and infinite values are rejected with
// ErrNonFinite and leave the estimator unchanged.
func (s *Quantile) Add(v float64) error {
	return s.add(v)
}

// MergeWith folds o into s in place; o is not modified. Both estimators must
// track the same quantile.
//
// The merged interior markers are a count-weighted blend of both estimators.
// It is an approximation that works well when both streams have similar
// distributions, and the result may depend on the merge order.
func (s *Quantile) MergeWith(o *Quantile) error {
	if s.p != o.p {
		return ErrIncompatibleMerge
	}
	s.mergeWith(&o.markers)
	return nil
}

// Combine returns a new estimator approximating the union of the streams
// observed by a and b. Neither input is modified.
func Combine(a, b *Quantile) (*Quantile, error) {
	c := a.Copy()
	if err := c.MergeWith(b); err != nil {
		return nil, err
	}
	return c, nil
}

// P returns the target quantile.
func (s *Quantile) P() float64 {
	return s.p
}

// Count returns the number of observations added or merged in.
func (s *Quantile) Count() int64 {
	return s.count
}

func (s *Quantile) IsEmpty() bool {
	return s.count == 0
}

// Quantile returns the current estimate of the target quantile, or NaN if
// the estimator is empty.
func (s *Quantile) Quantile() float64 {
	return s.height(2)
}

// Min returns the smallest observation, or NaN if the estimator is empty.
func (s *Quantile) Min() float64 {
	return s.height(0)
}

// Max returns the largest observation, or NaN if the estimator is empty.
func (s *Quantile) Max() float64 {
	return s.height(4)
}

// LowerMarker returns the estimate at p/2.
func (s *Quantile) LowerMarker() float64 {
	return s.height(1)
}

// UpperMarker returns the estimate at (1+p)/2.
func (s *Quantile) UpperMarker() float64 {
	return s.height(3)
}

// Heights returns the five tracked values, from the minimum to the maximum.
func (s *Quantile) Heights() [5]float64 {
	return s.heights()
}

// Copy returns an independent copy of the estimator.
func (s *Quantile) Copy() *Quantile {
	c := *s
	return &c
}

func (s *Quantile) String() string {
	var buffer bytes.Buffer
	buffer.WriteString(fmt.Sprintf("p: %g ", s.p))
	buffer.WriteString(fmt.Sprintf("count: %d ", s.count))
	buffer.WriteString(fmt.Sprintf("min: %g ", s.Min()))
	buffer.WriteString(fmt.Sprintf("quantile: %g ", s.Quantile()))
	buffer.WriteString(fmt.Sprintf("max: %g ", s.Max()))
	buffer.WriteString(fmt.Sprintf("markers: %v", s.m))
	return buffer.String()
}

// MemorySize returns the size of the estimator in bytes.
func (s *Quantile) MemorySize() int {
	return int(reflect.TypeOf(*s).Size())
}
