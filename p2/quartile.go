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

// Quartile estimates the minimum, the three quartiles and the maximum of a
// stream in constant memory.
//
// A Quartile is not safe for concurrent use.
type Quartile struct {
	markers
}

// NewQuartile allocates an empty quartile estimator.
func NewQuartile() *Quartile {
	return &Quartile{markers: newMarkers(0.25, 0.5, 0.75)}
}

// Add a new observation. NaN and infinite values are rejected with
// ErrNonFinite and leave the estimator unchanged.
func (s *Quartile) Add(v float64) error {
	return s.add(v)
}

// MergeWith folds o into s in place; o is not modified. See
// Quantile.MergeWith for the accuracy caveats.
func (s *Quartile) MergeWith(o *Quartile) {
	s.mergeWith(&o.markers)
}

// CombineQuartiles returns a new estimator approximating the union of the
// streams observed by a and b.
func CombineQuartiles(a, b *Quartile) *Quartile {
	c := a.Copy()
	c.MergeWith(b)
	return c
}

// Count returns the number of observations added or merged in.
func (s *Quartile) Count() int64 {
	return s.count
}

func (s *Quartile) IsEmpty() bool {
	return s.count == 0
}

// Min returns the minimum, or 0th percentile.
func (s *Quartile) Min() float64 {
	return s.height(0)
}

// LowerQuartile returns the estimate of the 25th percentile.
func (s *Quartile) LowerQuartile() float64 {
	return s.height(1)
}

// Median returns the estimate of the 50th percentile.
func (s *Quartile) Median() float64 {
	return s.height(2)
}

// UpperQuartile returns the estimate of the 75th percentile.
func (s *Quartile) UpperQuartile() float64 {
	return s.height(3)
}

// Max returns the maximum, or 100th percentile.
func (s *Quartile) Max() float64 {
	return s.height(4)
}

// Quartiles returns Q0 through Q4.
func (s *Quartile) Quartiles() [5]float64 {
	return s.heights()
}

// Copy returns an independent copy of the estimator.
func (s *Quartile) Copy() *Quartile {
	c := *s
	return &c
}

func (s *Quartile) String() string {
	var buffer bytes.Buffer
	buffer.WriteString(fmt.Sprintf("count: %d ", s.count))
	buffer.WriteString(fmt.Sprintf("quartiles: %v ", s.Quartiles()))
	buffer.WriteString(fmt.Sprintf("markers: %v", s.m))
	return buffer.String()
}

// MemorySize returns the size of the estimator in bytes.
func (s *Quartile) MemorySize() int {
	return int(reflect.TypeOf(*s).Size())
}
