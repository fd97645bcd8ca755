// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2021 Datadog, Inc.

package dataset

import (
	"math"
	"sort"
)

// Dataset keeps every value it is given so that exact quantiles can be
// compared against the estimates.
type Dataset struct {
	Values []float64
	Count  int64
	sorted bool
}

func NewDataset() *Dataset { return &Dataset{} }

func (d *Dataset) Add(v float64) {
	d.Values = append(d.Values, v)
	d.Count++
	d.sorted = false
}

// LowerQuantile returns the value at rank floor(q*(count-1)), or NaN if q is
// out of range or the dataset is empty.
func (d *Dataset) LowerQuantile(q float64) float64 {
	if q < 0 || q > 1 || d.Count == 0 {
		return math.NaN()
	}

	d.sort()
	rank := q * float64(d.Count-1)
	return d.Values[int(math.Floor(rank))]
}

// MinRank returns the number of values strictly lower than v.
func (d *Dataset) MinRank(v float64) int64 {
	d.sort()
	return int64(sort.Search(len(d.Values), func(i int) bool { return d.Values[i] >= v }))
}

// MaxRank returns the number of values lower than or equal to v.
func (d *Dataset) MaxRank(v float64) int64 {
	d.sort()
	return int64(sort.Search(len(d.Values), func(i int) bool { return d.Values[i] > v }))
}

func (d *Dataset) Min() float64 {
	d.sort()
	return d.Values[0]
}

func (d *Dataset) Max() float64 {
	d.sort()
	return d.Values[len(d.Values)-1]
}

func (d *Dataset) Merge(o *Dataset) {
	for _, v := range o.Values {
		d.Add(v)
	}
}

func (d *Dataset) sort() {
	if d.sorted {
		return
	}
	sort.Float64s(d.Values)
	d.sorted = true
}
