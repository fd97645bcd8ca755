// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package p2

import (
	"math"
	"math/rand"
	"testing"

	"github.com/DataDog/p2-go/dataset"
	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSizes = []int{2000, 20000, 100000}

// testRankError is the tolerated distance, as a fraction of the count, between
// the rank of an estimate and the rank of the quantile it estimates.
const testRankError = 0.03

func assertRankAccurate(t *testing.T, d *dataset.Dataset, q, estimate float64) {
	expectedRank := q * float64(d.Count-1)
	spread := testRankError * float64(d.Count)
	minRank := float64(d.MinRank(estimate))
	maxRank := float64(d.MaxRank(estimate))
	assert.True(t, minRank-spread <= expectedRank && expectedRank <= maxRank+spread,
		"q: %g estimate: %g ranks: [%g, %g] expected: %g", q, estimate, minRank, maxRank, expectedRank)
}

func AssertQuartilesAccurate(t *testing.T, d *dataset.Dataset, s *Quartile) {
	assertRankAccurate(t, d, 0.25, s.LowerQuartile())
	assertRankAccurate(t, d, 0.5, s.Median())
	assertRankAccurate(t, d, 0.75, s.UpperQuartile())
	assert.Equal(t, d.Min(), s.Min())
	assert.Equal(t, d.Max(), s.Max())
	assert.Equal(t, d.Count, s.Count())
}

func EvaluateQuartiles(t *testing.T, n int, gen dataset.Generator) {
	s := NewQuartile()
	d := dataset.NewDataset()
	for i := 0; i < n; i++ {
		value := gen.Generate()
		require.NoError(t, s.Add(value))
		d.Add(value)
	}
	AssertQuartilesAccurate(t, d, s)
}

func TestQuartileBootstrap(t *testing.T) {
	s := NewQuartile()
	assert.True(t, s.IsEmpty())
	assert.True(t, math.IsNaN(s.Median()))

	require.NoError(t, s.Add(5))
	assert.Equal(t, int64(1), s.Count())
	assert.Equal(t, [5]float64{5, 5, 5, 5, 5}, s.Quartiles())

	require.NoError(t, s.Add(3))
	assert.Equal(t, int64(2), s.Count())
	assert.Equal(t, [5]float64{3, 3, 3, 3, 5}, s.Quartiles())

	require.NoError(t, s.Add(4))
	assert.Equal(t, [5]float64{3, 3, 4, 4, 5}, s.Quartiles())
}

func TestQuartileBootstrapMatchesDataset(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for trial := 0; trial < 100; trial++ {
		s := NewQuartile()
		d := dataset.NewDataset()
		for n := 1; n < 5; n++ {
			value := math.Round(r.NormFloat64() * 10)
			require.NoError(t, s.Add(value))
			d.Add(value)

			assert.Equal(t, d.LowerQuantile(0), s.Min())
			assert.Equal(t, d.LowerQuantile(0.25), s.LowerQuartile())
			assert.Equal(t, d.LowerQuantile(0.5), s.Median())
			assert.Equal(t, d.LowerQuantile(0.75), s.UpperQuartile())
			assert.Equal(t, d.LowerQuantile(1), s.Max())
		}
	}
}

func TestQuartileFiveValues(t *testing.T) {
	s := NewQuartile()
	for _, v := range []float64{3, 1, 4, 1, 5} {
		require.NoError(t, s.Add(v))
	}
	assert.Equal(t, 1.0, s.Min())
	assert.Equal(t, 1.0, s.LowerQuartile())
	assert.Equal(t, 3.0, s.Median())
	assert.Equal(t, 4.0, s.UpperQuartile())
	assert.Equal(t, 5.0, s.Max())
}

func TestQuartileConstant(t *testing.T) {
	for _, n := range testSizes {
		s := NewQuartile()
		for i := 0; i < n; i++ {
			require.NoError(t, s.Add(42))
		}
		assert.Equal(t, [5]float64{42, 42, 42, 42, 42}, s.Quartiles())
	}
}

func TestQuartileIncreasing(t *testing.T) {
	for _, n := range testSizes {
		s := NewQuartile()
		for i := 1; i <= n; i++ {
			require.NoError(t, s.Add(float64(i)))
		}
		tolerance := 0.01 * float64(n)
		assert.Equal(t, 1.0, s.Min())
		assert.InDelta(t, 0.25*float64(n-1)+1, s.LowerQuartile(), tolerance)
		assert.InDelta(t, 0.5*float64(n-1)+1, s.Median(), tolerance)
		assert.InDelta(t, 0.75*float64(n-1)+1, s.UpperQuartile(), tolerance)
		assert.Equal(t, float64(n), s.Max())
	}
}

func TestQuartileDecreasing(t *testing.T) {
	for _, n := range testSizes {
		s := NewQuartile()
		for i := n; i >= 1; i-- {
			require.NoError(t, s.Add(float64(i)))
		}
		tolerance := 0.01 * float64(n)
		assert.Equal(t, 1.0, s.Min())
		assert.InDelta(t, 0.25*float64(n-1)+1, s.LowerQuartile(), tolerance)
		assert.InDelta(t, 0.5*float64(n-1)+1, s.Median(), tolerance)
		assert.InDelta(t, 0.75*float64(n-1)+1, s.UpperQuartile(), tolerance)
		assert.Equal(t, float64(n), s.Max())
	}
}

func TestQuartileUniformConvergence(t *testing.T) {
	for _, tc := range []struct {
		n         int
		tolerance float64
	}{
		{10000, 0.02},
		{1000000, 0.005},
	} {
		s := NewQuartile()
		gen := dataset.NewUniform(rand.New(rand.NewSource(1)))
		for i := 0; i < tc.n; i++ {
			require.NoError(t, s.Add(gen.Generate()))
		}
		assert.InDelta(t, 0.25, s.LowerQuartile(), tc.tolerance)
		assert.InDelta(t, 0.5, s.Median(), tc.tolerance)
		assert.InDelta(t, 0.75, s.UpperQuartile(), tc.tolerance)
	}
}

func TestQuartileNormal(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for _, n := range testSizes {
		EvaluateQuartiles(t, n, dataset.NewNormal(r, 35, 1))
	}
}

func TestQuartileLognormal(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for _, n := range testSizes {
		EvaluateQuartiles(t, n, dataset.NewLognormal(r, 0, 2))
	}
}

func TestQuartileExponential(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	for _, n := range testSizes {
		EvaluateQuartiles(t, n, dataset.NewExponential(r, 2))
	}
}

func TestQuartileMergeShards(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	for _, n := range testSizes {
		gen := dataset.NewNormal(r, 100, 10)
		shards := []*Quartile{NewQuartile(), NewQuartile(), NewQuartile()}
		data := []*dataset.Dataset{dataset.NewDataset(), dataset.NewDataset(), dataset.NewDataset()}
		for i := 0; i < n; i++ {
			value := gen.Generate()
			require.NoError(t, shards[i%len(shards)].Add(value))
			data[i%len(data)].Add(value)
		}
		for i := 1; i < len(shards); i++ {
			shards[0].MergeWith(shards[i])
			data[0].Merge(data[i])
		}
		AssertQuartilesAccurate(t, data[0], shards[0])
	}
}

func TestQuartileMergeHalves(t *testing.T) {
	r := rand.New(rand.NewSource(6))
	n := 20000
	values := make([]float64, n)
	for i := range values {
		values[i] = r.Float64()
	}
	full, first, second := NewQuartile(), NewQuartile(), NewQuartile()
	for i, v := range values {
		require.NoError(t, full.Add(v))
		if i < n/2 {
			require.NoError(t, first.Add(v))
		} else {
			require.NoError(t, second.Add(v))
		}
	}
	merged := CombineQuartiles(first, second)

	assert.Equal(t, int64(n), merged.Count())
	assert.Equal(t, full.Min(), merged.Min())
	assert.Equal(t, full.Max(), merged.Max())
	assert.InDelta(t, full.LowerQuartile(), merged.LowerQuartile(), 0.03)
	assert.InDelta(t, full.Median(), merged.Median(), 0.03)
	assert.InDelta(t, full.UpperQuartile(), merged.UpperQuartile(), 0.03)

	// inputs are left untouched
	assert.Equal(t, int64(n/2), first.Count())
	assert.Equal(t, int64(n-n/2), second.Count())
}

func TestQuartileMergeEmpty(t *testing.T) {
	s1 := NewQuartile()
	s2 := NewQuartile()
	for i := 0; i < 100; i++ {
		require.NoError(t, s2.Add(float64(i)))
	}
	// Merge a non-empty estimator into an empty one
	s1.MergeWith(s2)
	assert.Equal(t, s2.Quartiles(), s1.Quartiles())
	assert.Equal(t, s2.Count(), s1.Count())

	// Merge an empty estimator into a non-empty one
	before := s2.Quartiles()
	s2.MergeWith(NewQuartile())
	assert.Equal(t, before, s2.Quartiles())
	assert.Equal(t, int64(100), s2.Count())
}

func TestQuartileMergeBootstrapping(t *testing.T) {
	{
		a, b := NewQuartile(), NewQuartile()
		for _, v := range []float64{1, 2} {
			require.NoError(t, a.Add(v))
		}
		for _, v := range []float64{5, 3, 4} {
			require.NoError(t, b.Add(v))
		}
		a.MergeWith(b)
		assert.Equal(t, [5]float64{1, 2, 3, 4, 5}, a.Quartiles())
	}
	{
		small, large, expected := NewQuartile(), NewQuartile(), NewQuartile()
		for i := 0; i < 50; i++ {
			require.NoError(t, large.Add(float64(i)))
			require.NoError(t, expected.Add(float64(i)))
		}
		for _, v := range []float64{-3, -2, -1} {
			require.NoError(t, small.Add(v))
			require.NoError(t, expected.Add(v))
		}
		// buffered values are replayed whichever side is bootstrapping
		assert.Equal(t, expected.Quartiles(), CombineQuartiles(small, large).Quartiles())
		assert.Equal(t, expected.Quartiles(), CombineQuartiles(large, small).Quartiles())
		assert.Equal(t, int64(53), CombineQuartiles(small, large).Count())
	}
}

func TestQuartileRejectsNonFinite(t *testing.T) {
	s := NewQuartile()
	require.NoError(t, s.Add(1))
	assert.ErrorIs(t, s.Add(math.NaN()), ErrNonFinite)
	assert.ErrorIs(t, s.Add(math.Inf(-1)), ErrNonFinite)
	assert.Equal(t, int64(1), s.Count())
	assert.Equal(t, 1.0, s.Min())
}

// Test that successive reads do not modify the estimator
func TestQuartileConsistentReads(t *testing.T) {
	var vals []float64
	nTests := 200
	vfuzzer := fuzz.New().NilChance(0).NumElements(10, 500)
	for i := 0; i < nTests; i++ {
		s := NewQuartile()
		vfuzzer.Fuzz(&vals)
		for _, v := range vals {
			_ = s.Add(v)
		}
		q1 := s.Quartiles()
		assert.Equal(t, q1, [5]float64{s.Min(), s.LowerQuartile(), s.Median(), s.UpperQuartile(), s.Max()})
		assert.Equal(t, q1, s.Quartiles())
	}
}

// Test that MergeWith() calls do not modify their argument
func TestQuartileConsistentMerge(t *testing.T) {
	var vals []float64
	nTests := 200
	vfuzzer := fuzz.New().NilChance(0).NumElements(10, 500)
	for i := 0; i < nTests; i++ {
		g := NewQuartile()
		s := NewQuartile()
		vfuzzer.Fuzz(&vals)
		for _, v := range vals {
			_ = g.Add(v)
		}
		vfuzzer.Fuzz(&vals)
		for _, v := range vals {
			_ = s.Add(v)
		}
		before := *s
		g.MergeWith(s)
		assert.Equal(t, before, *s)
	}
}

func TestQuartileCopy(t *testing.T) {
	s := NewQuartile()
	for i := 0; i < 10; i++ {
		require.NoError(t, s.Add(float64(i)))
	}
	c := s.Copy()
	require.NoError(t, c.Add(100))
	assert.Equal(t, int64(10), s.Count())
	assert.Equal(t, 9.0, s.Max())
	assert.Equal(t, 100.0, c.Max())
}

func TestQuartileString(t *testing.T) {
	s := NewQuartile()
	for _, v := range []float64{3, 1, 4, 1, 5} {
		require.NoError(t, s.Add(v))
	}
	assert.Contains(t, s.String(), "count: 5")
	assert.Contains(t, s.String(), "quartiles: [1 1 3 4 5]")
	assert.Positive(t, s.MemorySize())
}
