// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package p2

// derivative estimates the slope at a point joining two intervals of rank
// widths h1 and h2 with slopes delta1 and delta2. It is a weighted harmonic
// mean of the slopes and is zero when either of them is.
func derivative(h1 int64, delta1 float64, h2 int64, delta2 float64) float64 {
	if delta1 == 0 || delta2 == 0 {
		return 0
	}
	w1, w2 := float64(h1), float64(h2)
	return (w1 + w2) * 3 * delta1 * delta2 / ((2*w1+w2)*delta1 + (2*w2+w1)*delta2)
}

// derivativeEnd estimates the slope at an end point from the adjacent interval
// (h1, delta1) and the next one (h2, delta2), clamped to [0, 3*delta1].
func derivativeEnd(h1 int64, delta1 float64, h2 int64, delta2 float64) float64 {
	w1, w2 := float64(h1), float64(h2)
	d := (delta1-delta2)*w1/(w1+w2) + delta1
	switch {
	case d < 0:
		return 0
	case d > 3*delta1:
		return 3 * delta1
	default:
		return d
	}
}

// hermiteStep evaluates, one rank away from y, the cubic Hermite polynomial
// over an interval of width h with mean slope delta and end slopes d1 and d2.
func hermiteStep(y, d1, d2 float64, h int64, delta float64) float64 {
	w := float64(h)
	return ((d1+d2-2*delta)/w+3*delta-2*d1-d2)/w + y + d1
}
