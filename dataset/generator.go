// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2018 Datadog, Inc.

package dataset

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

type Generator interface {
	Generate() float64
}

// Constant stream
type Constant struct{ constant float64 }

func NewConstant(constant float64) *Constant { return &Constant{constant: constant} }

func (s *Constant) Generate() float64 { return s.constant }

// Linearly increasing stream
type Linear struct{ currentVal float64 }

func NewLinear() *Linear { return &Linear{0} }

func (g *Linear) Generate() float64 {
	value := g.currentVal
	g.currentVal++
	return value
}

// Uniform distribution over [0, 1)
type Uniform struct{ r *rand.Rand }

func NewUniform(r *rand.Rand) *Uniform { return &Uniform{r: r} }

func (g *Uniform) Generate() float64 { return g.r.Float64() }

// Normal distribution
type Normal struct {
	r            *rand.Rand
	mean, stddev float64
}

func NewNormal(r *rand.Rand, mean, stddev float64) *Normal {
	return &Normal{r: r, mean: mean, stddev: stddev}
}

func (g *Normal) Generate() float64 { return g.r.NormFloat64()*g.stddev + g.mean }

// Lognormal distribution
type Lognormal struct {
	r         *rand.Rand
	mu, sigma float64
}

func NewLognormal(r *rand.Rand, mu, sigma float64) *Lognormal {
	return &Lognormal{r: r, mu: mu, sigma: sigma}
}

func (g *Lognormal) Generate() float64 {
	return math.Exp(g.r.NormFloat64()*g.sigma + g.mu)
}

// Exponential distribution
type Exponential struct {
	r    *rand.Rand
	rate float64
}

func NewExponential(r *rand.Rand, rate float64) *Exponential {
	return &Exponential{r: r, rate: rate}
}

func (g *Exponential) Generate() float64 { return g.r.ExpFloat64() / g.rate }

// Pareto distribution
type Pareto struct {
	r            *rand.Rand
	shape, scale float64
}

func NewPareto(r *rand.Rand, shape, scale float64) *Pareto {
	return &Pareto{r: r, shape: shape, scale: scale}
}

func (g *Pareto) Generate() float64 {
	e := g.r.ExpFloat64() / g.shape
	return math.Exp(math.Log(g.scale) + e)
}

var generators = map[string]func(r *rand.Rand) Generator{
	"constant":    func(*rand.Rand) Generator { return NewConstant(42) },
	"linear":      func(*rand.Rand) Generator { return NewLinear() },
	"uniform":     func(r *rand.Rand) Generator { return NewUniform(r) },
	"normal":      func(r *rand.Rand) Generator { return NewNormal(r, 0, 1) },
	"lognormal":   func(r *rand.Rand) Generator { return NewLognormal(r, 0, 1) },
	"exponential": func(r *rand.Rand) Generator { return NewExponential(r, 1) },
	"pareto":      func(r *rand.Rand) Generator { return NewPareto(r, 1, 1) },
}

// Names lists the distributions known to ByName.
func Names() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByName returns a generator with default parameters for the named
// distribution, seeded with seed.
func ByName(name string, seed int64) (Generator, error) {
	newGenerator, ok := generators[name]
	if !ok {
		return nil, fmt.Errorf("unknown distribution %q, expected one of %v", name, Names())
	}
	return newGenerator(rand.New(rand.NewSource(seed))), nil
}
