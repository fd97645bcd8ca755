// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

// Package p2 implements constant-memory streaming quantile estimators in the
// P² family. Five markers track the minimum, three interior quantiles and the
// maximum; each observation moves an interior marker by at most one rank and
// recomputes its height with a monotone cubic Hermite step, falling back to
// linear interpolation when the cubic step would leave the neighbouring
// heights. The heights stay sorted after every update.
//
// Estimators built on disjoint streams can be merged. The merge is an
// approximation intended for sharded aggregation of similarly distributed
// data, not an exact reconstruction.
package p2
