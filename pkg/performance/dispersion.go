// Copyright (c) 2017 Intel Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package performance

import (
	"math"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
)

// Spread describes dispersion of parallel timings of one configuration.
type Spread struct {
	Mean   float64
	StdDev float64
}

// CoefficientOfVariation returns StdDev relative to Mean, zero when mean is zero.
func (s Spread) CoefficientOfVariation() float64 {
	if s.Mean == 0 {
		return 0
	}
	return math.Abs(s.StdDev / s.Mean)
}

// Dispersion computes mean and sample standard deviation of parallel timings.
// Single sample has no deviation.
func Dispersion(samples []TrialSample) Spread {
	if len(samples) == 0 {
		return Spread{}
	}
	values := lo.Map(samples, func(s TrialSample, _ int) float64 { return s.Parallel.InexactFloat64() })
	if len(values) == 1 {
		return Spread{Mean: values[0]}
	}
	mean, stdDev := stat.MeanStdDev(values, nil)
	return Spread{Mean: mean, StdDev: stdDev}
}
