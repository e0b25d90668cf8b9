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
	"github.com/AK-1996/K-Means-Parallelization/pkg/metrics"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// ErrDivisionByZero is returned when average parallel time of a configuration is zero.
var ErrDivisionByZero = errors.New("division by zero: average parallel time is 0")

// Baseline is the average parallel time of the single process configuration.
// The zero value is unset.
type Baseline struct {
	value decimal.Decimal
	set   bool
}

// NewBaseline returns baseline set to value.
func NewBaseline(value decimal.Decimal) Baseline {
	return Baseline{value: value, set: true}
}

// IsSet reports whether baseline was captured or restored.
func (b Baseline) IsSet() bool {
	return b.set
}

// Value returns baseline seconds. Zero if unset.
func (b Baseline) Value() decimal.Decimal {
	return b.value
}

func (b Baseline) String() string {
	if !b.set {
		return "unset"
	}
	return b.value.String()
}

// Mean returns arithmetic mean of values.
func Mean(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	return decimal.Sum(decimal.Zero, values...).Div(decimal.NewFromInt(int64(len(values))))
}

// Aggregator turns trial samples of one configuration into a summary record.
type Aggregator struct {
	Trials int
}

// Aggregate computes averages, speedup and scalability of the configuration with nProc processes.
// Unset baseline is only accepted for the single process configuration, which then sets it.
// Returned baseline is the one to use for next configurations.
func (a Aggregator) Aggregate(nProc int, samples []TrialSample, baseline Baseline) (metrics.Record, Baseline, error) {
	if len(samples) != a.Trials {
		return metrics.Record{}, baseline, errors.Errorf("got %d timing samples for %d processes, expected %d", len(samples), nProc, a.Trials)
	}
	if !baseline.IsSet() && nProc != 1 {
		return metrics.Record{}, baseline, errors.Errorf("baseline is unset, cannot compute scalability for %d processes", nProc)
	}

	avgSerial := Mean(lo.Map(samples, func(s TrialSample, _ int) decimal.Decimal { return s.Serial }))
	avgParallel := Mean(lo.Map(samples, func(s TrialSample, _ int) decimal.Decimal { return s.Parallel }))
	if avgParallel.IsZero() {
		return metrics.Record{}, baseline, errors.Wrapf(ErrDivisionByZero, "%d processes", nProc)
	}

	if !baseline.IsSet() {
		baseline = NewBaseline(avgParallel)
	}

	return metrics.Record{
		NProc:           nProc,
		Trials:          len(samples),
		Speedup:         avgSerial.Div(avgParallel),
		Scalability:     baseline.Value().Div(avgParallel),
		AvgSerialTime:   avgSerial,
		AvgParallelTime: avgParallel,
	}, baseline, nil
}
