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

package metrics

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tags identify the sweep a Record belongs to.
type Tags struct {
	SweepID string
	Host    string
}

// Record is the summary of one process-count configuration.
// AvgSerialTime and AvgParallelTime are means over exactly Trials samples.
type Record struct {
	Tags Tags

	NProc           int
	Trials          int
	Speedup         decimal.Decimal
	Scalability     decimal.Decimal
	AvgSerialTime   decimal.Decimal
	AvgParallelTime decimal.Decimal

	RecordedAt time.Time
}

// Equal compares metric values ignoring tags and recording time.
func (r Record) Equal(other Record) bool {
	return r.NProc == other.NProc &&
		r.Speedup.Equal(other.Speedup) &&
		r.Scalability.Equal(other.Scalability) &&
		r.AvgSerialTime.Equal(other.AvgSerialTime) &&
		r.AvgParallelTime.Equal(other.AvgParallelTime)
}
