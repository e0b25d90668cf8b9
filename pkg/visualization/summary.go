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

package visualization

import (
	"io"
	"strconv"

	"github.com/AK-1996/K-Means-Parallelization/pkg/metrics"
	"github.com/samber/lo"
)

const precision = 4

var summaryHeaders = []string{"Processes", "Speedup", "Scalability", "Avg serial time [s]", "Avg parallel time [s]"}

// SummaryTable builds table with one row per configuration record.
func SummaryTable(records []metrics.Record) *Table {
	rows := lo.Map(records, func(record metrics.Record, _ int) []string {
		return []string{
			strconv.Itoa(record.NProc),
			record.Speedup.StringFixed(precision),
			record.Scalability.StringFixed(precision),
			record.AvgSerialTime.StringFixed(precision),
			record.AvgParallelTime.StringFixed(precision),
		}
	})
	return NewTable(summaryHeaders, rows)
}

// DrawSummary renders records as a table.
func DrawSummary(w io.Writer, records []metrics.Record) {
	DrawTable(w, SummaryTable(records))
}
