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
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// TrialSample holds elapsed seconds of serial and parallel run of one trial.
type TrialSample struct {
	Serial   decimal.Decimal
	Parallel decimal.Decimal
}

// ParseTimingReport reads lines "<label>\t<elapsed_seconds>".
// Even-indexed lines are serial timings and odd-indexed are parallel timings.
// Blank lines are skipped.
func ParseTimingReport(r io.Reader) ([]TrialSample, error) {
	var values []decimal.Decimal
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return nil, errors.Errorf("line %d: expected %q, got %q", lineNumber, "<label>\\t<seconds>", line)
		}
		value, err := decimal.NewFromString(strings.TrimSpace(fields[len(fields)-1]))
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: invalid elapsed time", lineNumber)
		}
		if value.IsNegative() {
			return nil, errors.Errorf("line %d: negative elapsed time %s", lineNumber, value)
		}
		values = append(values, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "cannot read timing report")
	}
	if len(values)%2 != 0 {
		return nil, errors.Errorf("timing report has %d entries, serial and parallel timings must pair up", len(values))
	}

	samples := make([]TrialSample, 0, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		samples = append(samples, TrialSample{Serial: values[i], Parallel: values[i+1]})
	}
	return samples, nil
}

// ParseTimingReportFile reads timing report from path.
// Error cause is *os.PathError when the file cannot be opened.
func ParseTimingReportFile(path string) ([]TrialSample, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer file.Close()

	samples, err := ParseTimingReport(file)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot parse %q", path)
	}
	return samples, nil
}
