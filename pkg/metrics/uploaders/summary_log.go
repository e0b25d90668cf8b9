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

package uploaders

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/AK-1996/K-Means-Parallelization/pkg/metrics"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// SummaryHeader is the first row of every sweep started from a single process.
const SummaryHeader = "N_proc\tSpeedup\tScalability\tAvg_Ser_Time\tAvg_Par_Time"

const summaryColumns = 5

// SummaryLog is an append-only tab separated file with one row per configuration.
type SummaryLog struct {
	path string
}

// NewSummaryLog returns SummaryLog stored at path. The file is created on first write.
func NewSummaryLog(path string) *SummaryLog {
	return &SummaryLog{path: path}
}

// Path returns location of the log.
func (s *SummaryLog) Path() string {
	return s.path
}

func (s *SummaryLog) appendLine(line string) error {
	file, err := os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return errors.Wrapf(err, "cannot open summary log %q", s.path)
	}
	if _, err := fmt.Fprintln(file, line); err != nil {
		file.Close()
		return errors.Wrapf(err, "cannot append to summary log %q", s.path)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return errors.Wrapf(err, "cannot sync summary log %q", s.path)
	}
	return errors.Wrapf(file.Close(), "cannot close summary log %q", s.path)
}

// WriteHeader appends the header row which starts a new sweep.
func (s *SummaryLog) WriteHeader() error {
	return s.appendLine(SummaryHeader)
}

// SendMetrics implements metrics.Uploader by appending one row.
func (s *SummaryLog) SendMetrics(record metrics.Record) error {
	return s.appendLine(FormatRow(record))
}

// FormatRow renders record as a summary log row.
func FormatRow(record metrics.Record) string {
	return strings.Join([]string{
		strconv.Itoa(record.NProc),
		record.Speedup.String(),
		record.Scalability.String(),
		record.AvgSerialTime.String(),
		record.AvgParallelTime.String(),
	}, "\t")
}

// ParseRow reads a summary log row.
func ParseRow(line string) (metrics.Record, error) {
	fields := strings.Split(strings.TrimSpace(line), "\t")
	if len(fields) != summaryColumns {
		return metrics.Record{}, errors.Errorf("expected %d columns, got %d in %q", summaryColumns, len(fields), line)
	}

	nProc, err := strconv.Atoi(fields[0])
	if err != nil {
		return metrics.Record{}, errors.Wrapf(err, "invalid process count in %q", line)
	}
	values := make([]decimal.Decimal, 0, summaryColumns-1)
	for _, field := range fields[1:] {
		value, err := decimal.NewFromString(field)
		if err != nil {
			return metrics.Record{}, errors.Wrapf(err, "invalid value %q", field)
		}
		values = append(values, value)
	}

	return metrics.Record{
		NProc:           nProc,
		Speedup:         values[0],
		Scalability:     values[1],
		AvgSerialTime:   values[2],
		AvgParallelTime: values[3],
	}, nil
}

// Rows returns records written after the last header, that is records of the current sweep.
func (s *SummaryLog) Rows() ([]metrics.Record, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer file.Close()

	var records []metrics.Record
	scanner := bufio.NewScanner(file)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case SummaryHeader:
			records = nil
			continue
		}
		record, err := ParseRow(line)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d", s.path, lineNumber)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "cannot read summary log %q", s.path)
	}
	return records, nil
}
