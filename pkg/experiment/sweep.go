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

package experiment

import (
	"context"
	"time"

	"github.com/AK-1996/K-Means-Parallelization/pkg/metrics"
	"github.com/AK-1996/K-Means-Parallelization/pkg/partition"
	"github.com/AK-1996/K-Means-Parallelization/pkg/performance"
	"github.com/AK-1996/K-Means-Parallelization/pkg/utils/err_collection"
	"github.com/AK-1996/K-Means-Parallelization/pkg/utils/fs"
	"github.com/AK-1996/K-Means-Parallelization/pkg/workloads"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// DatasetProvider creates the dataset unless it exists.
type DatasetProvider interface {
	Ensure(path string) (created bool, err error)
}

// DatasetDistributor copies the dataset to hosts running MPI processes.
type DatasetDistributor interface {
	Distribute(ctx context.Context, path string) error
}

// SummaryStore is the durable log of configuration records.
// Rows returns records of the current sweep, that is records after the last header.
type SummaryStore interface {
	metrics.Uploader
	Path() string
	WriteHeader() error
	Rows() ([]metrics.Record, error)
}

// Files are paths of artifacts exchanged with the K-Means programs.
type Files struct {
	Dataset         string
	SerialResults   string
	ParallelResults string
	TimingReport    string
}

// Sweep runs trials for each process count and records aggregated performance.
// It owns the baseline and the records of the current run.
type Sweep struct {
	ID        string
	Host      string
	Processes []int
	Trials    int
	Timeout   time.Duration
	// CVThreshold is coefficient of variation of parallel times above which a warning is logged.
	// Zero disables the warning.
	CVThreshold float64

	Files Files

	Dataset     DatasetProvider
	Distributor DatasetDistributor // optional
	Serial      workloads.Launcher
	Distributed func(processes int) workloads.Launcher
	Checker     partition.Checker
	Summary     SummaryStore
	// Uploader receives each record before it is appended to Summary. Optional.
	Uploader metrics.Uploader

	baseline performance.Baseline
	records  []metrics.Record
}

// Validate checks sweep parameters.
func (s *Sweep) Validate() error {
	if len(s.Processes) == 0 {
		return errors.New("no process counts to sweep")
	}
	for i, processes := range s.Processes {
		if processes <= 0 {
			return errors.Errorf("process count must be positive, got %d", processes)
		}
		if i > 0 && processes <= s.Processes[i-1] {
			return errors.Errorf("process counts must be strictly increasing, got %v", s.Processes)
		}
	}
	if s.Trials <= 0 {
		return errors.Errorf("number of trials must be positive, got %d", s.Trials)
	}
	if s.Dataset == nil || s.Serial == nil || s.Distributed == nil || s.Checker == nil || s.Summary == nil {
		return errors.New("sweep is not fully configured")
	}
	return nil
}

// IsFresh reports whether the sweep starts from a single process and so captures the baseline itself.
func (s *Sweep) IsFresh() bool {
	return len(s.Processes) > 0 && s.Processes[0] == 1
}

// Baseline returns the baseline in use.
func (s *Sweep) Baseline() performance.Baseline {
	return s.baseline
}

// Records returns records committed so far.
func (s *Sweep) Records() []metrics.Record {
	return append([]metrics.Record{}, s.records...)
}

func (s *Sweep) start() error {
	if s.IsFresh() {
		s.baseline = performance.Baseline{}
		return errors.Wrap(s.Summary.WriteHeader(), "cannot start summary log")
	}

	rows, err := s.Summary.Rows()
	if err != nil {
		return errors.Wrap(missingIfNotExist(err, s.Summary.Path(), "needed to resume the sweep"), "cannot restore baseline")
	}
	single, found := lo.Find(rows, func(row metrics.Record) bool { return row.NProc == 1 })
	if !found {
		return &ArtifactError{Kind: Missing, Path: s.Summary.Path(), Stage: "has no single process row, needed to resume the sweep"}
	}
	if last := rows[len(rows)-1]; s.Processes[0] <= last.NProc {
		return errors.Errorf("cannot resume at %d processes, summary log %q already records %d processes",
			s.Processes[0], s.Summary.Path(), last.NProc)
	}
	s.baseline = performance.NewBaseline(single.AvgParallelTime)
	logrus.Infof("resuming sweep at %d processes with baseline %s s", s.Processes[0], s.baseline)
	return nil
}

// Run executes the sweep. It stops on first failure, no record is written for a failing configuration.
func (s *Sweep) Run(ctx context.Context) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := s.start(); err != nil {
		return err
	}

	for _, processes := range s.Processes {
		logrus.Infof("--- configuration with %d processes ---", processes)
		record, err := s.runConfiguration(ctx, processes)
		if err != nil {
			return errors.Wrapf(err, "configuration with %d processes failed", processes)
		}
		if err := s.commit(record); err != nil {
			return errors.Wrapf(err, "cannot record configuration with %d processes", processes)
		}
		s.records = append(s.records, record)
		logrus.Infof("%d processes: speedup %s, scalability %s, avg serial %s s, avg parallel %s s",
			record.NProc, record.Speedup.StringFixed(4), record.Scalability.StringFixed(4),
			record.AvgSerialTime, record.AvgParallelTime)
	}
	return nil
}

// commit appends record to the summary log last, a failed upload leaves no row behind.
func (s *Sweep) commit(record metrics.Record) error {
	if s.Uploader != nil {
		if err := s.Uploader.SendMetrics(record); err != nil {
			return err
		}
	}
	return s.Summary.SendMetrics(record)
}

func (s *Sweep) prepareConfiguration(ctx context.Context) error {
	exists, err := fs.Exists(s.Files.TimingReport)
	if err != nil {
		return err
	}
	if exists {
		return &ArtifactError{Kind: Stale, Path: s.Files.TimingReport, Stage: "found before first trial"}
	}

	created, err := s.Dataset.Ensure(s.Files.Dataset)
	if err != nil {
		return errors.Wrap(err, "cannot prepare dataset")
	}
	if created {
		logrus.Debugf("dataset %q generated", s.Files.Dataset)
	}
	if s.Distributor != nil {
		if err := s.Distributor.Distribute(ctx, s.Files.Dataset); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sweep) cleanupConfiguration() error {
	var errCollection errcollection.ErrorCollection
	for _, path := range []string{s.Files.Dataset, s.Files.TimingReport} {
		errCollection.Add(errors.Wrap(fs.RemoveIfExists(path), "configuration cleanup failed"))
	}
	return errCollection.GetErrIfAny()
}

func (s *Sweep) runConfiguration(ctx context.Context, processes int) (record metrics.Record, err error) {
	if err := s.prepareConfiguration(ctx); err != nil {
		return metrics.Record{}, err
	}
	defer func() {
		if cleanupErr := s.cleanupConfiguration(); cleanupErr != nil {
			if err == nil {
				err = cleanupErr
				return
			}
			logrus.Errorf("%v", cleanupErr)
		}
	}()

	distributed := s.Distributed(processes)
	for number := 1; number <= s.Trials; number++ {
		t := &trial{sweep: s, processes: processes, number: number}
		if err := t.run(ctx, s.Serial, distributed); err != nil {
			return metrics.Record{}, err
		}
	}

	samples, err := performance.ParseTimingReportFile(s.Files.TimingReport)
	if err != nil {
		return metrics.Record{}, missingIfNotExist(err, s.Files.TimingReport, "after all trials")
	}
	s.warnOnDispersion(processes, samples)

	record, baseline, err := performance.Aggregator{Trials: s.Trials}.Aggregate(processes, samples, s.baseline)
	if err != nil {
		return metrics.Record{}, err
	}
	s.baseline = baseline
	record.Tags = metrics.Tags{SweepID: s.ID, Host: s.Host}
	record.RecordedAt = time.Now()
	return record, nil
}

func (s *Sweep) warnOnDispersion(processes int, samples []performance.TrialSample) {
	if s.CVThreshold <= 0 || len(samples) < 2 {
		return
	}
	spread := performance.Dispersion(samples)
	if cv := spread.CoefficientOfVariation(); cv > s.CVThreshold {
		logrus.Warnf("%d processes: parallel times vary too much (mean %.4f s, stddev %.4f s, cv %.3f > %.3f): %v",
			processes, spread.Mean, spread.StdDev, cv, s.CVThreshold,
			lo.Map(samples, func(sample performance.TrialSample, _ int) string { return sample.Parallel.String() }))
	}
}
