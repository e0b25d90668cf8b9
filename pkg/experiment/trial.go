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
	"fmt"

	"github.com/AK-1996/K-Means-Parallelization/pkg/partition"
	"github.com/AK-1996/K-Means-Parallelization/pkg/performance"
	"github.com/AK-1996/K-Means-Parallelization/pkg/utils/fs"
	"github.com/AK-1996/K-Means-Parallelization/pkg/workloads"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// TrialState is the lifecycle of result files of one trial.
type TrialState int

const (
	// TrialClean means no result files exist yet.
	TrialClean TrialState = iota
	// TrialExecuted means both programs finished and wrote their listings.
	TrialExecuted
	// TrialChecked means listings were found equivalent.
	TrialChecked
	// TrialCleaned means listings were removed.
	TrialCleaned
)

func (s TrialState) String() string {
	switch s {
	case TrialClean:
		return "clean"
	case TrialExecuted:
		return "executed"
	case TrialChecked:
		return "checked"
	case TrialCleaned:
		return "cleaned"
	}
	return "unknown"
}

// trial runs both programs once and checks their listings.
type trial struct {
	sweep     *Sweep
	processes int
	number    int
	state     TrialState
}

func (t *trial) String() string {
	return fmt.Sprintf("trial %d/%d with %d processes", t.number, t.sweep.Trials, t.processes)
}

func (t *trial) advance(from, to TrialState) error {
	if t.state != from {
		return errors.Errorf("%s: cannot move from %s to %s, trial is %s", t, from, to, t.state)
	}
	logrus.Debugf("%s: %s -> %s", t, from, to)
	t.state = to
	return nil
}

// ensureClean fails when result files of an earlier run are still present.
func (t *trial) ensureClean() error {
	for _, path := range []string{t.sweep.Files.SerialResults, t.sweep.Files.ParallelResults} {
		exists, err := fs.Exists(path)
		if err != nil {
			return err
		}
		if exists {
			return &ArtifactError{Kind: Stale, Path: path, Stage: "found before " + t.String()}
		}
	}
	return nil
}

func (t *trial) execute(ctx context.Context, launchers ...workloads.Launcher) error {
	if err := t.ensureClean(); err != nil {
		return err
	}
	for _, launcher := range launchers {
		logrus.Debugf("%s: running %s: %s", t, launcher.Name(), launcher.Command())
		if err := workloads.RunToCompletion(ctx, launcher, t.sweep.Timeout); err != nil {
			return errors.Wrapf(err, "%s: %s failed", t, launcher.Name())
		}
	}
	return t.advance(TrialClean, TrialExecuted)
}

func (t *trial) check() error {
	serial, err := partition.ParseFile(t.sweep.Files.SerialResults)
	if err != nil {
		return missingIfNotExist(err, t.sweep.Files.SerialResults, "after "+t.String())
	}
	parallel, err := partition.ParseFile(t.sweep.Files.ParallelResults)
	if err != nil {
		return missingIfNotExist(err, t.sweep.Files.ParallelResults, "after "+t.String())
	}
	if err := t.sweep.Checker.Check(serial, parallel); err != nil {
		logrus.Errorf("%s: listings %q and %q are left for inspection", t, t.sweep.Files.SerialResults, t.sweep.Files.ParallelResults)
		return errors.Wrapf(err, "%s", t)
	}
	return t.advance(TrialExecuted, TrialChecked)
}

// report logs timings of this trial, which is the last sample in the timing report.
func (t *trial) report() error {
	samples, err := performance.ParseTimingReportFile(t.sweep.Files.TimingReport)
	if err != nil {
		return missingIfNotExist(err, t.sweep.Files.TimingReport, "after "+t.String())
	}
	if len(samples) != t.number {
		return errors.Errorf("%s: timing report %q has %d samples, expected %d", t, t.sweep.Files.TimingReport, len(samples), t.number)
	}
	last := samples[len(samples)-1]
	logrus.Infof("%s: serial time %s s, parallel time %s s", t, last.Serial, last.Parallel)
	return nil
}

func (t *trial) clean() error {
	for _, path := range []string{t.sweep.Files.SerialResults, t.sweep.Files.ParallelResults} {
		if err := fs.RemoveIfExists(path); err != nil {
			return errors.Wrapf(err, "%s: cleanup failed", t)
		}
	}
	return t.advance(TrialChecked, TrialCleaned)
}

func (t *trial) run(ctx context.Context, launchers ...workloads.Launcher) error {
	if err := t.execute(ctx, launchers...); err != nil {
		return err
	}
	if err := t.check(); err != nil {
		return err
	}
	if err := t.report(); err != nil {
		return err
	}
	return t.clean()
}
