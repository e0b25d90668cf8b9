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
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/AK-1996/K-Means-Parallelization/pkg/executor"
	"github.com/AK-1996/K-Means-Parallelization/pkg/metrics"
	"github.com/AK-1996/K-Means-Parallelization/pkg/metrics/uploaders"
	"github.com/AK-1996/K-Means-Parallelization/pkg/partition"
	"github.com/AK-1996/K-Means-Parallelization/pkg/performance"
	"github.com/AK-1996/K-Means-Parallelization/pkg/utils/errutil"
	"github.com/AK-1996/K-Means-Parallelization/pkg/workloads"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	. "github.com/smartystreets/goconvey/convey"
)

// finishedTask is a task handle of a job that already terminated with exit code 0.
type finishedTask struct{}

func (finishedTask) Stop() error                   { return nil }
func (finishedTask) Status() executor.TaskState    { return executor.TERMINATED }
func (finishedTask) ExitCode() (int, error)        { return 0, nil }
func (finishedTask) StdoutFile() (*os.File, error) { return nil, errors.New("no output") }
func (finishedTask) StderrFile() (*os.File, error) { return nil, errors.New("no output") }
func (finishedTask) Wait(time.Duration) bool       { return true }
func (finishedTask) EraseOutput() error            { return nil }
func (finishedTask) Address() string               { return "127.0.0.1" }

// fakeProgram imitates a K-Means program by writing its listing and appending its time.
type fakeProgram struct {
	name    string
	run     func() error
	command string
}

func (f fakeProgram) Launch() (executor.TaskHandle, error) {
	if err := f.run(); err != nil {
		return nil, err
	}
	return finishedTask{}, nil
}
func (f fakeProgram) Name() string    { return f.name }
func (f fakeProgram) Command() string { return f.command }

type fakeDataset struct {
	ensured int
}

func (f *fakeDataset) Ensure(path string) (bool, error) {
	f.ensured++
	return true, os.WriteFile(path, []byte("4\t1\n1\n2\n3\n4\n"), 0644)
}

func appendLine(path, line string) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = fmt.Fprintln(file, line)
	return err
}

func listing(labels ...string) string {
	lines := make([]string, len(labels))
	for i, label := range labels {
		lines[i] = fmt.Sprintf("Point %d is in Cluster %s", i, label)
	}
	return strings.Join(lines, "\n") + "\n"
}

// harness builds sweeps over a shared working directory.
type harness struct {
	workDir string
	files   Files
	summary *uploaders.SummaryLog
	dataset *fakeDataset

	serialTime      string
	parallelTime    func(processes int) string
	parallelListing func(processes int) string
	executions      int
}

func newHarness(workDir string) *harness {
	return &harness{
		workDir: workDir,
		files: Files{
			Dataset:         filepath.Join(workDir, "set.txt"),
			SerialResults:   filepath.Join(workDir, "serial_results.txt"),
			ParallelResults: filepath.Join(workDir, "parallel_results.txt"),
			TimingReport:    filepath.Join(workDir, "time.txt"),
		},
		summary:    uploaders.NewSummaryLog(filepath.Join(workDir, "performance.txt")),
		dataset:    &fakeDataset{},
		serialTime: "120",
		parallelTime: func(processes int) string {
			return fmt.Sprint(120 / processes)
		},
		parallelListing: func(int) string { return listing("b", "b", "a", "a") },
	}
}

func (h *harness) sweep(processes ...int) *Sweep {
	checker, err := partition.NewChecker(partition.ModeStrict, 2)
	if err != nil {
		panic(err)
	}
	return &Sweep{
		ID:        NewSweepID(),
		Processes: processes,
		Trials:    3,
		Timeout:   time.Second,
		Files:     h.files,
		Dataset:   h.dataset,
		Serial: fakeProgram{name: "serial", command: "km", run: func() error {
			h.executions++
			if err := os.WriteFile(h.files.SerialResults, []byte(listing("0", "0", "1", "1")), 0644); err != nil {
				return err
			}
			return appendLine(h.files.TimingReport, "Serial time:\t"+h.serialTime)
		}},
		Distributed: func(n int) workloads.Launcher {
			return fakeProgram{name: "parallel", command: "mpi_km", run: func() error {
				h.executions++
				if err := os.WriteFile(h.files.ParallelResults, []byte(h.parallelListing(n)), 0644); err != nil {
					return err
				}
				return appendLine(h.files.TimingReport, "Parallel time:\t"+h.parallelTime(n))
			}}
		},
		Checker: checker,
		Summary: h.summary,
	}
}

func (h *harness) summaryLines() []string {
	data, err := os.ReadFile(h.summary.Path())
	So(err, ShouldBeNil)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestSweep(t *testing.T) {
	logrus.SetLevel(logrus.ErrorLevel)

	Convey("When a fresh sweep over 1, 2 and 4 processes completes", t, func() {
		h := newHarness(t.TempDir())
		sweep := h.sweep(1, 2, 4)
		So(sweep.Run(context.Background()), ShouldBeNil)

		Convey("Summary log should hold header and one row per configuration", func() {
			lines := h.summaryLines()
			So(lines, ShouldHaveLength, 4)
			So(lines[0], ShouldEqual, uploaders.SummaryHeader)
			So(lines[3], ShouldEqual, "4\t4\t4\t120\t30")
		})

		Convey("Baseline should be the single process parallel time", func() {
			So(sweep.Baseline().Value().String(), ShouldEqual, "120")
			So(sweep.Records(), ShouldHaveLength, 3)
		})

		Convey("Every trial should run both programs", func() {
			So(h.executions, ShouldEqual, 3*3*2)
			So(h.dataset.ensured, ShouldEqual, 3)
		})

		Convey("No artifacts should be left behind", func() {
			for _, path := range []string{h.files.Dataset, h.files.SerialResults, h.files.ParallelResults, h.files.TimingReport} {
				_, err := os.Stat(path)
				So(os.IsNotExist(err), ShouldBeTrue)
			}
		})
	})

	Convey("When a sweep is split and resumed", t, func() {
		continuous := newHarness(t.TempDir())
		So(continuous.sweep(1, 2, 3, 4, 5).Run(context.Background()), ShouldBeNil)

		split := newHarness(t.TempDir())
		So(split.sweep(1, 2, 3).Run(context.Background()), ShouldBeNil)
		resumed := split.sweep(4, 5)
		So(resumed.Run(context.Background()), ShouldBeNil)

		Convey("Baseline should be restored from the summary log", func() {
			So(resumed.Baseline().Value().String(), ShouldEqual, "120")
		})

		Convey("Both summary logs should be identical", func() {
			So(split.summaryLines(), ShouldResemble, continuous.summaryLines())
			So(split.summaryLines(), ShouldHaveLength, 6)
		})

		Convey("Records of resumed configurations should match continuous ones", func() {
			rows, err := continuous.summary.Rows()
			So(err, ShouldBeNil)
			for i, record := range resumed.Records() {
				So(record.Equal(rows[3+i]), ShouldBeTrue)
			}
		})
	})

	Convey("When a sweep is resumed without summary log", t, func() {
		h := newHarness(t.TempDir())
		err := h.sweep(2, 3).Run(context.Background())

		Convey("Missing artifact error should be returned", func() {
			So(IsArtifactError(err, Missing), ShouldBeTrue)
		})
	})

	Convey("When a sweep is resumed at process counts already recorded", t, func() {
		h := newHarness(t.TempDir())
		So(h.sweep(1, 2, 3).Run(context.Background()), ShouldBeNil)
		executions := h.executions

		err := h.sweep(2, 3).Run(context.Background())

		Convey("Resume should be refused before anything runs", func() {
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "already records 3 processes")
			So(h.executions, ShouldEqual, executions)
		})

		Convey("Summary log should keep its rows in process count order", func() {
			rows, err := h.summary.Rows()
			So(err, ShouldBeNil)
			So(rows, ShouldHaveLength, 3)
			So(rows[2].NProc, ShouldEqual, 3)
		})
	})

	Convey("When a sweep is resumed over a log without single process row", t, func() {
		h := newHarness(t.TempDir())
		So(h.summary.WriteHeader(), ShouldBeNil)
		So(h.summary.SendMetrics(metrics.Record{NProc: 2, Speedup: decimal.NewFromInt(2), Scalability: decimal.NewFromInt(2),
			AvgSerialTime: decimal.NewFromInt(120), AvgParallelTime: decimal.NewFromInt(60)}), ShouldBeNil)

		err := h.sweep(4).Run(context.Background())

		Convey("Missing artifact error should be returned", func() {
			So(IsArtifactError(err, Missing), ShouldBeTrue)
			So(h.executions, ShouldEqual, 0)
		})
	})

	Convey("When an additional uploader fails", t, func() {
		h := newHarness(t.TempDir())
		sweep := h.sweep(1, 2)
		sweep.Uploader = failingUploader{}

		err := sweep.Run(context.Background())

		Convey("Sweep should fail without a row for the configuration", func() {
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "database is down")
			So(h.summaryLines(), ShouldResemble, []string{uploaders.SummaryHeader})
			So(sweep.Records(), ShouldBeEmpty)
		})
	})

	Convey("When an additional uploader succeeds", t, func() {
		h := newHarness(t.TempDir())
		sweep := h.sweep(1, 2)
		recorder := &recordingUploader{}
		sweep.Uploader = recorder

		So(sweep.Run(context.Background()), ShouldBeNil)

		Convey("Both uploader and summary log should receive every record", func() {
			So(recorder.records, ShouldHaveLength, 2)
			So(h.summaryLines(), ShouldHaveLength, 3)
		})
	})

	Convey("When the programs disagree on the partition", t, func() {
		h := newHarness(t.TempDir())
		h.parallelListing = func(processes int) string {
			if processes == 2 {
				return listing("a", "b", "a", "b")
			}
			return listing("b", "b", "a", "a")
		}
		err := h.sweep(1, 2, 4).Run(context.Background())

		Convey("Sweep should stop with mismatch and exit status 2", func() {
			_, ok := errors.Cause(err).(*partition.MismatchError)
			So(ok, ShouldBeTrue)
			So(errutil.ExitStatus(err), ShouldEqual, 2)
		})

		Convey("Only configurations before the mismatch should be recorded", func() {
			So(h.summaryLines(), ShouldHaveLength, 2)
		})

		Convey("Listings should be kept for inspection and fail the next run as stale", func() {
			_, statErr := os.Stat(h.files.ParallelResults)
			So(statErr, ShouldBeNil)

			err := h.sweep(2, 4).Run(context.Background())
			So(IsArtifactError(err, Stale), ShouldBeTrue)
		})
	})

	Convey("When a timing report is left over from an earlier run", t, func() {
		h := newHarness(t.TempDir())
		So(os.WriteFile(h.files.TimingReport, []byte("Serial time:\t1\n"), 0644), ShouldBeNil)
		err := h.sweep(1, 2).Run(context.Background())

		Convey("Stale artifact error should be returned before anything runs", func() {
			So(IsArtifactError(err, Stale), ShouldBeTrue)
			So(h.executions, ShouldEqual, 0)
		})
	})

	Convey("When average parallel time is zero", t, func() {
		h := newHarness(t.TempDir())
		h.parallelTime = func(int) string { return "0" }
		err := h.sweep(1).Run(context.Background())

		Convey("Division by zero should fail the sweep", func() {
			So(errors.Cause(err), ShouldEqual, performance.ErrDivisionByZero)
			So(h.summaryLines(), ShouldResemble, []string{uploaders.SummaryHeader})
		})
	})

	Convey("When process counts are not strictly increasing", t, func() {
		h := newHarness(t.TempDir())
		So(h.sweep(1, 4, 2).Run(context.Background()), ShouldNotBeNil)
		So(h.sweep().Run(context.Background()), ShouldNotBeNil)
		So(h.sweep(0, 1).Run(context.Background()), ShouldNotBeNil)
	})
}

func TestTrialState(t *testing.T) {
	Convey("When trial moves out of order", t, func() {
		tr := &trial{sweep: &Sweep{Trials: 1}, processes: 1, number: 1}
		So(tr.advance(TrialExecuted, TrialChecked), ShouldNotBeNil)
		So(tr.advance(TrialClean, TrialExecuted), ShouldBeNil)
		So(tr.state.String(), ShouldEqual, "executed")
	})
}

type failingUploader struct{}

func (failingUploader) SendMetrics(metrics.Record) error { return errors.New("database is down") }

type recordingUploader struct {
	records []metrics.Record
}

func (r *recordingUploader) SendMetrics(record metrics.Record) error {
	r.records = append(r.records, record)
	return nil
}

var _ SummaryStore = (*uploaders.SummaryLog)(nil)
