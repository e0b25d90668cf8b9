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

package kmeans

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AK-1996/K-Means-Parallelization/pkg/conf"
	"github.com/AK-1996/K-Means-Parallelization/pkg/executor"
	"github.com/AK-1996/K-Means-Parallelization/pkg/workloads"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	serialName      = "K-Means serial"
	distributedName = "K-Means MPI"

	serialCompiler   = "gcc"
	parallelCompiler = "mpicc"
)

var (
	clustersFlag        = conf.NewIntFlag("clusters", "Number of clusters K", 10)
	iterationsFlag      = conf.NewIntFlag("iterations", "Number of K-Means iterations", 100)
	serialBinaryFlag    = conf.NewStringFlag("serial_bin", "Path to serial K-Means binary", "./km")
	parallelBinaryFlag  = conf.NewStringFlag("parallel_bin", "Path to MPI K-Means binary", "./mpi_km")
	serialSourceFlag    = conf.NewStringFlag("serial_src", "Serial K-Means source, compiled into serial_bin when given", "")
	parallelSourceFlag  = conf.NewStringFlag("parallel_src", "MPI K-Means source, compiled into parallel_bin when given", "")
	mpirunFlag          = conf.NewStringFlag("mpirun", "MPI launcher command", "mpirun")
	hostfileFlag        = conf.NewStringFlag("hostfile", "MPI hostfile, empty runs all processes locally", "")
	serialResultsFlag   = conf.NewStringFlag("serial_results", "Assignment listing written by serial K-Means", "serial_results.txt")
	parallelResultsFlag = conf.NewStringFlag("parallel_results", "Assignment listing written by MPI K-Means", "parallel_results.txt")
	timingReportFlag    = conf.NewStringFlag("timing_report", "Timing report appended by both K-Means programs", "time.txt")
)

// Config describes both K-Means programs and files they write in their working directory.
type Config struct {
	Clusters   int
	Iterations int

	SerialBinary   string
	ParallelBinary string
	SerialSource   string
	ParallelSource string

	MPIRun   string
	Hostfile string

	SerialResults   string
	ParallelResults string
	TimingReport    string
}

// DefaultConfig is a constructor for kmeans.Config with values from flags.
func DefaultConfig() Config {
	return Config{
		Clusters:        clustersFlag.Value(),
		Iterations:      iterationsFlag.Value(),
		SerialBinary:    serialBinaryFlag.Value(),
		ParallelBinary:  parallelBinaryFlag.Value(),
		SerialSource:    serialSourceFlag.Value(),
		ParallelSource:  parallelSourceFlag.Value(),
		MPIRun:          mpirunFlag.Value(),
		Hostfile:        hostfileFlag.Value(),
		SerialResults:   serialResultsFlag.Value(),
		ParallelResults: parallelResultsFlag.Value(),
		TimingReport:    timingReportFlag.Value(),
	}
}

// Validate checks numeric parameters.
func (c Config) Validate() error {
	if c.Clusters <= 0 {
		return errors.Errorf("number of clusters must be positive, got %d", c.Clusters)
	}
	if c.Iterations <= 0 {
		return errors.Errorf("number of iterations must be positive, got %d", c.Iterations)
	}
	if c.SerialBinary == "" || c.ParallelBinary == "" {
		return errors.New("both K-Means binaries must be given")
	}
	return nil
}

// Serial launches the single process K-Means.
// Implements workloads.Launcher.
type Serial struct {
	exec    executor.Executor
	conf    Config
	dataset string
}

// NewSerial is a constructor for Serial.
func NewSerial(exec executor.Executor, config Config, dataset string) Serial {
	return Serial{exec: exec, conf: config, dataset: dataset}
}

// Command returns "<serial_bin> <K> <iterations> <dataset>".
func (s Serial) Command() string {
	return fmt.Sprintf("%s %d %d %s", s.conf.SerialBinary, s.conf.Clusters, s.conf.Iterations, s.dataset)
}

// Launch starts serial K-Means.
func (s Serial) Launch() (executor.TaskHandle, error) {
	return s.exec.Execute(s.Command())
}

// Name returns human readable name for job.
func (s Serial) Name() string {
	return serialName
}

// Distributed launches K-Means over MPI with a given number of processes.
// Implements workloads.Launcher.
type Distributed struct {
	exec      executor.Executor
	conf      Config
	dataset   string
	processes int
}

// NewDistributed is a constructor for Distributed.
func NewDistributed(exec executor.Executor, config Config, dataset string, processes int) Distributed {
	return Distributed{exec: exec, conf: config, dataset: dataset, processes: processes}
}

// Command returns "<mpirun> [--hostfile <hostfile>] -np <n> <parallel_bin> <K> <iterations> <dataset>".
func (d Distributed) Command() string {
	args := []string{d.conf.MPIRun}
	if d.conf.Hostfile != "" {
		args = append(args, "--hostfile", d.conf.Hostfile)
	}
	args = append(args,
		"-np", fmt.Sprint(d.processes),
		d.conf.ParallelBinary,
		fmt.Sprint(d.conf.Clusters),
		fmt.Sprint(d.conf.Iterations),
		d.dataset,
	)
	return strings.Join(args, " ")
}

// Launch starts MPI K-Means.
func (d Distributed) Launch() (executor.TaskHandle, error) {
	return d.exec.Execute(d.Command())
}

// Name returns human readable name for job.
func (d Distributed) Name() string {
	return fmt.Sprintf("%s (%d processes)", distributedName, d.processes)
}

// CompileCommands returns compiler invocations for configured sources.
func (c Config) CompileCommands() []string {
	var commands []string
	if c.SerialSource != "" {
		commands = append(commands, fmt.Sprintf("%s %s -o %s -lm", serialCompiler, c.SerialSource, c.SerialBinary))
	}
	if c.ParallelSource != "" {
		commands = append(commands, fmt.Sprintf("%s %s -o %s -lm", parallelCompiler, c.ParallelSource, c.ParallelBinary))
	}
	return commands
}

// Compile builds both programs from configured sources. Nothing happens when no source is given.
func Compile(ctx context.Context, exec executor.Executor, config Config, timeout time.Duration) error {
	for _, command := range config.CompileCommands() {
		logrus.Infof("compiling: %s", command)
		handle, err := executor.Run(ctx, exec, command, timeout)
		if err != nil {
			return errors.Wrap(err, "compilation failed")
		}
		handle.EraseOutput()
	}
	return nil
}

var (
	_ workloads.Launcher = Serial{}
	_ workloads.Launcher = Distributed{}
)
