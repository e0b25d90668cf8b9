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

package workloads

import (
	"context"
	"time"

	"github.com/AK-1996/K-Means-Parallelization/pkg/executor"
)

// Launcher responsibility is to launch previously configured job.
type Launcher interface {
	// Launch starts the workload (process or group of processes). It returns a workload
	// represented as a Task Handle instance.
	// Error is returned when Launcher is unable to start a job.
	Launch() (executor.TaskHandle, error)

	// Name returns human readable name for job.
	Name() string

	// Command returns the command line Launch executes.
	Command() string
}

// RunToCompletion launches the job and waits until it terminates within timeout.
// Output files of the task are erased unless it failed.
func RunToCompletion(ctx context.Context, launcher Launcher, timeout time.Duration) error {
	handle, err := launcher.Launch()
	if err != nil {
		return err
	}
	if err := executor.Await(ctx, handle, launcher.Command(), launcher.Name(), timeout); err != nil {
		return err
	}
	return handle.EraseOutput()
}
