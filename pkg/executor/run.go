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

package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// ExitCodeError is returned when a command terminated with non-zero exit code.
type ExitCodeError struct {
	Command  string
	Address  string
	ExitCode int
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("command %q on %q exited with code %d", e.Command, e.Address, e.ExitCode)
}

// ErrTimeout is returned by Run when the command exceeded its time limit.
var ErrTimeout = errors.New("command timed out")

const pollInterval = 100 * time.Millisecond

// Run executes command with the given executor and waits for it with Await.
// Returned handle keeps the output files.
func Run(ctx context.Context, e Executor, command string, timeout time.Duration) (TaskHandle, error) {
	handle, err := e.Execute(command)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot execute %q on %s", command, e.Name())
	}
	return handle, Await(ctx, handle, command, e.Name(), timeout)
}

// Await blocks until the task terminates.
// The task is stopped when timeout expires (zero means no timeout) or ctx is done.
// A non-zero exit code is reported as *ExitCodeError.
func Await(ctx context.Context, handle TaskHandle, command, executorName string, timeout time.Duration) error {
	var deadline <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	for !handle.Wait(pollInterval) {
		select {
		case <-ctx.Done():
			stopErr := handle.Stop()
			LogUnsuccessfulExecution(command, executorName, handle)
			if stopErr != nil {
				return errors.Wrapf(stopErr, "cannot stop %q after cancellation", command)
			}
			return errors.Wrapf(ctx.Err(), "%q interrupted", command)
		case <-deadline:
			stopErr := handle.Stop()
			LogUnsuccessfulExecution(command, executorName, handle)
			if stopErr != nil {
				return errors.Wrapf(stopErr, "cannot stop %q after timeout", command)
			}
			return errors.Wrapf(ErrTimeout, "%q exceeded %s", command, timeout)
		default:
		}
	}

	exitCode, err := handle.ExitCode()
	if err != nil {
		LogUnsuccessfulExecution(command, executorName, handle)
		return errors.Wrapf(err, "cannot get exit code of %q", command)
	}
	if exitCode != 0 {
		LogUnsuccessfulExecution(command, executorName, handle)
		return &ExitCodeError{Command: command, Address: handle.Address(), ExitCode: exitCode}
	}

	LogSuccessfulExecution(command, executorName, handle)
	return nil
}
