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
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// checkIfProcessFailedToExecute should be checked in the end of Execute(cmd) method.
// It checks if command has already terminated with failure and returns nil handle and error.
// If task is still running or exit code is equal to 0, it returns the handle.
//
// Commands usually fail because of wrong parameters or binary that is not installed properly.
func checkIfProcessFailedToExecute(command string, executorName string, handle TaskHandle) (TaskHandle, error) {
	if handle.Status() != TERMINATED {
		return handle, nil
	}

	exitCode, err := handle.ExitCode()
	if err != nil {
		LogUnsuccessfulExecution(command, executorName, handle)
		handle.EraseOutput()
		return nil, errors.Wrapf(err, "task %q launched on %q failed, cannot get exit code", command, executorName)
	}
	if exitCode != 0 {
		LogUnsuccessfulExecution(command, executorName, handle)
		handle.EraseOutput()
		return nil, &ExitCodeError{Command: command, Address: handle.Address(), ExitCode: exitCode}
	}

	logrus.Debugf("task %q launched on %q has ended successfully", command, executorName)
	return handle, nil
}
