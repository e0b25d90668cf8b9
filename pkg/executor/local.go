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
	"os/exec"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Local provides the execution environment on local machine via exec.Command.
// It runs command as current user in the given working directory.
type Local struct {
	workDir string
}

// NewLocal returns a Local instance running commands in the current directory.
func NewLocal() Local {
	return Local{}
}

// NewLocalIn returns a Local instance running commands in workDir.
func NewLocalIn(workDir string) Local {
	return Local{workDir: workDir}
}

// Name returns user-friendly name of executor.
func (l Local) Name() string {
	return "Local"
}

// Execute runs the command given as input.
// Returned TaskHandle is able to stop & monitor the provisioned process.
func (l Local) Execute(command string) (TaskHandle, error) {
	logrus.Debugf("starting %q locally in %q", command, l.workDir)

	stdoutFile, stderrFile, err := createExecutorOutputFiles(command, "local")
	if err != nil {
		return nil, err
	}

	cmd := exec.Command("sh", "-c", command)
	cmd.Dir = l.workDir
	// Separate process group lets Kill reach every child of the shell.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Stdout = stdoutFile
	cmd.Stderr = stderrFile

	if err := cmd.Start(); err != nil {
		removeExecutorOutputFiles(stdoutFile, stderrFile)
		return nil, errors.Wrapf(err, "could not start %q", command)
	}
	logrus.Debugf("started %q with pid %d, output in %q", command, cmd.Process.Pid, stdoutFile.Name())

	handle := newAsyncTask(command, &localProcess{cmd: cmd}, "127.0.0.1", stdoutFile, stderrFile)
	register(handle)

	return checkIfProcessFailedToExecute(command, l.Name(), handle)
}

// localProcess wraps exec.Cmd.
type localProcess struct {
	cmd *exec.Cmd
}

// Wait returns exit code of the process. Termination by signal
// is reported as negated signal number.
func (p *localProcess) Wait() (int, error) {
	err := p.cmd.Wait()
	if err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			return -1, err
		}
	}

	status, ok := p.cmd.ProcessState.Sys().(syscall.WaitStatus)
	if !ok {
		return p.cmd.ProcessState.ExitCode(), nil
	}
	if status.Signaled() {
		return -int(status.Signal()), nil
	}
	return status.ExitStatus(), nil
}

// Kill signals the entire process group.
// The kill syscall interprets a negated PID N as the process group N belongs to.
func (p *localProcess) Kill() error {
	logrus.Debugf("sending %s to process group %d", syscall.SIGKILL, p.cmd.Process.Pid)
	return syscall.Kill(-p.cmd.Process.Pid, syscall.SIGKILL)
}
