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
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// process represents common API for ssh.Session and exec.Cmd.
type process interface {
	// Wait blocks until process terminates and returns its exit code.
	Wait() (int, error)
	// Kill sends SIGKILL to the process (and its children where possible).
	Kill() error
}

const killTimeout = 5 * time.Second

// asyncTask implements TaskHandle for any process started by Local or Remote.
type asyncTask struct {
	proc       process
	address    string
	stdoutFile *os.File
	stderrFile *os.File

	// waitEndChannel is closed when process terminated. Exit code is valid after that.
	waitEndChannel chan struct{}
	exitCode       int
	waitErr        error

	eraseOnce sync.Once
	eraseErr  error
}

func newAsyncTask(command string, proc process, address string, stdoutFile, stderrFile *os.File) *asyncTask {
	t := &asyncTask{
		proc:           proc,
		address:        address,
		stdoutFile:     stdoutFile,
		stderrFile:     stderrFile,
		waitEndChannel: make(chan struct{}),
		exitCode:       -1,
	}

	go func() {
		defer close(t.waitEndChannel)
		t.exitCode, t.waitErr = proc.Wait()
		if t.waitErr != nil {
			logrus.Errorf("waiting for %q on %q failed: %v", command, address, t.waitErr)
			return
		}
		logrus.Debugf("ended %q on %q with status code %d", command, address, t.exitCode)
	}()

	return t
}

// isTerminated checks if waitEndChannel is closed.
func (task *asyncTask) isTerminated() bool {
	select {
	case <-task.waitEndChannel:
		return true
	default:
		return false
	}
}

// Stop terminates the task.
func (task *asyncTask) Stop() error {
	if task.isTerminated() {
		return nil
	}

	if err := task.proc.Kill(); err != nil {
		return errors.Wrapf(err, "cannot kill task on %q", task.address)
	}

	if !task.Wait(killTimeout) {
		return errors.Errorf("cannot terminate task on %q within %s", task.address, killTimeout)
	}
	return nil
}

// Status returns a state of the task.
func (task *asyncTask) Status() TaskState {
	if !task.isTerminated() {
		return RUNNING
	}
	return TERMINATED
}

// ExitCode returns the exit code of terminated task.
func (task *asyncTask) ExitCode() (int, error) {
	if !task.isTerminated() {
		return -1, errors.New("task is still running")
	}
	if task.waitErr != nil {
		return -1, task.waitErr
	}
	return task.exitCode, nil
}

// StdoutFile returns a file handle to the task's stdout, positioned at its beginning.
func (task *asyncTask) StdoutFile() (*os.File, error) {
	return openForReading(task.stdoutFile)
}

// StderrFile returns a file handle to the task's stderr, positioned at its beginning.
func (task *asyncTask) StderrFile() (*os.File, error) {
	return openForReading(task.stderrFile)
}

// EraseOutput removes task's stdout & stderr files.
func (task *asyncTask) EraseOutput() error {
	task.eraseOnce.Do(func() {
		task.eraseErr = removeExecutorOutputFiles(task.stdoutFile, task.stderrFile)
	})
	return task.eraseErr
}

// Address returns address where task was located.
func (task *asyncTask) Address() string {
	return task.address
}

// Wait waits for the command to finish with the given timeout time.
// It returns true if task is terminated.
func (task *asyncTask) Wait(timeout time.Duration) bool {
	if task.isTerminated() {
		return true
	}

	var timeoutChannel <-chan time.Time
	if timeout != 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		timeoutChannel = timer.C
	}

	select {
	case <-task.waitEndChannel:
		return true
	case <-timeoutChannel:
		return false
	}
}
