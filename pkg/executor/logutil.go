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
	"bufio"
	"fmt"
	"math/rand"
	"strings"

	"github.com/AK-1996/K-Means-Parallelization/pkg/utils/fs"
	"github.com/sirupsen/logrus"
)

const tailLineCount = 5

func outputFileNames(handle TaskHandle) (stdoutFileName, stderrFileName string) {
	stdoutFile, err := handle.StdoutFile()
	if err != nil {
		stdoutFileName = fmt.Sprintf("%v", err)
	} else {
		stdoutFileName = stdoutFile.Name()
		stdoutFile.Close()
	}

	stderrFile, err := handle.StderrFile()
	if err != nil {
		stderrFileName = fmt.Sprintf("%v", err)
	} else {
		stderrFileName = stderrFile.Name()
		stderrFile.Close()
	}
	return stdoutFileName, stderrFileName
}

// LogSuccessfulExecution is helper function for logging standard output and standard error
// file names.
func LogSuccessfulExecution(whatWasExecuted string, whereWasExecuted string, handle TaskHandle) {
	id := rand.Intn(9999)
	stdoutFileName, stderrFileName := outputFileNames(handle)

	logrus.Debugf("%4d Process %q on %q on %q has ended", id, whatWasExecuted, whereWasExecuted, handle.Address())
	logrus.Debugf("%4d Stdout stored in %q", id, stdoutFileName)
	logrus.Debugf("%4d Stderr stored in %q", id, stderrFileName)
}

// LogUnsuccessfulExecution is helper function for logging tails of standard output and
// standard error of task handles.
func LogUnsuccessfulExecution(whatWasExecuted string, whereWasExecuted string, handle TaskHandle) {
	id := rand.Intn(9999)
	stdoutFileName, stderrFileName := outputFileNames(handle)

	stdoutTail, err := fs.ReadTail(stdoutFileName, tailLineCount)
	if err != nil {
		stdoutTail = fmt.Sprintf("%v", err)
	}
	stderrTail, err := fs.ReadTail(stderrFileName, tailLineCount)
	if err != nil {
		stderrTail = fmt.Sprintf("%v", err)
	}

	logrus.Errorf("%4d Command %q might have ended prematurely on %q on address %q", id, whatWasExecuted, whereWasExecuted, handle.Address())
	logrus.Errorf("%4d Stdout stored in %q", id, stdoutFileName)
	logrus.Errorf("%4d Stderr stored in %q", id, stderrFileName)
	logrus.Errorf("%4d Last %d lines of stdout", id, tailLineCount)
	ErrorLogLines(strings.NewReader(stdoutTail), id)
	logrus.Errorf("%4d Last %d lines of stderr", id, tailLineCount)
	ErrorLogLines(strings.NewReader(stderrTail), id)

	exitCode, err := handle.ExitCode()
	if err != nil {
		logrus.Errorf("%4d Could not read exit code: %v", id, err)
	} else {
		logrus.Errorf("%4d Exit code: %d", id, exitCode)
	}
}

// ErrorLogLines takes reader and some ID and prints each line
// from reader in a separate logrus.Errorf("%4d <line>", id, line).
// logrus does not support multi-line logs.
func ErrorLogLines(r *strings.Reader, logID int) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		logrus.Errorf("%4d %s", logID, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		logrus.Errorf("%4d Printing from reader failed: %q", logID, err.Error())
	}
}
