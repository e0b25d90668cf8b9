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

package errutil

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ExitCoder is implemented by errors that require a distinguished process exit status.
type ExitCoder interface {
	ExitCode() int
}

// Check the supplied error, log and exit if non-nil.
func Check(err error) {
	CheckWithContext(err, "")
}

// CheckWithContext checks the error and exit if it is not nil. Logs additional context information.
// Exit status is taken from the error cause when it implements ExitCoder, 1 otherwise.
func CheckWithContext(err error, context string) {
	if err == nil {
		return
	}

	if context != "" {
		logrus.Debugf("%s: %+v", context, err)
		logrus.Errorf("%s: %v", context, err)
	} else {
		logrus.Debugf("%+v", err)
		logrus.Errorf("%v", err)
	}
	exit(ExitStatus(err))
}

// ExitStatus returns process exit status for given error.
func ExitStatus(err error) int {
	if err == nil {
		return 0
	}
	if coder, ok := errors.Cause(err).(ExitCoder); ok {
		return coder.ExitCode()
	}
	return 1
}

var exit = os.Exit
