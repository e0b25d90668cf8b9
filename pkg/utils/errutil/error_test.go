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
	"testing"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
)

type statusError struct{}

func (statusError) Error() string { return "status error" }
func (statusError) ExitCode() int { return 2 }

func TestCheck(t *testing.T) {
	Convey("While checking errors", t, func() {
		code := -1
		originalExit := exit
		exit = func(status int) { code = status }
		defer func() { exit = originalExit }()

		Convey("Nil error should not exit", func() {
			Check(nil)
			So(code, ShouldEqual, -1)
		})

		Convey("Plain error should exit with 1", func() {
			CheckWithContext(errors.New("boom"), "running sweep")
			So(code, ShouldEqual, 1)
		})

		Convey("Wrapped error with exit code should exit with its status", func() {
			Check(errors.Wrap(statusError{}, "trial 3"))
			So(code, ShouldEqual, 2)
		})
	})
}
