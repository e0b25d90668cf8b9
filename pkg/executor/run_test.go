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

package executor_test

import (
	"context"
	"testing"
	"time"

	"github.com/AK-1996/K-Means-Parallelization/pkg/executor"
	"github.com/AK-1996/K-Means-Parallelization/pkg/executor/mocks"
	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/mock"
)

func TestRun(t *testing.T) {
	Convey("When running commands locally", t, func() {
		local := executor.NewLocal()

		Convey("Successful command should return terminated handle", func() {
			handle, err := executor.Run(context.Background(), local, "true", time.Minute)
			So(err, ShouldBeNil)
			defer handle.EraseOutput()
			So(handle.Status(), ShouldEqual, executor.TERMINATED)
		})

		Convey("Failing command should report its exit code", func() {
			handle, err := executor.Run(context.Background(), local, "exit 3", time.Minute)
			if handle != nil {
				defer handle.EraseOutput()
			}
			So(err, ShouldNotBeNil)
			exitCodeError, ok := errors.Cause(err).(*executor.ExitCodeError)
			So(ok, ShouldBeTrue)
			So(exitCodeError.ExitCode, ShouldEqual, 3)
		})

		Convey("Command exceeding the timeout should be stopped", func() {
			handle, err := executor.Run(context.Background(), local, "sleep 10", 50*time.Millisecond)
			So(handle, ShouldNotBeNil)
			defer handle.EraseOutput()
			So(errors.Cause(err), ShouldEqual, executor.ErrTimeout)
			So(handle.Status(), ShouldEqual, executor.TERMINATED)
		})

		Convey("Cancelled context should stop the command", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			handle, err := executor.Run(ctx, local, "sleep 10", 0)
			So(handle, ShouldNotBeNil)
			defer handle.EraseOutput()
			So(errors.Cause(err), ShouldEqual, context.Canceled)
		})
	})

	Convey("When executor fails to start the command", t, func() {
		mockedExecutor := new(mocks.Executor)
		mockedExecutor.On("Execute", "km").Return(nil, errors.New("no such binary")).Once()
		mockedExecutor.On("Name").Return("Mocked")

		_, err := executor.Run(context.Background(), mockedExecutor, "km", time.Second)

		Convey("The error should be returned", func() {
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "no such binary")
			So(mockedExecutor.AssertExpectations(t), ShouldBeTrue)
		})
	})

	Convey("When mocked task terminates with zero exit code", t, func() {
		mockedExecutor := new(mocks.Executor)
		mockedHandle := new(mocks.TaskHandle)
		mockedExecutor.On("Execute", "km").Return(mockedHandle, nil).Once()
		mockedExecutor.On("Name").Return("Mocked")
		mockedHandle.On("Wait", mock.AnythingOfType("time.Duration")).Return(true).Once()
		mockedHandle.On("ExitCode").Return(0, nil).Once()
		mockedHandle.On("StdoutFile").Return(nil, errors.New("no file"))
		mockedHandle.On("StderrFile").Return(nil, errors.New("no file"))
		mockedHandle.On("Address").Return("127.0.0.1")

		handle, err := executor.Run(context.Background(), mockedExecutor, "km", time.Second)

		Convey("Run should succeed", func() {
			So(err, ShouldBeNil)
			So(handle, ShouldEqual, mockedHandle)
			So(mockedHandle.AssertExpectations(t), ShouldBeTrue)
		})
	})
}
