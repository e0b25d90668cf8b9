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
	"testing"
	"time"

	"github.com/AK-1996/K-Means-Parallelization/pkg/executor"
	"github.com/AK-1996/K-Means-Parallelization/pkg/executor/mocks"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/mock"
)

// TestKMeansWithMockedExecutor runs both launchers with the mocked executor to simulate
// proper process execution and error case.
func TestKMeansWithMockedExecutor(t *testing.T) {
	logrus.SetLevel(logrus.ErrorLevel)

	Convey("When I create K-Means launchers with mocked executor and default configuration", t, func() {
		mExecutor := new(mocks.Executor)
		mHandle := new(mocks.TaskHandle)
		config := DefaultConfig()

		serial := NewSerial(mExecutor, config, "set.txt")
		distributed := NewDistributed(mExecutor, config, "set.txt", 4)

		Convey("Commands should match the programs' command lines", func() {
			So(serial.Command(), ShouldEqual, "./km 10 100 set.txt")
			So(distributed.Command(), ShouldEqual, "mpirun -np 4 ./mpi_km 10 100 set.txt")
			So(distributed.Name(), ShouldContainSubstring, "4 processes")
		})

		Convey("Hostfile should be passed to mpirun when given", func() {
			config.Hostfile = "hosts"
			So(NewDistributed(mExecutor, config, "set.txt", 2).Command(), ShouldEqual,
				"mpirun --hostfile hosts -np 2 ./mpi_km 10 100 set.txt")
		})

		Convey("When I launch the workload with success", func() {
			mExecutor.On("Execute", "./km 10 100 set.txt").Return(mHandle, nil).Once()
			handle, err := serial.Launch()
			So(err, ShouldBeNil)
			So(handle, ShouldEqual, mHandle)
		})

		Convey("When I launch the workload with failure", func() {
			expectedErr := errors.New("example error")
			mExecutor.On("Execute", "mpirun -np 4 ./mpi_km 10 100 set.txt").Return(nil, expectedErr).Once()
			handle, err := distributed.Launch()
			So(handle, ShouldBeNil)
			So(err, ShouldEqual, expectedErr)
		})
	})
}

func TestCompile(t *testing.T) {
	logrus.SetLevel(logrus.ErrorLevel)

	Convey("When no sources are configured", t, func() {
		mExecutor := new(mocks.Executor)
		So(Compile(context.Background(), mExecutor, DefaultConfig(), time.Second), ShouldBeNil)
		So(mExecutor.AssertNotCalled(t, "Execute", mock.Anything), ShouldBeTrue)
	})

	Convey("When both sources are configured", t, func() {
		config := DefaultConfig()
		config.SerialSource = "km.c"
		config.ParallelSource = "mpi_km.c"

		Convey("Compiler commands should link the math library", func() {
			So(config.CompileCommands(), ShouldResemble, []string{
				"gcc km.c -o ./km -lm",
				"mpicc mpi_km.c -o ./mpi_km -lm",
			})
		})

		Convey("Each compiler should be run to completion", func() {
			mExecutor := new(mocks.Executor)
			mHandle := new(mocks.TaskHandle)
			mExecutor.On("Name").Return("Mocked")
			mExecutor.On("Execute", mock.AnythingOfType("string")).Return(mHandle, nil).Twice()
			mHandle.On("Wait", mock.Anything).Return(true)
			mHandle.On("ExitCode").Return(0, nil)
			mHandle.On("StdoutFile").Return(nil, errors.New("none"))
			mHandle.On("StderrFile").Return(nil, errors.New("none"))
			mHandle.On("Address").Return("127.0.0.1")
			mHandle.On("EraseOutput").Return(nil)

			So(Compile(context.Background(), mExecutor, config, time.Second), ShouldBeNil)
			So(mExecutor.AssertNumberOfCalls(t, "Execute", 2), ShouldBeTrue)
		})

		Convey("Failing compiler should stop compilation", func() {
			mExecutor := new(mocks.Executor)
			mHandle := new(mocks.TaskHandle)
			mExecutor.On("Name").Return("Mocked")
			mExecutor.On("Execute", "gcc km.c -o ./km -lm").Return(mHandle, nil).Once()
			mHandle.On("Wait", mock.Anything).Return(true)
			mHandle.On("ExitCode").Return(1, nil)
			mHandle.On("StdoutFile").Return(nil, errors.New("none"))
			mHandle.On("StderrFile").Return(nil, errors.New("none"))
			mHandle.On("Address").Return("127.0.0.1")

			err := Compile(context.Background(), mExecutor, config, time.Second)
			So(err, ShouldNotBeNil)
			_, ok := errors.Cause(err).(*executor.ExitCodeError)
			So(ok, ShouldBeTrue)
		})
	})

	Convey("When parameters are invalid", t, func() {
		config := DefaultConfig()
		config.Clusters = 0
		So(config.Validate(), ShouldNotBeNil)
		So(DefaultConfig().Validate(), ShouldBeNil)
	})
}
