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

package conf

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	. "github.com/smartystreets/goconvey/convey"
)

const testAppName = "testAppName"

var customFlag = NewStringFlag("custom_arg", "help", "default")

func clearEnv() {
	logLevelFlag.clear()
	customFlag.clear()
}

func TestConf(t *testing.T) {
	Convey("While using Conf pkg", t, func() {
		clearEnv()
		defer clearEnv()

		SetAppName(testAppName)
		SetHelp("help message")

		Convey("Name and help should match to specified one", func() {
			So(AppName(), ShouldEqual, testAppName)
			So(app.Help, ShouldEqual, "help message")
		})

		Convey("Log level can be fetched from env", func() {
			So(ParseEnv(), ShouldBeNil)
			So(LogLevel(), ShouldEqual, logrus.InfoLevel)

			os.Setenv(logLevelFlag.envName(), "debug")

			So(ParseEnv(), ShouldBeNil)
			So(LogLevel(), ShouldEqual, logrus.DebugLevel)
		})

		Convey("Invalid log level falls back to default", func() {
			os.Setenv(logLevelFlag.envName(), "loud")

			So(ParseEnv(), ShouldBeNil)
			So(LogLevel(), ShouldEqual, logrus.InfoLevel)
		})

		Convey("Dumped config should contain environment assignments", func() {
			os.Setenv(customFlag.envName(), "customContent")
			So(ParseEnv(), ShouldBeNil)

			dump := DumpConfig()
			So(dump, ShouldStartWith, "# Export all values.\n")
			So(dump, ShouldContainSubstring, "KMBENCH_CUSTOM_ARG=customContent\n")
			So(dump, ShouldContainSubstring, "# Default: default\n")
			So(dump, ShouldEndWith, "set +o allexport\n")
		})
	})
}
