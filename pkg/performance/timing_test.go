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

package performance

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseTimingReport(t *testing.T) {
	Convey("When timing report has alternating serial and parallel lines", t, func() {
		report := "Serial time:\t10.5\nParallel time:\t2.25\n\nSerial time:\t9.5\nParallel time:\t1.75\n"
		samples, err := ParseTimingReport(strings.NewReader(report))
		So(err, ShouldBeNil)

		Convey("It should produce one sample per trial", func() {
			So(samples, ShouldHaveLength, 2)
			So(samples[0].Serial.String(), ShouldEqual, "10.5")
			So(samples[0].Parallel.String(), ShouldEqual, "2.25")
			So(samples[1].Serial.String(), ShouldEqual, "9.5")
			So(samples[1].Parallel.String(), ShouldEqual, "1.75")
		})
	})

	Convey("When parallel timing of the last trial is missing", t, func() {
		_, err := ParseTimingReport(strings.NewReader("Serial time:\t1\nParallel time:\t1\nSerial time:\t1\n"))
		So(err, ShouldNotBeNil)
	})

	Convey("When elapsed time is not a number", t, func() {
		_, err := ParseTimingReport(strings.NewReader("Serial time:\tfast\nParallel time:\t1\n"))
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "line 1")
	})

	Convey("When line has no tab separated value", t, func() {
		_, err := ParseTimingReport(strings.NewReader("Serial time 1\n"))
		So(err, ShouldNotBeNil)
	})

	Convey("When timing report file is missing", t, func() {
		_, err := ParseTimingReportFile(filepath.Join(t.TempDir(), "time.txt"))
		So(os.IsNotExist(errors.Cause(err)), ShouldBeTrue)
	})
}
