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

package dataset

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerator(t *testing.T) {
	Convey("When dataset is written", t, func() {
		buffer := &bytes.Buffer{}
		So(Generator{Points: 20, Features: 3}.Write(buffer), ShouldBeNil)

		scanner := bufio.NewScanner(buffer)
		So(scanner.Scan(), ShouldBeTrue)

		Convey("First line should hold dimensions", func() {
			So(scanner.Text(), ShouldEqual, "20\t3")
		})

		Convey("Each point should have features in range", func() {
			points := 0
			for scanner.Scan() {
				points++
				fields := strings.Split(scanner.Text(), "\t")
				So(fields, ShouldHaveLength, 3)
				for _, field := range fields {
					value, err := strconv.ParseFloat(field, 64)
					So(err, ShouldBeNil)
					So(value, ShouldBeGreaterThanOrEqualTo, float64(MinValue))
					So(value, ShouldBeLessThan, float64(MaxValue))
				}
			}
			So(points, ShouldEqual, 20)
		})
	})

	Convey("When dimensions are not positive", t, func() {
		So(Generator{Points: 0, Features: 3}.Write(&bytes.Buffer{}), ShouldNotBeNil)
		So(Generator{Points: 3, Features: -1}.Write(&bytes.Buffer{}), ShouldNotBeNil)
	})

	Convey("When dataset is ensured", t, func() {
		path := filepath.Join(t.TempDir(), "dataset", "set.txt")
		created, err := Generator{Points: 5, Features: 2}.Ensure(path)
		So(err, ShouldBeNil)
		So(created, ShouldBeTrue)

		Convey("Existing dataset should be reused untouched", func() {
			before, err := os.ReadFile(path)
			So(err, ShouldBeNil)

			created, err := Generator{Points: 5, Features: 2}.Ensure(path)
			So(err, ShouldBeNil)
			So(created, ShouldBeFalse)

			after, err := os.ReadFile(path)
			So(err, ShouldBeNil)
			So(after, ShouldResemble, before)
		})

		Convey("No temporary files should be left", func() {
			entries, err := os.ReadDir(filepath.Dir(path))
			So(err, ShouldBeNil)
			So(entries, ShouldHaveLength, 1)
		})
	})
}
