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

package metrics

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/multierr"
)

type recordingUploader struct {
	records []Record
	err     error
}

func (u *recordingUploader) SendMetrics(record Record) error {
	u.records = append(u.records, record)
	return u.err
}

func TestRecord(t *testing.T) {
	Convey("When I prepare a Record for a sweep", t, func() {
		record := Record{
			Tags:            Tags{SweepID: uuid.New().String()},
			NProc:           2,
			Speedup:         decimal.RequireFromString("5"),
			Scalability:     decimal.RequireFromString("5.0"),
			AvgSerialTime:   decimal.RequireFromString("10"),
			AvgParallelTime: decimal.RequireFromString("2"),
		}

		Convey("It should be equal to a record with the same values in other sweep", func() {
			other := record
			other.Tags = Tags{SweepID: uuid.New().String()}
			other.Scalability = decimal.RequireFromString("5.000")
			So(record.Equal(other), ShouldBeTrue)

			Convey("And differ when any metric differs", func() {
				other.AvgParallelTime = decimal.RequireFromString("2.5")
				So(record.Equal(other), ShouldBeFalse)
			})
		})

		Convey("Uploaders should send it everywhere and combine failures", func() {
			first := &recordingUploader{err: errors.New("first failed")}
			second := &recordingUploader{}
			third := &recordingUploader{err: errors.New("third failed")}

			err := Uploaders{first, second, third}.SendMetrics(record)
			So(multierr.Errors(err), ShouldHaveLength, 2)
			So(first.records, ShouldHaveLength, 1)
			So(second.records, ShouldHaveLength, 1)
			So(third.records, ShouldHaveLength, 1)
		})
	})
}
