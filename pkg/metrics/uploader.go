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
	"go.uber.org/multierr"
)

// Uploader persists configuration records.
type Uploader interface {
	SendMetrics(Record) error
}

// Uploaders sends every record to all wrapped uploaders.
type Uploaders []Uploader

// SendMetrics implements Uploader. All uploaders are tried, failures are combined.
func (u Uploaders) SendMetrics(record Record) (err error) {
	for _, uploader := range u {
		err = multierr.Append(err, uploader.SendMetrics(record))
	}
	return err
}
