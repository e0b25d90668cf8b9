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

package errcollection

import (
	"go.uber.org/multierr"
)

// ErrorCollection gathers errors and returns one error combining
// messages from all given errors delimited by "; ".
type ErrorCollection struct {
	err error
}

// Add inserts new error to collection. Nil errors are ignored.
func (e *ErrorCollection) Add(err error) {
	e.err = multierr.Append(e.err, err)
}

// GetErrIfAny returns error with combined message from all given errors.
// In case of no error it returns nil.
func (e *ErrorCollection) GetErrIfAny() error {
	return e.err
}

// Errors returns all collected errors.
func (e *ErrorCollection) Errors() []error {
	return multierr.Errors(e.err)
}
