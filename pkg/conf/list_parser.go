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
	"strings"

	"gopkg.in/alecthomas/kingpin.v2"
)

const stringListDelimiter = ","

// StringListValue is a custom kingpin value which resolves flag's parameters consisting of
// string slice delimited by `stringListDelimiter`.
// For flag defined like this:
// `flag = StringList(kingpin.Flag("processes", "help"))`
//
// When user specifies options: `--processes=1,2 --processes=4` the flag
// variable is a slice with 1,2,4 items.
type StringListValue []string

// Set parses the input string and appends it to the slice. Implements kingpin.Value.
func (s *StringListValue) Set(value string) error {
	for _, elem := range strings.Split(value, stringListDelimiter) {
		elem = strings.TrimSpace(elem)
		if elem == "" {
			continue
		}
		*s = append(*s, elem)
	}
	return nil
}

// Get returns the slice. Implements kingpin.Getter.
func (s *StringListValue) Get() interface{} {
	return []string(*s)
}

// String returns string value from StringListValue. Implements kingpin.Value.
func (s *StringListValue) String() string {
	return strings.Join(*s, stringListDelimiter)
}

// IsCumulative implements optional interface (kingpin.repeatableFlag) for flags that can be repeated.
func (s *StringListValue) IsCumulative() bool {
	return true
}

// StringList is a helper for defining kingpin flags.
func StringList(s kingpin.Settings) (target *[]string) {
	target = new([]string)
	s.SetValue((*StringListValue)(target))
	return
}
