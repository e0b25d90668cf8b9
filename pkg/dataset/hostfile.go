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
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Host is one entry of an MPI hostfile, e.g. "node1 slots=4".
type Host struct {
	Name    string
	Options string
}

// ParseHostfile reads hostfile entries. Comments and blank lines are skipped.
func ParseHostfile(r io.Reader) ([]Host, error) {
	var hosts []Host
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		hosts = append(hosts, Host{Name: fields[0], Options: strings.Join(fields[1:], " ")})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "cannot read hostfile")
	}
	return hosts, nil
}

// ReadHostfile reads hostfile at path.
func ReadHostfile(path string) ([]Host, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer file.Close()

	hosts, err := ParseHostfile(file)
	return hosts, errors.Wrapf(err, "cannot parse %q", path)
}

// RemoteHosts returns hosts which need a copy of the dataset.
// The first entry is the launching node and already has it.
func RemoteHosts(hosts []Host) []Host {
	if len(hosts) <= 1 {
		return nil
	}
	return hosts[1:]
}
