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

package experiment

import (
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// NewSweepID returns a unique identifier used for sweep directory and record tags.
func NewSweepID() string {
	return uuid.New().String()
}

// CreateSweepDir creates <workDir>/<appName>_<timestamp>_<sweepID> and the log file inside it.
func CreateSweepDir(workDir, sweepID, appName string) (directory string, logFile *os.File, err error) {
	name := filepath.Base(appName) + "_" + time.Now().Format("2006-01-02T15h04m05s") + "_" + sweepID
	directory = filepath.Join(workDir, name)
	if err := os.MkdirAll(directory, 0755); err != nil {
		return "", nil, errors.Wrapf(err, "cannot create sweep directory %q", directory)
	}

	logFile, err = os.OpenFile(filepath.Join(directory, "sweep.log"), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return "", nil, errors.Wrapf(err, "cannot create log file in %q", directory)
	}
	return directory, logFile, nil
}
