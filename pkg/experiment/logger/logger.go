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

package logger

import (
	"io"
	"os"

	"github.com/AK-1996/K-Means-Parallelization/pkg/experiment"
	"github.com/AK-1996/K-Means-Parallelization/pkg/utils/errutil"
	"github.com/sirupsen/logrus"
)

// Initialize creates sweep directory and configures logrus to log both to stderr and to a file in it.
// Returns sweep directory.
func Initialize(appName, workDir, sweepID string) string {
	sweepDirectory, logFile, err := experiment.CreateSweepDir(workDir, sweepID, appName)
	errutil.CheckWithContext(err, "Cannot create sweep logs directory")

	// Setup logging set to both output and logFile.
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05.100"})
	logrus.Infof("Sweep directory %q", sweepDirectory)
	logrus.SetOutput(io.MultiWriter(logFile, os.Stderr))

	logrus.Info("Starting sweep ", appName, " with uid ", sweepID)
	return sweepDirectory
}
