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
	"fmt"
	"os"

	"github.com/AK-1996/K-Means-Parallelization/pkg/conf"
	"github.com/sirupsen/logrus"
)

// ExUsage is exit status for invalid command line (as in sysexits.h).
const ExUsage = 64

var dumpConfigFlag = conf.NewBoolFlag("config_dump", "Dump configuration as environment script and exit.", false)

// Configure handles configuration parsing and dumping based on the config_dump flag.
// Note: exits if configuration dump was requested or flags are invalid.
func Configure() {
	err := conf.ParseFlags()
	if err != nil {
		logrus.Errorf("Cannot parse flags: %q", err.Error())
		os.Exit(ExUsage)
	}
	logrus.SetLevel(conf.LogLevel())

	if dumpConfigFlag.Value() {
		fmt.Println(conf.DumpConfig())
		os.Exit(0)
	}
}
