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

package validate

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/AK-1996/K-Means-Parallelization/pkg/dataset"
	"github.com/AK-1996/K-Means-Parallelization/pkg/utils/err_collection"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const performance = "performance"

var governorFile = "/sys/devices/system/cpu/cpu%d/cpufreq/scaling_governor"

// CheckCPUPowerGovernor warn user about potential issues with performance when powersave governor is used.
// governor path: https://www.kernel.org/doc/Documentation/cpu-freq/user-guide.txt
func CheckCPUPowerGovernor() {
	cpu0GovernorFile := fmt.Sprintf(governorFile, 0) // Assume at least one CPU exists!.
	if _, err := os.Stat(cpu0GovernorFile); os.IsNotExist(err) {
		logrus.Warnf("Validation of CPU power governor failed! - %q not available.", cpu0GovernorFile)
		return
	}
	for i := 0; i < runtime.NumCPU(); i++ {
		cpuGovernorFile := fmt.Sprintf(governorFile, i)
		governorBytes, err := os.ReadFile(cpuGovernorFile)
		if err != nil {
			logrus.Debugf("cannot read %q: %v", cpuGovernorFile, err)
			continue
		}
		governor := strings.TrimSuffix(string(governorBytes), "\n")
		logrus.Debugf("governor cpu%d: %q", i, governor)
		if governor != performance {
			logrus.Warnf("scaling_governor=%q (%q) should be set to 'performance' policy to reduce variability of timings. You can change this value with 'cpupower frequency-set -g performance' as root.", governor, cpuGovernorFile)
		}
	}
}

// Commands checks that every command resolves to an executable.
// Paths with a separator are checked directly, others are looked up in PATH.
func Commands(commands ...string) error {
	var errCollection errcollection.ErrorCollection
	for _, command := range commands {
		if _, err := exec.LookPath(command); err != nil {
			errCollection.Add(errors.Wrapf(err, "command %q is not available", command))
		}
	}
	return errCollection.GetErrIfAny()
}

// Hostfile checks that hostfile is readable and not empty. Empty path is accepted.
func Hostfile(path string) ([]dataset.Host, error) {
	if path == "" {
		return nil, nil
	}
	hosts, err := dataset.ReadHostfile(path)
	if err != nil {
		return nil, err
	}
	if len(hosts) == 0 {
		return nil, errors.Errorf("hostfile %q lists no hosts", path)
	}
	return hosts, nil
}
