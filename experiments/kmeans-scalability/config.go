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

package main

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/AK-1996/K-Means-Parallelization/pkg/workloads/kmeans"
	"github.com/pkg/errors"
)

func parseProcesses(values []string) ([]int, error) {
	processes := make([]int, 0, len(values))
	for _, value := range values {
		count, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, errors.Wrapf(err, "process count %q is not a number", value)
		}
		processes = append(processes, count)
	}
	return processes, nil
}

// resolvePath makes relative paths relative to workDir.
func resolvePath(workDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workDir, path)
}

// resolveConfig anchors K-Means binaries and sources in workDir. Bare command names such as mpirun are looked up in PATH.
func resolveConfig(config kmeans.Config, workDir string) (kmeans.Config, error) {
	if err := config.Validate(); err != nil {
		return config, err
	}
	anchor := func(path string) string {
		if !strings.ContainsRune(path, filepath.Separator) {
			return path
		}
		return resolvePath(workDir, path)
	}
	config.SerialBinary = anchor(config.SerialBinary)
	config.ParallelBinary = anchor(config.ParallelBinary)
	config.SerialSource = anchor(config.SerialSource)
	config.ParallelSource = anchor(config.ParallelSource)
	config.MPIRun = anchor(config.MPIRun)

	if config.Hostfile != "" {
		hostfile, err := filepath.Abs(config.Hostfile)
		if err != nil {
			return config, errors.Wrapf(err, "cannot resolve hostfile %q", config.Hostfile)
		}
		config.Hostfile = hostfile
	}
	return config, nil
}
