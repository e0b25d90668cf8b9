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

package executor

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

const outputDirPrefix = "kmbench_"

func getBinaryNameFromCommand(command string) (string, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "", errors.Errorf("failed to extract command name from %q", command)
	}
	return filepath.Base(fields[0]), nil
}

// createExecutorOutputFiles creates stdout and stderr files in a fresh
// temporary directory named after the executed binary.
func createExecutorOutputFiles(command, prefix string) (stdout, stderr *os.File, err error) {
	if len(strings.TrimSpace(command)) == 0 {
		return nil, nil, errors.New("empty command string")
	}

	commandName, err := getBinaryNameFromCommand(command)
	if err != nil {
		return nil, nil, err
	}

	outputDir, err := os.MkdirTemp(os.TempDir(), outputDirPrefix+prefix+"_"+commandName+"_")
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to create output directory for %q", commandName)
	}

	stdout, err = os.Create(filepath.Join(outputDir, "stdout"))
	if err != nil {
		os.RemoveAll(outputDir)
		return nil, nil, errors.Wrap(err, "failed to create stdout file")
	}

	stderr, err = os.Create(filepath.Join(outputDir, "stderr"))
	if err != nil {
		stdout.Close()
		os.RemoveAll(outputDir)
		return nil, nil, errors.Wrap(err, "failed to create stderr file")
	}

	return stdout, stderr, nil
}

// removeExecutorOutputFiles closes both files and removes their directory.
func removeExecutorOutputFiles(stdout, stderr *os.File) error {
	stdout.Close()
	stderr.Close()

	outputDir := filepath.Dir(stdout.Name())
	if err := os.RemoveAll(outputDir); err != nil {
		return errors.Wrapf(err, "could not remove output directory %q", outputDir)
	}
	return nil
}

// openForReading reopens the output file so that callers read it from the beginning.
func openForReading(file *os.File) (*os.File, error) {
	if _, err := os.Stat(file.Name()); err != nil {
		return nil, errors.Wrapf(err, "output file %q is not available", file.Name())
	}
	return os.Open(file.Name())
}
