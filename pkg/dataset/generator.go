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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/AK-1996/K-Means-Parallelization/pkg/utils/fs"
	"github.com/Pallinder/go-randomdata"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// MinValue is the inclusive lower bound of generated features.
	MinValue = 0
	// MaxValue is the exclusive upper bound of generated features.
	MaxValue = 10000
)

// Generator writes datasets of uniformly distributed points.
type Generator struct {
	Points   int
	Features int
}

// Validate checks dataset dimensions.
func (g Generator) Validate() error {
	if g.Points <= 0 {
		return errors.Errorf("number of points must be positive, got %d", g.Points)
	}
	if g.Features <= 0 {
		return errors.Errorf("number of features must be positive, got %d", g.Features)
	}
	return nil
}

func value() float64 {
	for {
		v := randomdata.Decimal(MinValue, MaxValue)
		if v < MaxValue {
			return v
		}
	}
}

// Write writes header "<points>\t<features>" followed by one line of tab separated features per point.
func (g Generator) Write(w io.Writer) error {
	if err := g.Validate(); err != nil {
		return err
	}

	buffered := bufio.NewWriter(w)
	fmt.Fprintf(buffered, "%d\t%d\n", g.Points, g.Features)
	line := make([]byte, 0, g.Features*20)
	for i := 0; i < g.Points; i++ {
		line = line[:0]
		for j := 0; j < g.Features; j++ {
			if j > 0 {
				line = append(line, '\t')
			}
			line = strconv.AppendFloat(line, value(), 'f', -1, 64)
		}
		line = append(line, '\n')
		if _, err := buffered.Write(line); err != nil {
			return errors.Wrap(err, "cannot write dataset")
		}
	}
	return errors.Wrap(buffered.Flush(), "cannot write dataset")
}

// Generate writes a dataset to path. The file appears atomically.
func (g Generator) Generate(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "cannot create directory for %q", path)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "cannot create dataset %q", path)
	}
	defer os.Remove(tmp.Name())

	if err := g.Write(tmp); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "cannot generate dataset %q", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "cannot close dataset %q", path)
	}
	return errors.Wrapf(os.Rename(tmp.Name(), path), "cannot move dataset to %q", path)
}

// Ensure generates dataset at path unless it already exists.
// It reports whether a new dataset was written.
func (g Generator) Ensure(path string) (bool, error) {
	exists, err := fs.Exists(path)
	if err != nil {
		return false, err
	}
	if exists {
		logrus.Debugf("dataset %q already exists, reusing it", path)
		return false, nil
	}

	logrus.Debugf("generating dataset %q with %d points of %d features", path, g.Points, g.Features)
	if err := g.Generate(path); err != nil {
		return false, err
	}
	return true, nil
}
