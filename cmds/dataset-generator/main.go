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
	"github.com/AK-1996/K-Means-Parallelization/pkg/conf"
	"github.com/AK-1996/K-Means-Parallelization/pkg/dataset"
	"github.com/AK-1996/K-Means-Parallelization/pkg/experiment"
	"github.com/AK-1996/K-Means-Parallelization/pkg/utils/errutil"
	"github.com/sirupsen/logrus"
)

var overwriteFlag = conf.NewBoolFlag("overwrite", "Replace dataset when it already exists", false)

func main() {
	conf.SetAppName("dataset-generator")
	conf.SetHelp("Generates K-Means dataset of uniformly drawn points.")
	experiment.Configure()

	generator := dataset.DefaultGenerator()
	path := dataset.DefaultPath()
	errutil.CheckWithContext(generator.Validate(), "Invalid dataset parameters")

	if overwriteFlag.Value() {
		errutil.CheckWithContext(generator.Generate(path), "Cannot generate dataset")
		logrus.Infof("dataset %q with %d points of %d features generated", path, generator.Points, generator.Features)
		return
	}

	created, err := generator.Ensure(path)
	errutil.CheckWithContext(err, "Cannot generate dataset")
	if !created {
		logrus.Infof("dataset %q already exists, use --overwrite to replace it", path)
		return
	}
	logrus.Infof("dataset %q with %d points of %d features generated", path, generator.Points, generator.Features)
}
