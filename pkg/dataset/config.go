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
	"github.com/AK-1996/K-Means-Parallelization/pkg/conf"
)

var (
	pointsFlag   = conf.NewIntFlag("points", "Number of points in generated dataset", 50000)
	featuresFlag = conf.NewIntFlag("features", "Number of features of each point", 8)
	pathFlag     = conf.NewStringFlag("dataset", "Path of the dataset shared by both K-Means programs", "set.txt")
)

// DefaultGenerator returns generator with dimensions from flags.
func DefaultGenerator() Generator {
	return Generator{Points: pointsFlag.Value(), Features: featuresFlag.Value()}
}

// DefaultPath returns dataset path from flags.
func DefaultPath() string {
	return pathFlag.Value()
}
