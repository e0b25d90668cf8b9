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

	"github.com/pkg/errors"
)

// ArtifactKind tells what is wrong with a file exchanged with the K-Means programs.
type ArtifactKind int

const (
	// Missing artifact was expected but is absent.
	Missing ArtifactKind = iota
	// Stale artifact is left over from an earlier run and would be read as fresh data.
	Stale
)

func (k ArtifactKind) String() string {
	switch k {
	case Missing:
		return "missing"
	case Stale:
		return "stale"
	}
	return "unknown"
}

// ArtifactError reports a missing or stale dataset, assignment listing, timing report or summary log.
type ArtifactError struct {
	Kind ArtifactKind
	Path string
	// Stage names the sweep step which detected the problem.
	Stage string
}

func (e *ArtifactError) Error() string {
	msg := fmt.Sprintf("%s artifact %q", e.Kind, e.Path)
	if e.Stage != "" {
		msg += " " + e.Stage
	}
	if e.Kind == Stale {
		msg += ", remove it after inspection"
	}
	return msg
}

// IsArtifactError checks whether err is caused by artifact of given kind.
func IsArtifactError(err error, kind ArtifactKind) bool {
	artifactErr, ok := errors.Cause(err).(*ArtifactError)
	return ok && artifactErr.Kind == kind
}

// missingIfNotExist converts "file does not exist" into a Missing ArtifactError.
func missingIfNotExist(err error, path, stage string) error {
	if err != nil && os.IsNotExist(errors.Cause(err)) {
		return &ArtifactError{Kind: Missing, Path: path, Stage: stage}
	}
	return err
}
