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

package partition

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Mode selects the equivalence rule.
type Mode string

const (
	// ModeStrict requires a one-to-one mapping between identical clusters.
	ModeStrict Mode = "strict"
	// ModeOverlap only requires every cluster to share a point with some other cluster.
	ModeOverlap Mode = "overlap"
)

// mismatchExitCode distinguishes disagreeing partitions from other failures.
const mismatchExitCode = 2

// MismatchError is returned when two partitions are not equivalent.
type MismatchError struct {
	Mode     Mode
	Expected int
	Matched  int
	Reason   string
}

func (e *MismatchError) Error() string {
	msg := fmt.Sprintf("partitions differ (%s check): matched %d of %d clusters", e.Mode, e.Matched, e.Expected)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// ExitCode implements errutil.ExitCoder.
func (e *MismatchError) ExitCode() int {
	return mismatchExitCode
}

// Checker decides whether p2 groups points the same way as p1.
type Checker interface {
	Check(p1, p2 *Partition) error
}

// NewChecker returns checker for given mode expecting k clusters.
func NewChecker(mode Mode, k int) (Checker, error) {
	if k <= 0 {
		return nil, errors.Errorf("number of clusters must be positive, got %d", k)
	}
	switch mode {
	case ModeStrict:
		return Strict{K: k}, nil
	case ModeOverlap:
		return Overlap{K: k}, nil
	}
	return nil, errors.Errorf("unknown equivalence mode %q, use %q or %q", mode, ModeStrict, ModeOverlap)
}

// Overlap counts clusters of p1 which share at least one point with any cluster of p2,
// taking the first such cluster in p2 label order. It accepts when the count equals K.
// Reuse of p2 clusters is not detected.
type Overlap struct {
	K int
}

// Check implements Checker.
func (o Overlap) Check(p1, p2 *Partition) error {
	matched := 0
	for _, label := range p1.Labels() {
		members := p1.Members(label)
		_, found := lo.Find(p2.Labels(), func(candidate string) bool {
			return lo.SomeBy(members, func(point string) bool { return p2.contains(candidate, point) })
		})
		if found {
			matched++
		}
	}

	if matched != o.K {
		return &MismatchError{Mode: ModeOverlap, Expected: o.K, Matched: matched}
	}
	return nil
}

// Strict accepts when both partitions have K clusters over the same points and
// every cluster of p1 equals exactly one cluster of p2.
type Strict struct {
	K int
}

// Check implements Checker.
func (s Strict) Check(p1, p2 *Partition) error {
	mismatch := func(matched int, format string, args ...interface{}) error {
		return &MismatchError{Mode: ModeStrict, Expected: s.K, Matched: matched, Reason: fmt.Sprintf(format, args...)}
	}

	if p1.Clusters() != s.K || p2.Clusters() != s.K {
		return mismatch(0, "got %d and %d clusters", p1.Clusters(), p2.Clusters())
	}
	if p1.Points() != p2.Points() {
		return mismatch(0, "got %d and %d points", p1.Points(), p2.Points())
	}

	used := map[string]string{}
	matched := 0
	for _, label := range p1.Labels() {
		members := p1.Members(label)
		// Every point of an equal cluster maps to the same p2 cluster, so the first point selects the candidate.
		candidate, ok := p2.ClusterOf(members[0])
		if !ok {
			return mismatch(matched, "point %q is missing in second partition", members[0])
		}
		if previous, taken := used[candidate]; taken {
			return mismatch(matched, "clusters %q and %q both map to %q", previous, label, candidate)
		}
		if len(p2.clusters[candidate]) != len(members) {
			return mismatch(matched, "cluster %q has %d points, its counterpart %q has %d", label, len(members), candidate, len(p2.clusters[candidate]))
		}
		if stray, found := lo.Find(members, func(point string) bool { return !p2.contains(candidate, point) }); found {
			return mismatch(matched, "point %q of cluster %q is not in %q", stray, label, candidate)
		}
		used[candidate] = label
		matched++
	}
	return nil
}
