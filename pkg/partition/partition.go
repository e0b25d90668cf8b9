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
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

const assignmentSeparator = " is in Cluster "

// Partition maps cluster labels to disjoint sets of points.
// Labels are kept in order of first appearance.
type Partition struct {
	labels   []string
	clusters map[string]map[string]struct{}
	owners   map[string]string
}

// New returns an empty Partition.
func New() *Partition {
	return &Partition{
		clusters: map[string]map[string]struct{}{},
		owners:   map[string]string{},
	}
}

// Add assigns point to cluster label. A point can belong to one cluster only.
func (p *Partition) Add(point, label string) error {
	if owner, ok := p.owners[point]; ok {
		if owner == label {
			return errors.Errorf("point %q listed twice in cluster %q", point, label)
		}
		return errors.Errorf("point %q assigned to clusters %q and %q", point, owner, label)
	}

	cluster, ok := p.clusters[label]
	if !ok {
		cluster = map[string]struct{}{}
		p.clusters[label] = cluster
		p.labels = append(p.labels, label)
	}
	cluster[point] = struct{}{}
	p.owners[point] = label
	return nil
}

// Labels returns cluster labels in order of first appearance.
func (p *Partition) Labels() []string {
	return append([]string{}, p.labels...)
}

// Clusters returns number of clusters.
func (p *Partition) Clusters() int {
	return len(p.labels)
}

// Points returns number of points over all clusters.
func (p *Partition) Points() int {
	return len(p.owners)
}

// ClusterOf returns label of the cluster containing point.
func (p *Partition) ClusterOf(point string) (string, bool) {
	label, ok := p.owners[point]
	return label, ok
}

// Members returns points of the cluster. Order is unspecified.
func (p *Partition) Members(label string) []string {
	members := make([]string, 0, len(p.clusters[label]))
	for point := range p.clusters[label] {
		members = append(members, point)
	}
	return members
}

func (p *Partition) contains(label, point string) bool {
	_, ok := p.clusters[label][point]
	return ok
}

// Parse reads an assignment listing. Blank lines are skipped.
func Parse(r io.Reader) (*Partition, error) {
	p := New()
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		point, label, found := strings.Cut(line, assignmentSeparator)
		point, label = strings.TrimSpace(point), strings.TrimSpace(label)
		if !found || point == "" || label == "" {
			return nil, errors.Errorf("line %d: expected %q, got %q", lineNumber, "<point>"+assignmentSeparator+"<cluster>", line)
		}
		if err := p.Add(point, label); err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNumber)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "cannot read assignment listing")
	}
	return p, nil
}

// ParseFile reads an assignment listing from path.
// Error cause is *os.PathError when the file cannot be opened.
func ParseFile(path string) (*Partition, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer file.Close()

	p, err := Parse(file)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot parse %q", path)
	}
	return p, nil
}
