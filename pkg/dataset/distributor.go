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
	"context"
	"fmt"
	"path"
	"path/filepath"
	"time"

	"github.com/AK-1996/K-Means-Parallelization/pkg/executor"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Remote is an MPI host that receives files and runs commands.
type Remote interface {
	executor.Executor
	Upload(ctx context.Context, localPath, remotePath string) error
}

// Target is a host receiving the dataset.
type Target struct {
	Host   string
	Remote Remote
}

// Distributor copies dataset to every target concurrently.
// Empty RemoteDir places the dataset at the same path as on the local host.
type Distributor struct {
	Targets   []Target
	RemoteDir string
}

// SSHOptions configure ssh connections to MPI hosts.
type SSHOptions struct {
	User           string
	KeyPath        string
	KnownHostsPath string
}

// NewSSHDistributor returns distributor uploading over ssh to hosts.
func NewSSHDistributor(hosts []Host, remoteDir string, options SSHOptions) (*Distributor, error) {
	distributor := &Distributor{RemoteDir: remoteDir}
	for _, host := range hosts {
		config, err := executor.NewSSHConfig(host.Name, executor.DefaultSSHPort, options.User, options.KeyPath, options.KnownHostsPath)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot prepare ssh connection to %q", host.Name)
		}
		distributor.Targets = append(distributor.Targets, Target{Host: host.Name, Remote: executor.NewRemote(*config)})
	}
	return distributor, nil
}

// RemotePath returns where dataset lands on remote hosts.
func (d *Distributor) RemotePath(localPath string) string {
	if d.RemoteDir == "" {
		return filepath.ToSlash(localPath)
	}
	return path.Join(d.RemoteDir, filepath.Base(localPath))
}

// Distribute uploads localPath to all targets. It fails when any upload fails.
func (d *Distributor) Distribute(ctx context.Context, localPath string) error {
	remotePath := d.RemotePath(localPath)
	group, ctx := errgroup.WithContext(ctx)
	for _, target := range d.Targets {
		target := target
		group.Go(func() error {
			if err := target.Remote.Upload(ctx, localPath, remotePath); err != nil {
				return errors.Wrapf(err, "cannot distribute dataset to %q", target.Host)
			}
			logrus.Debugf("dataset %q distributed to %s:%s", localPath, target.Host, remotePath)
			return nil
		})
	}
	return group.Wait()
}

// CheckBinaries fails unless every path is an executable on every target.
// mpirun starts ranks on remote hosts from the same path as locally.
func (d *Distributor) CheckBinaries(ctx context.Context, timeout time.Duration, paths ...string) error {
	group, ctx := errgroup.WithContext(ctx)
	for _, target := range d.Targets {
		target := target
		group.Go(func() error {
			for _, binary := range paths {
				handle, err := executor.Run(ctx, target.Remote, fmt.Sprintf("test -x %q", binary), timeout)
				if handle != nil {
					handle.EraseOutput()
				}
				if err != nil {
					return errors.Wrapf(err, "%q is not executable on %q", binary, target.Host)
				}
			}
			return nil
		})
	}
	return group.Wait()
}
