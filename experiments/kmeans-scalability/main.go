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
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/AK-1996/K-Means-Parallelization/pkg/conf"
	"github.com/AK-1996/K-Means-Parallelization/pkg/dataset"
	"github.com/AK-1996/K-Means-Parallelization/pkg/executor"
	"github.com/AK-1996/K-Means-Parallelization/pkg/experiment"
	"github.com/AK-1996/K-Means-Parallelization/pkg/experiment/logger"
	"github.com/AK-1996/K-Means-Parallelization/pkg/experiment/validate"
	"github.com/AK-1996/K-Means-Parallelization/pkg/metrics"
	"github.com/AK-1996/K-Means-Parallelization/pkg/metrics/uploaders"
	"github.com/AK-1996/K-Means-Parallelization/pkg/partition"
	"github.com/AK-1996/K-Means-Parallelization/pkg/utils/errutil"
	"github.com/AK-1996/K-Means-Parallelization/pkg/visualization"
	"github.com/AK-1996/K-Means-Parallelization/pkg/workloads"
	"github.com/AK-1996/K-Means-Parallelization/pkg/workloads/kmeans"
	"github.com/sirupsen/logrus"
)

var (
	appName = os.Args[0]

	processesFlag       = conf.NewSliceFlag("processes", "Increasing process counts to sweep, starting at 1 begins a fresh sweep", "1", "2")
	trialsFlag          = conf.NewIntFlag("trials", "Number of trials per configuration", 5)
	workDirFlag         = conf.NewStringFlag("work_dir", "Working directory of K-Means programs and sweep logs", ".")
	summaryFlag         = conf.NewStringFlag("summary", "Summary log with one row per configuration", "performance.txt")
	timeoutFlag         = conf.NewDurationFlag("timeout", "Timeout of a single K-Means run", time.Hour)
	equivalenceModeFlag = conf.NewStringFlag("equivalence_mode", "Partition equivalence check: strict or overlap", string(partition.ModeStrict))
	distributeFlag      = conf.NewBoolFlag("distribute", "Copy dataset to remote hosts listed in hostfile", false)
	remoteDirFlag       = conf.NewStringFlag("remote_dataset_dir", "Dataset directory on remote hosts, empty means the local path", "")
	sshUserFlag         = conf.NewStringFlag("ssh_user", "User for ssh connections to remote hosts, empty means current user", "")
	sshKeyFlag          = conf.NewStringFlag("ssh_key", "Private key for ssh connections, empty means ~/.ssh/id_rsa", "")
	sshKnownHostsFlag   = conf.NewStringFlag("ssh_known_hosts", "Known hosts file used to verify remote hosts", "")
	cvThresholdFlag     = conf.NewFloatFlag("cv_threshold", "Coefficient of variation of parallel times above which a warning is logged, 0 disables", 0.1)
	cassandraAddrFlag   = conf.NewSliceFlag("cassandra_addr", "Cassandra hosts for configuration records, empty disables the upload")
	cassandraKeyspace   = conf.NewStringFlag("cassandra_keyspace", "Cassandra keyspace for configuration records", "kmbench")
)

func main() {
	conf.SetAppName("kmeans-scalability")
	conf.SetHelp("Sweeps MPI process counts, checks serial and MPI K-Means agree and records speedup and scalability.")
	experiment.Configure()

	workDir, err := filepath.Abs(workDirFlag.Value())
	errutil.CheckWithContext(err, "Cannot resolve working directory")
	sweepID := experiment.NewSweepID()
	logger.Initialize(appName, workDir, sweepID)

	stopAll := executor.RegisterInterruptHandle()
	defer stopAll()

	processes, err := parseProcesses(processesFlag.Value())
	errutil.CheckWithContext(err, "Invalid process counts")

	config, err := resolveConfig(kmeans.DefaultConfig(), workDir)
	errutil.CheckWithContext(err, "Invalid K-Means configuration")

	ctx := context.Background()
	local := executor.NewLocalIn(workDir)
	timeout := timeoutFlag.Value()

	errutil.CheckWithContext(kmeans.Compile(ctx, local, config, timeout), "Cannot compile K-Means programs")

	validate.CheckCPUPowerGovernor()
	errutil.CheckWithContext(validate.Commands(config.SerialBinary, config.ParallelBinary, config.MPIRun), "Environment is not ready")
	hosts, err := validate.Hostfile(config.Hostfile)
	errutil.CheckWithContext(err, "Invalid hostfile")

	datasetPath := resolvePath(workDir, dataset.DefaultPath())
	summary := uploaders.NewSummaryLog(resolvePath(workDir, summaryFlag.Value()))

	var uploader metrics.Uploaders
	if addresses := cassandraAddrFlag.Value(); len(addresses) > 0 {
		cassandra, err := uploaders.NewCassandra(uploaders.CassandraConfig{
			Hosts:    addresses,
			KeySpace: cassandraKeyspace.Value(),
		})
		errutil.CheckWithContext(err, "Cannot connect to Cassandra")
		defer cassandra.Close()
		uploader = append(uploader, cassandra)
	}

	checker, err := partition.NewChecker(partition.Mode(equivalenceModeFlag.Value()), config.Clusters)
	errutil.CheckWithContext(err, "Invalid equivalence mode")

	hostname, err := os.Hostname()
	if err != nil {
		logrus.Warnf("cannot determine hostname: %v", err)
	}

	sweep := &experiment.Sweep{
		ID:          sweepID,
		Host:        hostname,
		Processes:   processes,
		Trials:      trialsFlag.Value(),
		Timeout:     timeout,
		CVThreshold: cvThresholdFlag.Value(),
		Files: experiment.Files{
			Dataset:         datasetPath,
			SerialResults:   resolvePath(workDir, config.SerialResults),
			ParallelResults: resolvePath(workDir, config.ParallelResults),
			TimingReport:    resolvePath(workDir, config.TimingReport),
		},
		Dataset: dataset.DefaultGenerator(),
		Serial:  kmeans.NewSerial(local, config, datasetPath),
		Distributed: func(processes int) workloads.Launcher {
			return kmeans.NewDistributed(local, config, datasetPath, processes)
		},
		Checker:  checker,
		Summary:  summary,
		Uploader: uploader,
	}

	if distributeFlag.Value() {
		remote := dataset.RemoteHosts(hosts)
		if len(remote) == 0 {
			logrus.Warn("dataset distribution requested but hostfile lists no remote hosts")
		} else {
			distributor, err := dataset.NewSSHDistributor(remote, remoteDirFlag.Value(), dataset.SSHOptions{
				User:           sshUserFlag.Value(),
				KeyPath:        sshKeyFlag.Value(),
				KnownHostsPath: sshKnownHostsFlag.Value(),
			})
			errutil.CheckWithContext(err, "Cannot prepare dataset distribution")
			errutil.CheckWithContext(distributor.CheckBinaries(ctx, timeout, config.ParallelBinary), "MPI hosts are not ready")
			sweep.Distributor = distributor
		}
	}

	err = sweep.Run(ctx)
	visualization.DrawSummary(os.Stdout, sweep.Records())
	errutil.CheckWithContext(err, "Sweep failed")
	logrus.Infof("sweep %s finished, summary in %q", sweepID, summary.Path())
}
