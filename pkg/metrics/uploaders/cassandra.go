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

package uploaders

import (
	"fmt"
	"time"

	"github.com/AK-1996/K-Means-Parallelization/pkg/metrics"
	"github.com/gocql/gocql"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gopkg.in/inf.v0"
)

const configurationTable = "configurations"

// CassandraConfig stores Cassandra database configuration.
type CassandraConfig struct {
	Username string
	Password string
	Hosts    []string
	Port     int
	KeySpace string
	Timeout  time.Duration
}

// Cassandra stores configuration records in a Cassandra table keyed by sweep and process count.
type Cassandra struct {
	session  *gocql.Session
	keySpace string
}

func clusterConfig(config CassandraConfig) *gocql.ClusterConfig {
	cluster := gocql.NewCluster(config.Hosts...)
	cluster.ProtoVersion = 4
	cluster.Consistency = gocql.Quorum
	if config.Port != 0 {
		cluster.Port = config.Port
	}
	if config.Timeout != 0 {
		cluster.Timeout = config.Timeout
	}
	if config.Username != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: config.Username,
			Password: config.Password,
		}
	}
	return cluster
}

// NewCassandra connects to the cluster and creates keyspace and table when missing.
func NewCassandra(config CassandraConfig) (*Cassandra, error) {
	if len(config.Hosts) == 0 {
		return nil, errors.New("no cassandra hosts given")
	}
	if config.KeySpace == "" {
		return nil, errors.New("no cassandra keyspace given")
	}

	session, err := clusterConfig(config).CreateSession()
	if err != nil {
		return nil, errors.Wrapf(err, "creating gocql session to %v failed", config.Hosts)
	}

	statements := []string{
		fmt.Sprintf(`CREATE KEYSPACE IF NOT EXISTS %s
			WITH replication = {'class': 'SimpleStrategy', 'replication_factor': 1}`, config.KeySpace),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.%s (
			sweep_id text,
			n_proc int,
			trials int,
			speedup decimal,
			scalability decimal,
			avg_serial_time decimal,
			avg_parallel_time decimal,
			host text,
			recorded_at timestamp,
			PRIMARY KEY (sweep_id, n_proc))`, config.KeySpace, configurationTable),
	}
	for _, statement := range statements {
		if err := session.Query(statement).Exec(); err != nil {
			session.Close()
			return nil, errors.Wrapf(err, "preparing keyspace %q failed", config.KeySpace)
		}
	}
	logrus.Debugf("cassandra uploader ready, keyspace %q on %v", config.KeySpace, config.Hosts)

	return &Cassandra{session: session, keySpace: config.KeySpace}, nil
}

// SendMetrics implements metrics.Uploader.
func (c *Cassandra) SendMetrics(record metrics.Record) error {
	recordedAt := record.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}
	query := fmt.Sprintf(`INSERT INTO %s.%s
		(sweep_id, n_proc, trials, speedup, scalability, avg_serial_time, avg_parallel_time, host, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, c.keySpace, configurationTable)

	err := c.session.Query(query,
		record.Tags.SweepID,
		record.NProc,
		record.Trials,
		toInfDec(record.Speedup),
		toInfDec(record.Scalability),
		toInfDec(record.AvgSerialTime),
		toInfDec(record.AvgParallelTime),
		record.Tags.Host,
		recordedAt,
	).Exec()
	if err != nil {
		return errors.Wrapf(err, "saving record for %d processes failed", record.NProc)
	}
	return nil
}

// Close closes the session.
func (c *Cassandra) Close() {
	if !c.session.Closed() {
		c.session.Close()
	}
}

// toInfDec converts to the representation gocql marshals as CQL decimal.
func toInfDec(d decimal.Decimal) *inf.Dec {
	return inf.NewDecBig(d.Coefficient(), inf.Scale(-d.Exponent()))
}
