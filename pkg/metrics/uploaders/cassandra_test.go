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
	"testing"
	"time"

	"github.com/gocql/gocql"
	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCassandraConfig(t *testing.T) {
	Convey("When Cassandra uploader is misconfigured", t, func() {
		_, err := NewCassandra(CassandraConfig{KeySpace: "kmbench"})
		So(err, ShouldNotBeNil)
		_, err = NewCassandra(CassandraConfig{Hosts: []string{"127.0.0.1"}})
		So(err, ShouldNotBeNil)
	})

	Convey("When cluster config is built", t, func() {
		cluster := clusterConfig(CassandraConfig{
			Hosts:    []string{"10.0.0.1", "10.0.0.2"},
			Port:     9043,
			Username: "user",
			Password: "secret",
			Timeout:  3 * time.Second,
		})

		So(cluster.Hosts, ShouldResemble, []string{"10.0.0.1", "10.0.0.2"})
		So(cluster.Port, ShouldEqual, 9043)
		So(cluster.ProtoVersion, ShouldEqual, 4)
		So(cluster.Consistency, ShouldEqual, gocql.Quorum)
		So(cluster.Timeout, ShouldEqual, 3*time.Second)
		So(cluster.Authenticator, ShouldResemble, gocql.PasswordAuthenticator{Username: "user", Password: "secret"})
	})

	Convey("Decimals should be converted without loss", t, func() {
		for _, value := range []string{"0", "5", "2.25", "-0.001", "123456789.987654321"} {
			converted := toInfDec(decimal.RequireFromString(value))
			So(decimal.RequireFromString(converted.String()).Equal(decimal.RequireFromString(value)), ShouldBeTrue)
		}
	})
}
