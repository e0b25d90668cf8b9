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

package executor

import (
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

const (
	// DefaultSSHPort represent default port of SSH server (22).
	DefaultSSHPort    = 22
	defaultSSHKeyPath = ".ssh/id_rsa"
	sshDialTimeout    = 10 * time.Second
)

// SSHConfig with clientConfig, host and port to connect.
type SSHConfig struct {
	ClientConfig *ssh.ClientConfig
	Host         string
	Port         int
}

// getAuthMethod which uses given key.
func getAuthMethod(keyPath string) (ssh.AuthMethod, error) {
	buffer, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read ssh key %q", keyPath)
	}

	key, err := ssh.ParsePrivateKey(buffer)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot parse ssh key %q", keyPath)
	}

	return ssh.PublicKeys(key), nil
}

func hostKeyCallback(knownHostsPath string) (ssh.HostKeyCallback, error) {
	if knownHostsPath == "" {
		logrus.Warn("ssh host keys are not verified, set known hosts file to enable verification")
		return ssh.InsecureIgnoreHostKey(), nil
	}
	callback, err := knownhosts.New(knownHostsPath)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot load known hosts from %q", knownHostsPath)
	}
	return callback, nil
}

// NewSSHConfig creates a new ssh config.
// Empty userName means the current user and empty keyPath means <home_dir>/.ssh/id_rsa.
func NewSSHConfig(host string, port int, userName, keyPath, knownHostsPath string) (*SSHConfig, error) {
	if userName == "" || keyPath == "" {
		current, err := user.Current()
		if err != nil {
			return nil, errors.Wrap(err, "cannot determine current user")
		}
		if userName == "" {
			userName = current.Username
		}
		if keyPath == "" {
			keyPath = filepath.Join(current.HomeDir, defaultSSHKeyPath)
		}
	}

	authMethod, err := getAuthMethod(keyPath)
	if err != nil {
		return nil, err
	}

	callback, err := hostKeyCallback(knownHostsPath)
	if err != nil {
		return nil, err
	}

	clientConfig := &ssh.ClientConfig{
		User: userName,
		Auth: []ssh.AuthMethod{
			authMethod,
		},
		HostKeyCallback: callback,
		Timeout:         sshDialTimeout,
	}

	return &SSHConfig{
		ClientConfig: clientConfig,
		Host:         host,
		Port:         port,
	}, nil
}
