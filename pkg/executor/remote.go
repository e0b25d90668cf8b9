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
	"context"
	"fmt"
	"net"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/avast/retry-go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"
)

const (
	dialAttempts = 3
	dialDelay    = time.Second
)

// Remote provisioning is responsible for providing the execution environment
// on remote machine via ssh.
type Remote struct {
	sshConfig SSHConfig
}

// NewRemote returns a Remote instance.
func NewRemote(sshConfig SSHConfig) Remote {
	return Remote{sshConfig: sshConfig}
}

// Name returns user-friendly name of executor.
func (remote Remote) Name() string {
	return "Remote"
}

func (remote Remote) address() string {
	return net.JoinHostPort(remote.sshConfig.Host, strconv.Itoa(remote.sshConfig.Port))
}

// dial connects to the remote host, retrying transient failures.
func (remote Remote) dial(ctx context.Context) (*ssh.Client, error) {
	var client *ssh.Client
	err := retry.Do(
		func() error {
			var err error
			client, err = ssh.Dial("tcp", remote.address(), remote.sshConfig.ClientConfig)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(dialAttempts),
		retry.Delay(dialDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logrus.Debugf("ssh dial to %q failed (attempt %d): %v", remote.address(), n+1, err)
		}),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot connect to %q", remote.address())
	}
	return client, nil
}

// Execute runs the command given as input.
// Returned TaskHandle is able to stop & monitor the provisioned process.
func (remote Remote) Execute(command string) (TaskHandle, error) {
	logrus.Debugf("starting %q remotely on %q", command, remote.sshConfig.Host)

	client, err := remote.dial(context.Background())
	if err != nil {
		return nil, err
	}

	session, err := client.NewSession()
	if err != nil {
		client.Close()
		return nil, errors.Wrapf(err, "cannot create ssh session on %q", remote.sshConfig.Host)
	}

	stdoutFile, stderrFile, err := createExecutorOutputFiles(command, "remote")
	if err != nil {
		session.Close()
		client.Close()
		return nil, err
	}
	session.Stdout = stdoutFile
	session.Stderr = stderrFile

	if err := session.Start(command); err != nil {
		session.Close()
		client.Close()
		removeExecutorOutputFiles(stdoutFile, stderrFile)
		return nil, errors.Wrapf(err, "could not start %q on %q", command, remote.sshConfig.Host)
	}

	handle := newAsyncTask(command, &remoteProcess{client: client, session: session}, remote.sshConfig.Host, stdoutFile, stderrFile)
	register(handle)

	return checkIfProcessFailedToExecute(command, remote.Name(), handle)
}

// Upload copies a local file to remotePath creating missing parent directories.
func (remote Remote) Upload(ctx context.Context, localPath, remotePath string) error {
	return retry.Do(
		func() error { return remote.upload(ctx, localPath, remotePath) },
		retry.Context(ctx),
		retry.Attempts(dialAttempts),
		retry.Delay(dialDelay),
		retry.LastErrorOnly(true),
	)
}

func (remote Remote) upload(ctx context.Context, localPath, remotePath string) error {
	file, err := os.Open(localPath)
	if err != nil {
		return retry.Unrecoverable(errors.Wrapf(err, "cannot open %q for upload", localPath))
	}
	defer file.Close()

	client, err := remote.dial(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return errors.Wrapf(err, "cannot create ssh session on %q", remote.sshConfig.Host)
	}
	defer session.Close()

	session.Stdin = file
	command := fmt.Sprintf("mkdir -p %q && cat > %q", path.Dir(remotePath), remotePath)
	if err := session.Run(command); err != nil {
		return errors.Wrapf(err, "cannot upload %q to %s:%s", localPath, remote.sshConfig.Host, remotePath)
	}
	logrus.Debugf("uploaded %q to %s:%s", localPath, remote.sshConfig.Host, remotePath)
	return nil
}

// remoteProcess wraps ssh session and its connection.
type remoteProcess struct {
	client  *ssh.Client
	session *ssh.Session
}

// Wait waits synchronously for the remote command and closes the connection.
func (p *remoteProcess) Wait() (int, error) {
	defer p.client.Close()
	defer p.session.Close()

	err := p.session.Wait()
	if err == nil {
		return 0, nil
	}
	exitError, ok := err.(*ssh.ExitError)
	if !ok {
		return -1, err
	}
	return exitError.Waitmsg.ExitStatus(), nil
}

// Kill sends SIGKILL signal to task.
func (p *remoteProcess) Kill() error {
	if err := p.session.Signal(ssh.SIGKILL); err != nil {
		// Not every server honours signals, closing the connection ends the session anyway.
		logrus.Debugf("cannot signal remote session: %v", err)
		return p.client.Close()
	}
	return nil
}
