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
	"os/signal"
	"sync"
	"syscall"

	"github.com/sirupsen/logrus"
)

type taskHandleStopper struct {
	sync.Mutex
	taskHandles []TaskHandle
	enabled     bool
}

var globalTaskHandleStopper = &taskHandleStopper{}

// RegisterInterruptHandle waits for Interrupt signal and stops unconditionally all
// task handles started afterwards. Returned function stops them on demand.
func RegisterInterruptHandle() func() {
	return globalTaskHandleStopper.registerInterruptHandle()
}

func register(t TaskHandle) {
	globalTaskHandleStopper.register(t)
}

func (ths *taskHandleStopper) registerInterruptHandle() func() {
	ths.Lock()
	defer ths.Unlock()
	ths.enabled = true
	logrus.Debug("clean: interrupt handle initialized")

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		logrus.Warnf("clean: stopping all tasks on signal '%v'", <-c)
		ths.stopAllTaskHandles()
		os.Exit(1)
	}()
	return ths.stopAllTaskHandles
}

func (ths *taskHandleStopper) stopAllTaskHandles() {
	ths.Lock()
	defer ths.Unlock()
	// Stop in reverse order.
	for i := len(ths.taskHandles) - 1; i >= 0; i-- {
		taskHandle := ths.taskHandles[i]
		if err := taskHandle.Stop(); err != nil {
			logrus.Errorf("clean: stopping task on %q failed: %v", taskHandle.Address(), err)
		}
	}
	ths.taskHandles = nil
}

func (ths *taskHandleStopper) register(t TaskHandle) {
	ths.Lock()
	defer ths.Unlock()
	if !ths.enabled {
		return
	}
	// Forget tasks which terminated on their own.
	alive := ths.taskHandles[:0]
	for _, handle := range ths.taskHandles {
		if handle.Status() == RUNNING {
			alive = append(alive, handle)
		}
	}
	ths.taskHandles = append(alive, t)
}
