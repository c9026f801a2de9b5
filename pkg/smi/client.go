// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package smi

import (
	"context"
	"os"
	"time"

	"github.com/NVIDIA/cuda-setup/pkg/defaults"
	"github.com/NVIDIA/cuda-setup/pkg/errors"
	"github.com/NVIDIA/cuda-setup/pkg/shell"
)

// Client inspects, repairs, and queries nvidia-smi in a WSL2 guest.
// The zero-value paths point at the standard WSL and Windows locations;
// tests override them together with the command runner.
type Client struct {
	localPath    string
	hostPath     string
	runner       shell.Runner
	probeTimeout time.Duration
	sudoTimeout  time.Duration
	now          func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithPaths overrides the WSL-side and Windows-side nvidia-smi locations.
func WithPaths(local, host string) Option {
	return func(c *Client) {
		c.localPath = local
		c.hostPath = host
	}
}

// WithRunner substitutes the command runner, used by tests to avoid
// spawning sudo or nvidia-smi.
func WithRunner(r shell.Runner) Option {
	return func(c *Client) {
		c.runner = r
	}
}

// WithProbeTimeout overrides the nvidia-smi liveness probe timeout.
func WithProbeTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.probeTimeout = d
	}
}

// WithClock substitutes the timestamp source for backup names.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient creates a Client with production defaults.
func NewClient(opts ...Option) *Client {
	c := &Client{
		localPath:    defaults.WSLSMIPath,
		hostPath:     defaults.WindowsSMIPath,
		runner:       shell.NewRunner(),
		probeTimeout: defaults.SMIProbeTimeout,
		sudoTimeout:  defaults.PrivilegedOpTimeout,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LocalPath returns the WSL-side nvidia-smi path the client operates on.
func (c *Client) LocalPath() string {
	return c.localPath
}

// HostPath returns the Windows-side nvidia-smi.exe path.
func (c *Client) HostPath() string {
	return c.hostPath
}

// HostBinaryExists reports whether the Windows-side nvidia-smi.exe is
// present. Without it neither repair nor driver queries are possible.
func (c *Client) HostBinaryExists() bool {
	_, err := os.Stat(c.hostPath)
	return err == nil
}

// DeriveState inspects the WSL nvidia-smi path and classifies it. The
// classification includes a liveness probe: an existing file or symlink
// that fails to execute counts as broken. Fails with HOST_BINARY_MISSING
// when the Windows binary is absent, since no repair is possible without
// a working source.
func (c *Client) DeriveState(ctx context.Context) (LinkState, error) {
	if !c.HostBinaryExists() {
		return StateMissing, errors.NewWithContext(errors.ErrCodeHostBinaryMissing,
			"Windows nvidia-smi not found; install NVIDIA drivers on Windows first",
			map[string]any{"path": c.hostPath})
	}

	fi, err := os.Lstat(c.localPath)
	if err != nil {
		return StateMissing, nil
	}

	if fi.Mode()&os.ModeSymlink != 0 {
		if c.probeLive(ctx, c.localPath) {
			return StateSymlinkWorking, nil
		}
		return StateSymlinkBroken, nil
	}

	if c.probeLive(ctx, c.localPath) {
		return StateRegularFileWorking, nil
	}
	return StateRegularFileBroken, nil
}

// probeLive executes the binary at path with a short timeout and reports
// whether it exits zero. Timeouts, spawn failures, and non-zero exits all
// count as dead.
func (c *Client) probeLive(ctx context.Context, path string) bool {
	res, err := c.runner.Run(ctx, []string{path}, c.probeTimeout)
	if err != nil {
		return false
	}
	return res.ExitCode == 0
}

// SymlinkTarget returns the resolved target when the local path is a
// symlink, or an empty string otherwise. Best-effort, used for messages.
func (c *Client) SymlinkTarget() string {
	fi, err := os.Lstat(c.localPath)
	if err != nil || fi.Mode()&os.ModeSymlink == 0 {
		return ""
	}
	target, err := os.Readlink(c.localPath)
	if err != nil {
		return ""
	}
	return target
}
