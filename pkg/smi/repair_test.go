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
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/cuda-setup/pkg/errors"
	"github.com/NVIDIA/cuda-setup/pkg/shell"
)

// fakeRunner stands in for sudo and nvidia-smi. Privileged helpers are
// interpreted against the real filesystem (inside a test temp dir), and a
// binary "executes cleanly" when the file it resolves to contains "ok".
// That makes a symlink's liveness follow its target, like the real thing.
type fakeRunner struct {
	calls    [][]string
	sudoFail string // helper name ("rm", "mv", ...) forced to exit 1
}

func (f *fakeRunner) Run(_ context.Context, argv []string, _ time.Duration) (*shell.Result, error) {
	f.calls = append(f.calls, argv)

	if argv[0] == "sudo" {
		return f.runSudo(argv[1:])
	}

	data, err := os.ReadFile(argv[0])
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExecution, "failed to start process", err)
	}
	if strings.TrimSpace(string(data)) == "ok" {
		return &shell.Result{ExitCode: 0, Stdout: "NVIDIA-SMI output"}, nil
	}
	return &shell.Result{ExitCode: 139, Stderr: "Segmentation fault"}, nil
}

func (f *fakeRunner) runSudo(argv []string) (*shell.Result, error) {
	if f.sudoFail == argv[0] {
		return &shell.Result{ExitCode: 1, Stderr: "permission denied"}, nil
	}

	var err error
	switch argv[0] {
	case "rm":
		err = os.Remove(argv[1])
	case "mv":
		err = os.Rename(argv[1], argv[2])
	case "mkdir": // mkdir -p <dir>
		err = os.MkdirAll(argv[2], 0o755)
	case "ln": // ln -sf <target> <link>
		_ = os.Remove(argv[3])
		err = os.Symlink(argv[2], argv[3])
	default:
		return &shell.Result{ExitCode: 127, Stderr: "command not found"}, nil
	}
	if err != nil {
		return &shell.Result{ExitCode: 1, Stderr: err.Error()}, nil
	}
	return &shell.Result{ExitCode: 0}, nil
}

func (f *fakeRunner) sudoCalls() [][]string {
	var out [][]string
	for _, c := range f.calls {
		if c[0] == "sudo" {
			out = append(out, c)
		}
	}
	return out
}

func testClock() func() time.Time {
	ts := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	return func() time.Time { return ts }
}

func newTestClient(t *testing.T, runner *fakeRunner) (*Client, string, string) {
	t.Helper()
	dir := t.TempDir()
	local := filepath.Join(dir, "lib", "nvidia-smi")
	host := filepath.Join(dir, "System32", "nvidia-smi.exe")

	require.NoError(t, os.MkdirAll(filepath.Dir(host), 0o755))
	require.NoError(t, os.WriteFile(host, []byte("ok"), 0o755))

	c := NewClient(
		WithPaths(local, host),
		WithRunner(runner),
		WithClock(testClock()),
	)
	return c, local, host
}

func TestRepairMissing(t *testing.T) {
	runner := &fakeRunner{}
	c, local, host := newTestClient(t, runner)

	res, err := c.Repair(t.Context())
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "missing", res.InitialState)
	assert.Empty(t, res.BackupPath)
	assert.Contains(t, res.Message, "Created symlink to "+host)
	assert.Contains(t, res.Message, "nvidia-smi is now working")

	target, err := os.Readlink(local)
	require.NoError(t, err)
	assert.Equal(t, host, target)
}

func TestRepairIsIdempotent(t *testing.T) {
	runner := &fakeRunner{}
	c, _, host := newTestClient(t, runner)

	first, err := c.Repair(t.Context())
	require.NoError(t, err)
	require.True(t, first.Success)
	privileged := len(runner.sudoCalls())
	require.NotZero(t, privileged)

	second, err := c.Repair(t.Context())
	require.NoError(t, err)

	assert.True(t, second.Success)
	assert.Equal(t, "symlink (working)", second.InitialState)
	assert.Equal(t, "nvidia-smi already working (symlink to "+host+")", second.Message)
	// The second pass must not touch the filesystem.
	assert.Len(t, runner.sudoCalls(), privileged)
}

func TestRepairBrokenRegularFile(t *testing.T) {
	runner := &fakeRunner{}
	c, local, host := newTestClient(t, runner)

	require.NoError(t, os.MkdirAll(filepath.Dir(local), 0o755))
	require.NoError(t, os.WriteFile(local, []byte("segfaults on launch"), 0o755))

	res, err := c.Repair(t.Context())
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "regular file (broken)", res.InitialState)

	wantBackup := local + ".old.20250115_103000"
	assert.Equal(t, wantBackup, res.BackupPath)
	assert.Contains(t, res.Message, "Backed up old nvidia-smi to "+wantBackup)

	// The broken payload survives in the backup, and there is exactly one.
	data, err := os.ReadFile(wantBackup)
	require.NoError(t, err)
	assert.Equal(t, "segfaults on launch", string(data))

	backups, err := filepath.Glob(local + ".old.*")
	require.NoError(t, err)
	assert.Len(t, backups, 1)

	target, err := os.Readlink(local)
	require.NoError(t, err)
	assert.Equal(t, host, target)
}

func TestRepairBrokenSymlink(t *testing.T) {
	runner := &fakeRunner{}
	c, local, host := newTestClient(t, runner)

	require.NoError(t, os.MkdirAll(filepath.Dir(local), 0o755))
	require.NoError(t, os.Symlink(filepath.Join(filepath.Dir(local), "gone"), local))

	res, err := c.Repair(t.Context())
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "symlink (broken)", res.InitialState)
	// Dangling symlinks are discarded, never backed up.
	assert.Empty(t, res.BackupPath)

	target, err := os.Readlink(local)
	require.NoError(t, err)
	assert.Equal(t, host, target)
}

func TestRepairWorkingRegularFile(t *testing.T) {
	runner := &fakeRunner{}
	c, local, _ := newTestClient(t, runner)

	require.NoError(t, os.MkdirAll(filepath.Dir(local), 0o755))
	require.NoError(t, os.WriteFile(local, []byte("ok"), 0o755))

	res, err := c.Repair(t.Context())
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "nvidia-smi already working, no fix needed", res.Message)
	assert.Empty(t, runner.sudoCalls())

	// Still a regular file, untouched.
	fi, err := os.Lstat(local)
	require.NoError(t, err)
	assert.Zero(t, fi.Mode()&os.ModeSymlink)
}

func TestRepairHostBinaryMissing(t *testing.T) {
	runner := &fakeRunner{}
	c, _, host := newTestClient(t, runner)
	require.NoError(t, os.Remove(host))

	res, err := c.Repair(t.Context())
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errors.HasCode(err, errors.ErrCodeHostBinaryMissing))
	assert.Empty(t, runner.sudoCalls())
}

func TestRepairPrivilegedStepFails(t *testing.T) {
	runner := &fakeRunner{sudoFail: "ln"}
	c, local, _ := newTestClient(t, runner)

	res, err := c.Repair(t.Context())
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errors.HasCode(err, errors.ErrCodeRepair))

	// The failing step must not leave a symlink behind.
	_, lerr := os.Lstat(local)
	assert.Error(t, lerr)
}

func TestRepairSymlinkStillBroken(t *testing.T) {
	runner := &fakeRunner{}
	c, local, host := newTestClient(t, runner)
	// The host binary itself is broken: the symlink gets created but the
	// post-repair probe still fails.
	require.NoError(t, os.WriteFile(host, []byte("broken"), 0o755))

	res, err := c.Repair(t.Context())
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.Equal(t, "Symlink created but nvidia-smi still not working", res.Message)

	target, rerr := os.Readlink(local)
	require.NoError(t, rerr)
	assert.Equal(t, host, target)
}

func TestDeriveState(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, local, host string)
		want  LinkState
	}{
		{
			name:  "nothing at path",
			setup: func(t *testing.T, local, host string) {},
			want:  StateMissing,
		},
		{
			name: "working regular file",
			setup: func(t *testing.T, local, host string) {
				require.NoError(t, os.MkdirAll(filepath.Dir(local), 0o755))
				require.NoError(t, os.WriteFile(local, []byte("ok"), 0o755))
			},
			want: StateRegularFileWorking,
		},
		{
			name: "broken regular file",
			setup: func(t *testing.T, local, host string) {
				require.NoError(t, os.MkdirAll(filepath.Dir(local), 0o755))
				require.NoError(t, os.WriteFile(local, []byte("crash"), 0o755))
			},
			want: StateRegularFileBroken,
		},
		{
			name: "working symlink",
			setup: func(t *testing.T, local, host string) {
				require.NoError(t, os.MkdirAll(filepath.Dir(local), 0o755))
				require.NoError(t, os.Symlink(host, local))
			},
			want: StateSymlinkWorking,
		},
		{
			name: "dangling symlink",
			setup: func(t *testing.T, local, host string) {
				require.NoError(t, os.MkdirAll(filepath.Dir(local), 0o755))
				require.NoError(t, os.Symlink(filepath.Join(filepath.Dir(local), "gone"), local))
			},
			want: StateSymlinkBroken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, local, host := newTestClient(t, &fakeRunner{})
			tt.setup(t, local, host)

			state, err := c.DeriveState(t.Context())
			require.NoError(t, err)
			assert.Equal(t, tt.want, state)
		})
	}
}

func TestBackupPath(t *testing.T) {
	c := NewClient(
		WithPaths("/usr/lib/wsl/lib/nvidia-smi", "/mnt/c/Windows/System32/nvidia-smi.exe"),
		WithClock(testClock()),
	)

	got, err := c.backupPath()
	require.NoError(t, err)
	assert.Equal(t, "/usr/lib/wsl/lib/nvidia-smi.old.20250115_103000", got)
}

func TestValidateWithinParent(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		parent  string
		wantErr bool
	}{
		{
			name:   "direct child",
			path:   "/usr/lib/wsl/lib/nvidia-smi.old.20250115_103000",
			parent: "/usr/lib/wsl/lib",
		},
		{
			name:    "traversal escapes parent",
			path:    "/usr/lib/wsl/lib/../../../etc/passwd",
			parent:  "/usr/lib/wsl/lib",
			wantErr: true,
		},
		{
			name:    "sibling directory",
			path:    "/usr/lib/wsl/other/nvidia-smi.old",
			parent:  "/usr/lib/wsl/lib",
			wantErr: true,
		},
		{
			name:    "nested subdirectory",
			path:    "/usr/lib/wsl/lib/sub/nvidia-smi.old",
			parent:  "/usr/lib/wsl/lib",
			wantErr: true,
		},
		{
			name:   "unnormalized but contained",
			path:   "/usr/lib/wsl/lib/./nvidia-smi.old",
			parent: "/usr/lib/wsl/lib/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateWithinParent(tt.path, tt.parent)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, errors.ErrCodeUnsafePath))
				return
			}
			assert.NoError(t, err)
		})
	}
}
