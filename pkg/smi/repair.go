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
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/NVIDIA/cuda-setup/pkg/errors"
	"github.com/NVIDIA/cuda-setup/pkg/shell"
)

// backupTimestampLayout names backups like nvidia-smi.old.20250115_103000.
const backupTimestampLayout = "20060102_150405"

// RepairResult reports the outcome of one repair invocation.
type RepairResult struct {
	// Success is true when nvidia-smi executes cleanly after the repair
	// (or already did). False means the symlink was created but the
	// binary still fails; the caller decides how fatal that is.
	Success bool `json:"success" yaml:"success"`

	// Message lists every action taken, in order.
	Message string `json:"message" yaml:"message"`

	// InitialState is the link state the repair started from.
	InitialState string `json:"initialState" yaml:"initialState"`

	// BackupPath is set when a broken regular file was backed up.
	BackupPath string `json:"backupPath,omitempty" yaml:"backupPath,omitempty"`
}

// Repair converges the WSL nvidia-smi path onto a working symlink to the
// Windows binary. It is idempotent: repeated invocations reach the same end
// state, with at most one new backup per invocation (and none once the path
// is a symlink).
//
// Privileged filesystem steps run through sudo; any one of them failing
// aborts the invocation with a REPAIR error. There is no automatic retry;
// retry policy belongs to the caller.
func (c *Client) Repair(ctx context.Context) (*RepairResult, error) {
	state, err := c.DeriveState(ctx)
	if err != nil {
		return nil, err
	}

	slog.Debug("derived nvidia-smi state", "state", state.String())

	res := &RepairResult{InitialState: state.String()}

	if state.Working() {
		res.Success = true
		if state == StateSymlinkWorking {
			target := c.SymlinkTarget()
			if target == "" {
				target = c.hostPath
			}
			res.Message = fmt.Sprintf("nvidia-smi already working (symlink to %s)", target)
		} else {
			res.Message = "nvidia-smi already working, no fix needed"
		}
		return res, nil
	}

	var parts []string
	for _, action := range Plan(state) {
		switch action {
		case ActionRemoveSymlink:
			if err := c.sudo(ctx, "failed to remove broken symlink", "rm", c.localPath); err != nil {
				return nil, err
			}

		case ActionBackupFile:
			backup, err := c.backupPath()
			if err != nil {
				return nil, err
			}
			if err := c.sudo(ctx, "failed to backup nvidia-smi", "mv", c.localPath, backup); err != nil {
				return nil, err
			}
			res.BackupPath = backup
			parts = append(parts, fmt.Sprintf("Backed up old nvidia-smi to %s", backup))

		case ActionEnsureParentDir:
			parent := filepath.Dir(c.localPath)
			if _, err := os.Stat(parent); err != nil {
				if err := c.sudo(ctx, "failed to create directory", "mkdir", "-p", parent); err != nil {
					return nil, err
				}
			}

		case ActionCreateSymlink:
			// -f clears any stale artifact left at the path.
			if err := c.sudo(ctx, "failed to create symlink", "ln", "-sf", c.hostPath, c.localPath); err != nil {
				return nil, err
			}
			parts = append(parts, fmt.Sprintf("Created symlink to %s", c.hostPath))
		}
	}

	if c.probeLive(ctx, c.localPath) {
		parts = append(parts, "nvidia-smi is now working")
		res.Success = true
		res.Message = strings.Join(parts, "; ")
		return res, nil
	}

	res.Success = false
	res.Message = "Symlink created but nvidia-smi still not working"
	return res, nil
}

// backupPath computes the timestamped backup location for the current local
// binary and validates that it stays inside the binary's parent directory.
// A path that escapes the parent means the configuration was tampered with;
// that is an UNSAFE_PATH error, never something to proceed with.
func (c *Client) backupPath() (string, error) {
	parent := filepath.Dir(c.localPath)
	name := filepath.Base(c.localPath)
	backup := filepath.Join(parent, fmt.Sprintf("%s.old.%s", name, c.now().Format(backupTimestampLayout)))

	if err := validateWithinParent(backup, parent); err != nil {
		return "", err
	}
	return backup, nil
}

// validateWithinParent rejects paths that resolve outside the given parent
// directory, including relative traversals.
func validateWithinParent(path, parent string) error {
	cleanParent := filepath.Clean(parent)
	cleanPath := filepath.Clean(path)

	if filepath.Dir(cleanPath) != cleanParent {
		return errors.NewWithContext(errors.ErrCodeUnsafePath,
			"backup path escapes the binary's directory",
			map[string]any{"path": path, "parent": parent})
	}
	return nil
}

// sudo runs a privileged filesystem helper and converts any failure,
// including non-zero exit, into a REPAIR error carrying the helper's
// diagnostic output.
func (c *Client) sudo(ctx context.Context, msg string, argv ...string) error {
	cmd := append([]string{"sudo"}, argv...)
	if _, err := shell.RunStrict(ctx, c.runner, cmd, c.sudoTimeout); err != nil {
		return errors.Wrap(errors.ErrCodeRepair, msg, err)
	}
	return nil
}
