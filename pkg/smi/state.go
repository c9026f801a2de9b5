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

import "fmt"

// LinkState describes the on-disk state of the WSL nvidia-smi path at check
// time. It is re-derived fresh on every repair attempt, never cached: driver
// installers and manual edits can change the path between invocations.
type LinkState int

const (
	// StateMissing means nothing exists at the WSL nvidia-smi path.
	StateMissing LinkState = iota
	// StateRegularFileWorking means a regular file that executes cleanly.
	StateRegularFileWorking
	// StateRegularFileBroken means a regular file that segfaults, hangs,
	// or exits non-zero.
	StateRegularFileBroken
	// StateSymlinkWorking means a symlink whose target executes cleanly.
	StateSymlinkWorking
	// StateSymlinkBroken means a symlink that no longer executes,
	// dangling or pointing at a broken target.
	StateSymlinkBroken
)

func (s LinkState) String() string {
	switch s {
	case StateMissing:
		return "missing"
	case StateRegularFileWorking:
		return "regular file (working)"
	case StateRegularFileBroken:
		return "regular file (broken)"
	case StateSymlinkWorking:
		return "symlink (working)"
	case StateSymlinkBroken:
		return "symlink (broken)"
	default:
		return fmt.Sprintf("LinkState(%d)", s)
	}
}

// Working reports whether the state needs no repair.
func (s LinkState) Working() bool {
	return s == StateSymlinkWorking || s == StateRegularFileWorking
}

// Action is a single repair step. Actions are planned by the pure Plan
// function and executed by Repair, keeping the state machine testable
// without any subprocess or filesystem access.
type Action int

const (
	// ActionRemoveSymlink removes a broken symlink. No backup: a symlink
	// holds no payload worth preserving.
	ActionRemoveSymlink Action = iota
	// ActionBackupFile moves a broken regular file to a timestamped
	// backup next to it before it is replaced.
	ActionBackupFile
	// ActionEnsureParentDir creates the parent directory of the WSL
	// nvidia-smi path if it does not exist.
	ActionEnsureParentDir
	// ActionCreateSymlink force-creates the symlink to the Windows
	// nvidia-smi.exe.
	ActionCreateSymlink
)

func (a Action) String() string {
	switch a {
	case ActionRemoveSymlink:
		return "remove broken symlink"
	case ActionBackupFile:
		return "backup regular file"
	case ActionEnsureParentDir:
		return "ensure parent directory"
	case ActionCreateSymlink:
		return "create symlink"
	default:
		return fmt.Sprintf("Action(%d)", a)
	}
}

// Plan returns the ordered repair actions for a given state. Working states
// plan nothing; every other state ends in symlink creation. Plan is pure:
// it performs no I/O and has no side effects.
func Plan(state LinkState) []Action {
	switch state {
	case StateSymlinkWorking, StateRegularFileWorking:
		return nil
	case StateSymlinkBroken:
		return []Action{ActionRemoveSymlink, ActionCreateSymlink}
	case StateRegularFileBroken:
		return []Action{ActionBackupFile, ActionCreateSymlink}
	case StateMissing:
		return []Action{ActionEnsureParentDir, ActionCreateSymlink}
	default:
		return nil
	}
}
