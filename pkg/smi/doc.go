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

// Package smi repairs and queries nvidia-smi inside a WSL2 guest.
//
// # The problem
//
// The nvidia-smi binary shipped in the WSL2 userspace
// (/usr/lib/wsl/lib/nvidia-smi) segfaults when its libraries drift out of
// sync with the Windows host driver. The Windows-side nvidia-smi.exe keeps
// working because it talks to the driver directly. The repair replaces the
// broken guest binary with a symlink to the Windows one.
//
// # Repair state machine
//
// The on-disk state of the guest path is classified into one of five
// LinkState values (missing, working/broken regular file, working/broken
// symlink) using an execution liveness probe. The pure Plan function maps
// each state to an ordered action list; Repair executes those actions
// through sudo and re-probes afterwards. Separating planning from execution
// keeps the state machine unit-testable without subprocesses.
//
// Repair is idempotent. A second invocation right after a successful one
// derives StateSymlinkWorking and plans nothing. Backups are only taken for
// regular files — a broken symlink holds no payload — and the backup path is
// validated to stay inside the binary's own directory before any move.
//
// # Queries
//
// DriverVersion, CUDAVersion, and GPUName interrogate the Windows-side
// binary. When it does not exist they report "undetectable" without spawning
// a process; when it exits non-zero they fail with a QUERY error carrying
// stderr; when it runs but omits a field they report "undetectable" — a
// different hardware report format is not an error.
//
// # Concurrency
//
// Single-threaded by design. Two processes repairing the same path
// concurrently may race; that is a documented limitation, not a handled
// case. Every invocation re-derives filesystem state from scratch.
package smi
