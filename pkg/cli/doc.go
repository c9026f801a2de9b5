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

// Package cli implements the command-line interface for the cuda-setup tool.
//
// # Overview
//
// The cuda-setup CLI diagnoses and repairs NVIDIA GPU driver access inside a
// WSL2 distribution. It is designed for developers setting up CUDA on WSL2,
// where the guest reaches the GPU through the Windows host driver and the
// WSL-side nvidia-smi binary can break when the two drift out of sync.
//
// # Commands
//
// info - Show environment and driver details:
//
//	cuda-setup info [--output FILE] [--format json|yaml|table]
//
// Reports WSL2 detection signals, distribution and kernel metadata, the
// nvidia-smi link state, and the Windows driver version, supported CUDA
// version, and GPU name. Works outside WSL2 and never modifies anything.
//
// check - Check driver compatibility:
//
//	cuda-setup check [--no-fix] [--output FILE] [--format json|yaml|table]
//
// Repairs a broken nvidia-smi (unless --no-fix), then classifies the Windows
// driver version against the minimum and recommended versions for the target
// CUDA release. Exits non-zero on an incompatible driver.
//
// fix - Repair the nvidia-smi symlink:
//
//	cuda-setup fix [--output FILE] [--format json|yaml|table]
//
// Relinks the WSL-side nvidia-smi to the Windows host binary, backing up a
// broken regular file first. Idempotent; privileged steps run through sudo.
//
// # Global Flags
//
//	--log-level    Log level: debug, info, warn, error (default: info)
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// Logs go to stderr as structured JSON; reports go to stdout (or --output),
// so piping report output stays clean.
//
// # Exit Codes
//
// 0 on success; 1 on an incompatible driver, a failed repair, or any
// unrecoverable error.
package cli
