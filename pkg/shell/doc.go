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

// Package shell executes external commands with bounded timeouts.
//
// It is the foundation for the repair engine (sudo filesystem helpers) and
// the driver query service (nvidia-smi invocations). Two failure modes are
// kept deliberately distinct:
//
//   - The command could not run to completion (missing executable, spawn
//     failure, timeout): Run returns a structured error.
//   - The command ran and exited non-zero: Run returns a Result and no
//     error; the exit code is data for the caller to interpret. RunStrict
//     converts this case into a structured EXECUTION error for callers
//     that treat any non-zero exit as fatal.
//
// All executions accept a context and an explicit timeout; on timeout the
// child process is hard-killed, never left running.
package shell
