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

// Package wsl detects the WSL2 environment and reads descriptive OS metadata.
//
// # Detection
//
// IsWSL2 gates every other operation in this tool: the symlink repair and
// driver queries only make sense inside a WSL2 guest bridging to a Windows
// host driver. Detection combines three independent signals (environment
// variable, interop marker files, kernel banner) and treats any read error
// as a missing signal rather than a failure, so a locked-down /proc can
// never crash detection.
//
// # Descriptive queries
//
// DistroName, OSRelease, and KernelVersion feed the info command only.
// They are not used for any compatibility branching and therefore degrade
// to "Unknown" instead of returning errors.
//
// # Testing
//
// All environment access goes through the Probe interface; tests substitute
// a fake probe with canned env vars and file content.
package wsl
