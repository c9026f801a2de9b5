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

// Package compat classifies the Windows host driver against the version
// thresholds of a target CUDA release.
//
// The classification is three-way, evaluated in order:
//
//  1. below the minimum required driver: incompatible, the message cites
//     the minimum and tells the user to update,
//  2. at or above the minimum but below the recommended driver:
//     compatible, with an upgrade suggestion,
//  3. at or above the recommended driver: compatible and up to date.
//
// Two driver-missing situations are deliberately kept distinct. When the
// Windows nvidia-smi.exe does not exist at all, Evaluate returns an
// incompatible CompatibilityResult with remediation and no error — that is
// an expected user state, not a tool failure. When the binary exists but
// reports no parsable driver version, Evaluate fails with a
// DRIVER_UNDETERMINED error, because a present-but-silent driver points at
// a broken installation that version thresholds cannot judge.
package compat
