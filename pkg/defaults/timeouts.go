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

package defaults

import "time"

// Probe timeouts for external process execution.
const (
	// SMIProbeTimeout bounds every nvidia-smi invocation. The broken WSL
	// binary can hang instead of segfaulting, so the liveness probe must
	// never wait on it indefinitely.
	SMIProbeTimeout = 3 * time.Second

	// PrivilegedOpTimeout bounds privileged filesystem helpers
	// (sudo rm/mv/mkdir/ln). These touch local disk only and should
	// complete near-instantly; a longer wait means sudo is prompting.
	PrivilegedOpTimeout = 5 * time.Second
)

// CLI timeouts for command-level operations.
const (
	// CheckTimeout bounds a whole compatibility check, including an
	// auto-repair pass and up to three driver queries.
	CheckTimeout = 30 * time.Second
)
