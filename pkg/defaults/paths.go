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

// nvidia-smi locations inside a WSL2 guest.
const (
	// WSLSMIPath is where the WSL2 userspace ships its nvidia-smi.
	// This is the binary that segfaults when the guest-side driver
	// libraries are out of sync with the Windows host driver.
	WSLSMIPath = "/usr/lib/wsl/lib/nvidia-smi"

	// WindowsSMIPath is the host-side nvidia-smi.exe, reachable through
	// the WSL drvfs mount. It talks directly to the Windows driver and
	// keeps working when the guest copy is broken.
	WindowsSMIPath = "/mnt/c/Windows/System32/nvidia-smi.exe"
)

// WSL2 environment detection markers.
const (
	// WSLDistroEnvVar is set by the WSL init process in every session.
	WSLDistroEnvVar = "WSL_DISTRO_NAME"

	// WSLInteropPath and WSLInteropLatePath are binfmt_misc entries
	// registered by the WSL interop layer. One or the other exists
	// depending on the WSL release.
	WSLInteropPath     = "/proc/sys/fs/binfmt_misc/WSLInterop"
	WSLInteropLatePath = "/proc/sys/fs/binfmt_misc/WSLInterop-late"

	// ProcVersionPath carries the kernel banner; WSL2 kernels embed a
	// "microsoft-standard-WSL2" marker in it.
	ProcVersionPath = "/proc/version"
)

// OS release metadata locations (freedesktop.org os-release spec).
const (
	OSReleasePath         = "/etc/os-release"
	OSReleaseFallbackPath = "/usr/lib/os-release"
)

// Driver version thresholds for the targeted CUDA toolkit.
// Source: CUDA Toolkit release notes, Windows driver table.
const (
	// TargetCUDAVersion is the toolkit release this tool prepares for.
	TargetCUDAVersion = "12.9"

	// MinDriverVersion is the minimum Windows driver for TargetCUDAVersion.
	MinDriverVersion = "528.33"

	// RecommendedDriverVersion is the latest validated stable driver.
	RecommendedDriverVersion = "566.03"
)
