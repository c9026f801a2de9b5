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

package compat

import (
	"github.com/NVIDIA/cuda-setup/pkg/header"
)

// DriverInfo carries the driver metadata reported by the Windows-side
// nvidia-smi. Nil fields mean "undetectable", not "empty string"; they
// serialize as JSON null so consumers can tell the two apart.
type DriverInfo struct {
	// DriverVersion is the Windows NVIDIA driver version.
	DriverVersion *string `json:"driverVersion" yaml:"driverVersion"`

	// CUDAVersion is the maximum CUDA version the driver supports.
	CUDAVersion *string `json:"cudaVersion" yaml:"cudaVersion"`

	// GPUName is the GPU model name.
	GPUName *string `json:"gpuName" yaml:"gpuName"`
}

// CompatibilityResult is the verdict of one compatibility check.
// Constructed once per invocation and not mutated afterward.
type CompatibilityResult struct {
	header.Header `json:",inline" yaml:",inline"`

	// IsCompatible is true when the host driver meets the minimum
	// version for the target CUDA release.
	IsCompatible bool `json:"isCompatible" yaml:"isCompatible"`

	// Message is the human-readable verdict, including remediation
	// guidance when the driver is missing or too old.
	Message string `json:"message" yaml:"message"`

	// DriverInfo is the metadata the verdict was derived from.
	DriverInfo DriverInfo `json:"driverInfo" yaml:"driverInfo"`

	// MinRequired is the minimum driver version for the target CUDA release.
	MinRequired string `json:"minRequired" yaml:"minRequired"`

	// Recommended is the driver version at or above which no upgrade
	// is suggested.
	Recommended string `json:"recommended" yaml:"recommended"`

	// TargetCUDAVersion is the CUDA release the thresholds apply to.
	TargetCUDAVersion string `json:"targetCudaVersion" yaml:"targetCudaVersion"`
}
