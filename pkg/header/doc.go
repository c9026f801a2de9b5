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

// Package header provides common header types for report data structures.
//
// This package defines the Header type embedded by compatibility, repair, and
// system reports to provide consistent metadata and versioning information.
//
// # Header Structure
//
// The Header contains standard fields for API versioning and metadata:
//
//	type Header struct {
//	    Kind       Kind              `json:"kind,omitempty" yaml:"kind,omitempty"`
//	    APIVersion string            `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
//	    Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
//	}
//
// # Usage
//
// Initialize a header on a report before writing it out:
//
//	var rep CompatibilityResult
//	rep.Header.Init(header.KindCompatibilityReport, "v1", version)
//
// Init stamps the metadata with a unique report id, an RFC3339 UTC timestamp,
// and the tool version, so every emitted report can be traced back to the run
// that produced it.
//
// # Kind Field
//
// The Kind field identifies the report type:
//   - CompatibilityReport: driver/CUDA compatibility evaluation
//   - RepairReport: nvidia-smi repair outcome
//   - SystemReport: WSL2 environment details
//
// # API Versioning
//
// The APIVersion field enables evolution of report formats. Consumers should
// check it before parsing:
//
//	if rep.APIVersion != "v1" {
//	    return fmt.Errorf("unsupported API version: %s", rep.APIVersion)
//	}
package header
