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

package wsl

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/NVIDIA/cuda-setup/pkg/defaults"
)

// Unknown is the sentinel returned by descriptive queries when the
// underlying file is missing, unreadable, or unparsable.
const Unknown = "Unknown"

var (
	// wsl2MarkerPattern matches the kernel banner of WSL2 kernels,
	// e.g. "5.15.90.1-microsoft-standard-WSL2".
	wsl2MarkerPattern = regexp.MustCompile(`(?i)microsoft.*wsl2|wsl2`)

	// kernelVersionPattern extracts the version token from /proc/version:
	// "Linux version 5.15.90.1-microsoft-standard-WSL2 (...)".
	kernelVersionPattern = regexp.MustCompile(`Linux version (\S+)`)
)

// Detector answers whether the process runs inside WSL2 and provides
// descriptive OS metadata. All queries are best-effort and never fail:
// detection signals degrade to "absent" and descriptive queries degrade
// to Unknown.
type Detector struct {
	probe Probe
}

// Option configures a Detector.
type Option func(*Detector)

// WithProbe substitutes the environment probe, used by tests to supply
// deterministic fakes.
func WithProbe(p Probe) Option {
	return func(d *Detector) {
		d.probe = p
	}
}

// NewDetector creates a Detector backed by the real OS environment unless
// overridden with WithProbe.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{
		probe: SystemProbe{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// IsWSL2 reports whether the process runs inside a WSL2 guest. Three
// independent signals are checked; any single one is sufficient:
//
//  1. WSL_DISTRO_NAME is set and non-empty.
//  2. A WSLInterop binfmt_misc marker file exists.
//  3. /proc/version contains a WSL2 kernel marker.
//
// Filesystem errors count as "signal absent", never as a failure.
func (d *Detector) IsWSL2() bool {
	if d.probe.Getenv(defaults.WSLDistroEnvVar) != "" {
		return true
	}

	for _, marker := range []string{defaults.WSLInteropPath, defaults.WSLInteropLatePath} {
		if d.probe.FileExists(marker) {
			return true
		}
	}

	if d.probe.FileExists(defaults.ProcVersionPath) {
		content, err := d.probe.ReadFile(defaults.ProcVersionPath)
		if err != nil {
			slog.Debug("could not read kernel banner", "path", defaults.ProcVersionPath, "error", err)
			return false
		}
		if wsl2MarkerPattern.MatchString(content) {
			return true
		}
	}

	return false
}

// DistroName returns the WSL distribution name, or Unknown when the
// environment variable is unset.
func (d *Detector) DistroName() string {
	if name := d.probe.Getenv(defaults.WSLDistroEnvVar); name != "" {
		return name
	}
	return Unknown
}

// OSRelease returns the OS name and version from os-release data,
// falling back to /usr/lib/os-release per the freedesktop.org spec.
// Both values degrade to Unknown independently.
func (d *Detector) OSRelease() (name, version string) {
	name, version = Unknown, Unknown

	path := defaults.OSReleasePath
	if !d.probe.FileExists(path) {
		path = defaults.OSReleaseFallbackPath
	}

	content, err := d.probe.ReadFile(path)
	if err != nil {
		slog.Debug("could not read os release", "path", path, "error", err)
		return name, version
	}

	params := parseKeyValues(content)
	if v, ok := params["NAME"]; ok && v != "" {
		name = v
	}
	if v, ok := params["VERSION"]; ok && v != "" {
		version = v
	}
	return name, version
}

// KernelVersion returns the running kernel version from /proc/version,
// or Unknown when unavailable.
func (d *Detector) KernelVersion() string {
	if !d.probe.FileExists(defaults.ProcVersionPath) {
		return Unknown
	}

	content, err := d.probe.ReadFile(defaults.ProcVersionPath)
	if err != nil {
		slog.Debug("could not read kernel banner", "path", defaults.ProcVersionPath, "error", err)
		return Unknown
	}

	m := kernelVersionPattern.FindStringSubmatch(content)
	if m == nil {
		return Unknown
	}
	return m[1]
}

// parseKeyValues parses os-release style KEY=value lines into a map.
// Comment lines and lines without '=' are skipped; surrounding quotes
// are trimmed from values.
func parseKeyValues(content string) map[string]string {
	result := make(map[string]string, 16)

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		kv := strings.SplitN(line, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.TrimSpace(kv[0])
		value := strings.Trim(strings.TrimSpace(kv[1]), `"'`)
		if key == "" || value == "" {
			continue
		}
		result[key] = value
	}

	return result
}
