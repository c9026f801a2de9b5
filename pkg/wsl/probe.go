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

import "os"

// maxProbeFileSize caps reads of marker and metadata files. /proc/version
// and os-release files are tiny; anything larger is not what we expect.
const maxProbeFileSize = 1 << 16 // 64KB

// Probe abstracts the ambient environment (env vars and filesystem) so that
// detection logic can be unit tested with deterministic fakes instead of
// touching real paths.
type Probe interface {
	// Getenv returns the value of an environment variable, empty if unset.
	Getenv(key string) string

	// FileExists reports whether a path exists. Any stat error counts as
	// "does not exist"; detection never propagates filesystem errors.
	FileExists(path string) bool

	// ReadFile returns the content of a file, bounded in size.
	ReadFile(path string) (string, error)
}

// SystemProbe is the production Probe backed by the OS.
type SystemProbe struct{}

// Getenv implements Probe.
func (SystemProbe) Getenv(key string) string {
	return os.Getenv(key)
}

// FileExists implements Probe.
func (SystemProbe) FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadFile implements Probe.
func (SystemProbe) ReadFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if len(b) > maxProbeFileSize {
		b = b[:maxProbeFileSize]
	}
	return string(b), nil
}
