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

package smi

import (
	"context"
	"regexp"
	"strings"

	"github.com/NVIDIA/cuda-setup/pkg/errors"
)

var (
	// driverVersionPattern matches the banner line of nvidia-smi output:
	// "| NVIDIA-SMI 566.03    Driver Version: 566.03    CUDA Version: 12.7 |"
	driverVersionPattern = regexp.MustCompile(`Driver Version:\s*([0-9.]+)`)

	// cudaVersionPattern matches the maximum CUDA version the driver
	// supports, from the same banner line.
	cudaVersionPattern = regexp.MustCompile(`CUDA Version:\s*([0-9.]+)`)
)

// DriverVersion returns the Windows driver version reported by the host
// nvidia-smi.exe, or an empty string when it cannot be determined.
//
// The empty result is deliberate in two cases: the host binary does not
// exist (no process is spawned at all), or the binary ran but its output
// carried no version field. A non-zero exit is a QUERY error.
func (c *Client) DriverVersion(ctx context.Context) (string, error) {
	out, err := c.queryHost(ctx)
	if err != nil || out == "" {
		return "", err
	}
	return matchFirst(driverVersionPattern, out), nil
}

// CUDAVersion returns the maximum CUDA version supported by the Windows
// driver, or an empty string when it cannot be determined. Same contract
// as DriverVersion.
func (c *Client) CUDAVersion(ctx context.Context) (string, error) {
	out, err := c.queryHost(ctx)
	if err != nil || out == "" {
		return "", err
	}
	return matchFirst(cudaVersionPattern, out), nil
}

// GPUName returns the GPU model name via nvidia-smi's query mode
// (one name per line, no header), or an empty string when it cannot be
// determined. With multiple GPUs the first one is reported.
func (c *Client) GPUName(ctx context.Context) (string, error) {
	if !c.HostBinaryExists() {
		return "", nil
	}

	res, err := c.runner.Run(ctx,
		[]string{c.hostPath, "--query-gpu=name", "--format=csv,noheader"},
		c.probeTimeout)
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "", queryError(res.ExitCode, res.Stderr)
	}

	for _, line := range strings.Split(res.Stdout, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			return name, nil
		}
	}
	return "", nil
}

// queryHost runs the host nvidia-smi.exe in its default report mode and
// returns its stdout. An empty string with nil error means the host binary
// does not exist; the calling query reports the field as undetectable.
func (c *Client) queryHost(ctx context.Context) (string, error) {
	if !c.HostBinaryExists() {
		return "", nil
	}

	res, err := c.runner.Run(ctx, []string{c.hostPath}, c.probeTimeout)
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "", queryError(res.ExitCode, res.Stderr)
	}
	if res.Stdout == "" {
		// Exit 0 with no output: treated leniently, each field simply
		// comes back undetectable.
		return "", nil
	}
	return res.Stdout, nil
}

func queryError(exitCode int, stderr string) error {
	return errors.NewWithContext(errors.ErrCodeQuery,
		"nvidia-smi query failed",
		map[string]any{
			"exitCode": exitCode,
			"stderr":   strings.TrimSpace(stderr),
		})
}

// matchFirst returns the first capture group of the pattern in text,
// or an empty string when the pattern does not match.
func matchFirst(pattern *regexp.Regexp, text string) string {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}
