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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/cuda-setup/pkg/errors"
	"github.com/NVIDIA/cuda-setup/pkg/shell"
)

const smiBanner = `
+-----------------------------------------------------------------------------------------+
| NVIDIA-SMI 566.03                 Driver Version: 566.03         CUDA Version: 12.7     |
|-----------------------------------------+------------------------+----------------------+
| GPU  Name                 Persistence-M | Bus-Id          Disp.A | Volatile Uncorr. ECC |
+-----------------------------------------+------------------------+----------------------+
`

// cannedRunner returns the same result for every invocation and records
// what was asked.
type cannedRunner struct {
	res   *shell.Result
	err   error
	calls [][]string
}

func (r *cannedRunner) Run(_ context.Context, argv []string, _ time.Duration) (*shell.Result, error) {
	r.calls = append(r.calls, argv)
	return r.res, r.err
}

func newQueryClient(t *testing.T, runner shell.Runner) *Client {
	t.Helper()
	dir := t.TempDir()
	host := filepath.Join(dir, "nvidia-smi.exe")
	require.NoError(t, os.WriteFile(host, []byte("exe"), 0o755))

	return NewClient(
		WithPaths(filepath.Join(dir, "nvidia-smi"), host),
		WithRunner(runner),
	)
}

func TestDriverVersion(t *testing.T) {
	runner := &cannedRunner{res: &shell.Result{ExitCode: 0, Stdout: smiBanner}}
	c := newQueryClient(t, runner)

	got, err := c.DriverVersion(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "566.03", got)
}

func TestCUDAVersion(t *testing.T) {
	runner := &cannedRunner{res: &shell.Result{ExitCode: 0, Stdout: smiBanner}}
	c := newQueryClient(t, runner)

	got, err := c.CUDAVersion(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "12.7", got)
}

func TestQueriesWithoutHostBinary(t *testing.T) {
	runner := &cannedRunner{res: &shell.Result{ExitCode: 0, Stdout: smiBanner}}
	c := NewClient(
		WithPaths("/nonexistent/nvidia-smi", "/nonexistent/nvidia-smi.exe"),
		WithRunner(runner),
	)

	for name, query := range map[string]func(context.Context) (string, error){
		"driver": c.DriverVersion,
		"cuda":   c.CUDAVersion,
		"gpu":    c.GPUName,
	} {
		got, err := query(t.Context())
		assert.NoError(t, err, name)
		assert.Empty(t, got, name)
	}
	// No binary, no process.
	assert.Empty(t, runner.calls)
}

func TestQueryNonZeroExit(t *testing.T) {
	runner := &cannedRunner{res: &shell.Result{
		ExitCode: 1,
		Stderr:   "NVIDIA-SMI has failed because it couldn't communicate with the NVIDIA driver",
	}}
	c := newQueryClient(t, runner)

	got, err := c.DriverVersion(t.Context())
	require.Error(t, err)
	assert.Empty(t, got)
	assert.True(t, errors.HasCode(err, errors.ErrCodeQuery))
}

func TestQueryOutputWithoutVersionFields(t *testing.T) {
	// A future output format without the banner fields is not an error,
	// the versions are simply undetectable.
	runner := &cannedRunner{res: &shell.Result{ExitCode: 0, Stdout: "some other report"}}
	c := newQueryClient(t, runner)

	driver, err := c.DriverVersion(t.Context())
	require.NoError(t, err)
	assert.Empty(t, driver)

	cuda, err := c.CUDAVersion(t.Context())
	require.NoError(t, err)
	assert.Empty(t, cuda)
}

func TestQueryEmptyOutput(t *testing.T) {
	runner := &cannedRunner{res: &shell.Result{ExitCode: 0}}
	c := newQueryClient(t, runner)

	got, err := c.DriverVersion(t.Context())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGPUName(t *testing.T) {
	runner := &cannedRunner{res: &shell.Result{
		ExitCode: 0,
		Stdout:   "NVIDIA GeForce RTX 4090\n",
	}}
	c := newQueryClient(t, runner)

	got, err := c.GPUName(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "NVIDIA GeForce RTX 4090", got)

	require.Len(t, runner.calls, 1)
	assert.Contains(t, runner.calls[0], "--query-gpu=name")
	assert.Contains(t, runner.calls[0], "--format=csv,noheader")
}

func TestGPUNameMultipleGPUs(t *testing.T) {
	runner := &cannedRunner{res: &shell.Result{
		ExitCode: 0,
		Stdout:   "\nNVIDIA RTX 6000 Ada Generation\nNVIDIA T400\n",
	}}
	c := newQueryClient(t, runner)

	got, err := c.GPUName(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "NVIDIA RTX 6000 Ada Generation", got)
}

func TestMatchFirst(t *testing.T) {
	assert.Equal(t, "566.03", matchFirst(driverVersionPattern, "Driver Version: 566.03"))
	assert.Equal(t, "566.03", matchFirst(driverVersionPattern, "Driver Version:566.03"))
	assert.Empty(t, matchFirst(driverVersionPattern, "Driver Version: n/a"))
	assert.Empty(t, matchFirst(cudaVersionPattern, ""))
}
