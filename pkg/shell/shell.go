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

package shell

import (
	"bytes"
	"context"
	stderrors "errors"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/NVIDIA/cuda-setup/pkg/errors"
)

// Result captures the outcome of a completed external command.
// A non-zero ExitCode is data, not an error: callers that care inspect it.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner executes external commands. The interface exists so that the repair
// engine and driver queries can be unit tested without spawning processes.
type Runner interface {
	// Run executes argv with the given timeout (0 means the parent context
	// bounds it). It returns an error only when the command could not run
	// to completion: missing executable, spawn failure, or timeout.
	Run(ctx context.Context, argv []string, timeout time.Duration) (*Result, error)
}

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct{}

// NewRunner creates a production command runner.
func NewRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command and waits for it to finish. On timeout the child
// is hard-killed by the context; the runner never leaves it running.
func (r *ExecRunner) Run(ctx context.Context, argv []string, timeout time.Duration) (*Result, error) {
	if len(argv) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "empty command")
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Debug("running command", "argv", strings.Join(argv, " "), "timeout", timeout)

	err := cmd.Run()

	// ProcessState is nil when the child never started.
	exitCode := -1
	if cmd.ProcessState != nil {
		exitCode = cmd.ProcessState.ExitCode()
	}
	res := &Result{
		ExitCode: exitCode,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}

	if err == nil {
		return res, nil
	}

	// The context firing means the child was killed; report it as a
	// timeout rather than surfacing the opaque "signal: killed" error.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeTimeout,
			"command timed out", ctxErr,
			map[string]any{"command": argv[0], "timeout": timeout})
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		// Ran to completion with non-zero exit: the caller decides.
		return res, nil
	}

	// Spawn failure: executable missing, not executable, fork refused.
	return nil, errors.WrapWithContext(errors.ErrCodeExecution,
		"failed to execute command", err,
		map[string]any{"command": argv[0]})
}

// RunStrict behaves like Run but converts a non-zero exit into a structured
// EXECUTION error carrying the exit code and stderr text.
func RunStrict(ctx context.Context, r Runner, argv []string, timeout time.Duration) (*Result, error) {
	res, err := r.Run(ctx, argv, timeout)
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		return res, errors.NewWithContext(errors.ErrCodeExecution,
			"command exited non-zero",
			map[string]any{
				"command":  strings.Join(argv, " "),
				"exitCode": res.ExitCode,
				"stderr":   strings.TrimSpace(res.Stderr),
			})
	}
	return res, nil
}
