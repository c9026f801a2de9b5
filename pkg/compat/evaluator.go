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
	"context"
	"fmt"
	"log/slog"

	"github.com/NVIDIA/cuda-setup/pkg/defaults"
	"github.com/NVIDIA/cuda-setup/pkg/errors"
	"github.com/NVIDIA/cuda-setup/pkg/version"
)

// Querier is the slice of the nvidia-smi client the evaluator needs.
type Querier interface {
	HostBinaryExists() bool
	DriverVersion(ctx context.Context) (string, error)
	CUDAVersion(ctx context.Context) (string, error)
	GPUName(ctx context.Context) (string, error)
}

// Evaluator classifies the host driver against version thresholds.
type Evaluator struct {
	querier     Querier
	minRequired string
	recommended string
	targetCUDA  string
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithQuerier substitutes the driver metadata source.
func WithQuerier(q Querier) Option {
	return func(e *Evaluator) {
		e.querier = q
	}
}

// WithThresholds overrides the minimum and recommended driver versions
// and the CUDA release they apply to.
func WithThresholds(minRequired, recommended, targetCUDA string) Option {
	return func(e *Evaluator) {
		e.minRequired = minRequired
		e.recommended = recommended
		e.targetCUDA = targetCUDA
	}
}

// NewEvaluator creates an Evaluator with the default thresholds. A Querier
// must be supplied via WithQuerier.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{
		minRequired: defaults.MinDriverVersion,
		recommended: defaults.RecommendedDriverVersion,
		targetCUDA:  defaults.TargetCUDAVersion,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate queries the host driver and classifies its version.
//
// A missing Windows binary is an incompatible result, not an error: the
// verdict carries the remediation. A binary that exists but yields no
// parsable driver version is a DRIVER_UNDETERMINED error, deliberately
// distinct from the "not found" case. CUDA version and GPU name are
// best-effort; their absence never fails the evaluation.
func (e *Evaluator) Evaluate(ctx context.Context) (*CompatibilityResult, error) {
	res := &CompatibilityResult{
		MinRequired:       e.minRequired,
		Recommended:       e.recommended,
		TargetCUDAVersion: e.targetCUDA,
	}

	if !e.querier.HostBinaryExists() {
		res.IsCompatible = false
		res.Message = "NVIDIA driver not found on Windows host. " +
			"Install the Windows NVIDIA driver, then restart WSL."
		return res, nil
	}

	driver, err := e.querier.DriverVersion(ctx)
	if err != nil {
		return nil, err
	}
	if driver == "" {
		return nil, errors.New(errors.ErrCodeDriverUndetermined,
			"nvidia-smi ran but reported no driver version")
	}
	res.DriverInfo.DriverVersion = &driver

	if cuda, err := e.querier.CUDAVersion(ctx); err != nil {
		slog.Debug("cuda version query failed", "error", err)
	} else if cuda != "" {
		res.DriverInfo.CUDAVersion = &cuda
	}

	if gpu, err := e.querier.GPUName(ctx); err != nil {
		slog.Debug("gpu name query failed", "error", err)
	} else if gpu != "" {
		res.DriverInfo.GPUName = &gpu
	}

	meetsMin, err := version.MeetsMinimum(driver, e.minRequired)
	if err != nil {
		return nil, err
	}
	if !meetsMin {
		res.IsCompatible = false
		res.Message = fmt.Sprintf(
			"Driver %s is too old for CUDA %s (minimum required: %s). "+
				"Update the Windows NVIDIA driver.",
			driver, e.targetCUDA, e.minRequired)
		return res, nil
	}

	meetsRec, err := version.MeetsMinimum(driver, e.recommended)
	if err != nil {
		return nil, err
	}
	res.IsCompatible = true
	if !meetsRec {
		res.Message = fmt.Sprintf(
			"Driver %s meets the minimum for CUDA %s, but upgrading to %s or newer is recommended.",
			driver, e.targetCUDA, e.recommended)
		return res, nil
	}

	res.Message = fmt.Sprintf("Driver %s is up to date for CUDA %s.", driver, e.targetCUDA)
	return res, nil
}
