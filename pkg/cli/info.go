/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/cuda-setup/pkg/compat"
	"github.com/NVIDIA/cuda-setup/pkg/errors"
	"github.com/NVIDIA/cuda-setup/pkg/header"
	"github.com/NVIDIA/cuda-setup/pkg/smi"
	"github.com/NVIDIA/cuda-setup/pkg/wsl"
)

// smiStatus describes the nvidia-smi binary locations and link state.
type smiStatus struct {
	// Path is the WSL-side nvidia-smi location.
	Path string `json:"path" yaml:"path"`

	// HostPath is the Windows-side nvidia-smi.exe location.
	HostPath string `json:"hostPath" yaml:"hostPath"`

	// HostPresent is true when the Windows binary exists.
	HostPresent bool `json:"hostPresent" yaml:"hostPresent"`

	// State classifies the WSL-side path (missing, symlink, regular
	// file, working or broken). Empty when the host binary is absent.
	State string `json:"state,omitempty" yaml:"state,omitempty"`
}

// systemReport is the output of the info command. Everything in it is
// descriptive and gathered best-effort; fields that cannot be determined
// come back as "Unknown" or absent rather than failing the command.
type systemReport struct {
	header.Header `json:",inline" yaml:",inline"`

	WSL2          bool              `json:"wsl2" yaml:"wsl2"`
	Distro        string            `json:"distro" yaml:"distro"`
	OSName        string            `json:"osName" yaml:"osName"`
	OSVersion     string            `json:"osVersion" yaml:"osVersion"`
	KernelVersion string            `json:"kernelVersion" yaml:"kernelVersion"`
	NvidiaSMI     smiStatus         `json:"nvidiaSmi" yaml:"nvidiaSmi"`
	Driver        compat.DriverInfo `json:"driver" yaml:"driver"`
}

func infoCmd() *cli.Command {
	return &cli.Command{
		Name:                  "info",
		EnableShellCompletion: true,
		Usage:                 "Show WSL2 environment and GPU driver details",
		Description: `Show details about the current environment and GPU driver:
  - WSL2 detection (environment variable, interop markers, kernel version)
  - Distribution name and OS release
  - nvidia-smi link state (WSL-side and Windows-side)
  - Windows driver version, supported CUDA version, and GPU name

Unlike check and fix, info works outside WSL2 and never modifies anything.
The report can be output in JSON, YAML, or table format.`,
		Flags: []cli.Flag{
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			rep := buildSystemReport(ctx, wsl.NewDetector(), smi.NewClient())
			rep.Init(header.KindSystemReport, apiVersion, version)
			return writeReport(ctx, cmd, rep)
		},
	}
}

func buildSystemReport(ctx context.Context, detector *wsl.Detector, client *smi.Client) *systemReport {
	rep := &systemReport{
		WSL2:          detector.IsWSL2(),
		Distro:        detector.DistroName(),
		KernelVersion: detector.KernelVersion(),
		NvidiaSMI: smiStatus{
			Path:        client.LocalPath(),
			HostPath:    client.HostPath(),
			HostPresent: client.HostBinaryExists(),
		},
	}
	rep.OSName, rep.OSVersion = detector.OSRelease()

	if state, err := client.DeriveState(ctx); err != nil {
		if !errors.HasCode(err, errors.ErrCodeHostBinaryMissing) {
			slog.Debug("state derivation failed", "error", err)
		}
	} else {
		rep.NvidiaSMI.State = state.String()
	}

	if driver, err := client.DriverVersion(ctx); err != nil {
		slog.Debug("driver version query failed", "error", err)
	} else if driver != "" {
		rep.Driver.DriverVersion = &driver
	}
	if cuda, err := client.CUDAVersion(ctx); err != nil {
		slog.Debug("cuda version query failed", "error", err)
	} else if cuda != "" {
		rep.Driver.CUDAVersion = &cuda
	}
	if gpu, err := client.GPUName(ctx); err != nil {
		slog.Debug("gpu name query failed", "error", err)
	} else if gpu != "" {
		rep.Driver.GPUName = &gpu
	}

	return rep
}
