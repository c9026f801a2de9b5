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
	"github.com/NVIDIA/cuda-setup/pkg/defaults"
	"github.com/NVIDIA/cuda-setup/pkg/header"
	"github.com/NVIDIA/cuda-setup/pkg/smi"
	"github.com/NVIDIA/cuda-setup/pkg/wsl"
)

func checkCmd() *cli.Command {
	return &cli.Command{
		Name:                  "check",
		EnableShellCompletion: true,
		Usage:                 "Check GPU driver compatibility with the target CUDA release",
		Description: `Check whether the Windows host driver is compatible with the target CUDA
release. Unless --no-fix is given, a broken WSL-side nvidia-smi is repaired
first so the driver can actually be queried.

The verdict is three-way:
  - driver below the minimum required version: incompatible
  - driver meets the minimum but not the recommended version: compatible,
    with an upgrade suggestion
  - driver at or above the recommended version: up to date

Exits non-zero when the driver is incompatible or the check cannot complete.
The report can be output in JSON, YAML, or table format.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-fix",
				Usage: "Skip the nvidia-smi repair before checking",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, cancel := context.WithTimeout(ctx, defaults.CheckTimeout)
			defer cancel()

			if err := requireWSL2(wsl.NewDetector()); err != nil {
				return err
			}

			client := smi.NewClient()

			// Repair before querying: a broken nvidia-smi would make
			// every driver query fail for the wrong reason.
			if !cmd.Bool("no-fix") && client.HostBinaryExists() {
				rep, err := client.Repair(ctx)
				if err != nil {
					return err
				}
				slog.Info("nvidia-smi repair", "success", rep.Success, "message", rep.Message)
			}

			evaluator := compat.NewEvaluator(compat.WithQuerier(client))
			res, err := evaluator.Evaluate(ctx)
			if err != nil {
				return err
			}
			res.Init(header.KindCompatibilityReport, apiVersion, version)

			if err := writeReport(ctx, cmd, res); err != nil {
				return err
			}

			if !res.IsCompatible {
				// The verdict is already in the report; only the exit
				// code needs to signal it.
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}
