/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/cuda-setup/pkg/header"
	"github.com/NVIDIA/cuda-setup/pkg/smi"
	"github.com/NVIDIA/cuda-setup/pkg/wsl"
)

// repairReport is the output of the fix command.
type repairReport struct {
	header.Header    `json:",inline" yaml:",inline"`
	smi.RepairResult `json:",inline" yaml:",inline"`
}

func fixCmd() *cli.Command {
	return &cli.Command{
		Name:                  "fix",
		EnableShellCompletion: true,
		Usage:                 "Repair the WSL-side nvidia-smi symlink",
		Description: `Repair the WSL-side nvidia-smi by relinking it to the Windows host binary.

The repair derives the current state of /usr/lib/wsl/lib/nvidia-smi fresh on
every run and converges it onto a working symlink:
  - a working binary or symlink is left untouched
  - a broken symlink is removed and recreated
  - a broken regular file is moved to a timestamped backup first
  - a missing binary gets its parent directory created if needed

Filesystem changes run through sudo. The command is idempotent; running it
again after a successful repair reports "already working" and changes nothing.
Exits non-zero when nvidia-smi still fails after the repair.
The report can be output in JSON, YAML, or table format.`,
		Flags: []cli.Flag{
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := requireWSL2(wsl.NewDetector()); err != nil {
				return err
			}

			res, err := smi.NewClient().Repair(ctx)
			if err != nil {
				return err
			}

			rep := &repairReport{RepairResult: *res}
			rep.Init(header.KindRepairReport, apiVersion, version)

			if err := writeReport(ctx, cmd, rep); err != nil {
				return err
			}

			if !res.Success {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}
