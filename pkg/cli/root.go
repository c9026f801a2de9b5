/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/cuda-setup/pkg/logging"
	"github.com/NVIDIA/cuda-setup/pkg/wsl"
)

const (
	name           = "cuda-setup"
	versionDefault = "dev"
	apiVersion     = "v1"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Run builds the root command and executes it with the given arguments.
// This is called by main.main() with os.Args.
func Run(ctx context.Context, args []string) error {
	return rootCmd().Run(ctx, args)
}

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:    name,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Usage:   "Diagnose and repair NVIDIA GPU driver access in WSL2",
		Description: `Diagnose and repair NVIDIA GPU driver access inside a WSL2 distribution.

WSL2 reaches the GPU through the Windows host driver. The nvidia-smi binary
shipped in the WSL userspace can break when it drifts out of sync with that
driver; the fix is a symlink to the Windows-side nvidia-smi.exe. This tool
detects the environment, repairs the symlink, and checks the host driver
version against the requirements of the target CUDA release.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error)",
				Sources: cli.EnvVars("CUDA_SETUP_LOG_LEVEL"),
				Value:   "info",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			infoCmd(),
			checkCmd(),
			fixCmd(),
		},
	}
}

// requireWSL2 is the environment gate for commands that touch the driver:
// everything this tool repairs or checks only exists inside a WSL2 guest.
func requireWSL2(detector *wsl.Detector) error {
	if detector.IsWSL2() {
		return nil
	}
	return fmt.Errorf("not running inside WSL2; this tool repairs GPU driver access for WSL2 distributions only")
}
