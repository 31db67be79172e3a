// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Zodgen Authors

package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zodgen/cli/internal/config"
	"github.com/zodgen/cli/internal/prompts"
	"github.com/zodgen/cli/internal/session"
)

type initOptions struct {
	descriptorSet string
	out           string
}

func newInitCmd() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a zodgen project",
		Long:  `Initialize a zodgen project with a zodgen.yaml configuration file.`,
		Example: `  # Interactive mode
  zodgen init

  # Non-interactive
  zodgen init --descriptor build/descriptors.binpb --out gen`,
		// init must run before any config exists.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.descriptorSet, "descriptor", "d", "", "Path to the compiled descriptor set")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "gen", "Output directory for generated schemas")

	return cmd
}

func runInit(opts *initOptions) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	// Check that the current directory isn't already initialized
	configPath := filepath.Join(cwd, session.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil {
		return errors.New("zodgen.yaml already exists; project already initialized")
	}

	if err := prompts.RunGenerateForm(&opts.descriptorSet, &opts.out); err != nil {
		return err
	}

	cfg := config.Default()
	cfg.Descriptor = opts.descriptorSet
	cfg.Out = opts.out

	if err := cfg.Save(configPath); err != nil {
		return fmt.Errorf("failed to write %s: %w", session.ConfigFileName, err)
	}

	prompts.PrintResult([]prompts.ResultField{
		{Label: "Config", Value: configPath},
		{Label: "Descriptor", Value: cfg.Descriptor},
		{Label: "Output", Value: cfg.Out},
	}, "Project initialized")

	return nil
}
