// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Zodgen Authors

// Package commands contains all CLI command definitions.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/zodgen/cli/internal/session"
	"github.com/zodgen/cli/internal/version"
)

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "zodgen",
		Short:             "Generate Zod validation schemas from compiled proto descriptor sets",
		Version:           version.Short(),
		PersistentPreRunE: session.PreRunLoad,
	}

	registerInitCmd(rootCmd)
	registerGenerateCmd(rootCmd)
	registerDescribeCmd(rootCmd)
	registerVersionCmd(rootCmd)

	return rootCmd
}

func registerInitCmd(parent *cobra.Command) {
	parent.AddCommand(newInitCmd())
}

func registerGenerateCmd(parent *cobra.Command) {
	parent.AddCommand(newGenerateCmd())
}

func registerDescribeCmd(parent *cobra.Command) {
	parent.AddCommand(newDescribeCmd())
}

func registerVersionCmd(parent *cobra.Command) {
	parent.AddCommand(newVersionCmd())
}
