// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Zodgen Authors

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zodgen/cli/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the zodgen version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(version.Info())
			return nil
		},
	}
}
