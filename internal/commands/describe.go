// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Zodgen Authors

package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/zodgen/cli/internal/descriptor"
	"github.com/zodgen/cli/internal/session"
)

type describeOptions struct {
	descriptorSet string
}

func newDescribeCmd() *cobra.Command {
	opts := &describeOptions{}

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Show the files, messages, and enums in a descriptor set",
		Example: `  # Describe the configured descriptor set
  zodgen describe

  # Describe a specific set
  zodgen describe --descriptor build/descriptors.binpb`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDescribe(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.descriptorSet, "descriptor", "d", "", "Path to the compiled descriptor set (.binpb or .json)")

	return cmd
}

func runDescribe(cmd *cobra.Command, opts *describeOptions) error {
	ctx, err := session.RequireFromCommand(cmd)
	if err != nil {
		return err
	}

	descPath := opts.descriptorSet
	if descPath == "" {
		descPath = ctx.Config.Descriptor
	}
	if descPath == "" {
		return fmt.Errorf("no descriptor set configured; pass --descriptor or set it in %s", session.ConfigFileName)
	}

	files, err := descriptor.LoadSet(descPath)
	if err != nil {
		return err
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f9ca24"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("#bababa"))

	for _, f := range files {
		fmt.Println(header.Render(f.Path) + dim.Render("  (package "+f.Package+")"))
		for _, e := range f.Enums {
			fmt.Printf("  enum    %s %s\n", e.Name, dim.Render(fmt.Sprintf("(%d values)", len(e.Values))))
		}
		for _, m := range f.Messages {
			suffix := ""
			if m.Deprecated {
				suffix = dim.Render(" deprecated")
			}
			fmt.Printf("  message %s %s%s\n", m.Name, dim.Render(fmt.Sprintf("(%d fields)", len(m.Fields))), suffix)
		}
	}

	return nil
}
