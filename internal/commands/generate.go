// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Zodgen Authors

package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/zodgen/cli/internal/descriptor"
	"github.com/zodgen/cli/internal/generate"
	"github.com/zodgen/cli/internal/prompts"
	"github.com/zodgen/cli/internal/session"

	// Import generator to auto-register
	_ "github.com/zodgen/cli/internal/generate/zod"
)

type generateOptions struct {
	descriptorSet    string
	out              string
	format           string
	includeResponses bool
	thirdParty       []string
	report           string
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate validation schemas from a descriptor set",
		Long: fmt.Sprintf(`Generate validation-schema source from a compiled descriptor set
(protoc --descriptor_set_out or buf build -o). One output file is written
per IDL file that defines messages or enums.

Available formats: %s`, strings.Join(generate.Available(), ", ")),
		Example: `  # Interactive mode
  zodgen generate

  # Generate from a binary descriptor set
  zodgen generate --descriptor build/descriptors.binpb --out gen

  # Include *Response messages and write a JSON report
  zodgen generate -d build/descriptors.binpb --include-responses --report report.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.descriptorSet, "descriptor", "d", "", "Path to the compiled descriptor set (.binpb or .json)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output directory")
	cmd.Flags().StringVar(&opts.format, "format", "zod", fmt.Sprintf("Output format (%s)", strings.Join(generate.Available(), ", ")))
	cmd.Flags().BoolVar(&opts.includeResponses, "include-responses", false, "Generate schemas for *Response messages")
	cmd.Flags().StringSliceVar(&opts.thirdParty, "third-party", nil, "Logical path prefixes to treat as external namespaces")
	cmd.Flags().StringVar(&opts.report, "report", "", "Write a JSON generation report to this path")

	return cmd
}

// generationReport is the machine-readable summary written by --report.
type generationReport struct {
	Generated []string `json:"generated"`
	Skipped   []string `json:"skipped"`
	Errors    []string `json:"errors,omitempty"`
}

func runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	ctx, err := session.RequireFromCommand(cmd)
	if err != nil {
		return err
	}
	cfg := ctx.Config

	// Flags take precedence over zodgen.yaml.
	descPath := opts.descriptorSet
	if descPath == "" {
		descPath = cfg.Descriptor
	}
	out := opts.out
	if out == "" {
		out = cfg.Out
	}

	if err := prompts.RunGenerateForm(&descPath, &out); err != nil {
		return err
	}

	gen, err := generate.Get(opts.format)
	if err != nil {
		return fmt.Errorf("unsupported format %q. Available formats: %s",
			opts.format, strings.Join(generate.Available(), ", "))
	}

	files, err := descriptor.LoadSet(descPath)
	if err != nil {
		return err
	}

	genOpts := generate.Options{
		IncludeResponses: opts.includeResponses || cfg.IncludeResponses,
		ThirdParty:       append(append([]string{}, cfg.ThirdParty...), opts.thirdParty...),
		Logger: zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
			With().Timestamp().Logger(),
	}
	writer := generate.DirWriter{Root: out}

	report := generationReport{}

	for _, f := range files {
		unit, genErr := gen.Generate(f, genOpts)
		if genErr != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", f.Path, genErr))
			continue
		}
		if unit == nil {
			report.Skipped = append(report.Skipped, f.Path)
			continue
		}
		if writeErr := writer.Write(unit.Path, unit.Render()); writeErr != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", f.Path, writeErr))
			continue
		}
		report.Generated = append(report.Generated, unit.Path)
	}

	if opts.report != "" {
		data, marshalErr := json.MarshalIndent(report, "", "  ")
		if marshalErr != nil {
			return fmt.Errorf("failed to encode report: %w", marshalErr)
		}
		if writeErr := os.WriteFile(opts.report, data, 0o600); writeErr != nil {
			return fmt.Errorf("failed to write report: %w", writeErr)
		}
	}

	prompts.PrintResult([]prompts.ResultField{
		{Label: "Generated", Value: fmt.Sprintf("%d file(s)", len(report.Generated))},
		{Label: "Skipped", Value: fmt.Sprintf("%d file(s)", len(report.Skipped))},
		{Label: "Output", Value: out},
	}, "Generation complete")

	if len(report.Errors) > 0 {
		for _, e := range report.Errors {
			fmt.Fprintf(cmd.ErrOrStderr(), "  error: %s\n", e)
		}
		return fmt.Errorf("%d file(s) failed", len(report.Errors))
	}

	return nil
}
