// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Zodgen Authors

package prompts

import (
	"errors"
	"os"

	"github.com/charmbracelet/huh"
)

// RunGenerateForm prompts for any generation inputs that are still empty.
// Values already set by flags or config are left untouched.
func RunGenerateForm(descriptorPath, out *string) error {
	var fields []huh.Field

	if *descriptorPath == "" {
		fields = append(fields, huh.NewInput().
			Title("Descriptor set").
			Prompt(": ").
			Inline(true).
			Placeholder("e.g., build/descriptors.binpb").
			Value(descriptorPath).
			Validate(descriptorValidator))
	}

	if *out == "" {
		fields = append(fields, huh.NewInput().
			Title("Output directory").
			Prompt(": ").
			Inline(true).
			Placeholder("e.g., gen").
			Value(out).
			Validate(requiredValidator("output directory")))
	}

	if len(fields) == 0 {
		return nil
	}

	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(Theme()).Run()
}

func descriptorValidator(s string) error {
	if s == "" {
		return errors.New("descriptor set is required")
	}
	if _, err := os.Stat(s); err != nil {
		return errors.New("file not found")
	}
	return nil
}
