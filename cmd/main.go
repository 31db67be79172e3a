// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Zodgen Authors

// Package main is the entry point for the zodgen CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/zodgen/cli/cmd/internal"
)

func main() {
	if err := internal.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
