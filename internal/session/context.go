// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Zodgen Authors

// Package session provides project context loading for CLI commands.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zodgen/cli/internal/config"
)

// ErrInvalidConfig indicates the config file exists but is invalid.
var ErrInvalidConfig = errors.New("invalid configuration")

// ConfigFileName is the name of the zodgen configuration file.
const ConfigFileName = "zodgen.yaml"

// contextKey is used to store Context in context.Context.
type contextKey struct{}

// Context holds the resolved project configuration.
type Context struct {
	// Config is the loaded zodgen.yaml, or the default configuration when
	// no config file exists (flags can supply everything).
	Config *config.Config
}

// Load loads the project context from the current working directory and
// returns a new context.Context with the zodgen Context stored in it.
func Load(ctx context.Context) (context.Context, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	cfg := config.Default()

	configPath := filepath.Join(cwd, ConfigFileName)
	if _, statErr := os.Stat(configPath); statErr == nil {
		cfg, err = config.Load(configPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		if validateErr := cfg.Validate(); validateErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, validateErr)
		}
	}

	return context.WithValue(ctx, contextKey{}, &Context{Config: cfg}), nil
}

// From extracts the zodgen Context from a context.Context.
// Returns nil if no Context is stored.
func From(ctx context.Context) *Context {
	c, _ := ctx.Value(contextKey{}).(*Context)
	return c
}

// FromCommand extracts the zodgen Context from a cobra.Command's context.
func FromCommand(cmd *cobra.Command) *Context {
	return From(cmd.Context())
}

// RequireFromCommand extracts the zodgen Context from a cobra.Command's
// context, returning an error if not found.
func RequireFromCommand(cmd *cobra.Command) (*Context, error) {
	ctx := FromCommand(cmd)
	if ctx == nil {
		return nil, errors.New("project context not loaded")
	}
	return ctx, nil
}

// PreRunLoad is a PersistentPreRunE function that loads the project
// context and stores it in the command's context.
func PreRunLoad(cmd *cobra.Command, _ []string) error {
	ctx, err := Load(cmd.Context())
	if err != nil {
		return err
	}
	cmd.SetContext(ctx)
	return nil
}
