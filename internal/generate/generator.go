// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Zodgen Authors

// Package generate provides the target-agnostic core of schema generation:
// the generator registry, naming utilities, per-file dependency resolution,
// and the structured output unit handed to the file writer.
package generate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/zodgen/cli/internal/descriptor"
)

// ResponseSuffix marks RPC response payload messages, which are excluded
// from generation by default.
const ResponseSuffix = "Response"

// Options controls a generation pass. The zero value is usable.
type Options struct {
	// IncludeResponses generates schemas for messages whose name ends in
	// ResponseSuffix. Default excludes them.
	IncludeResponses bool

	// ThirdParty lists logical path prefixes whose files are external to
	// the local system and produce no output unit. The well-known
	// google/protobuf namespace is always third-party.
	ThirdParty []string

	// Logger receives generation warnings (e.g. undecodable annotations).
	Logger zerolog.Logger
}

// IsThirdParty reports whether a logical file path belongs to an external
// namespace.
func (o Options) IsThirdParty(path string) bool {
	if strings.HasPrefix(path, "google/protobuf/") {
		return true
	}
	for _, prefix := range o.ThirdParty {
		if prefix != "" && strings.HasPrefix(path, strings.TrimSuffix(prefix, "/")+"/") {
			return true
		}
	}
	return false
}

// SkipMessage reports whether a message is excluded from generation.
func (o Options) SkipMessage(m *descriptor.Message) bool {
	return !o.IncludeResponses && strings.HasSuffix(m.Name, ResponseSuffix)
}

// Generator produces one output unit per qualifying IDL file.
type Generator interface {
	// Name returns the generator's identifier (e.g., "zod").
	Name() string

	// Suffix returns the generated-file suffix appended to a logical path
	// (e.g., "_zod.ts").
	Suffix() string

	// Generate compiles one file. A nil unit with a nil error means the
	// file was skipped (no content, or third-party namespace).
	Generate(file *descriptor.File, opts Options) (*Unit, error)
}

var generators = make(map[string]Generator)

// Register adds a generator to the registry.
func Register(g Generator) {
	generators[g.Name()] = g
}

// Get retrieves a generator by name.
func Get(name string) (Generator, error) {
	g, ok := generators[name]
	if !ok {
		return nil, fmt.Errorf("unknown generator: %s", name)
	}
	return g, nil
}

// Available returns all registered generator names, sorted.
func Available() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
