// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Zodgen Authors

package generate

import (
	"sort"
	"strings"
)

// Import is one cross-file import obligation gathered during mapping.
type Import struct {
	Path    string // module path as written in the import statement
	Symbols []string
}

// Decl is one generated declaration: a named block of source lines.
type Decl struct {
	Name  string
	Lines []string
}

// Unit is the structured output of compiling one IDL file. The core builds
// units; only Render turns one into text, keeping everything before it
// testable without I/O.
type Unit struct {
	Path       string // output path, e.g. "acme/v1/user_zod.ts"
	Source     string // source file named in the header, e.g. "acme/v1/user.proto"
	BaseImport string // validation-library import, rendered before the rest
	Imports    []Import
	Decls      []Decl
}

// AddImport records an import obligation. Duplicate symbols per path are
// collapsed at render time.
func (u *Unit) AddImport(path string, symbols ...string) {
	u.Imports = append(u.Imports, Import{Path: path, Symbols: symbols})
}

// Render serializes the unit: header comment, base import, one import
// statement per source path (deduplicated, sorted), then declarations
// separated by blank lines.
func (u *Unit) Render() []byte {
	var sb strings.Builder

	sb.WriteString("// Code generated by zodgen from " + u.Source + ". DO NOT EDIT.\n\n")

	if u.BaseImport != "" {
		sb.WriteString(u.BaseImport + "\n")
	}

	byPath := make(map[string]map[string]bool)
	for _, imp := range u.Imports {
		if byPath[imp.Path] == nil {
			byPath[imp.Path] = make(map[string]bool)
		}
		for _, sym := range imp.Symbols {
			byPath[imp.Path][sym] = true
		}
	}

	paths := make([]string, 0, len(byPath))
	for p := range byPath {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		syms := make([]string, 0, len(byPath[p]))
		for s := range byPath[p] {
			syms = append(syms, s)
		}
		sort.Strings(syms)
		sb.WriteString("import { " + strings.Join(syms, ", ") + " } from \"" + p + "\";\n")
	}

	for _, d := range u.Decls {
		sb.WriteString("\n")
		for _, line := range d.Lines {
			sb.WriteString(line + "\n")
		}
	}

	return []byte(sb.String())
}
