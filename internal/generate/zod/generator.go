// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Zodgen Authors

// Package zod generates Zod validation-schema modules from the descriptor
// model: one TypeScript source unit per IDL file, with enum value-sets,
// message object schemas in dependency order, and per-field refinement
// chains derived from validation annotations.
package zod

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zodgen/cli/internal/descriptor"
	"github.com/zodgen/cli/internal/generate"
)

// generatedSuffix is appended to a logical path to address a sibling
// generated module in import statements.
const generatedSuffix = "_zod"

// Generator emits Zod schema units.
type Generator struct{}

func init() {
	generate.Register(&Generator{})
}

// Name returns the generator's identifier.
func (*Generator) Name() string { return "zod" }

// Suffix returns the generated-file suffix.
func (*Generator) Suffix() string { return generatedSuffix + ".ts" }

// Generate compiles one IDL file into a schema unit. Third-party files and
// files with no eligible content are skipped with a nil unit.
func (*Generator) Generate(file *descriptor.File, opts generate.Options) (*generate.Unit, error) {
	if opts.IsThirdParty(file.Path) {
		return nil, nil
	}

	msgs := make([]*descriptor.Message, 0, len(file.Messages))
	for _, m := range file.Messages {
		if !opts.SkipMessage(m) {
			msgs = append(msgs, m)
		}
	}

	if len(msgs) == 0 && len(file.Enums) == 0 {
		return nil, nil
	}

	res := generate.Resolve(msgs, file.Path)
	tm := &typeMapper{file: file, recursive: res.Recursive}
	ext := extractor{log: opts.Logger}

	unit := &generate.Unit{
		Path:       file.Path + generatedSuffix + ".ts",
		Source:     file.Path + ".proto",
		BaseImport: `import { z } from "zod";`,
	}

	for _, e := range file.Enums {
		unit.Decls = append(unit.Decls, enumDecl(e))
	}

	for _, m := range res.Order {
		unit.Decls = append(unit.Decls, messageDecl(m, tm, ext, res.Recursive, unit))
	}

	// Nested messages are not scheduled, but their fields still contribute
	// import obligations.
	for _, m := range msgs {
		collectNestedImports(m, tm, unit)
	}

	return unit, nil
}

// enumDecl emits the forward value-set, the number-to-name map, and the
// name-to-number map with the zero value excluded.
func enumDecl(e *descriptor.Enum) generate.Decl {
	schemaName := generate.SchemaName(e.Name)
	camel := generate.ToCamelCase(e.Name)

	var valueSet string
	switch len(e.Values) {
	case 0:
		valueSet = "z.never()"
	case 1:
		valueSet = "z.literal(" + strconv.FormatInt(int64(e.Values[0].Number), 10) + ")"
	default:
		lits := make([]string, len(e.Values))
		for i, v := range e.Values {
			lits[i] = "z.literal(" + strconv.FormatInt(int64(v.Number), 10) + ")"
		}
		valueSet = "z.union([" + strings.Join(lits, ", ") + "])"
	}

	lines := []string{
		"export const " + schemaName + " = " + valueSet + ";",
		"export type " + e.Name + " = z.infer<typeof " + schemaName + ">;",
		"export const " + camel + "ToName: Record<number, string> = {",
	}
	for _, v := range e.Values {
		lines = append(lines, fmt.Sprintf("  %d: %q,", v.Number, v.Name))
	}
	lines = append(lines, "};",
		"export const "+camel+"FromName: Record<string, number> = {")
	for _, v := range e.Values {
		if v.Number == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("  %q: %d,", v.Name, v.Number))
	}
	lines = append(lines, "};")

	return generate.Decl{Name: schemaName, Lines: lines}
}

// messageDecl emits one message schema. Recursive messages get an explicit
// structural type and a lazily-evaluated binding so they may reference
// themselves; all others get a direct binding with an inferred type.
func messageDecl(m *descriptor.Message, tm *typeMapper, ext extractor, recursive map[string]bool, unit *generate.Unit) generate.Decl {
	schemaName := generate.SchemaName(m.Name)

	schemaFields := make([]string, 0, len(m.Fields))
	tsFields := make([]string, 0, len(m.Fields))

	for _, f := range m.Fields {
		mp := tm.mapField(f)
		unit.Imports = append(unit.Imports, mp.Imports...)

		c := ext.extract(f)
		schemaFields = append(schemaFields, f.Name+": "+composeExpr(mp, c)+",")

		marker := "?"
		if c.Required {
			marker = ""
		}
		tsFields = append(tsFields, f.Name+marker+": "+mp.TSType+";")
	}

	var lines []string
	if m.Deprecated {
		lines = append(lines, "/** @deprecated */")
	}

	if recursive[m.Name] {
		lines = append(lines, "export type "+m.Name+" = {")
		for _, l := range tsFields {
			lines = append(lines, "  "+l)
		}
		lines = append(lines, "};",
			"export const "+schemaName+": z.ZodType<"+m.Name+"> = z.lazy(() =>",
			"  z.object({")
		for _, l := range schemaFields {
			lines = append(lines, "    "+l)
		}
		lines = append(lines, "  })", ");")
	} else {
		lines = append(lines, "export const "+schemaName+" = z.object({")
		for _, l := range schemaFields {
			lines = append(lines, "  "+l)
		}
		lines = append(lines, "});",
			"export type "+m.Name+" = z.infer<typeof "+schemaName+">;")
	}

	return generate.Decl{Name: schemaName, Lines: lines}
}

// composeExpr merges a field's base mapping with its validation chain:
// base, chain suffixes, item suffixes spliced into the array element,
// pattern rendering, then the optionality marker.
func composeExpr(m mapping, c chain) string {
	var expr string
	if m.Elem != "" {
		elem := m.Elem + strings.Join(c.ItemMethods, "")
		if len(c.ItemNotIn) > 0 {
			elem += notInRefine(joinInts(c.ItemNotIn))
		}
		if c.ItemPattern != "" {
			elem += ".regex(/" + regexLiteral(c.ItemPattern) + "/)"
		}
		expr = "z.array(" + elem + ")" + strings.Join(c.Methods, "")
	} else {
		expr = m.Expr + strings.Join(c.Methods, "")
	}

	if c.DefinedOnly {
		expr += definedOnlyRefine
	}

	if c.Pattern != "" {
		if c.Required {
			expr += ".regex(/" + regexLiteral(c.Pattern) + "/)"
		} else {
			// Optional strings default to ""; the permissive check lets
			// the default through.
			expr += fmt.Sprintf(
				`.refine((v) => v === "" || /%s/.test(v), { message: "value must match pattern" })`,
				regexLiteral(c.Pattern))
		}
	}

	if !c.Required {
		expr += ".optional()"
	}

	return expr
}

// regexLiteral renders an annotation pattern between JS regex delimiters.
// Unescaped forward slashes would terminate the literal early and literal
// newlines cannot appear in one at all, so both are escaped; sequences
// already escaped in the pattern pass through untouched.
func regexLiteral(p string) string {
	var sb strings.Builder
	escaped := false
	for _, r := range p {
		switch {
		case escaped:
			sb.WriteRune(r)
			escaped = false
		case r == '\\':
			sb.WriteRune(r)
			escaped = true
		case r == '/':
			sb.WriteString(`\/`)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func collectNestedImports(m *descriptor.Message, tm *typeMapper, unit *generate.Unit) {
	for _, nested := range m.Nested {
		for _, f := range nested.Fields {
			mp := tm.mapField(f)
			unit.Imports = append(unit.Imports, mp.Imports...)
		}
		collectNestedImports(nested, tm, unit)
	}
}
