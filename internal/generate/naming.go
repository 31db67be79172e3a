// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Zodgen Authors

package generate

import (
	"path"
	"strings"
)

// ToSnakeCase converts a string to a valid snake_case identifier.
// It splits on non-alphanumeric characters, lowercases each part,
// and prefixes with underscore if the result starts with a digit.
func ToSnakeCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9')
	})

	for i, part := range parts {
		parts[i] = strings.ToLower(part)
	}

	result := strings.Join(parts, "_")
	if result != "" && result[0] >= '0' && result[0] <= '9' {
		result = "_" + result
	}
	return result
}

// ToPascalCase converts a snake_case string to PascalCase for type name
// generation.
func ToPascalCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var sb strings.Builder
	for _, part := range parts {
		if part != "" {
			sb.WriteString(strings.ToUpper(part[:1]) + part[1:])
		}
	}

	return sb.String()
}

// ToCamelCase converts a snake_case string to camelCase.
func ToCamelCase(s string) string {
	p := ToPascalCase(s)
	if p == "" {
		return ""
	}
	return strings.ToLower(p[:1]) + p[1:]
}

// SchemaName derives the exported schema binding name for a type.
func SchemaName(typeName string) string {
	return typeName + "Schema"
}

// RelativeImport computes the import path from one logical file to another.
// Both paths are slash-separated and extension-free. Files in the same
// directory import as "./name"; otherwise the path walks up to the common
// ancestor directory and back down. The caller appends any generated-file
// suffix to `to` beforehand.
func RelativeImport(from, to string) string {
	fromDir := path.Dir(from)
	toDir := path.Dir(to)
	base := path.Base(to)

	if fromDir == toDir {
		return "./" + base
	}

	fromSegs := splitDir(fromDir)
	toSegs := splitDir(toDir)

	common := 0
	for common < len(fromSegs) && common < len(toSegs) && fromSegs[common] == toSegs[common] {
		common++
	}

	ups := len(fromSegs) - common
	segs := append(append([]string{}, toSegs[common:]...), base)

	if ups == 0 {
		return "./" + strings.Join(segs, "/")
	}
	return strings.Repeat("../", ups) + strings.Join(segs, "/")
}

func splitDir(dir string) []string {
	if dir == "." || dir == "" {
		return nil
	}
	return strings.Split(dir, "/")
}
