// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Zodgen Authors

package zod

import (
	"strings"

	"github.com/zodgen/cli/internal/descriptor"
	"github.com/zodgen/cli/internal/generate"
)

// mapping is the base translation of one field: the Zod expression before
// any constraint suffixes, the TypeScript type used in structural
// declarations, and the imports the expression requires.
type mapping struct {
	Expr    string // full base expression; array-wrapped for repeated fields
	Elem    string // element expression, set only for repeated fields
	TSType  string
	Imports []generate.Import
}

// typeMapper maps fields of one file. It holds no state between calls
// beyond the file coordinates and the recursive-type classification.
type typeMapper struct {
	file      *descriptor.File
	recursive map[string]bool
}

func (tm *typeMapper) mapField(f *descriptor.Field) mapping {
	var m mapping

	switch f.Kind {
	case descriptor.KindScalar:
		m = scalarMapping(f.Scalar)
	case descriptor.KindEnum:
		m = tm.enumMapping(f.Ref)
	case descriptor.KindMessage:
		m = tm.messageMapping(f.Ref)
	case descriptor.KindMap:
		m = tm.mapMapping(f)
	default:
		m = mapping{Expr: "z.unknown()", TSType: "unknown"}
	}

	if f.Repeated {
		m.Elem = m.Expr
		m.Expr = "z.array(" + m.Elem + ")"
		m.TSType = arrayTS(m.TSType)
	}

	return m
}

// scalarMapping returns the fixed base expression for a scalar classifier.
// 64-bit integers use the string encoding of the adjacent message-type
// generator; the regex keeps the strings parseable as big integers.
func scalarMapping(s descriptor.ScalarType) mapping {
	switch s {
	case descriptor.ScalarString:
		return mapping{Expr: "z.string()", TSType: "string"}
	case descriptor.ScalarBool:
		return mapping{Expr: "z.boolean()", TSType: "boolean"}
	case descriptor.ScalarBytes:
		return mapping{Expr: "z.instanceof(Uint8Array)", TSType: "Uint8Array"}
	case descriptor.ScalarInt32:
		return mapping{Expr: "z.number().int()", TSType: "number"}
	case descriptor.ScalarUint32:
		return mapping{Expr: "z.number().int().nonnegative()", TSType: "number"}
	case descriptor.ScalarInt64:
		return mapping{Expr: `z.string().regex(/^-?\d+$/)`, TSType: "string"}
	case descriptor.ScalarUint64:
		return mapping{Expr: `z.string().regex(/^\d+$/)`, TSType: "string"}
	case descriptor.ScalarFloat, descriptor.ScalarDouble:
		return mapping{Expr: "z.number()", TSType: "number"}
	default:
		return mapping{Expr: "z.unknown()", TSType: "unknown"}
	}
}

func (tm *typeMapper) enumMapping(ref descriptor.TypeRef) mapping {
	name := generate.SchemaName(ref.Name)
	m := mapping{Expr: name, TSType: "z.infer<typeof " + name + ">"}
	if ref.File != tm.file.Path {
		m.Imports = append(m.Imports, generate.Import{
			Path:    generate.RelativeImport(tm.file.Path, ref.File+generatedSuffix),
			Symbols: []string{name},
		})
	}
	return m
}

func (tm *typeMapper) messageMapping(ref descriptor.TypeRef) mapping {
	if b, ok := builtinMapping(ref); ok {
		return b
	}

	name := generate.SchemaName(ref.Name)

	if ref.File == tm.file.Path {
		if tm.recursive[ref.Name] {
			// Deferred binding; the const may not exist yet at this
			// point in the file.
			return mapping{Expr: "z.lazy(() => " + name + ")", TSType: ref.Name}
		}
		return mapping{Expr: name, TSType: "z.infer<typeof " + name + ">"}
	}

	return mapping{
		Expr:   name,
		TSType: "z.infer<typeof " + name + ">",
		Imports: []generate.Import{{
			Path:    generate.RelativeImport(tm.file.Path, ref.File+generatedSuffix),
			Symbols: []string{name},
		}},
	}
}

func (tm *typeMapper) mapMapping(f *descriptor.Field) mapping {
	key := recordKeyExpr(f.MapKey)

	var value mapping
	if f.MapValue == nil {
		value = mapping{Expr: "z.unknown()", TSType: "unknown"}
	} else {
		switch f.MapValue.Kind {
		case descriptor.KindEnum:
			value = tm.enumMapping(f.MapValue.Ref)
		case descriptor.KindMessage:
			value = tm.messageMapping(f.MapValue.Ref)
		default:
			value = scalarMapping(f.MapValue.Scalar)
		}
	}

	return mapping{
		Expr:    "z.record(" + key + ", " + value.Expr + ")",
		TSType:  "Record<" + recordKeyTS(f.MapKey) + ", " + value.TSType + ">",
		Imports: value.Imports,
	}
}

// recordKeyExpr picks the key expression for a map field. Runtime object
// keys are always strings, so the bool key scalar validates against its
// string encoding; 64-bit keys are already string-shaped.
func recordKeyExpr(s descriptor.ScalarType) string {
	if s == descriptor.ScalarBool {
		return `z.enum(["true", "false"])`
	}
	return scalarMapping(s).Expr
}

// builtinMapping translates the well-known wrapper and container types to
// fixed expressions with no import obligation.
func builtinMapping(ref descriptor.TypeRef) (mapping, bool) {
	if !strings.HasPrefix(ref.File, "google/protobuf/") {
		return mapping{}, false
	}

	switch ref.Name {
	case "Timestamp":
		return mapping{Expr: "z.coerce.date()", TSType: "Date"}, true
	case "Duration":
		return mapping{Expr: "z.string()", TSType: "string"}, true
	case "Any", "Struct":
		return mapping{Expr: "z.record(z.unknown())", TSType: "Record<string, unknown>"}, true
	case "Value":
		return mapping{Expr: "z.unknown()", TSType: "unknown"}, true
	case "ListValue":
		return mapping{Expr: "z.array(z.unknown())", TSType: "unknown[]"}, true
	case "Empty":
		return mapping{Expr: "z.object({})", TSType: "Record<string, never>"}, true
	case "DoubleValue", "FloatValue":
		return nullable(scalarMapping(descriptor.ScalarDouble)), true
	case "Int32Value":
		return nullable(scalarMapping(descriptor.ScalarInt32)), true
	case "UInt32Value":
		return nullable(scalarMapping(descriptor.ScalarUint32)), true
	case "Int64Value":
		return nullable(scalarMapping(descriptor.ScalarInt64)), true
	case "UInt64Value":
		return nullable(scalarMapping(descriptor.ScalarUint64)), true
	case "BoolValue":
		return nullable(scalarMapping(descriptor.ScalarBool)), true
	case "StringValue":
		return nullable(scalarMapping(descriptor.ScalarString)), true
	case "BytesValue":
		return nullable(scalarMapping(descriptor.ScalarBytes)), true
	default:
		return mapping{}, false
	}
}

func nullable(m mapping) mapping {
	m.Expr += ".nullable()"
	m.TSType += " | null"
	return m
}

// recordKeyTS picks the TypeScript Record key type for a map key scalar.
// Bool and 64-bit keys are string-encoded in the JSON form.
func recordKeyTS(s descriptor.ScalarType) string {
	switch s {
	case descriptor.ScalarInt32, descriptor.ScalarUint32:
		return "number"
	default:
		return "string"
	}
}

// arrayTS appends the array marker, parenthesizing compound types.
func arrayTS(t string) string {
	if strings.ContainsAny(t, "|& ") {
		return "(" + t + ")[]"
	}
	return t + "[]"
}
