// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Zodgen Authors

// Package descriptor provides the resolved IDL descriptor model consumed by
// the schema generators. It is built from a compiled protobuf
// FileDescriptorSet; the generators never see wire syntax.
package descriptor

// ScalarType classifies a scalar field (or a map key) by its runtime shape.
type ScalarType int

const (
	ScalarNone ScalarType = iota
	ScalarString
	ScalarBool
	ScalarBytes
	ScalarInt32
	ScalarUint32
	ScalarInt64
	ScalarUint64
	ScalarFloat
	ScalarDouble
)

// String returns the string representation of the scalar type.
func (s ScalarType) String() string {
	switch s {
	case ScalarString:
		return "string"
	case ScalarBool:
		return "bool"
	case ScalarBytes:
		return "bytes"
	case ScalarInt32:
		return "int32"
	case ScalarUint32:
		return "uint32"
	case ScalarInt64:
		return "int64"
	case ScalarUint64:
		return "uint64"
	case ScalarFloat:
		return "float"
	case ScalarDouble:
		return "double"
	default:
		return "none"
	}
}

// Kind identifies the shape of a field value.
type Kind int

const (
	KindScalar Kind = iota
	KindEnum
	KindMessage
	KindMap
)

// TypeRef points at an enum or message definition, possibly in another file.
type TypeRef struct {
	Name string // flattened name, e.g. "User" or "User_Address" for nested types
	File string // owning file's logical path (no extension)
}

// ValueType describes a map value: a scalar, enum, or message.
type ValueType struct {
	Kind   Kind
	Scalar ScalarType
	Ref    TypeRef
}

// Field is one field of a message.
type Field struct {
	Name     string
	Kind     Kind
	Repeated bool
	Optional bool // proto3 explicit optional

	Scalar   ScalarType // for KindScalar
	Ref      TypeRef    // for KindEnum and KindMessage
	MapKey   ScalarType // for KindMap; keys are always scalar
	MapValue *ValueType // for KindMap

	// Rules is the raw validation annotation payload from the field's
	// options extension. Opaque here; decoded by DecodeFieldRules.
	Rules []byte
}

// Message is a message definition within a file.
type Message struct {
	Name       string
	File       string
	Deprecated bool
	Fields     []*Field
	// Nested messages are recursed into for import collection but are not
	// scheduled as standalone schema definitions.
	Nested []*Message
}

// EnumValue is a single named value of an enum.
type EnumValue struct {
	Name   string
	Number int32
}

// Enum is an enum definition within a file.
type Enum struct {
	Name   string
	File   string
	Values []EnumValue
}

// File is one IDL file: a logical path plus its ordered definitions.
type File struct {
	Path     string // slash-separated, no extension, e.g. "acme/user/v1/user"
	Package  string
	Enums    []*Enum
	Messages []*Message
}
