// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Zodgen Authors

package descriptor

import (
	"fmt"
	"os"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
)

// typeEntry is one resolvable named type in a descriptor set.
type typeEntry struct {
	isEnum   bool
	ref      TypeRef
	mapEntry *descriptorpb.DescriptorProto // non-nil for synthetic map entries
}

// LoadSet reads a FileDescriptorSet from disk and resolves it into the
// descriptor model. Binary sets (protoc --descriptor_set_out) and protojson
// sets (buf build -o set.json) are both accepted; the format is chosen by
// file extension.
func LoadSet(path string) ([]*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}

	var set descriptorpb.FileDescriptorSet
	if strings.HasSuffix(path, ".json") {
		if err := protojson.Unmarshal(data, &set); err != nil {
			return nil, fmt.Errorf("failed to parse descriptor set %s: %w", path, err)
		}
	} else {
		if err := proto.Unmarshal(data, &set); err != nil {
			return nil, fmt.Errorf("failed to parse descriptor set %s: %w", path, err)
		}
	}

	return FromDescriptorSet(&set)
}

// FromDescriptorSet converts a FileDescriptorSet into the descriptor model,
// resolving every field's type reference against the whole set.
func FromDescriptorSet(set *descriptorpb.FileDescriptorSet) ([]*File, error) {
	idx := indexSet(set)

	files := make([]*File, 0, len(set.GetFile()))
	for _, fd := range set.GetFile() {
		f := &File{
			Path:    LogicalPath(fd.GetName()),
			Package: fd.GetPackage(),
		}

		for _, ed := range fd.GetEnumType() {
			f.Enums = append(f.Enums, convertEnum(ed, "", f.Path))
		}

		for _, md := range fd.GetMessageType() {
			msg, err := convertMessage(md, "", f.Path, idx)
			if err != nil {
				return nil, fmt.Errorf("file %s: %w", fd.GetName(), err)
			}
			f.Messages = append(f.Messages, msg)
		}

		files = append(files, f)
	}

	return files, nil
}

// LogicalPath strips the .proto extension from a descriptor file name.
func LogicalPath(name string) string {
	return strings.TrimSuffix(name, ".proto")
}

// indexSet builds a full-name index over every message and enum in the set,
// including nested definitions and synthetic map entries.
func indexSet(set *descriptorpb.FileDescriptorSet) map[string]typeEntry {
	idx := make(map[string]typeEntry)

	for _, fd := range set.GetFile() {
		filePath := LogicalPath(fd.GetName())
		prefix := "."
		if pkg := fd.GetPackage(); pkg != "" {
			prefix = "." + pkg + "."
		}

		for _, ed := range fd.GetEnumType() {
			indexEnum(idx, ed, prefix, "", filePath)
		}
		for _, md := range fd.GetMessageType() {
			indexMessage(idx, md, prefix, "", filePath)
		}
	}

	return idx
}

func indexMessage(idx map[string]typeEntry, md *descriptorpb.DescriptorProto, prefix, parent, filePath string) {
	flat := flatName(parent, md.GetName())
	qualified := prefix + qualifiedName(parent, md.GetName())

	entry := typeEntry{ref: TypeRef{Name: flat, File: filePath}}
	if md.GetOptions().GetMapEntry() {
		entry.mapEntry = md
	}
	idx[qualified] = entry

	for _, ed := range md.GetEnumType() {
		indexEnum(idx, ed, prefix, qualifiedName(parent, md.GetName()), filePath)
	}
	for _, nested := range md.GetNestedType() {
		indexMessage(idx, nested, prefix, qualifiedName(parent, md.GetName()), filePath)
	}
}

func indexEnum(idx map[string]typeEntry, ed *descriptorpb.EnumDescriptorProto, prefix, parent, filePath string) {
	idx[prefix+qualifiedName(parent, ed.GetName())] = typeEntry{
		isEnum: true,
		ref:    TypeRef{Name: flatName(parent, ed.GetName()), File: filePath},
	}
}

// qualifiedName joins a dotted parent path with a type name.
func qualifiedName(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

// flatName joins a dotted parent path with a type name into the flattened
// identifier used in generated code (Parent_Nested).
func flatName(parent, name string) string {
	if parent == "" {
		return name
	}
	return strings.ReplaceAll(parent, ".", "_") + "_" + name
}

func convertEnum(ed *descriptorpb.EnumDescriptorProto, parent, filePath string) *Enum {
	e := &Enum{
		Name: flatName(parent, ed.GetName()),
		File: filePath,
	}
	for _, v := range ed.GetValue() {
		e.Values = append(e.Values, EnumValue{Name: v.GetName(), Number: v.GetNumber()})
	}
	return e
}

func convertMessage(md *descriptorpb.DescriptorProto, parent, filePath string, idx map[string]typeEntry) (*Message, error) {
	msg := &Message{
		Name:       flatName(parent, md.GetName()),
		File:       filePath,
		Deprecated: md.GetOptions().GetDeprecated(),
	}

	for _, fd := range md.GetField() {
		field, err := convertField(fd, idx)
		if err != nil {
			return nil, fmt.Errorf("message %s: %w", msg.Name, err)
		}
		msg.Fields = append(msg.Fields, field)
	}

	qualified := qualifiedName(parent, md.GetName())
	for _, nested := range md.GetNestedType() {
		if nested.GetOptions().GetMapEntry() {
			continue
		}
		child, err := convertMessage(nested, qualified, filePath, idx)
		if err != nil {
			return nil, err
		}
		msg.Nested = append(msg.Nested, child)
	}

	return msg, nil
}

func convertField(fd *descriptorpb.FieldDescriptorProto, idx map[string]typeEntry) (*Field, error) {
	f := &Field{
		Name:     fd.GetJsonName(),
		Repeated: fd.GetLabel() == descriptorpb.FieldDescriptorProto_LABEL_REPEATED,
		Optional: fd.GetProto3Optional(),
		Rules:    rulesPayload(fd.GetOptions()),
	}
	if f.Name == "" {
		f.Name = fd.GetName()
	}

	switch fd.GetType() {
	case descriptorpb.FieldDescriptorProto_TYPE_ENUM:
		entry, ok := idx[fd.GetTypeName()]
		if !ok {
			return nil, fmt.Errorf("field %s: unresolved enum %s", fd.GetName(), fd.GetTypeName())
		}
		f.Kind = KindEnum
		f.Ref = entry.ref

	case descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, descriptorpb.FieldDescriptorProto_TYPE_GROUP:
		entry, ok := idx[fd.GetTypeName()]
		if !ok {
			return nil, fmt.Errorf("field %s: unresolved message %s", fd.GetName(), fd.GetTypeName())
		}
		if entry.mapEntry != nil {
			if err := fillMapField(f, entry.mapEntry, idx); err != nil {
				return nil, fmt.Errorf("field %s: %w", fd.GetName(), err)
			}
			break
		}
		f.Kind = KindMessage
		f.Ref = entry.ref

	default:
		f.Kind = KindScalar
		f.Scalar = scalarOf(fd.GetType())
	}

	return f, nil
}

// fillMapField resolves the synthetic map entry message into a map field.
// Entry field 1 is the key, entry field 2 is the value.
func fillMapField(f *Field, entry *descriptorpb.DescriptorProto, idx map[string]typeEntry) error {
	fields := entry.GetField()
	if len(fields) != 2 {
		return fmt.Errorf("malformed map entry %s", entry.GetName())
	}

	f.Kind = KindMap
	f.Repeated = false
	f.MapKey = scalarOf(fields[0].GetType())

	value := fields[1]
	switch value.GetType() {
	case descriptorpb.FieldDescriptorProto_TYPE_ENUM:
		ve, ok := idx[value.GetTypeName()]
		if !ok {
			return fmt.Errorf("unresolved map value enum %s", value.GetTypeName())
		}
		f.MapValue = &ValueType{Kind: KindEnum, Ref: ve.ref}
	case descriptorpb.FieldDescriptorProto_TYPE_MESSAGE:
		ve, ok := idx[value.GetTypeName()]
		if !ok {
			return fmt.Errorf("unresolved map value message %s", value.GetTypeName())
		}
		f.MapValue = &ValueType{Kind: KindMessage, Ref: ve.ref}
	default:
		f.MapValue = &ValueType{Kind: KindScalar, Scalar: scalarOf(value.GetType())}
	}

	return nil
}

func scalarOf(t descriptorpb.FieldDescriptorProto_Type) ScalarType {
	switch t {
	case descriptorpb.FieldDescriptorProto_TYPE_STRING:
		return ScalarString
	case descriptorpb.FieldDescriptorProto_TYPE_BOOL:
		return ScalarBool
	case descriptorpb.FieldDescriptorProto_TYPE_BYTES:
		return ScalarBytes
	case descriptorpb.FieldDescriptorProto_TYPE_INT32,
		descriptorpb.FieldDescriptorProto_TYPE_SINT32,
		descriptorpb.FieldDescriptorProto_TYPE_SFIXED32:
		return ScalarInt32
	case descriptorpb.FieldDescriptorProto_TYPE_UINT32,
		descriptorpb.FieldDescriptorProto_TYPE_FIXED32:
		return ScalarUint32
	case descriptorpb.FieldDescriptorProto_TYPE_INT64,
		descriptorpb.FieldDescriptorProto_TYPE_SINT64,
		descriptorpb.FieldDescriptorProto_TYPE_SFIXED64:
		return ScalarInt64
	case descriptorpb.FieldDescriptorProto_TYPE_UINT64,
		descriptorpb.FieldDescriptorProto_TYPE_FIXED64:
		return ScalarUint64
	case descriptorpb.FieldDescriptorProto_TYPE_FLOAT:
		return ScalarFloat
	case descriptorpb.FieldDescriptorProto_TYPE_DOUBLE:
		return ScalarDouble
	default:
		return ScalarNone
	}
}
