// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Zodgen Authors

package zod

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zodgen/cli/internal/descriptor"
	"github.com/zodgen/cli/internal/generate"
)

func testOpts() generate.Options {
	return generate.Options{Logger: zerolog.Nop()}
}

func generateFile(t *testing.T, f *descriptor.File, opts generate.Options) *generate.Unit {
	t.Helper()
	g := &Generator{}
	unit, err := g.Generate(f, opts)
	require.NoError(t, err)
	return unit
}

func TestGenerator_Registered(t *testing.T) {
	g, err := generate.Get("zod")

	require.NoError(t, err)
	assert.Equal(t, "zod", g.Name())
	assert.Equal(t, "_zod.ts", g.Suffix())
}

func TestGenerate_FullFile(t *testing.T) {
	required := appendVarint(nil, 1, 1)

	file := &descriptor.File{
		Path:    "acme/v1/user",
		Package: "acme.v1",
		Enums: []*descriptor.Enum{{
			Name: "Status",
			File: "acme/v1/user",
			Values: []descriptor.EnumValue{
				{Name: "STATUS_UNSPECIFIED", Number: 0},
				{Name: "STATUS_ACTIVE", Number: 1},
			},
		}},
		Messages: []*descriptor.Message{{
			Name: "User",
			File: "acme/v1/user",
			Fields: []*descriptor.Field{
				{Name: "userId", Kind: descriptor.KindScalar, Scalar: descriptor.ScalarString, Rules: required},
				{Name: "status", Kind: descriptor.KindEnum, Ref: descriptor.TypeRef{Name: "Status", File: "acme/v1/user"}},
				{Name: "address", Kind: descriptor.KindMessage, Ref: descriptor.TypeRef{Name: "Address", File: "acme/common/address"}},
			},
		}},
	}

	unit := generateFile(t, file, testOpts())

	require.NotNil(t, unit)
	assert.Equal(t, "acme/v1/user_zod.ts", unit.Path)
	assert.Equal(t, "acme/v1/user.proto", unit.Source)

	out := string(unit.Render())
	assert.Contains(t, out, `import { z } from "zod";`)
	assert.Contains(t, out, `import { AddressSchema } from "../common/address_zod";`)
	assert.Contains(t, out, "export const StatusSchema = z.union([z.literal(0), z.literal(1)]);")
	assert.Contains(t, out, "export type Status = z.infer<typeof StatusSchema>;")
	assert.Contains(t, out, "userId: z.string(),")
	assert.Contains(t, out, "status: StatusSchema.optional(),")
	assert.Contains(t, out, "address: AddressSchema.optional(),")
	assert.Contains(t, out, "export type User = z.infer<typeof UserSchema>;")

	// Enums precede messages.
	assert.Less(t, strings.Index(out, "StatusSchema"), strings.Index(out, "UserSchema"))
}

func TestGenerate_EnumMaps(t *testing.T) {
	file := &descriptor.File{
		Path: "acme/v1/color",
		Enums: []*descriptor.Enum{{
			Name: "Color",
			File: "acme/v1/color",
			Values: []descriptor.EnumValue{
				{Name: "COLOR_UNSPECIFIED", Number: 0},
				{Name: "COLOR_RED", Number: 1},
				{Name: "COLOR_BLUE", Number: 2},
			},
		}},
	}

	out := string(generateFile(t, file, testOpts()).Render())

	assert.Contains(t, out, "export const colorToName: Record<number, string> = {")
	assert.Contains(t, out, `  0: "COLOR_UNSPECIFIED",`)
	assert.Contains(t, out, `  2: "COLOR_BLUE",`)
	assert.Contains(t, out, "export const colorFromName: Record<string, number> = {")
	assert.Contains(t, out, `  "COLOR_RED": 1,`)
	// Zero value omitted from the reverse map.
	assert.NotContains(t, out, `"COLOR_UNSPECIFIED": 0`)
}

func TestGenerate_DependencyOrder(t *testing.T) {
	file := &descriptor.File{
		Path: "acme/v1/order",
		Messages: []*descriptor.Message{
			{
				Name: "A",
				File: "acme/v1/order",
				Fields: []*descriptor.Field{{
					Name: "b", Kind: descriptor.KindMessage,
					Ref: descriptor.TypeRef{Name: "B", File: "acme/v1/order"},
				}},
			},
			{Name: "B", File: "acme/v1/order"},
		},
	}

	unit := generateFile(t, file, testOpts())

	require.Len(t, unit.Decls, 2)
	assert.Equal(t, "BSchema", unit.Decls[0].Name)
	assert.Equal(t, "ASchema", unit.Decls[1].Name)
}

func TestGenerate_RecursiveMessage(t *testing.T) {
	file := &descriptor.File{
		Path: "acme/v1/tree",
		Messages: []*descriptor.Message{{
			Name: "Tree",
			File: "acme/v1/tree",
			Fields: []*descriptor.Field{
				{Name: "label", Kind: descriptor.KindScalar, Scalar: descriptor.ScalarString},
				{Name: "children", Kind: descriptor.KindMessage, Repeated: true,
					Ref: descriptor.TypeRef{Name: "Tree", File: "acme/v1/tree"}},
			},
		}},
	}

	out := string(generateFile(t, file, testOpts()).Render())

	assert.Contains(t, out, "export type Tree = {")
	assert.Contains(t, out, "  children?: Tree[];")
	assert.Contains(t, out, "export const TreeSchema: z.ZodType<Tree> = z.lazy(() =>")
	assert.Contains(t, out, "children: z.array(z.lazy(() => TreeSchema)).optional(),")
	// Exactly one schema binding.
	assert.Equal(t, 1, strings.Count(out, "export const TreeSchema"))
}

func TestGenerate_MutualRecursion(t *testing.T) {
	file := &descriptor.File{
		Path: "acme/v1/cycle",
		Messages: []*descriptor.Message{
			{
				Name: "A",
				File: "acme/v1/cycle",
				Fields: []*descriptor.Field{{
					Name: "b", Kind: descriptor.KindMessage,
					Ref: descriptor.TypeRef{Name: "B", File: "acme/v1/cycle"},
				}},
			},
			{
				Name: "B",
				File: "acme/v1/cycle",
				Fields: []*descriptor.Field{{
					Name: "a", Kind: descriptor.KindMessage,
					Ref: descriptor.TypeRef{Name: "A", File: "acme/v1/cycle"},
				}},
			},
		},
	}

	unit := generateFile(t, file, testOpts())
	out := string(unit.Render())

	require.Len(t, unit.Decls, 2)
	assert.Contains(t, out, "export const ASchema: z.ZodType<A> = z.lazy(() =>")
	assert.Contains(t, out, "export const BSchema: z.ZodType<B> = z.lazy(() =>")
	assert.Contains(t, out, "b: z.lazy(() => BSchema).optional(),")
	assert.Contains(t, out, "a: z.lazy(() => ASchema).optional(),")
}

func TestGenerate_SkipsResponseMessages(t *testing.T) {
	file := &descriptor.File{
		Path: "acme/v1/rpc",
		Messages: []*descriptor.Message{
			{Name: "GetUserRequest", File: "acme/v1/rpc"},
			{Name: "GetUserResponse", File: "acme/v1/rpc"},
		},
	}

	unit := generateFile(t, file, testOpts())
	require.Len(t, unit.Decls, 1)
	assert.Equal(t, "GetUserRequestSchema", unit.Decls[0].Name)

	opts := testOpts()
	opts.IncludeResponses = true
	unit = generateFile(t, file, opts)
	assert.Len(t, unit.Decls, 2)
}

func TestGenerate_SkipsThirdPartyFiles(t *testing.T) {
	wellKnown := &descriptor.File{
		Path:     "google/protobuf/timestamp",
		Messages: []*descriptor.Message{{Name: "Timestamp", File: "google/protobuf/timestamp"}},
	}
	unit := generateFile(t, wellKnown, testOpts())
	assert.Nil(t, unit)

	vendored := &descriptor.File{
		Path:     "vendor/thing",
		Messages: []*descriptor.Message{{Name: "Thing", File: "vendor/thing"}},
	}
	opts := testOpts()
	opts.ThirdParty = []string{"vendor"}
	unit = generateFile(t, vendored, opts)
	assert.Nil(t, unit)
}

func TestGenerate_EmptyFileSkipped(t *testing.T) {
	unit := generateFile(t, &descriptor.File{Path: "acme/v1/empty"}, testOpts())

	assert.Nil(t, unit)
}

func TestGenerate_NestedMessageImportsCollected(t *testing.T) {
	file := &descriptor.File{
		Path: "acme/v1/outer",
		Messages: []*descriptor.Message{{
			Name: "Outer",
			File: "acme/v1/outer",
			Nested: []*descriptor.Message{{
				Name: "Outer_Inner",
				File: "acme/v1/outer",
				Fields: []*descriptor.Field{{
					Name: "address", Kind: descriptor.KindMessage,
					Ref: descriptor.TypeRef{Name: "Address", File: "acme/common/address"},
				}},
			}},
		}},
	}

	out := string(generateFile(t, file, testOpts()).Render())

	assert.Contains(t, out, `import { AddressSchema } from "../common/address_zod";`)
}

func TestGenerate_DeprecatedMessageAnnotated(t *testing.T) {
	file := &descriptor.File{
		Path: "acme/v1/old",
		Messages: []*descriptor.Message{{
			Name: "Legacy", File: "acme/v1/old", Deprecated: true,
		}},
	}

	out := string(generateFile(t, file, testOpts()).Render())

	assert.Contains(t, out, "/** @deprecated */\nexport const LegacySchema = z.object({")
}

func TestComposeExpr_OptionalPattern(t *testing.T) {
	expr := composeExpr(
		mapping{Expr: "z.string()"},
		chain{Pattern: `^[a-z]+$`},
	)

	assert.Equal(t,
		`z.string().refine((v) => v === "" || /^[a-z]+$/.test(v), { message: "value must match pattern" }).optional()`,
		expr)
}

func TestComposeExpr_RequiredPattern(t *testing.T) {
	expr := composeExpr(
		mapping{Expr: "z.string()"},
		chain{Pattern: `^[a-z]+$`, Required: true},
	)

	assert.Equal(t, `z.string().regex(/^[a-z]+$/)`, expr)
}

func TestComposeExpr_PatternWithSlashes(t *testing.T) {
	expr := composeExpr(
		mapping{Expr: "z.string()"},
		chain{Pattern: `^/api/v1/`, Required: true},
	)

	assert.Equal(t, `z.string().regex(/^\/api\/v1\//)`, expr)
}

func TestComposeExpr_OptionalPatternWithSlashes(t *testing.T) {
	expr := composeExpr(
		mapping{Expr: "z.string()"},
		chain{Pattern: `^/api/`},
	)

	assert.Equal(t,
		`z.string().refine((v) => v === "" || /^\/api\//.test(v), { message: "value must match pattern" }).optional()`,
		expr)
}

func TestComposeExpr_ItemPatternWithSlashes(t *testing.T) {
	expr := composeExpr(
		mapping{Elem: "z.string()", Expr: "z.array(z.string())"},
		chain{ItemPattern: `^/v\d+/`, Required: true},
	)

	assert.Equal(t, `z.array(z.string().regex(/^\/v\d+\//))`, expr)
}

func TestRegexLiteral(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `^[a-z]+$`, `^[a-z]+$`},
		{"bare slash", `^/api/v1/`, `^\/api\/v1\/`},
		{"already escaped slash untouched", `^\/api\/`, `^\/api\/`},
		{"escape class untouched", `^\d+\.\d+$`, `^\d+\.\d+$`},
		{"literal newline", "a\nb", `a\nb`},
		{"carriage return", "a\rb", `a\rb`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, regexLiteral(tt.in))
		})
	}
}

func TestComposeExpr_ItemMethodsSplicedIntoArray(t *testing.T) {
	expr := composeExpr(
		mapping{Elem: "z.number().int()", Expr: "z.array(z.number().int())"},
		chain{Methods: []string{".min(1)"}, ItemMethods: []string{".gt(0)"}, Required: true},
	)

	assert.Equal(t, "z.array(z.number().int().gt(0)).min(1)", expr)
}

func TestComposeExpr_DefinedOnlyEnum(t *testing.T) {
	expr := composeExpr(
		mapping{Expr: "StatusSchema"},
		chain{DefinedOnly: true, Required: true},
	)

	assert.Equal(t,
		`StatusSchema.refine((v) => v !== 0, { message: "enum value must be defined" })`,
		expr)
}
