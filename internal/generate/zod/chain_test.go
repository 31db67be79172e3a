// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Zodgen Authors

package zod

import (
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/zodgen/cli/internal/descriptor"
)

// Wire builders for annotation payloads (layout in descriptor/rules.go).

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendDouble(b []byte, num protowire.Number, v float64) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, math.Float64bits(v))
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendMessage(b []byte, num protowire.Number, sub []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, sub)
}

func extractRules(t *testing.T, payload []byte) chain {
	t.Helper()
	e := extractor{log: zerolog.Nop()}
	return e.extract(&descriptor.Field{Name: "f", Rules: payload})
}

func TestExtract_NoRules(t *testing.T) {
	c := extractRules(t, nil)

	assert.Empty(t, c.Methods)
	assert.False(t, c.Required)
	assert.Empty(t, c.Pattern)
}

func TestExtract_RequiredStringBounds(t *testing.T) {
	var sub []byte
	sub = appendVarint(sub, 1, 3)  // min_len
	sub = appendVarint(sub, 2, 10) // max_len
	payload := appendVarint(nil, 1, 1)
	payload = appendMessage(payload, 9, sub)

	c := extractRules(t, payload)

	assert.True(t, c.Required)
	assert.Equal(t, []string{".min(3)", ".max(10)"}, c.Methods)
}

func TestExtract_ZeroStringBoundsSuppressed(t *testing.T) {
	var sub []byte
	sub = appendVarint(sub, 1, 2) // min_len
	sub = appendVarint(sub, 2, 0) // max_len: unset sentinel
	payload := appendMessage(nil, 9, sub)

	c := extractRules(t, payload)

	assert.Equal(t, []string{".min(2)"}, c.Methods)
}

func TestExtract_StringAnchorsAndFormat(t *testing.T) {
	var sub []byte
	sub = appendString(sub, 5, "usr_")
	sub = appendString(sub, 6, "-v1")
	sub = appendString(sub, 7, "core")
	sub = appendVarint(sub, 8, 1) // email
	payload := appendMessage(nil, 9, sub)

	c := extractRules(t, payload)

	assert.Equal(t, []string{
		`.startsWith("usr_")`,
		`.endsWith("-v1")`,
		`.includes("core")`,
		".email()",
	}, c.Methods)
}

func TestExtract_PatternHeldApart(t *testing.T) {
	sub := appendString(nil, 4, `^[a-z]+$`)
	payload := appendMessage(nil, 9, sub)

	c := extractRules(t, payload)

	assert.Empty(t, c.Methods)
	assert.Equal(t, `^[a-z]+$`, c.Pattern)
	assert.False(t, c.Required)
}

func TestExtract_Int32ExplicitZeroBound(t *testing.T) {
	// gt carries presence, so an explicit zero still emits.
	sub := appendVarint(nil, 4, 0)
	payload := appendMessage(nil, 4, sub)

	c := extractRules(t, payload)

	assert.Equal(t, []string{".gt(0)"}, c.Methods)
}

func TestExtract_Int32BoundsAndSets(t *testing.T) {
	var sub []byte
	sub = appendVarint(sub, 5, 1)   // gte
	sub = appendVarint(sub, 3, 100) // lte
	sub = appendVarint(sub, 6, 1)   // in, unpacked
	sub = appendVarint(sub, 6, 2)
	sub = appendVarint(sub, 7, 50) // not_in
	payload := appendMessage(nil, 4, sub)

	c := extractRules(t, payload)

	assert.Equal(t, []string{
		".gte(1)",
		".lte(100)",
		`.refine((v) => [1, 2].includes(v), { message: "value must be in [1, 2]" })`,
		`.refine((v) => ![50].includes(v), { message: "value must not be in [50]" })`,
	}, c.Methods)
}

func TestExtract_GtWinsOverGte(t *testing.T) {
	var sub []byte
	sub = appendVarint(sub, 4, 5) // gt
	sub = appendVarint(sub, 5, 1) // gte, ignored
	payload := appendMessage(nil, 4, sub)

	c := extractRules(t, payload)

	assert.Equal(t, []string{".gt(5)"}, c.Methods)
}

func TestExtract_Int64BigintRefines(t *testing.T) {
	var sub []byte
	sub = appendVarint(sub, 4, 0)    // gt
	sub = appendVarint(sub, 3, 9000) // lte
	payload := appendMessage(nil, 5, sub)

	c := extractRules(t, payload)

	assert.Equal(t, []string{
		`.refine((v) => BigInt(v) > 0n, { message: "value must be greater than 0" })`,
		`.refine((v) => BigInt(v) <= 9000n, { message: "value must be at most 9000" })`,
	}, c.Methods)
}

func TestExtract_Uint64ConstAndIn(t *testing.T) {
	var sub []byte
	sub = appendVarint(sub, 1, 7) // const
	sub = appendVarint(sub, 6, 7) // in
	sub = appendVarint(sub, 6, 8)
	payload := appendMessage(nil, 7, sub)

	c := extractRules(t, payload)

	assert.Equal(t, []string{
		`.refine((v) => BigInt(v) === 7n, { message: "value must be equal to 7" })`,
		`.refine((v) => [7n, 8n].includes(BigInt(v)), { message: "value must be in [7n, 8n]" })`,
	}, c.Methods)
}

func TestExtract_DoubleBounds(t *testing.T) {
	var sub []byte
	sub = appendDouble(sub, 4, 0.5)  // gt
	sub = appendDouble(sub, 2, 99.5) // lt
	payload := appendMessage(nil, 3, sub)

	c := extractRules(t, payload)

	assert.Equal(t, []string{".gt(0.5)", ".lt(99.5)"}, c.Methods)
}

func TestExtract_BoolFalseConstStillEmits(t *testing.T) {
	sub := appendVarint(nil, 1, 0)
	payload := appendMessage(nil, 8, sub)

	c := extractRules(t, payload)

	assert.Equal(t, []string{
		`.refine((v) => v === false, { message: "value must be false" })`,
	}, c.Methods)
}

func TestExtract_EnumDefinedOnly(t *testing.T) {
	sub := appendVarint(nil, 1, 1)
	payload := appendMessage(nil, 11, sub)

	c := extractRules(t, payload)

	assert.True(t, c.DefinedOnly)
	assert.Empty(t, c.Methods)
}

func TestExtract_BytesLengthRefines(t *testing.T) {
	var sub []byte
	sub = appendVarint(sub, 1, 16)
	sub = appendVarint(sub, 2, 0) // suppressed
	payload := appendMessage(nil, 10, sub)

	c := extractRules(t, payload)

	assert.Equal(t, []string{
		`.refine((v) => v.length >= 16, { message: "buffer must have at least 16 bytes" })`,
	}, c.Methods)
}

func TestExtract_RepeatedWithItemRules(t *testing.T) {
	itemInt := appendVarint(nil, 4, 0) // gt: 0
	items := appendMessage(nil, 4, itemInt)

	var sub []byte
	sub = appendVarint(sub, 1, 1)  // min_items
	sub = appendVarint(sub, 2, 50) // max_items
	sub = appendVarint(sub, 3, 1)  // unique
	sub = appendMessage(sub, 4, items)
	payload := appendMessage(nil, 12, sub)

	c := extractRules(t, payload)

	assert.Equal(t, []string{
		".min(1)",
		".max(50)",
		`.refine((v) => new Set(v).size === v.length, { message: "items must be unique" })`,
	}, c.Methods)
	assert.Equal(t, []string{".gt(0)"}, c.ItemMethods)
}

func TestExtract_RepeatedItemPatternAndEnumNotIn(t *testing.T) {
	strItems := appendString(nil, 4, `^\w+$`)
	items := appendMessage(nil, 9, strItems)
	sub := appendMessage(nil, 4, items)
	payload := appendMessage(nil, 12, sub)

	c := extractRules(t, payload)
	assert.Equal(t, `^\w+$`, c.ItemPattern)
	assert.Empty(t, c.Methods)

	var enumItems []byte
	enumItems = appendVarint(enumItems, 3, 4)
	enumItems = appendVarint(enumItems, 3, 5)
	items = appendMessage(nil, 11, enumItems)
	sub = appendMessage(nil, 4, items)
	payload = appendMessage(nil, 12, sub)

	c = extractRules(t, payload)
	assert.Equal(t, []int64{4, 5}, c.ItemNotIn)
}

func TestExtract_ZeroMapPairsSuppressed(t *testing.T) {
	var sub []byte
	sub = appendVarint(sub, 1, 0)
	sub = appendVarint(sub, 2, 8)
	payload := appendMessage(nil, 13, sub)

	c := extractRules(t, payload)

	assert.Equal(t, []string{
		`.refine((v) => Object.keys(v).length <= 8, { message: "map must have at most 8 entries" })`,
	}, c.Methods)
}

func TestExtract_UndecodablePayloadYieldsEmptyChain(t *testing.T) {
	// Length-delimited field claiming more bytes than remain.
	c := extractRules(t, []byte{0x4a, 0x05, 0x01})

	assert.Empty(t, c.Methods)
	assert.False(t, c.Required)
	assert.Empty(t, c.Pattern)
}
