// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Zodgen Authors

package zod

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/zodgen/cli/internal/descriptor"
)

// chain is the normalized validation chain of one field. Methods are
// appended to the base expression in order; the pattern slots are held
// apart because their rendering depends on whether the field is required.
type chain struct {
	Methods     []string
	Required    bool
	DefinedOnly bool
	Pattern     string

	ItemMethods []string
	ItemPattern string
	ItemNotIn   []int64
}

// extractor reads the annotation payload of fields. It fails safe: any
// decode error yields an empty chain and a logged warning, never an abort.
type extractor struct {
	log zerolog.Logger
}

func (e extractor) extract(f *descriptor.Field) chain {
	if len(f.Rules) == 0 {
		return chain{}
	}

	rules, err := descriptor.DecodeFieldRules(f.Rules)
	if err != nil {
		e.log.Warn().Str("field", f.Name).Err(err).
			Msg("skipping undecodable validation rules")
		return chain{}
	}

	c := chain{Required: rules.Required}

	switch rules.Kind {
	case descriptor.RuleFloat, descriptor.RuleDouble:
		c.Methods = floatMethods(rules.Float)
	case descriptor.RuleInt32:
		c.Methods = intMethods(rules.Int)
	case descriptor.RuleInt64:
		c.Methods = bigintSignedMethods(rules.Int)
	case descriptor.RuleUint32:
		c.Methods = uintMethods(rules.Uint)
	case descriptor.RuleUint64:
		c.Methods = bigintUnsignedMethods(rules.Uint)
	case descriptor.RuleBool:
		c.Methods = boolMethods(rules.Bool)
	case descriptor.RuleString:
		c.Methods, c.Pattern = stringMethods(rules.String)
	case descriptor.RuleBytes:
		c.Methods = bytesMethods(rules.Bytes)
	case descriptor.RuleEnum:
		c.DefinedOnly = rules.Enum.DefinedOnly
		c.Methods = enumMethods(rules.Enum)
	case descriptor.RuleRepeated:
		c.Methods = repeatedMethods(rules.Repeated)
		fillItemChain(&c, rules.Repeated.Items)
	case descriptor.RuleMap:
		c.Methods = mapMethods(rules.Map)
	}

	return c
}

// fillItemChain applies the per-item processors of a repeated rule to the
// chain's item-level slots. Field-level slots are never touched here.
func fillItemChain(c *chain, items *descriptor.FieldRules) {
	if items == nil {
		return
	}

	switch items.Kind {
	case descriptor.RuleFloat, descriptor.RuleDouble:
		c.ItemMethods = floatMethods(items.Float)
	case descriptor.RuleInt32:
		c.ItemMethods = intMethods(items.Int)
	case descriptor.RuleInt64:
		c.ItemMethods = bigintSignedMethods(items.Int)
	case descriptor.RuleUint32:
		c.ItemMethods = uintMethods(items.Uint)
	case descriptor.RuleUint64:
		c.ItemMethods = bigintUnsignedMethods(items.Uint)
	case descriptor.RuleString:
		c.ItemMethods, c.ItemPattern = stringMethods(items.String)
	case descriptor.RuleEnum:
		if items.Enum.DefinedOnly {
			c.ItemMethods = append(c.ItemMethods, definedOnlyRefine)
		}
		if len(items.Enum.In) > 0 {
			c.ItemMethods = append(c.ItemMethods, inRefine(joinInts(items.Enum.In)))
		}
		c.ItemNotIn = items.Enum.NotIn
	}
}

const definedOnlyRefine = `.refine((v) => v !== 0, { message: "enum value must be defined" })`

// Suffix order is significant: lower bound, upper bound, equality,
// inclusion, exclusion, then well-known format. Later refinements report
// against already-narrowed values.

func floatMethods(r *descriptor.FloatRules) []string {
	var out []string
	if r.HasGt {
		out = append(out, ".gt("+formatFloat(r.Gt)+")")
	} else if r.HasGte {
		out = append(out, ".gte("+formatFloat(r.Gte)+")")
	}
	if r.HasLt {
		out = append(out, ".lt("+formatFloat(r.Lt)+")")
	} else if r.HasLte {
		out = append(out, ".lte("+formatFloat(r.Lte)+")")
	}
	if r.Const != 0 {
		out = append(out, eqRefine(formatFloat(r.Const)))
	}
	if len(r.In) > 0 {
		out = append(out, inRefine(joinFloats(r.In)))
	}
	if len(r.NotIn) > 0 {
		out = append(out, notInRefine(joinFloats(r.NotIn)))
	}
	return out
}

func intMethods(r *descriptor.IntRules) []string {
	var out []string
	if r.HasGt {
		out = append(out, ".gt("+strconv.FormatInt(r.Gt, 10)+")")
	} else if r.HasGte {
		out = append(out, ".gte("+strconv.FormatInt(r.Gte, 10)+")")
	}
	if r.HasLt {
		out = append(out, ".lt("+strconv.FormatInt(r.Lt, 10)+")")
	} else if r.HasLte {
		out = append(out, ".lte("+strconv.FormatInt(r.Lte, 10)+")")
	}
	if r.Const != 0 {
		out = append(out, eqRefine(strconv.FormatInt(r.Const, 10)))
	}
	if len(r.In) > 0 {
		out = append(out, inRefine(joinInts(r.In)))
	}
	if len(r.NotIn) > 0 {
		out = append(out, notInRefine(joinInts(r.NotIn)))
	}
	return out
}

func uintMethods(r *descriptor.UintRules) []string {
	var out []string
	if r.HasGt {
		out = append(out, ".gt("+strconv.FormatUint(r.Gt, 10)+")")
	} else if r.HasGte {
		out = append(out, ".gte("+strconv.FormatUint(r.Gte, 10)+")")
	}
	if r.HasLt {
		out = append(out, ".lt("+strconv.FormatUint(r.Lt, 10)+")")
	} else if r.HasLte {
		out = append(out, ".lte("+strconv.FormatUint(r.Lte, 10)+")")
	}
	if r.Const != 0 {
		out = append(out, eqRefine(strconv.FormatUint(r.Const, 10)))
	}
	if len(r.In) > 0 {
		out = append(out, inRefine(joinUints(r.In)))
	}
	if len(r.NotIn) > 0 {
		out = append(out, notInRefine(joinUints(r.NotIn)))
	}
	return out
}

// The 64-bit families compare through BigInt because the field's runtime
// representation is the string encoding. Constraint constants arrive as
// native integers and are rendered as bigint literals to keep the emitted
// comparison type-consistent.

func bigintSignedMethods(r *descriptor.IntRules) []string {
	var out []string
	if r.HasGt {
		out = append(out, bigintRefine(">", strconv.FormatInt(r.Gt, 10), "greater than "+strconv.FormatInt(r.Gt, 10)))
	} else if r.HasGte {
		out = append(out, bigintRefine(">=", strconv.FormatInt(r.Gte, 10), "at least "+strconv.FormatInt(r.Gte, 10)))
	}
	if r.HasLt {
		out = append(out, bigintRefine("<", strconv.FormatInt(r.Lt, 10), "less than "+strconv.FormatInt(r.Lt, 10)))
	} else if r.HasLte {
		out = append(out, bigintRefine("<=", strconv.FormatInt(r.Lte, 10), "at most "+strconv.FormatInt(r.Lte, 10)))
	}
	if r.Const != 0 {
		out = append(out, bigintRefine("===", strconv.FormatInt(r.Const, 10), "equal to "+strconv.FormatInt(r.Const, 10)))
	}
	if len(r.In) > 0 {
		out = append(out, bigintInRefine(joinBigints(r.In), false))
	}
	if len(r.NotIn) > 0 {
		out = append(out, bigintInRefine(joinBigints(r.NotIn), true))
	}
	return out
}

func bigintUnsignedMethods(r *descriptor.UintRules) []string {
	var out []string
	if r.HasGt {
		out = append(out, bigintRefine(">", strconv.FormatUint(r.Gt, 10), "greater than "+strconv.FormatUint(r.Gt, 10)))
	} else if r.HasGte {
		out = append(out, bigintRefine(">=", strconv.FormatUint(r.Gte, 10), "at least "+strconv.FormatUint(r.Gte, 10)))
	}
	if r.HasLt {
		out = append(out, bigintRefine("<", strconv.FormatUint(r.Lt, 10), "less than "+strconv.FormatUint(r.Lt, 10)))
	} else if r.HasLte {
		out = append(out, bigintRefine("<=", strconv.FormatUint(r.Lte, 10), "at most "+strconv.FormatUint(r.Lte, 10)))
	}
	if r.Const != 0 {
		out = append(out, bigintRefine("===", strconv.FormatUint(r.Const, 10), "equal to "+strconv.FormatUint(r.Const, 10)))
	}
	if len(r.In) > 0 {
		out = append(out, bigintInRefine(joinBiguints(r.In), false))
	}
	if len(r.NotIn) > 0 {
		out = append(out, bigintInRefine(joinBiguints(r.NotIn), true))
	}
	return out
}

// boolMethods emits the equality refinement whenever the bool arm is
// present; a false constant is not suppressed the way numeric zeros are.
func boolMethods(r *descriptor.BoolRules) []string {
	return []string{fmt.Sprintf(
		`.refine((v) => v === %t, { message: "value must be %t" })`, r.Const, r.Const)}
}

func stringMethods(r *descriptor.StringRules) (methods []string, pattern string) {
	if r.MinLen != 0 {
		methods = append(methods, ".min("+strconv.FormatUint(r.MinLen, 10)+")")
	}
	if r.MaxLen != 0 {
		methods = append(methods, ".max("+strconv.FormatUint(r.MaxLen, 10)+")")
	}
	if r.Len != 0 {
		methods = append(methods, ".length("+strconv.FormatUint(r.Len, 10)+")")
	}
	if r.Prefix != "" {
		methods = append(methods, ".startsWith("+jsString(r.Prefix)+")")
	}
	if r.Suffix != "" {
		methods = append(methods, ".endsWith("+jsString(r.Suffix)+")")
	}
	if r.Contains != "" {
		methods = append(methods, ".includes("+jsString(r.Contains)+")")
	}
	if wk := wellKnownMethod(r.Format); wk != "" {
		methods = append(methods, wk)
	}
	return methods, r.Pattern
}

const hostnamePattern = `^(?=.{1,253}\.?$)[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`

func wellKnownMethod(f descriptor.WellKnown) string {
	switch f {
	case descriptor.FormatEmail:
		return ".email()"
	case descriptor.FormatHostname:
		return ".regex(/" + hostnamePattern + "/)"
	case descriptor.FormatIP:
		return ".ip()"
	case descriptor.FormatIPv4:
		return `.ip({ version: "v4" })`
	case descriptor.FormatIPv6:
		return `.ip({ version: "v6" })`
	case descriptor.FormatURI:
		return ".url()"
	case descriptor.FormatUUID:
		return ".uuid()"
	default:
		return ""
	}
}

func bytesMethods(r *descriptor.BytesRules) []string {
	var out []string
	if r.MinLen != 0 {
		out = append(out, fmt.Sprintf(
			`.refine((v) => v.length >= %d, { message: "buffer must have at least %d bytes" })`,
			r.MinLen, r.MinLen))
	}
	if r.MaxLen != 0 {
		out = append(out, fmt.Sprintf(
			`.refine((v) => v.length <= %d, { message: "buffer must have at most %d bytes" })`,
			r.MaxLen, r.MaxLen))
	}
	return out
}

func enumMethods(r *descriptor.EnumRules) []string {
	var out []string
	if len(r.In) > 0 {
		out = append(out, inRefine(joinInts(r.In)))
	}
	if len(r.NotIn) > 0 {
		out = append(out, notInRefine(joinInts(r.NotIn)))
	}
	return out
}

func repeatedMethods(r *descriptor.RepeatedRules) []string {
	var out []string
	if r.MinItems != 0 {
		out = append(out, ".min("+strconv.FormatUint(r.MinItems, 10)+")")
	}
	if r.MaxItems != 0 {
		out = append(out, ".max("+strconv.FormatUint(r.MaxItems, 10)+")")
	}
	if r.Unique {
		out = append(out, `.refine((v) => new Set(v).size === v.length, { message: "items must be unique" })`)
	}
	return out
}

func mapMethods(r *descriptor.MapRules) []string {
	var out []string
	if r.MinPairs != 0 {
		out = append(out, fmt.Sprintf(
			`.refine((v) => Object.keys(v).length >= %d, { message: "map must have at least %d entries" })`,
			r.MinPairs, r.MinPairs))
	}
	if r.MaxPairs != 0 {
		out = append(out, fmt.Sprintf(
			`.refine((v) => Object.keys(v).length <= %d, { message: "map must have at most %d entries" })`,
			r.MaxPairs, r.MaxPairs))
	}
	return out
}

func eqRefine(v string) string {
	return fmt.Sprintf(`.refine((v) => v === %s, { message: "value must equal %s" })`, v, v)
}

func inRefine(list string) string {
	return fmt.Sprintf(`.refine((v) => [%s].includes(v), { message: "value must be in [%s]" })`, list, list)
}

func notInRefine(list string) string {
	return fmt.Sprintf(`.refine((v) => ![%s].includes(v), { message: "value must not be in [%s]" })`, list, list)
}

func bigintRefine(op, v, desc string) string {
	return fmt.Sprintf(`.refine((v) => BigInt(v) %s %sn, { message: "value must be %s" })`, op, v, desc)
}

func bigintInRefine(list string, negate bool) string {
	if negate {
		return fmt.Sprintf(`.refine((v) => ![%s].includes(BigInt(v)), { message: "value must not be in [%s]" })`, list, list)
	}
	return fmt.Sprintf(`.refine((v) => [%s].includes(BigInt(v)), { message: "value must be in [%s]" })`, list, list)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func joinFloats(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = formatFloat(v)
	}
	return strings.Join(parts, ", ")
}

func joinInts(vals []int64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return strings.Join(parts, ", ")
}

func joinUints(vals []uint64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatUint(v, 10)
	}
	return strings.Join(parts, ", ")
}

func joinBigints(vals []int64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatInt(v, 10) + "n"
	}
	return strings.Join(parts, ", ")
}

func joinBiguints(vals []uint64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatUint(v, 10) + "n"
	}
	return strings.Join(parts, ", ")
}

// jsString renders a Go string as a double-quoted JavaScript literal.
func jsString(s string) string {
	return strconv.Quote(s)
}
