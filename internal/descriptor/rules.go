// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Zodgen Authors

package descriptor

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Wire layout of the validation rules extension (FieldOptions extension
// RulesFieldNumber). One arm of the kind oneof may be set alongside the
// top-level required flag.
//
//	message FieldRules {
//	  bool required = 1;
//	  oneof kind {
//	    FloatRules    float    = 2;
//	    FloatRules    double   = 3;
//	    IntRules      int32    = 4;
//	    IntRules      int64    = 5;
//	    UintRules     uint32   = 6;
//	    UintRules     uint64   = 7;
//	    BoolRules     bool     = 8;
//	    StringRules   string   = 9;
//	    BytesRules    bytes    = 10;
//	    EnumRules     enum     = 11;
//	    RepeatedRules repeated = 12;
//	    MapRules      map      = 13;
//	  }
//	}

// RuleKind identifies which arm of the rules oneof is populated.
type RuleKind int

const (
	RuleNone RuleKind = iota
	RuleFloat
	RuleDouble
	RuleInt32
	RuleInt64
	RuleUint32
	RuleUint64
	RuleBool
	RuleString
	RuleBytes
	RuleEnum
	RuleRepeated
	RuleMap
)

// FieldRules is the decoded validation annotation of one field.
// Exactly one of the arm pointers is non-nil when Kind != RuleNone;
// RuleFloat/RuleDouble share Float, the integer kinds share Int/Uint.
type FieldRules struct {
	Required bool
	Kind     RuleKind

	Float    *FloatRules
	Int      *IntRules
	Uint     *UintRules
	Bool     *BoolRules
	String   *StringRules
	Bytes    *BytesRules
	Enum     *EnumRules
	Repeated *RepeatedRules
	Map      *MapRules
}

// Bound comparators carry explicit presence (Has* flags): the selectors are
// proto2-style optional fields, so an explicit zero bound is distinct from
// an absent one.

// FloatRules constrains float and double fields. Values are wire doubles.
type FloatRules struct {
	Const float64
	Lt    float64
	Lte   float64
	Gt    float64
	Gte   float64
	In    []float64
	NotIn []float64

	HasLt, HasLte, HasGt, HasGte bool
}

// IntRules constrains the signed integer families.
type IntRules struct {
	Const int64
	Lt    int64
	Lte   int64
	Gt    int64
	Gte   int64
	In    []int64
	NotIn []int64

	HasLt, HasLte, HasGt, HasGte bool
}

// UintRules constrains the unsigned integer families.
type UintRules struct {
	Const uint64
	Lt    uint64
	Lte   uint64
	Gt    uint64
	Gte   uint64
	In    []uint64
	NotIn []uint64

	HasLt, HasLte, HasGt, HasGte bool
}

// BoolRules constrains bool fields. Presence of the arm itself means the
// constant applies, so a false constant is still an active constraint.
type BoolRules struct {
	Const bool
}

// WellKnown is the mutually exclusive string format selector.
type WellKnown int

const (
	FormatNone WellKnown = iota
	FormatEmail
	FormatHostname
	FormatIP
	FormatIPv4
	FormatIPv6
	FormatURI
	FormatUUID
)

// StringRules constrains string fields. Length bounds are big-integer
// counts on the wire.
type StringRules struct {
	MinLen   uint64
	MaxLen   uint64
	Len      uint64
	Pattern  string
	Prefix   string
	Suffix   string
	Contains string
	Format   WellKnown
}

// BytesRules constrains bytes fields.
type BytesRules struct {
	MinLen uint64
	MaxLen uint64
}

// EnumRules constrains enum fields.
type EnumRules struct {
	DefinedOnly bool
	In          []int64
	NotIn       []int64
}

// RepeatedRules constrains repeated fields, including nested per-item rules.
type RepeatedRules struct {
	MinItems uint64
	MaxItems uint64
	Unique   bool
	Items    *FieldRules
}

// MapRules constrains map fields by pair count.
type MapRules struct {
	MinPairs uint64
	MaxPairs uint64
}

// DecodeFieldRules decodes a rules payload extracted from field options.
// A nil or empty payload decodes to an empty FieldRules value.
func DecodeFieldRules(b []byte) (*FieldRules, error) {
	r := &FieldRules{}

	err := eachField(b, func(num protowire.Number, typ protowire.Type, v wireValue) error {
		switch num {
		case 1:
			r.Required = v.bool()
			return nil
		case 2, 3:
			sub, err := decodeFloatRules(v.bytes)
			if err != nil {
				return err
			}
			r.Float = sub
			r.Kind = RuleFloat
			if num == 3 {
				r.Kind = RuleDouble
			}
			return nil
		case 4, 5:
			sub, err := decodeIntRules(v.bytes)
			if err != nil {
				return err
			}
			r.Int = sub
			r.Kind = RuleInt32
			if num == 5 {
				r.Kind = RuleInt64
			}
			return nil
		case 6, 7:
			sub, err := decodeUintRules(v.bytes)
			if err != nil {
				return err
			}
			r.Uint = sub
			r.Kind = RuleUint32
			if num == 7 {
				r.Kind = RuleUint64
			}
			return nil
		case 8:
			sub := &BoolRules{}
			err := eachField(v.bytes, func(n protowire.Number, _ protowire.Type, fv wireValue) error {
				if n == 1 {
					sub.Const = fv.bool()
				}
				return nil
			})
			if err != nil {
				return err
			}
			r.Bool = sub
			r.Kind = RuleBool
			return nil
		case 9:
			sub, err := decodeStringRules(v.bytes)
			if err != nil {
				return err
			}
			r.String = sub
			r.Kind = RuleString
			return nil
		case 10:
			sub := &BytesRules{}
			err := eachField(v.bytes, func(n protowire.Number, _ protowire.Type, fv wireValue) error {
				switch n {
				case 1:
					sub.MinLen = fv.varint
				case 2:
					sub.MaxLen = fv.varint
				}
				return nil
			})
			if err != nil {
				return err
			}
			r.Bytes = sub
			r.Kind = RuleBytes
			return nil
		case 11:
			sub, err := decodeEnumRules(v.bytes)
			if err != nil {
				return err
			}
			r.Enum = sub
			r.Kind = RuleEnum
			return nil
		case 12:
			sub, err := decodeRepeatedRules(v.bytes)
			if err != nil {
				return err
			}
			r.Repeated = sub
			r.Kind = RuleRepeated
			return nil
		case 13:
			sub := &MapRules{}
			err := eachField(v.bytes, func(n protowire.Number, _ protowire.Type, fv wireValue) error {
				switch n {
				case 1:
					sub.MinPairs = fv.varint
				case 2:
					sub.MaxPairs = fv.varint
				}
				return nil
			})
			if err != nil {
				return err
			}
			r.Map = sub
			r.Kind = RuleMap
			return nil
		default:
			return nil
		}
	})
	if err != nil {
		return nil, err
	}

	return r, nil
}

func decodeFloatRules(b []byte) (*FloatRules, error) {
	sub := &FloatRules{}
	err := eachField(b, func(n protowire.Number, typ protowire.Type, v wireValue) error {
		switch n {
		case 1:
			sub.Const = v.double()
		case 2:
			sub.Lt = v.double()
			sub.HasLt = true
		case 3:
			sub.Lte = v.double()
			sub.HasLte = true
		case 4:
			sub.Gt = v.double()
			sub.HasGt = true
		case 5:
			sub.Gte = v.double()
			sub.HasGte = true
		case 6:
			vals, err := v.packedDoubles(typ)
			if err != nil {
				return err
			}
			sub.In = append(sub.In, vals...)
		case 7:
			vals, err := v.packedDoubles(typ)
			if err != nil {
				return err
			}
			sub.NotIn = append(sub.NotIn, vals...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func decodeIntRules(b []byte) (*IntRules, error) {
	sub := &IntRules{}
	err := eachField(b, func(n protowire.Number, typ protowire.Type, v wireValue) error {
		switch n {
		case 1:
			sub.Const = int64(v.varint)
		case 2:
			sub.Lt = int64(v.varint)
			sub.HasLt = true
		case 3:
			sub.Lte = int64(v.varint)
			sub.HasLte = true
		case 4:
			sub.Gt = int64(v.varint)
			sub.HasGt = true
		case 5:
			sub.Gte = int64(v.varint)
			sub.HasGte = true
		case 6:
			vals, err := v.packedVarints(typ)
			if err != nil {
				return err
			}
			for _, x := range vals {
				sub.In = append(sub.In, int64(x))
			}
		case 7:
			vals, err := v.packedVarints(typ)
			if err != nil {
				return err
			}
			for _, x := range vals {
				sub.NotIn = append(sub.NotIn, int64(x))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func decodeUintRules(b []byte) (*UintRules, error) {
	sub := &UintRules{}
	err := eachField(b, func(n protowire.Number, typ protowire.Type, v wireValue) error {
		switch n {
		case 1:
			sub.Const = v.varint
		case 2:
			sub.Lt = v.varint
			sub.HasLt = true
		case 3:
			sub.Lte = v.varint
			sub.HasLte = true
		case 4:
			sub.Gt = v.varint
			sub.HasGt = true
		case 5:
			sub.Gte = v.varint
			sub.HasGte = true
		case 6:
			vals, err := v.packedVarints(typ)
			if err != nil {
				return err
			}
			sub.In = append(sub.In, vals...)
		case 7:
			vals, err := v.packedVarints(typ)
			if err != nil {
				return err
			}
			sub.NotIn = append(sub.NotIn, vals...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func decodeStringRules(b []byte) (*StringRules, error) {
	sub := &StringRules{}
	err := eachField(b, func(n protowire.Number, _ protowire.Type, v wireValue) error {
		switch n {
		case 1:
			sub.MinLen = v.varint
		case 2:
			sub.MaxLen = v.varint
		case 3:
			sub.Len = v.varint
		case 4:
			sub.Pattern = string(v.bytes)
		case 5:
			sub.Prefix = string(v.bytes)
		case 6:
			sub.Suffix = string(v.bytes)
		case 7:
			sub.Contains = string(v.bytes)
		case 8:
			sub.setFormat(v.bool(), FormatEmail)
		case 9:
			sub.setFormat(v.bool(), FormatHostname)
		case 10:
			sub.setFormat(v.bool(), FormatIP)
		case 11:
			sub.setFormat(v.bool(), FormatIPv4)
		case 12:
			sub.setFormat(v.bool(), FormatIPv6)
		case 13:
			sub.setFormat(v.bool(), FormatURI)
		case 14:
			sub.setFormat(v.bool(), FormatUUID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *StringRules) setFormat(on bool, f WellKnown) {
	if on {
		s.Format = f
	}
}

func decodeEnumRules(b []byte) (*EnumRules, error) {
	sub := &EnumRules{}
	err := eachField(b, func(n protowire.Number, typ protowire.Type, v wireValue) error {
		switch n {
		case 1:
			sub.DefinedOnly = v.bool()
		case 2:
			vals, err := v.packedVarints(typ)
			if err != nil {
				return err
			}
			for _, x := range vals {
				sub.In = append(sub.In, int64(x))
			}
		case 3:
			vals, err := v.packedVarints(typ)
			if err != nil {
				return err
			}
			for _, x := range vals {
				sub.NotIn = append(sub.NotIn, int64(x))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func decodeRepeatedRules(b []byte) (*RepeatedRules, error) {
	sub := &RepeatedRules{}
	err := eachField(b, func(n protowire.Number, _ protowire.Type, v wireValue) error {
		switch n {
		case 1:
			sub.MinItems = v.varint
		case 2:
			sub.MaxItems = v.varint
		case 3:
			sub.Unique = v.bool()
		case 4:
			items, err := DecodeFieldRules(v.bytes)
			if err != nil {
				return err
			}
			sub.Items = items
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// wireValue carries one decoded wire value; which member is meaningful
// depends on the wire type handed to the visitor.
type wireValue struct {
	varint uint64
	fixed  uint64
	bytes  []byte
}

func (v wireValue) bool() bool { return v.varint != 0 }

func (v wireValue) double() float64 { return math.Float64frombits(v.fixed) }

// packedDoubles reads a repeated double field in either packed or
// one-value-per-tag encoding.
func (v wireValue) packedDoubles(typ protowire.Type) ([]float64, error) {
	if typ == protowire.Fixed64Type {
		return []float64{v.double()}, nil
	}
	b := v.bytes
	var out []float64
	for len(b) > 0 {
		x, n := protowire.ConsumeFixed64(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		out = append(out, math.Float64frombits(x))
		b = b[n:]
	}
	return out, nil
}

// packedVarints reads a repeated varint field in either packed or
// one-value-per-tag encoding.
func (v wireValue) packedVarints(typ protowire.Type) ([]uint64, error) {
	if typ == protowire.VarintType {
		return []uint64{v.varint}, nil
	}
	b := v.bytes
	var out []uint64
	for len(b) > 0 {
		x, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		out = append(out, x)
		b = b[n:]
	}
	return out, nil
}

// eachField walks a wire-encoded message and hands every field to visit.
// Unknown field numbers are skipped by the visitors, not here, so that
// sub-messages can reuse the loop.
func eachField(b []byte, visit func(protowire.Number, protowire.Type, wireValue) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		var v wireValue
		switch typ {
		case protowire.VarintType:
			x, m := protowire.ConsumeVarint(b)
			if m < 0 {
				return protowire.ParseError(m)
			}
			v.varint = x
			b = b[m:]
		case protowire.Fixed64Type:
			x, m := protowire.ConsumeFixed64(b)
			if m < 0 {
				return protowire.ParseError(m)
			}
			v.fixed = x
			b = b[m:]
		case protowire.Fixed32Type:
			x, m := protowire.ConsumeFixed32(b)
			if m < 0 {
				return protowire.ParseError(m)
			}
			v.fixed = uint64(x)
			b = b[m:]
		case protowire.BytesType:
			x, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return protowire.ParseError(m)
			}
			v.bytes = x
			b = b[m:]
		default:
			return fmt.Errorf("unsupported wire type %d", typ)
		}

		if err := visit(num, typ, v); err != nil {
			return err
		}
	}
	return nil
}
