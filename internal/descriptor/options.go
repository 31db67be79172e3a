// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Zodgen Authors

package descriptor

import (
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/types/descriptorpb"
)

// RulesFieldNumber is the FieldOptions extension number carrying the
// per-field validation rules message.
const RulesFieldNumber = 7001

// rulesPayload extracts the raw validation rules message from a field's
// options. Descriptor sets are parsed without the extension registered, so
// the payload sits in the options' unknown fields and is located by tag.
func rulesPayload(opts *descriptorpb.FieldOptions) []byte {
	if opts == nil {
		return nil
	}

	b := opts.ProtoReflect().GetUnknown()
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil
		}
		b = b[n:]

		if num == RulesFieldNumber && typ == protowire.BytesType {
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return nil
			}
			return v
		}

		n = protowire.ConsumeFieldValue(num, typ, b)
		if n < 0 {
			return nil
		}
		b = b[n:]
	}

	return nil
}
