package dsl

import (
	genval "github.com/codingwatching/genval"
)

// AnyCodec adapts a strongly typed Codec[T] to an any-typed wrapper for the
// object and union builders. It keeps the schema and the optional partial
// decode capability of the original codec.
type AnyCodec struct {
	schema   genval.Schema
	encode   func(v any) (genval.Content, error)
	decode   func(c genval.Content) (any, error)
	partial  func(c genval.Content) (any, genval.PresenceMap)
	nullable bool
}

// nullability marker implemented by Nullable codecs; used to reject nullable
// array items at construction time.
type nullableMarker interface{ nullableCodec() }

// Of lifts a typed codec into an AnyCodec for Field/Case registration.
func Of[T any](c genval.Codec[T]) AnyCodec {
	ad := AnyCodec{
		schema: c.Schema(),
		encode: func(v any) (genval.Content, error) {
			tv, ok := v.(T)
			if !ok {
				return genval.Content{}, genval.IssueOf("", genval.CodeKindMismatch, map[string]any{
					"expected": "bound field type", "actual": "incompatible value",
				})
			}
			return c.Encode(tv)
		},
		decode: func(ct genval.Content) (any, error) { return c.Decode(ct) },
	}
	if pd, ok := any(c).(genval.PartialDecoder[T]); ok {
		ad.partial = func(ct genval.Content) (any, genval.PresenceMap) {
			return pd.DecodePartial(ct)
		}
	}
	if _, ok := any(c).(nullableMarker); ok {
		ad.nullable = true
	}
	return ad
}

// Schema returns the schema of the wrapped codec.
func (ad AnyCodec) Schema() genval.Schema { return ad.schema }
