package dsl

import (
	genval "github.com/codingwatching/genval"
)

// Enum builds a codec over a string-kinded type whose value space is a fixed
// set. The encoding is the bare string itself, constrained by a OneOf on the
// schema; decoding a string outside the set fails the same way an unknown
// union discriminator does.
func Enum[T ~string](values ...T) genval.Codec[T] {
	raw := make([]string, len(values))
	for i, v := range values {
		raw[i] = string(v)
	}
	return enumCodec[T]{
		schema: genval.StringSchema(genval.OneOf(raw...)),
		values: raw,
	}
}

type enumCodec[T ~string] struct {
	schema genval.Schema
	values []string
}

func (c enumCodec[T]) Schema() genval.Schema { return c.schema }

func (c enumCodec[T]) Encode(v T) (genval.Content, error) {
	return genval.StringValue(string(v)), nil
}

func (c enumCodec[T]) Decode(ct genval.Content) (T, error) {
	var zero T
	s, err := ct.AsString()
	if err != nil {
		return zero, err
	}
	for _, v := range c.values {
		if v == s {
			return T(s), nil
		}
	}
	return zero, genval.IssueOf("", genval.CodeDiscriminatorUnknown, map[string]any{"value": s})
}
