package dsl

import (
	genval "github.com/codingwatching/genval"
)

// Nullable wraps a codec so that a nil pointer encodes to explicit Null and
// Null decodes to nil. The schema is the inner schema unchanged: nullability
// is a property-level attribute, not a shape of its own, which is also why a
// nullable array item is rejected at construction (no backend grammar
// expresses it uniformly).
func Nullable[E any](inner genval.Codec[E]) genval.Codec[*E] {
	return nullableCodecT[E]{inner: inner}
}

type nullableCodecT[E any] struct{ inner genval.Codec[E] }

func (nullableCodecT[E]) nullableCodec() {}

func (c nullableCodecT[E]) Schema() genval.Schema { return c.inner.Schema() }

func (c nullableCodecT[E]) Encode(v *E) (genval.Content, error) {
	if v == nil {
		return genval.NullValue(), nil
	}
	return c.inner.Encode(*v)
}

func (c nullableCodecT[E]) Decode(ct genval.Content) (*E, error) {
	if ct.IsNull() {
		return nil, nil
	}
	v, err := c.inner.Decode(ct)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
