package dsl

import (
	"math"

	genval "github.com/codingwatching/genval"
)

// String returns the string codec with optional refinements.
func String(cs ...genval.StringConstraint) genval.Codec[string] { return StringOf[string](cs...) }

// StringOf is String projected to a named underlying-string type.
func StringOf[T ~string](cs ...genval.StringConstraint) genval.Codec[T] {
	return stringCodec[T]{schema: genval.StringSchema(cs...)}
}

type stringCodec[T ~string] struct{ schema genval.Schema }

func (c stringCodec[T]) Schema() genval.Schema { return c.schema }

func (c stringCodec[T]) Encode(v T) (genval.Content, error) {
	return genval.StringValue(string(v)), nil
}

func (c stringCodec[T]) Decode(ct genval.Content) (T, error) {
	s, err := ct.AsString()
	if err != nil {
		var zero T
		return zero, err
	}
	return T(s), nil
}

// Int returns the integer codec; decode validates integrality of the
// interchange number.
func Int(cs ...genval.NumberConstraint) genval.Codec[int64] { return IntOf[int64](cs...) }

// IntOf is Int projected to a named underlying-integer type.
func IntOf[T ~int | ~int32 | ~int64](cs ...genval.NumberConstraint) genval.Codec[T] {
	return intCodec[T]{schema: genval.IntegerSchema(cs...)}
}

type intCodec[T ~int | ~int32 | ~int64] struct{ schema genval.Schema }

func (c intCodec[T]) Schema() genval.Schema { return c.schema }

func (c intCodec[T]) Encode(v T) (genval.Content, error) {
	return genval.NumberValue(float64(v)), nil
}

func (c intCodec[T]) Decode(ct genval.Content) (T, error) {
	var zero T
	f, err := ct.AsNumber()
	if err != nil {
		return zero, err
	}
	if f != math.Trunc(f) {
		return zero, genval.IssueOf("", genval.CodeKindMismatch, map[string]any{
			"expected": "integer", "actual": "number",
		})
	}
	return T(int64(f)), nil
}

// Float returns the floating-point codec.
func Float(cs ...genval.NumberConstraint) genval.Codec[float64] { return FloatOf[float64](cs...) }

// FloatOf is Float projected to a named underlying-float type.
func FloatOf[T ~float64](cs ...genval.NumberConstraint) genval.Codec[T] {
	return floatCodec[T]{schema: genval.NumberSchema(cs...)}
}

type floatCodec[T ~float64] struct{ schema genval.Schema }

func (c floatCodec[T]) Schema() genval.Schema { return c.schema }

func (c floatCodec[T]) Encode(v T) (genval.Content, error) {
	return genval.NumberValue(float64(v)), nil
}

func (c floatCodec[T]) Decode(ct genval.Content) (T, error) {
	f, err := ct.AsNumber()
	if err != nil {
		var zero T
		return zero, err
	}
	return T(f), nil
}

// Bool returns the boolean codec.
func Bool() genval.Codec[bool] { return BoolOf[bool]() }

// BoolOf is Bool projected to a named underlying-bool type.
func BoolOf[T ~bool]() genval.Codec[T] {
	return boolCodec[T]{schema: genval.BooleanSchema()}
}

type boolCodec[T ~bool] struct{ schema genval.Schema }

func (c boolCodec[T]) Schema() genval.Schema { return c.schema }

func (c boolCodec[T]) Encode(v T) (genval.Content, error) {
	return genval.BoolValue(bool(v)), nil
}

func (c boolCodec[T]) Decode(ct genval.Content) (T, error) {
	b, err := ct.AsBool()
	if err != nil {
		var zero T
		return zero, err
	}
	return T(b), nil
}
