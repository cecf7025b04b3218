package dsl

import (
	"fmt"
	"reflect"

	genval "github.com/codingwatching/genval"
)

// UnionOf starts a tagged-union codec builder over an interface (or other
// sum-like) type U. Each case encodes to an object carrying the reserved
// "type" discriminator member first, then its payload members. Cases are
// registered with the free functions Case, ValueCase and UnitCase because Go
// methods cannot introduce the per-case type parameter.
func UnionOf[U any](name string) *UnionBuilder[U] { return &UnionBuilder[U]{name: name} }

// UnionBuilder accumulates the declared cases of a tagged union.
type UnionBuilder[U any] struct {
	name        string
	description string
	cases       []unionCase[U]
	err         error
}

type unionCase[U any] struct {
	name   string
	schema genval.Schema
	// match reports whether u belongs to this case and, if so, its full
	// object encoding including the discriminator.
	match  func(u U) (genval.Content, bool, error)
	decode func(ct genval.Content) (U, error)
}

// Describe attaches a union description exported to the grammar.
func (b *UnionBuilder[U]) Describe(d string) *UnionBuilder[U] {
	b.description = d
	return b
}

// Bind returns the immutable union codec.
func (b *UnionBuilder[U]) Bind() (genval.Codec[U], error) {
	if b.err != nil {
		return nil, b.err
	}
	alts := make([]genval.Schema, len(b.cases))
	for i, cs := range b.cases {
		alts[i] = cs.schema
	}
	return &unionCodec[U]{
		schema: genval.NewUnionSchema(b.name, b.description, alts...),
		cases:  b.cases,
	}, nil
}

// MustBind is Bind for declaration-time codecs, panicking on error.
func (b *UnionBuilder[U]) MustBind() genval.Codec[U] {
	c, err := b.Bind()
	if err != nil {
		panic(err)
	}
	return c
}

// discriminatorProperty is the constant-string "type" member of a case.
func discriminatorProperty(name string) genval.NamedProperty {
	return genval.NamedProperty{
		Name:     genval.DiscriminatorKey,
		Property: genval.Property{Schema: genval.StringSchema(genval.Constant(name))},
	}
}

// Case registers a record-payload case: payload must be an object codec, and
// the case encodes as the payload object with the discriminator prepended.
// At encode time the case matches by the dynamic type C of the union value.
func Case[U any, C any](b *UnionBuilder[U], name string, payload genval.Codec[C], wrap func(C) U) *UnionBuilder[U] {
	obj, ok := payload.Schema().(*genval.Object)
	if !ok {
		b.err = genval.Issues{{
			Code:    genval.CodeUnsupportedConstraint,
			Message: "union case '" + name + "' requires an object payload codec",
		}}
		return b
	}
	props := []genval.NamedProperty{discriminatorProperty(name)}
	for p := obj.Properties().Oldest(); p != nil; p = p.Next() {
		props = append(props, genval.NamedProperty{Name: p.Key, Property: p.Value})
	}
	caseSchema := genval.NewObjectSchema(name, obj.Description, props...)

	b.cases = append(b.cases, unionCase[U]{
		name:   name,
		schema: caseSchema,
		match: func(u U) (genval.Content, bool, error) {
			cv, ok := any(u).(C)
			if !ok {
				return genval.Content{}, false, nil
			}
			enc, err := payload.Encode(cv)
			if err != nil {
				return genval.Content{}, true, err
			}
			members, err := enc.AsObject()
			if err != nil {
				return genval.Content{}, true, err
			}
			out := []genval.Member{{Name: genval.DiscriminatorKey, Value: genval.StringValue(name)}}
			for p := members.Oldest(); p != nil; p = p.Next() {
				out = append(out, genval.Member{Name: p.Key, Value: p.Value})
			}
			return genval.ObjectValue(out...), true, nil
		},
		decode: func(ct genval.Content) (U, error) {
			// the payload codec ignores the extra discriminator member
			cv, err := payload.Decode(ct)
			if err != nil {
				var zero U
				return zero, err
			}
			return wrap(cv), nil
		},
	})
	return b
}

// ValueCase registers a case with one unlabeled payload parameter, stored
// under the synthesized member name "value" in declaration order.
func ValueCase[U any, P any](b *UnionBuilder[U], name string, param genval.Codec[P], wrap func(P) U, unwrap func(U) (P, bool)) *UnionBuilder[U] {
	key := genval.SynthesizedName(0)
	caseSchema := genval.NewObjectSchema(name, "",
		discriminatorProperty(name),
		genval.NamedProperty{Name: key, Property: genval.Property{Schema: param.Schema()}},
	)
	b.cases = append(b.cases, unionCase[U]{
		name:   name,
		schema: caseSchema,
		match: func(u U) (genval.Content, bool, error) {
			pv, ok := unwrap(u)
			if !ok {
				return genval.Content{}, false, nil
			}
			enc, err := param.Encode(pv)
			if err != nil {
				return genval.Content{}, true, err
			}
			return genval.ObjectValue(
				genval.Member{Name: genval.DiscriminatorKey, Value: genval.StringValue(name)},
				genval.Member{Name: key, Value: enc},
			), true, nil
		},
		decode: func(ct genval.Content) (U, error) {
			var zero U
			val, ok := ct.Member(key)
			if !ok {
				return zero, genval.IssueOf("/"+key, genval.CodeRequired, map[string]any{"property": key})
			}
			pv, err := param.Decode(val)
			if err != nil {
				return zero, rebase("/"+key, err)
			}
			return wrap(pv), nil
		},
	})
	return b
}

// UnitCase registers a payload-free case degenerating to a bare
// discriminator object {"type": name}.
func UnitCase[U any](b *UnionBuilder[U], name string, value U) *UnionBuilder[U] {
	caseSchema := genval.NewObjectSchema(name, "", discriminatorProperty(name))
	b.cases = append(b.cases, unionCase[U]{
		name:   name,
		schema: caseSchema,
		match: func(u U) (genval.Content, bool, error) {
			if !reflect.DeepEqual(u, value) {
				return genval.Content{}, false, nil
			}
			return genval.ObjectValue(
				genval.Member{Name: genval.DiscriminatorKey, Value: genval.StringValue(name)},
			), true, nil
		},
		decode: func(ct genval.Content) (U, error) { return value, nil },
	})
	return b
}

type unionCodec[U any] struct {
	schema *genval.Union
	cases  []unionCase[U]
}

func (c *unionCodec[U]) Schema() genval.Schema { return c.schema }

func (c *unionCodec[U]) Encode(u U) (genval.Content, error) {
	for _, cs := range c.cases {
		ct, ok, err := cs.match(u)
		if err != nil {
			return genval.Content{}, err
		}
		if ok {
			return ct, nil
		}
	}
	return genval.Content{}, genval.IssueOf("/"+genval.DiscriminatorKey, genval.CodeDiscriminatorUnknown, map[string]any{
		"value": fmt.Sprintf("%T", u),
	})
}

func (c *unionCodec[U]) Decode(ct genval.Content) (U, error) {
	var zero U
	if _, err := ct.AsObject(); err != nil {
		return zero, err
	}
	tagNode, ok := ct.Member(genval.DiscriminatorKey)
	if !ok {
		return zero, genval.IssueOf("/"+genval.DiscriminatorKey, genval.CodeDiscriminatorMissing, nil)
	}
	tag, err := tagNode.AsString()
	if err != nil {
		return zero, rebase("/"+genval.DiscriminatorKey, err)
	}
	for _, cs := range c.cases {
		if cs.name == tag {
			return cs.decode(ct)
		}
	}
	return zero, genval.IssueOf("/"+genval.DiscriminatorKey, genval.CodeDiscriminatorUnknown, map[string]any{
		"value": tag,
	})
}
