package dsl

import (
	"reflect"

	genval "github.com/codingwatching/genval"
)

// ObjectOf starts a record codec builder for struct type T. Declared field
// order becomes the property order of the schema and of every encoded
// object.
func ObjectOf[T any](name string) *ObjectBuilder[T] { return &ObjectBuilder[T]{name: name} }

// ObjectBuilder accumulates the declared properties of a record type.
type ObjectBuilder[T any] struct {
	name        string
	description string
	fields      []fieldDef
	err         error
}

type fieldDef struct {
	name        string
	codec       AnyCodec
	description string
	optional    bool
}

// Describe attaches an object description exported to the grammar.
func (b *ObjectBuilder[T]) Describe(d string) *ObjectBuilder[T] {
	b.description = d
	return b
}

// Field registers a property with its codec and returns a field step for
// chaining. Properties are required unless marked Optional.
func (b *ObjectBuilder[T]) Field(name string, c AnyCodec) *FieldStep[T] {
	b.fields = append(b.fields, fieldDef{name: name, codec: c})
	return &FieldStep[T]{b: b}
}

// Bind resolves declared properties against T's struct fields and returns
// the immutable codec.
func (b *ObjectBuilder[T]) Bind() (genval.Codec[T], error) { return bindObject[T](b) }

// MustBind is Bind for declaration-time codecs, panicking on error.
func (b *ObjectBuilder[T]) MustBind() genval.Codec[T] {
	c, err := b.Bind()
	if err != nil {
		panic(err)
	}
	return c
}

// FieldStep scopes chained refinements to the most recently declared field.
type FieldStep[T any] struct{ b *ObjectBuilder[T] }

// Describe attaches a property description exported to the grammar.
func (f *FieldStep[T]) Describe(d string) *FieldStep[T] {
	f.b.fields[len(f.b.fields)-1].description = d
	return f
}

// Optional marks the property optional: an absent key decodes identically to
// an explicit Null, and the property never appears in the grammar's required
// list.
func (f *FieldStep[T]) Optional() *FieldStep[T] {
	f.b.fields[len(f.b.fields)-1].optional = true
	return f
}

func (f *FieldStep[T]) Field(name string, c AnyCodec) *FieldStep[T] { return f.b.Field(name, c) }
func (f *FieldStep[T]) Bind() (genval.Codec[T], error)             { return f.b.Bind() }
func (f *FieldStep[T]) MustBind() genval.Codec[T]                  { return f.b.MustBind() }

func bindObject[T any](b *ObjectBuilder[T]) (genval.Codec[T], error) {
	if b.err != nil {
		return nil, b.err
	}
	var zero T
	rt := reflect.TypeOf(zero)
	if rt != nil && rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt == nil || rt.Kind() != reflect.Struct {
		return nil, genval.Issues{{Code: genval.CodeKindMismatch, Message: "ObjectOf[T] requires struct T"}}
	}
	idxByName := make(map[string]int, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		key := genval.ResolveStructKey(sf)
		if key == "-" || key == "" {
			continue
		}
		idxByName[key] = i
	}

	bound := make([]boundField, 0, len(b.fields))
	props := make([]genval.NamedProperty, 0, len(b.fields))
	for _, fd := range b.fields {
		idx, ok := idxByName[fd.name]
		if !ok {
			return nil, genval.Issues{{
				Path:    "/" + fd.name,
				Code:    genval.CodeRequired,
				Message: "no struct field resolves property '" + fd.name + "'",
			}}
		}
		bound = append(bound, boundField{name: fd.name, codec: fd.codec, index: idx, optional: fd.optional})
		props = append(props, genval.NamedProperty{Name: fd.name, Property: genval.Property{
			Schema:      fd.codec.schema,
			Description: fd.description,
			Optional:    fd.optional,
		}})
	}
	return &objectCodec[T]{
		schema: genval.NewObjectSchema(b.name, b.description, props...),
		rtype:  rt,
		fields: bound,
	}, nil
}

type boundField struct {
	name     string
	codec    AnyCodec
	index    int
	optional bool
}

type objectCodec[T any] struct {
	schema *genval.Object
	rtype  reflect.Type
	fields []boundField
}

func (c *objectCodec[T]) Schema() genval.Schema { return c.schema }

// Encode emits every declared property: an optional nil encodes to explicit
// Null, never to key omission.
func (c *objectCodec[T]) Encode(v T) (genval.Content, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	members := make([]genval.Member, 0, len(c.fields))
	for _, f := range c.fields {
		ec, err := f.codec.encode(rv.Field(f.index).Interface())
		if err != nil {
			return genval.Content{}, rebase("/"+f.name, err)
		}
		members = append(members, genval.Member{Name: f.name, Value: ec})
	}
	return genval.ObjectValue(members...), nil
}

func (c *objectCodec[T]) Decode(ct genval.Content) (T, error) {
	var zero T
	if _, err := ct.AsObject(); err != nil {
		return zero, err
	}
	rv := reflect.New(c.rtype).Elem()
	for _, f := range c.fields {
		val, ok := ct.Member(f.name)
		if !ok || (f.optional && val.IsNull()) {
			if f.optional {
				continue // absent optional decodes identically to explicit Null
			}
			return zero, genval.IssueOf("/"+f.name, genval.CodeRequired, map[string]any{"property": f.name})
		}
		dv, err := f.codec.decode(val)
		if err != nil {
			return zero, rebase("/"+f.name, err)
		}
		if err := setField(rv.Field(f.index), dv, f.name); err != nil {
			return zero, err
		}
	}
	return rv.Interface().(T), nil
}

// DecodePartial fills every slot the fragment yields a decodable value for
// and leaves the rest unknown; it never fails. Nested records recurse into
// their own partial decode so in-progress children surface early.
func (c *objectCodec[T]) DecodePartial(ct genval.Content) (T, genval.PresenceMap) {
	var zero T
	if ct.Kind() != genval.KindObject {
		return zero, nil
	}
	rv := reflect.New(c.rtype).Elem()
	pm := genval.PresenceMap{"/": genval.PresenceSeen}
	for _, f := range c.fields {
		val, ok := ct.Member(f.name)
		if !ok {
			continue // unknown: no value observed yet
		}
		path := "/" + f.name
		if val.IsNull() {
			pm[path] |= genval.PresenceSeen | genval.PresenceWasNull
			continue
		}
		if f.codec.partial != nil {
			pv, cpm := f.codec.partial(val)
			if cpm == nil {
				continue
			}
			_ = setField(rv.Field(f.index), pv, f.name)
			for k, bits := range genval.RebasePresence(path, cpm) {
				pm[k] |= bits
			}
			continue
		}
		dv, err := f.codec.decode(val)
		if err != nil {
			continue // transient; the slot keeps its prior snapshot
		}
		_ = setField(rv.Field(f.index), dv, f.name)
		pm[path] |= genval.PresenceSeen
	}
	return rv.Interface().(T), pm
}

func setField(fv reflect.Value, dv any, name string) error {
	if !fv.CanSet() {
		return nil
	}
	if dv == nil {
		fv.Set(reflect.Zero(fv.Type()))
		return nil
	}
	vv := reflect.ValueOf(dv)
	switch {
	case vv.Type().AssignableTo(fv.Type()):
		fv.Set(vv)
	case vv.Type().ConvertibleTo(fv.Type()):
		fv.Set(vv.Convert(fv.Type()))
	default:
		return genval.IssueOf("/"+name, genval.CodeKindMismatch, map[string]any{
			"expected": fv.Type().String(), "actual": vv.Type().String(),
		})
	}
	return nil
}
