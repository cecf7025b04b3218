package genval

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/codingwatching/genval/i18n"
)

// SchemaKind identifies a schema node type.
type SchemaKind int

const (
	SchemaPrimitive SchemaKind = iota
	SchemaArray
	SchemaObject
	SchemaUnion
)

// PrimitiveKind identifies the primitive a schema node generates.
type PrimitiveKind int

const (
	PrimitiveString PrimitiveKind = iota
	PrimitiveInteger
	PrimitiveNumber
	PrimitiveBoolean
)

func (p PrimitiveKind) String() string {
	switch p {
	case PrimitiveString:
		return "string"
	case PrimitiveInteger:
		return "integer"
	case PrimitiveNumber:
		return "number"
	case PrimitiveBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// Schema is the closed declarative grammar for a generatable type. Nodes are
// built once per type at declaration time and are immutable afterwards: With
// returns a rewritten copy and never mutates the receiver.
type Schema interface {
	SchemaKind() SchemaKind
	// With appends constraints to the node (or, for element constraints on an
	// array, to the nested item). Applying a constraint to an incompatible
	// node fails with unsupported_constraint; it is never silently dropped.
	With(cs ...Constraint) (Schema, error)
}

func unsupportedConstraint(hint string) Issues {
	return Issues{{Code: CodeUnsupportedConstraint, Message: i18n.T(CodeUnsupportedConstraint, nil), Hint: hint}}
}

// MustWith is With for declaration-time schemas, panicking on misuse.
func MustWith(s Schema, cs ...Constraint) Schema {
	out, err := s.With(cs...)
	if err != nil {
		panic(err)
	}
	return out
}

// ---- Primitive ----

// Primitive is a leaf schema generating a string/integer/number/boolean.
type Primitive struct {
	Prim        PrimitiveKind
	Constraints []Constraint
}

// StringSchema returns a string primitive with optional refinements.
func StringSchema(cs ...StringConstraint) *Primitive {
	return &Primitive{Prim: PrimitiveString, Constraints: liftString(cs)}
}

// IntegerSchema returns an integer primitive with optional range refinements.
func IntegerSchema(cs ...NumberConstraint) *Primitive {
	return &Primitive{Prim: PrimitiveInteger, Constraints: liftNumber(cs)}
}

// NumberSchema returns a floating-point primitive with optional range
// refinements.
func NumberSchema(cs ...NumberConstraint) *Primitive {
	return &Primitive{Prim: PrimitiveNumber, Constraints: liftNumber(cs)}
}

// BooleanSchema returns a boolean primitive.
func BooleanSchema() *Primitive { return &Primitive{Prim: PrimitiveBoolean} }

func liftString(cs []StringConstraint) []Constraint {
	out := make([]Constraint, len(cs))
	for i, c := range cs {
		out[i] = c
	}
	return out
}

func liftNumber(cs []NumberConstraint) []Constraint {
	out := make([]Constraint, len(cs))
	for i, c := range cs {
		out[i] = c
	}
	return out
}

func (p *Primitive) SchemaKind() SchemaKind { return SchemaPrimitive }

func (p *Primitive) With(cs ...Constraint) (Schema, error) {
	next := &Primitive{Prim: p.Prim, Constraints: append([]Constraint(nil), p.Constraints...)}
	for _, c := range cs {
		switch c.Target() {
		case TargetString:
			if p.Prim != PrimitiveString {
				return nil, unsupportedConstraint("string constraint on " + p.Prim.String())
			}
		case TargetNumeric:
			if p.Prim != PrimitiveInteger && p.Prim != PrimitiveNumber {
				return nil, unsupportedConstraint("numeric constraint on " + p.Prim.String())
			}
		default:
			return nil, unsupportedConstraint("constraint not applicable to a primitive")
		}
		next.Constraints = append(next.Constraints, c)
	}
	return next, nil
}

// ---- Array ----

// Array is a homogeneous array schema; Constraints hold element-count
// refinements only (element refinements live on Item).
type Array struct {
	Item        Schema
	Constraints []Constraint
}

// ArrayOf returns an array schema over the given item schema.
func ArrayOf(item Schema, cs ...CountConstraint) *Array {
	lifted := make([]Constraint, len(cs))
	for i, c := range cs {
		lifted[i] = c
	}
	return &Array{Item: item, Constraints: lifted}
}

func (a *Array) SchemaKind() SchemaKind { return SchemaArray }

func (a *Array) With(cs ...Constraint) (Schema, error) {
	next := &Array{Item: a.Item, Constraints: append([]Constraint(nil), a.Constraints...)}
	for _, c := range cs {
		switch c.Target() {
		case TargetCount:
			next.Constraints = append(next.Constraints, c)
		case TargetElement:
			ec := c.(ElementConstraint)
			item, err := next.Item.With(ec.Inner)
			if err != nil {
				return nil, err
			}
			next.Item = item
		default:
			return nil, unsupportedConstraint("constraint not applicable to an array")
		}
	}
	return next, nil
}

// ---- Object ----

// Property describes one declared object property.
type Property struct {
	Schema      Schema
	Description string
	Optional    bool
}

// Properties is the ordered property map of an object schema.
type Properties = orderedmap.OrderedMap[string, Property]

// NamedProperty pairs a property with its declared name for ordered
// construction.
type NamedProperty struct {
	Name     string
	Property Property
}

// Object is a record schema with ordered, named properties.
type Object struct {
	Name        string
	Description string
	props       *Properties
}

// NewObjectSchema builds an object schema; property order follows declaration
// order and is preserved through projection.
func NewObjectSchema(name, description string, props ...NamedProperty) *Object {
	om := orderedmap.New[string, Property](orderedmap.WithCapacity[string, Property](len(props)))
	for _, p := range props {
		om.Set(p.Name, p.Property)
	}
	return &Object{Name: name, Description: description, props: om}
}

func (o *Object) SchemaKind() SchemaKind { return SchemaObject }

// Properties exposes the ordered property map. Callers must not mutate it.
func (o *Object) Properties() *Properties { return o.props }

// Property looks up a declared property by name.
func (o *Object) Property(name string) (Property, bool) { return o.props.Get(name) }

func (o *Object) With(cs ...Constraint) (Schema, error) {
	return nil, unsupportedConstraint("constraint not applicable to an object")
}

// ---- Union ----

// Union is a tagged-union schema; each alternative is the object (or, for a
// payload-free enum, string) schema of one case.
type Union struct {
	Name         string
	Description  string
	Alternatives []Schema
}

// NewUnionSchema builds a union schema over the given alternatives.
func NewUnionSchema(name, description string, alternatives ...Schema) *Union {
	return &Union{Name: name, Description: description, Alternatives: append([]Schema(nil), alternatives...)}
}

func (u *Union) SchemaKind() SchemaKind { return SchemaUnion }

// With on a union is unsupported: there is no uniform reading of a refinement
// across alternatives, so construction fails rather than guessing.
func (u *Union) With(cs ...Constraint) (Schema, error) {
	return nil, unsupportedConstraint("constraint not applicable to a union")
}
