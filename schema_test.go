package genval_test

import (
	"testing"

	genval "github.com/codingwatching/genval"
)

func TestPrimitive_WithAccumulatesConstraints(t *testing.T) {
	base := genval.StringSchema(genval.Pattern("^a"))
	refined, err := base.With(genval.OneOf("aa", "ab"))
	if err != nil {
		t.Fatalf("With: %v", err)
	}
	if len(base.Constraints) != 1 {
		t.Fatalf("With mutated the receiver: %d constraints", len(base.Constraints))
	}
	p := refined.(*genval.Primitive)
	if len(p.Constraints) != 2 {
		t.Fatalf("want 2 accumulated constraints, got %d", len(p.Constraints))
	}
}

func TestPrimitive_WithRejectsForeignTarget(t *testing.T) {
	if _, err := genval.IntegerSchema().With(genval.Pattern("x")); !genval.HasCode(err, genval.CodeUnsupportedConstraint) {
		t.Fatalf("string constraint on integer: want unsupported_constraint, got %v", err)
	}
	if _, err := genval.StringSchema().With(genval.Minimum(1)); !genval.HasCode(err, genval.CodeUnsupportedConstraint) {
		t.Fatalf("numeric constraint on string: want unsupported_constraint, got %v", err)
	}
	if _, err := genval.BooleanSchema().With(genval.Minimum(1)); !genval.HasCode(err, genval.CodeUnsupportedConstraint) {
		t.Fatalf("numeric constraint on boolean: want unsupported_constraint, got %v", err)
	}
}

func TestArray_WithElementRewritesItem(t *testing.T) {
	base := genval.ArrayOf(genval.IntegerSchema())
	refined, err := base.With(genval.Elements(genval.Minimum(0)), genval.MaxItems(3))
	if err != nil {
		t.Fatalf("With: %v", err)
	}
	a := refined.(*genval.Array)
	item := a.Item.(*genval.Primitive)
	if len(item.Constraints) != 1 {
		t.Fatalf("element constraint not pushed into item: %d", len(item.Constraints))
	}
	if len(a.Constraints) != 1 {
		t.Fatalf("count constraint not kept on array: %d", len(a.Constraints))
	}
	if len(base.Item.(*genval.Primitive).Constraints) != 0 || len(base.Constraints) != 0 {
		t.Fatalf("With mutated the receiver")
	}
}

func TestArray_WithElementRejectsIncompatibleInner(t *testing.T) {
	base := genval.ArrayOf(genval.BooleanSchema())
	if _, err := base.With(genval.Elements(genval.Pattern("x"))); !genval.HasCode(err, genval.CodeUnsupportedConstraint) {
		t.Fatalf("want unsupported_constraint, got %v", err)
	}
}

func TestObjectAndUnion_RejectConstraints(t *testing.T) {
	obj := genval.NewObjectSchema("Thing", "")
	if _, err := obj.With(genval.MinItems(1)); !genval.HasCode(err, genval.CodeUnsupportedConstraint) {
		t.Fatalf("object With: want unsupported_constraint, got %v", err)
	}
	u := genval.NewUnionSchema("Choice", "", obj)
	if _, err := u.With(genval.Pattern("x")); !genval.HasCode(err, genval.CodeUnsupportedConstraint) {
		t.Fatalf("union With: want unsupported_constraint, got %v", err)
	}
}

func TestObject_PropertyOrderAndLookup(t *testing.T) {
	o := genval.NewObjectSchema("Point", "",
		genval.NamedProperty{Name: "x", Property: genval.Property{Schema: genval.NumberSchema()}},
		genval.NamedProperty{Name: "y", Property: genval.Property{Schema: genval.NumberSchema()}},
	)
	var names []string
	for p := o.Properties().Oldest(); p != nil; p = p.Next() {
		names = append(names, p.Key)
	}
	if len(names) != 2 || names[0] != "x" || names[1] != "y" {
		t.Fatalf("property order: %v", names)
	}
	if _, ok := o.Property("z"); ok {
		t.Fatalf("unexpected property z")
	}
}
