package genval_test

import (
	"strings"
	"testing"

	genval "github.com/codingwatching/genval"
)

func mustProject(t *testing.T, s genval.Schema, b genval.Backend) string {
	t.Helper()
	doc, err := genval.Project(s, genval.ProjectOpt{Backend: b})
	if err != nil {
		t.Fatalf("Project(%v): %v", b, err)
	}
	data, err := doc.JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	return string(data)
}

func TestProject_PrimitiveConstraints(t *testing.T) {
	s := genval.StringSchema(genval.Pattern("^[a-z]+$"))
	got := mustProject(t, s, genval.BackendOpenAI)
	want := `{"type":"string","pattern":"^[a-z]+$"}`
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}

	n := genval.IntegerSchema(genval.Range(1, 10))
	got = mustProject(t, n, genval.BackendOpenAI)
	if !strings.Contains(got, `"minimum":1`) || !strings.Contains(got, `"maximum":10`) {
		t.Fatalf("range lost: %s", got)
	}
}

func TestProject_ConstantBecomesSingletonEnum(t *testing.T) {
	got := mustProject(t, genval.StringSchema(genval.Constant("fixed")), genval.BackendGemini)
	if !strings.Contains(got, `"enum":["fixed"]`) {
		t.Fatalf("constant not projected as enum: %s", got)
	}
}

func TestProject_LaterConstraintWinsPerField(t *testing.T) {
	s := genval.StringSchema(genval.OneOf("a", "b"), genval.OneOf("c"))
	got := mustProject(t, s, genval.BackendOpenAI)
	if !strings.Contains(got, `"enum":["c"]`) {
		t.Fatalf("later OneOf must win: %s", got)
	}

	n := genval.NumberSchema(genval.Minimum(1), genval.Minimum(5), genval.Maximum(9))
	got = mustProject(t, n, genval.BackendOpenAI)
	if !strings.Contains(got, `"minimum":5`) || !strings.Contains(got, `"maximum":9`) {
		t.Fatalf("per-field collision policy broken: %s", got)
	}
}

func pointSchema() *genval.Object {
	return genval.NewObjectSchema("Point", "a 2d point",
		genval.NamedProperty{Name: "x", Property: genval.Property{Schema: genval.NumberSchema()}},
		genval.NamedProperty{Name: "y", Property: genval.Property{Schema: genval.NumberSchema()}},
		genval.NamedProperty{Name: "label", Property: genval.Property{Schema: genval.StringSchema(), Optional: true}},
	)
}

func TestProject_ObjectRequiredAndOrder(t *testing.T) {
	got := mustProject(t, pointSchema(), genval.BackendAnthropic)
	if !strings.Contains(got, `"required":["x","y"]`) {
		t.Fatalf("required list must keep declaration order and skip optionals: %s", got)
	}
	if !strings.Contains(got, `"additionalProperties":false`) {
		t.Fatalf("objects must be closed: %s", got)
	}
	xi := strings.Index(got, `"x":`)
	yi := strings.Index(got, `"y":`)
	li := strings.Index(got, `"label":`)
	if xi < 0 || yi < 0 || li < 0 || !(xi < yi && yi < li) {
		t.Fatalf("property order lost: %s", got)
	}
}

func TestProject_ArrayWithCounts(t *testing.T) {
	s := genval.ArrayOf(genval.StringSchema(), genval.MinItems(1), genval.MaxItems(4))
	got := mustProject(t, s, genval.BackendGemini)
	if !strings.Contains(got, `"minItems":1`) || !strings.Contains(got, `"maxItems":4`) {
		t.Fatalf("counts lost: %s", got)
	}
	if !strings.Contains(got, `"items":{"type":"string"}`) {
		t.Fatalf("items lost: %s", got)
	}
}

func TestProject_UnionAnyOf(t *testing.T) {
	u := genval.NewUnionSchema("Shape", "",
		genval.NewObjectSchema("circle", "",
			genval.NamedProperty{Name: "type", Property: genval.Property{Schema: genval.StringSchema(genval.Constant("circle"))}},
			genval.NamedProperty{Name: "radius", Property: genval.Property{Schema: genval.NumberSchema()}},
		),
		genval.NewObjectSchema("square", "",
			genval.NamedProperty{Name: "type", Property: genval.Property{Schema: genval.StringSchema(genval.Constant("square"))}},
			genval.NamedProperty{Name: "side", Property: genval.Property{Schema: genval.NumberSchema()}},
		),
	)
	got := mustProject(t, u, genval.BackendAnthropic)
	if !strings.Contains(got, `"anyOf":[`) {
		t.Fatalf("union must project to anyOf: %s", got)
	}
	if !strings.Contains(got, `"enum":["circle"]`) || !strings.Contains(got, `"enum":["square"]`) {
		t.Fatalf("discriminator constants lost: %s", got)
	}
}

func TestProject_EmptyUnionUnprojectable(t *testing.T) {
	_, err := genval.Project(genval.NewUnionSchema("Never", ""), genval.ProjectOpt{Backend: genval.BackendOpenAI})
	if !genval.HasCode(err, genval.CodeUnprojectableSchema) {
		t.Fatalf("want unprojectable_schema, got %v", err)
	}
}

func TestProject_SharedObjectHoistsForOpenAI(t *testing.T) {
	pt := pointSchema()
	root := genval.NewObjectSchema("Segment", "",
		genval.NamedProperty{Name: "from", Property: genval.Property{Schema: pt}},
		genval.NamedProperty{Name: "to", Property: genval.Property{Schema: pt}},
	)
	got := mustProject(t, root, genval.BackendOpenAI)
	if !strings.Contains(got, `"$ref":"#/$defs/Point"`) {
		t.Fatalf("shared object must be hoisted: %s", got)
	}
	if !strings.Contains(got, `"$defs":`) {
		t.Fatalf("defs table missing: %s", got)
	}
	if strings.Count(got, `"x":`) != 1 {
		t.Fatalf("definition body must be emitted once: %s", got)
	}
}

func TestProject_SharedObjectInlinesForInlineBackends(t *testing.T) {
	pt := pointSchema()
	root := genval.NewObjectSchema("Segment", "",
		genval.NamedProperty{Name: "from", Property: genval.Property{Schema: pt}},
		genval.NamedProperty{Name: "to", Property: genval.Property{Schema: pt}},
	)
	for _, b := range []genval.Backend{genval.BackendAnthropic, genval.BackendGemini} {
		got := mustProject(t, root, b)
		if strings.Contains(got, "$ref") || strings.Contains(got, "$defs") {
			t.Fatalf("%v must inline shared objects: %s", b, got)
		}
		if strings.Count(got, `"x":`) != 2 {
			t.Fatalf("%v expected both occurrences inlined: %s", b, got)
		}
	}
}

// cyclicNode builds Node{next?: Node} referring to itself.
func cyclicNode() *genval.Object {
	node := genval.NewObjectSchema("Node", "",
		genval.NamedProperty{Name: "id", Property: genval.Property{Schema: genval.StringSchema()}},
	)
	node.Properties().Set("next", genval.Property{Schema: node, Optional: true})
	return node
}

func TestProject_CycleRefsForOpenAI(t *testing.T) {
	got := mustProject(t, cyclicNode(), genval.BackendOpenAI)
	if !strings.Contains(got, `"$ref":"#/$defs/Node"`) {
		t.Fatalf("cycle must close through a ref: %s", got)
	}
}

func TestProject_CycleUnprojectableInline(t *testing.T) {
	_, err := genval.Project(cyclicNode(), genval.ProjectOpt{Backend: genval.BackendAnthropic})
	if !genval.HasCode(err, genval.CodeUnprojectableSchema) {
		t.Fatalf("inline backend cannot express a cycle, got %v", err)
	}
}

func TestProject_Idempotent(t *testing.T) {
	s := pointSchema()
	a := mustProject(t, s, genval.BackendOpenAI)
	b := mustProject(t, s, genval.BackendOpenAI)
	if a != b {
		t.Fatalf("projection must be pure:\n a=%s\n b=%s", a, b)
	}
}

func TestParseBackend(t *testing.T) {
	for name, want := range map[string]genval.Backend{
		"openai":    genval.BackendOpenAI,
		"anthropic": genval.BackendAnthropic,
		"gemini":    genval.BackendGemini,
	} {
		got, ok := genval.ParseBackend(name)
		if !ok || got != want {
			t.Fatalf("ParseBackend(%q) = %v, %v", name, got, ok)
		}
	}
	if _, ok := genval.ParseBackend("mistral"); ok {
		t.Fatalf("unknown backend must not parse")
	}
}
