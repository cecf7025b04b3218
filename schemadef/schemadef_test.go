package schemadef_test

import (
	"strings"
	"testing"

	genval "github.com/codingwatching/genval"
	"github.com/codingwatching/genval/schemadef"
)

const contactYAML = `
type: object
title: Contact
description: a person
properties:
  name:
    type: string
    pattern: "^[A-Z]"
  age:
    type: integer
    minimum: 0
    maximum: 150
  tags:
    type: array
    items:
      type: string
    minItems: 1
    maxItems: 5
required: [name, age]
`

func TestImport_YAMLObject(t *testing.T) {
	s, diag, err := schemadef.Import([]byte(contactYAML), schemadef.Options{})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if diag.HasWarnings() {
		t.Fatalf("unexpected warnings: %v", diag.Warnings())
	}
	obj, ok := s.(*genval.Object)
	if !ok {
		t.Fatalf("root kind: %T", s)
	}
	if obj.Name != "Contact" || obj.Description != "a person" {
		t.Fatalf("metadata: %q %q", obj.Name, obj.Description)
	}

	var names []string
	for p := obj.Properties().Oldest(); p != nil; p = p.Next() {
		names = append(names, p.Key)
	}
	if strings.Join(names, ",") != "name,age,tags" {
		t.Fatalf("document order lost: %v", names)
	}

	name, _ := obj.Property("name")
	if name.Optional {
		t.Fatalf("required property marked optional")
	}
	tags, _ := obj.Property("tags")
	if !tags.Optional {
		t.Fatalf("non-required property must be optional")
	}
	arr := tags.Schema.(*genval.Array)
	if len(arr.Constraints) != 2 {
		t.Fatalf("count constraints: %d", len(arr.Constraints))
	}
}

func TestImport_JSONInput(t *testing.T) {
	in := `{"type":"string","enum":["a","b"]}`
	s, _, err := schemadef.Import([]byte(in), schemadef.Options{})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	prim := s.(*genval.Primitive)
	if prim.Prim != genval.PrimitiveString || len(prim.Constraints) != 1 {
		t.Fatalf("enum import: %+v", prim)
	}
}

func TestImport_AnyOfUnion(t *testing.T) {
	in := `
title: Shape
anyOf:
  - type: object
    title: circle
    properties:
      type: {type: string, const: circle}
      radius: {type: number}
    required: [type, radius]
  - type: object
    title: square
    properties:
      type: {type: string, const: square}
      side: {type: number}
    required: [type, side]
`
	s, _, err := schemadef.Import([]byte(in), schemadef.Options{})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	u := s.(*genval.Union)
	if u.Name != "Shape" || len(u.Alternatives) != 2 {
		t.Fatalf("union: %+v", u)
	}
}

func TestImport_RefResolution(t *testing.T) {
	in := `
type: object
title: Segment
properties:
  from: {$ref: "#/$defs/Point"}
  to: {$ref: "#/$defs/Point"}
required: [from, to]
$defs:
  Point:
    type: object
    properties:
      x: {type: number}
      y: {type: number}
    required: [x, y]
`
	s, _, err := schemadef.Import([]byte(in), schemadef.Options{})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	obj := s.(*genval.Object)
	from, _ := obj.Property("from")
	to, _ := obj.Property("to")
	if from.Schema != to.Schema {
		t.Fatalf("resolved refs must share one schema node")
	}
	pt := from.Schema.(*genval.Object)
	if pt.Name != "Point" {
		t.Fatalf("def name: %q", pt.Name)
	}
}

func TestImport_CyclicRefFails(t *testing.T) {
	in := `
type: object
properties:
  next: {$ref: "#/$defs/Node"}
$defs:
  Node:
    type: object
    properties:
      next: {$ref: "#/$defs/Node"}
`
	if _, _, err := schemadef.Import([]byte(in), schemadef.Options{}); err == nil {
		t.Fatalf("cyclic $ref must fail")
	}
}

func TestImport_UnknownKeyword(t *testing.T) {
	in := `{"type":"string","format":"email"}`
	_, diag, err := schemadef.Import([]byte(in), schemadef.Options{})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if !diag.HasWarnings() {
		t.Fatalf("want a warning for the ignored keyword")
	}
	if _, _, err := schemadef.Import([]byte(in), schemadef.Options{Strict: true}); err == nil {
		t.Fatalf("Strict must turn the warning into an error")
	}
}

func TestImport_Malformed(t *testing.T) {
	if _, _, err := schemadef.Import([]byte(`- just\n- a list`), schemadef.Options{}); err == nil {
		t.Fatalf("non-mapping root must fail")
	}
	if _, _, err := schemadef.Import([]byte(`{"type":"object","properties":{"a":{}}}`), schemadef.Options{}); err == nil {
		t.Fatalf("schema without type must fail")
	}
}

func TestImport_ThenProject(t *testing.T) {
	s, _, err := schemadef.Import([]byte(contactYAML), schemadef.Options{})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	doc, err := genval.Project(s, genval.ProjectOpt{Backend: genval.BackendOpenAI})
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	data, err := doc.JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"required":["name","age"]`) || !strings.Contains(out, `"pattern":"^[A-Z]"`) {
		t.Fatalf("projected grammar: %s", out)
	}
}
