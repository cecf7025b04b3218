package genval_test

import (
	"testing"

	genval "github.com/codingwatching/genval"
)

func TestParseContent_PreservesMemberOrder(t *testing.T) {
	in := `{"zeta":1,"alpha":{"b":true,"a":null},"mid":[1,"two",3.5]}`
	c, err := genval.ParseContent(in)
	if err != nil {
		t.Fatalf("ParseContent: %v", err)
	}
	out, err := c.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if out != in {
		t.Fatalf("round trip changed text:\n in=%s\nout=%s", in, out)
	}
}

func TestParseContent_InvalidJSON(t *testing.T) {
	for _, in := range []string{``, `{"name":"Al`, `[1,2`, `{"a":}`, `tru`} {
		if _, err := genval.ParseContent(in); !genval.HasCode(err, genval.CodeInvalidJSON) {
			t.Fatalf("ParseContent(%q): want invalid_json, got %v", in, err)
		}
	}
}

func TestParseContent_TrailingInput(t *testing.T) {
	if _, err := genval.ParseContent(`{"a":1} {"b":2}`); !genval.HasCode(err, genval.CodeInvalidJSON) {
		t.Fatalf("want invalid_json for trailing input, got %v", err)
	}
}

func TestContent_Accessors(t *testing.T) {
	obj := genval.ObjectValue(
		genval.Member{Name: "s", Value: genval.StringValue("hi")},
		genval.Member{Name: "n", Value: genval.NumberValue(4)},
	)

	s, ok := obj.Member("s")
	if !ok {
		t.Fatalf("member s not found")
	}
	if got, err := s.AsString(); err != nil || got != "hi" {
		t.Fatalf("AsString: %q, %v", got, err)
	}
	if _, err := s.AsNumber(); !genval.HasCode(err, genval.CodeKindMismatch) {
		t.Fatalf("AsNumber on string: want kind_mismatch, got %v", err)
	}
	if _, ok := obj.Member("missing"); ok {
		t.Fatalf("unexpected member")
	}
	if _, ok := genval.NumberValue(1).Member("x"); ok {
		t.Fatalf("Member on non-object must report false")
	}
}

func TestContent_EqualIsOrderSensitive(t *testing.T) {
	a := genval.ObjectValue(
		genval.Member{Name: "x", Value: genval.NumberValue(1)},
		genval.Member{Name: "y", Value: genval.NumberValue(2)},
	)
	b := genval.ObjectValue(
		genval.Member{Name: "y", Value: genval.NumberValue(2)},
		genval.Member{Name: "x", Value: genval.NumberValue(1)},
	)
	if a.Equal(b) {
		t.Fatalf("differently ordered objects must not be equal")
	}
	if !a.Equal(a) {
		t.Fatalf("self equality")
	}
}

func TestSerialize_NumberForms(t *testing.T) {
	cases := map[float64]string{
		0:     "0",
		42:    "42",
		-7:    "-7",
		3.5:   "3.5",
		1e20:  "1e+20",
		0.125: "0.125",
	}
	for f, want := range cases {
		got, err := genval.NumberValue(f).Serialize()
		if err != nil {
			t.Fatalf("Serialize(%v): %v", f, err)
		}
		if got != want {
			t.Fatalf("Serialize(%v) = %s, want %s", f, got, want)
		}
	}
}

func TestSerialize_EscapesStrings(t *testing.T) {
	got, err := genval.StringValue("a\"b\nc").Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	back, err := genval.ParseContent(got)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	s, err := back.AsString()
	if err != nil || s != "a\"b\nc" {
		t.Fatalf("escape round trip: %q, %v", s, err)
	}
}

func TestObjectValue_DuplicateNameReplacesInPlace(t *testing.T) {
	c := genval.ObjectValue(
		genval.Member{Name: "a", Value: genval.NumberValue(1)},
		genval.Member{Name: "b", Value: genval.NumberValue(2)},
		genval.Member{Name: "a", Value: genval.NumberValue(3)},
	)
	out, err := c.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if out != `{"a":3,"b":2}` {
		t.Fatalf("duplicate member handling: %s", out)
	}
}
