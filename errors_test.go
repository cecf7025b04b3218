package genval_test

import (
	"strings"
	"testing"

	genval "github.com/codingwatching/genval"
)

func TestIssues_ErrorSummary(t *testing.T) {
	iss := genval.Issues{
		{Path: "/a", Code: genval.CodeKindMismatch},
		{Path: "/b", Code: genval.CodeRequired},
		{Path: "", Code: genval.CodeInvalidJSON},
		{Path: "/d", Code: genval.CodeRequired},
	}
	s := iss.Error()
	if !strings.Contains(s, "kind_mismatch at /a") {
		t.Fatalf("summary: %s", s)
	}
	if !strings.Contains(s, "invalid_json at /") {
		t.Fatalf("root path must render as /: %s", s)
	}
	if !strings.Contains(s, "total 4") {
		t.Fatalf("overflow count missing: %s", s)
	}
}

func TestHasCodeAndAsIssues(t *testing.T) {
	err := genval.IssueOf("/x", genval.CodeRequired, map[string]any{"property": "x"})
	if !genval.HasCode(err, genval.CodeRequired) {
		t.Fatalf("HasCode")
	}
	if genval.HasCode(err, genval.CodeInvalidJSON) {
		t.Fatalf("HasCode false positive")
	}
	iss, ok := genval.AsIssues(error(err))
	if !ok || len(iss) != 1 || iss[0].Path != "/x" {
		t.Fatalf("AsIssues: %v %v", iss, ok)
	}
	if _, ok := genval.AsIssues(nil); ok {
		t.Fatalf("AsIssues(nil)")
	}
}

func TestIssueOf_ResolvesMessage(t *testing.T) {
	err := genval.IssueOf("", genval.CodeKindMismatch, map[string]any{"expected": "string", "actual": "number"})
	if err[0].Message == "" {
		t.Fatalf("message must be resolved through the translator")
	}
}
