package genval

import (
	"errors"
	"fmt"
	"strings"

	"github.com/codingwatching/genval/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	// CodeInvalidJSON reports malformed JSON text handed to ParseContent or
	// to a terminal stream payload.
	CodeInvalidJSON = "invalid_json"
	// CodeKindMismatch reports a Content node whose kind disagrees with the
	// accessor or with the target schema (including integrality failures on
	// integer targets).
	CodeKindMismatch = "kind_mismatch"
	// CodeRequired reports a required object property absent from the input.
	CodeRequired = "required"
	// CodeDiscriminatorMissing reports a union object without a "type" member.
	CodeDiscriminatorMissing = "discriminator_missing"
	// CodeDiscriminatorUnknown reports a union tag no declared case matches.
	CodeDiscriminatorUnknown = "discriminator_unknown"
	// CodeIncompleteResult reports a completed stream whose terminal payload
	// still lacks required properties.
	CodeIncompleteResult = "incomplete_result"
	// CodeUnprojectableSchema reports a schema the target backend grammar
	// cannot express (zero-alternative union, inexpressible cycle).
	CodeUnprojectableSchema = "unprojectable_schema"
	// CodeUnsupportedConstraint reports a constraint applied to a schema node
	// of an incompatible kind, or a shape no backend expresses uniformly
	// (for example a nullable array element).
	CodeUnsupportedConstraint = "unsupported_constraint"
)

// Issue represents a single failure entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /items/2/price).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, offending values, etc.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"expected":"string",
	// "actual":"number"}) for i18n and observability.
	Params map[string]any
}

// Issues is a collection of failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. kind_mismatch at /path
		fmt.Fprintf(b, "%s at %s", it.Code, pathOrRoot(it.Path))
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

func pathOrRoot(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// HasCode reports whether err carries at least one Issue with the given code.
func HasCode(err error, code string) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

// IssueOf builds a single-issue error at the given path with structured
// params, resolving the message via the current translator.
func IssueOf(path, code string, params map[string]any) Issues {
	data := make(map[string]string, len(params))
	for k, v := range params {
		if s, ok := v.(string); ok {
			data[k] = s
		}
	}
	return Issues{{Path: path, Code: code, Message: i18n.T(code, data), Params: params}}
}

// rebaseIssues prefixes child issue paths with the parent pointer segment so
// nested failures keep an absolute location.
func rebaseIssues(prefix string, err error) Issues {
	iss, ok := AsIssues(err)
	if !ok {
		return Issues{{Path: prefix, Code: CodeKindMismatch, Message: err.Error(), Cause: err}}
	}
	out := make(Issues, len(iss))
	for i, it := range iss {
		it.Path = prefix + it.Path
		out[i] = it
	}
	return out
}
