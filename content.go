package genval

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/codingwatching/genval/i18n"
)

// Kind identifies the node kind of a Content value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String renders the kind name used in kind_mismatch params.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Members is the ordered member map of an object node. Insertion order is
// preserved for deterministic re-serialization.
type Members = orderedmap.OrderedMap[string, Content]

// Member pairs an object member name with its value.
type Member struct {
	Name  string
	Value Content
}

// Content is the generic tagged value tree used as the interchange format
// between typed values and backend JSON. Values are immutable once built;
// Number carries both integral and fractional values (decode validates
// integrality only when the target is an integer).
type Content struct {
	kind    Kind
	boolVal bool
	numVal  float64
	strVal  string
	items   []Content
	members *Members
}

// NullValue returns the null node.
func NullValue() Content { return Content{kind: KindNull} }

// BoolValue wraps a boolean node.
func BoolValue(b bool) Content { return Content{kind: KindBool, boolVal: b} }

// NumberValue wraps a numeric node.
func NumberValue(f float64) Content { return Content{kind: KindNumber, numVal: f} }

// StringValue wraps a string node.
func StringValue(s string) Content { return Content{kind: KindString, strVal: s} }

// ArrayValue wraps an array node, element order preserved.
func ArrayValue(items ...Content) Content {
	if items == nil {
		items = []Content{}
	}
	return Content{kind: KindArray, items: items}
}

// ObjectValue wraps an object node; member order follows declaration order.
// A duplicate name replaces the earlier value in place.
func ObjectValue(members ...Member) Content {
	om := orderedmap.New[string, Content](orderedmap.WithCapacity[string, Content](len(members)))
	for _, m := range members {
		om.Set(m.Name, m.Value)
	}
	return Content{kind: KindObject, members: om}
}

// objectFromMembers adopts an already-built ordered map (internal parse path).
func objectFromMembers(om *Members) Content { return Content{kind: KindObject, members: om} }

// Kind returns the node kind.
func (c Content) Kind() Kind { return c.kind }

// IsNull reports whether the node is the null node.
func (c Content) IsNull() bool { return c.kind == KindNull }

func kindMismatch(expected, actual Kind) Issues {
	return Issues{{
		Code:    CodeKindMismatch,
		Message: i18n.T(CodeKindMismatch, map[string]string{"expected": expected.String(), "actual": actual.String()}),
		Params:  map[string]any{"expected": expected.String(), "actual": actual.String()},
	}}
}

// AsObject returns the ordered members, failing with kind_mismatch otherwise.
// Callers must not mutate the returned map.
func (c Content) AsObject() (*Members, error) {
	if c.kind != KindObject {
		return nil, kindMismatch(KindObject, c.kind)
	}
	return c.members, nil
}

// AsArray returns the element slice, failing with kind_mismatch otherwise.
func (c Content) AsArray() ([]Content, error) {
	if c.kind != KindArray {
		return nil, kindMismatch(KindArray, c.kind)
	}
	return c.items, nil
}

// AsString returns the string payload, failing with kind_mismatch otherwise.
func (c Content) AsString() (string, error) {
	if c.kind != KindString {
		return "", kindMismatch(KindString, c.kind)
	}
	return c.strVal, nil
}

// AsNumber returns the numeric payload, failing with kind_mismatch otherwise.
func (c Content) AsNumber() (float64, error) {
	if c.kind != KindNumber {
		return 0, kindMismatch(KindNumber, c.kind)
	}
	return c.numVal, nil
}

// AsBool returns the boolean payload, failing with kind_mismatch otherwise.
func (c Content) AsBool() (bool, error) {
	if c.kind != KindBool {
		return false, kindMismatch(KindBool, c.kind)
	}
	return c.boolVal, nil
}

// Member looks up an object member by name. ok is false when the node is not
// an object or the name is absent.
func (c Content) Member(name string) (Content, bool) {
	if c.kind != KindObject || c.members == nil {
		return Content{}, false
	}
	return c.members.Get(name)
}

// Equal reports structural equality. Object member order is significant, so
// two trees are equal exactly when they re-serialize identically.
func (c Content) Equal(o Content) bool {
	if c.kind != o.kind {
		return false
	}
	switch c.kind {
	case KindNull:
		return true
	case KindBool:
		return c.boolVal == o.boolVal
	case KindNumber:
		return c.numVal == o.numVal
	case KindString:
		return c.strVal == o.strVal
	case KindArray:
		if len(c.items) != len(o.items) {
			return false
		}
		for i := range c.items {
			if !c.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if c.members.Len() != o.members.Len() {
			return false
		}
		cp, op := c.members.Oldest(), o.members.Oldest()
		for cp != nil && op != nil {
			if cp.Key != op.Key || !cp.Value.Equal(op.Value) {
				return false
			}
			cp, op = cp.Next(), op.Next()
		}
		return cp == nil && op == nil
	default:
		return false
	}
}
