package genval

// Constraints are typed refinement predicates narrowing a primitive or array
// schema. Each concrete constraint type is bound to the node kind it refines,
// so an incompatible application is caught at the call site where possible
// and rejected at schema construction otherwise.

// ConstraintTarget identifies the node kind a constraint refines.
type ConstraintTarget int

const (
	TargetString ConstraintTarget = iota
	TargetNumeric
	TargetCount
	TargetElement
)

// Constraint is the closed set of refinement predicates. Same-target
// constraints accumulate on a schema node in declaration order.
type Constraint interface {
	Target() ConstraintTarget
}

// StringConstraint refines a string primitive: a regex pattern, a constant
// value, or an enumerated member set. Zero fields are simply absent.
type StringConstraint struct {
	Pattern  string
	Constant *string
	OneOf    []string
}

func (StringConstraint) Target() ConstraintTarget { return TargetString }

// Pattern constrains a string primitive to a regular expression.
func Pattern(re string) StringConstraint { return StringConstraint{Pattern: re} }

// Constant pins a string primitive to a single value (projects as a
// one-element enum).
func Constant(v string) StringConstraint { return StringConstraint{Constant: &v} }

// OneOf constrains a string primitive to an enumerated member set.
func OneOf(values ...string) StringConstraint {
	return StringConstraint{OneOf: append([]string(nil), values...)}
}

// NumberConstraint refines an integer or number primitive with an inclusive
// range; either bound may be omitted independently.
type NumberConstraint struct {
	Lower *float64
	Upper *float64
}

func (NumberConstraint) Target() ConstraintTarget { return TargetNumeric }

// Minimum bounds a numeric primitive from below.
func Minimum(v float64) NumberConstraint { return NumberConstraint{Lower: &v} }

// Maximum bounds a numeric primitive from above.
func Maximum(v float64) NumberConstraint { return NumberConstraint{Upper: &v} }

// Range bounds a numeric primitive on both sides.
func Range(lower, upper float64) NumberConstraint {
	return NumberConstraint{Lower: &lower, Upper: &upper}
}

// CountConstraint refines an array with an element count range; either bound
// may be omitted independently.
type CountConstraint struct {
	Lower *int
	Upper *int
}

func (CountConstraint) Target() ConstraintTarget { return TargetCount }

// MinItems bounds an array length from below.
func MinItems(n int) CountConstraint { return CountConstraint{Lower: &n} }

// MaxItems bounds an array length from above.
func MaxItems(n int) CountConstraint { return CountConstraint{Upper: &n} }

// Count bounds an array length on both sides.
func Count(lower, upper int) CountConstraint {
	return CountConstraint{Lower: &lower, Upper: &upper}
}

// ElementConstraint is not a constraint on the array node itself: applying it
// rewrites the nested item schema by appending Inner to the item's own
// constraint list.
type ElementConstraint struct {
	Inner Constraint
}

func (ElementConstraint) Target() ConstraintTarget { return TargetElement }

// Elements lifts a constraint over an array's item schema.
func Elements(inner Constraint) ElementConstraint { return ElementConstraint{Inner: inner} }
