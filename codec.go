package genval

import "strconv"

// DiscriminatorKey is the reserved object member identifying a tagged-union
// case within its object encoding.
const DiscriminatorKey = "type"

// Codec performs the bidirectional mapping between a typed value T and the
// Content interchange tree. Implementations are pure and safe for concurrent
// use; they are registered once per type via the dsl builders (standing in
// for the compile-time derivation of the original system).
//
// The round-trip law holds for every structurally equatable v:
//
//	Decode(Encode(v)) == v
type Codec[T any] interface {
	// Schema returns the declarative shape of T, derived once at
	// registration time and immutable afterwards.
	Schema() Schema
	// Encode maps a typed value into a Content tree. Every declared property
	// is always present in the tree; an optional nil encodes to explicit
	// Null, never to key omission.
	Encode(v T) (Content, error)
	// Decode maps a Content tree back into a typed value. Kind disagreement
	// fails with kind_mismatch, a missing required property with required,
	// an unmatched union tag with discriminator_unknown. Array decode fails
	// on the first failing element; there are no partial results.
	Decode(c Content) (T, error)
}

// PartialDecoder is the optional streaming capability of a Codec: a
// best-effort decode that never fails, filling what the fragment yields and
// reporting per-pointer presence for everything it observed. Codecs lacking
// the capability fall back to all-or-nothing strict decode during
// reconstruction.
type PartialDecoder[T any] interface {
	DecodePartial(c Content) (T, PresenceMap)
}

// SynthesizedName returns the member name synthesized for the i-th unlabeled
// union payload parameter in declaration order: value, value1, value2, ...
func SynthesizedName(i int) string {
	if i == 0 {
		return "value"
	}
	return "value" + strconv.Itoa(i)
}
