package genval

import (
	"strconv"

	"github.com/codingwatching/genval/i18n"
)

// State classifies how much of a value a Reconstruction has recovered.
type State int

const (
	// StateEmpty means no decodable content has arrived yet.
	StateEmpty State = iota
	// StatePartial means some members are known but the value is not final.
	StatePartial
	// StateComplete means Complete succeeded with a fully decoded value.
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePartial:
		return "partial"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Snapshot is a point-in-time view of a streaming reconstruction. Value is a
// best-effort decode of what has arrived; Presence records which paths have
// been observed (and which were observed as null) so callers can tell an
// absent member from a zero one.
type Snapshot[T any] struct {
	State    State
	Value    T
	Presence PresenceMap
}

// Reconstruction incrementally rebuilds a typed value from a model's output
// stream. Feed it either cumulative text snapshots (FeedText) or natively
// structured partial values (FeedPartial); fragments that do not parse are
// skipped and the previous snapshot stands. A Reconstruction is single
// consumer and not safe for concurrent use.
type Reconstruction[T any] struct {
	codec   Codec[T]
	partial PartialDecoder[T]
	known   *Content
	state   State
	done    bool
}

// NewReconstruction starts an empty reconstruction for codec. If the codec
// also implements PartialDecoder, snapshots use it to recover prefixes of
// the value; otherwise snapshots fall back to strict decoding.
func NewReconstruction[T any](codec Codec[T]) *Reconstruction[T] {
	r := &Reconstruction[T]{codec: codec, state: StateEmpty}
	if pd, ok := codec.(PartialDecoder[T]); ok {
		r.partial = pd
	}
	return r
}

// FeedText absorbs a cumulative text snapshot of the output so far. Text
// that does not parse as a complete JSON value is ignored; the
// reconstruction keeps its previous state, so truncated fragments like
// `{"name":"Al` never regress a snapshot.
func (r *Reconstruction[T]) FeedText(cumulative string) {
	if r.done {
		return
	}
	ct, err := ParseContent(cumulative)
	if err != nil {
		return
	}
	r.absorb(ct)
}

// FeedPartial absorbs a natively structured partial value, for transports
// that deliver incremental structured deltas rather than raw text.
func (r *Reconstruction[T]) FeedPartial(ct Content) {
	if r.done {
		return
	}
	r.absorb(ct)
}

func (r *Reconstruction[T]) absorb(ct Content) {
	if r.known == nil {
		c := ct
		r.known = &c
	} else {
		merged := mergeContent(*r.known, ct)
		r.known = &merged
	}
	r.state = StatePartial
}

// mergeContent folds an update into the known tree. Objects merge per
// member so members seen earlier survive an update that omits them; every
// other kind is replaced wholesale by the newer value.
func mergeContent(prev, next Content) Content {
	if prev.Kind() != KindObject || next.Kind() != KindObject {
		return next
	}
	var out []Member
	pm, _ := prev.AsObject()
	nm, _ := next.AsObject()
	for p := pm.Oldest(); p != nil; p = p.Next() {
		if nv, ok := nm.Get(p.Key); ok {
			out = append(out, Member{Name: p.Key, Value: mergeContent(p.Value, nv)})
		} else {
			out = append(out, Member{Name: p.Key, Value: p.Value})
		}
	}
	for p := nm.Oldest(); p != nil; p = p.Next() {
		if _, ok := pm.Get(p.Key); !ok {
			out = append(out, Member{Name: p.Key, Value: p.Value})
		}
	}
	return ObjectValue(out...)
}

// Snapshot reports the current best-effort view. States only advance:
// empty until the first decodable fragment, partial afterwards, complete
// only once Complete has succeeded.
func (r *Reconstruction[T]) Snapshot() Snapshot[T] {
	var zero T
	if r.known == nil {
		return Snapshot[T]{State: StateEmpty, Value: zero}
	}
	if r.state == StateComplete {
		v, err := r.codec.Decode(*r.known)
		if err == nil {
			return Snapshot[T]{State: StateComplete, Value: v, Presence: fullPresence(*r.known)}
		}
	}
	if r.partial != nil {
		v, pm := r.partial.DecodePartial(*r.known)
		return Snapshot[T]{State: r.state, Value: v, Presence: pm}
	}
	if v, err := r.codec.Decode(*r.known); err == nil {
		return Snapshot[T]{State: r.state, Value: v, Presence: fullPresence(*r.known)}
	}
	return Snapshot[T]{State: r.state, Value: zero}
}

// Complete finishes the stream with the final cumulative text and strictly
// decodes it. A final value that parses but is missing required members
// fails with incomplete_result rather than required, so callers can tell a
// truncated generation from a malformed one.
func (r *Reconstruction[T]) Complete(finalText string) (T, error) {
	var zero T
	if r.done {
		return zero, IssueOf("", CodeIncompleteResult, nil)
	}
	r.done = true
	ct, err := ParseContent(finalText)
	if err != nil {
		if r.known == nil {
			return zero, err
		}
		ct = *r.known
	}
	r.absorb(ct)
	v, err := r.codec.Decode(*r.known)
	if err != nil {
		return zero, asIncomplete(err)
	}
	r.state = StateComplete
	return v, nil
}

// Cancel abandons the reconstruction; later feeds are ignored and Complete
// fails with incomplete_result.
func (r *Reconstruction[T]) Cancel() { r.done = true }

// asIncomplete retags missing-member failures from a final decode as
// incomplete results, keeping the original issues as params for diagnosis.
func asIncomplete(err error) error {
	iss, ok := AsIssues(err)
	if !ok || !HasCode(iss, CodeRequired) {
		return err
	}
	out := make(Issues, 0, len(iss))
	for _, is := range iss {
		if is.Code == CodeRequired {
			is = Issue{
				Path:    is.Path,
				Code:    CodeIncompleteResult,
				Message: i18n.T(CodeIncompleteResult, nil),
				Params:  is.Params,
			}
		}
		out = append(out, is)
	}
	return out
}

// fullPresence marks every path of a decoded tree as seen, mirroring what a
// partial decoder would report for a complete value.
func fullPresence(ct Content) PresenceMap {
	pm := PresenceMap{}
	recordPresence(pm, "", ct)
	return pm
}

func recordPresence(pm PresenceMap, path string, ct Content) {
	key := path
	if key == "" {
		key = "/"
	}
	pm[key] = PresenceSeen
	switch ct.Kind() {
	case KindNull:
		pm[key] |= PresenceWasNull
	case KindObject:
		members, _ := ct.AsObject()
		for p := members.Oldest(); p != nil; p = p.Next() {
			recordPresence(pm, path+"/"+p.Key, p.Value)
		}
	case KindArray:
		items, _ := ct.AsArray()
		for i, it := range items {
			recordPresence(pm, path+"/"+strconv.Itoa(i), it)
		}
	}
}
