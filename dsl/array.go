package dsl

import (
	"strconv"

	genval "github.com/codingwatching/genval"
)

// Array returns the slice codec over an item codec. Decode fails on the
// first failing element, with the element index on the issue path; there are
// no partial slices. A nullable item codec panics at declaration time: that
// shape is rejected once at schema construction, never per decode.
func Array[E any](item genval.Codec[E], cs ...genval.CountConstraint) genval.Codec[[]E] {
	if _, ok := any(item).(nullableMarker); ok {
		panic(genval.Issues{{
			Code:    genval.CodeUnsupportedConstraint,
			Message: "array item schema must not be nullable",
		}})
	}
	return arrayCodec[E]{schema: genval.ArrayOf(item.Schema(), cs...), item: item}
}

type arrayCodec[E any] struct {
	schema genval.Schema
	item   genval.Codec[E]
}

func (c arrayCodec[E]) Schema() genval.Schema { return c.schema }

func (c arrayCodec[E]) Encode(v []E) (genval.Content, error) {
	items := make([]genval.Content, len(v))
	for i, el := range v {
		ec, err := c.item.Encode(el)
		if err != nil {
			return genval.Content{}, rebase("/"+strconv.Itoa(i), err)
		}
		items[i] = ec
	}
	return genval.ArrayValue(items...), nil
}

func (c arrayCodec[E]) Decode(ct genval.Content) ([]E, error) {
	items, err := ct.AsArray()
	if err != nil {
		return nil, err
	}
	out := make([]E, 0, len(items))
	for i, el := range items {
		v, err := c.item.Decode(el)
		if err != nil {
			return nil, rebase("/"+strconv.Itoa(i), err)
		}
		out = append(out, v)
	}
	return out, nil
}

// DecodePartial decodes the longest decodable element prefix; a cumulative
// re-parse only ever extends the array, so the prefix is monotonic.
func (c arrayCodec[E]) DecodePartial(ct genval.Content) ([]E, genval.PresenceMap) {
	items, err := ct.AsArray()
	if err != nil {
		return nil, nil
	}
	out := make([]E, 0, len(items))
	pm := genval.PresenceMap{"/": genval.PresenceSeen}
	for i, el := range items {
		v, err := c.item.Decode(el)
		if err != nil {
			break
		}
		out = append(out, v)
		pm["/"+strconv.Itoa(i)] = genval.PresenceSeen
	}
	return out, pm
}

// rebase prefixes child issue paths with the parent pointer segment.
func rebase(prefix string, err error) genval.Issues {
	iss, ok := genval.AsIssues(err)
	if !ok {
		return genval.Issues{{Path: prefix, Code: genval.CodeKindMismatch, Message: err.Error(), Cause: err}}
	}
	out := make(genval.Issues, len(iss))
	for i, it := range iss {
		it.Path = prefix + it.Path
		out[i] = it
	}
	return out
}
