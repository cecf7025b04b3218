package genval

import "context"

// Fragment is one delta from a generation stream. Exactly one of Text and
// Partial is meaningful: text-mode transports send the cumulative output so
// far, structured transports send a native partial value.
type Fragment struct {
	Text    string
	Partial *Content
}

// TextFragment wraps a cumulative text snapshot.
func TextFragment(cumulative string) Fragment { return Fragment{Text: cumulative} }

// PartialFragment wraps a natively structured partial value.
func PartialFragment(ct Content) Fragment { return Fragment{Partial: &ct} }

// FragmentStream is the pull-based source Drain consumes. Next advances to
// the next fragment and reports false when the stream is exhausted; Err
// reports any transport failure after Next returned false; Final returns the
// terminal cumulative text once the stream ends.
type FragmentStream interface {
	Next() bool
	Current() Fragment
	Err() error
	Final() string
}

// Drain consumes a fragment stream into a reconstruction of codec's type,
// invoking observe (when non-nil) with a snapshot after every fragment, and
// strictly decodes the terminal payload. Cancelling ctx abandons the stream
// and fails with incomplete_result.
func Drain[T any](ctx context.Context, codec Codec[T], stream FragmentStream, observe func(Snapshot[T])) (T, error) {
	var zero T
	rec := NewReconstruction(codec)
	for stream.Next() {
		select {
		case <-ctx.Done():
			rec.Cancel()
			iss := IssueOf("", CodeIncompleteResult, nil)
			iss[0].Cause = ctx.Err()
			return zero, iss
		default:
		}
		f := stream.Current()
		if f.Partial != nil {
			rec.FeedPartial(*f.Partial)
		} else {
			rec.FeedText(f.Text)
		}
		if observe != nil {
			observe(rec.Snapshot())
		}
	}
	if err := stream.Err(); err != nil {
		rec.Cancel()
		iss := IssueOf("", CodeIncompleteResult, nil)
		iss[0].Cause = err
		return zero, iss
	}
	return rec.Complete(stream.Final())
}
