// Package engine holds the token-level JSON plumbing shared by Content
// parsing. It is internal and not part of the public API.
package engine

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
}

// TokenSource is the minimal interface required by Content decoding.
type TokenSource interface {
	NextToken() (Token, error)
}
