package genval

import (
	"bytes"
	"io"
	"math"
	"strconv"

	j "github.com/goccy/go-json"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/codingwatching/genval/i18n"
	eng "github.com/codingwatching/genval/internal/engine"
)

func invalidJSON(cause error) Issues {
	it := Issue{Code: CodeInvalidJSON, Message: i18n.T(CodeInvalidJSON, nil), Cause: cause}
	if cause != nil {
		it.Hint = cause.Error()
	}
	return Issues{it}
}

// ParseContent parses JSON text into a Content tree, preserving object member
// order. Malformed or trailing input fails with invalid_json.
func ParseContent(text string) (Content, error) { return ParseContentBytes([]byte(text)) }

// ParseContentBytes is ParseContent over a byte slice.
func ParseContentBytes(data []byte) (Content, error) {
	src := eng.NewBytes(data)
	tok, err := src.NextToken()
	if err != nil {
		return Content{}, invalidJSON(err)
	}
	c, err := decodeContent(src, tok)
	if err != nil {
		return Content{}, invalidJSON(err)
	}
	// exactly one top-level value
	if _, err := src.NextToken(); err != io.EOF {
		return Content{}, invalidJSON(err)
	}
	return c, nil
}

func decodeContent(src eng.TokenSource, tok eng.Token) (Content, error) {
	switch tok.Kind {
	case eng.KindBeginObject:
		return decodeObjectContent(src)
	case eng.KindBeginArray:
		return decodeArrayContent(src)
	case eng.KindString:
		return StringValue(tok.String), nil
	case eng.KindNumber:
		f, err := strconv.ParseFloat(tok.Number, 64)
		if err != nil {
			return Content{}, err
		}
		return NumberValue(f), nil
	case eng.KindBool:
		return BoolValue(tok.Bool), nil
	case eng.KindNull:
		return NullValue(), nil
	default:
		return Content{}, io.ErrUnexpectedEOF
	}
}

func decodeObjectContent(src eng.TokenSource) (Content, error) {
	om := orderedmap.New[string, Content]()
	for {
		tok, err := src.NextToken()
		if err != nil {
			return Content{}, err
		}
		if tok.Kind == eng.KindEndObject {
			return objectFromMembers(om), nil
		}
		if tok.Kind != eng.KindKey {
			return Content{}, io.ErrUnexpectedEOF
		}
		vt, err := src.NextToken()
		if err != nil {
			return Content{}, err
		}
		v, err := decodeContent(src, vt)
		if err != nil {
			return Content{}, err
		}
		om.Set(tok.String, v)
	}
}

func decodeArrayContent(src eng.TokenSource) (Content, error) {
	items := []Content{}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return Content{}, err
		}
		if tok.Kind == eng.KindEndArray {
			return ArrayValue(items...), nil
		}
		v, err := decodeContent(src, tok)
		if err != nil {
			return Content{}, err
		}
		items = append(items, v)
	}
}

// Serialize renders the tree back to JSON text, the exact inverse of
// ParseContent for well-formed trees. Object member order is preserved.
func (c Content) Serialize() (string, error) {
	var b bytes.Buffer
	if err := c.appendTo(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// MarshalJSON lets Content embed directly into backend request payloads.
func (c Content) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	if err := c.appendTo(&b); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func (c Content) appendTo(b *bytes.Buffer) error {
	switch c.kind {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		b.WriteString(strconv.FormatBool(c.boolVal))
	case KindNumber:
		b.WriteString(formatNumber(c.numVal))
	case KindString:
		quoted, err := j.Marshal(c.strVal)
		if err != nil {
			return err
		}
		b.Write(quoted)
	case KindArray:
		b.WriteByte('[')
		for i, it := range c.items {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := it.appendTo(b); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	case KindObject:
		b.WriteByte('{')
		first := true
		for p := c.members.Oldest(); p != nil; p = p.Next() {
			if !first {
				b.WriteByte(',')
			}
			first = false
			quoted, err := j.Marshal(p.Key)
			if err != nil {
				return err
			}
			b.Write(quoted)
			b.WriteByte(':')
			if err := p.Value.appendTo(b); err != nil {
				return err
			}
		}
		b.WriteByte('}')
	}
	return nil
}

// formatNumber renders integral values without a fractional part and falls
// back to the shortest float form otherwise.
func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
