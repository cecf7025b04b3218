package grammar

import (
	j "github.com/goccy/go-json"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Properties holds a document's object members in declaration order. The
// ordered map marshals JSON and YAML in insertion order, which backends use
// as the generation order of members.
type Properties = orderedmap.OrderedMap[string, *Document]

// NewProperties returns an empty ordered property table.
func NewProperties() *Properties { return orderedmap.New[string, *Document]() }

// Document is a backend-facing constrained-generation grammar document
// (JSON-Schema shaped). Keep this struct small and extend incrementally.
type Document struct {
	// Core
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// String refinements
	Pattern string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Enum    []string `json:"enum,omitempty" yaml:"enum,omitempty"`

	// Numeric refinements
	Minimum *float64 `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty" yaml:"maximum,omitempty"`

	// Object
	Properties           *Properties `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required             []string    `json:"required,omitempty" yaml:"required,omitempty"`
	AdditionalProperties any         `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`

	// Array
	Items    *Document `json:"items,omitempty" yaml:"items,omitempty"`
	MinItems *int      `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems *int      `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`

	// Union
	AnyOf []*Document `json:"anyOf,omitempty" yaml:"anyOf,omitempty"`

	// Shared definitions (backends that support references)
	Defs map[string]*Document `json:"$defs,omitempty" yaml:"$defs,omitempty"`
	Ref  string               `json:"$ref,omitempty" yaml:"$ref,omitempty"`
}

// JSON renders the document as compact JSON for a backend request body.
func (d *Document) JSON() ([]byte, error) { return j.Marshal(d) }
