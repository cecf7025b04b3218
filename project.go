package genval

import (
	"github.com/codingwatching/genval/grammar"
	"github.com/codingwatching/genval/i18n"
)

// Backend identifies a target runtime's native constrained-generation
// grammar dialect.
type Backend int

const (
	// BackendOpenAI supports shared definitions ($defs/$ref) in its
	// json_schema response format.
	BackendOpenAI Backend = iota
	// BackendAnthropic consumes inline-only input schemas.
	BackendAnthropic
	// BackendGemini consumes an inline-only response schema subset.
	BackendGemini
)

func (b Backend) String() string {
	switch b {
	case BackendOpenAI:
		return "openai"
	case BackendAnthropic:
		return "anthropic"
	case BackendGemini:
		return "gemini"
	default:
		return "unknown"
	}
}

// supportsDefs reports whether the backend grammar can express a shared
// definitions table referenced by pointer.
func (b Backend) supportsDefs() bool { return b == BackendOpenAI }

// ParseBackend resolves a backend name as used by the CLI and config files.
func ParseBackend(name string) (Backend, bool) {
	switch name {
	case "openai":
		return BackendOpenAI, true
	case "anthropic":
		return BackendAnthropic, true
	case "gemini":
		return BackendGemini, true
	default:
		return 0, false
	}
}

// ProjectOpt bundles projection options.
type ProjectOpt struct {
	Backend Backend
}

func unprojectable(hint string) Issues {
	return Issues{{Code: CodeUnprojectableSchema, Message: i18n.T(CodeUnprojectableSchema, nil), Hint: hint}}
}

// Project translates a Schema into the backend's native grammar document. It
// is a pure recursive transform: calling it twice yields structurally
// identical documents. A recurring named Object is hoisted into a shared
// definitions table when the backend supports references and inlined every
// occurrence otherwise; a schema the backend cannot express (zero-alternative
// union, inexpressible cycle) fails fast with unprojectable_schema rather
// than emitting malformed grammar.
func Project(s Schema, opt ProjectOpt) (*grammar.Document, error) {
	p := &projector{
		backend: opt.Backend,
		shared:  map[*Object]bool{},
		defs:    map[string]*grammar.Document{},
		defOf:   map[string]*Object{},
	}
	if opt.Backend.supportsDefs() {
		counts := map[*Object]int{}
		countObjects(s, counts, map[Schema]bool{})
		for o, n := range counts {
			if n > 1 && o.Name != "" {
				p.shared[o] = true
			}
		}
	}
	doc, err := p.project(s, map[Schema]bool{})
	if err != nil {
		return nil, err
	}
	if len(p.defs) > 0 {
		doc.Defs = p.defs
	}
	return doc, nil
}

// countObjects tallies named object occurrences by pointer identity; visiting
// guards against cycles.
func countObjects(s Schema, counts map[*Object]int, visiting map[Schema]bool) {
	if visiting[s] {
		if o, ok := s.(*Object); ok {
			counts[o]++
		}
		return
	}
	visiting[s] = true
	defer delete(visiting, s)
	switch n := s.(type) {
	case *Array:
		countObjects(n.Item, counts, visiting)
	case *Object:
		counts[n]++
		for p := n.Properties().Oldest(); p != nil; p = p.Next() {
			countObjects(p.Value.Schema, counts, visiting)
		}
	case *Union:
		for _, alt := range n.Alternatives {
			countObjects(alt, counts, visiting)
		}
	}
}

type projector struct {
	backend Backend
	shared  map[*Object]bool
	defs    map[string]*grammar.Document
	defOf   map[string]*Object // def name -> owning object, guards name collisions
}

func (p *projector) project(s Schema, inProgress map[Schema]bool) (*grammar.Document, error) {
	switch n := s.(type) {
	case *Primitive:
		return projectPrimitive(n), nil
	case *Array:
		items, err := p.project(n.Item, inProgress)
		if err != nil {
			return nil, err
		}
		doc := &grammar.Document{Type: "array", Items: items}
		lower, upper := collapseCount(n.Constraints)
		doc.MinItems = lower
		doc.MaxItems = upper
		return doc, nil
	case *Object:
		return p.projectObject(n, inProgress)
	case *Union:
		if len(n.Alternatives) == 0 {
			return nil, unprojectable("union has no alternatives")
		}
		doc := &grammar.Document{Title: n.Name, Description: n.Description}
		doc.AnyOf = make([]*grammar.Document, 0, len(n.Alternatives))
		for _, alt := range n.Alternatives {
			ad, err := p.project(alt, inProgress)
			if err != nil {
				return nil, err
			}
			doc.AnyOf = append(doc.AnyOf, ad)
		}
		return doc, nil
	default:
		return nil, unprojectable("unknown schema node")
	}
}

func (p *projector) projectObject(o *Object, inProgress map[Schema]bool) (*grammar.Document, error) {
	if inProgress[Schema(o)] {
		if p.canRef(o) {
			p.reserveDef(o)
			return &grammar.Document{Ref: "#/$defs/" + o.Name}, nil
		}
		return nil, unprojectable("cyclic object '" + o.Name + "' not expressible inline for " + p.backend.String())
	}
	if p.canRef(o) && p.shared[o] {
		if err := p.buildDef(o, inProgress); err != nil {
			return nil, err
		}
		return &grammar.Document{Ref: "#/$defs/" + o.Name}, nil
	}
	inProgress[Schema(o)] = true
	defer delete(inProgress, Schema(o))
	return p.projectObjectBody(o, inProgress)
}

// canRef reports whether o may be emitted as a shared definition: the backend
// supports refs, the object is named, and the name is not already claimed by
// a different object.
func (p *projector) canRef(o *Object) bool {
	if !p.backend.supportsDefs() || o.Name == "" {
		return false
	}
	if owner, ok := p.defOf[o.Name]; ok && owner != o {
		return false
	}
	return true
}

func (p *projector) reserveDef(o *Object) { p.defOf[o.Name] = o }

func (p *projector) buildDef(o *Object, inProgress map[Schema]bool) error {
	if _, done := p.defs[o.Name]; done {
		return nil
	}
	p.reserveDef(o)
	inProgress[Schema(o)] = true
	defer delete(inProgress, Schema(o))
	body, err := p.projectObjectBody(o, inProgress)
	if err != nil {
		return err
	}
	p.defs[o.Name] = body
	return nil
}

func (p *projector) projectObjectBody(o *Object, inProgress map[Schema]bool) (*grammar.Document, error) {
	doc := &grammar.Document{
		Type:                 "object",
		Title:                o.Name,
		Description:          o.Description,
		AdditionalProperties: false,
		Properties:           grammar.NewProperties(),
	}
	for pair := o.Properties().Oldest(); pair != nil; pair = pair.Next() {
		pd, err := p.project(pair.Value.Schema, inProgress)
		if err != nil {
			return nil, err
		}
		if pair.Value.Description != "" && pd.Ref == "" {
			pd.Description = pair.Value.Description
		}
		doc.Properties.Set(pair.Key, pd)
		if !pair.Value.Optional {
			doc.Required = append(doc.Required, pair.Key)
		}
	}
	return doc, nil
}

func projectPrimitive(prim *Primitive) *grammar.Document {
	doc := &grammar.Document{Type: prim.Prim.String()}
	switch prim.Prim {
	case PrimitiveString:
		pattern, enum := collapseString(prim.Constraints)
		doc.Pattern = pattern
		doc.Enum = enum
	case PrimitiveInteger, PrimitiveNumber:
		lower, upper := collapseNumeric(prim.Constraints)
		doc.Minimum = lower
		doc.Maximum = upper
	}
	return doc
}

// Constraint collision policy: when same-kind constraints target a grammar
// field the backend expresses only once, the LATER constraint wins per field
// (declaration order). See DESIGN.md.

func collapseString(cs []Constraint) (pattern string, enum []string) {
	for _, c := range cs {
		sc, ok := c.(StringConstraint)
		if !ok {
			continue
		}
		if sc.Pattern != "" {
			pattern = sc.Pattern
		}
		if sc.Constant != nil {
			enum = []string{*sc.Constant}
		}
		if len(sc.OneOf) > 0 {
			enum = append([]string(nil), sc.OneOf...)
		}
	}
	return pattern, enum
}

func collapseNumeric(cs []Constraint) (lower, upper *float64) {
	for _, c := range cs {
		nc, ok := c.(NumberConstraint)
		if !ok {
			continue
		}
		if nc.Lower != nil {
			v := *nc.Lower
			lower = &v
		}
		if nc.Upper != nil {
			v := *nc.Upper
			upper = &v
		}
	}
	return lower, upper
}

func collapseCount(cs []Constraint) (lower, upper *int) {
	for _, c := range cs {
		cc, ok := c.(CountConstraint)
		if !ok {
			continue
		}
		if cc.Lower != nil {
			v := *cc.Lower
			lower = &v
		}
		if cc.Upper != nil {
			v := *cc.Upper
			upper = &v
		}
	}
	return lower, upper
}
