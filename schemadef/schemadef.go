// Package schemadef imports externally authored schema definitions (YAML or
// JSON documents in the grammar dialect) into genval schemas. It covers the
// subset the grammar emitter produces: typed primitives with pattern, enum,
// const and numeric bounds, arrays with item counts, objects with ordered
// properties and required lists, anyOf unions and local $defs/$ref reuse.
package schemadef

import (
	"errors"
	"fmt"
	"strconv"

	genval "github.com/codingwatching/genval"
	"gopkg.in/yaml.v3"
)

// Options controls import behavior.
type Options struct {
	// Strict makes unknown keywords fail the import instead of producing a
	// warning.
	Strict bool
	// RootName names the root object when the document carries no title.
	RootName string
}

// Diag carries non-fatal warnings produced during import.
type Diag interface {
	HasWarnings() bool
	Warnings() []string
}

type simpleDiag struct{ ws []string }

func (d *simpleDiag) HasWarnings() bool        { return len(d.ws) > 0 }
func (d *simpleDiag) Warnings() []string       { return append([]string(nil), d.ws...) }
func (d *simpleDiag) warnf(f string, a ...any) { d.ws = append(d.ws, fmt.Sprintf(f, a...)) }

// Import parses a schema definition document and compiles it into a
// genval.Schema. YAML is a superset of JSON, so a single decode path accepts
// both encodings. Property order follows document order.
func Import(data []byte, opts Options) (genval.Schema, Diag, error) {
	d := &simpleDiag{}
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, d, fmt.Errorf("schemadef: invalid document: %w", err)
	}
	doc := &root
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil, d, errors.New("schemadef: empty document")
		}
		doc = doc.Content[0]
	}
	if doc.Kind != yaml.MappingNode {
		return nil, d, errors.New("schemadef: root must be a mapping")
	}
	imp := &importer{opts: opts, d: d, defs: map[string]*yaml.Node{}, built: map[string]genval.Schema{}}
	if defs := mappingValue(doc, "$defs"); defs != nil && defs.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(defs.Content); i += 2 {
			imp.defs[defs.Content[i].Value] = defs.Content[i+1]
		}
	}
	s, err := imp.build(doc, opts.RootName)
	if err == nil && opts.Strict && d.HasWarnings() {
		return nil, d, fmt.Errorf("schemadef: %s", d.Warnings()[0])
	}
	return s, d, err
}

type importer struct {
	opts Options
	d    *simpleDiag
	defs map[string]*yaml.Node
	// built memoizes compiled $defs; inProgress guards against cyclic refs,
	// which the importer cannot tie back into an immutable schema.
	built      map[string]genval.Schema
	inProgress []string
}

func (imp *importer) build(node *yaml.Node, fallbackName string) (genval.Schema, error) {
	if node.Kind != yaml.MappingNode {
		return nil, errors.New("schemadef: schema node must be a mapping")
	}
	if ref := scalarString(mappingValue(node, "$ref")); ref != "" {
		return imp.resolveRef(ref)
	}
	if anyOf := mappingValue(node, "anyOf"); anyOf != nil {
		return imp.buildUnion(node, anyOf, fallbackName)
	}
	typ := scalarString(mappingValue(node, "type"))
	switch typ {
	case "object":
		return imp.buildObject(node, fallbackName)
	case "array":
		return imp.buildArray(node)
	case "string", "integer", "number", "boolean":
		return imp.buildPrimitive(node, typ)
	case "":
		return nil, errors.New("schemadef: schema without type, $ref or anyOf")
	default:
		return nil, fmt.Errorf("schemadef: unsupported type %q", typ)
	}
}

func (imp *importer) resolveRef(ref string) (genval.Schema, error) {
	const prefix = "#/$defs/"
	if len(ref) <= len(prefix) || ref[:len(prefix)] != prefix {
		return nil, fmt.Errorf("schemadef: only local %q refs are supported, got %q", prefix+"<name>", ref)
	}
	name := ref[len(prefix):]
	if s, ok := imp.built[name]; ok {
		return s, nil
	}
	for _, n := range imp.inProgress {
		if n == name {
			return nil, fmt.Errorf("schemadef: cyclic $ref through %q", name)
		}
	}
	def, ok := imp.defs[name]
	if !ok {
		return nil, fmt.Errorf("schemadef: unresolved $ref %q", ref)
	}
	imp.inProgress = append(imp.inProgress, name)
	s, err := imp.build(def, name)
	imp.inProgress = imp.inProgress[:len(imp.inProgress)-1]
	if err != nil {
		return nil, err
	}
	imp.built[name] = s
	return s, nil
}

func (imp *importer) buildUnion(node, anyOf *yaml.Node, fallbackName string) (genval.Schema, error) {
	if anyOf.Kind != yaml.SequenceNode {
		return nil, errors.New("schemadef: anyOf must be a sequence")
	}
	name := scalarString(mappingValue(node, "title"))
	if name == "" {
		name = fallbackName
	}
	alts := make([]genval.Schema, 0, len(anyOf.Content))
	for i, alt := range anyOf.Content {
		s, err := imp.build(alt, name+"_"+strconv.Itoa(i))
		if err != nil {
			return nil, err
		}
		alts = append(alts, s)
	}
	return genval.NewUnionSchema(name, scalarString(mappingValue(node, "description")), alts...), nil
}

func (imp *importer) buildObject(node *yaml.Node, fallbackName string) (genval.Schema, error) {
	name := scalarString(mappingValue(node, "title"))
	if name == "" {
		name = fallbackName
	}
	required := map[string]bool{}
	if req := mappingValue(node, "required"); req != nil && req.Kind == yaml.SequenceNode {
		for _, r := range req.Content {
			required[r.Value] = true
		}
	}
	var props []genval.NamedProperty
	if pn := mappingValue(node, "properties"); pn != nil && pn.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(pn.Content); i += 2 {
			key := pn.Content[i].Value
			ps, err := imp.build(pn.Content[i+1], key)
			if err != nil {
				return nil, err
			}
			props = append(props, genval.NamedProperty{Name: key, Property: genval.Property{
				Schema:      ps,
				Description: scalarString(mappingValue(pn.Content[i+1], "description")),
				Optional:    !required[key],
			}})
		}
	}
	imp.checkKeywords(node, "type", "title", "description", "properties", "required", "additionalProperties", "$defs")
	return genval.NewObjectSchema(name, scalarString(mappingValue(node, "description")), props...), nil
}

func (imp *importer) buildArray(node *yaml.Node) (genval.Schema, error) {
	items := mappingValue(node, "items")
	if items == nil {
		return nil, errors.New("schemadef: array without items")
	}
	item, err := imp.build(items, "")
	if err != nil {
		return nil, err
	}
	var cs []genval.CountConstraint
	if v, ok := scalarInt(mappingValue(node, "minItems")); ok {
		cs = append(cs, genval.MinItems(v))
	}
	if v, ok := scalarInt(mappingValue(node, "maxItems")); ok {
		cs = append(cs, genval.MaxItems(v))
	}
	imp.checkKeywords(node, "type", "description", "items", "minItems", "maxItems")
	return genval.ArrayOf(item, cs...), nil
}

func (imp *importer) buildPrimitive(node *yaml.Node, typ string) (genval.Schema, error) {
	switch typ {
	case "string":
		var cs []genval.StringConstraint
		if p := scalarString(mappingValue(node, "pattern")); p != "" {
			cs = append(cs, genval.Pattern(p))
		}
		if c := mappingValue(node, "const"); c != nil {
			cs = append(cs, genval.Constant(c.Value))
		}
		if e := mappingValue(node, "enum"); e != nil && e.Kind == yaml.SequenceNode {
			vals := make([]string, len(e.Content))
			for i, n := range e.Content {
				vals[i] = n.Value
			}
			cs = append(cs, genval.OneOf(vals...))
		}
		imp.checkKeywords(node, "type", "description", "pattern", "const", "enum")
		return genval.StringSchema(cs...), nil
	case "boolean":
		imp.checkKeywords(node, "type", "description")
		return genval.BooleanSchema(), nil
	default:
		var cs []genval.NumberConstraint
		if v, ok := scalarFloat(mappingValue(node, "minimum")); ok {
			cs = append(cs, genval.Minimum(v))
		}
		if v, ok := scalarFloat(mappingValue(node, "maximum")); ok {
			cs = append(cs, genval.Maximum(v))
		}
		imp.checkKeywords(node, "type", "description", "minimum", "maximum")
		if typ == "integer" {
			return genval.IntegerSchema(cs...), nil
		}
		return genval.NumberSchema(cs...), nil
	}
}

// checkKeywords warns about keywords the importer does not understand.
// Under Options.Strict, Import turns the first warning into an error.
func (imp *importer) checkKeywords(node *yaml.Node, known ...string) {
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		ok := false
		for _, k := range known {
			if key == k {
				ok = true
				break
			}
		}
		if !ok {
			imp.d.warnf("ignoring unsupported keyword %q", key)
		}
	}
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

func scalarString(node *yaml.Node) string {
	if node == nil || node.Kind != yaml.ScalarNode {
		return ""
	}
	return node.Value
}

func scalarInt(node *yaml.Node) (int, bool) {
	if node == nil || node.Kind != yaml.ScalarNode {
		return 0, false
	}
	v, err := strconv.Atoi(node.Value)
	if err != nil {
		return 0, false
	}
	return v, true
}

func scalarFloat(node *yaml.Node) (float64, bool) {
	if node == nil || node.Kind != yaml.ScalarNode {
		return 0, false
	}
	v, err := strconv.ParseFloat(node.Value, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
