package uidl

import (
	"errors"
	"fmt"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// UIDL documents are JSON, which is also valid YAML. Decoding goes through
// yaml.Node rather than into maps so that declaration order of styles,
// attributes and referenced styles survives.

type pair struct {
	key   string
	value *yaml.Node
}

func nodeErr(n *yaml.Node, format string, args ...any) error {
	return fmt.Errorf("line %d: %s", n.Line, fmt.Sprintf(format, args...))
}

func parseDocument(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unable to parse document: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("empty document")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, nodeErr(root, "expected object at document root")
	}
	return root, nil
}

func pairs(n *yaml.Node) ([]pair, error) {
	if n.Kind != yaml.MappingNode {
		return nil, nodeErr(n, "expected object")
	}
	out := make([]pair, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		out = append(out, pair{key: n.Content[i].Value, value: n.Content[i+1]})
	}
	return out, nil
}

// field returns value of the key in mapping n or nil.
func field(n *yaml.Node, key string) *yaml.Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

func scalar(n *yaml.Node, name string) (string, error) {
	if n == nil {
		return "", nil
	}
	if n.Kind != yaml.ScalarNode {
		return "", nodeErr(n, "%s: expected scalar value", name)
	}
	return n.Value, nil
}

func requiredScalar(parent *yaml.Node, key string) (string, error) {
	n := field(parent, key)
	if n == nil {
		return "", nodeErr(parent, "missing required field %q", key)
	}
	s, err := scalar(n, key)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", nodeErr(n, "field %q must not be empty", key)
	}
	return s, nil
}

// DecodeComponent decodes UIDL component description from JSON or YAML.
func DecodeComponent(data []byte) (*Component, error) {
	root, err := parseDocument(data)
	if err != nil {
		return nil, err
	}

	c := &Component{}
	if c.Name, err = requiredScalar(root, "name"); err != nil {
		return nil, err
	}
	if n := field(root, "propDefinitions"); n != nil {
		if c.PropDefinitions, err = decodeDefinitions(n); err != nil {
			return nil, fmt.Errorf("propDefinitions: %w", err)
		}
	}
	if n := field(root, "stateDefinitions"); n != nil {
		if c.StateDefinitions, err = decodeDefinitions(n); err != nil {
			return nil, fmt.Errorf("stateDefinitions: %w", err)
		}
	}
	if n := field(root, "referencedStyles"); n != nil {
		styles, err := decodeReferencedStyles(n)
		if err != nil {
			return nil, fmt.Errorf("referencedStyles: %w", err)
		}
		c.WithReferencedStyles(styles...)
	}

	n := field(root, "node")
	if n == nil {
		return nil, nodeErr(root, "component %q has no node", c.Name)
	}
	if c.Node, err = decodeNode(n); err != nil {
		return nil, fmt.Errorf("component %q: %w", c.Name, err)
	}
	return c, nil
}

// DecodeProjectStyleSet decodes project style set from JSON or YAML.
func DecodeProjectStyleSet(data []byte) (*ProjectStyleSet, error) {
	root, err := parseDocument(data)
	if err != nil {
		return nil, err
	}

	set := &ProjectStyleSet{Definitions: make(map[string]StyleDefinition)}
	if set.FileName, err = scalar(field(root, "fileName"), "fileName"); err != nil {
		return nil, err
	}
	if set.Path, err = scalar(field(root, "path"), "path"); err != nil {
		return nil, err
	}

	n := field(root, "styleSetDefinitions")
	if n == nil {
		return set, nil
	}
	defs, err := pairs(n)
	if err != nil {
		return nil, fmt.Errorf("styleSetDefinitions: %w", err)
	}
	for _, p := range defs {
		def := StyleDefinition{ID: p.key}
		if id, err := scalar(field(p.value, "id"), "id"); err != nil {
			return nil, err
		} else if id != "" && id != p.key {
			return nil, nodeErr(p.value, "style definition id %q does not match key %q", id, p.key)
		}
		if def.Name, err = requiredScalar(p.value, "name"); err != nil {
			return nil, err
		}
		if c := field(p.value, "content"); c != nil {
			if def.Content, err = decodeStyleMap(c); err != nil {
				return nil, fmt.Errorf("style definition %q: %w", p.key, err)
			}
		}
		set.Definitions[p.key] = def
	}
	return set, nil
}

func decodeDefinitions(n *yaml.Node) ([]PropDefinition, error) {
	ps, err := pairs(n)
	if err != nil {
		return nil, err
	}
	defs := make([]PropDefinition, 0, len(ps))
	for _, p := range ps {
		def := PropDefinition{Name: p.key}
		if def.Type, err = scalar(field(p.value, "type"), "type"); err != nil {
			return nil, err
		}
		if dv := field(p.value, "defaultValue"); dv != nil {
			if err := dv.Decode(&def.DefaultValue); err != nil {
				return nil, nodeErr(dv, "defaultValue of %q: %v", p.key, err)
			}
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func decodeValue(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return StaticValue(n.Value), nil
	case yaml.MappingNode:
	default:
		return Value{}, nodeErr(n, "expected value")
	}

	typ, err := requiredScalar(n, "type")
	if err != nil {
		return Value{}, err
	}
	content := field(n, "content")
	if content == nil {
		return Value{}, nodeErr(n, "value has no content")
	}
	switch typ {
	case "static":
		s, err := scalar(content, "content")
		return StaticValue(s), err
	case "dynamic":
		return decodeReference(content)
	default:
		return Value{}, nodeErr(n, "unsupported value type %q", typ)
	}
}

func decodeReference(n *yaml.Node) (Value, error) {
	ref, err := requiredScalar(n, "referenceType")
	if err != nil {
		return Value{}, err
	}
	id, err := requiredScalar(n, "id")
	if err != nil {
		return Value{}, err
	}
	switch rt := RefType(ref); rt {
	case RefProp, RefState, RefLocal:
		return DynamicValue(rt, id), nil
	default:
		return Value{}, nodeErr(n, "unsupported reference type %q", ref)
	}
}

func decodeStyleMap(n *yaml.Node) (StyleMap, error) {
	ps, err := pairs(n)
	if err != nil {
		return nil, err
	}
	m := make(StyleMap, 0, len(ps))
	for _, p := range ps {
		v, err := decodeValue(p.value)
		if err != nil {
			return nil, fmt.Errorf("style %q: %w", p.key, err)
		}
		m = append(m, StyleDeclaration{Property: p.key, Value: v})
	}
	return m, nil
}

func decodeReferencedStyles(n *yaml.Node) ([]ReferencedStyle, error) {
	ps, err := pairs(n)
	if err != nil {
		return nil, err
	}
	out := make([]ReferencedStyle, 0, len(ps))
	for _, p := range ps {
		rs, err := decodeReferencedStyle(p.key, p.value)
		if err != nil {
			return nil, fmt.Errorf("referenced style %q: %w", p.key, err)
		}
		out = append(out, rs)
	}
	return out, nil
}

func decodeReferencedStyle(id string, n *yaml.Node) (ReferencedStyle, error) {
	if declared, err := scalar(field(n, "id"), "id"); err != nil {
		return ReferencedStyle{}, err
	} else if declared != "" && declared != id {
		return ReferencedStyle{}, nodeErr(n, "id %q does not match key", declared)
	}
	if typ, err := scalar(field(n, "type"), "type"); err != nil {
		return ReferencedStyle{}, err
	} else if typ != "" && typ != "style-map" {
		return ReferencedStyle{}, nodeErr(n, "unsupported referenced style type %q", typ)
	}

	content := field(n, "content")
	if content == nil {
		return ReferencedStyle{}, nodeErr(n, "missing content")
	}
	mapType, err := requiredScalar(content, "mapType")
	if err != nil {
		return ReferencedStyle{}, err
	}

	switch mapType {
	case "inlined":
		inl := &InlinedStyle{}
		if conds := field(content, "conditions"); conds != nil {
			if conds.Kind != yaml.SequenceNode {
				return ReferencedStyle{}, nodeErr(conds, "conditions must be a list")
			}
			for _, c := range conds.Content {
				cond, err := decodeCondition(c)
				if err != nil {
					return ReferencedStyle{}, err
				}
				inl.Conditions = append(inl.Conditions, cond)
			}
		}
		if styles := field(content, "styles"); styles != nil {
			if inl.Styles, err = decodeStyleMap(styles); err != nil {
				return ReferencedStyle{}, err
			}
		}
		if dyn := inl.Styles.Dynamic(); len(dyn) > 0 {
			return ReferencedStyle{}, nodeErr(content, "inlined style %q can not bind dynamic value", dyn[0].Property)
		}
		return ReferencedStyle{ID: id, Content: inl}, nil
	case "project-referenced":
		ref, err := requiredScalar(content, "referenceId")
		if err != nil {
			return ReferencedStyle{}, err
		}
		return ProjectReferenced(id, ref), nil
	default:
		return ReferencedStyle{}, nodeErr(content, "unsupported map type %q", mapType)
	}
}

func decodeCondition(n *yaml.Node) (Condition, error) {
	typ, err := requiredScalar(n, "conditionType")
	if err != nil {
		return nil, err
	}
	switch typ {
	case "screen-size":
		var cond ScreenSize
		for key, dst := range map[string]**int{"maxWidth": &cond.MaxWidth, "minWidth": &cond.MinWidth} {
			if v := field(n, key); v != nil {
				var px int
				if err := v.Decode(&px); err != nil {
					return nil, nodeErr(v, "%s: %v", key, err)
				}
				*dst = &px
			}
		}
		if cond.MaxWidth == nil && cond.MinWidth == nil {
			return nil, nodeErr(n, "screen-size condition has neither maxWidth nor minWidth")
		}
		return cond, nil
	case "element-state":
		state, err := requiredScalar(n, "content")
		if err != nil {
			return nil, err
		}
		return ElementState{State: state}, nil
	default:
		return nil, nodeErr(n, "unsupported condition type %q", typ)
	}
}

func decodeChildren(n *yaml.Node) ([]Node, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, nodeErr(n, "children must be a list")
	}
	children := make([]Node, 0, len(n.Content))
	for _, c := range n.Content {
		child, err := decodeNode(c)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

func optionalNode(n *yaml.Node) (Node, error) {
	if n == nil {
		return nil, nil
	}
	return decodeNode(n)
}

func decodeNode(n *yaml.Node) (Node, error) {
	typ, err := requiredScalar(n, "type")
	if err != nil {
		return nil, err
	}
	content := field(n, "content")
	if content == nil {
		return nil, nodeErr(n, "%s node has no content", typ)
	}

	switch typ {
	case "element":
		return decodeElement(content)
	case "static":
		s, err := scalar(content, "content")
		if err != nil {
			return nil, err
		}
		return &Static{Content: s}, nil
	case "dynamic":
		v, err := decodeReference(content)
		if err != nil {
			return nil, err
		}
		return &Dynamic{Value: v}, nil
	case "conditional":
		cond := &Conditional{}
		ref := field(content, "reference")
		if ref == nil {
			return nil, nodeErr(content, "conditional node has no reference")
		}
		if cond.Reference, err = decodeValue(ref); err != nil {
			return nil, err
		}
		if v := field(content, "value"); v != nil {
			s, err := scalar(v, "value")
			if err != nil {
				return nil, err
			}
			cond.Value = &s
		}
		if cond.Node, err = optionalNode(field(content, "node")); err != nil {
			return nil, err
		}
		return cond, nil
	case "repeat":
		rep := &Repeat{Iterator: "item"}
		ds := field(content, "dataSource")
		if ds == nil {
			return nil, nodeErr(content, "repeat node has no dataSource")
		}
		if rep.DataSource, err = decodeValue(ds); err != nil {
			return nil, err
		}
		if meta := field(content, "meta"); meta != nil {
			if it, err := scalar(field(meta, "iteratorName"), "iteratorName"); err != nil {
				return nil, err
			} else if it != "" {
				rep.Iterator = it
			}
			if ui := field(meta, "useIndex"); ui != nil {
				var use bool
				if err := ui.Decode(&use); err != nil {
					return nil, nodeErr(ui, "useIndex: %v", err)
				}
				if use {
					rep.Index = "index"
				}
			}
		}
		if rep.Node, err = optionalNode(field(content, "node")); err != nil {
			return nil, err
		}
		return rep, nil
	case "slot":
		slot := &Slot{}
		if slot.Name, err = scalar(field(content, "name"), "name"); err != nil {
			return nil, err
		}
		if slot.Fallback, err = optionalNode(field(content, "fallback")); err != nil {
			return nil, err
		}
		return slot, nil
	default:
		return nil, nodeErr(n, "unsupported node type %q", typ)
	}
}

func decodeElement(n *yaml.Node) (*Element, error) {
	elementType, err := requiredScalar(n, "elementType")
	if err != nil {
		return nil, err
	}
	el := NewElement(elementType)
	if name, err := scalar(field(n, "name"), "name"); err != nil {
		return nil, err
	} else if name != "" {
		el.Name = name
	}
	if el.Key, err = scalar(field(n, "key"), "key"); err != nil {
		return nil, err
	}

	if attrs := field(n, "attrs"); attrs != nil {
		ps, err := pairs(attrs)
		if err != nil {
			return nil, err
		}
		for _, p := range ps {
			v, err := decodeValue(p.value)
			if err != nil {
				return nil, fmt.Errorf("attribute %q: %w", p.key, err)
			}
			el.WithAttr(p.key, v)
		}
	}
	if events := field(n, "events"); events != nil {
		if el.Events, err = decodeEvents(events); err != nil {
			return nil, err
		}
	}
	if style := field(n, "style"); style != nil {
		if el.Style, err = decodeStyleMap(style); err != nil {
			return nil, fmt.Errorf("element %q: %w", el.NodeName(), err)
		}
	}
	if refs := field(n, "referencedStyles"); refs != nil {
		styles, err := decodeReferencedStyles(refs)
		if err != nil {
			return nil, fmt.Errorf("element %q: %w", el.NodeName(), err)
		}
		el.WithReferencedStyles(styles...)
	}
	if refs := field(n, "styleReferences"); refs != nil {
		var ids []string
		if err := refs.Decode(&ids); err != nil {
			return nil, nodeErr(refs, "styleReferences: %v", err)
		}
		for _, id := range ids {
			if _, local := el.ReferencedStyles[id]; !local {
				el.StyleRefs = append(el.StyleRefs, id)
			}
		}
	}
	if children := field(n, "children"); children != nil {
		if el.Children, err = decodeChildren(children); err != nil {
			return nil, err
		}
	}
	return el, nil
}

func decodeEvents(n *yaml.Node) ([]Event, error) {
	ps, err := pairs(n)
	if err != nil {
		return nil, err
	}
	events := make([]Event, 0, len(ps))
	for _, p := range ps {
		if p.value.Kind != yaml.SequenceNode {
			return nil, nodeErr(p.value, "event %q handlers must be a list", p.key)
		}
		var stmts []string
		for _, h := range p.value.Content {
			stmt, err := decodeHandler(h)
			if err != nil {
				return nil, fmt.Errorf("event %q: %w", p.key, err)
			}
			stmts = append(stmts, stmt)
		}
		events = append(events, Event{Name: p.key, Handler: strings.Join(stmts, "; ")})
	}
	return events, nil
}

func decodeHandler(n *yaml.Node) (string, error) {
	typ, err := requiredScalar(n, "type")
	if err != nil {
		return "", err
	}
	switch typ {
	case "propCall":
		calls, err := requiredScalar(n, "calls")
		if err != nil {
			return "", err
		}
		return calls + "()", nil
	case "stateChange":
		modifies, err := requiredScalar(n, "modifies")
		if err != nil {
			return "", err
		}
		ns := field(n, "newState")
		if ns == nil {
			return "", nodeErr(n, "stateChange of %q has no newState", modifies)
		}
		if ns.Kind == yaml.ScalarNode && ns.Value == "$toggle" {
			return modifies + " = !" + modifies, nil
		}
		if ns.Kind == yaml.ScalarNode && ns.Tag == "!!str" {
			return modifies + " = '" + strings.ReplaceAll(ns.Value, "'", `\'`) + "'", nil
		}
		return modifies + " = " + ns.Value, nil
	default:
		return "", nodeErr(n, "unsupported event handler type %q", typ)
	}
}
