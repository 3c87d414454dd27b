package uidl

import (
	"maps"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/maruel/natural"

	"uidlc/utils/debug"
)

type treeWriter struct {
	*debug.TreeWriter
}

// String returns a readable tree of the component. It exists solely for
// manual inspection during debugging.
func (c *Component) String() string {
	if c == nil {
		return "<nil Component>"
	}
	return treeWriter{debug.NewTreeWriter()}.component(c).String()
}

func (tw treeWriter) component(c *Component) treeWriter {
	tw.Line(0, "Component %q", c.Name)
	for _, p := range c.PropDefinitions {
		tw.Line(1, "Prop %s type=%q default=%v", p.Name, p.Type, p.DefaultValue)
	}
	for _, s := range c.StateDefinitions {
		tw.Line(1, "State %s type=%q default=%v", s.Name, s.Type, s.DefaultValue)
	}
	tw.referencedStyles(1, c.ReferencedStyles)
	tw.node(1, c.Node)
	return tw
}

func (tw treeWriter) referencedStyles(depth int, styles map[string]ReferencedStyle) {
	if len(styles) == 0 {
		return
	}
	tw.Line(depth, "ReferencedStyles: %d", len(styles))
	keys := slices.Collect(maps.Keys(styles))
	sort.Sort(natural.StringSlice(keys))
	for _, k := range keys {
		switch c := styles[k].Content.(type) {
		case *InlinedStyle:
			tw.Line(depth+1, "Inlined[%q] conditions=%s", k, conditionsString(c.Conditions))
			tw.Pairs(depth+2, "styles", stylePairs(c.Styles))
		case *ProjectReferencedStyle:
			tw.Line(depth+1, "ProjectReferenced[%q] referenceId=%q", k, c.ReferenceID)
		default:
			tw.Line(depth+1, "Unknown[%q] %T", k, c)
		}
	}
}

func (tw treeWriter) node(depth int, n Node) {
	switch n := n.(type) {
	case *Element:
		tw.Line(depth, "Element %s name=%q key=%q", n.ElementType, n.Name, n.Key)
		for _, a := range n.Attrs {
			tw.Line(depth+1, "Attr %s=%s", a.Name, a.Value)
		}
		for _, e := range n.Events {
			tw.Line(depth+1, "Event %s: %s", e.Name, e.Handler)
		}
		tw.Pairs(depth+1, "Style", stylePairs(n.Style))
		tw.List(depth+1, "StyleRefs", n.StyleRefs)
		tw.referencedStyles(depth+1, n.ReferencedStyles)
		for _, child := range n.Children {
			tw.node(depth+1, child)
		}
	case *Static:
		tw.TextBlock(depth, "Static", n.Content)
	case *Dynamic:
		tw.Line(depth, "Dynamic %s", n.Value)
	case *Conditional:
		if n.Value != nil {
			tw.Line(depth, "Conditional %s == %q", n.Reference, *n.Value)
		} else {
			tw.Line(depth, "Conditional %s", n.Reference)
		}
		tw.node(depth+1, n.Node)
	case *Repeat:
		tw.Line(depth, "Repeat %s as %q index=%q", n.DataSource, n.Iterator, n.Index)
		tw.node(depth+1, n.Node)
	case *Slot:
		tw.Line(depth, "Slot %q", n.Name)
		tw.node(depth+1, n.Fallback)
	case nil:
	default:
		tw.Line(depth, "Unknown %T", n)
	}
}

func stylePairs(m StyleMap) [][2]string {
	pairs := make([][2]string, 0, len(m))
	for _, d := range m {
		pairs = append(pairs, [2]string{d.Property, d.Value.String()})
	}
	return pairs
}

func conditionsString(conds []Condition) string {
	if len(conds) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(conds))
	for _, c := range conds {
		switch c := c.(type) {
		case ScreenSize:
			var sb strings.Builder
			sb.WriteString("screen-size(")
			if c.MinWidth != nil {
				sb.WriteString("min=" + strconv.Itoa(*c.MinWidth))
			}
			if c.MaxWidth != nil {
				if c.MinWidth != nil {
					sb.WriteByte(' ')
				}
				sb.WriteString("max=" + strconv.Itoa(*c.MaxWidth))
			}
			sb.WriteByte(')')
			parts = append(parts, sb.String())
		case ElementState:
			parts = append(parts, "element-state("+c.State+")")
		}
	}
	return strings.Join(parts, ", ")
}
