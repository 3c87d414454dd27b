package generate

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"uidlc/uidl"
)

// elementTags maps UIDL element types to HTML tags, unknown types are
// used verbatim.
var elementTags = map[string]string{
	"container": "div",
	"text":      "span",
	"image":     "img",
	"link":      "a",
	"button":    "button",
	"list":      "ul",
	"listitem":  "li",
	"textinput": "input",
	"textarea":  "textarea",
	"video":     "video",
	"audio":     "audio",
	"icon":      "svg",
	"separator": "hr",
}

var voidTags = map[string]bool{
	"img": true, "input": true, "hr": true, "br": true, "meta": true, "source": true, "track": true, "wbr": true,
}

func tagFor(elementType string) string {
	if tag, ok := elementTags[elementType]; ok {
		return tag
	}
	return elementType
}

func (g *Generator) renderMarkup(comp *uidl.Component, p *plan) (string, error) {
	doc := etree.NewDocument()
	doc.WriteSettings = etree.WriteSettings{
		CanonicalText:    true,
		CanonicalAttrVal: true,
	}

	if err := renderNode(&doc.Element, comp.Node, "0", p); err != nil {
		return "", fmt.Errorf("unable to render markup for %q: %w", comp.Name, err)
	}
	doc.Indent(g.opts.Indent)
	closeEmptyElements(&doc.Element)

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// renderNode builds paths the same way collect pass does, see uidl.Children.
func renderNode(parent *etree.Element, n uidl.Node, path string, p *plan) error {
	switch n := n.(type) {
	case *uidl.Element:
		return renderElement(parent, n, path, p)
	case *uidl.Static:
		parent.CreateText(n.Content)
	case *uidl.Dynamic:
		parent.CreateText("{{ " + expression(n.Value) + " }}")
	case *uidl.Conditional:
		cont := parent.CreateElement("ng-container")
		cont.CreateAttr("*ngIf", condition(n))
		if n.Node != nil {
			return renderNode(cont, n.Node, path+".0", p)
		}
	case *uidl.Repeat:
		cont := parent.CreateElement("ng-container")
		loop := "let " + n.Iterator + " of " + expression(n.DataSource)
		if n.Index != "" {
			loop += "; index as " + n.Index
		}
		cont.CreateAttr("*ngFor", loop)
		if n.Node != nil {
			return renderNode(cont, n.Node, path+".0", p)
		}
	case *uidl.Slot:
		slot := parent.CreateElement("ng-content")
		if n.Name != "" {
			slot.CreateAttr("select", "[slot="+n.Name+"]")
		}
		if n.Fallback != nil {
			return renderNode(slot, n.Fallback, path+".0", p)
		}
	default:
		return fmt.Errorf("unsupported node %T", n)
	}
	return nil
}

func renderElement(parent *etree.Element, el *uidl.Element, path string, p *plan) error {
	e := parent.CreateElement(tagFor(el.ElementType))

	ep := p.elements[path]
	classes := ep.classesOrNil()
	classSet := false
	for _, a := range el.Attrs {
		switch {
		case a.Name == "class" && !a.Value.Dynamic:
			e.CreateAttr("class", strings.Join(append([]string{a.Value.Content}, classes...), " "))
			classSet = true
		case a.Value.Dynamic:
			e.CreateAttr("["+a.Name+"]", expression(a.Value))
		default:
			e.CreateAttr(a.Name, a.Value.Content)
		}
	}
	if !classSet && len(classes) > 0 {
		e.CreateAttr("class", strings.Join(classes, " "))
	}
	if ep != nil && len(ep.resolved.Bindings) > 0 {
		e.CreateAttr("[ngStyle]", styleBinding(ep.resolved.Bindings))
	}
	for _, ev := range el.Events {
		e.CreateAttr("("+ev.Name+")", ev.Handler)
	}

	for i, child := range el.Children {
		if err := renderNode(e, child, path+"."+strconv.Itoa(i), p); err != nil {
			return err
		}
	}
	return nil
}

func (ep *elementPlan) classesOrNil() []string {
	if ep == nil {
		return nil
	}
	return ep.classes
}

// closeEmptyElements makes sure non void elements are written with explicit
// end tag, HTML does not allow them to self-close.
func closeEmptyElements(e *etree.Element) {
	for _, child := range e.ChildElements() {
		if len(child.Child) == 0 && !voidTags[child.Tag] {
			child.AddChild(etree.NewText(""))
			continue
		}
		closeEmptyElements(child)
	}
}

func expression(v uidl.Value) string {
	if !v.Dynamic {
		return quote(v.Content)
	}
	return v.Content
}

func condition(c *uidl.Conditional) string {
	ref := expression(c.Reference)
	if c.Value == nil {
		return ref
	}
	return ref + " === " + literal(*c.Value)
}

// literal keeps booleans and numbers as is, anything else is quoted.
func literal(s string) string {
	if s == "true" || s == "false" {
		return s
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return s
	}
	return quote(s)
}

func quote(s string) string {
	return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s) + "'"
}

func styleBinding(bindings uidl.StyleMap) string {
	parts := make([]string, 0, len(bindings))
	for _, d := range bindings {
		parts = append(parts, quote(d.Property)+": "+expression(d.Value))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
