// Package uidl defines the portable component description consumed by the
// generator: a tree of element, text and control nodes with styles attached.
//
// Node, StyleContent and Condition are closed sum types - only types declared
// in this package implement them, so type switches over them can be
// exhaustive.
package uidl

import "strconv"

// RefType tells where dynamic value comes from.
type RefType string

const (
	RefProp  RefType = "prop"
	RefState RefType = "state"
	RefLocal RefType = "local"
)

// Value is either static text or reference to prop, state or local variable.
type Value struct {
	Dynamic bool
	Content string  // literal text for static value, identifier for dynamic one
	Ref     RefType // only meaningful for dynamic value
}

func StaticValue(content string) Value {
	return Value{Content: content}
}

func DynamicValue(ref RefType, id string) Value {
	return Value{Dynamic: true, Ref: ref, Content: id}
}

func (v Value) String() string {
	if v.Dynamic {
		return string(v.Ref) + ":" + v.Content
	}
	return strconv.Quote(v.Content)
}

// StyleDeclaration is a single property: value pair.
type StyleDeclaration struct {
	Property string
	Value    Value
}

// StyleMap keeps style declarations in the order they were declared.
type StyleMap []StyleDeclaration

// Styles builds static style map from property, value pairs. Odd trailing
// property is ignored.
func Styles(pairs ...string) StyleMap {
	m := make(StyleMap, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		m = append(m, StyleDeclaration{Property: pairs[i], Value: StaticValue(pairs[i+1])})
	}
	return m
}

// Get returns value of the last declaration of the property.
func (m StyleMap) Get(property string) (Value, bool) {
	for i := len(m) - 1; i >= 0; i-- {
		if m[i].Property == property {
			return m[i].Value, true
		}
	}
	return Value{}, false
}

// Static returns only declarations with static values.
func (m StyleMap) Static() StyleMap {
	var out StyleMap
	for _, d := range m {
		if !d.Value.Dynamic {
			out = append(out, d)
		}
	}
	return out
}

// Dynamic returns only declarations bound to props or state.
func (m StyleMap) Dynamic() StyleMap {
	var out StyleMap
	for _, d := range m {
		if d.Value.Dynamic {
			out = append(out, d)
		}
	}
	return out
}

// Condition qualifies when inlined style declarations apply.
type Condition interface {
	condition()
}

// ScreenSize is a media query condition, at least one bound is expected.
type ScreenSize struct {
	MaxWidth *int
	MinWidth *int
}

// ElementState is a pseudo-class condition, e.g. "hover".
type ElementState struct {
	State string
}

func (ScreenSize) condition()   {}
func (ElementState) condition() {}

func MaxWidth(px int) ScreenSize {
	return ScreenSize{MaxWidth: &px}
}

func MinWidth(px int) ScreenSize {
	return ScreenSize{MinWidth: &px}
}

func WidthRange(minPx, maxPx int) ScreenSize {
	return ScreenSize{MinWidth: &minPx, MaxWidth: &maxPx}
}

func State(name string) ElementState {
	return ElementState{State: name}
}

// StyleContent is the payload of a referenced style.
type StyleContent interface {
	styleContent()
}

// InlinedStyle carries declarations rendered into component stylesheet.
type InlinedStyle struct {
	Conditions []Condition
	Styles     StyleMap
}

// ProjectReferencedStyle points into project style set.
type ProjectReferencedStyle struct {
	ReferenceID string
}

func (*InlinedStyle) styleContent()           {}
func (*ProjectReferencedStyle) styleContent() {}

// ReferencedStyle is an entry of referenced styles mapping.
type ReferencedStyle struct {
	ID      string
	Content StyleContent
}

func Inlined(id string, styles StyleMap, conditions ...Condition) ReferencedStyle {
	return ReferencedStyle{ID: id, Content: &InlinedStyle{Conditions: conditions, Styles: styles}}
}

func ProjectReferenced(id, referenceID string) ReferencedStyle {
	return ReferencedStyle{ID: id, Content: &ProjectReferencedStyle{ReferenceID: referenceID}}
}

// StyleDefinition is reusable named style from project style set.
type StyleDefinition struct {
	ID      string
	Name    string
	Content StyleMap
}

// ProjectStyleSet is shared between components and never modified by the
// generator.
type ProjectStyleSet struct {
	Definitions map[string]StyleDefinition
	FileName    string
	Path        string
}

// Lookup returns definition by id, nil set has no definitions.
func (s *ProjectStyleSet) Lookup(id string) (StyleDefinition, bool) {
	if s == nil {
		return StyleDefinition{}, false
	}
	def, ok := s.Definitions[id]
	return def, ok
}

// PropDefinition describes component input or state variable.
type PropDefinition struct {
	Name         string
	Type         string
	DefaultValue any
}

// Component is the root of UIDL description.
type Component struct {
	Name             string
	PropDefinitions  []PropDefinition
	StateDefinitions []PropDefinition
	ReferencedStyles map[string]ReferencedStyle
	Node             Node
}
