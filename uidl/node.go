package uidl

// Node is a single node of component tree.
type Node interface {
	node()
}

// Attribute keeps declared order of element attributes.
type Attribute struct {
	Name  string
	Value Value
}

// Event binds element event to a handler expression.
type Event struct {
	Name    string
	Handler string
}

// Element is the only node kind which may carry styles.
type Element struct {
	ElementType string
	Name        string // defaults to ElementType
	Key         string // explicit stable key, preferred for class names when set
	Attrs       []Attribute
	Events      []Event
	Children    []Node

	// Style is directly declared, unconditioned styling.
	Style StyleMap
	// StyleRefs lists referenced style ids in declaration order.
	StyleRefs []string
	// ReferencedStyles are entries declared on the node itself, they take
	// precedence over component level entries with the same id.
	ReferencedStyles map[string]ReferencedStyle
}

// Static is literal text.
type Static struct {
	Content string
}

// Dynamic is text bound to prop, state or local variable.
type Dynamic struct {
	Value Value
}

// Conditional renders Node when Reference is truthy, or equals Value when
// Value is set.
type Conditional struct {
	Reference Value
	Value     *string
	Node      Node
}

// Repeat renders Node for every item of DataSource.
type Repeat struct {
	DataSource Value
	Iterator   string
	Index      string // empty when index is not used
	Node       Node
}

// Slot is a content projection placeholder.
type Slot struct {
	Name     string
	Fallback Node
}

func (*Element) node()     {}
func (*Static) node()      {}
func (*Dynamic) node()     {}
func (*Conditional) node() {}
func (*Repeat) node()      {}
func (*Slot) node()        {}

// Children returns direct children of n in document order.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *Element:
		return n.Children
	case *Conditional:
		if n.Node != nil {
			return []Node{n.Node}
		}
	case *Repeat:
		if n.Node != nil {
			return []Node{n.Node}
		}
	case *Slot:
		if n.Fallback != nil {
			return []Node{n.Fallback}
		}
	}
	return nil
}

// NodeName returns name used for class generation and debugging.
func (e *Element) NodeName() string {
	if e.Name != "" {
		return e.Name
	}
	return e.ElementType
}

// LocalReference returns referenced style declared on element or in shared
// component mapping.
func (e *Element) LocalReference(id string, shared map[string]ReferencedStyle) (ReferencedStyle, bool) {
	if rs, ok := e.ReferencedStyles[id]; ok {
		return rs, true
	}
	rs, ok := shared[id]
	return rs, ok
}

// Builders mirror UIDL builder helpers.

func NewComponent(name string, node Node) *Component {
	return &Component{Name: name, Node: node}
}

func NewElement(elementType string, children ...Node) *Element {
	return &Element{ElementType: elementType, Name: elementType, Children: children}
}

func NewStatic(content string) *Static {
	return &Static{Content: content}
}

func NewDynamic(ref RefType, id string) *Dynamic {
	return &Dynamic{Value: DynamicValue(ref, id)}
}

func (e *Element) WithName(name string) *Element {
	e.Name = name
	return e
}

func (e *Element) WithKey(key string) *Element {
	e.Key = key
	return e
}

func (e *Element) WithAttr(name string, value Value) *Element {
	e.Attrs = append(e.Attrs, Attribute{Name: name, Value: value})
	return e
}

func (e *Element) WithEvent(name, handler string) *Element {
	e.Events = append(e.Events, Event{Name: name, Handler: handler})
	return e
}

func (e *Element) WithStyle(style StyleMap) *Element {
	e.Style = append(e.Style, style...)
	return e
}

// WithReferencedStyles declares entries on the element and references them
// in the given order.
func (e *Element) WithReferencedStyles(styles ...ReferencedStyle) *Element {
	if e.ReferencedStyles == nil {
		e.ReferencedStyles = make(map[string]ReferencedStyle, len(styles))
	}
	for _, rs := range styles {
		if _, exists := e.ReferencedStyles[rs.ID]; !exists {
			e.StyleRefs = append(e.StyleRefs, rs.ID)
		}
		e.ReferencedStyles[rs.ID] = rs
	}
	return e
}

// WithStyleRefs references entries by id only, usually from component level
// mapping.
func (e *Element) WithStyleRefs(ids ...string) *Element {
	e.StyleRefs = append(e.StyleRefs, ids...)
	return e
}

func (c *Component) WithReferencedStyles(styles ...ReferencedStyle) *Component {
	if c.ReferencedStyles == nil {
		c.ReferencedStyles = make(map[string]ReferencedStyle, len(styles))
	}
	for _, rs := range styles {
		c.ReferencedStyles[rs.ID] = rs
	}
	return c
}

func (c *Component) WithProp(name, typ string, def any) *Component {
	c.PropDefinitions = append(c.PropDefinitions, PropDefinition{Name: name, Type: typ, DefaultValue: def})
	return c
}

func (c *Component) WithState(name, typ string, def any) *Component {
	c.StateDefinitions = append(c.StateDefinitions, PropDefinition{Name: name, Type: typ, DefaultValue: def})
	return c
}
