package style

import (
	"slices"
	"strconv"
	"strings"

	"uidlc/uidl"
)

// Group is a set of declarations sharing the same condition key. Group
// without conditions is the base (unconditioned) group.
type Group struct {
	Conditions []uidl.Condition
	Styles     uidl.StyleMap
}

// IsBase reports whether group applies unconditionally.
func (g Group) IsBase() bool {
	return len(g.Conditions) == 0
}

// Key is canonical text form of group conditions, empty for base group.
func (g Group) Key() string {
	return conditionKey(g.Conditions)
}

func conditionKey(conds []uidl.Condition) string {
	if len(conds) == 0 {
		return ""
	}
	parts := make([]string, 0, len(conds))
	for _, c := range conds {
		switch c := c.(type) {
		case uidl.ScreenSize:
			var sb strings.Builder
			sb.WriteString("media(")
			if c.MinWidth != nil {
				sb.WriteString("min=" + strconv.Itoa(*c.MinWidth))
			}
			sb.WriteByte(',')
			if c.MaxWidth != nil {
				sb.WriteString("max=" + strconv.Itoa(*c.MaxWidth))
			}
			sb.WriteByte(')')
			parts = append(parts, sb.String())
		case uidl.ElementState:
			parts = append(parts, "state("+c.State+")")
		}
	}
	// compound conditions are the same group whatever order they are listed in
	slices.Sort(parts)
	return strings.Join(parts, "|")
}

// groupBuilder merges declarations keeping first position of every property.
type groupBuilder struct {
	conds []uidl.Condition
	decls uidl.StyleMap
	pos   map[string]int
}

func (b *groupBuilder) add(styles uidl.StyleMap) {
	for _, d := range styles {
		if i, ok := b.pos[d.Property]; ok {
			b.decls[i].Value = d.Value
			continue
		}
		b.pos[d.Property] = len(b.decls)
		b.decls = append(b.decls, d)
	}
}

// Merge groups static direct styles and inlined referenced styles by
// condition. Direct styles form the base group. Declarations for the same
// condition are merged in declaration order: later values replace earlier
// ones for the same property, everything else is retained. Base group comes
// first, other groups follow in the order their condition was first seen.
// Groups without declarations are dropped.
func Merge(direct uidl.StyleMap, inlined []*uidl.InlinedStyle) []Group {
	var (
		builders []*groupBuilder
		index    = make(map[string]*groupBuilder)
	)
	add := func(conds []uidl.Condition, styles uidl.StyleMap) {
		key := conditionKey(conds)
		b, ok := index[key]
		if !ok {
			b = &groupBuilder{conds: conds, pos: make(map[string]int)}
			index[key] = b
			builders = append(builders, b)
		}
		b.add(styles)
	}

	add(nil, direct.Static())
	for _, inl := range inlined {
		if inl == nil {
			continue
		}
		add(inl.Conditions, inl.Styles.Static())
	}

	groups := make([]Group, 0, len(builders))
	// base group is always the first builder
	for _, b := range builders {
		if len(b.decls) == 0 {
			continue
		}
		groups = append(groups, Group{Conditions: b.conds, Styles: b.decls})
	}
	return groups
}
