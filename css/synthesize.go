package css

import (
	"uidlc/style"
	"uidlc/uidl"
)

// Synthesize renders merged condition groups of a single element into
// stylesheet fragment scoped to className. Base group becomes plain rule,
// element state conditions become pseudo-classes and screen size conditions
// become @media blocks. It returns false when there is nothing to emit.
func Synthesize(className string, groups []style.Group) (*Stylesheet, bool) {
	sheet := &Stylesheet{}
	for _, g := range groups {
		decls := declarations(g.Styles)
		if len(decls) == 0 {
			continue
		}

		sel := Selector{Class: className}
		var (
			mq      MediaQuery
			inMedia bool
		)
		for _, c := range g.Conditions {
			switch c := c.(type) {
			case uidl.ScreenSize:
				// compound screen sizes narrow the same query
				if c.MinWidth != nil {
					mq.MinWidth = c.MinWidth
				}
				if c.MaxWidth != nil {
					mq.MaxWidth = c.MaxWidth
				}
				inMedia = inMedia || c.MinWidth != nil || c.MaxWidth != nil
			case uidl.ElementState:
				sel.Pseudo = append(sel.Pseudo, c.State)
			}
		}

		rule := Rule{Selector: sel, Declarations: decls}
		if inMedia {
			sheet.AddMediaBlock(MediaBlock{Query: mq, Rules: []Rule{rule}})
		} else {
			sheet.AddRule(rule)
		}
	}
	if sheet.IsEmpty() {
		return nil, false
	}
	return sheet, true
}

// FromStyleMap builds a class rule from static declarations, dynamic ones
// are skipped.
func FromStyleMap(className string, styles uidl.StyleMap) (Rule, bool) {
	decls := declarations(styles)
	return Rule{Selector: Selector{Class: className}, Declarations: decls}, len(decls) > 0
}

func declarations(styles uidl.StyleMap) []Declaration {
	var decls []Declaration
	for _, d := range styles {
		if d.Value.Dynamic {
			continue
		}
		decls = append(decls, Declaration{Property: d.Property, Value: d.Value.Content})
	}
	return decls
}
