// Package style decides which styles apply to an element and where they
// live: in the component stylesheet or in the shared project style set.
package style

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"uidlc/uidl"
)

// Kind is the resolution outcome for a single element.
type Kind int

const (
	// KindNone - element is not styled, no class attribute.
	KindNone Kind = iota
	// KindInline - element gets generated class and rules in component stylesheet.
	KindInline
	// KindProjectClass - element uses class names from project style set.
	KindProjectClass
)

func (k Kind) String() string {
	switch k {
	case KindInline:
		return "inline"
	case KindProjectClass:
		return "project-class"
	default:
		return "none"
	}
}

// Resolved is element styling after resolution.
type Resolved struct {
	Kind Kind
	// Groups are merged condition groups, set for KindInline.
	Groups []Group
	// Classes are project style names in reference order, set for KindProjectClass.
	Classes []string
	// Bindings are directly declared styles bound to props or state. They
	// never go to stylesheet and are rendered by markup as style binding.
	Bindings uidl.StyleMap
	// Ignored project classes, inline styling takes precedence over them.
	Ignored []string
}

// Resolver resolves element style references. It keeps no state between
// calls and may be shared by concurrent compilations.
type Resolver struct {
	log *zap.Logger
}

func NewResolver(log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{log: log.Named("style")}
}

// Resolve produces styling of the element. Referenced ids are looked up on
// element first and then in shared component mapping, project references
// are looked up in project style set which may be nil.
//
// Every unresolvable reference of the element is reported, errors are
// combined and each one is *MissingStyleReferenceError.
func (r *Resolver) Resolve(el *uidl.Element, shared map[string]uidl.ReferencedStyle, set *uidl.ProjectStyleSet) (Resolved, error) {
	var (
		errs    error
		inlined []*uidl.InlinedStyle
		classes []string
	)

	for _, id := range el.StyleRefs {
		rs, ok := el.LocalReference(id, shared)
		if !ok {
			errs = multierr.Append(errs, &MissingStyleReferenceError{ID: id, Element: el.NodeName()})
			continue
		}

		switch c := rs.Content.(type) {
		case *uidl.InlinedStyle:
			inlined = append(inlined, c)
		case *uidl.ProjectReferencedStyle:
			def, ok := set.Lookup(c.ReferenceID)
			if !ok {
				errs = multierr.Append(errs, &MissingStyleReferenceError{
					ID:                c.ReferenceID,
					Via:               id,
					Element:           el.NodeName(),
					NoProjectStyleSet: set == nil,
				})
				continue
			}
			classes = append(classes, def.Name)
		default:
			errs = multierr.Append(errs, fmt.Errorf("element %q: referenced style %q has unsupported content %T", el.NodeName(), id, rs.Content))
		}
	}
	if errs != nil {
		return Resolved{}, errs
	}

	res := Resolved{
		Groups:   Merge(el.Style, inlined),
		Bindings: el.Style.Dynamic(),
	}
	switch {
	case len(res.Groups) > 0:
		res.Kind = KindInline
		if len(classes) > 0 {
			res.Ignored = classes
			r.log.Warn("Element has both inline and project styles, project styles ignored",
				zap.String("element", el.NodeName()), zap.Strings("classes", classes))
		}
	case len(classes) > 0:
		res.Kind = KindProjectClass
		res.Classes = classes
		res.Groups = nil
	default:
		res.Groups = nil
	}

	r.log.Debug("Resolved element style",
		zap.String("element", el.NodeName()),
		zap.Stringer("kind", res.Kind),
		zap.Int("groups", len(res.Groups)),
		zap.Int("bindings", len(res.Bindings)))
	return res, nil
}
