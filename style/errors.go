package style

import "fmt"

// MissingStyleReferenceError is returned when element references style which
// cannot be resolved. It aborts compilation of the whole component.
type MissingStyleReferenceError struct {
	// ID is the unresolved id: referenced style id, or project style
	// definition id when Via is set.
	ID string
	// Via is referenced style id which points into project style set.
	Via string
	// Element is the name of referencing element.
	Element string
	// NoProjectStyleSet is set when project reference could not be resolved
	// because no project style set was supplied at all.
	NoProjectStyleSet bool
}

func (e *MissingStyleReferenceError) Error() string {
	switch {
	case e.Via == "":
		return fmt.Sprintf("element %q references undefined style %q", e.Element, e.ID)
	case e.NoProjectStyleSet:
		return fmt.Sprintf("element %q uses project style %q (via %q) but no project style set was supplied", e.Element, e.ID, e.Via)
	default:
		return fmt.Sprintf("element %q uses project style %q (via %q) which is not defined in project style set", e.Element, e.ID, e.Via)
	}
}
