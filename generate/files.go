package generate

import "fmt"

// Kind is the role of generated file.
type Kind int

const (
	KindMarkup Kind = iota
	KindLogic
	KindStylesheet
)

// FileType returns file extension of the kind without dot.
func (k Kind) FileType() string {
	switch k {
	case KindMarkup:
		return "html"
	case KindLogic:
		return "ts"
	case KindStylesheet:
		return "css"
	default:
		panic(fmt.Sprintf("unknown file kind %d", int(k)))
	}
}

func (k Kind) String() string {
	switch k {
	case KindMarkup:
		return "markup"
	case KindLogic:
		return "logic"
	case KindStylesheet:
		return "stylesheet"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// GeneratedFile is a single output artifact. Name is relative to component
// output directory.
type GeneratedFile struct {
	Name    string
	Kind    Kind
	Content string
}

// FileType returns file extension without dot.
func (f GeneratedFile) FileType() string {
	return f.Kind.FileType()
}

// ElementStyle records styling decision made for a single element, used for
// diagnostics.
type ElementStyle struct {
	Path    string // structural position, "0.1.2"
	Element string
	Kind    string
	Classes []string
	Ignored []string
	Groups  int
}

// Result is the outcome of compiling a single component: 2 files when no
// element has inline styles, 3 otherwise.
type Result struct {
	Files    []GeneratedFile
	Elements []ElementStyle
}

// File returns generated file of the requested kind.
func (r *Result) File(kind Kind) (GeneratedFile, bool) {
	for _, f := range r.Files {
		if f.Kind == kind {
			return f, true
		}
	}
	return GeneratedFile{}, false
}
