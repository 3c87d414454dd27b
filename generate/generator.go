// Package generate compiles UIDL component into markup, logic and (when
// needed) stylesheet files.
package generate

import (
	"errors"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"uidlc/css"
	"uidlc/names"
	"uidlc/style"
	"uidlc/uidl"
)

// Options are generator wide settings.
type Options struct {
	// ScopedClassNames appends component specific hash to generated class names.
	ScopedClassNames bool
	// Indent is number of spaces used for markup indentation.
	Indent int
}

// ComponentOptions are per compile settings.
type ComponentOptions struct {
	// ProjectStyleSet is shared read-only set of reusable styles, may be nil.
	ProjectStyleSet *uidl.ProjectStyleSet
}

// Generator is safe for concurrent use, it keeps no per compile state.
type Generator struct {
	log      *zap.Logger
	opts     Options
	resolver *style.Resolver
}

func New(log *zap.Logger, opts Options) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		log:      log.Named("generate"),
		opts:     opts,
		resolver: style.NewResolver(log),
	}
}

// elementPlan is what collect pass decided for a single element.
type elementPlan struct {
	el       *uidl.Element
	path     string
	resolved style.Resolved
	classes  []string
}

// plan accumulates decisions for the whole tree before anything is rendered.
// Elements are keyed by structural path so the same element value used at
// two places of the tree gets two independent decisions.
type plan struct {
	elements  map[string]*elementPlan
	order     []*elementPlan
	sheet     *css.Stylesheet
	anyInline bool
}

type frame struct {
	node uidl.Node
	path string
}

// collect walks the tree depth-first in document order, resolving styles of
// every element and accumulating stylesheet fragments. Errors for all
// elements are reported together.
func (g *Generator) collect(comp *uidl.Component, set *uidl.ProjectStyleSet) (*plan, error) {
	p := &plan{
		elements: make(map[string]*elementPlan),
		sheet:    &css.Stylesheet{},
	}

	var errs error
	stack := []frame{{node: comp.Node, path: "0"}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		children := uidl.Children(f.node)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: children[i], path: f.path + "." + strconv.Itoa(i)})
		}

		el, ok := f.node.(*uidl.Element)
		if !ok {
			continue
		}
		resolved, err := g.resolver.Resolve(el, comp.ReferencedStyles, set)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		ep := &elementPlan{el: el, path: f.path, resolved: resolved}
		p.elements[f.path] = ep
		p.order = append(p.order, ep)
	}
	if errs != nil {
		return nil, errs
	}

	// generated names must not clash with any class already present in markup
	namer := names.NewClassNamer(comp.Name, g.opts.ScopedClassNames)
	for _, ep := range p.order {
		namer.Reserve(ep.resolved.Classes...)
		for _, a := range ep.el.Attrs {
			if a.Name == "class" && !a.Value.Dynamic {
				namer.Reserve(strings.Fields(a.Value.Content)...)
			}
		}
	}

	for _, ep := range p.order {
		switch ep.resolved.Kind {
		case style.KindInline:
			className := namer.Name(ep.el, ep.path)
			if frag, ok := css.Synthesize(className, ep.resolved.Groups); ok {
				p.sheet.Append(frag)
				p.anyInline = true
			}
			ep.classes = []string{className}
		case style.KindProjectClass:
			ep.classes = ep.resolved.Classes
		}
	}
	return p, nil
}

// GenerateComponent compiles component. It either returns complete set of
// files or an error, never partial output. Stylesheet file is produced only
// when at least one element has inline styles, and logic file references it
// only then.
func (g *Generator) GenerateComponent(comp *uidl.Component, opts ComponentOptions) (*Result, error) {
	if comp == nil || comp.Node == nil {
		return nil, errors.New("component has no node tree")
	}
	if comp.Name == "" {
		return nil, errors.New("component has no name")
	}

	// collect
	p, err := g.collect(comp, opts.ProjectStyleSet)
	if err != nil {
		return nil, err
	}

	// decide
	base := names.Kebab(comp.Name)
	withStylesheet := p.anyInline
	stylesheetName := ""
	if withStylesheet {
		stylesheetName = base + "." + KindStylesheet.FileType()
	}

	// render
	markup, err := g.renderMarkup(comp, p)
	if err != nil {
		return nil, err
	}
	logic, err := g.renderLogic(comp, base, stylesheetName)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Files: []GeneratedFile{
			{Name: base + "." + KindMarkup.FileType(), Kind: KindMarkup, Content: markup},
			{Name: base + "." + KindLogic.FileType(), Kind: KindLogic, Content: logic},
		},
	}
	if withStylesheet {
		res.Files = append(res.Files, GeneratedFile{Name: stylesheetName, Kind: KindStylesheet, Content: p.sheet.String()})
	}
	for _, ep := range p.order {
		res.Elements = append(res.Elements, ElementStyle{
			Path:    ep.path,
			Element: ep.el.NodeName(),
			Kind:    ep.resolved.Kind.String(),
			Classes: ep.classes,
			Ignored: ep.resolved.Ignored,
			Groups:  len(ep.resolved.Groups),
		})
	}

	g.log.Debug("Component generated",
		zap.String("component", comp.Name),
		zap.Int("files", len(res.Files)),
		zap.Int("elements", len(res.Elements)),
		zap.Bool("stylesheet", withStylesheet))
	return res, nil
}
