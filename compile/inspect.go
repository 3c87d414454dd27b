package compile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	cli "github.com/urfave/cli/v3"
	"github.com/xlab/treeprint"

	"uidlc/generate"
	"uidlc/state"
	"uidlc/uidl"
	"uidlc/utils/debug"
)

// Inspect compiles single component without writing anything and prints
// element tree with styling decisions.
func Inspect(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("inspect")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if err := prepareProjectStyleSet(cmd, env, log); err != nil {
		return err
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	comp, err := uidl.DecodeComponent(data)
	if err != nil {
		return fmt.Errorf("unable to decode component (%s): %w", src, err)
	}
	res, err := generate.New(log, generatorOptions(env.Cfg)).
		GenerateComponent(comp, generate.ComponentOptions{ProjectStyleSet: env.ProjectStyleSet})
	if err != nil {
		return fmt.Errorf("unable to compile component %q: %w", comp.Name, err)
	}

	var w io.Writer = os.Stdout
	if cmd.Root() != nil && cmd.Root().Writer != nil {
		w = cmd.Root().Writer
	}
	_, err = io.WriteString(w, inspectTree(comp, res).String()+"\n")
	return err
}

// inspectTree mirrors component node tree annotating elements with their
// resolution outcome.
func inspectTree(comp *uidl.Component, res *generate.Result) treeprint.Tree {
	byPath := make(map[string]generate.ElementStyle, len(res.Elements))
	for _, e := range res.Elements {
		byPath[e.Path] = e
	}

	tree := treeprint.NewWithRoot(comp.Name)
	var add func(parent treeprint.Tree, n uidl.Node, path string)
	add = func(parent treeprint.Tree, n uidl.Node, path string) {
		children := uidl.Children(n)
		label := nodeLabel(n, byPath[path])
		if len(children) == 0 {
			parent.AddNode(label)
			return
		}
		branch := parent.AddBranch(label)
		for i, child := range children {
			add(branch, child, path+"."+strconv.Itoa(i))
		}
	}
	add(tree, comp.Node, "0")

	files := tree.AddBranch("files")
	for _, f := range res.Files {
		files.AddNode(f.Name)
	}
	return tree
}

func nodeLabel(n uidl.Node, es generate.ElementStyle) string {
	switch n := n.(type) {
	case *uidl.Element:
		var sb strings.Builder
		sb.WriteString(n.NodeName())
		sb.WriteString(" [" + es.Kind + "]")
		if len(es.Classes) > 0 {
			sb.WriteString(" ." + strings.Join(es.Classes, " ."))
		}
		if len(es.Ignored) > 0 {
			sb.WriteString(" ignored: " + strings.Join(es.Ignored, ", "))
		}
		return sb.String()
	case *uidl.Static:
		return strconv.Quote(n.Content)
	case *uidl.Dynamic:
		return "{" + n.Value.String() + "}"
	case *uidl.Conditional:
		return "if " + n.Reference.String()
	case *uidl.Repeat:
		return "for " + n.Iterator + " in " + n.DataSource.String()
	case *uidl.Slot:
		return "slot " + strconv.Quote(n.Name)
	default:
		return fmt.Sprintf("%T", n)
	}
}

// resolutionDump is plain text variant of inspect output stored in debug report.
func resolutionDump(name string, res *generate.Result) string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "Component %q: %d files", name, len(res.Files))
	for _, f := range res.Files {
		tw.Line(1, "File %s kind=%s bytes=%d", f.Name, f.Kind, len(f.Content))
	}
	tw.Line(0, "Elements: %d", len(res.Elements))
	for _, e := range res.Elements {
		tw.Line(1, "Element[%s] %s kind=%s groups=%d", e.Path, e.Element, e.Kind, e.Groups)
		tw.List(2, "classes", e.Classes)
		tw.List(2, "ignored", e.Ignored)
	}
	return tw.String()
}
