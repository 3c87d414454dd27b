package names

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"uidlc/uidl"
)

// ClassNamer hands out generated class names within a single component.
// Names depend only on the order of calls, so compiling the same tree twice
// produces the same names.
type ClassNamer struct {
	component string
	scoped    bool
	used      map[string]struct{}
	seen      map[string]int
}

// NewClassNamer returns namer for component. When scoped is set every
// generated name gets a short suffix derived from component name and
// element path, to avoid clashes between components sharing a page.
func NewClassNamer(component string, scoped bool) *ClassNamer {
	return &ClassNamer{
		component: component,
		scoped:    scoped,
		used:      make(map[string]struct{}),
		seen:      make(map[string]int),
	}
}

// Reserve marks names as taken, generated names never collide with them.
// Used for class names coming from elsewhere, e.g. project style set.
func (n *ClassNamer) Reserve(names ...string) {
	for _, name := range names {
		n.used[name] = struct{}{}
	}
}

// Name returns class name for element located at path. Base name is
// element key if set, otherwise element name. Repeated bases get "-1",
// "-2"... suffixes in call order.
func (n *ClassNamer) Name(el *uidl.Element, path string) string {
	base := el.Key
	if base == "" {
		base = el.NodeName()
	}
	base = Kebab(base)
	switch {
	case base == "":
		base = "el"
	case base[0] < 'a' || base[0] > 'z':
		// class selector can not start with digit
		base = "el-" + base
	}

	name := base
	for {
		if cnt := n.seen[base]; cnt > 0 {
			name = base + "-" + strconv.Itoa(cnt)
		}
		n.seen[base]++
		if _, taken := n.used[name]; !taken {
			break
		}
	}
	n.used[name] = struct{}{}

	if n.scoped {
		name += "-" + scopeHash(n.component, path)
	}
	return name
}

func scopeHash(component, path string) string {
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(component+"/"+path))
	return strings.ReplaceAll(id.String(), "-", "")[:6]
}
