package generate

import (
	"sort"

	"github.com/maruel/natural"

	"uidlc/css"
	"uidlc/uidl"
)

// GenerateProjectStylesheet renders shared project stylesheet, one class
// rule per definition ordered by name. It returns false when set has nothing
// to render.
func GenerateProjectStylesheet(set *uidl.ProjectStyleSet) (GeneratedFile, bool) {
	if set == nil || len(set.Definitions) == 0 {
		return GeneratedFile{}, false
	}

	byName := make(map[string]uidl.StyleDefinition, len(set.Definitions))
	keys := make([]string, 0, len(set.Definitions))
	for _, def := range set.Definitions {
		if _, dup := byName[def.Name]; dup {
			// the same class defined twice, keep deterministic winner
			if byName[def.Name].ID < def.ID {
				continue
			}
		} else {
			keys = append(keys, def.Name)
		}
		byName[def.Name] = def
	}
	sort.Sort(natural.StringSlice(keys))

	sheet := &css.Stylesheet{}
	for _, name := range keys {
		if rule, ok := css.FromStyleMap(name, byName[name].Content); ok {
			sheet.AddRule(rule)
		}
	}
	if sheet.IsEmpty() {
		return GeneratedFile{}, false
	}

	fileName := set.FileName
	if fileName == "" {
		fileName = "style"
	}
	return GeneratedFile{
		Name:    fileName + "." + KindStylesheet.FileType(),
		Kind:    KindStylesheet,
		Content: sheet.String(),
	}, true
}
