package generate

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"uidlc/names"
	"uidlc/uidl"
)

//go:embed component.ts.tmpl
var componentTemplate string

var logicTemplate = template.Must(template.New("component.ts").Funcs(sprig.FuncMap()).Parse(componentTemplate))

type field struct {
	Name    string
	Type    string
	Default string
}

// logicValues is what we make available for logic template expansion.
type logicValues struct {
	Selector    string
	TemplateURL string
	StyleURL    string // empty when component has no stylesheet
	ClassName   string
	Props       []field
	States      []field
}

func (g *Generator) renderLogic(comp *uidl.Component, base, stylesheetName string) (string, error) {
	values := logicValues{
		Selector:    names.Selector(comp.Name),
		TemplateURL: base + "." + KindMarkup.FileType(),
		StyleURL:    stylesheetName,
		ClassName:   names.Pascal(comp.Name),
	}
	var err error
	if values.Props, err = fields(comp.PropDefinitions); err != nil {
		return "", fmt.Errorf("prop definitions: %w", err)
	}
	if values.States, err = fields(comp.StateDefinitions); err != nil {
		return "", fmt.Errorf("state definitions: %w", err)
	}

	buf := new(bytes.Buffer)
	if err := logicTemplate.Execute(buf, values); err != nil {
		return "", fmt.Errorf("unable to expand logic template: %w", err)
	}
	return buf.String(), nil
}

func fields(defs []uidl.PropDefinition) ([]field, error) {
	result := make([]field, 0, len(defs))
	for _, d := range defs {
		def, err := tsLiteral(d.DefaultValue)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.Name, err)
		}
		result = append(result, field{Name: d.Name, Type: tsType(d.Type), Default: def})
	}
	return result, nil
}

func tsType(t string) string {
	switch t {
	case "string", "number", "boolean", "object":
		return t
	case "array":
		return "unknown[]"
	case "func", "function":
		return "() => void"
	case "children":
		return "unknown"
	default:
		return "any"
	}
}

// tsLiteral renders default value, empty result means no initializer.
func tsLiteral(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return quote(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}
