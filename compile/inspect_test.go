package compile

import (
	"strings"
	"testing"

	"uidlc/generate"
	"uidlc/uidl"
)

func TestInspectTree(t *testing.T) {
	comp, err := uidl.DecodeComponent([]byte(mediaComponent))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	res, err := generate.New(nil, generate.Options{}).GenerateComponent(comp, generate.ComponentOptions{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	out := inspectTree(comp, res).String()
	for _, want := range []string{"MyComponent", "container [inline] .container", `"Hello !!"`, "files", "my-component.css"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}

	dump := resolutionDump(comp.Name, res)
	if !strings.Contains(dump, "Element[0] container kind=inline groups=2") {
		t.Errorf("unexpected dump:\n%s", dump)
	}
	if !strings.Contains(dump, "classes: [container]") {
		t.Errorf("unexpected dump:\n%s", dump)
	}
}
