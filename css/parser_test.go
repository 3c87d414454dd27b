package css_test

import (
	"testing"

	"go.uber.org/zap"

	"uidlc/css"
	"uidlc/uidl"
)

func TestParser_ClassRules(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`
.primaryButton { background: blue; color: white; }
.card, .panel { border: 1px  solid #ccc; }
`))

	rules := sheet.Rules()
	if len(rules) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(rules))
	}
	if rules[0].Selector.Class != "primaryButton" {
		t.Errorf("expected class 'primaryButton', got '%s'", rules[0].Selector.Class)
	}
	if len(rules[0].Declarations) != 2 || rules[0].Declarations[0].Property != "background" {
		t.Errorf("unexpected declarations: %v", rules[0].Declarations)
	}
	if v, _ := rules[2].Get("border"); v != "1px solid #ccc" {
		t.Errorf("expected border '1px solid #ccc', got '%s'", v)
	}
	if len(sheet.RulesBySelector(".panel")) != 1 {
		t.Error("expected '.panel' selector rule")
	}
}

func TestParser_PseudoClass(t *testing.T) {
	p := css.NewParser(nil)

	sheet := p.Parse([]byte(`.link:hover { color: red; }`))
	rules := sheet.Rules()
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
	if sel := rules[0].Selector; sel.Class != "link" || len(sel.Pseudo) != 1 || sel.Pseudo[0] != "hover" {
		t.Errorf("unexpected selector: %+v", sel)
	}
	if rules[0].Selector.IsClassOnly() {
		t.Error("selector with pseudo-class is not class only")
	}
}

func TestParser_UnsupportedSelectors(t *testing.T) {
	p := css.NewParser(nil)

	sheet := p.Parse([]byte(`
p { margin: 0; }
.a > .b { color: red; }
#id { color: blue; }
.x::before { content: "x"; }
.ok { color: green; }
`))
	if rules := sheet.Rules(); len(rules) != 1 || rules[0].Selector.Class != "ok" {
		t.Fatalf("expected only '.ok' rule, got %v", rules)
	}
	if len(sheet.Warnings) != 4 {
		t.Errorf("expected 4 warnings, got %d: %v", len(sheet.Warnings), sheet.Warnings)
	}
}

func TestParser_MediaBlock(t *testing.T) {
	p := css.NewParser(nil)

	sheet := p.Parse([]byte(`@media (max-width: 600px) { .a { display: none; } }`))
	if len(sheet.Items) != 1 || sheet.Items[0].MediaBlock == nil {
		t.Fatalf("expected single media block, got %v", sheet.Items)
	}
	mb := sheet.Items[0].MediaBlock
	if len(mb.Rules) != 1 || mb.Rules[0].Selector.Class != "a" {
		t.Errorf("unexpected media rules: %v", mb.Rules)
	}
}

func TestProjectStyleSet(t *testing.T) {
	p := css.NewParser(nil)

	sheet := p.Parse([]byte(`
.primaryButton { background: blue; color: white; }
.primaryButton { color: black; padding: 4px; }
.primaryButton:hover { color: red; }
@media (max-width: 600px) { .primaryButton { display: none; } }
`))
	set := css.ProjectStyleSet(sheet, "style", "..")
	if set.FileName != "style" || set.Path != ".." {
		t.Errorf("unexpected file name or path: %q %q", set.FileName, set.Path)
	}
	if len(set.Definitions) != 1 {
		t.Fatalf("expected 1 definition, got %d", len(set.Definitions))
	}

	def, ok := set.Lookup("primaryButton")
	if !ok {
		t.Fatal("expected 'primaryButton' definition")
	}
	want := uidl.Styles("background", "blue", "color", "black", "padding", "4px")
	if len(def.Content) != len(want) {
		t.Fatalf("expected %d declarations, got %v", len(want), def.Content)
	}
	for i := range want {
		if def.Content[i] != want[i] {
			t.Errorf("declaration %d: expected %v, got %v", i, want[i], def.Content[i])
		}
	}
	if len(sheet.Warnings) != 2 {
		t.Errorf("expected 2 warnings, got %v", sheet.Warnings)
	}
}
