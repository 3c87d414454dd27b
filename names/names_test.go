package names

import (
	"testing"

	"uidlc/uidl"
)

func TestKebab(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"MyComponent", "my-component"},
		{"my-component", "my-component"},
		{"primaryButton", "primary-button"},
		{"HTMLParser", "html-parser"},
		{"Card 2", "card-2"},
		{"container", "container"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Kebab(tt.in); got != tt.want {
			t.Errorf("Kebab(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPascal(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"my-component", "MyComponent"},
		{"MyComponent", "MyComponent"},
		{"simple card", "SimpleCard"},
		{"button", "Button"},
	}
	for _, tt := range tests {
		if got := Pascal(tt.in); got != tt.want {
			t.Errorf("Pascal(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSelector(t *testing.T) {
	if got := Selector("MyComponent"); got != "app-my-component" {
		t.Errorf("unexpected selector %q", got)
	}
}

func TestClassNamer_Duplicates(t *testing.T) {
	n := NewClassNamer("MyComponent", false)

	got := []string{
		n.Name(uidl.NewElement("container"), "0"),
		n.Name(uidl.NewElement("container"), "0.0"),
		n.Name(uidl.NewElement("text").WithKey("titleText"), "0.1"),
		n.Name(uidl.NewElement("container"), "0.2"),
		n.Name(uidl.NewElement("container").WithName("container-1"), "0.3"),
		n.Name(uidl.NewElement("").WithName(""), "0.4"),
	}
	want := []string{"container", "container-1", "title-text", "container-2", "container-1-1", "el"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("name %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestClassNamer_InvalidStart(t *testing.T) {
	tests := []struct {
		el   *uidl.Element
		want string
	}{
		{uidl.NewElement("container").WithKey("1col"), "el-1col"},
		{uidl.NewElement("container").WithKey("42"), "el-42"},
		{uidl.NewElement("container").WithName("9Lives"), "el-9-lives"},
		{uidl.NewElement("container").WithKey("col1"), "col1"},
	}

	for _, tt := range tests {
		if got := NewClassNamer("Grid", false).Name(tt.el, "0"); got != tt.want {
			t.Errorf("Name(%q/%q) = %q, want %q", tt.el.Key, tt.el.Name, got, tt.want)
		}
	}
}

func TestClassNamer_Reserve(t *testing.T) {
	n := NewClassNamer("MyComponent", false)
	n.Reserve("text", "text-1", "primaryButton")

	got := []string{
		n.Name(uidl.NewElement("text"), "0.0"),
		n.Name(uidl.NewElement("text"), "0.1"),
		n.Name(uidl.NewElement("container"), "0.2"),
	}
	want := []string{"text-2", "text-3", "container"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("name %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestClassNamer_Scoped(t *testing.T) {
	a := NewClassNamer("MyComponent", true).Name(uidl.NewElement("container"), "0")
	b := NewClassNamer("MyComponent", true).Name(uidl.NewElement("container"), "0")
	c := NewClassNamer("Other", true).Name(uidl.NewElement("container"), "0")

	if a != b {
		t.Errorf("scoped names must be stable: %q != %q", a, b)
	}
	if a == c {
		t.Errorf("scoped names must differ between components: %q", a)
	}
	if len(a) != len("container-")+6 {
		t.Errorf("unexpected scoped name %q", a)
	}
}
