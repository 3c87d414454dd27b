// Package names derives file, class and selector names from component and
// element names.
package names

import (
	"strings"
	"unicode"

	"github.com/gosimple/slug"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// splitCamel inserts separator at lower-to-upper and acronym boundaries:
// "myComponent" -> "my-Component", "HTMLParser" -> "HTML-Parser".
func splitCamel(s string) string {
	rs := []rune(s)
	var sb strings.Builder
	sb.Grow(len(s) + 4)
	for i, r := range rs {
		if i > 0 && unicode.IsUpper(r) {
			prev := rs[i-1]
			nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				sb.WriteByte('-')
			}
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Kebab converts name into lower case, dash separated form usable as file
// name or CSS class: "MyComponent" -> "my-component".
func Kebab(name string) string {
	return slug.Make(splitCamel(name))
}

// Pascal converts name into upper camel case: "my component" -> "MyComponent".
func Pascal(name string) string {
	caser := cases.Title(language.Und)

	var sb strings.Builder
	for part := range strings.SplitSeq(Kebab(name), "-") {
		sb.WriteString(caser.String(part))
	}
	return sb.String()
}

// Selector returns Angular component selector for the component name.
func Selector(name string) string {
	return "app-" + Kebab(name)
}
