package css

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Declaration is a single "property: value" pair. Values are kept as
// declared, no unit inference or validation is done.
type Declaration struct {
	Property string
	Value    string
}

// Selector is a simple class selector with optional pseudo-classes. Raw is
// kept for selectors parsed from source which are not class-only.
type Selector struct {
	Raw    string   // original selector text, if parsed
	Class  string   // class name without dot
	Pseudo []string // pseudo-classes without colon, e.g. "hover"
}

// IsClassOnly returns true for ".name" selector without pseudo-classes.
func (s Selector) IsClassOnly() bool {
	return s.Class != "" && len(s.Pseudo) == 0 && (s.Raw == "" || s.Raw == "."+s.Class)
}

// String returns CSS representation of the selector.
func (s Selector) String() string {
	if s.Class == "" {
		return s.Raw
	}
	var sb strings.Builder
	sb.WriteByte('.')
	sb.WriteString(s.Class)
	for _, p := range s.Pseudo {
		sb.WriteByte(':')
		sb.WriteString(p)
	}
	return sb.String()
}

// Rule is a selector with declarations in declaration order.
type Rule struct {
	Selector     Selector
	Declarations []Declaration
}

// Get returns value of the last declaration of the property.
func (r Rule) Get(property string) (string, bool) {
	for i := len(r.Declarations) - 1; i >= 0; i-- {
		if r.Declarations[i].Property == property {
			return r.Declarations[i].Value, true
		}
	}
	return "", false
}

// MediaQuery is @media condition. Generated queries carry width bounds,
// parsed ones carry original text.
type MediaQuery struct {
	Raw      string
	MinWidth *int
	MaxWidth *int
}

// String returns query text without "@media" keyword.
func (mq MediaQuery) String() string {
	if mq.Raw != "" {
		return mq.Raw
	}
	var parts []string
	if mq.MinWidth != nil {
		parts = append(parts, "(min-width: "+strconv.Itoa(*mq.MinWidth)+"px)")
	}
	if mq.MaxWidth != nil {
		parts = append(parts, "(max-width: "+strconv.Itoa(*mq.MaxWidth)+"px)")
	}
	return strings.Join(parts, " and ")
}

// MediaBlock represents a @media block with its query and nested rules.
type MediaBlock struct {
	Query MediaQuery
	Rules []Rule
}

// StylesheetItem is a single top-level item in a stylesheet.
// Exactly one of Rule or MediaBlock is non-nil.
type StylesheetItem struct {
	Rule       *Rule
	MediaBlock *MediaBlock
}

// Stylesheet is an ordered list of rules and media blocks.
type Stylesheet struct {
	Items    []StylesheetItem // All top-level items in source order
	Warnings []string         // Warnings for unsupported features
}

// AddRule appends top-level rule.
func (s *Stylesheet) AddRule(r Rule) {
	s.Items = append(s.Items, StylesheetItem{Rule: &r})
}

// AddMediaBlock appends @media block.
func (s *Stylesheet) AddMediaBlock(mb MediaBlock) {
	s.Items = append(s.Items, StylesheetItem{MediaBlock: &mb})
}

// Append appends all items of other stylesheet keeping their order.
func (s *Stylesheet) Append(other *Stylesheet) {
	if other == nil {
		return
	}
	s.Items = append(s.Items, other.Items...)
	s.Warnings = append(s.Warnings, other.Warnings...)
}

// IsEmpty returns true when there is nothing to write.
func (s *Stylesheet) IsEmpty() bool {
	return s == nil || len(s.Items) == 0
}

// Rules returns all top-level rules in source order.
func (s *Stylesheet) Rules() []Rule {
	var rules []Rule
	for _, item := range s.Items {
		if item.Rule != nil {
			rules = append(rules, *item.Rule)
		}
	}
	return rules
}

// RulesBySelector returns all top-level rules matching the given selector string.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	var matches []Rule
	for _, item := range s.Items {
		if item.Rule != nil && item.Rule.Selector.String() == selector {
			matches = append(matches, *item.Rule)
		}
	}
	return matches
}

// WriteTo writes the stylesheet to w in source order, implementing io.WriterTo.
// Declarations are written in declaration order.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, item := range s.Items {
		var n int
		var err error

		switch {
		case item.MediaBlock != nil:
			n, err = writeMediaBlock(w, item.MediaBlock)
		case item.Rule != nil:
			n, err = writeRule(w, item.Rule, "")
		}

		total += int64(n)
		if err != nil {
			return total, err
		}

		// Add blank line between items (except after last)
		if i < len(s.Items)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// writeRule writes a single CSS rule to w prefixing every line with indent.
func writeRule(w io.Writer, rule *Rule, indent string) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "%s%s {\n", indent, rule.Selector)
	total += n
	if err != nil {
		return total, err
	}
	for _, d := range rule.Declarations {
		n, err = fmt.Fprintf(w, "%s  %s: %s;\n", indent, d.Property, d.Value)
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err = fmt.Fprintf(w, "%s}\n", indent)
	total += n
	return total, err
}

// writeMediaBlock writes an @media block to w. Query starting with
// parenthesis is written right after the keyword: "@media(max-width: 991px)".
func writeMediaBlock(w io.Writer, mb *MediaBlock) (int, error) {
	var total int

	query := mb.Query.String()
	sep := " "
	if strings.HasPrefix(query, "(") {
		sep = ""
	}
	n, err := fmt.Fprintf(w, "@media%s%s {\n", sep, query)
	total += n
	if err != nil {
		return total, err
	}

	for i := range mb.Rules {
		n, err = writeRule(w, &mb.Rules[i], "  ")
		total += n
		if err != nil {
			return total, err
		}

		// Blank line between rules in a media block (except after last)
		if i < len(mb.Rules)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += n
			if err != nil {
				return total, err
			}
		}
	}

	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}
