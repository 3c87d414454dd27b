// Package debug has helpers producing readable dumps for debug reports.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

// TreeWriter writes indented lines, two spaces per depth level.
type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// TextBlock writes label with quoted value, empty value is written as is.
func (tw TreeWriter) TextBlock(depth int, label, value string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// List writes label with comma separated items, nothing is written for
// empty list.
func (tw TreeWriter) List(depth int, label string, items []string) {
	if len(items) == 0 {
		return
	}
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": [")
	tw.w.WriteString(strings.Join(items, ", "))
	tw.w.WriteString("]\n")
}

// Pairs writes "key: value" lines one level deeper than label.
func (tw TreeWriter) Pairs(depth int, label string, pairs [][2]string) {
	if len(pairs) == 0 {
		return
	}
	tw.Line(depth, "%s:", label)
	for _, p := range pairs {
		tw.Line(depth+1, "%s: %s", p[0], p[1])
	}
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
