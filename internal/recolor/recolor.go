// Package recolor swaps a placeholder fill color in SVG source text.
//
// Matching is purely textual: only the exact attribute spelling
// fill="<source>" is replaced, wherever it appears in the document.
package recolor

import (
	"regexp"
)

// DefaultSource is the fill color icons are authored with.
const DefaultSource = "#88C0D0"

type Replacer struct {
	re *regexp.Regexp
}

// New returns a Replacer for fill="<source>". The source color is matched
// literally and case-sensitively.
func New(source string) *Replacer {
	return &Replacer{
		re: regexp.MustCompile(regexp.QuoteMeta(attr(source))),
	}
}

// Replace rewrites every fill="<source>" in svg to fill="<color>". The color
// is inserted verbatim, without escaping or validation.
func (r *Replacer) Replace(svg, color string) string {
	return r.re.ReplaceAllLiteralString(svg, attr(color))
}

// Count reports how many placeholder fills svg contains.
func (r *Replacer) Count(svg string) int {
	return len(r.re.FindAllStringIndex(svg, -1))
}

func attr(color string) string {
	return `fill="` + color + `"`
}
