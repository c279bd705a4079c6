// Package normalize folds free text typed at the front desk into comparable keys.
// Key pipeline
// 1 drop invalid UTF-8 and control characters
// 2 Unicode NFKD so accents split off their base letter
// 3 Case folding
// 4 Remove combining and format marks
// 5 Width fold fullwidth to ASCII
// 6 Collapse whitespace to single spaces and trim
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKD,
			cases.Fold(),
			runes.Remove(runes.In(unicode.Mn)), // accents after NFKD
			runes.Remove(runes.In(unicode.Cf)), // ZWJ ZWNJ FEFF etc
			width.Fold,
		)
	},
}

// Key returns the accent and case insensitive search form of s,
// so "José  DELA Cruz" and "jose dela cruz" compare equal
func Key(s string) string {
	s = Clean(s)
	if s == "" {
		return ""
	}

	tr := chainPool.Get().(transform.Transformer)
	ks, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		ks = strings.ToLower(s)
	}
	return Collapse(ks)
}

// Keys joins the keys of several fields with single spaces, skipping blanks
func Keys(fields ...string) string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if k := Key(f); k != "" {
			out = append(out, k)
		}
	}
	return strings.Join(out, " ")
}

// Clean drops invalid UTF-8 and control characters, keeping tabs and newlines
func Clean(s string) string {
	if s == "" {
		return s
	}
	s = strings.ToValidUTF8(s, "")
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// Collapse turns whitespace runs into a single space and trims the ends
func Collapse(s string) string { return strings.Join(strings.Fields(s), " ") }

// Text tidies a display value: cleaned and collapsed but case and accents kept
func Text(s string) string { return Collapse(Clean(s)) }
