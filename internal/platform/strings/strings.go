// Package strings holds small string guards shared by modules
package strings

import std "strings"

// MustString returns s, panicking with name when s is blank
func MustString(s, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix normalises a mount path to one leading slash and no trailing
// slash. It panics on an empty or root path
func MustPrefix(s string) string {
	p := "/" + std.Trim(std.TrimSpace(s), "/ ")
	if p == "/" {
		panic("root path is required")
	}
	return p
}

// BlankToNil trims *p and returns nil when nothing is left
func BlankToNil(p *string) *string {
	if p == nil {
		return nil
	}
	v := std.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}
