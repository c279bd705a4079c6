package modkit

import (
	"net/http"

	"gymdesk/internal/modkit/httpkit"
)

// Built is the result of applying options over a module's defaults
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	// Ports holds what another module handed over through WithPorts
	Ports any
	// Extra mounts additional routes next to the module's own
	Extra func(httpkit.Router)
}

// Option overrides part of a module's build
type Option func(*Built)

// WithName renames a module
func WithName(name string) Option { return func(b *Built) { b.Name = name } }

// WithPrefix mounts a module under prefix instead of its default
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithMiddlewares appends middleware run for the module's routes only
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts hands a module the ports it consumes. T is declared by the
// consuming module, usually as its Injected struct
func WithPorts[T any](p T) Option { return func(b *Built) { b.Ports = p } }

// WithRoutes mounts fn's routes alongside the module's own
func WithRoutes(fn func(httpkit.Router)) Option { return func(b *Built) { b.Extra = fn } }

// Build applies opts over a module's default name and prefix
func Build(name, prefix string, opts ...Option) Built {
	b := Built{Name: name, Prefix: prefix}
	for _, o := range opts {
		o(&b)
	}
	return b
}

// Injected returns the ports passed with WithPorts as T, or the zero T
func Injected[T any](b Built) T {
	v, _ := b.Ports.(T)
	return v
}
