package modkit

import (
	"gymdesk/internal/modkit/httpkit"
	"gymdesk/internal/modkit/module"
	str "gymdesk/internal/platform/strings"
)

// Module is the contract api.Mount composes
type Module = module.Module

// Base implements Module from a Built, the module's ports and its route
// registration. API modules embed it
type Base struct {
	built  Built
	ports  any
	routes func(httpkit.Router)
}

// NewBase returns the Base for b
func NewBase(b Built, ports any, routes func(httpkit.Router)) *Base {
	return &Base{built: b, ports: ports, routes: routes}
}

// Name is the module name; it panics when blank
func (m *Base) Name() string { return str.MustString(m.built.Name, "module name") }

// Prefix is the normalised mount path; it panics when blank
func (m *Base) Prefix() string { return str.MustPrefix(m.built.Prefix) }

// Ports are the ports this module offers others
func (m *Base) Ports() any { return m.ports }

// MountRoutes mounts the module's routes and any WithRoutes extras under Prefix
func (m *Base) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.Prefix(), m.built.Mw, func(sub httpkit.Router) {
		if m.routes != nil {
			m.routes(sub)
		}
		if m.built.Extra != nil {
			m.built.Extra(sub)
		}
	})
}
