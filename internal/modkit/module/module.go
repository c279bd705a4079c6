// Package module is the contract modules satisfy plus the helpers main uses
// to cross wire them. It only depends on the router so modules can import it
// next to their own ports types
package module

import phttp "gymdesk/internal/platform/net/http"

// Module mounts routes and offers ports to other modules
type Module interface {
	MountRoutes(r phttp.Router)
	// Ports is usually a struct of interfaces, or nil
	Ports() any
	Name() string
}
