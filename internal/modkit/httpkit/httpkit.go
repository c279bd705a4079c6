// Package httpkit is the HTTP surface API modules import: handler adapters,
// route helpers and the auth plumbing, over internal/platform/net/http
package httpkit

import (
	"net/http"
	"strings"

	phttp "gymdesk/internal/platform/net/http"
)

type (
	// Response is what handlers return
	Response = phttp.Response
	// Handler is the route handler type
	Handler = phttp.Handler
	// Router is the routing surface
	Router = phttp.Router
)

// Response constructors
var (
	OK        = phttp.OK
	Created   = phttp.Created
	NoContent = phttp.NoContent
	Raw       = phttp.Raw
	Error     = phttp.Error
	List      = phttp.List
	Call      = phttp.Call
)

// Get mounts a handler with no bound input
func Get(r Router, path string, h func(*http.Request) (any, error)) { r.Get(path, phttp.Call(h)) }

// Post mounts a handler with no bound input
func Post(r Router, path string, h func(*http.Request) (any, error)) { r.Post(path, phttp.Call(h)) }

// Delete mounts a handler with no bound input
func Delete(r Router, path string, h func(*http.Request) (any, error)) {
	r.Delete(path, phttp.Call(h))
}

// GetQuery mounts a handler whose input is bound from the query string
func GetQuery[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Get(path, phttp.Query(h))
}

// PostJSON mounts a handler whose input is the JSON body
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSON(h))
}

// PatchJSON mounts a handler whose input is the JSON body
func PatchJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Patch(path, phttp.JSON(h))
}

// MountUnder mounts a sub router at prefix with its own middleware
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(prefix, func(sub Router) {
		sub.Use(mw...)
		mount(sub)
	})
}

// MountAPI mounts under /api/{version}
//
//	httpkit.MountAPI(r, "v1", httpkit.CommonStack(), func(api httpkit.Router) {
//		members.MountRoutes(api)
//	})
func MountAPI(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountUnder(r, "/api/"+strings.Trim(version, "/"), mw, mount)
}

// MountAPIV1 is MountAPI for v1
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountAPI(r, "v1", mw, mount)
}
