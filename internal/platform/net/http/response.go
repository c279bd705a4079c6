// Package http adapts chi to the router, response and server types the API
// modules are written against
package http

import (
	"net/http"

	pnet "gymdesk/internal/platform/net"
	"gymdesk/internal/platform/net/http/bind"
)

// Response is what handlers return instead of writing
type Response struct {
	Status int
	Body   any
	Header http.Header
	// Raw writes Body as is, without the envelope
	Raw bool
	err error
}

// Page is the pagination block of a list body
type Page struct {
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Cursor   string `json:"cursor,omitempty"`
}

// OK is a 200 with data
func OK(data any) Response { return Response{Status: http.StatusOK, Body: data} }

// Created is a 201 with data
func Created(data any) Response { return Response{Status: http.StatusCreated, Body: data} }

// NoContent is an empty 204
func NoContent() Response { return Response{Status: http.StatusNoContent} }

// Raw is a 200 whose body skips the envelope
func Raw(v any) Response { return Response{Status: http.StatusOK, Body: v, Raw: true} }

// Error maps err to its status and error envelope
func Error(err error) Response { return Response{err: err} }

// List is a 200 carrying items and their page
func List(items any, total, page, size int, cursor string) Response {
	return OK(struct {
		Items any  `json:"items"`
		Page  Page `json:"page"`
	}{items, Page{Total: total, Page: page, PageSize: size, Cursor: cursor}})
}

func (resp Response) write(w http.ResponseWriter, r *http.Request) {
	for k, vs := range resp.Header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	switch {
	case resp.err != nil:
		pnet.WriteError(w, r, resp.err)
	case resp.Status == http.StatusNoContent:
		w.WriteHeader(http.StatusNoContent)
	case resp.Raw:
		pnet.WriteJSON(w, resp.status(), resp.Body)
	default:
		pnet.WriteJSON(w, resp.status(), pnet.Reply(resp.status(), resp.Body, pnet.RequestID(r.Context())))
	}
}

func (resp Response) status() int {
	if resp.Status == 0 {
		return http.StatusOK
	}
	return resp.Status
}

// Handle adapts a Response returning func to a Handler
func Handle(fn func(*http.Request) Response) Handler {
	return func(w http.ResponseWriter, r *http.Request) { fn(r).write(w, r) }
}

// Call adapts a handler with no bound input. A returned Response is written
// as is; any other value is wrapped with OK
func Call(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response { return result(fn(r)) })
}

// JSON binds and validates the request body into T before calling fn
func JSON[T any](fn func(*http.Request, T) (any, error)) Handler {
	return bound(bind.ParseJSON[T], fn)
}

// Query binds and validates the query string into T before calling fn
func Query[T any](fn func(*http.Request, T) (any, error)) Handler {
	return bound(bind.ParseQuery[T], fn)
}

func bound[T any](parse func(*http.Request) (T, error), fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := parse(r)
		if err != nil {
			return Error(err)
		}
		return result(fn(r, in))
	})
}

func result(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return OK(out)
}
