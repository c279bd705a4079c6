package bind

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	perr "gymdesk/internal/platform/errors"
)

// MaxBody caps how much of a request body ParseJSON reads
const MaxBody = 1 << 20

// ParseJSON decodes a single JSON object into T and validates it.
// Unknown fields and trailing data are rejected. An empty body is fine for
// GET, HEAD and DELETE and yields the zero T
func ParseJSON[T any](r *http.Request) (T, error) {
	var zero, dst T
	if r.Body == nil || r.Body == http.NoBody {
		return emptyBody[T](r.Method)
	}
	defer r.Body.Close()

	br := bufio.NewReader(io.LimitReader(r.Body, MaxBody))
	if _, err := br.Peek(1); errors.Is(err, io.EOF) {
		return emptyBody[T](r.Method)
	}

	dec := json.NewDecoder(br)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&dst); err != nil {
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return zero, perr.JSONErrf("unexpected trailing data")
	}
	if err := Struct(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

func emptyBody[T any](method string) (T, error) {
	var zero T
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodDelete:
		return zero, nil
	}
	return zero, perr.JSONErrf("empty body")
}
