package httpkit

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	perrs "gymdesk/internal/platform/errors"
)

// Param returns a path parameter captured by the router, trimmed
func Param(r *http.Request, name string) string {
	return strings.TrimSpace(chi.URLParam(r, name))
}

// MustParam returns a path parameter or a validation error when it is blank
func MustParam(r *http.Request, name string) (string, error) {
	v := Param(r, name)
	if v == "" {
		return "", perrs.Validationf("missing path parameter %s", name)
	}
	return v, nil
}

// ParamInt64 parses a positive integer path parameter such as a row id
func ParamInt64(r *http.Request, name string) (int64, error) {
	v, err := MustParam(r, name)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return 0, perrs.Validationf("%s must be a positive integer", name)
	}
	return n, nil
}
