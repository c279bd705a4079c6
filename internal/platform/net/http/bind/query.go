package bind

import (
	"net/http"
	"net/url"
	"reflect"

	perr "gymdesk/internal/platform/errors"

	"github.com/go-viper/mapstructure/v2"
)

// QueryTag is the struct tag naming a query parameter
const QueryTag = "query"

// ParseQuery decodes the URL query into T using `query` tags, then validates it.
// Scalars are weakly typed so "true" and "25" land in bool and int fields
func ParseQuery[T any](r *http.Request) (T, error) {
	var zero, dst T
	if err := decodeValues(r.URL.Query(), &dst); err != nil {
		return zero, perr.Newf(perr.ErrorCodeValidation, "invalid query: %v", err)
	}
	if err := Struct(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

func decodeValues(vals url.Values, dst any) error {
	flat := make(map[string]any, len(vals))
	for k, vs := range vals {
		switch len(vs) {
		case 0:
		case 1:
			flat[k] = vs[0]
		default:
			flat[k] = vs
		}
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          QueryTag,
		WeaklyTypedInput: true,
		Result:           dst,
		DecodeHook:       emptyToZero,
	})
	if err != nil {
		return err
	}
	return dec.Decode(flat)
}

// emptyToZero lets "?page=" mean "not set" instead of a parse failure
func emptyToZero(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if s, ok := data.(string); ok && s == "" && to.Kind() != reflect.String {
		return reflect.Zero(to).Interface(), nil
	}
	return data, nil
}
