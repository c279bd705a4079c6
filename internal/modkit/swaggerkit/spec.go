package swaggerkit

import (
	"encoding/json"
	"strings"

	perr "gymdesk/internal/platform/errors"
	pnet "gymdesk/internal/platform/net"
)

// errorSchema is the components entry every default error response refers to
const errorSchema = "ErrorResponse"

// prepare lifts the generated swagger 2.0 document to the OAS 3.0 shape the
// UI renders and adds the error responses every route can produce
func prepare(raw string, o Options) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, err
	}

	delete(doc, "swagger")
	if v, _ := doc["openapi"].(string); v == "" || strings.HasPrefix(v, "3.1") {
		doc["openapi"] = "3.0.3"
	}
	if _, ok := doc["servers"]; !ok {
		doc["servers"] = []any{map[string]any{"url": o.BasePath}}
	}
	if o.TitleSuffix != "" {
		if info, ok := doc["info"].(map[string]any); ok {
			info["title"] = strings.TrimSpace(str(info["title"]) + " " + o.TitleSuffix)
		}
	}

	child(child(doc, "components"), "schemas")[errorSchema] = envelopeSchema()
	defaults := map[string]any{
		"400": errorResponse(perr.WithField(perr.Validationf("name is required"), "name")),
		"500": errorResponse(perr.New(perr.ErrorCodeUnknown, "internal error")),
	}
	eachOperation(doc, func(op map[string]any) {
		resps := child(op, "responses")
		for status, r := range defaults {
			if _, ok := resps[status]; !ok {
				resps[status] = r
			}
		}
	})
	return doc, nil
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

// child returns m[key] as a map, creating it when missing
func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}

func eachOperation(doc map[string]any, fn func(op map[string]any)) {
	paths, _ := doc["paths"].(map[string]any)
	for _, p := range paths {
		methods, _ := p.(map[string]any)
		for _, op := range methods {
			if m, ok := op.(map[string]any); ok {
				fn(m)
			}
		}
	}
}

func envelopeSchema() map[string]any {
	prop := func(typ string) map[string]any { return map[string]any{"type": typ} }
	return map[string]any{
		"type":        "object",
		"description": "Error envelope",
		"required":    []any{"status_code", "status"},
		"properties": map[string]any{
			"status_code": prop("integer"),
			"status":      prop("string"),
			"code":        prop("integer"),
			"error":       prop("string"),
			"field":       prop("string"),
			"request_id":  prop("string"),
		},
	}
}

// errorResponse documents err exactly as the API would write it
func errorResponse(err error) map[string]any {
	_, env := pnet.ErrorReply(err, "7c1f0e2a/req-000001")
	return map[string]any{
		"description": env.Status,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema":  map[string]any{"$ref": "#/components/schemas/" + errorSchema},
				"example": env,
			},
		},
	}
}
