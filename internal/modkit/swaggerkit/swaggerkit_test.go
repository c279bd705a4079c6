package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	phttp "gymdesk/internal/platform/net/http"
	"gymdesk/internal/platform/testkit"
)

const doc2 = `{
	"swagger": "2.0",
	"info": {"title": "Gym desk", "version": "1"},
	"paths": {
		"/members": {
			"get": {"responses": {"200": {"description": "OK"}}},
			"post": {"responses": {"400": {"description": "custom"}}}
		}
	}
}`

func TestPrepare(t *testing.T) {
	t.Parallel()

	doc, err := prepare(doc2, Options{BasePath: "/api/v1", TitleSuffix: "(staging)"})
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if _, ok := doc["swagger"]; ok || doc["openapi"] != "3.0.3" {
		t.Fatalf("version not lifted: %v %v", doc["swagger"], doc["openapi"])
	}
	if title := doc["info"].(map[string]any)["title"]; title != "Gym desk (staging)" {
		t.Fatalf("title = %v", title)
	}
	if srv := doc["servers"].([]any)[0].(map[string]any)["url"]; srv != "/api/v1" {
		t.Fatalf("servers = %v", doc["servers"])
	}

	schemas := doc["components"].(map[string]any)["schemas"].(map[string]any)
	if _, ok := schemas[errorSchema]; !ok {
		t.Fatalf("error schema missing")
	}

	members := doc["paths"].(map[string]any)["/members"].(map[string]any)
	get := members["get"].(map[string]any)["responses"].(map[string]any)
	for _, s := range []string{"200", "400", "500"} {
		if _, ok := get[s]; !ok {
			t.Fatalf("GET /members lacks %s: %v", s, get)
		}
	}
	post := members["post"].(map[string]any)["responses"].(map[string]any)
	if post["400"].(map[string]any)["description"] != "custom" {
		t.Fatalf("documented 400 overwritten: %v", post["400"])
	}
}

func TestPrepareKeepsOAS3(t *testing.T) {
	t.Parallel()

	doc, err := prepare(`{"openapi":"3.1.0","servers":[{"url":"/x"}],"paths":{}}`, Options{BasePath: "/api/v1"})
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if doc["openapi"] != "3.0.3" || doc["servers"].([]any)[0].(map[string]any)["url"] != "/x" {
		t.Fatalf("doc = %v", doc)
	}
	if _, err := prepare("{", Options{}); err == nil {
		t.Fatalf("broken JSON accepted")
	}
}

func serve(t *testing.T, enabled bool, path string) *httptest.ResponseRecorder {
	t.Helper()
	m := chi.NewRouter()
	Mount(phttp.AdaptChi(m), enabled, Options{BasePath: "/api/v1"})
	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestMount(t *testing.T) {
	testkit.Serial(t)

	if rec := serve(t, false, "/api/docs/doc.json"); rec.Code != http.StatusNotFound {
		t.Fatalf("disabled docs = %d", rec.Code)
	}
	if rec := serve(t, true, "/api/docs"); rec.Code != http.StatusPermanentRedirect {
		t.Fatalf("redirect = %d", rec.Code)
	}

	rec := serve(t, true, "/api/docs/doc.json")
	var doc struct {
		OpenAPI string                    `json:"openapi"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil || rec.Code != http.StatusOK {
		t.Fatalf("doc.json = %d %v", rec.Code, err)
	}
	if doc.OpenAPI != "3.0.3" || doc.Paths["/metrics/data"] == nil {
		t.Fatalf("doc = %+v", doc.OpenAPI)
	}
}

func TestMountInvalidDocument(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &readDoc, func() string { return "not json" })

	if rec := serve(t, true, "/api/docs/doc.json"); rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}
