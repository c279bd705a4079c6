// Package swaggerkit serves the API's OpenAPI document and the Swagger UI
package swaggerkit

import (
	"encoding/json"
	"net/http"

	"gymdesk/internal/platform/config"
	phttp "gymdesk/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	docs "gymdesk/internal/services/api/docs"
)

// Options tune the served document
type Options struct {
	// BasePath is the server url the UI sends requests to
	BasePath string
	// TitleSuffix is appended to the document title, e.g. "(staging)"
	TitleSuffix string
}

// FromConfig reads DOCS_TITLE_SUFFIX from cfg
func FromConfig(cfg config.Conf) Options {
	return Options{BasePath: "/api/v1", TitleSuffix: cfg.MayString("DOCS_TITLE_SUFFIX", "")}
}

// readDoc returns the generated document
var readDoc = func() string { return docs.SwaggerInfo.ReadDoc() }

// Mount serves the UI under /api/docs/ and the document at /api/docs/doc.json
func Mount(r phttp.Router, enabled bool, o Options) {
	if !enabled {
		return
	}
	r.Get("/api/docs", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", docHandler(o))
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL("/api/docs/doc.json"),
	))
}

func docHandler(o Options) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		doc, err := prepare(readDoc(), o)
		if err != nil {
			http.Error(w, "openapi document is invalid", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(doc)
	}
}
