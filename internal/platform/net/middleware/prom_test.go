package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"gymdesk/internal/platform/net/middleware"
)

func TestInstruments_LabelsByRoutePattern(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	ins := middleware.NewInstruments(reg, "gymdesk")

	r := chi.NewRouter()
	r.Use(ins.Middleware)
	r.Get("/members/{id}", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNotFound) })

	for _, id := range []string{"GYM1", "GYM2", "GYM3"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/members/"+id, nil))
	}

	want := `
# HELP gymdesk_http_requests_total HTTP requests by route pattern and status.
# TYPE gymdesk_http_requests_total counter
gymdesk_http_requests_total{method="GET",route="/members/{id}",status="404"} 3
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(want), "gymdesk_http_requests_total"); err != nil {
		t.Fatalf("requests_total: %v", err)
	}
	if n := testutil.CollectAndCount(reg, "gymdesk_http_request_duration_seconds"); n != 1 {
		t.Fatalf("latency series = %d", n)
	}
}

func TestInstruments_DuplicateRegistrationPanics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	middleware.NewInstruments(reg, "dup")
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on second registration")
		}
	}()
	middleware.NewInstruments(reg, "dup")
}
