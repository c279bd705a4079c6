package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"gymdesk/internal/core/scale"
	perr "gymdesk/internal/platform/errors"
	phttp "gymdesk/internal/platform/net/http"
	"gymdesk/internal/services/api/metrics/domain"
)

type fakeSvc struct{ got domain.ChartQuery }

func (f *fakeSvc) Chart(_ context.Context, q domain.ChartQuery) (domain.Chart, error) {
	f.got = q
	if q.Metric == "steps" {
		return domain.Chart{}, perr.Validationf("unknown metric %q", q.Metric)
	}
	return domain.Chart{
		Labels: []string{"Mon 11", "Tue 12"},
		Data:   []float64{3, 4},
		Metric: "check_ins",
		Period: "1w",
		Scale:  scale.Suggestion{Min: 2.7, Max: 5},
	}, nil
}

func (f *fakeSvc) Catalog() domain.Catalog {
	return domain.Catalog{Metrics: domain.Metrics(), Periods: []string{"1w"}}
}

func serve(t *testing.T, f *fakeSvc, target string) *httptest.ResponseRecorder {
	t.Helper()
	r := phttp.AdaptChi(chi.NewRouter())
	Register(r, f)
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, target, nil))
	return rec
}

func TestData_WritesRawChart(t *testing.T) {
	t.Parallel()

	f := &fakeSvc{}
	rec := serve(t, f, "/data?metric=check_ins&period=1w&coarse=true&date_from=2024-03-01")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if f.got.Period != "1w" || !f.got.Coarse || f.got.DateFrom != "2024-03-01" {
		t.Fatalf("bound query = %+v", f.got)
	}

	var doc map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := doc["data"].([]any); !ok {
		t.Fatalf("data should be the series array, got %v", doc["data"])
	}
	if _, ok := doc["status_code"]; ok {
		t.Fatalf("chart must not be enveloped: %s", rec.Body.String())
	}
	sc := doc["scale"].(map[string]any)
	if sc["suggestedMax"].(float64) != 5 {
		t.Fatalf("scale = %v", sc)
	}
}

func TestData_UnknownMetricIs400(t *testing.T) {
	t.Parallel()

	rec := serve(t, &fakeSvc{}, "/data?metric=steps")
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestCatalog_Enveloped(t *testing.T) {
	t.Parallel()

	rec := serve(t, &fakeSvc{}, "/catalog")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var env struct {
		Data domain.Catalog `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(env.Data.Metrics) != 9 {
		t.Fatalf("metrics = %d", len(env.Data.Metrics))
	}
}
