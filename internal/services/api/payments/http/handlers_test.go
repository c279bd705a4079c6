package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	pnet "gymdesk/internal/platform/net"
	phttp "gymdesk/internal/platform/net/http"
	"gymdesk/internal/services/api/payments/domain"
)

type fakeSvc struct {
	staff    string
	query    domain.ListQuery
	refunded string
}

func (f *fakeSvc) Create(_ context.Context, staff string, in domain.CreateInput) (domain.Receipt, error) {
	f.staff = staff
	return domain.Receipt{Payment: domain.Payment{ID: "p1", Method: in.Method}}, nil
}

func (f *fakeSvc) List(_ context.Context, q domain.ListQuery) (domain.Page, error) {
	f.query = q
	return domain.Page{Items: []domain.Payment{{ID: "p1"}}, Total: 41, Page: 3, Size: 20}, nil
}

func (f *fakeSvc) Get(_ context.Context, id string) (domain.Payment, error) {
	return domain.Payment{ID: id}, nil
}

func (f *fakeSvc) Refund(_ context.Context, _, id string) (domain.Payment, error) {
	f.refunded = id
	return domain.Payment{ID: id, Status: domain.StatusRefunded}, nil
}

func serve(f *fakeSvc, role, method, target, body string) *httptest.ResponseRecorder {
	m := chi.NewRouter()
	m.Use(func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			ctx := pnet.WithUser(r.Context(), "9")
			next.ServeHTTP(w, r.WithContext(pnet.WithRole(ctx, role)))
		})
	})
	Register(phttp.AdaptChi(m), f)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, req)
	return rec
}

func TestCreate_201(t *testing.T) {
	t.Parallel()

	f := &fakeSvc{}
	rec := serve(f, "Staff", stdhttp.MethodPost, "/", `{"member_id":"GYMAAAAAAA","pricing_id":1,"payment_method":"Cash"}`)
	if rec.Code != stdhttp.StatusCreated || f.staff != "9" {
		t.Fatalf("status = %d staff=%q body=%s", rec.Code, f.staff, rec.Body.String())
	}
}

func TestList_Paged(t *testing.T) {
	t.Parallel()

	f := &fakeSvc{}
	rec := serve(f, "Staff", stdhttp.MethodGet, "/?status=Completed&page=3&size=20&date_from=2024-03-01", "")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if f.query.Status != "Completed" || f.query.Page != 3 || f.query.DateFrom != "2024-03-01" {
		t.Fatalf("query = %+v", f.query)
	}
	var env struct {
		Data struct {
			Items []domain.Payment `json:"items"`
			Page  struct {
				Total int `json:"total"`
			} `json:"page"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(env.Data.Items) != 1 || env.Data.Page.Total != 41 {
		t.Fatalf("envelope = %+v", env)
	}

	if rec := serve(f, "Staff", stdhttp.MethodGet, "/?status=Pending", ""); rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("bad status filter: %d", rec.Code)
	}
}

func TestRefund_OwnerOnly(t *testing.T) {
	t.Parallel()

	f := &fakeSvc{}
	if rec := serve(f, "Staff", stdhttp.MethodPost, "/p1/refund", ""); rec.Code != stdhttp.StatusForbidden {
		t.Fatalf("staff refund: %d", rec.Code)
	}
	if f.refunded != "" {
		t.Fatalf("staff reached the service")
	}
	if rec := serve(f, "Owner", stdhttp.MethodPost, "/p1/refund", ""); rec.Code != stdhttp.StatusOK || f.refunded != "p1" {
		t.Fatalf("owner refund: %d %q", rec.Code, f.refunded)
	}
}

func TestMethods(t *testing.T) {
	t.Parallel()

	rec := serve(&fakeSvc{}, "Staff", stdhttp.MethodGet, "/methods", "")
	if rec.Code != stdhttp.StatusOK || !strings.Contains(rec.Body.String(), "Bank Transfer") {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
}
