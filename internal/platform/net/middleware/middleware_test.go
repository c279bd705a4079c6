package middleware_test

import (
	"compress/flate"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "gymdesk/internal/platform/errors"
	pnet "gymdesk/internal/platform/net"
	"gymdesk/internal/platform/net/middleware"
)

type fakeAuth struct {
	id, role string
	err      error
}

func (f fakeAuth) Parse(*http.Request) (string, string, error) { return f.id, f.role, f.err }

func TestAuth(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		port   middleware.AuthPort
		status int
		who    string
	}{
		{"nil port", nil, http.StatusOK, ""},
		{"rejected", fakeAuth{err: perr.Unauthorizedf("bad token")}, http.StatusUnauthorized, ""},
		{"foreign error", fakeAuth{err: errors.New("redis down")}, http.StatusInternalServerError, ""},
		{"accepted", fakeAuth{id: "3", role: "owner"}, http.StatusOK, "3/owner"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var who string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if id := pnet.UserID(r.Context()); id != "" {
					who = id + "/" + pnet.Role(r.Context())
				}
			})
			rec := httptest.NewRecorder()
			middleware.Auth(tc.port)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/members", nil))
			if rec.Code != tc.status || who != tc.who {
				t.Fatalf("status %d who %q", rec.Code, who)
			}
			if tc.status >= 400 {
				var env pnet.Envelope
				if err := json.NewDecoder(rec.Body).Decode(&env); err != nil || env.Error == "" {
					t.Fatalf("envelope %+v err %v", env, err)
				}
			}
		})
	}
}

func TestCORS_Preflight(t *testing.T) {
	t.Parallel()

	h := middleware.CORS("https://desk.example.com")(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/payments", nil)
	req.Header.Set("Origin", "https://desk.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://desk.example.com" {
		t.Fatalf("allow origin = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, http.MethodPost) {
		t.Fatalf("allow methods = %q", got)
	}
}

func TestCompressAndHeartbeat(t *testing.T) {
	t.Parallel()

	body := strings.Repeat("GYM-0001,", 200)
	h := middleware.Heartbeat("/health")(middleware.Compress(flate.BestSpeed)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(body))
	})))

	req := httptest.NewRequest(http.MethodGet, "/members.csv", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("encoding = %q", rec.Header().Get("Content-Encoding"))
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "." {
		t.Fatalf("heartbeat %d %q", rec.Code, rec.Body)
	}
}
