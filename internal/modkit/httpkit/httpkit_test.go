package httpkit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	perrs "gymdesk/internal/platform/errors"
	pnet "gymdesk/internal/platform/net"
	phttp "gymdesk/internal/platform/net/http"
)

var tokens = NewPortFunc(func(_ context.Context, tok string) (string, string, error) {
	switch tok {
	case "owner-token":
		return "1", "owner", nil
	case "desk-token":
		return "2", "staff", nil
	}
	return "", "", errors.New("unknown session")
})

type renewIn struct {
	Plan string `json:"plan" validate:"required"`
}

type searchIn struct {
	Q string `query:"q"`
}

func mount() http.Handler {
	r := phttp.AdaptChi(chi.NewRouter())
	MountAPIV1(r, CommonStack(), func(api Router) {
		Get(api, "/open", func(*http.Request) (any, error) { return "open", nil })
		Protected(api, tokens, func(pr Router) {
			Get(pr, "/me", func(r *http.Request) (any, error) { return User(r) })
			GetQuery(pr, "/members", func(_ *http.Request, in searchIn) (any, error) { return in.Q, nil })
			PostJSON(pr, "/members/{id}/renew", func(r *http.Request, in renewIn) (any, error) {
				return Created(Param(r, "id") + ":" + in.Plan), nil
			})
			Restricted(pr, func(or Router) {
				Delete(or, "/members/{id}", func(*http.Request) (any, error) { return NoContent(), nil })
				PatchJSON(or, "/plans/{id}", func(_ *http.Request, in renewIn) (any, error) { return in.Plan, nil })
				Post(or, "/snapshots", func(*http.Request) (any, error) { return Raw("ok"), nil })
			}, "owner")
		})
	})
	return r.Mux()
}

func TestMountedRoutes(t *testing.T) {
	t.Parallel()
	h := mount()

	cases := []struct {
		method, path, token, body string
		want                      int
		contains                  string
	}{
		{http.MethodGet, "/api/v1/open", "", "", 200, `"data":"open"`},
		{http.MethodGet, "/api/v1/me", "", "", 401, "missing bearer token"},
		{http.MethodGet, "/api/v1/me", "garbage", "", 401, "invalid bearer token"},
		{http.MethodGet, "/api/v1/me", "desk-token", "", 200, `"data":"2"`},
		{http.MethodGet, "/api/v1/members?q=ana", "desk-token", "", 200, `"data":"ana"`},
		{http.MethodPost, "/api/v1/members/GYM-7/renew", "desk-token", `{"plan":"monthly"}`, 201, "GYM-7:monthly"},
		{http.MethodPost, "/api/v1/members/GYM-7/renew", "desk-token", `{}`, 400, `"field":"plan"`},
		{http.MethodDelete, "/api/v1/members/GYM-7", "desk-token", "", 403, "requires role owner"},
		{http.MethodDelete, "/api/v1/members/GYM-7", "owner-token", "", 204, ""},
		{http.MethodPatch, "/api/v1/plans/3", "owner-token", `{"plan":"yearly"}`, 200, "yearly"},
		{http.MethodPost, "/api/v1/snapshots", "owner-token", "", 200, `"ok"`},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		if tc.token != "" {
			req.Header.Set("Authorization", "Bearer "+tc.token)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != tc.want || !strings.Contains(rec.Body.String(), tc.contains) {
			t.Fatalf("%s %s: %d %s", tc.method, tc.path, rec.Code, rec.Body)
		}
	}
}

func TestBearer(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Bearer abc":     "abc",
		"bearer   abc  ": "abc",
		"BEARER abc":     "abc",
		"Basic abc":      "",
		"Bearer":         "",
		"Bearer   ":      "",
		"":               "",
	}
	for header, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		got, err := Bearer(req)
		if got != want || (want == "") != (err != nil) {
			t.Fatalf("Bearer(%q) = %q, %v", header, got, err)
		}
	}
}

func TestPort_NilResolver(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer x")
	if _, _, err := NewPortFunc(nil).Parse(req); perrs.CodeOf(err) != perrs.ErrorCodeUnauthorized {
		t.Fatalf("err = %v", err)
	}
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })
	h := RequireRole("owner", "manager")(ok)

	cases := []struct {
		role string
		want int
	}{
		{"Owner", http.StatusTeapot},
		{"manager", http.StatusTeapot},
		{"staff", http.StatusForbidden},
		{"", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/staff", nil)
		req = req.WithContext(pnet.WithRole(req.Context(), tc.role))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Fatalf("role %q: status = %d, want %d", tc.role, rec.Code, tc.want)
		}
	}
}
