package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/helixir/academic-profile-service/internal/domain"
)

// ---------------------------------------------------------------------------
// TestInjection_SearchQuery
// ---------------------------------------------------------------------------

// TestInjection_SearchQuery verifies that injection payloads in the search
// query reach the repository verbatim as opaque data and never cause a 500.
func TestInjection_SearchQuery(t *testing.T) {
	payloads := []struct {
		name  string
		query string
	}{
		{"classic OR", "' OR '1'='1"},
		{"drop table", "'; DROP TABLE profiles; --"},
		{"json breakout", `"},{"ownerId":"admin`},
		{"path traversal", "../../etc/passwd"},
		{"regex metachar", ".*(a+)+$"},
	}

	for _, tc := range payloads {
		t.Run(tc.name, func(t *testing.T) {
			d := newTestDeps()
			var received string
			d.profiles.searchFn = func(_ context.Context, q string) ([]domain.Profile, error) {
				received = q
				return []domain.Profile{}, nil
			}
			srv := newTestHTTPServer(d)

			req := httptest.NewRequest(http.MethodGet, "/api/public/profiles?q="+url.QueryEscape(tc.query), nil)
			rr := serveHTTP(srv, req)

			if rr.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
			}
			if received != tc.query {
				t.Errorf("expected query stored verbatim %q, got %q", tc.query, received)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestXSSPayload_PublicationTitle
// ---------------------------------------------------------------------------

// TestXSSPayload_PublicationTitle verifies that script payloads are stored as
// data and come back JSON-escaped, never as raw markup.
func TestXSSPayload_PublicationTitle(t *testing.T) {
	payloads := []string{
		"<script>alert('xss')</script>",
		`<img src=x onerror="alert(1)">`,
		"javascript:alert(document.cookie)",
	}

	for i, payload := range payloads {
		t.Run(fmt.Sprintf("payload_%d", i), func(t *testing.T) {
			d := newTestDeps()
			d.publications.addFn = func(_ context.Context, p *domain.Publication) (*domain.Publication, error) {
				if p.Title != payload {
					t.Errorf("expected title stored verbatim, got %q", p.Title)
				}
				return p, nil
			}
			srv := newTestHTTPServer(d)

			body := jsonBody(t, map[string]interface{}{
				"title": payload,
				"year":  2024,
				"type":  "article",
			})
			rr := serveHTTP(srv, asOwner(httptest.NewRequest(http.MethodPost, "/api/admin/publications", body), "u1"))
			if rr.Code != http.StatusCreated {
				t.Fatalf("expected status 201, got %d: %s", rr.Code, rr.Body.String())
			}
			if strings.Contains(rr.Body.String(), "<") {
				t.Errorf("response contains unescaped markup: %s", rr.Body.String())
			}
			if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected application/json, got %q", ct)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestMaxQueryLength_Security
// ---------------------------------------------------------------------------

func TestMaxQueryLength_Security(t *testing.T) {
	tests := []struct {
		name   string
		length int
		want   int
	}{
		{"at limit", maxQueryLength, http.StatusOK},
		{"over limit", maxQueryLength + 1, http.StatusBadRequest},
		{"far over limit", 10 * maxQueryLength, http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestHTTPServer(newTestDeps())
			q := strings.Repeat("a", tc.length)
			rr := serveHTTP(srv, httptest.NewRequest(http.MethodGet, "/api/public/profiles?q="+q, nil))
			if rr.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, rr.Code)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestOversizedBody_Rejected
// ---------------------------------------------------------------------------

// TestOversizedBody_Rejected verifies that bodies past maxRequestBodySize are
// truncated and rejected as invalid JSON instead of being buffered whole.
func TestOversizedBody_Rejected(t *testing.T) {
	d := newTestDeps()
	d.publications.addFn = func(context.Context, *domain.Publication) (*domain.Publication, error) {
		t.Fatal("repository should not be reached")
		return nil, nil
	}
	srv := newTestHTTPServer(d)

	body := `{"title":"` + strings.Repeat("x", maxRequestBodySize) + `"}`
	req := asOwner(httptest.NewRequest(http.MethodPost, "/api/admin/publications", strings.NewReader(body)), "u1")
	rr := serveHTTP(srv, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

// ---------------------------------------------------------------------------
// TestResponseSanitization
// ---------------------------------------------------------------------------

// TestResponseSanitization verifies that password hashes never leave the
// server: the session payload only carries the public account view.
func TestResponseSanitization(t *testing.T) {
	srv := newTestHTTPServer(newTestDeps())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"ada","password":"pw"}`))
	rr := serveHTTP(srv, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var raw map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&raw); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	user, ok := raw["user"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected user object, got %T", raw["user"])
	}
	for _, field := range []string{"passwordHash", "password"} {
		if _, present := user[field]; present {
			t.Errorf("response leaks %q", field)
		}
	}
}

// ---------------------------------------------------------------------------
// TestWriteDomainError_NeverLeaksInternalDetails
// ---------------------------------------------------------------------------

// TestWriteDomainError_NeverLeaksInternalDetails ensures that writeDomainError
// maps arbitrary error messages to generic responses and never reflects internal
// error text in the response body.
func TestWriteDomainError_NeverLeaksInternalDetails(t *testing.T) {
	srv := newTestHTTPServer(newTestDeps())

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "generic error with path details",
			err:            fmt.Errorf("open /var/lib/academic/data/accounts.json: permission denied"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "internal server error",
		},
		{
			name:           "storage fault with decoder details",
			err:            domain.NewStorageFaultError("publications", fmt.Errorf("invalid character '}' looking for beginning of value")),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "storage fault",
		},
		{
			name:           "nil error is no-op",
			err:            nil,
			expectedStatus: http.StatusOK,
			expectedBody:   "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			srv.writeDomainError(rr, httptest.NewRequest(http.MethodGet, "/", nil), tc.err)

			if tc.err == nil {
				if rr.Code != http.StatusOK || rr.Body.Len() != 0 {
					t.Errorf("expected no response for nil error, got %d %q", rr.Code, rr.Body.String())
				}
				return
			}

			if rr.Code != tc.expectedStatus {
				t.Errorf("expected status %d, got %d", tc.expectedStatus, rr.Code)
			}

			var resp map[string]string
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp["error"] != tc.expectedBody {
				t.Errorf("expected error %q, got %q", tc.expectedBody, resp["error"])
			}
			if strings.Contains(rr.Body.String(), tc.err.Error()) {
				t.Errorf("response body contains raw error message: %s", rr.Body.String())
			}
		})
	}
}
