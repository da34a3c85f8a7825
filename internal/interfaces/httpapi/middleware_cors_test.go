package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func corsRequest(t *testing.T, handler http.Handler, method, origin string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, "/api/players", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORS_ConfiguredOriginEchoedWithVary(t *testing.T) {
	handler := CORS([]string{"https://cava.example.com"}, okHandler())

	rec := corsRequest(t, handler, http.MethodGet, "https://cava.example.com")

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://cava.example.com" {
		t.Fatalf("Access-Control-Allow-Origin = %q", got)
	}
	if got := rec.Header().Get("Vary"); got != "Origin" {
		t.Fatalf("Vary = %q, want Origin", got)
	}
}

func TestCORS_WildcardPreflight(t *testing.T) {
	handler := CORS([]string{"*"}, okHandler())

	rec := corsRequest(t, handler, http.MethodOptions, "https://cava.example.com")

	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestCORS_UnknownOriginGetsNoHeaders(t *testing.T) {
	handler := CORS([]string{"https://allowed.example.com"}, okHandler())

	rec := corsRequest(t, handler, http.MethodGet, "https://intruder.example.com")

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("Access-Control-Allow-Origin = %q, want empty", got)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, request should still reach the handler", rec.Code)
	}
}

func TestCORS_NoOriginHeaderPassesThrough(t *testing.T) {
	handler := CORS([]string{"https://allowed.example.com"}, okHandler())

	rec := corsRequest(t, handler, http.MethodGet, "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("Access-Control-Allow-Origin = %q, want empty", got)
	}
}
