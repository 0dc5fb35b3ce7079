package httpserver

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yndnr/userhub-go/internal/telemetry/logger"
)

func testLogger() logger.Logger {
	return logger.New(logger.Config{Level: "error", Output: io.Discard})
}

func TestRequestID(t *testing.T) {
	t.Run("generates an id when absent", func(t *testing.T) {
		var seen string
		h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = GetRequestIDFromContext(r.Context())
		}), RequestID())

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

		if !strings.HasPrefix(seen, "req-") {
			t.Errorf("expected generated req- id, got %q", seen)
		}
		if rec.Header().Get("X-Request-ID") != seen {
			t.Error("response header must echo the request id")
		}
	})

	t.Run("keeps a client-supplied id", func(t *testing.T) {
		var seen string
		h := Chain(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			seen = GetRequestIDFromContext(r.Context())
		}), RequestID())

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("X-Request-ID", "req-client-1")
		h.ServeHTTP(httptest.NewRecorder(), req)

		if seen != "req-client-1" {
			t.Errorf("client id must be kept, got %q", seen)
		}
	})
}

func TestRecover(t *testing.T) {
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}), Recover(testLogger()))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Internal server error") {
		t.Errorf("expected generic error body, got %q", rec.Body.String())
	}
}

func TestRateLimit(t *testing.T) {
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), RateLimit(2))

	hit := func(addr string) int {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	// Burst capacity equals the rate.
	if got := hit("10.0.0.1:1234"); got != http.StatusOK {
		t.Fatalf("first request: got %d", got)
	}
	if got := hit("10.0.0.1:1234"); got != http.StatusOK {
		t.Fatalf("second request: got %d", got)
	}
	if got := hit("10.0.0.1:1234"); got != http.StatusTooManyRequests {
		t.Fatalf("third request must be limited, got %d", got)
	}

	// Another IP has its own bucket.
	if got := hit("10.0.0.2:1234"); got != http.StatusOK {
		t.Fatalf("other ip must not be limited, got %d", got)
	}
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("allowed origin is echoed", func(t *testing.T) {
		h := Chain(next, CORS([]string{"https://app.example.com"}))
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Origin", "https://app.example.com")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
			t.Errorf("unexpected allow-origin %q", got)
		}
	})

	t.Run("other origin gets no header", func(t *testing.T) {
		h := Chain(next, CORS([]string{"https://app.example.com"}))
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Header().Get("Access-Control-Allow-Origin") != "" {
			t.Error("disallowed origin must not be echoed")
		}
	})

	t.Run("empty allow-list allows all", func(t *testing.T) {
		h := Chain(next, CORS(nil))
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Origin", "https://anywhere.example.com")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://anywhere.example.com" {
			t.Errorf("unexpected allow-origin %q", got)
		}
	})
}

func TestNormalizeRoute(t *testing.T) {
	cases := map[string]string{
		"/users":       "/users",
		"/users/42":    "/users/{id}",
		"/users/42/x":  "/users/{id}/x",
		"/api/stats":   "/api/stats",
		"/users/alice": "/users/alice",
	}
	for in, want := range cases {
		if got := normalizeRoute(in); got != want {
			t.Errorf("normalizeRoute(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mw("outer"), mw("inner"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	want := []string{"outer", "inner", "handler"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("execution order %v, want %v", order, want)
		}
	}
}
