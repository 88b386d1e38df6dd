package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nao1215/mlbleaders/internal/config"
)

// TestClientFetch tests fetching pages from a local server.
func TestClientFetch(t *testing.T) {
	t.Parallel()

	t.Run("returns body and sends configured headers", func(t *testing.T) {
		t.Parallel()

		var gotUA, gotLang string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			gotLang = r.Header.Get("Accept-Language")
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body><table></table></body></html>"))
		}))
		defer srv.Close()

		cfg := config.NewConfig()
		c := NewClientFromConfig(cfg)

		body, err := c.Fetch(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if body != "<html><body><table></table></body></html>" {
			t.Errorf("unexpected body %q", body)
		}
		if gotUA != config.DefaultUserAgent {
			t.Errorf("expected User-Agent %q, got %q", config.DefaultUserAgent, gotUA)
		}
		if gotLang != config.DefaultAcceptLanguage {
			t.Errorf("expected Accept-Language %q, got %q", config.DefaultAcceptLanguage, gotLang)
		}
	})

	t.Run("404 returns StatusError", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		_, err := NewClient().Fetch(context.Background(), srv.URL)
		if !errors.Is(err, ErrHTTPStatus) {
			t.Fatalf("expected ErrHTTPStatus, got %v", err)
		}
		var se *StatusError
		if !errors.As(err, &se) {
			t.Fatalf("expected *StatusError, got %T", err)
		}
		if se.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404, got %d", se.StatusCode)
		}
		if errors.Is(err, ErrTransport) {
			t.Error("status error must not match ErrTransport")
		}
	})

	t.Run("500 returns StatusError", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := NewClient().Fetch(context.Background(), srv.URL)
		if !errors.Is(err, ErrHTTPStatus) {
			t.Errorf("expected ErrHTTPStatus, got %v", err)
		}
	})

	t.Run("connection refused returns TransportError", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := NewClient().Fetch(context.Background(), url)
		if !errors.Is(err, ErrTransport) {
			t.Errorf("expected ErrTransport, got %v", err)
		}
		var te *TransportError
		if !errors.As(err, &te) || te.Unwrap() == nil {
			t.Errorf("expected wrapped cause, got %v", err)
		}
	})

	t.Run("timeout returns TransportError", func(t *testing.T) {
		t.Parallel()

		done := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-done:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(done)

		_, err := NewClient(WithTimeout(50*time.Millisecond)).Fetch(context.Background(), srv.URL)
		if !errors.Is(err, ErrTransport) {
			t.Errorf("expected ErrTransport, got %v", err)
		}
	})

	t.Run("extra headers are sent", func(t *testing.T) {
		t.Parallel()

		var gotCookie string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotCookie = r.Header.Get("Cookie")
			_, _ = w.Write([]byte("ok"))
		}))
		defer srv.Close()

		c := NewClient(WithHeaders(map[string]string{"Cookie": "region=us"}))
		if _, err := c.Fetch(context.Background(), srv.URL); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotCookie != "region=us" {
			t.Errorf("expected cookie, got %q", gotCookie)
		}
	})
}
