package reachability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestValidateHeadSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("expected HEAD, got %s", r.Method)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	result := NewChecker().Validate(context.Background(), srv.URL)
	if !result.OK {
		t.Errorf("expected reachable, got reason %q", result.Reason)
	}
}

func TestValidateFallsBackToRangedGetOn405(t *testing.T) {
	var sawRange bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodHead:
			w.WriteHeader(http.StatusMethodNotAllowed)
		case http.MethodGet:
			sawRange = r.Header.Get("Range") == "bytes=0-10"
			w.WriteHeader(http.StatusPartialContent)
		}
	}))
	defer srv.Close()

	result := NewChecker().Validate(context.Background(), srv.URL)
	if !result.OK {
		t.Fatalf("expected 405 fallback to succeed, got reason %q", result.Reason)
	}
	if !sawRange {
		t.Error("fallback GET did not carry the Range header")
	}
}

func TestValidateReportsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	result := NewChecker().Validate(context.Background(), srv.URL)
	if result.OK {
		t.Fatal("5xx must be unreachable")
	}
	if !strings.Contains(result.Reason, "500") {
		t.Errorf("reason should carry the status, got %q", result.Reason)
	}
}

func TestValidateFallbackFailureReportsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	result := NewChecker().Validate(context.Background(), srv.URL)
	if result.OK {
		t.Fatal("failed fallback must be unreachable")
	}
	if !strings.Contains(result.Reason, "403") {
		t.Errorf("reason should carry the fallback status, got %q", result.Reason)
	}
}

func TestValidateConnectionRefused(t *testing.T) {
	// Grab a port that is guaranteed closed.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	result := NewChecker().Validate(context.Background(), url)
	if result.OK {
		t.Fatal("closed port must be unreachable")
	}
	if result.Reason == "" {
		t.Error("expected a human-readable reason")
	}
}

func TestValidateMalformedURL(t *testing.T) {
	result := NewChecker().Validate(context.Background(), "https://exa mple.com")
	if result.OK {
		t.Fatal("malformed URL must be invalid")
	}
}
