package utils

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestCheck_InvalidFormat(t *testing.T) {
	c := NewChecker(time.Second)

	for _, v := range []any{"not a url", "ftp://example.com", "HTTP://example.com", "", nil, 42.0, true} {
		r := c.Check(context.Background(), v)
		if r.Outcome != OutcomeInvalid {
			t.Errorf("Check(%#v).Outcome = %v, want invalid", v, r.Outcome)
		}
		if r.IsExist() || r.Redirected() != "NA (Invalid URL format)" {
			t.Errorf("Check(%#v) = (%v, %q), want (false, %q)", v, r.IsExist(), r.Redirected(), "NA (Invalid URL format)")
		}
	}
}

func TestCheck_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Error("expected a User-Agent header")
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	r := NewChecker(time.Second).Check(context.Background(), srv.URL)
	if !r.IsExist() || r.Redirected() != "NA" {
		t.Errorf("Check() = (%v, %q), want (true, %q)", r.IsExist(), r.Redirected(), "NA")
	}
	if r.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", r.StatusCode)
	}
}

func TestCheck_Redirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	r := NewChecker(time.Second).Check(context.Background(), srv.URL+"/old")
	if !r.IsExist() {
		t.Fatalf("Check() outcome = %v, want reachable", r.Outcome)
	}
	if want := srv.URL + "/new"; r.Redirected() != want {
		t.Errorf("Redirected() = %q, want %q", r.Redirected(), want)
	}
}

func TestCheck_RedirectToErrorStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/gone", http.StatusFound)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	r := NewChecker(time.Second).Check(context.Background(), srv.URL+"/old")
	if r.IsExist() || r.Redirected() != "NA" {
		t.Errorf("Check() = (%v, %q), want (false, %q)", r.IsExist(), r.Redirected(), "NA")
	}
}

func TestCheck_ErrorStatus(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		r := NewChecker(time.Second).Check(context.Background(), srv.URL)
		if r.Outcome != OutcomeUnreachable || r.Redirected() != "NA" || r.StatusCode != status {
			t.Errorf("status %d: Check() = %+v", status, r)
		}
		srv.Close()
	}
}

func TestCheck_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	r := NewChecker(50*time.Millisecond).Check(context.Background(), srv.URL)
	if r.Outcome != OutcomeError {
		t.Fatalf("Outcome = %v, want error", r.Outcome)
	}
	if r.Redirected() != "NA (Error: Timeout)" {
		t.Errorf("Redirected() = %q, want %q", r.Redirected(), "NA (Error: Timeout)")
	}
}

func TestCheck_ConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()

	r := NewChecker(time.Second).Check(context.Background(), "http://"+addr)
	if r.IsExist() {
		t.Fatal("expected closed port to be unreachable")
	}
	if !strings.HasPrefix(r.Redirected(), "NA (Error: ") || r.ErrorKind == "" {
		t.Errorf("Redirected() = %q, want transport error", r.Redirected())
	}
}

func TestCheck_TooManyRedirects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, r.URL.Path+"x", http.StatusFound)
	}))
	defer srv.Close()

	r := NewChecker(time.Second).Check(context.Background(), srv.URL+"/")
	if r.Redirected() != "NA (Error: TooManyRedirects)" {
		t.Errorf("Redirected() = %q, want %q", r.Redirected(), "NA (Error: TooManyRedirects)")
	}
}

func TestCheck_MissingHost(t *testing.T) {
	r := NewChecker(time.Second).Check(context.Background(), "http://")
	if r.Redirected() != "NA (Error: InvalidURL)" {
		t.Errorf("Redirected() = %q, want %q", r.Redirected(), "NA (Error: InvalidURL)")
	}
}

func TestCheck_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewChecker(time.Second).Check(ctx, srv.URL)
	if r.IsExist() || r.Outcome != OutcomeError {
		t.Errorf("Check() = %+v, want transport error", r)
	}
}

func TestCheckResult_Redirected(t *testing.T) {
	tests := []struct {
		r    CheckResult
		want string
	}{
		{CheckResult{Outcome: OutcomeReachable}, "NA"},
		{CheckResult{Outcome: OutcomeReachable, FinalURL: "https://b"}, "https://b"},
		{CheckResult{Outcome: OutcomeUnreachable}, "NA"},
		{CheckResult{Outcome: OutcomeInvalid}, "NA (Invalid URL format)"},
		{CheckResult{Outcome: OutcomeError, ErrorKind: "DNSError"}, "NA (Error: DNSError)"},
		{CheckResult{Outcome: OutcomeUnexpected, ErrorKind: "Panic"}, "NA (Unexpected Error: Panic)"},
	}
	for _, tt := range tests {
		if got := tt.r.Redirected(); got != tt.want {
			t.Errorf("%v.Redirected() = %q, want %q", tt.r.Outcome, got, tt.want)
		}
	}
}

func TestCheck_CookiesDoNotLeakBetweenChecks(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "1", Path: "/"})
	})
	mux.HandleFunc("/page", func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("session"); err == nil {
			w.WriteHeader(http.StatusForbidden)
		}
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewChecker(time.Second)
	if r := c.Check(context.Background(), srv.URL+"/page"); !r.IsExist() {
		t.Fatalf("first check of /page = %+v, want reachable", r)
	}
	if r := c.Check(context.Background(), srv.URL+"/login"); !r.IsExist() {
		t.Fatalf("check of /login = %+v, want reachable", r)
	}
	if r := c.Check(context.Background(), srv.URL+"/page"); !r.IsExist() {
		t.Errorf("second check of /page = %+v, want reachable (cookie from /login was sent)", r)
	}
}

func TestCheck_CookiesKeptWithinRedirectChain(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "1", Path: "/"})
		http.Redirect(w, r, "/landing", http.StatusFound)
	})
	mux.HandleFunc("/landing", func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("session"); err != nil {
			w.WriteHeader(http.StatusUnauthorized)
		}
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	r := NewChecker(time.Second).Check(context.Background(), srv.URL+"/start")
	if !r.IsExist() || r.Redirected() != srv.URL+"/landing" {
		t.Errorf("Check() = (%v, %q), want (true, %q)", r.IsExist(), r.Redirected(), srv.URL+"/landing")
	}
}
