package utils

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"syscall"
	"time"
)

// DefaultCheckTimeout bounds a single liveness check, redirects included.
const DefaultCheckTimeout = 10 * time.Second

// NotAvailable is the redirected value for rows that have no redirect target.
const NotAvailable = "NA"

// Outcome classifies how a liveness check ended.
type Outcome int

const (
	// OutcomeReachable means the server answered with a status below 400.
	OutcomeReachable Outcome = iota
	// OutcomeUnreachable means the server answered with a status of 400 or above.
	OutcomeUnreachable
	// OutcomeInvalid means the value was not an http(s) URL; no request was made.
	OutcomeInvalid
	// OutcomeError means the request failed at the transport level.
	OutcomeError
	// OutcomeUnexpected means the check failed for any other reason.
	OutcomeUnexpected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeReachable:
		return "reachable"
	case OutcomeUnreachable:
		return "unreachable"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeError:
		return "error"
	case OutcomeUnexpected:
		return "unexpected_error"
	}
	return "unknown"
}

// CheckResult is the result of checking one cell value.
type CheckResult struct {
	URL        string
	Outcome    Outcome
	StatusCode int
	// FinalURL is set only when at least one redirect led somewhere other than URL.
	FinalURL string
	// ErrorKind names the failure class for OutcomeError and OutcomeUnexpected.
	ErrorKind string
}

// IsExist reports whether the URL answered with a non-error status.
func (r CheckResult) IsExist() bool {
	return r.Outcome == OutcomeReachable
}

// Redirected renders the value written to the "redirected" column.
func (r CheckResult) Redirected() string {
	switch r.Outcome {
	case OutcomeReachable:
		if r.FinalURL != "" {
			return r.FinalURL
		}
	case OutcomeInvalid:
		return "NA (Invalid URL format)"
	case OutcomeError:
		return fmt.Sprintf("NA (Error: %s)", r.ErrorKind)
	case OutcomeUnexpected:
		return fmt.Sprintf("NA (Unexpected Error: %s)", r.ErrorKind)
	}
	return NotAvailable
}

// Checker performs URL liveness checks. It is safe for concurrent use.
type Checker struct {
	client  *http.Client
	timeout time.Duration
}

// NewChecker returns a Checker whose checks each give up after timeout.
// A non-positive timeout selects DefaultCheckTimeout.
func NewChecker(timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = DefaultCheckTimeout
	}
	return &Checker{
		client:  NewHTTPClient(timeout),
		timeout: timeout,
	}
}

// Check issues one GET for value and classifies the outcome. Values that are
// not strings starting with http:// or https:// are rejected without any
// network access. Check never panics and never returns an error; every
// failure is folded into the result.
func (c *Checker) Check(ctx context.Context, value any) (result CheckResult) {
	raw, ok := value.(string)
	if !ok || !(strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://")) {
		return CheckResult{URL: fmt.Sprint(value), Outcome: OutcomeInvalid}
	}
	result = CheckResult{URL: raw}

	defer func() {
		if p := recover(); p != nil {
			slog.Error("url check panicked", "url", raw, "panic", p)
			result.Outcome = OutcomeUnexpected
			result.ErrorKind = "Panic"
		}
	}()

	if u, err := url.Parse(raw); err != nil || u.Host == "" {
		result.Outcome = OutcomeError
		result.ErrorKind = "InvalidURL"
		return result
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		result.Outcome = OutcomeError
		result.ErrorKind = "InvalidURL"
		return result
	}
	req.Header.Set("User-Agent", GetRandomUserAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := WithFreshJar(c.client).Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			result.Outcome = OutcomeError
			result.ErrorKind = transportErrorKind(err)
		} else {
			result.Outcome = OutcomeUnexpected
			result.ErrorKind = errorTypeName(err)
		}
		slog.Debug("url check failed", "url", raw, "kind", result.ErrorKind, "error", err)
		return result
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	result.StatusCode = resp.StatusCode
	if resp.StatusCode >= http.StatusBadRequest {
		result.Outcome = OutcomeUnreachable
		return result
	}

	result.Outcome = OutcomeReachable
	// Request.Response is only populated on requests created by a redirect.
	if resp.Request != nil && resp.Request.Response != nil {
		if final := resp.Request.URL.String(); final != raw {
			result.FinalURL = final
		}
	}
	return result
}

// transportErrorKind names the class of a failed round trip.
func transportErrorKind(err error) string {
	if errors.Is(err, ErrTooManyRedirects) {
		return "TooManyRedirects"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "Timeout"
	}
	if errors.Is(err, context.Canceled) {
		return "Cancelled"
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return "Timeout"
		}
		return "DNSError"
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "Timeout"
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return "ConnectionRefused"
	}
	if errors.Is(err, syscall.ECONNRESET) {
		return "ConnectionReset"
	}

	var (
		certErr      *tls.CertificateVerificationError
		unknownCA    x509.UnknownAuthorityError
		hostErr      x509.HostnameError
		invalidCert  x509.CertificateInvalidError
		recordHdrErr tls.RecordHeaderError
	)
	if errors.As(err, &certErr) || errors.As(err, &unknownCA) || errors.As(err, &hostErr) ||
		errors.As(err, &invalidCert) || errors.As(err, &recordHdrErr) {
		return "SSLError"
	}

	return "ConnectionError"
}

func errorTypeName(err error) string {
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if name := t.Name(); name != "" {
		return name
	}
	return "Error"
}
