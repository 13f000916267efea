package utils

import (
	"crypto/tls"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"
)

// maxRedirects matches the hop limit of common browser-like clients.
const maxRedirects = 30

// ErrTooManyRedirects is returned by the client when a redirect chain exceeds maxRedirects.
var ErrTooManyRedirects = errors.New("too many redirects")

// defaultUserAgents is a list of common browser User-Agent strings.
// Some sites answer 403 to requests without one.
var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:125.0) Gecko/20100101 Firefox/125.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:125.0) Gecko/20100101 Firefox/125.0",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
}

var (
	uaMu   sync.Mutex
	uaRand = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// GetRandomUserAgent selects a User-Agent string randomly from the predefined list.
func GetRandomUserAgent() string {
	uaMu.Lock()
	defer uaMu.Unlock()
	return defaultUserAgents[uaRand.Intn(len(defaultUserAgents))]
}

// NewHTTPClient creates a client for liveness checks. The client follows up to
// maxRedirects redirects and bounds every request, redirects included, by timeout.
// It has no cookie jar; use WithFreshJar to scope cookies to one check.
func NewHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		DialContext: (&net.Dialer{
			Timeout:   timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeout,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("%w: stopped after %d", ErrTooManyRedirects, maxRedirects)
			}
			return nil
		},
	}
}

// WithFreshJar returns a shallow copy of client with an empty cookie jar, so
// cookies set during one redirect chain never leak into another check. The
// copy shares client's Transport and its connection pool.
func WithFreshJar(client *http.Client) *http.Client {
	// publicsuffix.List never makes cookiejar.New fail.
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	c := *client
	c.Jar = jar
	return &c
}
