package main

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vit0-9/sheet_url_checker/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:  config.ServerConfig{Host: "127.0.0.1", Port: 10290, ShutdownTimeout: time.Second},
		Check:   config.CheckConfig{Timeout: 2 * time.Second, Workers: 4},
		Upload:  config.UploadConfig{MaxFileSize: 1 << 20},
		Logging: config.LoggingConfig{Level: "info", Format: "text"},
	}
}

func TestRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app, err := NewApp(testConfig())
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}

	tests := []struct {
		method, path string
		status       int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/favicon.ico", http.StatusNoContent},
		{http.MethodGet, "/api/v1/health", http.StatusOK},
		{http.MethodGet, "/api/v1/check", http.StatusBadRequest},
		{http.MethodGet, "/swagger/doc.json", http.StatusOK},
		{http.MethodGet, "/upload", http.StatusNotFound},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		app.Router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
		if w.Code != tt.status {
			t.Errorf("%s %s = %d, want %d", tt.method, tt.path, w.Code, tt.status)
		}
	}
}

// TestUploadEndToEnd runs a real check against a local server through the full stack.
func TestUploadEndToEnd(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("/moved", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ok", http.StatusMovedPermanently)
	})
	target := httptest.NewServer(mux)
	defer target.Close()

	app, err := NewApp(testConfig())
	if err != nil {
		t.Fatal(err)
	}

	csv := "Urls\n" + target.URL + "/ok\n" + target.URL + "/moved\n" + target.URL + "/missing\nnot a url\n"

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, _ := mw.CreateFormFile("file", "links.csv")
	fw.Write([]byte(csv))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	want := strings.Join([]string{
		"Urls,is_exist,redirected",
		target.URL + "/ok,True,NA",
		target.URL + "/moved,True," + target.URL + "/ok",
		target.URL + "/missing,False,NA",
		"not a url,False,NA (Invalid URL format)",
		"",
	}, "\n")
	if w.Body.String() != want {
		t.Errorf("body =\n%s\nwant\n%s", w.Body.String(), want)
	}
}
