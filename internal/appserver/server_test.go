package appserver

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taskmind/internal/logging"
)

func fakeAPI() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Handled-By", "api")
		_, _ = w.Write([]byte("api:" + r.URL.Path))
	})
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, string(body)
}

func TestServer_RoutesAPIAndHealthToAPI(t *testing.T) {
	srv := NewServer(Deps{API: fakeAPI(), Logger: logging.Discard()})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	for _, path := range []string{"/api/tasks", "/api/tasks/abc", "/healthz"} {
		resp, body := get(t, ts.URL+path)
		if resp.Header.Get("X-Handled-By") != "api" || body != "api:"+path {
			t.Fatalf("expected %s routed to api, got %q", path, body)
		}
	}
}

func TestServer_NoWebUIDirIs404JSON(t *testing.T) {
	srv := NewServer(Deps{API: fakeAPI(), Logger: logging.Discard()})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, body := get(t, ts.URL+"/")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, `"NOT_FOUND"`) {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestServer_ServesStaticClient(t *testing.T) {
	dist := t.TempDir()
	if err := os.WriteFile(filepath.Join(dist, "index.html"), []byte("<h1>tasks</h1>"), 0o644); err != nil {
		t.Fatalf("write index: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dist, "script.js"), []byte("console.log(1)"), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}

	srv := NewServer(Deps{API: fakeAPI(), WebUI: WebUIConfig{DistDir: dist}, Logger: logging.Discard()})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	if _, body := get(t, ts.URL+"/"); !strings.Contains(body, "<h1>tasks</h1>") {
		t.Fatalf("expected index.html, got %q", body)
	}
	if _, body := get(t, ts.URL+"/script.js"); body != "console.log(1)" {
		t.Fatalf("expected script.js, got %q", body)
	}
	if _, body := get(t, ts.URL+"/some/client/route"); !strings.Contains(body, "<h1>tasks</h1>") {
		t.Fatalf("expected index fallback, got %q", body)
	}
}

func TestServer_StaticRejectsWrites(t *testing.T) {
	srv := NewServer(Deps{API: fakeAPI(), WebUI: WebUIConfig{DistDir: t.TempDir()}, Logger: logging.Discard()})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/index.html", "text/plain", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.StatusCode)
	}
}
