package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDownload_WritesFileAndReturnsPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("jpeg-bytes"))
	}))
	defer srv.Close()

	dir := filepath.Join(t.TempDir(), "assets")
	f := NewFileFetcher(dir, 5*time.Second)

	path, err := f.Download(context.Background(), srv.URL+"/a1.jpg", "avatar_a1.jpg")
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}
	if path != filepath.Join(dir, "avatar_a1.jpg") {
		t.Fatalf("unexpected path %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != "jpeg-bytes" {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestDownload_SameNameOverwrites(t *testing.T) {
	body := "v1"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	dir := t.TempDir()
	f := NewFileFetcher(dir, 5*time.Second)
	ctx := context.Background()

	if _, err := f.Download(ctx, srv.URL, "avatar_a1.jpg"); err != nil {
		t.Fatal(err)
	}
	body = "v2"
	path, err := f.Download(ctx, srv.URL, "avatar_a1.jpg")
	if err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "v2" {
		t.Fatalf("expected overwrite, got %q", data)
	}
}

func TestDownload_ErrorStatusFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := NewFileFetcher(t.TempDir(), 5*time.Second)
	if _, err := f.Download(context.Background(), srv.URL+"/missing.jpg", "x.jpg"); err == nil {
		t.Fatal("expected error for 404")
	}
}

func TestProbe_Online(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	p := NewProbe(srv.URL, time.Second)
	if !p.Online(context.Background()) {
		t.Fatal("expected online against a live server")
	}

	srv.Close()
	if p.Online(context.Background()) {
		t.Fatal("expected offline after server shutdown")
	}
}
