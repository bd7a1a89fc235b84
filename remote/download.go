package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// FileFetcher downloads remote assets into a local directory. File names are
// supplied by the caller and keyed by author id, so a re-download of the
// same asset overwrites in place.
type FileFetcher struct {
	dir  string
	http *http.Client
}

// NewFileFetcher returns a fetcher writing into dir, creating it on demand.
func NewFileFetcher(dir string, timeout time.Duration) *FileFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &FileFetcher{dir: dir, http: &http.Client{Timeout: timeout}}
}

func (f *FileFetcher) Download(ctx context.Context, url, localName string) (string, error) {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create asset dir: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := f.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download %s: %s", url, resp.Status)
	}

	path := filepath.Join(f.dir, localName)
	tmp := path + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("failed to create asset file: %w", err)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to write asset file: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to close asset file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to finalize asset file: %w", err)
	}

	return path, nil
}
