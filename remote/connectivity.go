package remote

import (
	"context"
	"net/http"
	"time"
)

// Probe reports reachability by issuing a cheap HEAD request against the
// backend base URL. Offline is an expected state, never an error.
type Probe struct {
	url  string
	http *http.Client
}

// NewProbe builds a probe against baseURL with a short timeout.
func NewProbe(baseURL string, timeout time.Duration) *Probe {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Probe{url: baseURL, http: &http.Client{Timeout: timeout}}
}

func (p *Probe) Online(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.url, nil)
	if err != nil {
		return false
	}
	resp, err := p.http.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return true
}
