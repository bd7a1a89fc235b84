package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/dchitadze/fathersquotes/timex"
)

// RESTClient talks to a PostgREST-style table API (the hosted backend the
// original dataset lives in). One implementation serves both bulk and
// incremental sync; there is no second backend generation.
type RESTClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewRESTClient builds a client for the table API rooted at baseURL,
// authenticating every request with the publishable apiKey.
func NewRESTClient(baseURL, apiKey string, timeout time.Duration) *RESTClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &RESTClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *RESTClient) ListAuthors(ctx context.Context) ([]Author, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("deleted", "eq.false")
	q.Set("order", "order.asc.nullslast")

	var result []Author
	if err := c.getJSON(ctx, "fathers", q, &result); err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	return result, nil
}

func (c *RESTClient) ListAuthorsChangedSince(ctx context.Context, since time.Time) ([]Author, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("updated_at", "gt."+timex.Format(since))

	var result []Author
	if err := c.getJSON(ctx, "fathers", q, &result); err != nil {
		return nil, fmt.Errorf("failed to list changed authors: %w", err)
	}
	return result, nil
}

func (c *RESTClient) ListQuotes(ctx context.Context) ([]Quote, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("is_published", "eq.true")
	q.Set("deleted", "eq.false")
	q.Set("order", "created_at.desc")

	var result []Quote
	if err := c.getJSON(ctx, "quotes", q, &result); err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	return result, nil
}

func (c *RESTClient) ListQuotesChangedSince(ctx context.Context, since time.Time) ([]Quote, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("updated_at", "gt."+timex.Format(since))

	var result []Quote
	if err := c.getJSON(ctx, "quotes", q, &result); err != nil {
		return nil, fmt.Errorf("failed to list changed quotes: %w", err)
	}
	return result, nil
}

func (c *RESTClient) SubmitFeedback(ctx context.Context, fb Feedback) error {
	body, err := json.Marshal(fb)
	if err != nil {
		return fmt.Errorf("failed to encode feedback: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/rest/v1/feedback", bytes.NewReader(body))
	if err != nil {
		return err
	}
	c.setAuth(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to submit feedback: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("feedback rejected: %s; body: %s", resp.Status, string(b))
	}
	return nil
}

// getJSON performs an idempotent GET with a bounded retry on transient
// failures (network errors and 5xx responses).
func (c *RESTClient) getJSON(ctx context.Context, table string, q url.Values, out any) error {
	u := c.baseURL + "/rest/v1/" + table + "?" + q.Encode()

	backoff := retry.WithMaxRetries(2, retry.NewExponential(250*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return err
		}
		c.setAuth(req)

		resp, err := c.http.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return retry.RetryableError(fmt.Errorf("server error: %s", resp.Status))
		}
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			return fmt.Errorf("unexpected status %s; body: %s", resp.Status, string(b))
		}

		return json.NewDecoder(resp.Body).Decode(out)
	})
}

func (c *RESTClient) setAuth(req *http.Request) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
}
