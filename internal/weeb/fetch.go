package weeb

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// maxAttempts is the total number of tries per logical request.
const maxAttempts = 3

// fetch performs a GET with retries and returns the response body. Every
// attempt carries a freshly picked identity header; any non-2xx status
// counts as a failed attempt the same way a transport error does, since
// the upstream answers rate limiting with a mix of both. A jittered pause
// separates attempts to avoid hammering a host that just refused us.
func (c *Client) fetch(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	target := rawURL
	if len(params) > 0 {
		target = rawURL + "?" + params.Encode()
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		body, err := c.attempt(ctx, target)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
		if attempt < maxAttempts {
			c.sleep(retryJitter())
		}
	}

	return nil, &NetworkError{URL: rawURL, Err: lastErr}
}

func (c *Client) attempt(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.agent())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// retryJitter returns a random pause in [500ms, 1s).
func retryJitter() time.Duration {
	return 500*time.Millisecond + rand.N(500*time.Millisecond)
}

// fetchDocument fetches a page and parses it into a DOM. Any failure,
// including the fetch itself, surfaces as a *ParsingError wrapping the
// original cause.
func (c *Client) fetchDocument(ctx context.Context, rawURL string, params url.Values) (*goquery.Document, error) {
	body, err := c.fetch(ctx, rawURL, params)
	if err != nil {
		return nil, &ParsingError{URL: rawURL, Err: err}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &ParsingError{URL: rawURL, Err: err}
	}

	return doc, nil
}
