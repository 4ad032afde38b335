package weeb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient wires a client against a test server with the retry pause
// replaced by a counter.
func newTestClient(srv *httptest.Server, sleeps *[]time.Duration) *Client {
	c := NewClient(Options{
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
		UserAgent:  "test-agent",
	})
	c.sleep = func(d time.Duration) {
		*sleeps = append(*sleeps, d)
	}
	return c
}

func TestFetchSucceedsFirstTry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("hello"))
	}))
	defer srv.Close()

	var sleeps []time.Duration
	c := newTestClient(srv, &sleeps)

	body, err := c.fetch(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), body)
	assert.Empty(t, sleeps)
}

func TestFetchRetriesThenSucceeds(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte("finally"))
	}))
	defer srv.Close()

	var sleeps []time.Duration
	c := newTestClient(srv, &sleeps)

	body, err := c.fetch(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("finally"), body)

	assert.Equal(t, int32(3), hits.Load())
	require.Len(t, sleeps, 2, "a pause between each attempt, none after success")
	for _, d := range sleeps {
		assert.GreaterOrEqual(t, d, 500*time.Millisecond)
		assert.Less(t, d, time.Second)
	}
}

func TestFetchGivesUpAfterThreeAttempts(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	var sleeps []time.Duration
	c := newTestClient(srv, &sleeps)

	_, err := c.fetch(context.Background(), srv.URL, nil)
	require.Error(t, err)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, srv.URL, netErr.URL)
	assert.Contains(t, netErr.Error(), "HTTP 500")

	assert.Equal(t, int32(3), hits.Load())
	assert.Len(t, sleeps, 2, "no pause after the final attempt")
}

func TestFetchClientErrorsAreRetriedToo(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	var sleeps []time.Duration
	c := newTestClient(srv, &sleeps)

	_, err := c.fetch(context.Background(), srv.URL, nil)
	require.Error(t, err)
	assert.Equal(t, int32(3), hits.Load())
}

func TestFetchStopsOnCancelledContext(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	var sleeps []time.Duration
	c := newTestClient(srv, &sleeps)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.fetch(ctx, srv.URL, nil)
	require.Error(t, err)
	assert.LessOrEqual(t, hits.Load(), int32(1), "no retries once the context is done")
	assert.Empty(t, sleeps)
}

func TestFetchAppendsQueryParams(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	var sleeps []time.Duration
	c := newTestClient(srv, &sleeps)

	params := url.Values{"is_prev": {"False"}, "reading_style": {"long_strip"}}
	_, err := c.fetch(context.Background(), srv.URL, params)
	require.NoError(t, err)
	assert.Equal(t, "is_prev=False&reading_style=long_strip", gotQuery)
}

func TestFetchDocumentWrapsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	var sleeps []time.Duration
	c := newTestClient(srv, &sleeps)

	_, err := c.fetchDocument(context.Background(), srv.URL, nil)
	require.Error(t, err)

	var parseErr *ParsingError
	require.ErrorAs(t, err, &parseErr)

	var netErr *NetworkError
	assert.True(t, errors.As(parseErr.Err, &netErr), "the network cause stays reachable")
}
