// Package weeb scrapes the WeebCentral catalog: series search and
// listings, chapter enumeration, page downloads and chapter assembly.
package weeb

import (
	"net/http"
	"time"

	browser "github.com/EDDYCJY/fake-useragent"
)

const DefaultBaseURL = "https://weebcentral.com"

const (
	// DefaultTimeout bounds every single request attempt.
	DefaultTimeout = 60 * time.Second

	// DefaultPageWorkers is the width of the page download pool.
	DefaultPageWorkers = 15

	// DefaultCacheSize bounds each of the per-entity caches.
	DefaultCacheSize = 100
)

type Options struct {
	// HTTPClient is the shared client for all requests. Required; build
	// one with util.NewHTTPClient so the timeout and the Cloudflare
	// bypass transport are in place.
	HTTPClient *http.Client

	// BaseURL overrides the catalog host, mainly for tests.
	BaseURL string

	// UserAgent pins the identity header. When empty a fresh random
	// agent is generated per request attempt.
	UserAgent string

	PageWorkers int
	CacheSize   int
}

// Client is a scraping session. It owns the fetch capability and one
// bounded cache per entity kind; entities created through it hold a
// reference back to it rather than any network state of their own.
type Client struct {
	http        *http.Client
	baseURL     string
	agent       func() string
	sleep       func(time.Duration)
	pageWorkers int

	searches     *cache[[]*Manga]
	chapterLists *cache[[]*Chapter]
	pageLists    *cache[[]*Page]
	pageData     *cache[[]byte]
}

func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	workers := opts.PageWorkers
	if workers < 1 {
		workers = DefaultPageWorkers
	}

	size := opts.CacheSize
	if size < 1 {
		size = DefaultCacheSize
	}

	agent := browser.Random
	if opts.UserAgent != "" {
		agent = func() string { return opts.UserAgent }
	}

	return &Client{
		http:        httpClient,
		baseURL:     baseURL,
		agent:       agent,
		sleep:       time.Sleep,
		pageWorkers: workers,

		searches:     newCache[[]*Manga](size),
		chapterLists: newCache[[]*Chapter](size),
		pageLists:    newCache[[]*Page](size),
		pageData:     newCache[[]byte](size),
	}
}
