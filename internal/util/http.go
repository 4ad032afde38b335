package util

import (
	"net/http"
	"net/http/cookiejar"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
)

type HTTPClientOptions struct {
	Timeout     time.Duration
	Transport   http.RoundTripper
	DebugLogger interface {
		Debugf(string, ...any)
	}
}

// NewHTTPClient builds the shared client for a scraping session. The base
// transport goes through the Cloudflare bypass round tripper, since the
// catalog host sits behind its browser checks. Identity headers are set
// per request attempt by the fetch layer, not here.
func NewHTTPClient(opts HTTPClientOptions) (*http.Client, error) {
	jar, _ := cookiejar.New(nil)

	var baseTransport http.RoundTripper
	if opts.Transport != nil {
		baseTransport = opts.Transport
	} else {
		baseTransport = cloudflarebp.AddCloudFlareByPass(&http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			DisableCompression:  false,
			MaxIdleConns:        100,
			MaxConnsPerHost:     100,
			MaxIdleConnsPerHost: 100,
			ForceAttemptHTTP2:   true,
		})
	}

	client := &http.Client{
		Timeout: opts.Timeout,
		Transport: roundTripper{
			base: baseTransport,
			log:  opts.DebugLogger,
		},
		Jar: jar,
	}

	if opts.DebugLogger != nil {
		opts.DebugLogger.Debugf("HTTP client initialized (timeout=%s)\n", opts.Timeout)
	}

	return client, nil
}

type roundTripper struct {
	base http.RoundTripper
	log  interface{ Debugf(string, ...any) }
}

func (rt roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if rt.log != nil {
		rt.log.Debugf("HTTP %s %s\n", req.Method, req.URL.String())
	}

	return rt.base.RoundTrip(req)
}
