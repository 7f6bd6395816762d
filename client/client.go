// Package client provides a thin HTTP client for an SDMX 2.1 data REST service.
// It deals in raw *http.Response values; assertions on responses live in the
// 'must', 'should' and 'match' packages.
package client

import (
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"github.com/sdmx-contrib/conformance/ct"
	"github.com/sdmx-contrib/conformance/sdmx"
)

// RequestOpt is a functional option which will modify an outgoing HTTP request.
// See functions starting with `With...` in this package for more info.
type RequestOpt func(req *http.Request)

// DataAPI is a client for one deployed data service.
type DataAPI struct {
	// BaseURL is the scheme+host (and optional base path) requests are made against,
	// e.g. "https://data-api.ecb.europa.eu".
	BaseURL string
	Client  *http.Client
	// True to enable verbose logging
	Debug bool
}

// Data performs a GET against the data resource for the given dataflow and
// series key, e.g. /service/data/EXR/M.USD.EUR.SP00.A.
func (c *DataAPI) Data(t ct.TestLike, flow string, key sdmx.Key, opts ...RequestOpt) *http.Response {
	t.Helper()
	return c.Do(t, "GET", []string{"service", "data", flow, key.String()}, opts...)
}

// WithQueries sets the query parameters on the request.
func WithQueries(q url.Values) RequestOpt {
	return func(req *http.Request) {
		req.URL.RawQuery = q.Encode()
	}
}

// WithAccept sets the Accept header to the given media type, selecting the
// representation of the data, e.g. "application/vnd.sdmx.genericdata+xml;version=2.1".
func WithAccept(mediaType string) RequestOpt {
	return func(req *http.Request) {
		req.Header.Set("Accept", mediaType)
	}
}

// WithIfModifiedSince sets the If-Modified-Since header to the given time,
// making the request conditional.
func WithIfModifiedSince(since time.Time) RequestOpt {
	return func(req *http.Request) {
		req.Header.Set("If-Modified-Since", since.UTC().Format(http.TimeFormat))
	}
}

// WithHeaders sets arbitrary headers on the request, e.g. from a fixture record.
func WithHeaders(headers map[string]string) RequestOpt {
	return func(req *http.Request) {
		for name, val := range headers {
			req.Header.Set(name, val)
		}
	}
}

// MustDo is the same as Do but fails the test if the returned HTTP response code is not 2xx.
func (c *DataAPI) MustDo(t ct.TestLike, method string, paths []string, opts ...RequestOpt) *http.Response {
	t.Helper()
	res := c.Do(t, method, paths, opts...)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		defer res.Body.Close()
		body, _ := io.ReadAll(res.Body)
		ct.Fatalf(t, "DataAPI.MustDo %s %s returned non-2xx code: %s - body: %s", method, res.Request.URL.String(), res.Status, string(body))
	}
	return res
}

// Do performs an HTTP request against the service, with the path built from the
// escaped `paths` segments relative to BaseURL. This function supports RequestOpts
// to set extra information on the request such as query parameters and headers.
// See all functions in this package starting with `With...`.
//
// Fails the test if an HTTP request could not be made or if there was a network
// error talking to the server. To do assertions on the HTTP response, see the
// `must` package. For example:
//
//	must.MatchResponse(t, res, match.HTTPResponse{
//		StatusCode: 406,
//	})
func (c *DataAPI) Do(t ct.TestLike, method string, paths []string, opts ...RequestOpt) *http.Response {
	t.Helper()
	escapedPaths := make([]string, len(paths))
	for i := range paths {
		escapedPaths[i] = url.PathEscape(paths[i])
	}
	return c.DoURL(t, method, c.BaseURL+"/"+strings.Join(escapedPaths, "/"), opts...)
}

// DoURL performs an HTTP request against an absolute URL, ignoring BaseURL.
// Fixture records carry full request URLs, so the suite mostly goes through
// this entry point. Redirects are followed; the final URL is visible on
// res.Request.URL.
func (c *DataAPI) DoURL(t ct.TestLike, method string, reqURL string, opts ...RequestOpt) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, reqURL, nil)
	if err != nil {
		ct.Fatalf(t, "DataAPI.Do failed to create http.NewRequest: %s", err)
	}
	for _, o := range opts {
		o(req)
	}
	if c.Debug {
		t.Logf("Making %s request to %s", method, req.URL)
	}
	res, err := c.Client.Do(req)
	if err != nil {
		ct.Fatalf(t, "DataAPI.Do response returned error: %s", err)
	}
	if c.Debug && res != nil {
		dump, err := httputil.DumpResponse(res, true)
		if err != nil {
			ct.Fatalf(t, "DataAPI.Do failed to dump response body: %s", err)
		}
		t.Logf("%s", string(dump))
	}
	return res
}

// NewLoggedClient returns an http.Client which logs requests/responses and
// their round-trip time.
func NewLoggedClient(t ct.TestLike, target string, cli *http.Client) *http.Client {
	t.Helper()
	if cli == nil {
		cli = &http.Client{
			Timeout: 30 * time.Second,
		}
	}
	transport := cli.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	cli.Transport = &loggedRoundTripper{t, target, transport}
	return cli
}

type loggedRoundTripper struct {
	t      ct.TestLike
	target string
	wrap   http.RoundTripper
}

func (t *loggedRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	res, err := t.wrap.RoundTrip(req)
	if err != nil {
		t.t.Logf("[DataAPI] %s %s%s => error: %s (%s)", req.Method, t.target, req.URL.Path, err, time.Since(start))
	} else {
		t.t.Logf("[DataAPI] %s %s%s => %s (%s)", req.Method, t.target, req.URL.Path, res.Status, time.Since(start))
	}
	return res, err
}

// ReadBody reads and closes the response body, failing the test on error.
func ReadBody(t ct.TestLike, res *http.Response) []byte {
	t.Helper()
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		ct.Fatalf(t, "ReadBody: reading HTTP response body returned %s", err)
	}
	return body
}

