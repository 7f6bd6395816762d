// Package should contains assertions for tests, which returns an error if the assertion fails.
package should

import (
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"
	"golang.org/x/exp/slices"

	"github.com/sdmx-contrib/conformance/match"
)

// ParseJSON will ensure that the HTTP request/response body is valid JSON, then return the body, else returns an error.
func ParseJSON(b io.ReadCloser) (res gjson.Result, err error) {
	body, err := io.ReadAll(b)
	if err != nil {
		return res, fmt.Errorf("ParseJSON: reading body returned %s", err)
	}
	if !gjson.ValidBytes(body) {
		return res, fmt.Errorf("ParseJSON: not valid JSON")
	}
	return gjson.ParseBytes(body), nil
}

// MatchSuccess consumes the HTTP response and fails if the response is non-2xx.
func MatchSuccess(res *http.Response) error {
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("MatchSuccess got status %d instead of a success code", res.StatusCode)
	}
	return nil
}

// MatchFailure consumes the HTTP response and fails if the response is 2xx.
func MatchFailure(res *http.Response) error {
	if res.StatusCode >= 200 && res.StatusCode <= 299 {
		return fmt.Errorf("MatchFailure got status %d instead of a failure code", res.StatusCode)
	}
	return nil
}

// MatchResponse consumes the HTTP response and performs HTTP-level assertions on it. Returns the raw response body.
// Body matchers run over the body decoded as UTF-8 text; JSON matchers additionally require the body to be valid JSON.
func MatchResponse(res *http.Response, m match.HTTPResponse) ([]byte, error) {
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("MatchResponse: Failed to read response body: %s", err)
	}

	contextStr := fmt.Sprintf("%s => %s", res.Request.URL.String(), string(body))

	if m.StatusCode != 0 {
		if res.StatusCode != m.StatusCode {
			return nil, fmt.Errorf("MatchResponse got status %d want %d - %s", res.StatusCode, m.StatusCode, contextStr)
		}
	}
	if m.Headers != nil {
		for name, val := range m.Headers {
			if res.Header.Get(name) != val {
				return nil, fmt.Errorf("MatchResponse got %s: %s want %s - %s", name, res.Header.Get(name), val, contextStr)
			}
		}
	}
	if m.Body != nil {
		text := string(body)
		for _, bm := range m.Body {
			if err = bm(text); err != nil {
				return nil, fmt.Errorf("MatchResponse %s - %s", err, contextStr)
			}
		}
	}
	if m.JSON != nil {
		if !gjson.ValidBytes(body) {
			return nil, fmt.Errorf("MatchResponse response body is not valid JSON - %s", contextStr)
		}
		parsedBody := gjson.ParseBytes(body)
		for _, jm := range m.JSON {
			if err = jm(parsedBody); err != nil {
				return nil, fmt.Errorf("MatchResponse %s - %s", err, contextStr)
			}
		}
	}
	return body, nil
}

// MatchGJSON performs JSON assertions on a gjson.Result object.
func MatchGJSON(jsonResult gjson.Result, matchers ...match.JSON) error {
	return MatchJSONBytes([]byte(jsonResult.Raw), matchers...)
}

// MatchJSONBytes performs JSON assertions on a raw json byte slice.
func MatchJSONBytes(rawJson []byte, matchers ...match.JSON) error {
	if !gjson.ValidBytes(rawJson) {
		return fmt.Errorf("MatchJSONBytes: rawJson is not valid JSON")
	}

	body := gjson.ParseBytes(rawJson)
	for _, jm := range matchers {
		if err := jm(body); err != nil {
			return fmt.Errorf("MatchJSONBytes %s with input = %v", err, body.Get("@pretty").String())
		}
	}
	return nil
}

// MatchBody performs body assertions on a raw response body decoded as UTF-8 text.
func MatchBody(body []byte, matchers ...match.Data) error {
	text := string(body)
	for _, bm := range matchers {
		if err := bm(text); err != nil {
			return fmt.Errorf("MatchBody %s", err)
		}
	}
	return nil
}

// GetJSONFieldStr extracts the string value under `wantKey` or fails the test.
// The format of `wantKey` is specified at https://godoc.org/github.com/tidwall/gjson#Get
func GetJSONFieldStr(body gjson.Result, wantKey string) (string, error) {
	res := body.Get(wantKey)
	if res.Index == 0 {
		return "", fmt.Errorf("JSONFieldStr: key '%s' missing from %s", wantKey, body.Raw)
	}
	if res.Str == "" {
		return "", fmt.Errorf("JSONFieldStr: key '%s' is not a string, body: %s", wantKey, body.Raw)
	}
	return res.Str, nil
}

// HaveInOrder checks that the two slices match exactly, failing the test on mismatches or omissions.
func HaveInOrder[V comparable](gots []V, wants []V) error {
	if len(gots) != len(wants) {
		return fmt.Errorf("HaveInOrder: length mismatch, got %v want %v", gots, wants)
	}
	for i := range gots {
		if gots[i] != wants[i] {
			return fmt.Errorf("HaveInOrder: index %d got %v want %v", i, gots[i], wants[i])
		}
	}
	return nil
}

// ContainSubset checks that every item in smaller is in larger, failing the test if at least 1 item isn't. Ignores extra elements
// in larger. Ignores ordering.
func ContainSubset[V comparable](larger []V, smaller []V) error {
	if len(larger) < len(smaller) {
		return fmt.Errorf("ContainSubset: length mismatch, larger=%d smaller=%d", len(larger), len(smaller))
	}
	for i, item := range smaller {
		if !slices.Contains(larger, item) {
			return fmt.Errorf("ContainSubset: element not found in larger set: smaller[%d] (%v) larger=%v", i, item, larger)
		}
	}
	return nil
}
