// Package must contains assertions for tests, which fail the test if the assertion fails.
package must

import (
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/sdmx-contrib/conformance/ct"
	"github.com/sdmx-contrib/conformance/match"
	"github.com/sdmx-contrib/conformance/should"
)

// NotError will ensure `err` is nil else terminate the test with `msg`.
func NotError(t ct.TestLike, msg string, err error) {
	t.Helper()
	if err != nil {
		ct.Fatalf(t, "must.NotError: %s -> %s", msg, err)
	}
}

// ParseJSON will ensure that the HTTP request/response body is valid JSON, then return the body, else terminate the test.
func ParseJSON(t ct.TestLike, b io.ReadCloser) gjson.Result {
	t.Helper()
	res, err := should.ParseJSON(b)
	if err != nil {
		ct.Fatalf(t, err.Error())
	}
	return res
}

// MatchSuccess consumes the HTTP response and fails if the response is non-2xx.
func MatchSuccess(t ct.TestLike, res *http.Response) {
	t.Helper()
	if err := should.MatchSuccess(res); err != nil {
		ct.Fatalf(t, err.Error())
	}
}

// MatchFailure consumes the HTTP response and fails if the response is 2xx.
func MatchFailure(t ct.TestLike, res *http.Response) {
	t.Helper()
	if err := should.MatchFailure(res); err != nil {
		ct.Fatalf(t, err.Error())
	}
}

// MatchResponse consumes the HTTP response and performs HTTP-level assertions on it. Returns the raw response body.
func MatchResponse(t ct.TestLike, res *http.Response, m match.HTTPResponse) []byte {
	t.Helper()
	body, err := should.MatchResponse(res, m)
	if err != nil {
		ct.Fatalf(t, err.Error())
	}
	return body
}

// MatchGJSON performs JSON assertions on a gjson.Result object.
func MatchGJSON(t ct.TestLike, jsonResult gjson.Result, matchers ...match.JSON) {
	t.Helper()
	err := should.MatchGJSON(jsonResult, matchers...)
	if err != nil {
		ct.Fatalf(t, err.Error())
	}
}

// MatchJSONBytes performs JSON assertions on a raw json byte slice.
func MatchJSONBytes(t ct.TestLike, rawJson []byte, matchers ...match.JSON) {
	t.Helper()
	err := should.MatchJSONBytes(rawJson, matchers...)
	if err != nil {
		ct.Fatalf(t, err.Error())
	}
}

// MatchBody performs body assertions on a raw response body decoded as UTF-8 text.
func MatchBody(t ct.TestLike, body []byte, matchers ...match.Data) {
	t.Helper()
	err := should.MatchBody(body, matchers...)
	if err != nil {
		ct.Fatalf(t, err.Error())
	}
}

// Equal ensures that got==want else logs an error.
// The 'msg' is displayed with the error to provide extra context.
func Equal[V comparable](t ct.TestLike, got, want V, msg string) {
	t.Helper()
	if got != want {
		ct.Errorf(t, "Equal %s: got '%v' want '%v'", msg, got, want)
	}
}

// NotEqual ensures that got!=want else logs an error.
// The 'msg' is displayed with the error to provide extra context.
func NotEqual[V comparable](t ct.TestLike, got, want V, msg string) {
	t.Helper()
	if got == want {
		ct.Errorf(t, "NotEqual %s: got '%v', want '%v'", msg, got, want)
	}
}

// StartWithStr ensures that got starts with wantPrefix else logs an error.
func StartWithStr(t ct.TestLike, got, wantPrefix, msg string) {
	t.Helper()
	if !strings.HasPrefix(got, wantPrefix) {
		ct.Errorf(t, "StartWithStr: %s: got '%s' without prefix '%s'", msg, got, wantPrefix)
	}
}

// GetJSONFieldStr extracts the string value under `wantKey` or fails the test.
// The format of `wantKey` is specified at https://godoc.org/github.com/tidwall/gjson#Get
func GetJSONFieldStr(t ct.TestLike, body gjson.Result, wantKey string) string {
	t.Helper()
	str, err := should.GetJSONFieldStr(body, wantKey)
	if err != nil {
		ct.Fatalf(t, err.Error())
	}
	return str
}

// HaveInOrder checks that the two slices match exactly, failing the test on mismatches or omissions.
func HaveInOrder[V comparable](t ct.TestLike, gots []V, wants []V) {
	t.Helper()
	err := should.HaveInOrder(gots, wants)
	if err != nil {
		ct.Fatalf(t, err.Error())
	}
}

// ContainSubset checks that every item in smaller is in larger, failing the test if at least 1 item isn't. Ignores extra elements
// in larger. Ignores ordering.
func ContainSubset[V comparable](t ct.TestLike, larger []V, smaller []V) {
	t.Helper()
	err := should.ContainSubset(larger, smaller)
	if err != nil {
		ct.Fatalf(t, err.Error())
	}
}
