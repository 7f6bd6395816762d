// package match contains matchers for HTTP responses, SDMX-ML bodies and JSON data.
//
// Matchers are composable functions which check for the data specified, returning a golang error if a matcher fails.
// They are typically used with the 'must' package in the following way:
//
//	res := api.Do(t, "GET", []string{"service", "data", "EXR", key.String()})
//	must.MatchResponse(t, res, match.HTTPResponse{
//		StatusCode: 200,
//		Body: []match.Data{
//			match.SeriesExactly([]string{"USD", "GBP"}, "EUR"),
//		},
//	})
//
// Matchers have no concept of tests, and do not automatically fail tests if the match fails. This can be useful
// when you want to repeatedly perform a check until it succeeds. If you want matches to fail a test,
// you can use the 'must' package.
package match

import (
	"fmt"
	"strings"
	"time"

	"github.com/sdmx-contrib/conformance/sdmx"
)

// Data will perform some matches on a raw response body decoded as UTF-8 text,
// returning an error on a mis-match.
type Data func(body string) error

// BodyContains returns a matcher which checks that the body contains `substr`.
func BodyContains(substr string) Data {
	return func(body string) error {
		if !strings.Contains(body, substr) {
			return fmt.Errorf("body does not contain %q", substr)
		}
		return nil
	}
}

// CurrencyPresent returns a matcher which checks that a series with the given
// currency dimension value appears in the generic-data body. It does not guard
// against additional unrequested series; use SeriesExactly for that.
func CurrencyPresent(code string) Data {
	return func(body string) error {
		if !strings.Contains(body, sdmx.DimensionMarker(sdmx.DimCurrency, code)) {
			return fmt.Errorf("no series with currency %q", code)
		}
		return nil
	}
}

// SeriesExactly returns a matcher which checks that the generic-data body
// contains a series for every requested currency and nothing else: the total
// count of currency dimension markers must equal the number of requested
// currencies, and each series must carry the denominator. This guards against
// a key accidentally matching as a wildcard.
func SeriesExactly(currencies []string, denom string) Data {
	return func(body string) error {
		for _, code := range currencies {
			if err := CurrencyPresent(code)(body); err != nil {
				return err
			}
		}
		if got := sdmx.CountDimension(body, sdmx.DimCurrency); got != len(currencies) {
			return fmt.Errorf("got %d series, want exactly %d (one per requested currency)", got, len(currencies))
		}
		denomMarker := sdmx.DimensionMarker(sdmx.DimCurrencyDenom, denom)
		if got := strings.Count(body, denomMarker); got != len(currencies) {
			return fmt.Errorf("got %d series with denominator %q, want %d", got, denom, len(currencies))
		}
		return nil
	}
}

// ObservationCount returns a matcher which checks that the generic-data body
// contains exactly `want` observations.
func ObservationCount(want int) Data {
	return func(body string) error {
		if got := sdmx.CountObservations(body); got != want {
			return fmt.Errorf("got %d observations, want %d", got, want)
		}
		return nil
	}
}

// ObservationsWithinWindow returns a matcher which checks that the body contains
// exactly `n` observations and that every observation period falls within the
// publication tolerance window ending at `now`. The window accounts for
// weekends and for the current day's rate not being published yet, see
// sdmx.ToleranceWindow.
func ObservationsWithinWindow(n int, now time.Time) Data {
	return func(body string) error {
		if err := ObservationCount(n)(body); err != nil {
			return err
		}
		dates, err := sdmx.ObservationDates(body)
		if err != nil {
			return err
		}
		earliest := now.AddDate(0, 0, -sdmx.ToleranceWindow(n))
		for _, d := range dates {
			if d.Before(earliest) || d.After(now) {
				return fmt.Errorf(
					"observation period %s outside window [%s, %s]",
					d.Format("2006-01-02"), earliest.Format("2006-01-02"), now.Format("2006-01-02"),
				)
			}
		}
		return nil
	}
}
