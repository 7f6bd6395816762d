package sdmx

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Dimension IDs of the EXR data structure that the suite inspects.
const (
	DimCurrency      = "CURRENCY"
	DimCurrencyDenom = "CURRENCY_DENOM"
)

// obsDimensionRegexp pulls the period out of a generic-data observation, e.g.
// <generic:ObsDimension value="2024-01-31"/>
var obsDimensionRegexp = regexp.MustCompile(`ObsDimension value="([^"]+)"`)

// DimensionMarker returns the substring which identifies a series dimension
// with the given value in a generic-data payload.
func DimensionMarker(id, value string) string {
	return fmt.Sprintf(`id=%q value=%q`, id, value)
}

// CountDimension counts how many series dimension values with the given ID
// appear in the payload, regardless of their value.
func CountDimension(body, id string) int {
	return strings.Count(body, fmt.Sprintf(`id=%q value="`, id))
}

// DimensionValues extracts every value of the given series dimension from the
// payload, in document order, one per series.
func DimensionValues(body, id string) []string {
	re := regexp.MustCompile(regexp.QuoteMeta(fmt.Sprintf(`id=%q value="`, id)) + `([^"]+)"`)
	matches := re.FindAllStringSubmatch(body, -1)
	values := make([]string, 0, len(matches))
	for _, m := range matches {
		values = append(values, m[1])
	}
	return values
}

// CountObservations counts the observation-dimension markers in the payload.
// Each observation carries exactly one such marker.
func CountObservations(body string) int {
	return strings.Count(body, "generic:ObsDimension")
}

// ObservationDates extracts the period of every observation in the payload.
// Periods must be ISO dates (daily frequency); anything else is an error.
func ObservationDates(body string) ([]time.Time, error) {
	matches := obsDimensionRegexp.FindAllStringSubmatch(body, -1)
	dates := make([]time.Time, 0, len(matches))
	for _, m := range matches {
		d, err := time.Parse("2006-01-02", m[1])
		if err != nil {
			return nil, fmt.Errorf("ObservationDates: period %q is not an ISO date: %w", m[1], err)
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// ToleranceWindow returns how many days back from now the periods of the last
// n daily observations may reach. Observations are only published on business
// days, so the window adds two weekend days per started week, plus one day for
// publication lag on the current day.
func ToleranceWindow(n int) int {
	weeks := (n + 4) / 5
	return n + 2*weeks + 1
}
