// Package fixtures loads the parametrized test cases of the suite from a JSON
// document of named tables. Each table is an array of field mappings; tables
// are projected onto typed case records once and are read-only afterwards, so
// tests are free to run in any order or in parallel.
package fixtures

import (
	"encoding/json"
	"fmt"
	"os"
)

// Source is a loaded fixture document.
type Source struct {
	tables map[string]json.RawMessage
}

// Load reads and parses the fixture document at the given path.
func Load(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fixtures: %w", err)
	}
	defer f.Close()
	var tables map[string]json.RawMessage
	if err := json.NewDecoder(f).Decode(&tables); err != nil {
		return nil, fmt.Errorf("fixtures: %s is not a valid fixture document: %w", path, err)
	}
	return &Source{tables: tables}, nil
}

// Table unmarshals the named table into `out`, which should be a pointer to a
// slice of one of the case types in this package. A missing table is an error:
// the suite treats an absent table as a broken fixture file, not as zero cases.
func (s *Source) Table(name string, out interface{}) error {
	raw, ok := s.tables[name]
	if !ok {
		return fmt.Errorf("fixtures: no table named %q", name)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("fixtures: table %q: %w", name, err)
	}
	return nil
}

// GetResponseCase parametrizes the plain GET status/redirect tests.
type GetResponseCase struct {
	Protocol string `json:"protocol"`
	URL      string `json:"url"`
	Code     int    `json:"code"`
}

// ORCase parametrizes the OR-selection tests. The currency list may appear
// under either `crnc` or the legacy `crnc_lh` field name.
type ORCase struct {
	Headers      map[string]string `json:"headers"`
	Protocol     string            `json:"protocol"`
	URL          string            `json:"url"`
	Currencies   []string          `json:"crnc"`
	CurrenciesLH []string          `json:"crnc_lh"`
	Denom        string            `json:"denom"`
	Code         int               `json:"code"`
}

// CurrencyList returns the currency codes of the case, whichever field name the
// fixture used.
func (c ORCase) CurrencyList() []string {
	if len(c.Currencies) > 0 {
		return c.Currencies
	}
	return c.CurrenciesLH
}

// ModifiedSinceCase parametrizes the If-Modified-Since tests.
type ModifiedSinceCase struct {
	Protocol string `json:"protocol"`
	URL      string `json:"url"`
}

// FormatCase parametrizes the Accept-header content negotiation tests.
type FormatCase struct {
	Format string `json:"format"`
	URL    string `json:"url"`
}

// ObservationsCase parametrizes the lastNObservations tests.
type ObservationsCase struct {
	Headers map[string]string `json:"headers"`
	URL     string            `json:"url"`
	Number  int               `json:"number"`
}

// LatencyCase parametrizes the latency budget tests.
type LatencyCase struct {
	URL        string `json:"url"`
	ExpectedMS int64  `json:"expected_ms"`
}
