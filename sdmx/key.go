// Package sdmx contains helpers for constructing SDMX 2.1 REST series keys and
// for scanning generic-data payloads for dimension markers.
package sdmx

import (
	"fmt"
	"strings"
)

// Key identifies a series (or a union of series) in the exchange-rate dataflow.
// Dimension order follows the EXR data structure definition:
// FREQ.CURRENCY.CURRENCY_DENOM.EXR_TYPE.EXR_SUFFIX
type Key struct {
	Freq       string
	Currencies []string
	Denom      string
	Variation  string
	Suffix     string
}

// ORKey builds a key selecting the union of the given currencies against the
// denominator, using the defaults of the EXR dataflow (monthly spot rates).
// An empty currency list is a broken test configuration, not a wildcard, and
// is rejected with an error.
func ORKey(currencies []string, denom string) (Key, error) {
	if len(currencies) == 0 {
		return Key{}, fmt.Errorf("ORKey: empty currency list: wildcards are not covered by OR selections")
	}
	return Key{
		Freq:       "M",
		Currencies: currencies,
		Denom:      denom,
		Variation:  "SP00",
		Suffix:     "A",
	}, nil
}

// String renders the key as the path fragment understood by the data resource,
// e.g. "M.USD+GBP+JPY.EUR.SP00.A". Currencies are joined with '+', which the
// REST API interprets as an OR over that dimension.
func (k Key) String() string {
	return fmt.Sprintf("%s.%s.%s.%s.%s", k.Freq, strings.Join(k.Currencies, "+"), k.Denom, k.Variation, k.Suffix)
}
