package tests

import (
	"net/http"
	"strings"
	"testing"

	"github.com/sdmx-contrib/conformance/client"
	"github.com/sdmx-contrib/conformance/fixtures"
	"github.com/sdmx-contrib/conformance/match"
	"github.com/sdmx-contrib/conformance/must"
)

// Content negotiation: every advertised representation must be served with 200.
// SDMX-JSON responses must additionally carry the series dimensions of the
// data structure.
func TestSupportedFormats(t *testing.T) {
	var cases []fixtures.FormatCase
	loadTable(t, "supported_format_data", &cases)

	deployment := Deploy(t)
	defer deployment.Destroy(t)
	api := deployment.Client(t)

	for _, tc := range cases {
		tc := tc
		t.Run(tc.Format, func(t *testing.T) {
			res := api.DoURL(t, "GET", deployment.URL("https", tc.URL),
				client.WithAccept(tc.Format),
			)
			body := must.MatchResponse(t, res, match.HTTPResponse{StatusCode: http.StatusOK})
			if strings.Contains(tc.Format, "+json") {
				must.MatchJSONBytes(t, body,
					match.JSONKeyPresent("structure.dimensions.series"),
					match.JSONKeyEqual("structure.dimensions.series.0.id", "FREQ"),
					match.JSONArrayEach("structure.dimensions.series", match.JSONKeyPresent("id")),
					match.AnyOf(match.JSONKeyMissing("errors"), match.JSONKeyArrayOfSize("errors", 0)),
				)
			}
		})
	}
}

// Asking for a representation the service does not produce must yield 406, not
// a fallback format.
func TestUnsupportedFormats(t *testing.T) {
	var cases []fixtures.FormatCase
	loadTable(t, "unsupported_format_data", &cases)

	deployment := Deploy(t)
	defer deployment.Destroy(t)
	api := deployment.Client(t)

	for _, tc := range cases {
		tc := tc
		t.Run(tc.Format, func(t *testing.T) {
			res := api.DoURL(t, "GET", deployment.URL("https", tc.URL),
				client.WithAccept(tc.Format),
			)
			must.MatchResponse(t, res, match.HTTPResponse{StatusCode: http.StatusNotAcceptable})
		})
	}
}
