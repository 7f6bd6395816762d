package tests

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/sdmx-contrib/conformance/client"
	"github.com/sdmx-contrib/conformance/fixtures"
	"github.com/sdmx-contrib/conformance/match"
	"github.com/sdmx-contrib/conformance/must"
)

// lastNObservations=N must return exactly the N most recent observations, all
// of them recent enough to be plausible daily publications.
func TestLastNObservations(t *testing.T) {
	var cases []fixtures.ObservationsCase
	loadTable(t, "number_observations_data", &cases)

	deployment := Deploy(t)
	defer deployment.Destroy(t)
	api := deployment.Client(t)

	for _, tc := range cases {
		tc := tc
		t.Run(fmt.Sprintf("lastNObservations=%d", tc.Number), func(t *testing.T) {
			q := url.Values{}
			q.Set("lastNObservations", strconv.Itoa(tc.Number))
			res := api.DoURL(t, "GET", deployment.URL("https", tc.URL),
				client.WithQueries(q),
				client.WithHeaders(tc.Headers),
			)
			body := must.MatchResponse(t, res, match.HTTPResponse{
				StatusCode: http.StatusOK,
			})
			must.MatchBody(t, body, match.ObservationsWithinWindow(tc.Number, time.Now()))
		})
	}
}
