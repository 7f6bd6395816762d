package mock

import (
	"net/http"
	"net/url"
	"sort"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/tidwall/gjson"

	"github.com/sdmx-contrib/conformance/client"
	"github.com/sdmx-contrib/conformance/internal/web"
	"github.com/sdmx-contrib/conformance/match"
	"github.com/sdmx-contrib/conformance/must"
	"github.com/sdmx-contrib/conformance/sdmx"
)

func newMockServer(t *testing.T) (*web.Server, *client.DataAPI) {
	t.Helper()
	srv := web.NewServer(t, func(r *mux.Router) {
		NewService().ConfigureRouter(r)
	})
	api := &client.DataAPI{
		BaseURL: srv.URL,
		Client:  &http.Client{Timeout: 5 * time.Second},
	}
	return srv, api
}

var usdDaily = sdmx.Key{
	Freq: "D", Currencies: []string{"USD"}, Denom: "EUR", Variation: "SP00", Suffix: "A",
}

func TestDataResourceServesGenericData(t *testing.T) {
	srv, api := newMockServer(t)
	defer srv.Close()

	key, err := sdmx.ORKey([]string{"USD", "GBP"}, "EUR")
	must.NotError(t, "building OR key", err)

	res := api.Data(t, "EXR", key)
	body := must.MatchResponse(t, res, match.HTTPResponse{
		StatusCode: 200,
		Body: []match.Data{
			match.SeriesExactly([]string{"USD", "GBP"}, "EUR"),
		},
	})
	if len(body) == 0 {
		t.Fatalf("empty response body")
	}
	must.NotEqual(t, res.Header.Get("Last-Modified"), "", "Last-Modified header on 200 response")
}

func TestDataResourceContentNegotiation(t *testing.T) {
	srv, api := newMockServer(t)
	defer srv.Close()

	t.Run("unsupported format yields 406", func(t *testing.T) {
		res := api.Data(t, "EXR", usdDaily, client.WithAccept("application/pdf"))
		defer res.Body.Close()
		must.MatchFailure(t, res)
		must.Equal(t, res.StatusCode, http.StatusNotAcceptable, "status code")
	})
	t.Run("sdmx-json carries series dimensions", func(t *testing.T) {
		res := api.Data(t, "EXR", usdDaily,
			client.WithAccept("application/vnd.sdmx.data+json;version=1.0.0-wd"),
		)
		must.Equal(t, res.StatusCode, http.StatusOK, "status code")
		parsed := must.ParseJSON(t, res.Body)
		must.MatchGJSON(t, parsed,
			match.JSONKeyPresent("structure.dimensions.series"),
			match.JSONKeyTypeEqual("structure.dimensions.series", gjson.JSON),
			match.JSONKeyArrayOfSize("structure.dimensions.series.1.values", 1),
		)
		freq := must.GetJSONFieldStr(t, parsed, "structure.dimensions.series.0.id")
		must.Equal(t, freq, "FREQ", "first series dimension")
	})
}

func TestDataResourceConditionalRequests(t *testing.T) {
	srv, api := newMockServer(t)
	defer srv.Close()

	res := api.Data(t, "EXR", usdDaily)
	client.ReadBody(t, res)
	lastModified, err := http.ParseTime(res.Header.Get("Last-Modified"))
	must.NotError(t, "parsing Last-Modified", err)

	res = api.Data(t, "EXR", usdDaily,
		client.WithIfModifiedSince(lastModified.Add(10*time.Minute)),
	)
	res.Body.Close()
	must.Equal(t, res.StatusCode, http.StatusNotModified, "status code")
}

func TestDataResourceLastNObservations(t *testing.T) {
	srv, api := newMockServer(t)
	defer srv.Close()

	q := url.Values{}
	q.Set("lastNObservations", "5")
	res := api.MustDo(t, "GET", []string{"service", "data", "EXR", usdDaily.String()},
		client.WithQueries(q),
	)
	body := must.MatchResponse(t, res, match.HTTPResponse{
		StatusCode: 200,
		Body: []match.Data{
			match.ObservationsWithinWindow(5, time.Now()),
		},
	})

	// observations must come back oldest first
	dates, err := sdmx.ObservationDates(string(body))
	must.NotError(t, "extracting observation dates", err)
	ordered := append([]time.Time(nil), dates...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Before(ordered[j]) })
	must.HaveInOrder(t, dates, ordered)
}
