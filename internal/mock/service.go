// Package mock is an in-process stand-in for an SDMX 2.1 data REST service.
// It serves a small fixed exchange-rate dataflow (EXR) with enough behavior for
// the conformance suite to exercise its checks without a live target: content
// negotiation, conditional requests and lastNObservations. It is test
// scaffolding, not a server product.
package mock

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/sjson"
)

// Media types the mock service is willing to serve. Anything else gets a 406,
// mirroring the negotiation behavior of the ECB service.
var supportedMediaTypes = map[string]bool{
	"*/*":             true,
	"application/xml": true,
	"application/vnd.sdmx.genericdata+xml;version=2.1":           true,
	"application/vnd.sdmx.structurespecificdata+xml;version=2.1": true,
	"application/vnd.sdmx.data+json;version=1.0.0-wd":            true,
	"application/vnd.sdmx.data+csv;version=1.0.0":                true,
}

// The currencies the EXR dataflow of the mock knows about, with nominal rates
// against the euro.
var rates = map[string]float64{
	"USD": 1.08,
	"GBP": 0.85,
	"JPY": 163.2,
	"CHF": 0.94,
	"SEK": 11.4,
	"NOK": 11.8,
}

const defaultObservations = 10

type Service struct {
	lastModified time.Time
	log          *logrus.Entry
}

func NewService() *Service {
	return &Service{
		// fixed at start-up so conditional requests are stable across calls
		lastModified: time.Now().UTC().Truncate(time.Second).Add(-time.Hour),
		log:          logrus.WithField("component", "mock-data-service"),
	}
}

// ConfigureRouter registers the data resource on the given router.
func (s *Service) ConfigureRouter(r *mux.Router) {
	r.HandleFunc("/service/data/{flow}/{key}", s.data).Methods("GET")
}

func (s *Service) data(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	flow := vars["flow"]
	rawKey, _ := url.PathUnescape(vars["key"])
	s.log.Debugf("GET data flow=%s key=%s accept=%q", flow, rawKey, req.Header.Get("Accept"))

	mediaType, ok := negotiate(req.Header.Get("Accept"))
	if !ok {
		w.WriteHeader(http.StatusNotAcceptable)
		return
	}
	if flow != "EXR" {
		http.Error(w, "unknown dataflow", http.StatusNotFound)
		return
	}
	currencies, denom, err := parseKey(rawKey)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if ims := req.Header.Get("If-Modified-Since"); ims != "" {
		since, err := http.ParseTime(ims)
		if err == nil && !s.lastModified.After(since) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	numObs := defaultObservations
	if lastN := req.URL.Query().Get("lastNObservations"); lastN != "" {
		n, err := strconv.Atoi(lastN)
		if err != nil || n < 1 {
			http.Error(w, "invalid lastNObservations", http.StatusBadRequest)
			return
		}
		numObs = n
	}

	periods := lastBusinessDays(time.Now(), numObs)
	w.Header().Set("Last-Modified", s.lastModified.Format(http.TimeFormat))
	switch {
	case strings.Contains(mediaType, "+json"):
		w.Header().Set("Content-Type", mediaType)
		w.Write([]byte(renderJSON(currencies, denom, periods)))
	case strings.Contains(mediaType, "+csv"):
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(renderCSV(currencies, denom, periods)))
	default:
		w.Header().Set("Content-Type", "application/vnd.sdmx.genericdata+xml;version=2.1")
		w.Write([]byte(renderGenericXML(currencies, denom, periods)))
	}
}

// negotiate picks the media type to serve for the given Accept header, or
// reports that nothing acceptable was requested.
func negotiate(accept string) (string, bool) {
	if accept == "" {
		return "application/vnd.sdmx.genericdata+xml;version=2.1", true
	}
	for _, part := range strings.Split(accept, ",") {
		mediaType := strings.TrimSpace(part)
		// parameter order is not significant but the mock only sees the fixed forms above
		if supportedMediaTypes[strings.ReplaceAll(mediaType, "; ", ";")] {
			return strings.ReplaceAll(mediaType, "; ", ";"), true
		}
	}
	return "", false
}

// parseKey splits a series key like "M.USD+GBP.EUR.SP00.A" into the currency
// union and the denominator. An empty currency segment is a wildcard over all
// known currencies.
func parseKey(key string) (currencies []string, denom string, err error) {
	segments := strings.Split(key, ".")
	if len(segments) != 5 {
		return nil, "", fmt.Errorf("key %q does not have 5 dimensions", key)
	}
	denom = segments[2]
	if segments[1] == "" {
		for code := range rates {
			currencies = append(currencies, code)
		}
		return currencies, denom, nil
	}
	for _, code := range strings.Split(segments[1], "+") {
		if _, ok := rates[code]; !ok {
			return nil, "", fmt.Errorf("unknown currency %q", code)
		}
		currencies = append(currencies, code)
	}
	return currencies, denom, nil
}

// lastBusinessDays returns the n most recent weekdays strictly before today,
// oldest first. Rates for the current day are treated as not yet published.
func lastBusinessDays(now time.Time, n int) []time.Time {
	days := make([]time.Time, 0, n)
	d := now.AddDate(0, 0, -1)
	for len(days) < n {
		if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
			days = append(days, d)
		}
		d = d.AddDate(0, 0, -1)
	}
	// reverse into chronological order
	for i, j := 0, len(days)-1; i < j; i, j = i+1, j-1 {
		days[i], days[j] = days[j], days[i]
	}
	return days
}

func renderGenericXML(currencies []string, denom string, periods []time.Time) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<message:GenericData xmlns:message="http://www.sdmx.org/resources/sdmxml/schemas/v2_1/message" xmlns:generic="http://www.sdmx.org/resources/sdmxml/schemas/v2_1/data/generic">` + "\n")
	b.WriteString("<message:DataSet>\n")
	for _, code := range currencies {
		b.WriteString("<generic:Series>\n<generic:SeriesKey>\n")
		fmt.Fprintf(&b, "<generic:Value id=\"FREQ\" value=\"D\"/>\n")
		fmt.Fprintf(&b, "<generic:Value id=\"CURRENCY\" value=%q/>\n", code)
		fmt.Fprintf(&b, "<generic:Value id=\"CURRENCY_DENOM\" value=%q/>\n", denom)
		fmt.Fprintf(&b, "<generic:Value id=\"EXR_TYPE\" value=\"SP00\"/>\n")
		fmt.Fprintf(&b, "<generic:Value id=\"EXR_SUFFIX\" value=\"A\"/>\n")
		b.WriteString("</generic:SeriesKey>\n")
		for i, p := range periods {
			b.WriteString("<generic:Obs>\n")
			fmt.Fprintf(&b, "<generic:ObsDimension value=%q/>\n", p.Format("2006-01-02"))
			fmt.Fprintf(&b, "<generic:ObsValue value=\"%.4f\"/>\n", rates[code]*(1+0.001*float64(i)))
			b.WriteString("</generic:Obs>\n")
		}
		b.WriteString("</generic:Series>\n")
	}
	b.WriteString("</message:DataSet>\n</message:GenericData>\n")
	return b.String()
}

func renderJSON(currencies []string, denom string, periods []time.Time) string {
	body := "{}"
	body, _ = sjson.Set(body, "header.test", false)
	body, _ = sjson.Set(body, "header.prepared", time.Now().UTC().Format(time.RFC3339))
	body, _ = sjson.Set(body, "structure.dimensions.series.0.id", "FREQ")
	body, _ = sjson.Set(body, "structure.dimensions.series.0.values.0.id", "D")
	body, _ = sjson.Set(body, "structure.dimensions.series.1.id", "CURRENCY")
	for i, code := range currencies {
		body, _ = sjson.Set(body, fmt.Sprintf("structure.dimensions.series.1.values.%d.id", i), code)
	}
	body, _ = sjson.Set(body, "structure.dimensions.series.2.id", "CURRENCY_DENOM")
	body, _ = sjson.Set(body, "structure.dimensions.series.2.values.0.id", denom)
	for i, p := range periods {
		body, _ = sjson.Set(body, fmt.Sprintf("structure.dimensions.observation.0.values.%d.id", i), p.Format("2006-01-02"))
	}
	for si, code := range currencies {
		for i := range periods {
			key := fmt.Sprintf("dataSets.0.series.0:%d:0:0:0.observations.%d.0", si, i)
			body, _ = sjson.Set(body, key, rates[code]*(1+0.001*float64(i)))
		}
	}
	return body
}

func renderCSV(currencies []string, denom string, periods []time.Time) string {
	var b strings.Builder
	b.WriteString("KEY,FREQ,CURRENCY,CURRENCY_DENOM,TIME_PERIOD,OBS_VALUE\n")
	for _, code := range currencies {
		for i, p := range periods {
			fmt.Fprintf(&b, "EXR.D.%s.%s.SP00.A,D,%s,%s,%s,%.4f\n",
				code, denom, code, denom, p.Format("2006-01-02"), rates[code]*(1+0.001*float64(i)))
		}
	}
	return b.String()
}
