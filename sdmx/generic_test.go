package sdmx

import (
	"testing"
	"time"
)

const genericFragment = `
<generic:Series>
<generic:SeriesKey>
<generic:Value id="FREQ" value="D"/>
<generic:Value id="CURRENCY" value="USD"/>
<generic:Value id="CURRENCY_DENOM" value="EUR"/>
</generic:SeriesKey>
<generic:Obs>
<generic:ObsDimension value="2024-03-01"/>
<generic:ObsValue value="1.0811"/>
</generic:Obs>
<generic:Obs>
<generic:ObsDimension value="2024-03-04"/>
<generic:ObsValue value="1.0823"/>
</generic:Obs>
</generic:Series>
`

func TestDimensionScanning(t *testing.T) {
	if got := CountDimension(genericFragment, DimCurrency); got != 1 {
		t.Errorf("CountDimension(CURRENCY) = %d, want 1", got)
	}
	if got := CountDimension(genericFragment, DimCurrencyDenom); got != 1 {
		t.Errorf("CountDimension(CURRENCY_DENOM) = %d, want 1", got)
	}
	if got := CountObservations(genericFragment); got != 2 {
		t.Errorf("CountObservations = %d, want 2", got)
	}
	marker := DimensionMarker(DimCurrency, "USD")
	if want := `id="CURRENCY" value="USD"`; marker != want {
		t.Errorf("DimensionMarker = %s, want %s", marker, want)
	}
}

func TestDimensionValues(t *testing.T) {
	body := genericFragment + `<generic:Value id="CURRENCY" value="GBP"/>`
	got := DimensionValues(body, DimCurrency)
	if len(got) != 2 || got[0] != "USD" || got[1] != "GBP" {
		t.Errorf("DimensionValues(CURRENCY) = %v, want [USD GBP]", got)
	}
	if got := DimensionValues(body, "EXR_TYPE"); len(got) != 0 {
		t.Errorf("DimensionValues(EXR_TYPE) = %v, want none", got)
	}
}

func TestObservationDates(t *testing.T) {
	dates, err := ObservationDates(genericFragment)
	if err != nil {
		t.Fatalf("ObservationDates returned error: %s", err)
	}
	if len(dates) != 2 {
		t.Fatalf("ObservationDates returned %d dates, want 2", len(dates))
	}
	if want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC); !dates[0].Equal(want) {
		t.Errorf("first date = %s, want %s", dates[0], want)
	}
}

func TestObservationDatesRejectsNonDailyPeriods(t *testing.T) {
	if _, err := ObservationDates(`<generic:ObsDimension value="2024-03"/>`); err == nil {
		t.Fatalf("expected an error for a monthly period, got none")
	}
}

func TestToleranceWindow(t *testing.T) {
	testCases := []struct {
		n    int
		want int
	}{
		{1, 4},   // 1 + 2*1 + 1
		{5, 8},   // 5 + 2*1 + 1
		{6, 11},  // 6 + 2*2 + 1
		{10, 15}, // 10 + 2*2 + 1
		{12, 19}, // 12 + 2*3 + 1
	}
	for _, tc := range testCases {
		if got := ToleranceWindow(tc.n); got != tc.want {
			t.Errorf("ToleranceWindow(%d) = %d, want %d", tc.n, got, tc.want)
		}
	}
}
