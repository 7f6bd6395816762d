package sdmx

import "testing"

func TestORKey(t *testing.T) {
	testCases := []struct {
		currencies []string
		denom      string
		want       string
	}{
		{[]string{"USD"}, "EUR", "M.USD.EUR.SP00.A"},
		{[]string{"USD", "GBP", "JPY"}, "EUR", "M.USD+GBP+JPY.EUR.SP00.A"},
		{[]string{"NOK", "SEK"}, "DKK", "M.NOK+SEK.DKK.SP00.A"},
	}
	for _, tc := range testCases {
		key, err := ORKey(tc.currencies, tc.denom)
		if err != nil {
			t.Fatalf("ORKey(%v, %s) returned error: %s", tc.currencies, tc.denom, err)
		}
		if got := key.String(); got != tc.want {
			t.Errorf("ORKey(%v, %s) = %s, want %s", tc.currencies, tc.denom, got, tc.want)
		}
	}
}

func TestORKeyRejectsEmptyCurrencyList(t *testing.T) {
	if _, err := ORKey(nil, "EUR"); err == nil {
		t.Fatalf("ORKey with no currencies: expected an error, got none")
	}
	if _, err := ORKey([]string{}, "EUR"); err == nil {
		t.Fatalf("ORKey with empty currency slice: expected an error, got none")
	}
}

func TestKeyString(t *testing.T) {
	key := Key{
		Freq:       "D",
		Currencies: []string{"CHF"},
		Denom:      "EUR",
		Variation:  "SP00",
		Suffix:     "A",
	}
	if got, want := key.String(), "D.CHF.EUR.SP00.A"; got != want {
		t.Errorf("Key.String() = %s, want %s", got, want)
	}
}
