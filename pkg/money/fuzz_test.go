package money_test

import (
	"errors"
	"testing"

	"github.com/amirasaad/ledger/pkg/money"
)

// FuzzParse checks that accepted input round-trips through the decimal form.
func FuzzParse(f *testing.F) {
	f.Add("300")
	f.Add("12.5")
	f.Add("-50.25")
	f.Add("0.001")
	f.Add("92233720368547758.07")
	f.Add("abc")

	f.Fuzz(func(t *testing.T, s string) {
		a, err := money.Parse(s)
		if err != nil {
			if !errors.Is(err, money.ErrMalformed) &&
				!errors.Is(err, money.ErrTooManyDecimals) &&
				!errors.Is(err, money.ErrOverflow) {
				t.Fatalf("Parse(%q) returned unexpected error %v", s, err)
			}
			return
		}
		back, err := money.FromDecimal(a.Decimal())
		if err != nil {
			t.Fatalf("FromDecimal(%s) failed: %v", a.Decimal(), err)
		}
		if back != a {
			t.Errorf("round trip changed %d into %d", a, back)
		}
	})
}
