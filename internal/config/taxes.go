package config

import "math"

// TaxRate holds the withholding applied to a lump-sum prize.
type TaxRate struct {
	Name    string
	Federal float64
	State   float64
}

// DefaultTaxState backs after-tax math when no state is requested.
const DefaultTaxState = "OK"

// TaxRates lists the states the newsletter reports after-tax amounts
// for. California does not tax lottery winnings.
var TaxRates = map[string]TaxRate{
	"OK": {Name: "Oklahoma", Federal: 0.24, State: 0.0475},
	"CA": {Name: "California", Federal: 0.24, State: 0.00},
	"MA": {Name: "Massachusetts", Federal: 0.24, State: 0.05},
}

// TaxRateFor returns the withholding rates for a state, falling back
// to the default when the state is unknown.
func TaxRateFor(state string) TaxRate {
	if rate, ok := TaxRates[state]; ok {
		return rate
	}
	return TaxRates[DefaultTaxState]
}

// AfterTax returns the lump-sum remainder after federal and state
// withholding. Unknown states fall back to the default.
func AfterTax(cashValue int64, state string) int64 {
	rate := TaxRateFor(state)
	if cashValue <= 0 {
		return 0
	}
	kept := 1 - rate.Federal - rate.State
	return int64(math.Round(float64(cashValue) * kept))
}
