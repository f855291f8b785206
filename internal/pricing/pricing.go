package pricing

import (
	"math"
	"strconv"
)

// Country selects which currency a base price is displayed in. Product
// prices are stored in INR; every other region is a static conversion.
type Country string

const (
	CountryUS Country = "US"
	CountryEU Country = "EU"
	CountryME Country = "ME"
	CountryIN Country = "IN"
)

type rate struct {
	Symbol     string
	Multiplier float64
}

// conversion table mirrors the storefront's fixed region pricing.
var rates = map[Country]rate{
	CountryUS: {Symbol: "$", Multiplier: 0.013},
	CountryEU: {Symbol: "€", Multiplier: 0.012},
	CountryME: {Symbol: "د.إ", Multiplier: 0.048},
	CountryIN: {Symbol: "₹", Multiplier: 1},
}

// Valid reports whether code is one of the supported countries.
func Valid(code Country) bool {
	_, ok := rates[code]
	return ok
}

// Countries returns the supported country codes.
func Countries() []Country {
	return []Country{CountryUS, CountryEU, CountryME, CountryIN}
}

// Convert maps a base-currency amount to the display amount for the given
// country, rounded to the nearest whole unit. Unknown codes fall back to the
// base currency. Non-finite inputs convert to zero.
func Convert(basePrice float64, country Country) int64 {
	r, ok := rates[country]
	if !ok {
		r = rates[CountryIN]
	}
	v := basePrice * r.Multiplier
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int64(math.Round(v))
}

// Symbol returns the currency symbol for the given country, falling back to
// the base currency symbol for unknown codes.
func Symbol(country Country) string {
	if r, ok := rates[country]; ok {
		return r.Symbol
	}
	return rates[CountryIN].Symbol
}

// FormatPrice renders a base-currency amount as the display string for the
// given country, e.g. FormatPrice(6500, "US") == "$85".
func FormatPrice(basePrice float64, country Country) string {
	return Symbol(country) + strconv.FormatInt(Convert(basePrice, country), 10)
}
