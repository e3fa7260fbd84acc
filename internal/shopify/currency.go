package shopify

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Minor-unit exponents for currencies that deviate from the usual 2
// decimal places (ISO 4217).
var currencyExponents = map[string]int32{
	"BIF": 0, "CLP": 0, "DJF": 0, "GNF": 0, "JPY": 0, "KMF": 0,
	"KRW": 0, "PYG": 0, "RWF": 0, "UGX": 0, "VND": 0, "VUV": 0, "XAF": 0, "XOF": 0,
	"BHD": 3, "IQD": 3, "JOD": 3, "KWD": 3, "LYD": 3, "OMR": 3, "TND": 3,
}

// CurrencyExponent returns the number of minor-unit digits for an ISO
// currency code, defaulting to 2.
func CurrencyExponent(currency string) int32 {
	if exp, ok := currencyExponents[strings.ToUpper(currency)]; ok {
		return exp
	}
	return 2
}

// MajorUnits converts a gateway amount in minor units (e.g. paise) to
// major units (e.g. rupees) for the given currency.
func MajorUnits(minor int64, currency string) decimal.Decimal {
	return decimal.New(minor, -CurrencyExponent(currency))
}

// MajorUnitsString formats a minor-unit amount the way the Admin API
// expects monetary strings, e.g. 199900 INR -> "1999.00".
func MajorUnitsString(minor int64, currency string) string {
	return MajorUnits(minor, currency).StringFixed(CurrencyExponent(currency))
}
