package utils

import (
	"github.com/shopspring/decimal"
)

// minorUnitDigits maps ISO 4217 codes whose minor unit is not the usual two
// digits. Anything absent defaults to two.
var minorUnitDigits = map[string]int32{
	"JPY": 0,
	"KRW": 0,
	"VND": 0,
	"BHD": 3,
	"KWD": 3,
	"OMR": 3,
	"TND": 3,
}

// CurrencyPrecision returns the number of minor-unit digits for a currency code.
func CurrencyPrecision(currencyCode string) int32 {
	if digits, ok := minorUnitDigits[currencyCode]; ok {
		return digits
	}
	return 2
}

// MinorUnitsToDecimal converts an integer minor-unit amount to its major-unit
// decimal value. Example: 12345 minor units of USD become 123.45.
func MinorUnitsToDecimal(amountMinor int64, currencyCode string) decimal.Decimal {
	return decimal.NewFromInt(amountMinor).Shift(-CurrencyPrecision(currencyCode))
}

// FormatMinorUnits renders an integer minor-unit amount as a display string
// with the currency's precision. Example: 12345 with USD returns "123.45",
// 12345 with JPY returns "12345".
func FormatMinorUnits(amountMinor int64, currencyCode string) string {
	precision := CurrencyPrecision(currencyCode)
	return MinorUnitsToDecimal(amountMinor, currencyCode).StringFixed(precision)
}
