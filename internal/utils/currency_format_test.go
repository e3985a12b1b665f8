package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMinorUnits(t *testing.T) {
	testCases := []struct {
		name     string
		amount   int64
		currency string
		expected string
	}{
		{name: "USD two decimals", amount: 12345, currency: "USD", expected: "123.45"},
		{name: "USD zero", amount: 0, currency: "USD", expected: "0.00"},
		{name: "USD sub-unit only", amount: 5, currency: "USD", expected: "0.05"},
		{name: "JPY no decimals", amount: 12345, currency: "JPY", expected: "12345"},
		{name: "KWD three decimals", amount: 12345, currency: "KWD", expected: "12.345"},
		{name: "unknown currency defaults to two", amount: 999, currency: "XXX", expected: "9.99"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatMinorUnits(tc.amount, tc.currency))
		})
	}
}

func TestMinorUnitsToDecimal(t *testing.T) {
	assert.Equal(t, "123.45", MinorUnitsToDecimal(12345, "USD").String())
	assert.Equal(t, "12345", MinorUnitsToDecimal(12345, "JPY").String())
	assert.Equal(t, "-1.5", MinorUnitsToDecimal(-150, "EUR").String())
}
