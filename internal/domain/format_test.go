package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := map[string]string{
		"0":        "0",
		"999":      "999",
		"1000":     "1,000",
		"23920":    "23,920",
		"1040000":  "1,040,000",
		"-8080":    "-8,080",
		"1419.5":   "1,420",
		"123456.4": "123,456",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatAmount(decimal.RequireFromString(in)), in)
	}
}

func TestFormatRupees(t *testing.T) {
	assert.Equal(t, "₹23,920", FormatRupees(decimal.NewFromInt(23920)))
	assert.Equal(t, "-₹8,080", FormatRupees(decimal.NewFromInt(-8080)))
}
