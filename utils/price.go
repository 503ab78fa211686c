package utils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// priceRun matches the first run of digits and thousands separators
var priceRun = regexp.MustCompile(`\d[\d,]*`)

// ParsePrice extracts the numeric amount from a display price such as
// "PKR 1,200/meter". Strings without a digit yield zero rather than an error.
func ParsePrice(display string) decimal.Decimal {
	run := priceRun.FindString(display)
	if run == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(strings.ReplaceAll(run, ",", ""))
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// LineTotal is the parsed unit price times quantity
func LineTotal(display string, quantity int) decimal.Decimal {
	return ParsePrice(display).Mul(decimal.NewFromInt(int64(quantity)))
}
