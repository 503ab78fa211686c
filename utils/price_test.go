package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name    string
		display string
		want    int64
	}{
		{"per meter price", "PKR 1,200/meter", 1200},
		{"plain number", "850", 850},
		{"millions", "Rs. 1,250,000", 1250000},
		{"first run wins", "2 for PKR 3,000", 2},
		{"trailing separator", "PKR 1,500,/suit", 1500},
		{"no digits", "Call for price", 0},
		{"empty", "", 0},
		{"only separators", "PKR ,,,", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePrice(tt.display)
			assert.True(t, decimal.NewFromInt(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestLineTotal(t *testing.T) {
	assert.True(t, LineTotal("PKR 1,200/meter", 3).Equal(decimal.NewFromInt(3600)))
	assert.True(t, LineTotal("Price on request", 5).IsZero())
	assert.True(t, LineTotal("PKR 999", 0).IsZero())
}
