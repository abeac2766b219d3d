package convert

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/kitchenpal/internal/domain"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"2", 2},
		{" 1.5 ", 1.5},
		{"-40", -40},
		{"1/2", 0.5},
		{"1 1/2", 1.5},
		{"1½", 1.5},
		{"¾", 0.75},
		{"2 ¼", 2.25},
		{".25", 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseAmount(tt.in), 1e-12)
		})
	}
}

func TestParseAmountInvalidIsNaN(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "1/0", "1 2 3", "two"} {
		assert.True(t, math.IsNaN(ParseAmount(in)), "%q", in)
	}
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		in   string
		want Request
	}{
		{"2 cups to tbsp", Request{2, domain.Cups, domain.Tablespoons}},
		{"350 F in C", Request{350, domain.Fahrenheit, domain.Celsius}},
		{"1 1/2 cup ml", Request{1.5, domain.Cups, domain.Milliliters}},
		{"100g oz", Request{100, domain.Grams, domain.Ounces}},
		{"3 fl oz to tablespoons", Request{3, domain.FluidOunces, domain.Tablespoons}},
		{"-40 celsius -> fahrenheit", Request{-40, domain.Celsius, domain.Fahrenheit}},
		{"1 tablespoon = teaspoons", Request{1, domain.Tablespoons, domain.Teaspoons}},
		{"8 fluid ounces into cups", Request{8, domain.FluidOunces, domain.Cups}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseQuery(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseQueryErrors(t *testing.T) {
	_, err := ParseQuery("cups")
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = ParseQuery("two cups to tbsp")
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = ParseQuery("2 pinches to tsp")
	assert.ErrorIs(t, err, domain.ErrUnknownUnit)
}

func TestDo(t *testing.T) {
	res, err := Do(Request{Amount: 2, From: domain.Cups, To: domain.Tablespoons})
	require.NoError(t, err)
	assert.Equal(t, 32.0, res.Value)
	assert.Equal(t, "2 cups = 32.00 tablespoons", res.String())
	assert.Equal(t, "2 cup = 32.00 tbsp", res.Short())

	_, err = Do(Request{Amount: 1, From: domain.Cups, To: domain.Celsius})
	assert.ErrorIs(t, err, domain.ErrUnsupportedConversion)
}

func TestCommon(t *testing.T) {
	assert.Equal(t, []string{
		"1 cup = 16 tbsp",
		"1 tablespoon = 3 tsp",
		"1 cup = 236.6 ml",
		"1 cup = 8 fl oz",
		"0°C = 32°F",
		"100°C = 212°F",
	}, Common())
}
