package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnit(t *testing.T) {
	tests := []struct {
		in   string
		want Unit
	}{
		{"cups", Cups},
		{"Cup", Cups},
		{"TBSP", Tablespoons},
		{"tsp.", Teaspoons},
		{"ml", Milliliters},
		{"g", Grams},
		{"oz", Ounces},
		{"fl   oz", FluidOunces},
		{"fluid_ounces", FluidOunces},
		{"°C", Celsius},
		{"f", Fahrenheit},
	}
	for _, tt := range tests {
		got, err := ParseUnit(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseUnit("pinch")
	assert.ErrorIs(t, err, ErrUnknownUnit)
}

func TestUnitFamilies(t *testing.T) {
	for _, u := range UnitsOf(FamilyVolumeMass) {
		assert.Equal(t, FamilyVolumeMass, u.Family(), u)
	}
	for _, u := range UnitsOf(FamilyTemperature) {
		assert.Equal(t, FamilyTemperature, u.Family(), u)
	}
	assert.Equal(t, FamilyUnknown, Unit("pinch").Family())
	assert.False(t, Unit("pinch").Valid())
	assert.Len(t, AllUnits(), 9)
}

func TestUnitsOfReturnsCopy(t *testing.T) {
	units := UnitsOf(FamilyTemperature)
	units[0] = Cups
	assert.Equal(t, Celsius, UnitsOf(FamilyTemperature)[0])
}

func TestUnitLabels(t *testing.T) {
	assert.Equal(t, "Cups", Cups.Label())
	assert.Equal(t, "Fluid ounces", FluidOunces.Label())
	assert.Equal(t, "tbsp", Tablespoons.Short())
	assert.Equal(t, "°F", Fahrenheit.Short())
}

func TestParseHelpers(t *testing.T) {
	m, err := ParseMood(" Friendly ")
	require.NoError(t, err)
	assert.Equal(t, MoodFriendly, m)
	_, err = ParseMood("grumpy")
	assert.Error(t, err)

	a, err := ParseAccent("en-GB")
	require.NoError(t, err)
	assert.Equal(t, AccentUK, a)

	s, err := ParseScreen("ChatBot")
	require.NoError(t, err)
	assert.Equal(t, ScreenChat, s)

	th, err := ParseTheme("DARK")
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, th.Toggle())
}

func TestIntentNames(t *testing.T) {
	for typ, name := range intentLabels {
		assert.Equal(t, typ, IntentFromString(name))
		assert.Equal(t, name, typ.String())
	}
	assert.Equal(t, IntentUnknown, IntentFromString("bake_cake"))
}
