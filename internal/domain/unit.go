// Package domain defines the core types and interfaces for the kitchen companion.
// All other packages depend on domain; domain depends on nothing.
package domain

import (
	"fmt"
	"strings"
)

// Unit is a measurement unit tag understood by the converter.
type Unit string

const (
	Cups        Unit = "cups"
	Tablespoons Unit = "tablespoons"
	Teaspoons   Unit = "teaspoons"
	Milliliters Unit = "milliliters"
	Grams       Unit = "grams"
	// Ounces is the avoirdupois (mass) ounce.
	Ounces Unit = "ounces"
	// FluidOunces is the US fluid (volume) ounce.
	FluidOunces Unit = "fluid_ounces"
	Celsius     Unit = "celsius"
	Fahrenheit  Unit = "fahrenheit"
)

// Family groups units that can be converted into each other.
type Family int

const (
	FamilyUnknown Family = iota
	// FamilyVolumeMass covers kitchen volumes and weights, bridged by water density.
	FamilyVolumeMass
	FamilyTemperature
)

// String returns a human-readable family name.
func (f Family) String() string {
	switch f {
	case FamilyVolumeMass:
		return "volume/mass"
	case FamilyTemperature:
		return "temperature"
	default:
		return "unknown"
	}
}

var volumeMassUnits = []Unit{Cups, Tablespoons, Teaspoons, Milliliters, Grams, Ounces, FluidOunces}

var temperatureUnits = []Unit{Celsius, Fahrenheit}

// Family reports which family the unit belongs to.
func (u Unit) Family() Family {
	switch u {
	case Cups, Tablespoons, Teaspoons, Milliliters, Grams, Ounces, FluidOunces:
		return FamilyVolumeMass
	case Celsius, Fahrenheit:
		return FamilyTemperature
	default:
		return FamilyUnknown
	}
}

// Valid reports whether u is a known unit.
func (u Unit) Valid() bool {
	return u.Family() != FamilyUnknown
}

// Short returns the abbreviation used in compact output ("tbsp", "°F").
func (u Unit) Short() string {
	switch u {
	case Cups:
		return "cup"
	case Tablespoons:
		return "tbsp"
	case Teaspoons:
		return "tsp"
	case Milliliters:
		return "ml"
	case Grams:
		return "g"
	case Ounces:
		return "oz"
	case FluidOunces:
		return "fl oz"
	case Celsius:
		return "°C"
	case Fahrenheit:
		return "°F"
	default:
		return string(u)
	}
}

// Label returns the display name used by the unit pickers.
func (u Unit) Label() string {
	switch u {
	case FluidOunces:
		return "Fluid ounces"
	case "":
		return ""
	default:
		return strings.ToUpper(string(u[:1])) + string(u[1:])
	}
}

// UnitsOf returns the selectable units of a family in display order.
// The returned slice is a copy.
func UnitsOf(f Family) []Unit {
	var src []Unit
	switch f {
	case FamilyVolumeMass:
		src = volumeMassUnits
	case FamilyTemperature:
		src = temperatureUnits
	}
	out := make([]Unit, len(src))
	copy(out, src)
	return out
}

// AllUnits returns every known unit, volume/mass first.
func AllUnits() []Unit {
	return append(UnitsOf(FamilyVolumeMass), UnitsOf(FamilyTemperature)...)
}

// unitAliases maps lower-cased user spellings to units.
var unitAliases = map[string]Unit{
	"cup": Cups, "cups": Cups,
	"tablespoon": Tablespoons, "tablespoons": Tablespoons, "tbsp": Tablespoons, "tbs": Tablespoons, "tbl": Tablespoons,
	"teaspoon": Teaspoons, "teaspoons": Teaspoons, "tsp": Teaspoons,
	"milliliter": Milliliters, "milliliters": Milliliters, "millilitre": Milliliters, "millilitres": Milliliters, "ml": Milliliters,
	"gram": Grams, "grams": Grams, "g": Grams, "gr": Grams,
	"ounce": Ounces, "ounces": Ounces, "oz": Ounces,
	"fluid ounce": FluidOunces, "fluid ounces": FluidOunces, "fluid_ounce": FluidOunces, "fluid_ounces": FluidOunces,
	"fl oz": FluidOunces, "fl. oz": FluidOunces, "fl.oz": FluidOunces, "floz": FluidOunces,
	"celsius": Celsius, "c": Celsius, "°c": Celsius, "degc": Celsius, "centigrade": Celsius,
	"fahrenheit": Fahrenheit, "f": Fahrenheit, "°f": Fahrenheit, "degf": Fahrenheit,
}

// ParseUnit resolves a user-typed unit name or abbreviation.
func ParseUnit(s string) (Unit, error) {
	key := strings.ToLower(strings.Join(strings.Fields(s), " "))
	key = strings.TrimSuffix(key, ".")
	if u, ok := unitAliases[key]; ok {
		return u, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
}
