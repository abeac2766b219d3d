package convert

import (
	"fmt"
	"sort"

	"github.com/hammamikhairi/kitchenpal/internal/domain"
)

// Pair is a directed (from, to) unit pair.
type Pair struct {
	From domain.Unit
	To   domain.Unit
}

// String returns "from->to".
func (p Pair) String() string {
	return string(p.From) + "->" + string(p.To)
}

// Table maps unit pairs to conversion rules. A Table is read-only once built.
type Table struct {
	rules map[Pair]Rule
}

// ── Factors ──────────────────────────────────────────────────────

// baseSize is each volume/mass unit expressed in the common base,
// where 1 ml of water weighs 1 g.
var baseSize = map[domain.Unit]float64{
	domain.Milliliters: 1,
	domain.Grams:       1,
	domain.Cups:        236.588,
	domain.Tablespoons: 14.7868,
	domain.Teaspoons:   4.92892,
	domain.FluidOunces: 29.5735,
	domain.Ounces:      28.3495,
}

// exactRatios are the kitchen ratios that hold exactly by definition.
// They override the base-derived factors in both directions.
var exactRatios = []struct {
	from, to domain.Unit
	k        float64
}{
	{domain.Cups, domain.Tablespoons, 16},
	{domain.Cups, domain.Teaspoons, 48},
	{domain.Cups, domain.FluidOunces, 8},
	{domain.Tablespoons, domain.Teaspoons, 3},
	{domain.FluidOunces, domain.Tablespoons, 2},
	{domain.FluidOunces, domain.Teaspoons, 6},
}

var std = buildTable()

// Default returns the shared conversion table.
func Default() *Table { return std }

func buildTable() *Table {
	t := &Table{rules: make(map[Pair]Rule)}

	for _, u := range domain.AllUnits() {
		t.rules[Pair{u, u}] = Factor(1)
	}

	vm := domain.UnitsOf(domain.FamilyVolumeMass)
	for _, a := range vm {
		for _, b := range vm {
			if a == b {
				continue
			}
			t.rules[Pair{a, b}] = Factor(baseSize[a] / baseSize[b])
		}
	}
	for _, r := range exactRatios {
		t.rules[Pair{r.from, r.to}] = Factor(r.k)
		t.rules[Pair{r.to, r.from}] = Factor(1 / r.k)
	}

	t.rules[Pair{domain.Celsius, domain.Fahrenheit}] = Formula("x*9/5+32", celsiusToFahrenheit)
	t.rules[Pair{domain.Fahrenheit, domain.Celsius}] = Formula("(x-32)*5/9", fahrenheitToCelsius)

	return t
}

// ── Lookup ───────────────────────────────────────────────────────

// Rule returns the rule for (from, to).
func (t *Table) Rule(from, to domain.Unit) (Rule, bool) {
	r, ok := t.rules[Pair{from, to}]
	return r, ok
}

// Convert converts amount from one unit to another. Pairs outside the table
// (cross-family or unknown units) fail with domain.ErrUnsupportedConversion.
// The result is not rounded.
func (t *Table) Convert(amount float64, from, to domain.Unit) (float64, error) {
	r, ok := t.rules[Pair{from, to}]
	if !ok {
		return 0, fmt.Errorf("%w: %s to %s", domain.ErrUnsupportedConversion, from, to)
	}
	return r.Apply(amount), nil
}

// FactorOf returns the constant factor for (from, to). ok is false when the
// pair is missing or converts through a formula.
func (t *Table) FactorOf(from, to domain.Unit) (float64, bool) {
	r, ok := t.rules[Pair{from, to}]
	if !ok {
		return 0, false
	}
	return r.Factor()
}

// Pairs returns every pair in the table, sorted by from then to unit order.
func (t *Table) Pairs() []Pair {
	order := make(map[domain.Unit]int)
	for i, u := range domain.AllUnits() {
		order[u] = i
	}
	out := make([]Pair, 0, len(t.rules))
	for p := range t.rules {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return order[out[i].From] < order[out[j].From]
		}
		return order[out[i].To] < order[out[j].To]
	})
	return out
}

// Len returns the number of pairs.
func (t *Table) Len() int { return len(t.rules) }

// ── Package-level helpers over the default table ─────────────────

// Convert converts amount using the default table.
func Convert(amount float64, from, to domain.Unit) (float64, error) {
	return std.Convert(amount, from, to)
}

// FactorOf returns the constant factor for (from, to) in the default table.
func FactorOf(from, to domain.Unit) (float64, bool) {
	return std.FactorOf(from, to)
}

// Pairs returns every pair of the default table.
func Pairs() []Pair {
	return std.Pairs()
}
