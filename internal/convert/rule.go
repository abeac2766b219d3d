// Package convert implements the kitchen unit and temperature converter.
//
// Conversions are driven by a fixed table mapping (from, to) unit pairs to a
// Rule. A Rule is either a constant Factor or an affine Formula (used only for
// temperature). The default table is built once at package initialisation
// and never mutated, so lookups need no locking.
package convert

import (
	"fmt"
	"strconv"
)

// RuleKind tags the variant held by a Rule.
type RuleKind int

const (
	KindFactor RuleKind = iota
	KindFormula
)

// String returns the kind name.
func (k RuleKind) String() string {
	if k == KindFormula {
		return "formula"
	}
	return "factor"
}

// Rule converts an amount from one unit to another.
type Rule struct {
	kind   RuleKind
	factor float64
	fn     func(float64) float64
	desc   string
}

// Factor returns a rule that multiplies the amount by k.
func Factor(k float64) Rule {
	return Rule{kind: KindFactor, factor: k}
}

// Formula returns a rule that applies fn. desc is a human-readable form of
// the function, shown by the units listing.
func Formula(desc string, fn func(float64) float64) Rule {
	return Rule{kind: KindFormula, fn: fn, desc: desc}
}

// Kind reports which variant the rule holds.
func (r Rule) Kind() RuleKind { return r.kind }

// Factor returns the multiplier of a factor rule. ok is false for formulas.
func (r Rule) Factor() (k float64, ok bool) {
	if r.kind != KindFactor {
		return 0, false
	}
	return r.factor, true
}

// Apply converts x. NaN and infinities pass straight through the arithmetic.
func (r Rule) Apply(x float64) float64 {
	if r.kind == KindFormula {
		return r.fn(x)
	}
	return x * r.factor
}

// String describes the rule: "x 16" or "x*9/5+32".
func (r Rule) String() string {
	if r.kind == KindFormula {
		return r.desc
	}
	return fmt.Sprintf("x %s", strconv.FormatFloat(r.factor, 'g', 6, 64))
}

func celsiusToFahrenheit(x float64) float64 { return x*9/5 + 32 }

func fahrenheitToCelsius(x float64) float64 { return (x - 32) * 5 / 9 }
