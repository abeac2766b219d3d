package convert

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/hammamikhairi/kitchenpal/internal/domain"
)

// Request is a single conversion to perform.
type Request struct {
	Amount float64
	From   domain.Unit
	To     domain.Unit
}

// Result is a completed conversion.
type Result struct {
	Request
	Value float64
}

// String renders "2 cups = 32.00 tablespoons".
func (r Result) String() string {
	return fmt.Sprintf("%s %s = %s %s", FormatAmount(r.Amount), r.From, FormatValue(r.Value), r.To)
}

// Short renders the compact form "2 cup = 32.00 tbsp".
func (r Result) Short() string {
	return fmt.Sprintf("%s %s = %s %s", FormatAmount(r.Amount), r.From.Short(), FormatValue(r.Value), r.To.Short())
}

// Do runs req against the default table.
func Do(req Request) (Result, error) {
	v, err := std.Convert(req.Amount, req.From, req.To)
	if err != nil {
		return Result{}, err
	}
	return Result{Request: req, Value: v}, nil
}

// ── Formatting ───────────────────────────────────────────────────

// FormatValue formats a converted value with two decimals. Rounding happens
// here and nowhere else.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatAmount formats a user amount without trailing zeros.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatCompact formats v with at most one decimal ("236.6", "16").
func FormatCompact(v float64) string {
	s := strconv.FormatFloat(v, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0")
}

// ── Parsing ──────────────────────────────────────────────────────

var vulgarFractions = map[rune]float64{
	'½': 0.5, '¼': 0.25, '¾': 0.75, '⅓': 1.0 / 3, '⅔': 2.0 / 3, '⅛': 0.125,
}

// ParseAmount parses a typed amount: "2", "1.5", "-40", "1/2", "1 1/2", "1½".
// Text that is empty or not a number yields NaN, which the converter
// propagates unchanged.
func ParseAmount(s string) float64 {
	v, err := parseAmount(s)
	if err != nil {
		return math.NaN()
	}
	return v
}

func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", domain.ErrInvalidAmount)
	}

	// Trailing vulgar fraction, optionally after a whole number.
	var frac float64
	if r := []rune(s); len(r) > 0 {
		if f, ok := vulgarFractions[r[len(r)-1]]; ok {
			frac = f
			s = strings.TrimSpace(string(r[:len(r)-1]))
			if s == "" {
				return frac, nil
			}
		}
	}

	fields := strings.Fields(s)
	switch len(fields) {
	case 1:
		v, err := parseSimple(fields[0])
		if err != nil {
			return 0, err
		}
		if frac != 0 {
			if v < 0 {
				return v - frac, nil
			}
			return v + frac, nil
		}
		return v, nil
	case 2:
		// Mixed number "1 1/2".
		whole, err := strconv.ParseFloat(fields[0], 64)
		if err != nil || frac != 0 || !strings.Contains(fields[1], "/") {
			return 0, fmt.Errorf("%w: %q", domain.ErrInvalidAmount, s)
		}
		part, err := parseSimple(fields[1])
		if err != nil || part < 0 {
			return 0, fmt.Errorf("%w: %q", domain.ErrInvalidAmount, s)
		}
		if whole < 0 {
			return whole - part, nil
		}
		return whole + part, nil
	}
	return 0, fmt.Errorf("%w: %q", domain.ErrInvalidAmount, s)
}

func parseSimple(s string) (float64, error) {
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 != nil || err2 != nil || d == 0 {
			return 0, fmt.Errorf("%w: %q", domain.ErrInvalidAmount, s)
		}
		return n / d, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidAmount, s)
	}
	return v, nil
}

// leadingNumber splits "2cups" into "2" and "cups".
var leadingNumber = regexp.MustCompile(`^([-+]?(?:\d+(?:\.\d*)?|\.\d+)(?:/\d+)?[½¼¾⅓⅔⅛]?)(\D.*)?$`)

var connectors = map[string]bool{"to": true, "in": true, "into": true, "as": true, "->": true, "=": true}

// ParseQuery parses free text such as "2 cups to tbsp", "350 f in c",
// "1 1/2 cup ml" or "100g oz" into a Request.
func ParseQuery(s string) (Request, error) {
	tokens := strings.Fields(strings.ToLower(s))
	if len(tokens) < 3 && !(len(tokens) == 2 && leadingNumber.MatchString(tokens[0])) {
		return Request{}, fmt.Errorf("%w: expected \"<amount> <from> to <to>\", got %q", domain.ErrInvalidAmount, s)
	}

	amount, rest, err := splitAmount(tokens)
	if err != nil {
		return Request{}, err
	}

	from, to, err := splitUnits(rest)
	if err != nil {
		return Request{}, err
	}
	return Request{Amount: amount, From: from, To: to}, nil
}

// splitAmount takes the amount tokens off the front of the query.
func splitAmount(tokens []string) (float64, []string, error) {
	// "1 1/2 cups ..." mixed number.
	if len(tokens) > 2 && strings.Contains(tokens[1], "/") {
		if v, err := parseAmount(tokens[0] + " " + tokens[1]); err == nil {
			return v, tokens[2:], nil
		}
	}
	if v, err := parseAmount(tokens[0]); err == nil {
		return v, tokens[1:], nil
	}
	m := leadingNumber.FindStringSubmatch(tokens[0])
	if m == nil || m[2] == "" {
		return 0, nil, fmt.Errorf("%w: %q", domain.ErrInvalidAmount, tokens[0])
	}
	v, err := parseAmount(m[1])
	if err != nil {
		return 0, nil, err
	}
	return v, append([]string{m[2]}, tokens[1:]...), nil
}

// splitUnits finds the from and to units in the remaining tokens, either
// around a connector word or at the first split where both sides parse.
func splitUnits(rest []string) (domain.Unit, domain.Unit, error) {
	for i, tok := range rest {
		if connectors[tok] && i > 0 && i < len(rest)-1 {
			from, err := domain.ParseUnit(strings.Join(rest[:i], " "))
			if err != nil {
				return "", "", err
			}
			to, err := domain.ParseUnit(strings.Join(rest[i+1:], " "))
			if err != nil {
				return "", "", err
			}
			return from, to, nil
		}
	}
	for i := 1; i < len(rest); i++ {
		from, err1 := domain.ParseUnit(strings.Join(rest[:i], " "))
		to, err2 := domain.ParseUnit(strings.Join(rest[i:], " "))
		if err1 == nil && err2 == nil {
			return from, to, nil
		}
	}
	return "", "", fmt.Errorf("%w: %q", domain.ErrUnknownUnit, strings.Join(rest, " "))
}

// ── Common conversions card ──────────────────────────────────────

var commonRequests = []Request{
	{1, domain.Cups, domain.Tablespoons},
	{1, domain.Tablespoons, domain.Teaspoons},
	{1, domain.Cups, domain.Milliliters},
	{1, domain.Cups, domain.FluidOunces},
	{0, domain.Celsius, domain.Fahrenheit},
	{100, domain.Celsius, domain.Fahrenheit},
}

// Common returns the reference lines of the "Common Conversions" card,
// computed from the default table.
func Common() []string {
	out := make([]string, 0, len(commonRequests))
	for _, req := range commonRequests {
		res, err := Do(req)
		if err != nil {
			continue
		}
		if req.From.Family() == domain.FamilyTemperature {
			out = append(out, fmt.Sprintf("%s%s = %s%s", FormatAmount(req.Amount), req.From.Short(), FormatCompact(res.Value), req.To.Short()))
			continue
		}
		out = append(out, fmt.Sprintf("%s %s = %s %s", FormatAmount(req.Amount), singular(req.From), FormatCompact(res.Value), res.To.Short()))
	}
	return out
}

func singular(u domain.Unit) string {
	switch u {
	case domain.Cups:
		return "cup"
	case domain.Tablespoons:
		return "tablespoon"
	case domain.Teaspoons:
		return "teaspoon"
	default:
		return u.Short()
	}
}
