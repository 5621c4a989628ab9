// Package composition provides element-to-amount maps and the arithmetic
// the phase model needs: formula parsing, unit normalization, reduction to
// the smallest integer ratio, and canonical formatting.
package composition

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ErrBadFormula indicates a formula string that could not be parsed.
var ErrBadFormula = errors.New("composition: malformed formula")

// maxDenominator bounds the rational approximation used when reducing
// compositions with fractional amounts.
const maxDenominator = 1000

// Composition maps element symbols to amounts (atom counts or fractions).
type Composition map[string]float64

// Parse converts a formula string like "Fe2O3" or "Li0.5FeO2" into a
// Composition. Repeated elements accumulate. Amounts default to 1.
func Parse(formula string) (Composition, error) {
	if strings.TrimSpace(formula) == "" {
		return nil, fmt.Errorf("%w: empty string", ErrBadFormula)
	}
	comp := Composition{}
	i := 0
	s := formula
	for i < len(s) {
		if s[i] < 'A' || s[i] > 'Z' {
			return nil, fmt.Errorf("%w: unexpected %q in %q", ErrBadFormula, s[i], formula)
		}
		j := i + 1
		for j < len(s) && s[j] >= 'a' && s[j] <= 'z' {
			j++
		}
		elt := s[i:j]
		i = j
		for j < len(s) && (s[j] >= '0' && s[j] <= '9' || s[j] == '.') {
			j++
		}
		amt := 1.0
		if j > i {
			v, err := strconv.ParseFloat(s[i:j], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad amount %q in %q", ErrBadFormula, s[i:j], formula)
			}
			amt = v
		}
		comp[elt] += amt
		i = j
	}
	return comp, nil
}

// MustParse is Parse for known-good formulas; it panics on error.
func MustParse(formula string) Composition {
	comp, err := Parse(formula)
	if err != nil {
		panic(err)
	}
	return comp
}

// Clone returns an independent copy.
func (c Composition) Clone() Composition {
	out := make(Composition, len(c))
	for elt, amt := range c {
		out[elt] = amt
	}
	return out
}

// NumAtoms returns the sum of all amounts.
func (c Composition) NumAtoms() float64 {
	total := 0.0
	for _, amt := range c {
		total += amt
	}
	return total
}

// Elements returns the sorted element symbols with nonzero amount.
func (c Composition) Elements() []string {
	elts := make([]string, 0, len(c))
	for elt, amt := range c {
		if amt != 0 {
			elts = append(elts, elt)
		}
	}
	sort.Strings(elts)
	return elts
}

// Unit returns the composition rescaled so amounts sum to 1. A composition
// with zero total returns an empty map.
func (c Composition) Unit() Composition {
	total := c.NumAtoms()
	out := make(Composition, len(c))
	if total == 0 {
		return out
	}
	for elt, amt := range c {
		out[elt] = amt / total
	}
	return out
}

// Reduce returns the composition divided by the greatest common divisor of
// its amounts, e.g. Fe4O6 becomes Fe2O3 and {Fe:0.4 O:0.6} becomes Fe2O3.
// Amounts that cannot be rationalized are returned scaled so the smallest
// nonzero amount is 1.
func (c Composition) Reduce() Composition {
	nums := make([]int64, 0, len(c))
	den := int64(1)
	exact := true
	for _, amt := range c {
		if amt == 0 {
			continue
		}
		_, d, ok := rationalize(amt)
		if !ok {
			exact = false
			break
		}
		den = lcm(den, d)
	}
	out := make(Composition, len(c))
	if exact {
		for _, amt := range c {
			if amt == 0 {
				continue
			}
			nums = append(nums, int64(math.Round(amt*float64(den))))
		}
		g := int64(0)
		for _, n := range nums {
			g = gcd(g, n)
		}
		if g > 0 {
			for elt, amt := range c {
				if amt == 0 {
					continue
				}
				out[elt] = math.Round(amt*float64(den)) / float64(g)
			}
			return out
		}
	}
	// Fallback: scale by the smallest nonzero amount.
	min := math.Inf(1)
	for _, amt := range c {
		if amt != 0 && math.Abs(amt) < min {
			min = math.Abs(amt)
		}
	}
	if math.IsInf(min, 1) {
		return out
	}
	for elt, amt := range c {
		if amt == 0 {
			continue
		}
		out[elt] = amt / min
	}
	return out
}

// Format renders the canonical display string: elements alphabetical,
// unit amounts implicit, e.g. {Fe:2 O:3} -> "Fe2O3" and {Li:2 O:1} -> "Li2O".
func (c Composition) Format() string {
	var sb strings.Builder
	for _, elt := range c.Elements() {
		sb.WriteString(elt)
		amt := c[elt]
		if math.Abs(amt-1) < 1e-9 {
			continue
		}
		if math.Abs(amt-math.Round(amt)) < 1e-9 {
			sb.WriteString(strconv.FormatInt(int64(math.Round(amt)), 10))
		} else {
			sb.WriteString(strconv.FormatFloat(amt, 'g', -1, 64))
		}
	}
	return sb.String()
}

// rationalize approximates x as n/d with d <= maxDenominator using a
// continued-fraction expansion.
func rationalize(x float64) (n, d int64, ok bool) {
	if x < 0 {
		n, d, ok = rationalize(-x)
		return -n, d, ok
	}
	h0, h1 := int64(0), int64(1)
	k0, k1 := int64(1), int64(0)
	v := x
	for i := 0; i < 64; i++ {
		a := int64(math.Floor(v))
		h0, h1 = h1, a*h1+h0
		k0, k1 = k1, a*k1+k0
		if k1 > maxDenominator {
			return 0, 0, false
		}
		approx := float64(h1) / float64(k1)
		if math.Abs(approx-x) < 1e-9*math.Max(1, x) {
			return h1, k1, true
		}
		frac := v - math.Floor(v)
		if frac < 1e-12 {
			break
		}
		v = 1 / frac
	}
	return 0, 0, false
}

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	return a / gcd(a, b) * b
}
