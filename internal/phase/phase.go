package phase

import (
	"fmt"
	"hash/fnv"
	"math"
	"sort"
	"strings"

	"github.com/san-kum/phasekit/internal/composition"
)

// EnergyTol is the per-atom energy and unit-fraction tolerance used by
// Equal. Equality under a tolerance is reflexive and symmetric but not
// guaranteed transitive.
const EnergyTol = 1e-6

// Phase is a point in composition-energy space.
type Phase struct {
	comp     composition.Composition
	unitComp composition.Composition
	nomComp  composition.Composition

	// Per-atom energy in eV is the single stored scalar; the total and
	// per-formula-unit views are computed from it on each read.
	energy float64

	Description string
	CustomName  string
	Use         bool
	ShowLabel   bool

	// Stability is the energy distance above the hull in eV/atom, set by
	// the analysis layer. Nil until computed.
	Stability *float64

	// Index is the 1-based insertion position, assigned by Data.Add.
	Index int

	constituents map[*Phase]float64
}

// New builds a phase from a composition and an energy. The energy is
// per-atom unless perAtom is false, in which case it is the total energy
// for the composition as supplied.
func New(comp composition.Composition, energy float64, perAtom bool) (*Phase, error) {
	if comp == nil {
		return nil, fmt.Errorf("%w: nil composition", ErrMissingInput)
	}
	if math.IsNaN(energy) || math.IsInf(energy, 0) {
		return nil, fmt.Errorf("%w: energy %v", ErrMissingInput, energy)
	}
	for elt, amt := range comp {
		if amt < 0 {
			return nil, fmt.Errorf("%w: %s=%g", ErrNegativeAmount, elt, amt)
		}
	}
	if comp.NumAtoms() <= 0 {
		return nil, ErrEmptyComposition
	}

	p := &Phase{
		comp:      comp.Clone(),
		unitComp:  comp.Unit(),
		nomComp:   comp.Reduce(),
		Use:       true,
		ShowLabel: true,
	}
	if perAtom {
		p.energy = energy
	} else {
		p.energy = energy / p.comp.NumAtoms()
	}
	return p, nil
}

// Parse builds a phase from a formula string, e.g. Parse("Fe2O3", -1.64, true).
func Parse(formula string, energy float64, perAtom bool) (*Phase, error) {
	comp, err := composition.Parse(formula)
	if err != nil {
		return nil, err
	}
	return New(comp, energy, perAtom)
}

// FromPhases combines constituent phases into one composite phase of unit
// constituents: the composition is the amount-weighted sum of the
// constituents' unit compositions and the energy is the amount-weighted sum
// of their per-atom energies, taken as a total energy. A single-entry map
// returns that constituent directly.
func FromPhases(constituents map[*Phase]float64) (*Phase, error) {
	if len(constituents) == 0 {
		return nil, fmt.Errorf("%w: no constituent phases", ErrMissingInput)
	}
	if len(constituents) == 1 {
		for q := range constituents {
			return q, nil
		}
	}

	comp := composition.Composition{}
	total := 0.0
	for q, amt := range constituents {
		total += amt * q.Energy()
		for elt, frac := range q.unitComp {
			comp[elt] += frac * amt
		}
	}

	p, err := New(comp, total, false)
	if err != nil {
		return nil, err
	}
	p.constituents = make(map[*Phase]float64, len(constituents))
	for q, amt := range constituents {
		p.constituents[q] = amt
	}
	return p, nil
}

// Comp returns the total composition as supplied. Callers must not modify it.
func (p *Phase) Comp() composition.Composition { return p.comp }

// UnitComp returns the composition rescaled to sum to 1.
func (p *Phase) UnitComp() composition.Composition { return p.unitComp }

// NomComp returns the composition divided by the GCD of its amounts,
// e.g. Fe4O6 becomes Fe2O3.
func (p *Phase) NomComp() composition.Composition { return p.nomComp }

// NumAtoms returns the number of atoms in the total composition.
func (p *Phase) NumAtoms() float64 { return p.comp.NumAtoms() }

// NomAtoms returns the number of atoms in the nominal composition.
func (p *Phase) NomAtoms() float64 { return p.nomComp.NumAtoms() }

// Space returns the elements present in the phase (unit fraction > 1e-6).
func (p *Phase) Space() []string {
	elts := make([]string, 0, len(p.unitComp))
	for elt, frac := range p.unitComp {
		if math.Abs(frac) > EnergyTol {
			elts = append(elts, elt)
		}
	}
	sort.Strings(elts)
	return elts
}

// Energy returns the energy per atom in eV.
func (p *Phase) Energy() float64 { return p.energy }

// SetEnergy sets the per-atom energy; the total and per-formula-unit views
// follow.
func (p *Phase) SetEnergy(e float64) { p.energy = e }

// TotalEnergy returns the energy for the composition as supplied, in eV.
func (p *Phase) TotalEnergy() float64 { return p.energy * p.NumAtoms() }

// SetTotalEnergy sets the total energy; the per-atom and per-formula-unit
// views follow.
func (p *Phase) SetTotalEnergy(e float64) { p.energy = e / p.NumAtoms() }

// EnergyPFU returns the energy per nominal formula unit, i.e. per Fe2O3
// rather than per Fe4O6, satisfying
// TotalEnergy = Energy*NumAtoms = EnergyPFU*NomAtoms.
func (p *Phase) EnergyPFU() float64 { return p.TotalEnergy() / p.NomAtoms() }

// SetEnergyPFU sets the per-formula-unit energy; the other views follow.
func (p *Phase) SetEnergyPFU(e float64) { p.energy = e * p.NomAtoms() / p.NumAtoms() }

// Constituents returns the constituent mapping of a composite phase, or nil
// for a phase built directly from a composition.
func (p *Phase) Constituents() map[*Phase]float64 { return p.constituents }

// Name returns the custom name if set, the weighted constituent label for a
// composite phase, or the formatted nominal composition.
func (p *Phase) Name() string {
	if p.CustomName != "" {
		return p.CustomName
	}
	if len(p.constituents) > 0 {
		type term struct {
			name string
			amt  float64
		}
		terms := make([]term, 0, len(p.constituents))
		for q, amt := range p.constituents {
			terms = append(terms, term{name: q.Name(), amt: amt / q.NomAtoms()})
		}
		sort.Slice(terms, func(i, j int) bool { return terms[i].name < terms[j].name })
		parts := make([]string, len(terms))
		for i, t := range terms {
			parts[i] = fmt.Sprintf("%.3g %s", t.amt, t.name)
		}
		return strings.Join(parts, " + ")
	}
	return p.nomComp.Format()
}

// Label returns the display label with the per-atom energy.
func (p *Phase) Label() string {
	return fmt.Sprintf("%s: %0.3f eV/atom", p.Name(), p.energy)
}

func (p *Phase) String() string {
	if p.Description != "" {
		return fmt.Sprintf("%s (%s): %0.3g", p.Name(), p.Description, p.energy)
	}
	return fmt.Sprintf("%s : %0.3g", p.Name(), p.energy)
}

// Equal reports whether two phases have the same elemental support, per-atom
// energies within 1e-6 eV and unit-composition fractions within 1e-6.
func (p *Phase) Equal(o *Phase) bool {
	if o == nil {
		return false
	}
	a, b := p.comp.Elements(), o.comp.Elements()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	if math.Abs(p.energy-o.energy) > EnergyTol {
		return false
	}
	for _, elt := range a {
		if math.Abs(p.unitComp[elt]-o.unitComp[elt]) > EnergyTol {
			return false
		}
	}
	return true
}

// Hash returns a digest over the rounded per-atom energy and the canonical
// unit composition, the same fields Equal compares. Phases whose values
// straddle a rounding boundary may hash differently while comparing equal.
func (p *Phase) Hash() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%.6f", p.energy)
	for _, elt := range p.comp.Elements() {
		fmt.Fprintf(h, ";%s:%.6f", elt, p.unitComp[elt])
	}
	return h.Sum64()
}

// Amt extracts as many formula units of target as the limiting element of
// this phase's composition allows. The returned map holds the residual
// composition plus the extracted amount under the synthetic key "var",
// normalized by the target's total amount.
//
//	p, _ := phase.New(composition.Composition{"Fe": 1, "Li": 5, "O": 8}, -1, true)
//	res, _ := p.Amt(composition.MustParse("Li2O"))
//	// res = {"Fe": 1, "Li": 0, "O": 5.5, "var": 2.5}
func (p *Phase) Amt(target composition.Composition) (composition.Composition, error) {
	return extract(p.comp.Clone(), target)
}

// AmtPhase is Amt against another phase's total composition.
func (p *Phase) AmtPhase(o *Phase) (composition.Composition, error) {
	return p.Amt(o.comp)
}

// Fraction is Amt over unit compositions: both this phase's composition and
// the target are normalized to sum to 1 before extraction.
func (p *Phase) Fraction(target composition.Composition) (composition.Composition, error) {
	return extract(p.unitComp.Clone(), target.Unit())
}

// FractionPhase is Fraction against another phase's composition.
func (p *Phase) FractionPhase(o *Phase) (composition.Composition, error) {
	return p.Fraction(o.comp)
}

// extract pulls the limiting-element multiple of target out of residual,
// mutating and returning it with the extracted amount under "var".
func extract(residual, target composition.Composition) (composition.Composition, error) {
	if target.NumAtoms() <= 0 {
		return nil, fmt.Errorf("%w: empty target", ErrZeroAmount)
	}
	tot := residual.NumAtoms()

	ratio := math.Inf(1)
	for elt, amt := range target {
		if amt == 0 {
			return nil, fmt.Errorf("%w: %s", ErrZeroAmount, elt)
		}
		if r := residual[elt] / amt; r < ratio {
			ratio = r
		}
	}
	for elt, amt := range target {
		residual[elt] -= ratio * amt
	}
	residual["var"] = (tot - residual.NumAtoms()) / target.NumAtoms()
	return residual, nil
}
