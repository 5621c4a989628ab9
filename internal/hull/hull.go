// Package hull builds binary phase diagrams: the lower convex hull of
// formation energy against composition, which determines which phases are
// thermodynamically stable.
package hull

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/phasekit/internal/phase"
)

// ErrMissingEndpoint indicates a hull request for a space with no pure
// elemental phase at one end.
var ErrMissingEndpoint = errors.New("hull: no elemental reference phase")

// Point is one candidate on the diagram: a phase at composition x (unit
// fraction of the second element) with formation energy y in eV/atom,
// measured against the elemental references.
type Point struct {
	Phase *phase.Phase
	X, Y  float64
}

// BinaryDiagram is the result of a two-element hull construction. Points
// holds every candidate sorted by composition; Hull holds the vertices of
// the lower convex hull.
type BinaryDiagram struct {
	EltA, EltB string
	Points     []Point
	Hull       []Point
}

// Binary collects the ground-state phases of the eltA-eltB space, computes
// the lower convex hull anchored at the elemental endpoints, and sets each
// candidate's Stability to its energy distance above the hull (zero for
// hull members).
func Binary(data *phase.Data, eltA, eltB string) (*BinaryDiagram, error) {
	if eltA == eltB {
		return nil, fmt.Errorf("hull: degenerate space %s-%s", eltA, eltB)
	}

	var refA, refB *phase.Phase
	var candidates []*phase.Phase
	for _, p := range data.GroundStates() {
		if !within(p.Space(), eltA, eltB) {
			continue
		}
		frac := p.UnitComp()[eltB]
		switch {
		case frac == 0:
			if refA == nil || p.Energy() < refA.Energy() {
				refA = p
			}
		case frac == 1:
			if refB == nil || p.Energy() < refB.Energy() {
				refB = p
			}
		}
		candidates = append(candidates, p)
	}
	if refA == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingEndpoint, eltA)
	}
	if refB == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingEndpoint, eltB)
	}

	d := &BinaryDiagram{EltA: eltA, EltB: eltB}
	for _, p := range candidates {
		x := p.UnitComp()[eltB]
		y := p.Energy() - (1-x)*refA.Energy() - x*refB.Energy()
		d.Points = append(d.Points, Point{Phase: p, X: x, Y: y})
	}
	sort.Slice(d.Points, func(i, j int) bool {
		if d.Points[i].X != d.Points[j].X {
			return d.Points[i].X < d.Points[j].X
		}
		return d.Points[i].Y < d.Points[j].Y
	})

	d.Hull = lowerHull(d.Points)

	for i := range d.Points {
		pt := &d.Points[i]
		dist := pt.Y - d.At(pt.X)
		if dist < 0 {
			dist = 0
		}
		s := dist
		pt.Phase.Stability = &s
	}
	return d, nil
}

// At returns the hull energy at composition x by interpolating between the
// bracketing hull vertices.
func (d *BinaryDiagram) At(x float64) float64 {
	h := d.Hull
	if len(h) == 0 {
		return 0
	}
	if x <= h[0].X {
		return h[0].Y
	}
	for i := 1; i < len(h); i++ {
		if x <= h[i].X {
			span := h[i].X - h[i-1].X
			if span == 0 {
				return h[i].Y
			}
			t := (x - h[i-1].X) / span
			return h[i-1].Y + t*(h[i].Y-h[i-1].Y)
		}
	}
	return h[len(h)-1].Y
}

// Stable returns the hull-member phases in composition order.
func (d *BinaryDiagram) Stable() []*phase.Phase {
	out := make([]*phase.Phase, len(d.Hull))
	for i, pt := range d.Hull {
		out[i] = pt.Phase
	}
	return out
}

// lowerHull runs the monotone-chain scan over points sorted by X.
func lowerHull(points []Point) []Point {
	var hull []Point
	for _, p := range points {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull
}

func cross(o, a, b Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

func within(space []string, eltA, eltB string) bool {
	if len(space) == 0 {
		return false
	}
	for _, elt := range space {
		if elt != eltA && elt != eltB {
			return false
		}
	}
	return true
}
