package phase

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Data is a container for storing and organizing phases, used when running
// many thermodynamic analyses over the same pool of measurements. Phases are
// append-only for the lifetime of the container.
type Data struct {
	phases    []*Phase
	byName    map[string]*Phase
	byElement map[string]map[*Phase]struct{}
	byDim     map[int]map[*Phase]struct{}
	space     map[string]struct{}
}

// NewData creates an empty container.
func NewData() *Data {
	d := &Data{}
	d.Clear()
	return d
}

// Clear resets the ordered collection and every index to empty.
func (d *Data) Clear() {
	d.phases = nil
	d.byName = make(map[string]*Phase)
	d.byElement = make(map[string]map[*Phase]struct{})
	d.byDim = make(map[int]map[*Phase]struct{})
	d.space = make(map[string]struct{})
}

// Add appends a phase and updates the name, element and dimension indexes.
// On a name collision the strictly lower-energy phase wins the name index;
// both phases stay in the ordered collection.
func (d *Data) Add(p *Phase) {
	name := p.Name()
	if cur, ok := d.byName[name]; !ok || p.Energy() < cur.Energy() {
		d.byName[name] = p
	}

	d.phases = append(d.phases, p)
	p.Index = len(d.phases)

	elts := p.Comp().Elements()
	for _, elt := range elts {
		bucket, ok := d.byElement[elt]
		if !ok {
			bucket = make(map[*Phase]struct{})
			d.byElement[elt] = bucket
		}
		bucket[p] = struct{}{}
		d.space[elt] = struct{}{}
	}

	dim := len(elts)
	bucket, ok := d.byDim[dim]
	if !ok {
		bucket = make(map[*Phase]struct{})
		d.byDim[dim] = bucket
	}
	bucket[p] = struct{}{}
}

// AddAll applies Add to each phase in order.
func (d *Data) AddAll(phases []*Phase) {
	for _, p := range phases {
		d.Add(p)
	}
}

// SetPhases replaces the whole collection: Clear followed by AddAll.
func (d *Data) SetPhases(phases []*Phase) {
	d.Clear()
	d.AddAll(phases)
}

// Phases returns all phases in insertion order.
func (d *Data) Phases() []*Phase { return d.phases }

// Len returns the number of stored phases.
func (d *Data) Len() int { return len(d.phases) }

// GroundState returns the lowest-energy phase seen under the given name.
func (d *Data) GroundState(name string) (*Phase, bool) {
	p, ok := d.byName[name]
	return p, ok
}

// GroundStates returns the lowest-energy phase for every name, in insertion
// order of the winning phases.
func (d *Data) GroundStates() []*Phase {
	out := make([]*Phase, 0, len(d.byName))
	for _, p := range d.byName {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// ByElement returns the phases containing the element with nonzero amount,
// in insertion order.
func (d *Data) ByElement(elt string) []*Phase {
	return sorted(d.byElement[elt])
}

// ByDim returns the phases with exactly dim distinct elements, in insertion
// order.
func (d *Data) ByDim(dim int) []*Phase {
	return sorted(d.byDim[dim])
}

// Space returns the sorted union of elements across all added phases.
func (d *Data) Space() []string {
	elts := make([]string, 0, len(d.space))
	for elt := range d.space {
		elts = append(elts, elt)
	}
	sort.Strings(elts)
	return elts
}

func (d *Data) String() string {
	return fmt.Sprintf("%d phases", len(d.phases))
}

func sorted(bucket map[*Phase]struct{}) []*Phase {
	out := make([]*Phase, 0, len(bucket))
	for p := range bucket {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// Record is one entry of an OQMD formation-energy batch. DeltaE is kept as a
// json.Number so a malformed value surfaces during ingestion rather than
// during decoding.
type Record struct {
	Name   string      `json:"name"`
	DeltaE json.Number `json:"delta_e"`
}

// ReadAPIData builds one phase per record, interpreting the record's energy
// as per-atom unless perAtom is false, and adds each to the container. An
// empty batch is a no-op. A record with a non-numeric energy or an
// unparseable composition stops ingestion with an error.
func (d *Data) ReadAPIData(batch []Record, perAtom bool) error {
	for _, r := range batch {
		e, err := r.DeltaE.Float64()
		if err != nil {
			return fmt.Errorf("phase: record %q: %w", r.Name, err)
		}
		p, err := Parse(r.Name, e, perAtom)
		if err != nil {
			return fmt.Errorf("phase: record %q: %w", r.Name, err)
		}
		d.Add(p)
	}
	return nil
}
