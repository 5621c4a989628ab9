// Package phase provides the core data model for phase-diagram analysis.
//
// The package defines two cooperating types:
//
//   - [Phase]: one composition + energy measurement with derived views
//     (unit and nominal compositions, per-atom / total / per-formula-unit
//     energies)
//   - [Data]: an append-only container indexing phases by canonical name,
//     element and composition dimensionality
//
// # Example
//
//	pd := phase.NewData()
//	p, _ := phase.Parse("Fe2O3", -1.64, true)
//	pd.Add(p)
//	ground, _ := pd.GroundState("Fe2O3")
//
// # Thread Safety
//
// Data instances are NOT thread-safe. All mutations (Add, Clear, SetPhases,
// ReadAPIData) must come from a single goroutine or be serialized
// externally; index reads are safe concurrently with each other but not
// with any mutation.
package phase
