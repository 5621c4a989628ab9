package config

// Presets are built-in sample spaces with OQMD-like formation energies in
// eV/atom, enough to exercise hull construction without network access.
var Presets = map[string]*Dataset{
	"Fe-O": {
		Description: "iron-oxygen binary",
		Phases: []Entry{
			{Composition: "Fe", Energy: 0},
			{Composition: "O", Energy: 0},
			{Composition: "FeO", Energy: -0.941},
			{Composition: "Fe3O4", Energy: -1.537},
			{Composition: "Fe2O3", Energy: -1.697},
		},
	},
	"Li-O": {
		Description: "lithium-oxygen binary",
		Phases: []Entry{
			{Composition: "Li", Energy: 0},
			{Composition: "O", Energy: 0},
			{Composition: "Li2O", Energy: -2.034},
			{Composition: "Li2O2", Energy: -1.516},
		},
	},
	"Li-Fe-O": {
		Description: "lithium-iron-oxygen ternary",
		Phases: []Entry{
			{Composition: "Li", Energy: 0},
			{Composition: "Fe", Energy: 0},
			{Composition: "O", Energy: 0},
			{Composition: "Li2O", Energy: -2.034},
			{Composition: "FeO", Energy: -0.941},
			{Composition: "Fe2O3", Energy: -1.697},
			{Composition: "LiFeO2", Energy: -1.952},
			{Composition: "LiFe5O8", Energy: -1.794},
		},
	},
}

// GetPreset returns the named preset, or nil if it does not exist.
func GetPreset(name string) *Dataset {
	return Presets[name]
}

// ListPresets returns the available preset names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
