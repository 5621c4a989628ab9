package config

import (
	"math"
	"path/filepath"
	"testing"
)

func TestLoadSave(t *testing.T) {
	ds := &Dataset{
		Description: "test set",
		Phases: []Entry{
			{Composition: "Fe2O3", Energy: -1.697},
			{Composition: "Li2O", Energy: -6.102, Total: true, Name: "lithia"},
		},
	}

	path := filepath.Join(t.TempDir(), "dataset.yaml")
	if err := Save(path, ds); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Description != "test set" {
		t.Errorf("Description = %q", got.Description)
	}
	if len(got.Phases) != 2 {
		t.Fatalf("got %d entries, want 2", len(got.Phases))
	}
	if !got.Phases[1].Total || got.Phases[1].Name != "lithia" {
		t.Errorf("second entry = %+v", got.Phases[1])
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestBuild(t *testing.T) {
	ds := &Dataset{Phases: []Entry{
		{Composition: "Fe2O3", Energy: -1.697},
		{Composition: "Li2O", Energy: -6.102, Total: true, Name: "lithia"},
	}}

	phases, err := ds.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if phases[0].Energy() != -1.697 {
		t.Errorf("per-atom energy = %v", phases[0].Energy())
	}
	// Total energy -6.102 over 3 atoms.
	if math.Abs(phases[1].Energy()-(-2.034)) > 1e-9 {
		t.Errorf("energy = %v, want -2.034", phases[1].Energy())
	}
	if phases[1].Name() != "lithia" {
		t.Errorf("Name() = %q, want lithia", phases[1].Name())
	}
}

func TestBuild_BadComposition(t *testing.T) {
	ds := &Dataset{Phases: []Entry{{Composition: "2Fe", Energy: -1}}}
	if _, err := ds.Build(); err == nil {
		t.Error("expected error for malformed composition")
	}
}

func TestPresets(t *testing.T) {
	if GetPreset("Fe-O") == nil {
		t.Fatal("Fe-O preset missing")
	}
	if GetPreset("Xx-Yy") != nil {
		t.Error("expected nil for unknown preset")
	}
	if len(ListPresets()) == 0 {
		t.Error("expected preset names")
	}

	for _, name := range ListPresets() {
		phases, err := GetPreset(name).Build()
		if err != nil {
			t.Errorf("preset %s does not build: %v", name, err)
		}
		if len(phases) == 0 {
			t.Errorf("preset %s is empty", name)
		}
	}
}
