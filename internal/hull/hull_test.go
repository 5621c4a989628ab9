package hull

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/phasekit/internal/phase"
)

func feOData(t *testing.T) *phase.Data {
	t.Helper()
	pd := phase.NewData()
	for _, rec := range []struct {
		formula string
		energy  float64
	}{
		{"Fe", 0},
		{"O", 0},
		{"Fe2O3", -1.697},
		{"FeO", -0.941},
		{"Li2O", -2.034}, // outside the Fe-O space, must be ignored
	} {
		p, err := phase.Parse(rec.formula, rec.energy, true)
		if err != nil {
			t.Fatalf("Parse(%q): %v", rec.formula, err)
		}
		pd.Add(p)
	}
	return pd
}

func TestBinary(t *testing.T) {
	d, err := Binary(feOData(t), "Fe", "O")
	if err != nil {
		t.Fatalf("Binary: %v", err)
	}

	if len(d.Points) != 4 {
		t.Fatalf("got %d candidates, want 4", len(d.Points))
	}

	// Fe, Fe2O3 and O form the hull; FeO sits above the Fe-Fe2O3 tie line.
	stable := d.Stable()
	if len(stable) != 3 {
		t.Fatalf("got %d hull members, want 3: %v", len(stable), stable)
	}
	names := []string{stable[0].Name(), stable[1].Name(), stable[2].Name()}
	if names[0] != "Fe" || names[1] != "Fe2O3" || names[2] != "O" {
		t.Errorf("hull = %v, want [Fe Fe2O3 O]", names)
	}

	for _, p := range stable {
		if p.Stability == nil || *p.Stability != 0 {
			t.Errorf("hull member %s has stability %v, want 0", p.Name(), p.Stability)
		}
	}
}

func TestBinary_Stability(t *testing.T) {
	pd := feOData(t)
	d, err := Binary(pd, "Fe", "O")
	if err != nil {
		t.Fatalf("Binary: %v", err)
	}

	feo, ok := pd.GroundState("FeO")
	if !ok {
		t.Fatal("FeO missing")
	}
	if feo.Stability == nil {
		t.Fatal("FeO stability not set")
	}
	// FeO at x=0.5 against the Fe(0,0)-Fe2O3(0.6,-1.697) tie line.
	want := -0.941 - (-1.697 * 5.0 / 6.0)
	if math.Abs(*feo.Stability-want) > 1e-9 {
		t.Errorf("FeO stability = %v, want %v", *feo.Stability, want)
	}

	// The hull interpolates linearly between vertices.
	if math.Abs(d.At(0.3)-(-1.697*0.5)) > 1e-9 {
		t.Errorf("At(0.3) = %v, want %v", d.At(0.3), -1.697*0.5)
	}
}

func TestBinary_MissingEndpoint(t *testing.T) {
	pd := phase.NewData()
	p, _ := phase.Parse("Fe2O3", -1.697, true)
	pd.Add(p)

	_, err := Binary(pd, "Fe", "O")
	if !errors.Is(err, ErrMissingEndpoint) {
		t.Errorf("error = %v, want ErrMissingEndpoint", err)
	}
}

func TestBinary_DegenerateSpace(t *testing.T) {
	if _, err := Binary(phase.NewData(), "Fe", "Fe"); err == nil {
		t.Error("expected error for degenerate space")
	}
}
