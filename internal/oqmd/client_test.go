package oqmd

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/san-kum/phasekit/internal/phase"
)

func TestFormationEnergies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/formationenergy" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("composition"); got != "Fe-O" {
			t.Errorf("composition = %q, want Fe-O", got)
		}
		if got := r.URL.Query().Get("limit"); got != "2" {
			t.Errorf("limit = %q, want 2", got)
		}
		fmt.Fprint(w, `{
			"data": [
				{"name": "Fe2O3", "delta_e": -1.697},
				{"name": "FeO", "delta_e": -0.941}
			],
			"meta": {"data_available": 2, "data_returned": 2, "more_data_available": false}
		}`)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	resp, err := c.FormationEnergies(context.Background(), Query{Composition: "Fe-O", Limit: 2})
	if err != nil {
		t.Fatalf("FormationEnergies: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("got %d records, want 2", len(resp.Data))
	}
	if resp.Data[0].Name != "Fe2O3" {
		t.Errorf("first record name = %q", resp.Data[0].Name)
	}
	if resp.Meta.More {
		t.Error("meta reports more data available")
	}

	// The batch feeds straight into a phase container.
	pd := phase.NewData()
	if err := pd.ReadAPIData(resp.Data, true); err != nil {
		t.Fatalf("ReadAPIData: %v", err)
	}
	if pd.Len() != 2 {
		t.Errorf("container has %d phases, want 2", pd.Len())
	}
}

func TestFormationEnergies_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	if _, err := c.FormationEnergies(context.Background(), Query{}); err == nil {
		t.Error("expected error for 503 response")
	}
}

func TestPhaseSpace_Pagination(t *testing.T) {
	page := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page++
		if page == 1 {
			fmt.Fprint(w, `{"data": [{"name": "Li2O", "delta_e": -2.034}],
				"meta": {"more_data_available": true}}`)
			return
		}
		fmt.Fprint(w, `{"data": [{"name": "Fe2O3", "delta_e": -1.697}],
			"meta": {"more_data_available": false}}`)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	records, err := c.PhaseSpace(context.Background(), "Fe-Li-O")
	if err != nil {
		t.Fatalf("PhaseSpace: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("got %d records, want 2", len(records))
	}
	if page != 2 {
		t.Errorf("made %d requests, want 2", page)
	}
}
