package storage

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func testSeries() *Series {
	return &Series{
		Times: []float64{0, 10, 20},
		Temps: []float64{600, 550, 510},
		Flux:  []float64{551.1, 380.2, 290.5},
		Rates: []float64{5.0, 4.0, 4.0},
	}
}

func testMeta() RunMetadata {
	return RunMetadata{
		Solver:          "rk45",
		EmissivityModel: "constant",
		Emissivity:      0.8,
		InitialTemp:     600,
		AmbientTemp:     300,
		SurfaceArea:     0.1,
		Mass:            1.0,
		SpecificHeat:    500,
		TotalTime:       4000,
		TimeStep:        10,
		Tolerance:       1e-6,
		Metrics:         map[string]float64{"t50": 262.5},
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(testMeta(), testSeries())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "cool_") {
		t.Errorf("unexpected run id format: %s", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.ID != runID {
		t.Errorf("loaded id %s, want %s", meta.ID, runID)
	}
	if meta.Emissivity != 0.8 || meta.Metrics["t50"] != 262.5 {
		t.Errorf("metadata round-trip mismatch: %+v", meta)
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}
	if len(series.Times) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(series.Times))
	}
	if series.Temps[2] != 510 || series.Rates[2] != 4.0 {
		t.Errorf("series round-trip mismatch: %+v", series)
	}
}

func TestStore_List(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	if _, err := st.Save(testMeta(), testSeries()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStore_ListMissingDir(t *testing.T) {
	st := New("/nonexistent/radcool-test")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("expected empty list for missing dir, got %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestStore_LoadMissing(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("cool_0"); err == nil {
		t.Error("expected error for missing run")
	}
}

func TestExportJSON(t *testing.T) {
	meta := testMeta()
	meta.ID = "cool_42"

	var buf bytes.Buffer
	if err := ExportJSON(&buf, &meta, testSeries()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var payload struct {
		Meta   RunMetadata `json:"metadata"`
		Points int         `json:"points"`
		Temps  []float64   `json:"temperatures"`
	}
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if payload.Meta.ID != "cool_42" || payload.Points != 3 || len(payload.Temps) != 3 {
		t.Errorf("unexpected payload: %+v", payload)
	}
}
