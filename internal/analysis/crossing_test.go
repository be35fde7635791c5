package analysis

import (
	"math"
	"testing"

	"github.com/san-kum/radcool/internal/model"
	"github.com/san-kum/radcool/internal/solver"
	"github.com/san-kum/radcool/internal/thermo"
)

func coolingRun(t *testing.T, p model.Params) *thermo.Trajectory {
	t.Helper()
	traj, err := solver.NewRK45().Solve(p.Derivative(), p.Initial, thermo.Grid(4000, 10), 1e-6)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	return traj
}

func TestCrossingTime_Interpolation(t *testing.T) {
	p := model.Default()
	tr := &thermo.Trajectory{
		Times: []float64{0, 10, 20},
		Temps: []float64{600, 500, 400},
	}

	// Midway between the first two samples.
	got, ok := CrossingTime(tr, p, 550)
	if !ok {
		t.Fatal("expected a crossing")
	}
	if math.Abs(got-5) > 1e-12 {
		t.Errorf("crossing at %f, want 5", got)
	}

	// Exactly on a sample.
	got, ok = CrossingTime(tr, p, 500)
	if !ok || math.Abs(got-10) > 1e-12 {
		t.Errorf("crossing at %f (ok=%v), want 10", got, ok)
	}
}

func TestCrossingTime_Boundaries(t *testing.T) {
	p := model.Default()
	tr := coolingRun(t, p)

	tests := []struct {
		name   string
		target float64
	}{
		{"target equals initial", p.Initial},
		{"target above initial", p.Initial + 50},
		{"target equals ambient", p.Ambient},
		{"target below ambient", p.Ambient - 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := CrossingTime(tr, p, tt.target); ok {
				t.Errorf("expected undefined crossing for target %f", tt.target)
			}
		})
	}
}

func TestCrossingTime_NeverReached(t *testing.T) {
	p := model.Default()
	tr := coolingRun(t, p)

	// Just above ambient, inside the valid band but beyond the horizon.
	if _, ok := CrossingTime(tr, p, p.Ambient+0.01); ok {
		t.Error("expected undefined crossing for a target beyond the horizon")
	}
}

func TestCrossingTime_RoundTrip(t *testing.T) {
	p := model.Default()
	tr := coolingRun(t, p)

	// The second sample's own temperature must map back to (about) its time.
	target := tr.Temps[1]
	got, ok := CrossingTime(tr, p, target)
	if !ok {
		t.Fatal("expected a crossing")
	}
	if math.Abs(got-tr.Times[1]) > 1e-6 {
		t.Errorf("crossing at %f, want %f", got, tr.Times[1])
	}

	// And the final sample's temperature maps to the final time.
	target = tr.Final()
	got, ok = CrossingTime(tr, p, target)
	if !ok {
		t.Fatal("expected a crossing for the final temperature")
	}
	if math.Abs(got-tr.Times[tr.Len()-1]) > 1e-6 {
		t.Errorf("crossing at %f, want %f", got, tr.Times[tr.Len()-1])
	}
}

func TestCrossingTime_FlatSegment(t *testing.T) {
	p := model.Default()
	tr := &thermo.Trajectory{
		Times: []float64{0, 10, 20, 30},
		Temps: []float64{600, 450, 450, 400},
	}

	// The first-hit scan stops where the target is first attained, so the
	// zero-slope pair never brackets the interpolation: a target on the flat
	// segment resolves at its left edge.
	got, ok := CrossingTime(tr, p, 450)
	if !ok {
		t.Fatal("expected a crossing onto the flat segment")
	}
	if got != 10 {
		t.Errorf("crossing at %f, want 10", got)
	}

	// A target below the flat segment interpolates on the strictly falling
	// pair beyond it, never against the flat one.
	got, ok = CrossingTime(tr, p, 449)
	if !ok {
		t.Fatal("expected a crossing past the flat segment")
	}
	if math.Abs(got-20.2) > 1e-9 {
		t.Errorf("crossing at %f, want 20.2", got)
	}
	if math.IsNaN(got) {
		t.Error("crossing time is NaN")
	}
}

func TestMilestones_Ordering(t *testing.T) {
	p := model.Default()
	tr := coolingRun(t, p)

	ms := ComputeMilestones(tr, p)
	if !ms.T90.Reached || !ms.T50.Reached || !ms.T10.Reached {
		t.Fatalf("expected all milestones reached: %+v", ms)
	}

	if !(ms.T90.Time < ms.T50.Time && ms.T50.Time < ms.T10.Time) {
		t.Errorf("milestone times out of order: %f, %f, %f", ms.T90.Time, ms.T50.Time, ms.T10.Time)
	}

	// The T⁴ nonlinearity: reaching 90% cooled takes far longer than 10%.
	if ms.T10.Time < 5*ms.T90.Time {
		t.Errorf("expected t10 >> t90, got %f vs %f", ms.T10.Time, ms.T90.Time)
	}

	if math.Abs(ms.T90.Target-570) > 1e-9 || math.Abs(ms.T50.Target-450) > 1e-9 || math.Abs(ms.T10.Target-330) > 1e-9 {
		t.Errorf("unexpected milestone targets: %+v", ms)
	}
}

func TestEmissivityMonotonicity(t *testing.T) {
	bright := model.Default()
	bright.Emissivity = model.Constant(1.0)
	dull := model.Default()
	dull.Emissivity = model.Constant(0.2)

	trBright := coolingRun(t, bright)
	trDull := coolingRun(t, dull)

	tBright, ok := CrossingTime(trBright, bright, 450)
	if !ok {
		t.Fatal("high-emissivity run never reached 450 K")
	}
	tDull, ok := CrossingTime(trDull, dull, 450)
	if !ok {
		t.Fatal("low-emissivity run never reached 450 K")
	}

	if tBright >= tDull/2 {
		t.Errorf("expected materially faster cooling at emissivity 1.0: %f vs %f", tBright, tDull)
	}
}

func TestIntersection(t *testing.T) {
	a := &thermo.Trajectory{
		Times: []float64{0, 1, 2, 3},
		Temps: []float64{600, 500, 400, 300},
	}
	b := &thermo.Trajectory{
		Times: []float64{0, 1, 2, 3},
		Temps: []float64{600, 480, 420, 310},
	}

	tm, temp, ok := Intersection(a, b)
	if !ok {
		t.Fatal("expected an intersection")
	}
	// Difference goes +20 at t=1 to -20 at t=2: crossing at t=1.5.
	if math.Abs(tm-1.5) > 1e-12 {
		t.Errorf("intersection at t=%f, want 1.5", tm)
	}
	if math.Abs(temp-450) > 1e-12 {
		t.Errorf("intersection at T=%f, want 450", temp)
	}
}

func TestIntersection_None(t *testing.T) {
	a := &thermo.Trajectory{Times: []float64{0, 1, 2}, Temps: []float64{600, 500, 400}}
	b := &thermo.Trajectory{Times: []float64{0, 1, 2}, Temps: []float64{600, 490, 390}}

	if _, _, ok := Intersection(a, b); ok {
		t.Error("expected no intersection for separated curves")
	}
}
