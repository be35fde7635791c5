package analysis

import (
	"github.com/san-kum/radcool/internal/model"
	"github.com/san-kum/radcool/internal/thermo"
)

// CrossingTime locates the first time the trajectory cools to the target
// temperature, linearly interpolating between the bracketing samples. The
// second return is false when the target is outside the open interval
// (ambient, initial) or the trajectory never reaches it within its horizon;
// that is an expected outcome, not an error.
func CrossingTime(tr *thermo.Trajectory, p model.Params, target float64) (float64, bool) {
	if target >= p.Initial || target <= p.Ambient {
		return 0, false
	}

	for i, T := range tr.Temps {
		if T > target {
			continue
		}
		if i == 0 {
			return tr.Times[0], true
		}

		// i is the first index with T[i] <= target, so T[i-1] > target and
		// the bracketing slope is strictly negative; a flat segment at the
		// target resolves at its left edge, one sample earlier.
		dT := tr.Temps[i-1] - tr.Temps[i]
		dt := tr.Times[i] - tr.Times[i-1]
		return tr.Times[i-1] + (tr.Temps[i-1]-target)/dT*dt, true
	}

	return 0, false
}

// FractionTarget is the temperature after cooling through the given fraction
// of the initial-to-ambient range.
func FractionTarget(p model.Params, frac float64) float64 {
	return p.Initial - frac*(p.Initial-p.Ambient)
}

// Milestone is one characteristic cooling time.
type Milestone struct {
	Target  float64
	Time    float64
	Reached bool
}

// Milestones are the three characteristic times of a cooling run: T90 is the
// end of the rapid initial response (10% of the range cooled), T50 the
// half-cooling benchmark, T10 the approach to equilibrium (90% cooled).
type Milestones struct {
	T90 Milestone
	T50 Milestone
	T10 Milestone
}

func ComputeMilestones(tr *thermo.Trajectory, p model.Params) Milestones {
	at := func(frac float64) Milestone {
		target := FractionTarget(p, frac)
		t, ok := CrossingTime(tr, p, target)
		return Milestone{Target: target, Time: t, Reached: ok}
	}
	return Milestones{
		T90: at(0.1),
		T50: at(0.5),
		T10: at(0.9),
	}
}

// Intersection finds the first point after the shared start where two
// trajectories on the same grid cross, interpolating the sign change of
// their difference. Used to compare constant- against variable-emissivity
// cooling curves.
func Intersection(a, b *thermo.Trajectory) (t, T float64, ok bool) {
	n := a.Len()
	if b.Len() < n {
		n = b.Len()
	}

	for i := 1; i < n-1; i++ {
		d0 := a.Temps[i] - b.Temps[i]
		d1 := a.Temps[i+1] - b.Temps[i+1]
		if d0 == 0 {
			return a.Times[i], a.Temps[i], true
		}
		if d0*d1 < 0 {
			frac := d0 / (d0 - d1)
			t = a.Times[i] + frac*(a.Times[i+1]-a.Times[i])
			T = a.Temps[i] + frac*(a.Temps[i+1]-a.Temps[i])
			return t, T, true
		}
	}

	return 0, 0, false
}
