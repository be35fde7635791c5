package thermo

import "math"

// DerivFunc is the right-hand side of the cooling ODE, dT/dt = f(t, T).
// The time argument is unused by autonomous models but kept for generality.
type DerivFunc func(t, T float64) float64

// Trajectory is a sampled solution: parallel time and temperature slices,
// strictly increasing in time. It is produced whole by a Solver and never
// mutated afterwards.
type Trajectory struct {
	Times []float64
	Temps []float64
}

func (tr *Trajectory) Len() int { return len(tr.Times) }

// Initial returns the first sampled temperature.
func (tr *Trajectory) Initial() float64 { return tr.Temps[0] }

// Final returns the last sampled temperature.
func (tr *Trajectory) Final() float64 { return tr.Temps[len(tr.Temps)-1] }

func (tr *Trajectory) IsValid() bool {
	if len(tr.Times) == 0 || len(tr.Times) != len(tr.Temps) {
		return false
	}
	for i, v := range tr.Temps {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
		if i > 0 && tr.Times[i] <= tr.Times[i-1] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy, for callers that want to post-process samples
// without aliasing the original.
func (tr *Trajectory) Clone() *Trajectory {
	c := &Trajectory{
		Times: make([]float64, len(tr.Times)),
		Temps: make([]float64, len(tr.Temps)),
	}
	copy(c.Times, tr.Times)
	copy(c.Temps, tr.Temps)
	return c
}

// Solver integrates dT/dt = f over an explicit reporting grid. The grid is an
// output-sampling concern only; adaptive implementations control their
// internal step independently of it.
type Solver interface {
	Solve(f DerivFunc, T0 float64, grid []float64, tol float64) (*Trajectory, error)
}

// Grid builds the uniform reporting grid 0, step, 2*step, ... total
// (inclusive of total when it falls on a step boundary, as it does for the
// standard run configurations).
func Grid(total, step float64) []float64 {
	if total <= 0 || step <= 0 {
		return nil
	}
	n := int(math.Floor(total/step+1e-9)) + 1
	grid := make([]float64, n)
	for i := range grid {
		grid[i] = float64(i) * step
	}
	return grid
}
