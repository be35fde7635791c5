package solver

import "github.com/san-kum/radcool/internal/thermo"

// RK4 is the classic fixed-step fourth-order method, stepping exactly the
// reporting grid. It has no error control and ignores the tolerance; it
// exists for accuracy comparisons against the adaptive solver.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Solve(f thermo.DerivFunc, T0 float64, grid []float64, tol float64) (*thermo.Trajectory, error) {
	if len(grid) == 0 {
		return nil, thermo.ErrEmptyGrid
	}

	out := &thermo.Trajectory{
		Times: make([]float64, 0, len(grid)),
		Temps: make([]float64, 0, len(grid)),
	}

	y := T0
	out.Times = append(out.Times, grid[0])
	out.Temps = append(out.Temps, y)

	for i := 1; i < len(grid); i++ {
		t := grid[i-1]
		dt := grid[i] - t

		k1 := f(t, y)
		k2 := f(t+dt*0.5, y+dt*0.5*k1)
		k3 := f(t+dt*0.5, y+dt*0.5*k2)
		k4 := f(t+dt, y+dt*k3)

		y += dt / 6.0 * (k1 + 2*k2 + 2*k3 + k4)

		out.Times = append(out.Times, grid[i])
		out.Temps = append(out.Temps, y)
	}

	return out, nil
}
