// Package thermo provides core primitives for radiative cooling simulations.
//
// The package defines the fundamental types for numerical integration of the
// lumped-capacitance energy balance dT/dt = f(t, T):
//
//   - [Trajectory]: sampled solution (time, temperature)
//   - [DerivFunc]: right-hand side of the cooling ODE
//   - [Solver]: numerical integrator interface
//   - [Grid]: uniform reporting grid construction
//
// # Example
//
//	p := model.Default()
//	grid := thermo.Grid(4000, 10)
//	traj, _ := solver.NewRK45().Solve(p.Derivative(), p.Initial, grid, 1e-6)
//
// # Thread Safety
//
// Trajectories are immutable once produced. Solvers keep no state between
// calls, so independent parameter-sweep runs may integrate concurrently.
package thermo
