package analysis

import (
	"github.com/san-kum/radcool/internal/model"
	"github.com/san-kum/radcool/internal/thermo"
)

// HeatFlux computes the pointwise radiated power series σ·A·ε(T)·(T⁴ - T∞⁴),
// aligned index-for-index with the trajectory.
func HeatFlux(tr *thermo.Trajectory, p model.Params) []float64 {
	flux := make([]float64, tr.Len())
	for i, T := range tr.Temps {
		flux[i] = p.HeatFlux(T)
	}
	return flux
}

// CoolingRate computes the backward finite-difference rate -ΔT/Δt (K/s) per
// sample. The last entry replicates the second-to-last so the series stays
// the same length as the trajectory.
func CoolingRate(tr *thermo.Trajectory) []float64 {
	n := tr.Len()
	rate := make([]float64, n)
	if n < 2 {
		return rate
	}
	for i := 0; i < n-1; i++ {
		rate[i] = -(tr.Temps[i+1] - tr.Temps[i]) / (tr.Times[i+1] - tr.Times[i])
	}
	rate[n-1] = rate[n-2]
	return rate
}

// EnergyRadiated is the total heat released over the run, m·c·(T0 - Tend),
// in joules. For a pure radiative balance it equals the time integral of the
// heat flux, which makes it a cheap consistency check on a trajectory.
func EnergyRadiated(tr *thermo.Trajectory, p model.Params) float64 {
	return p.Mass * p.SpecificHeat * (tr.Initial() - tr.Final())
}
