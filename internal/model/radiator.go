package model

import (
	"math"

	"github.com/san-kum/radcool/internal/thermo"
)

// SigmaSB is the Stefan-Boltzmann constant (W·m⁻²·K⁻⁴).
const SigmaSB = 5.67e-8

// Emissivity yields the surface emissivity at a given temperature. Constant
// and temperature-dependent surfaces implement the same interface, selected
// when the Params value is built.
type Emissivity interface {
	At(T float64) float64
}

// Constant is a temperature-independent emissivity.
type Constant float64

func (c Constant) At(T float64) float64 { return float64(c) }

// Func adapts an arbitrary emissivity-temperature relation.
type Func func(T float64) float64

func (f Func) At(T float64) float64 { return f(T) }

// Oxidized is the exponential emissivity model of a surface whose emissivity
// rises with temperature, ε(T) = 0.992 - 0.35·exp(-0.0045·(T-300)). It
// averages about 0.8 over the 300-600 K range.
func Oxidized() Func {
	return func(T float64) float64 {
		return 0.992 - 0.35*math.Exp(-0.0045*(T-300))
	}
}

// Params is the physical parameter set for one cooling run. It is a plain
// value: copy it and change fields to describe a sweep variant, the original
// is never touched.
type Params struct {
	Initial      float64 // starting temperature (K)
	Ambient      float64 // surroundings temperature (K)
	Area         float64 // radiating surface area (m²)
	Mass         float64 // lumped mass (kg)
	SpecificHeat float64 // specific heat capacity (J/(kg·K))
	Emissivity   Emissivity
}

// Default returns the reference scenario: a 1 kg body at 600 K radiating into
// a 300 K environment.
func Default() Params {
	return Params{
		Initial:      600,
		Ambient:      300,
		Area:         0.1,
		Mass:         1.0,
		SpecificHeat: 500,
		Emissivity:   Constant(0.8),
	}
}

func (p Params) Validate() error {
	if p.Mass <= 0 {
		return thermo.ErrNonPositiveMass
	}
	if p.SpecificHeat <= 0 {
		return thermo.ErrNonPositiveSpecificHeat
	}
	if p.Area < 0 {
		return thermo.ErrNegativeArea
	}
	if p.Ambient >= p.Initial {
		return thermo.ErrAmbientNotBelowInitial
	}
	if p.Emissivity == nil {
		return thermo.ErrNilEmissivity
	}
	return nil
}

// HeatFlux is the instantaneous radiated power σ·A·ε(T)·(T⁴ - T∞⁴) in watts.
func (p Params) HeatFlux(T float64) float64 {
	t4 := T * T * T * T
	a4 := p.Ambient * p.Ambient * p.Ambient * p.Ambient
	return SigmaSB * p.Area * p.Emissivity.At(T) * (t4 - a4)
}

// Derivative returns the energy-balance right-hand side
// dT/dt = -σ·A·ε(T)·(T⁴ - T∞⁴) / (m·c) as a closure over a snapshot of p.
// The closure reads no shared state, so sweep runs built from copies of the
// same base Params may integrate concurrently.
func (p Params) Derivative() thermo.DerivFunc {
	return func(t, T float64) float64 {
		return -p.HeatFlux(T) / (p.Mass * p.SpecificHeat)
	}
}
