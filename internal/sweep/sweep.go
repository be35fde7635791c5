// Package sweep runs families of cooling simulations across material
// parameters. Each variant is an independent integration over its own copy
// of the base parameters, so runs execute in parallel with no shared state.
package sweep

import (
	"context"
	"sync"

	"github.com/san-kum/radcool/internal/analysis"
	"github.com/san-kum/radcool/internal/model"
	"github.com/san-kum/radcool/internal/solver"
	"github.com/san-kum/radcool/internal/thermo"
)

// Run is the outcome of one sweep variant.
type Run struct {
	Value      float64
	Params     model.Params
	Trajectory *thermo.Trajectory
	Milestones analysis.Milestones
}

type Sweep struct {
	base model.Params
	grid []float64
	tol  float64
}

func New(base model.Params, grid []float64, tol float64) *Sweep {
	return &Sweep{base: base, grid: grid, tol: tol}
}

// Emissivity varies the constant surface emissivity across values.
func (s *Sweep) Emissivity(ctx context.Context, values []float64) ([]Run, error) {
	return s.run(ctx, values, func(p model.Params, v float64) model.Params {
		p.Emissivity = model.Constant(v)
		return p
	})
}

// Mass varies the lumped mass across values.
func (s *Sweep) Mass(ctx context.Context, values []float64) ([]Run, error) {
	return s.run(ctx, values, func(p model.Params, v float64) model.Params {
		p.Mass = v
		return p
	})
}

// SpecificHeat varies the specific heat capacity across values.
func (s *Sweep) SpecificHeat(ctx context.Context, values []float64) ([]Run, error) {
	return s.run(ctx, values, func(p model.Params, v float64) model.Params {
		p.SpecificHeat = v
		return p
	})
}

// Comparison pairs a constant-emissivity run with a variable-emissivity run
// of the same scenario, including where the two cooling curves cross.
type Comparison struct {
	Constant           *thermo.Trajectory
	Variable           *thermo.Trajectory
	ConstantMilestones analysis.Milestones
	VariableMilestones analysis.Milestones
	CrossTime          float64
	CrossTemp          float64
	Crosses            bool
}

// CompareEmissivity integrates the base scenario twice, once with its own
// constant emissivity and once with the variable provider, and locates the
// first intersection of the two cooling curves after the shared start.
func (s *Sweep) CompareEmissivity(ctx context.Context, variable model.Emissivity) (*Comparison, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	pConst := s.base
	pVar := s.base
	pVar.Emissivity = variable

	if err := pConst.Validate(); err != nil {
		return nil, err
	}
	if err := pVar.Validate(); err != nil {
		return nil, err
	}

	constTraj, err := solver.NewRK45().Solve(pConst.Derivative(), pConst.Initial, s.grid, s.tol)
	if err != nil {
		return nil, err
	}
	varTraj, err := solver.NewRK45().Solve(pVar.Derivative(), pVar.Initial, s.grid, s.tol)
	if err != nil {
		return nil, err
	}

	cmp := &Comparison{
		Constant:           constTraj,
		Variable:           varTraj,
		ConstantMilestones: analysis.ComputeMilestones(constTraj, pConst),
		VariableMilestones: analysis.ComputeMilestones(varTraj, pVar),
	}
	cmp.CrossTime, cmp.CrossTemp, cmp.Crosses = analysis.Intersection(constTraj, varTraj)

	return cmp, nil
}

func (s *Sweep) run(ctx context.Context, values []float64, apply func(model.Params, float64) model.Params) ([]Run, error) {
	runs := make([]Run, len(values))
	errs := make([]error, len(values))

	var wg sync.WaitGroup
	for i, v := range values {
		wg.Add(1)
		go func(idx int, val float64) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				errs[idx] = ctx.Err()
				return
			default:
			}

			p := apply(s.base, val)
			if err := p.Validate(); err != nil {
				errs[idx] = err
				return
			}

			traj, err := solver.NewRK45().Solve(p.Derivative(), p.Initial, s.grid, s.tol)
			if err != nil {
				errs[idx] = err
				return
			}

			runs[idx] = Run{
				Value:      val,
				Params:     p,
				Trajectory: traj,
				Milestones: analysis.ComputeMilestones(traj, p),
			}
		}(i, v)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return runs, nil
}
