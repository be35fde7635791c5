package solver

import (
	"math"

	"github.com/san-kum/radcool/internal/thermo"
)

// Dormand-Prince coefficients (RK45)
var (
	a2 = 1.0 / 5.0
	a3 = 3.0 / 10.0
	a4 = 4.0 / 5.0
	a5 = 8.0 / 9.0

	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

// RK45 is an adaptive embedded Runge-Kutta 4(5) solver. The internal step is
// chosen by local error control against the requested relative tolerance;
// reporting-grid samples are filled in by cubic Hermite interpolation over
// each accepted step, so a coarse grid never coarsens the integration.
type RK45 struct {
	safety   float64
	minScale float64
	maxScale float64
	minStep  float64
	maxSteps int
}

func NewRK45() *RK45 {
	return &RK45{
		safety:   0.9,
		minScale: 0.2,
		maxScale: 10.0,
		minStep:  1e-10,
		maxSteps: 100000,
	}
}

func (r *RK45) Solve(f thermo.DerivFunc, T0 float64, grid []float64, tol float64) (*thermo.Trajectory, error) {
	if len(grid) == 0 {
		return nil, thermo.ErrEmptyGrid
	}
	if tol <= 0 {
		tol = 1e-6
	}

	out := &thermo.Trajectory{
		Times: make([]float64, 0, len(grid)),
		Temps: make([]float64, 0, len(grid)),
	}

	t := grid[0]
	y := T0
	out.Times = append(out.Times, t)
	out.Temps = append(out.Temps, y)

	tEnd := grid[len(grid)-1]
	if len(grid) == 1 {
		return out, nil
	}

	dt := (tEnd - t) / 100.0
	gi := 1
	steps := 0
	k1 := f(t, y)

	for gi < len(grid) {
		if steps >= r.maxSteps {
			return nil, &thermo.IntegrationError{Time: t, Steps: steps, Wrapped: thermo.ErrToleranceNotMet}
		}
		if dt < r.minStep {
			return nil, &thermo.IntegrationError{Time: t, Steps: steps, Wrapped: thermo.ErrStepTooSmall}
		}
		steps++

		k2 := f(t+a2*dt, y+dt*b21*k1)
		k3 := f(t+a3*dt, y+dt*(b31*k1+b32*k2))
		k4 := f(t+a4*dt, y+dt*(b41*k1+b42*k2+b43*k3))
		k5 := f(t+a5*dt, y+dt*(b51*k1+b52*k2+b53*k3+b54*k4))
		k6 := f(t+dt, y+dt*(b61*k1+b62*k2+b63*k3+b64*k4+b65*k5))

		yNew := y + dt*(c1*k1+c3*k3+c4*k4+c5*k5+c6*k6)
		k7 := f(t+dt, yNew)

		errEst := dt * (dc1*k1 + dc3*k3 + dc4*k4 + dc5*k5 + dc6*k6 + dc7*k7)
		scale := math.Abs(y) + math.Abs(dt*k1) + 1e-10
		errRatio := math.Abs(errEst) / scale / tol

		if math.IsNaN(errRatio) || math.IsNaN(yNew) || math.IsInf(yNew, 0) {
			// An unusable stage evaluation cannot pass error control.
			dt *= r.minScale
			continue
		}

		if errRatio > 1 {
			shrink := math.Max(r.minScale, r.safety*math.Pow(errRatio, -0.25))
			dt *= shrink
			continue
		}

		// Step accepted: emit every grid point the step covered.
		for gi < len(grid) && grid[gi] <= t+dt+1e-12 {
			out.Times = append(out.Times, grid[gi])
			out.Temps = append(out.Temps, hermite(t, y, k1, t+dt, yNew, k7, grid[gi]))
			gi++
		}

		t += dt
		y = yNew
		k1 = k7 // FSAL: last stage is the next step's first

		if errRatio > 0 {
			dt *= math.Min(r.maxScale, r.safety*math.Pow(errRatio, -0.2))
		} else {
			dt *= r.maxScale
		}
	}

	return out, nil
}

// hermite evaluates the cubic Hermite interpolant of the accepted step
// [t0, t1] with endpoint values y0, y1 and slopes d0, d1 at tq.
func hermite(t0, y0, d0, t1, y1, d1, tq float64) float64 {
	h := t1 - t0
	if h == 0 {
		return y1
	}
	s := (tq - t0) / h
	s2 := s * s
	s3 := s2 * s

	h00 := 2*s3 - 3*s2 + 1
	h10 := s3 - 2*s2 + s
	h01 := -2*s3 + 3*s2
	h11 := s3 - s2

	return h00*y0 + h10*h*d0 + h01*y1 + h11*h*d1
}
