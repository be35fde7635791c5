package sweep_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/radcool/internal/model"
	"github.com/san-kum/radcool/internal/sweep"
	"github.com/san-kum/radcool/internal/thermo"
)

var _ = Describe("Sweep", func() {
	var (
		base model.Params
		grid []float64
		sw   *sweep.Sweep
	)

	BeforeEach(func() {
		base = model.Default()
		grid = thermo.Grid(4000, 10)
		sw = sweep.New(base, grid, 1e-6)
	})

	Describe("Emissivity", func() {
		It("returns one run per value, in order", func() {
			values := []float64{0.2, 0.4, 0.6, 0.8, 1.0}
			runs, err := sw.Emissivity(context.Background(), values)
			Expect(err).NotTo(HaveOccurred())
			Expect(runs).To(HaveLen(len(values)))
			for i, r := range runs {
				Expect(r.Value).To(Equal(values[i]))
				Expect(r.Trajectory.Len()).To(Equal(len(grid)))
			}
		})

		It("strictly shortens the half-cooling time as emissivity rises", func() {
			runs, err := sw.Emissivity(context.Background(), []float64{0.2, 0.6, 1.0})
			Expect(err).NotTo(HaveOccurred())

			for _, r := range runs {
				Expect(r.Milestones.T50.Reached).To(BeTrue(),
					"emissivity %.1f never reached half cooling", r.Value)
			}
			for i := 1; i < len(runs); i++ {
				Expect(runs[i].Milestones.T50.Time).To(BeNumerically("<", runs[i-1].Milestones.T50.Time))
			}
		})

		It("does not mutate the base parameters", func() {
			_, err := sw.Emissivity(context.Background(), []float64{0.2, 1.0})
			Expect(err).NotTo(HaveOccurred())
			Expect(base.Emissivity.At(0)).To(Equal(0.8))
		})
	})

	Describe("Mass", func() {
		It("lengthens the half-cooling time as mass rises", func() {
			runs, err := sw.Mass(context.Background(), []float64{0.2, 0.6, 1.0})
			Expect(err).NotTo(HaveOccurred())

			for i := 1; i < len(runs); i++ {
				Expect(runs[i].Milestones.T50.Time).To(BeNumerically(">", runs[i-1].Milestones.T50.Time))
			}
		})

		It("rejects non-positive variants before integrating", func() {
			_, err := sw.Mass(context.Background(), []float64{1.0, 0})
			Expect(err).To(MatchError(thermo.ErrNonPositiveMass))
		})
	})

	Describe("SpecificHeat", func() {
		It("lengthens the half-cooling time as specific heat rises", func() {
			runs, err := sw.SpecificHeat(context.Background(), []float64{200, 400, 600})
			Expect(err).NotTo(HaveOccurred())

			for i := 1; i < len(runs); i++ {
				Expect(runs[i].Milestones.T50.Time).To(BeNumerically(">", runs[i-1].Milestones.T50.Time))
			}
		})
	})

	Describe("CompareEmissivity", func() {
		It("integrates both legs and locates where the curves cross", func() {
			cmp, err := sw.CompareEmissivity(context.Background(), model.Oxidized())
			Expect(err).NotTo(HaveOccurred())

			Expect(cmp.Constant.Len()).To(Equal(len(grid)))
			Expect(cmp.Variable.Len()).To(Equal(len(grid)))
			Expect(cmp.VariableMilestones.T50.Reached).To(BeTrue())

			// The oxidized surface radiates harder than 0.8 above ~433 K and
			// weaker below it, so its curve dips under the constant one and
			// is caught again within the horizon.
			Expect(cmp.Crosses).To(BeTrue())
			Expect(cmp.CrossTime).To(BeNumerically(">", 0))
			Expect(cmp.CrossTemp).To(BeNumerically("<", base.Initial))
			Expect(cmp.CrossTemp).To(BeNumerically(">", base.Ambient))
		})

		It("does not mutate the base parameters", func() {
			_, err := sw.CompareEmissivity(context.Background(), model.Oxidized())
			Expect(err).NotTo(HaveOccurred())
			Expect(base.Emissivity.At(0)).To(Equal(0.8))
		})

		It("surfaces the context error", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := sw.CompareEmissivity(ctx, model.Oxidized())
			Expect(err).To(MatchError(context.Canceled))
		})
	})

	Describe("cancellation", func() {
		It("surfaces the context error", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := sw.Emissivity(ctx, []float64{0.2, 0.4, 0.6})
			Expect(err).To(MatchError(context.Canceled))
		})
	})
})
