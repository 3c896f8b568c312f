package sim_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/thermosim/internal/sim"
	"github.com/san-kum/thermosim/internal/thermal"
)

func mustModel(mutate func(p *thermal.Parameters)) *thermal.Model {
	p := thermal.DefaultParameters()
	if mutate != nil {
		mutate(&p)
	}
	m, err := thermal.New(p)
	Expect(err).NotTo(HaveOccurred())
	return m
}

var _ = Describe("Simulator", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Context("with stochastic events", func() {
		var cfg sim.Config

		BeforeEach(func() {
			events := sim.DefaultEventConfig()
			events.Probability = 0.05
			cfg = sim.Config{Events: &events}
		})

		It("keeps the series aligned with the tick grid", func() {
			result, err := sim.New(mustModel(nil)).Run(ctx, cfg, sim.NewRand(3))
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Times).To(HaveLen(len(result.Temperatures)))
			for i, tm := range result.Times {
				Expect(tm).To(BeNumerically("==", float64(i)))
			}
		})

		It("never drives the water below zero", func() {
			model := mustModel(func(p *thermal.Parameters) {
				p.Power = 0
				p.InitialTemperature = 5
				p.AmbientTemperature = -10
			})
			cfg.Events.Floor = -50
			result, err := sim.New(model).Run(ctx, cfg, sim.NewRand(11))
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Events).NotTo(BeEmpty())
			for _, temp := range result.Temperatures {
				Expect(temp).To(BeNumerically(">=", 0))
			}
		})

		It("replays identically for the same seed", func() {
			model := mustModel(nil)
			a, err := sim.New(model).Run(ctx, cfg, sim.NewRand(99))
			Expect(err).NotTo(HaveOccurred())
			b, err := sim.New(model).Run(ctx, cfg, sim.NewRand(99))
			Expect(err).NotTo(HaveOccurred())
			Expect(b.Temperatures).To(Equal(a.Temperatures))
			Expect(b.Events).To(Equal(a.Events))
		})
	})

	Context("when stopping at boiling", func() {
		It("ends on the first sample at or above 100 °C", func() {
			result, err := sim.New(mustModel(nil)).Run(ctx, sim.Config{StopAtBoiling: true}, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Boiled).To(BeTrue())

			n := len(result.Temperatures)
			Expect(result.Temperatures[n-1]).To(BeNumerically(">=", thermal.BoilingPoint))
			for _, temp := range result.Temperatures[:n-1] {
				Expect(temp).To(BeNumerically("<", thermal.BoilingPoint))
			}
		})
	})

	Context("with ice", func() {
		It("conserves the combined water and ice mass", func() {
			ice := sim.DefaultIceConfig()
			result, err := sim.New(mustModel(nil)).Run(ctx, sim.Config{Ice: &ice}, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Ice).NotTo(BeNil())
			Expect(result.Ice.Mass + result.Ice.WaterMass).To(BeNumerically("~", 1.1, 1e-9))
		})
	})
})
