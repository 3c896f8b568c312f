// Package sim integrates the water temperature of a heated vessel.
//
// A [Simulator] runs an explicit first-order energy balance once per tick:
//
//   - heater power minus ambient loss gives the energy available this tick
//   - an optional [IceConfig] adds a melting ice load, fed by convection from
//     the water and by heater energy
//   - an optional [EventConfig] injects random cooling excursions
//
// # Reproducibility
//
// Randomness comes only from the [RandSource] passed to [Simulator.Run]. With
// events enabled, each idle tick consumes exactly one uniform draw and each
// event onset two more (magnitude, then duration). Two runs with sources
// built by [NewRand] from the same seed produce identical results:
//
//	res, err := s.Run(ctx, sim.Config{Events: &ev}, sim.NewRand(42))
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. [Ensemble] repeats runs over
// consecutive seeds sequentially.
package sim
