// Package thermal describes the heated vessel: the physical parameters of the
// water, heater and insulated cylinder, and the constants derived from them.
//
//   - [Parameters]: configuration record with documented defaults
//   - [Derive]: pure function computing the heat-transfer coefficient and areas
//   - [Model]: validated parameters paired with their derived constants
//
// Derived constants never update on their own. After mutating geometry or
// insulation fields of a [Model], call [Model.Recompute]:
//
//	m, _ := thermal.New(thermal.DefaultParameters())
//	m.Params.PolyurethaneThickness = 0.002
//	if err := m.Recompute(); err != nil {
//	    return err
//	}
//	teq, err := m.EquilibriumTemperature()
package thermal
