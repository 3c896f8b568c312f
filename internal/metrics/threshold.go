package metrics

import (
	"fmt"

	"github.com/san-kum/thermosim/internal/sim"
)

// TimeToReach records the first time the water is at or above threshold.
// Value is -1 until that happens.
type TimeToReach struct {
	name      string
	threshold float64
	reached   float64
}

func NewTimeToReach(threshold float64) *TimeToReach {
	return &TimeToReach{
		name:      fmt.Sprintf("time_to_%g", threshold),
		threshold: threshold,
		reached:   -1,
	}
}

func (m *TimeToReach) Name() string { return m.name }

func (m *TimeToReach) Observe(s sim.Sample) {
	if m.reached < 0 && s.Temperature >= m.threshold {
		m.reached = s.Time
	}
}

func (m *TimeToReach) Value() float64 { return m.reached }

func (m *TimeToReach) Reset() { m.reached = -1 }
