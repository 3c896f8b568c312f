package sim

import "github.com/charmbracelet/log"

// ProgressObserver logs the water temperature once per interval of simulated
// time.
type ProgressObserver struct {
	logger   *log.Logger
	interval float64
	bucket   int
}

func NewProgressObserver(logger *log.Logger, interval float64) *ProgressObserver {
	return &ProgressObserver{logger: logger, interval: interval}
}

func (p *ProgressObserver) OnStep(s Sample) {
	if p.interval <= 0 {
		return
	}
	if s.Step == 0 {
		p.bucket = 0
		return
	}
	if b := int(s.Time / p.interval); b > p.bucket {
		p.bucket = b
		p.logger.Info("progress", "time", s.Time, "temperature", s.Temperature)
	}
}
