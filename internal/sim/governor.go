package sim

import (
	"time"

	"github.com/iburimskiy/fireworks-show/internal/config"
)

// Governor watches the exponentially smoothed frame interval and
// throttles future spawns when the average crosses the lag threshold.
// It never destroys entities; visual density is the only casualty.
// Hysteresis between the lag and recovery thresholds keeps it from
// flapping around 30 fps.
type Governor struct {
	avg    time.Duration
	primed bool
	lagged bool
}

// Sample feeds one measured frame interval.
func (g *Governor) Sample(frame time.Duration) {
	if !g.primed {
		g.avg = frame
		g.primed = true
	} else {
		g.avg += time.Duration(config.LagSmoothing * float64(frame-g.avg))
	}

	if g.avg > config.LagThreshold {
		g.lagged = true
	} else if g.avg < config.RecoverThreshold {
		g.lagged = false
	}
}

// Average returns the smoothed frame interval.
func (g *Governor) Average() time.Duration { return g.avg }

// Lagged reports whether throttling is in effect.
func (g *Governor) Lagged() bool { return g.lagged }

// Factor is the multiplier applied to both the spawn probability and
// the active-entity cap. It halves once per lag episode; it does not
// compound frame over frame.
func (g *Governor) Factor() float64 {
	if g.lagged {
		return config.LagFactor
	}
	return 1
}
