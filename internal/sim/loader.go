package sim

import (
	"math/rand"

	"github.com/iburimskiy/fireworks-show/internal/config"
	"github.com/iburimskiy/fireworks-show/internal/quality"
)

// Loader is the 2D opening phase: a scripted volley of three bursts of
// increasing magnitude, a staggered grand finale cluster, and a
// one-shot transition that hands over to the sky phase.
//
// All state lives here; the loader owns its rocket list exclusively
// and is advanced only from the render loop. Time is virtual: tests
// drive Advance with synthetic deltas instead of wall clocks.
type Loader struct {
	Preset quality.Preset
	W, H   float64

	Rockets []Rocket

	// OnExplosion, when set, is called once per detonation at the tick
	// it happens. Used to fire the synthesized burst sound.
	OnExplosion func(grand bool)

	rng     *rand.Rand
	sched   Schedule
	pending []Rocket
	elapsed float64
	acc     float64

	started bool
	done    bool
	fade    float64
}

func NewLoader(p quality.Preset, w, h float64, seed int64) *Loader {
	return &Loader{
		Preset:  p,
		W:       w,
		H:       h,
		Rockets: make([]Rocket, 0, p.MaxRockets),
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Resize tracks the live viewport; in-flight entities keep their
// coordinates, only future launches use the new bounds.
func (l *Loader) Resize(w, h float64) {
	l.W, l.H = w, h
}

// Start builds the show script and begins the sequence. It is the
// idempotency guard for the start gesture: only the first call does
// anything, a rapid double trigger is a no-op.
func (l *Loader) Start() bool {
	if l.started {
		return false
	}
	l.started = true
	l.script()
	return true
}

func (l *Loader) Started() bool { return l.started }

// Done reports that the transition event has fired.
func (l *Loader) Done() bool { return l.done }

// FadeProgress runs 0→1 after the transition event while the loader
// fades out.
func (l *Loader) FadeProgress() float64 { return l.fade }

// Finished reports that the fade is complete and the sky phase should
// take over.
func (l *Loader) Finished() bool {
	return l.done && l.fade >= 1
}

// Elapsed is virtual show time in seconds.
func (l *Loader) Elapsed() float64 { return l.elapsed }

// script lays out the fixed schedule: three bursts of increasing
// magnitude, the finale cluster, then the transition.
func (l *Loader) script() {
	l.sched.At(config.BurstOneAt, func() {
		l.Launch(l.spanX(0.20, 0.40), 0.48, false)
	})
	l.sched.At(config.BurstTwoAt, func() {
		l.Launch(l.spanX(0.60, 0.80), 0.38, false)
	})
	l.sched.At(config.BurstThreeAt, func() {
		l.Launch(l.spanX(0.40, 0.60), 0.30, true)
	})
	for i := 0; i < config.FinaleCount; i++ {
		at := config.FinaleAt + float64(i)*config.FinaleStagger
		l.sched.At(at, func() {
			l.Launch(l.spanX(0.30, 0.70), 0.25, true)
		})
	}
	l.sched.At(config.TransitionAt, func() {
		l.done = true
	})
}

func (l *Loader) spanX(lo, hi float64) float64 {
	return l.W * (lo + l.rng.Float64()*(hi-lo))
}

// Launch queues a rocket rising from the bottom edge toward
// targetFrac of the viewport height. The rocket is admitted at the
// end of the current tick, after existing entities have advanced.
func (l *Loader) Launch(x, targetFrac float64, grand bool) {
	speed := config.RocketSpeedMin + l.rng.Float64()*(config.RocketSpeedMax-config.RocketSpeedMin)
	l.pending = append(l.pending, Rocket{
		Pos:     Vec2{x, l.H},
		Vy:      -speed,
		TargetY: l.H * (targetFrac + l.rng.Float64()*0.08),
		Grand:   grand,
		Hue:     l.rng.Float64() * 360,
	})
}

// Advance drains real frame time into fixed simulation ticks.
func (l *Loader) Advance(dt float64) {
	if !l.started {
		return
	}
	l.acc += dt
	for l.acc >= config.TickDt {
		l.acc -= config.TickDt
		l.tick()
	}
}

// tick order: schedule, existing entities, removal in reverse,
// admission of pending spawns, fade.
func (l *Loader) tick() {
	l.elapsed += config.TickDt
	l.sched.Run(l.elapsed)

	for i := range l.Rockets {
		l.Rockets[i].step(l.Preset, l.rng, l.OnExplosion)
	}
	for i := len(l.Rockets) - 1; i >= 0; i-- {
		if l.Rockets[i].retired() {
			l.Rockets = append(l.Rockets[:i], l.Rockets[i+1:]...)
		}
	}

	for len(l.pending) > 0 && len(l.Rockets) < l.Preset.MaxRockets {
		l.Rockets = append(l.Rockets, l.pending[0])
		l.pending = l.pending[1:]
	}

	if l.done {
		l.fade += config.TickDt / config.TransitionFade
		if l.fade > 1 {
			l.fade = 1
		}
	}
}
