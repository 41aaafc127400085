package sim

import (
	"math/rand"

	"github.com/iburimskiy/fireworks-show/internal/config"
	"github.com/iburimskiy/fireworks-show/internal/quality"
)

// Rocket ascends, detonates exactly once, then lingers until every
// fragment it owns has burned out.
//
// States: ascending (Exploded=false) → exploded → retired (removed by
// the owning phase once the fragment list drains).
type Rocket struct {
	Pos      Vec2
	Vy       float64
	TargetY  float64
	Exploded bool
	Grand    bool
	Hue      float64

	// Owned exclusively by this rocket; populated atomically at the
	// explosion tick. Capacity is kept across bursts when the slice is
	// recycled through a phase's rocket storage.
	Fragments []Fragment
}

// step advances one tick. The explosion triggers on the first tick
// where the rocket crosses its target altitude or the vertical
// velocity sign flips (apex), whichever comes first, never later.
// Fragments generated by the explosion are not advanced until the
// next tick.
func (r *Rocket) step(p quality.Preset, rng *rand.Rand, onExplode func(grand bool)) {
	if !r.Exploded {
		r.Pos.Y += r.Vy
		r.Vy += config.RocketGravity
		if r.Pos.Y <= r.TargetY || r.Vy >= 0 {
			r.explode(p, rng)
			if onExplode != nil {
				onExplode(r.Grand)
			}
		}
		return
	}

	for i := range r.Fragments {
		r.Fragments[i].step()
	}
	// Remove expired fragments at the end of the pass, in reverse so
	// the in-place removal cannot skip or corrupt indices. Survivor
	// order is preserved.
	for i := len(r.Fragments) - 1; i >= 0; i-- {
		if r.Fragments[i].Life <= 0 {
			r.Fragments = append(r.Fragments[:i], r.Fragments[i+1:]...)
		}
	}
}

// explode populates the fragment list exactly once. Grand bursts use
// the elevated count and, on presets that allow it, a secondary
// crackle sub-burst of small fast-fading sparks.
func (r *Rocket) explode(p quality.Preset, rng *rand.Rand) {
	r.Exploded = true

	count := p.FragmentsNormal
	sp := p.Normal
	if r.Grand {
		count = p.FragmentsGrand
		sp = p.Grand
	}

	need := count
	if r.Grand {
		need += p.CrackleCount
	}
	if cap(r.Fragments) >= need {
		r.Fragments = r.Fragments[:0]
	} else {
		r.Fragments = make([]Fragment, 0, need)
	}

	trailCap := 0
	if p.Trails {
		trailCap = p.TrailLen
	}

	for i := 0; i < count; i++ {
		size := 1.5 + rng.Float64()*1.5
		r.Fragments = append(r.Fragments,
			newFragment(r.Pos, sp, config.LifeDecay, r.Hue, size, trailCap, rng))
	}
	if r.Grand && p.CrackleCount > 0 {
		for i := 0; i < p.CrackleCount; i++ {
			size := 0.8 + rng.Float64()*0.6
			r.Fragments = append(r.Fragments,
				newFragment(r.Pos, p.Crackle, config.CrackleDecay, r.Hue, size, trailCap, rng))
		}
	}
}

// retired reports whether the rocket can be removed from the phase.
func (r *Rocket) retired() bool {
	return r.Exploded && len(r.Fragments) == 0
}
