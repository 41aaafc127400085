package sim

import (
	"math"
	"math/rand"

	"github.com/iburimskiy/fireworks-show/internal/config"
	"github.com/iburimskiy/fireworks-show/internal/quality"
)

// Fragment is a short-lived particle produced by a detonation.
// Life runs 1.0 → 0.0 and is monotonically non-increasing; the owning
// rocket removes the fragment exactly when life reaches zero.
type Fragment struct {
	Pos  Vec2
	Vel  Vec2
	Life float64
	Hue  float64
	Size float64

	decay float64

	// Bounded ring of recent positions, oldest overwritten first.
	trail     []Vec2
	trailNext int
}

// newFragment emits a fragment from origin with a speed drawn
// uniformly from sp and a hue jittered around the burst hue.
func newFragment(origin Vec2, sp quality.SpeedRange, decay, hue, size float64, trailCap int, rng *rand.Rand) Fragment {
	angle := rng.Float64() * 2 * math.Pi
	speed := sp.Min + rng.Float64()*(sp.Max-sp.Min)
	f := Fragment{
		Pos:   origin,
		Vel:   Vec2{math.Cos(angle) * speed, math.Sin(angle) * speed},
		Life:  1.0,
		Hue:   hue + rng.Float64()*30 - 15,
		Size:  size,
		decay: decay,
	}
	if trailCap > 0 {
		f.trail = make([]Vec2, 0, trailCap)
	}
	return f
}

// step advances one fixed tick: integrate, damp, fade.
func (f *Fragment) step() {
	if f.trail != nil {
		f.pushTrail(f.Pos)
	}

	f.Pos = f.Pos.Add(f.Vel)
	f.Vel.Y += config.Gravity
	f.Vel.X *= config.Drag
	f.Vel.Y *= config.Drag

	f.Life -= f.decay
	if f.Life < 0 {
		f.Life = 0
	}
}

func (f *Fragment) pushTrail(p Vec2) {
	if len(f.trail) < cap(f.trail) {
		f.trail = append(f.trail, p)
		return
	}
	f.trail[f.trailNext] = p
	f.trailNext++
	if f.trailNext >= len(f.trail) {
		f.trailNext = 0
	}
}

// Trail appends the recorded positions to dst in oldest→newest order
// and returns the result. dst is reused across fragments by the
// renderer to avoid per-frame allocation.
func (f *Fragment) Trail(dst []Vec2) []Vec2 {
	if len(f.trail) < cap(f.trail) {
		return append(dst, f.trail...)
	}
	dst = append(dst, f.trail[f.trailNext:]...)
	return append(dst, f.trail[:f.trailNext]...)
}

// TrailLen reports how many positions are recorded.
func (f *Fragment) TrailLen() int { return len(f.trail) }

// Radius is the render radius: fragments shrink as they fade.
func (f *Fragment) Radius() float64 {
	return f.Size * f.Life
}
