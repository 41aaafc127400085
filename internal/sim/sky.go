package sim

import (
	"math"
	"math/rand"
	"time"

	"github.com/iburimskiy/fireworks-show/internal/config"
	"github.com/iburimskiy/fireworks-show/internal/quality"
)

// Spark is the sky-phase counterpart of a Fragment: a point-cloud
// particle with the same gravity/drag/fade contract, no trail.
type Spark struct {
	Pos  Vec3
	Vel  Vec3
	Life float64
	Hue  float64
	Size float64
}

func (s *Spark) step() {
	s.Pos = s.Pos.Add(s.Vel)
	s.Vel.Y -= config.SkyGravity
	s.Vel = s.Vel.Scale(config.SkyDrag)
	s.Life -= config.SkyLifeDecay
	if s.Life < 0 {
		s.Life = 0
	}
}

// SkyRocket ascends from the ground plane and detonates into sparks.
type SkyRocket struct {
	Pos     Vec3
	Vel     Vec3
	TargetY float64
	Hue     float64
	Grand   bool
}

// Sky is the continuous 3D phase. Rockets launch at random with a
// per-tick probability; a lag governor halves both that probability
// and the spark cap whenever the smoothed frame interval crosses the
// lag threshold. Existing entities are never culled to relieve load.
type Sky struct {
	Preset quality.Preset
	Gov    Governor

	// Half-extent of the launch area on the ground plane.
	Bounds float64

	Rockets []SkyRocket
	Sparks  []Spark

	OnExplosion func(grand bool)

	rng           *rand.Rand
	pendingSparks []Spark
	elapsed       float64
	acc           float64
}

func NewSky(p quality.Preset, seed int64) *Sky {
	return &Sky{
		Preset: p,
		Bounds: 30,
		Sparks: make([]Spark, 0, p.MaxSparks),
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Elapsed is virtual phase time in seconds (drives the orbiting
// camera).
func (s *Sky) Elapsed() float64 { return s.elapsed }

// EffectiveChance is the per-tick launch probability after throttling.
func (s *Sky) EffectiveChance() float64 {
	return s.Preset.SpawnChance * s.Gov.Factor()
}

// EffectiveCap is the spark cap after throttling.
func (s *Sky) EffectiveCap() int {
	return int(float64(s.Preset.MaxSparks) * s.Gov.Factor())
}

// Seed detonates n bursts immediately, used once when the loader
// hands over so the sky does not open empty.
func (s *Sky) Seed(n int) {
	for i := 0; i < n; i++ {
		pos := Vec3{
			X: (s.rng.Float64()*2 - 1) * s.Bounds * 0.7,
			Y: 12 + s.rng.Float64()*10,
			Z: (s.rng.Float64()*2 - 1) * s.Bounds * 0.7,
		}
		s.burst(pos, s.rng.Float64()*360, i == n-1)
	}
	s.admitSparks()
}

// Advance drains real frame time into fixed ticks and feeds the
// governor with the measured interval.
func (s *Sky) Advance(dt float64) {
	s.Gov.Sample(time.Duration(dt * float64(time.Second)))
	s.acc += dt
	for s.acc >= config.TickDt {
		s.acc -= config.TickDt
		s.tick()
	}
}

func (s *Sky) tick() {
	s.elapsed += config.TickDt

	for i := range s.Rockets {
		r := &s.Rockets[i]
		r.Pos = r.Pos.Add(r.Vel)
		r.Vel.Y -= config.SkyRocketGravity
	}
	for i := range s.Sparks {
		s.Sparks[i].step()
	}

	// Detonations queue their sparks; removal runs first, in reverse,
	// then the queued sparks are admitted.
	for i := len(s.Rockets) - 1; i >= 0; i-- {
		r := &s.Rockets[i]
		if r.Pos.Y >= r.TargetY || r.Vel.Y <= 0 {
			s.burst(r.Pos, r.Hue, r.Grand)
			s.Rockets = append(s.Rockets[:i], s.Rockets[i+1:]...)
		}
	}
	for i := len(s.Sparks) - 1; i >= 0; i-- {
		if s.Sparks[i].Life <= 0 {
			s.Sparks = append(s.Sparks[:i], s.Sparks[i+1:]...)
		}
	}
	s.admitSparks()

	s.maybeLaunch()
}

// maybeLaunch rolls the (possibly throttled) spawn probability. Spawns
// are suppressed while the spark population sits above the throttled
// cap; nothing already in flight is touched.
func (s *Sky) maybeLaunch() {
	if len(s.Rockets) >= s.Preset.MaxRockets {
		return
	}
	if len(s.Sparks) >= s.EffectiveCap() {
		return
	}
	if s.rng.Float64() >= s.EffectiveChance() {
		return
	}

	speed := config.SkyRocketSpeedMin + s.rng.Float64()*(config.SkyRocketSpeedMax-config.SkyRocketSpeedMin)
	s.Rockets = append(s.Rockets, SkyRocket{
		Pos: Vec3{
			X: (s.rng.Float64()*2 - 1) * s.Bounds,
			Z: (s.rng.Float64()*2 - 1) * s.Bounds,
		},
		Vel: Vec3{
			X: (s.rng.Float64()*2 - 1) * 0.12,
			Y: speed,
			Z: (s.rng.Float64()*2 - 1) * 0.12,
		},
		TargetY: 14 + s.rng.Float64()*10,
		Hue:     s.rng.Float64() * 360,
		Grand:   s.rng.Float64() < 0.15,
	})
}

// burst queues a spherical detonation's sparks for admission at the
// end of the tick.
func (s *Sky) burst(origin Vec3, hue float64, grand bool) {
	count := s.Preset.FragmentsNormal
	sp := s.Preset.Normal
	if grand {
		count = s.Preset.FragmentsGrand
		sp = s.Preset.Grand
	}

	for i := 0; i < count; i++ {
		// Uniform direction on the sphere.
		z := s.rng.Float64()*2 - 1
		theta := s.rng.Float64() * 2 * math.Pi
		r := math.Sqrt(1 - z*z)
		dir := Vec3{r * math.Cos(theta), z, r * math.Sin(theta)}

		speed := (sp.Min + s.rng.Float64()*(sp.Max-sp.Min)) * config.SkySpeedScale
		s.pendingSparks = append(s.pendingSparks, Spark{
			Pos:  origin,
			Vel:  dir.Scale(speed),
			Life: 1.0,
			Hue:  hue + s.rng.Float64()*30 - 15,
			Size: 1.0 + s.rng.Float64(),
		})
	}
	if s.OnExplosion != nil {
		s.OnExplosion(grand)
	}
}

func (s *Sky) admitSparks() {
	s.Sparks = append(s.Sparks, s.pendingSparks...)
	s.pendingSparks = s.pendingSparks[:0]
}
