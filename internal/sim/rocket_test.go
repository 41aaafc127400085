package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/iburimskiy/fireworks-show/internal/config"
	"github.com/iburimskiy/fireworks-show/internal/quality"
)

func TestRocketExplodesExactlyOnce(t *testing.T) {
	p := quality.ForLevel(quality.Medium)
	rng := rand.New(rand.NewSource(11))

	// Unreachable target so only the apex (velocity sign flip) fires.
	r := Rocket{Pos: Vec2{100, 600}, Vy: -5, TargetY: -1e9}

	explosions := 0
	for i := 0; i < 400; i++ {
		r.step(p, rng, func(bool) { explosions++ })
	}
	if explosions != 1 {
		t.Fatalf("explosions = %d, want exactly 1", explosions)
	}
	if !r.Exploded {
		t.Fatal("rocket never marked exploded")
	}
}

func TestRocketExplodesOnFirstQualifyingTick(t *testing.T) {
	p := quality.ForLevel(quality.Low)
	rng := rand.New(rand.NewSource(5))

	r := Rocket{Pos: Vec2{100, 600}, Vy: -8, TargetY: 400}
	for i := 0; i < 400 && !r.Exploded; i++ {
		before := r
		r.step(p, rng, nil)
		if r.Exploded {
			// The explosion tick is the first one whose integration
			// result satisfies either condition.
			y := before.Pos.Y + before.Vy
			vy := before.Vy + config.RocketGravity
			if y > r.TargetY && vy < 0 {
				t.Fatalf("exploded with neither condition met: y=%f vy=%f", y, vy)
			}
			// And no earlier tick could have: the prior state did not
			// satisfy them, or it would have exploded then.
			if before.Exploded {
				t.Fatal("explosion reported twice")
			}
		}
	}
	if !r.Exploded {
		t.Fatal("rocket never exploded")
	}
}

func TestExplosionFragmentCounts(t *testing.T) {
	tests := []struct {
		name  string
		level quality.Level
		grand bool
	}{
		{"low normal", quality.Low, false},
		{"low grand", quality.Low, true},
		{"medium normal", quality.Medium, false},
		{"medium grand", quality.Medium, true},
		{"high grand", quality.High, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := quality.ForLevel(tt.level)
			rng := rand.New(rand.NewSource(21))
			r := Rocket{Pos: Vec2{200, 300}, Grand: tt.grand, Hue: 40}
			r.explode(p, rng)

			want := p.FragmentsNormal
			if tt.grand {
				want = p.FragmentsGrand + p.CrackleCount
			}
			if len(r.Fragments) != want {
				t.Errorf("fragment count = %d, want %d", len(r.Fragments), want)
			}
		})
	}
}

func TestBurstSpeedsWithinRange(t *testing.T) {
	tests := []struct {
		name  string
		level quality.Level
		grand bool
		seed  int64
	}{
		{"normal burst", quality.High, false, 1},
		{"grand burst low (no crackle)", quality.Low, true, 2},
		{"normal burst other seed", quality.Medium, false, 99},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := quality.ForLevel(tt.level)
			rng := rand.New(rand.NewSource(tt.seed))
			r := Rocket{Pos: Vec2{200, 300}, Grand: tt.grand}
			r.explode(p, rng)

			sp := p.Normal
			if tt.grand {
				sp = p.Grand
			}
			for i := range r.Fragments {
				v := r.Fragments[i].Vel
				speed := math.Hypot(v.X, v.Y)
				if speed < sp.Min-1e-9 || speed > sp.Max+1e-9 {
					t.Fatalf("fragment %d speed %f outside [%f, %f]", i, speed, sp.Min, sp.Max)
				}
			}
		})
	}
}

func TestLowPresetGrandBurstStaysPlain(t *testing.T) {
	p := quality.ForLevel(quality.Low)
	rng := rand.New(rand.NewSource(4))
	r := Rocket{Pos: Vec2{100, 200}, Grand: true}
	r.explode(p, rng)

	if len(r.Fragments) != p.FragmentsGrand {
		t.Errorf("grand burst at low emitted %d fragments, want %d (no crackle)",
			len(r.Fragments), p.FragmentsGrand)
	}
	for i := range r.Fragments {
		if r.Fragments[i].TrailLen() != 0 {
			t.Fatal("low preset fragment recorded a trail")
		}
	}
}

func TestFragmentRemovalAtZeroLife(t *testing.T) {
	p := quality.ForLevel(quality.Low)
	rng := rand.New(rand.NewSource(8))
	r := Rocket{Pos: Vec2{100, 200}}
	r.explode(p, rng)

	for i := 0; i < 500 && !r.retired(); i++ {
		r.step(p, rng, nil)
		for j := range r.Fragments {
			if r.Fragments[j].Life <= 0 {
				t.Fatalf("dead fragment survived the removal pass at tick %d", i)
			}
		}
	}
	if !r.retired() {
		t.Fatal("rocket never retired")
	}
}

func TestFragmentSliceReusedAcrossBursts(t *testing.T) {
	p := quality.ForLevel(quality.Medium)
	rng := rand.New(rand.NewSource(6))
	r := Rocket{Pos: Vec2{100, 200}, Grand: true}
	r.explode(p, rng)
	grown := cap(r.Fragments)

	// A recycled rocket detonating again must not reallocate.
	r.Exploded = false
	r.Grand = false
	r.explode(p, rng)
	if cap(r.Fragments) != grown {
		t.Errorf("fragment arena reallocated: cap %d -> %d", grown, cap(r.Fragments))
	}
}
