// Package render draws simulation state onto an ebiten image. It owns
// no simulation logic; every frame is a pure function of the phase
// state handed in.
package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/fireworks-show/internal/sim"
)

// Renderer keeps reusable buffers (glow geometry, trail scratch) so a
// frame allocates nothing in the steady state.
type Renderer struct {
	glowTex  *ebiten.Image
	glowSize float64

	verts    []ebiten.Vertex
	idx      []uint16
	trailBuf []sim.Vec2
}

func New() *Renderer {
	return &Renderer{
		glowTex:  makeGlowTexture(32),
		glowSize: 32,
	}
}

// DrawLoader renders the 2D phase. alpha scales the whole frame for
// the transition fade-out. Trail and glow passes are entirely skipped
// when the preset disables them.
func (r *Renderer) DrawLoader(dst *ebiten.Image, l *sim.Loader, alpha float64) {
	if alpha <= 0 {
		return
	}
	p := l.Preset
	r.resetGlow()

	for i := range l.Rockets {
		rk := &l.Rockets[i]
		if !rk.Exploded {
			r.drawAscent(dst, rk, alpha)
			continue
		}
		for j := range rk.Fragments {
			f := &rk.Fragments[j]
			cr, cg, cb := hsvToRGB(f.Hue, 0.85, 1.0)
			fade := alpha * f.Life

			if p.Trails && f.TrailLen() > 1 {
				r.drawTrail(dst, f, cr, cg, cb, fade)
			}

			vector.DrawFilledCircle(dst,
				float32(f.Pos.X), float32(f.Pos.Y), float32(f.Radius()),
				scaled(cr, cg, cb, fade), false)

			if p.Glow {
				r.pushGlow(f.Pos.X, f.Pos.Y, f.Radius()*6, cr, cg, cb, fade*0.5)
			}
		}
	}

	if p.Glow {
		r.flushGlow(dst)
	}
}

// DrawSky renders the continuous 3D phase with a slowly orbiting
// camera and simple perspective projection.
func (r *Renderer) DrawSky(dst *ebiten.Image, s *sim.Sky) {
	b := dst.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	cam := newCamera(w, h, s.Elapsed()*0.12)
	r.resetGlow()

	for i := range s.Rockets {
		rk := &s.Rockets[i]
		sx, sy, scale, ok := cam.project(rk.Pos)
		if !ok {
			continue
		}
		tx, ty, _, tok := cam.project(sim.Vec3{X: rk.Pos.X, Y: rk.Pos.Y - 1.6, Z: rk.Pos.Z})
		if tok {
			vector.StrokeLine(dst, float32(sx), float32(sy), float32(tx), float32(ty),
				1.5, color.RGBA{R: 255, G: 236, B: 200, A: 200}, false)
		}
		vector.DrawFilledCircle(dst, float32(sx), float32(sy), float32(1.5+2*scale),
			color.RGBA{R: 255, G: 248, B: 230, A: 255}, false)
	}

	for i := range s.Sparks {
		sp := &s.Sparks[i]
		sx, sy, scale, ok := cam.project(sp.Pos)
		if !ok {
			continue
		}
		cr, cg, cb := hsvToRGB(sp.Hue, 0.8, 1.0)
		rad := sp.Size * sp.Life * (1.0 + 2.5*scale)
		if rad < 0.5 {
			continue
		}
		vector.DrawFilledCircle(dst, float32(sx), float32(sy), float32(rad),
			scaled(cr, cg, cb, sp.Life), false)

		if s.Preset.Glow {
			r.pushGlow(sx, sy, rad*5, cr, cg, cb, sp.Life*0.45)
		}
	}

	if s.Preset.Glow {
		r.flushGlow(dst)
	}
}

func (r *Renderer) drawAscent(dst *ebiten.Image, rk *sim.Rocket, alpha float64) {
	tailY := rk.Pos.Y - rk.Vy*2.5 // motion is upward, tail trails below
	vector.StrokeLine(dst,
		float32(rk.Pos.X), float32(rk.Pos.Y),
		float32(rk.Pos.X), float32(tailY),
		1.5, scaled(1, 0.93, 0.78, alpha*0.8), false)
	vector.DrawFilledCircle(dst, float32(rk.Pos.X), float32(rk.Pos.Y), 2,
		scaled(1, 0.97, 0.9, alpha), false)
}

// drawTrail renders the ring as a connected line that fades from the
// oldest position to the newest.
func (r *Renderer) drawTrail(dst *ebiten.Image, f *sim.Fragment, cr, cg, cb, fade float64) {
	r.trailBuf = f.Trail(r.trailBuf[:0])
	n := len(r.trailBuf)
	for i := 1; i < n; i++ {
		a := fade * float64(i) / float64(n) * 0.6
		vector.StrokeLine(dst,
			float32(r.trailBuf[i-1].X), float32(r.trailBuf[i-1].Y),
			float32(r.trailBuf[i].X), float32(r.trailBuf[i].Y),
			1, scaled(cr, cg, cb, a), false)
	}
}

// camera is a yaw-orbiting perspective projection onto the screen.
type camera struct {
	sin, cos  float64
	cx, cy    float64
	focal     float64
	dist      float64
	camHeight float64
}

func newCamera(w, h, yaw float64) camera {
	return camera{
		sin:       math.Sin(yaw),
		cos:       math.Cos(yaw),
		cx:        w / 2,
		cy:        h * 0.55,
		focal:     h * 0.9,
		dist:      55,
		camHeight: 10,
	}
}

// project returns screen coordinates plus a depth-derived scale factor
// in (0,1]; ok is false behind the near plane.
func (c camera) project(v sim.Vec3) (sx, sy, scale float64, ok bool) {
	x := v.X*c.cos - v.Z*c.sin
	z := v.X*c.sin + v.Z*c.cos
	depth := z + c.dist
	if depth < 1 {
		return 0, 0, 0, false
	}
	f := c.focal / depth
	sx = c.cx + x*f
	sy = c.cy - (v.Y-c.camHeight)*f
	scale = c.dist / depth
	if scale > 1 {
		scale = 1
	}
	return sx, sy, scale, true
}

func scaled(cr, cg, cb, a float64) color.RGBA {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	return color.RGBA{
		R: uint8(cr * a * 255),
		G: uint8(cg * a * 255),
		B: uint8(cb * a * 255),
		A: uint8(a * 255),
	}
}

// hsvToRGB converts HSV (hue 0-360, s/v 0-1) to normalized RGB.
func hsvToRGB(h, s, v float64) (float64, float64, float64) {
	h = math.Mod(math.Mod(h, 360)+360, 360)
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return r + m, g + m, b + m
}
