package render

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// makeGlowTexture builds a small radial falloff sprite used for the
// additive glow pass.
func makeGlowTexture(size int) *ebiten.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	cx, cy := float64(size)/2, float64(size)/2
	maxR := cx
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)-cx, float64(y)-cy)
			t := 1.0 - d/maxR
			if t < 0 {
				t = 0
			}
			a := uint8(t * t * 255)
			img.SetRGBA(x, y, color.RGBA{R: a, G: a, B: a, A: a})
		}
	}
	return ebiten.NewImageFromImage(img)
}

func (r *Renderer) resetGlow() {
	r.verts = r.verts[:0]
	r.idx = r.idx[:0]
}

// pushGlow queues one additive glow quad centered on (x, y).
func (r *Renderer) pushGlow(x, y, size, cr, cg, cb, a float64) {
	if a <= 0 || size <= 0 {
		return
	}
	half := float32(size / 2)
	fx, fy := float32(x), float32(y)
	tex := float32(r.glowSize)

	base := uint16(len(r.verts))
	corners := [4]struct{ dx, dy, sx, sy float32 }{
		{-half, -half, 0, 0},
		{half, -half, tex, 0},
		{-half, half, 0, tex},
		{half, half, tex, tex},
	}
	for _, c := range corners {
		r.verts = append(r.verts, ebiten.Vertex{
			DstX: fx + c.dx, DstY: fy + c.dy,
			SrcX: c.sx, SrcY: c.sy,
			ColorR: float32(cr * a), ColorG: float32(cg * a),
			ColorB: float32(cb * a), ColorA: float32(a),
		})
	}
	r.idx = append(r.idx, base, base+1, base+2, base+1, base+3, base+2)
}

// flushGlow draws every queued quad in one additive batch.
func (r *Renderer) flushGlow(dst *ebiten.Image) {
	if len(r.verts) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{Blend: ebiten.BlendLighter}
	dst.DrawTriangles(r.verts, r.idx, r.glowTex, op)
}
