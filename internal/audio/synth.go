package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/faiface/beep"

	"github.com/iburimskiy/fireworks-show/internal/config"
)

// Explosion sounds are synthesized once at startup: white noise shaped
// by a fast attack and a long release, with a low sine thump mixed in
// for grand bursts. Buffers are mono float64 at unity gain.

func noise(n int, rng *rand.Rand) []float64 {
	buf := make([]float64, n)
	for i := range buf {
		buf[i] = rng.Float64()*2 - 1
	}
	return buf
}

func sine(freq float64, sr beep.SampleRate, n int) []float64 {
	buf := make([]float64, n)
	phaseInc := freq / float64(sr)
	phase := 0.0
	for i := range buf {
		buf[i] = math.Sin(2 * math.Pi * phase)
		phase += phaseInc
		if phase >= 1 {
			phase -= 1
		}
	}
	return buf
}

// applyEnvelope shapes buf in place with a linear attack and release.
func applyEnvelope(buf []float64, sr beep.SampleRate, attackSec, releaseSec float64) {
	total := len(buf)
	attack := int(attackSec * float64(sr))
	release := int(releaseSec * float64(sr))

	releaseStart := total - release
	if releaseStart < attack {
		releaseStart = attack
	}

	for i := range buf {
		vol := 1.0
		if i < attack && attack > 0 {
			vol = float64(i) / float64(attack)
		} else if i >= releaseStart && release > 0 {
			vol = float64(total-i) / float64(release)
		}
		buf[i] *= vol
	}
}

// mixInto adds b into a at the given gain; a must be at least as long.
func mixInto(a, b []float64, gain float64) {
	for i := range b {
		a[i] += b[i] * gain
	}
}

func clampBuffer(buf []float64) {
	for i, v := range buf {
		if v > 1 {
			buf[i] = 1
		} else if v < -1 {
			buf[i] = -1
		}
	}
}

// renderBurst pre-renders one explosion sound.
func renderBurst(sr beep.SampleRate, dur time.Duration, grand bool, rng *rand.Rand) []float64 {
	n := sr.N(dur)
	buf := noise(n, rng)
	applyEnvelope(buf, sr, config.BurstAttackSec, dur.Seconds()-config.BurstAttackSec)

	if grand {
		thump := sine(52, sr, n)
		applyEnvelope(thump, sr, config.BurstAttackSec, dur.Seconds()*0.7)
		for i := range buf {
			buf[i] *= 0.6
		}
		mixInto(buf, thump, 0.7)
	}

	clampBuffer(buf)
	return buf
}

// monoStreamer plays a pre-rendered mono buffer on both channels and
// drains exactly once.
type monoStreamer struct {
	samples []float64
	pos     int
	gain    float64
}

func (m *monoStreamer) Stream(out [][2]float64) (int, bool) {
	if m.pos >= len(m.samples) {
		return 0, false
	}
	n := 0
	for i := range out {
		if m.pos >= len(m.samples) {
			break
		}
		v := m.samples[m.pos] * m.gain
		out[i][0] = v
		out[i][1] = v
		m.pos++
		n++
	}
	return n, true
}

func (m *monoStreamer) Err() error { return nil }
