// Package audio owns the beep speaker: a looping soundtrack, the
// synthesized explosion bursts, and a single mute/volume gate over
// everything. Every failure here degrades to silence; the show never
// stops for a sound problem.
package audio

import (
	"errors"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/fireworks-show/internal/config"
)

type Player struct {
	enabled bool
	err     error

	sr    beep.SampleRate
	mix   beep.Mixer
	gate  *effects.Volume
	level float64
	muted bool

	burstNormal []float64
	burstGrand  []float64
}

// New initializes the speaker and pre-renders the burst sounds. On any
// failure the player stays disabled and records the error for the
// status line.
func New(muted bool) *Player {
	p := &Player{
		sr:    beep.SampleRate(config.SampleRate),
		level: config.DefaultVolume,
		muted: muted,
	}

	bufSize := p.sr.N(config.SpeakerBufferMs * time.Millisecond)
	if err := speaker.Init(p.sr, bufSize); err != nil {
		p.err = err
		return p
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	p.burstNormal = renderBurst(p.sr, config.BurstSoundDur, false, rng)
	p.burstGrand = renderBurst(p.sr, config.GrandSoundDur, true, rng)

	p.gate = &effects.Volume{
		Streamer: &p.mix,
		Base:     2,
		Volume:   levelToGain(p.level),
		Silent:   muted,
	}
	speaker.Play(p.gate)
	p.enabled = true
	return p
}

// Err returns the most recent non-fatal failure, if any.
func (p *Player) Err() error { return p.err }

// Enabled reports whether the speaker came up.
func (p *Player) Enabled() bool { return p.enabled }

// Explosion plays a synthesized burst. Safe to call from the render
// loop; it is a no-op when audio is unavailable.
func (p *Player) Explosion(grand bool) {
	if !p.enabled {
		return
	}
	samples := p.burstNormal
	gain := 0.5
	if grand {
		samples = p.burstGrand
		gain = 0.8
	}
	speaker.Lock()
	p.mix.Add(&monoStreamer{samples: samples, gain: gain})
	speaker.Unlock()
}

// PlayMusic decodes the file by extension (wav/mp3/flac), loops it
// forever, and mixes it under the volume gate. Decode errors disable
// music only.
func (p *Player) PlayMusic(path string) error {
	if !p.enabled {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		p.err = err
		return err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		_ = f.Close()
		p.err = errors.New("unsupported audio file: " + filepath.Ext(path))
		return p.err
	}
	if err != nil {
		_ = f.Close()
		p.err = err
		return err
	}

	var track beep.Streamer = beep.Loop(-1, streamer)
	if format.SampleRate != p.sr {
		track = beep.Resample(4, format.SampleRate, p.sr, track)
	}

	speaker.Lock()
	p.mix.Add(track)
	speaker.Unlock()
	return nil
}

// PickMusic opens a file dialog for the soundtrack. Cancel means no
// music and is not an error.
func (p *Player) PickMusic() error {
	if !p.enabled {
		return nil
	}
	path, err := zenity.SelectFile(
		zenity.Title("Choose a soundtrack"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		p.err = err
		return err
	}
	return p.PlayMusic(path)
}

// ToggleMute flips the single gate over music and bursts alike and
// returns the new state.
func (p *Player) ToggleMute() bool {
	p.muted = !p.muted
	p.applyGate()
	return p.muted
}

func (p *Player) Muted() bool { return p.muted }

// SetVolume clamps v to 0..1 and applies it. Zero is silence.
func (p *Player) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	p.level = v
	p.applyGate()
}

func (p *Player) Volume() float64 { return p.level }

func (p *Player) applyGate() {
	if !p.enabled {
		return
	}
	speaker.Lock()
	p.gate.Silent = p.muted || p.level <= 0
	p.gate.Volume = levelToGain(p.level)
	speaker.Unlock()
}

// levelToGain maps the linear 0..1 level onto the exponential Volume
// scale (base 2); level 1 is unity gain.
func levelToGain(level float64) float64 {
	if level <= 0 {
		return -10
	}
	return math.Log2(level)
}
