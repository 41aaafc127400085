package audio

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/faiface/beep"

	"github.com/iburimskiy/fireworks-show/internal/config"
)

func TestRenderBurstShape(t *testing.T) {
	sr := beep.SampleRate(config.SampleRate)
	tests := []struct {
		name  string
		dur   time.Duration
		grand bool
	}{
		{"normal", config.BurstSoundDur, false},
		{"grand", config.GrandSoundDur, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(1))
			buf := renderBurst(sr, tt.dur, tt.grand, rng)

			if want := sr.N(tt.dur); len(buf) != want {
				t.Fatalf("buffer length = %d, want %d", len(buf), want)
			}
			for i, v := range buf {
				if v < -1 || v > 1 {
					t.Fatalf("sample %d = %f outside [-1, 1]", i, v)
				}
			}
			// Release envelope must land at silence.
			if tail := math.Abs(buf[len(buf)-1]); tail > 0.01 {
				t.Errorf("final sample = %f, want ~0", tail)
			}
			// And the attack must start from silence.
			if buf[0] != 0 {
				t.Errorf("first sample = %f, want 0", buf[0])
			}
		})
	}
}

func TestApplyEnvelopeRamps(t *testing.T) {
	sr := beep.SampleRate(1000)
	buf := make([]float64, 1000)
	for i := range buf {
		buf[i] = 1
	}
	applyEnvelope(buf, sr, 0.1, 0.5) // 100 attack samples, 500 release

	if buf[0] != 0 {
		t.Errorf("attack start = %f, want 0", buf[0])
	}
	if buf[50] <= buf[10] {
		t.Error("attack is not rising")
	}
	if buf[250] != 1 {
		t.Errorf("sustain = %f, want 1", buf[250])
	}
	if buf[900] >= buf[600] {
		t.Error("release is not falling")
	}
}

func TestMonoStreamerDrainsOnce(t *testing.T) {
	m := &monoStreamer{samples: []float64{0.5, -0.5, 1}, gain: 0.5}
	out := make([][2]float64, 2)

	n, ok := m.Stream(out)
	if n != 2 || !ok {
		t.Fatalf("first Stream = (%d, %v), want (2, true)", n, ok)
	}
	if out[0][0] != 0.25 || out[0][1] != 0.25 {
		t.Errorf("gain not applied to both channels: %v", out[0])
	}

	n, ok = m.Stream(out)
	if n != 1 || !ok {
		t.Fatalf("second Stream = (%d, %v), want (1, true)", n, ok)
	}
	if out[0][0] != 0.5 {
		t.Errorf("last sample = %f, want 0.5", out[0][0])
	}

	n, ok = m.Stream(out)
	if n != 0 || ok {
		t.Fatalf("drained streamer returned (%d, %v), want (0, false)", n, ok)
	}
	if err := m.Err(); err != nil {
		t.Fatalf("Err() = %v, want nil", err)
	}
}

func TestLevelToGain(t *testing.T) {
	tests := []struct {
		level float64
		want  float64
	}{
		{1, 0},
		{0.5, -1},
		{0.25, -2},
		{0, -10},
		{-3, -10},
	}
	for _, tt := range tests {
		if got := levelToGain(tt.level); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("levelToGain(%f) = %f, want %f", tt.level, got, tt.want)
		}
	}
}
