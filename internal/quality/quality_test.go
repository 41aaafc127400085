package quality

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		sig  Signals
		want Level
	}{
		{"no signals defaults low", Signals{}, Low},
		{"gpu alone is not enough", Signals{HasGPU: true}, Low},
		{"desktop", Signals{MemoryGB: 8, Cores: 8, ScreenW: 1920, ScreenH: 1080, HasGPU: true}, High},
		{"laptop", Signals{MemoryGB: 4, Cores: 4, ScreenW: 1280, ScreenH: 720, HasGPU: true}, Medium},
		{"mobile penalty", Signals{MemoryGB: 2, Cores: 4, ScreenW: 390, ScreenH: 844, HasGPU: true, Mobile: true}, Low},
		{"many cores small screen", Signals{Cores: 8, ScreenW: 1024, ScreenH: 600, HasGPU: true}, Medium},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.sig); got != tt.want {
				t.Errorf("Classify(%+v) = %v, want %v (score %d)", tt.sig, got, tt.want, Score(tt.sig))
			}
		})
	}
}

func TestScoreDeterministic(t *testing.T) {
	sig := Signals{MemoryGB: 4, Cores: 6, ScreenW: 1920, ScreenH: 1080, HasGPU: true}
	first := Score(sig)
	for i := 0; i < 10; i++ {
		if got := Score(sig); got != first {
			t.Fatalf("score changed between calls: %d != %d", got, first)
		}
	}
}

func TestPresetInvariants(t *testing.T) {
	low := ForLevel(Low)
	med := ForLevel(Medium)
	high := ForLevel(High)

	if low.Trails || low.Glow {
		t.Errorf("low preset must disable trails and glow: %+v", low)
	}
	if low.TrailLen != 0 {
		t.Errorf("low preset trail length = %d, want 0", low.TrailLen)
	}
	if low.CrackleCount != 0 {
		t.Errorf("low preset crackle count = %d, want 0", low.CrackleCount)
	}
	if med.CrackleCount == 0 || high.CrackleCount == 0 {
		t.Error("medium and high presets must enable the crackle sub-burst")
	}

	for _, pair := range [][2]Preset{{low, med}, {med, high}} {
		a, b := pair[0], pair[1]
		if a.FragmentsNormal >= b.FragmentsNormal || a.FragmentsGrand >= b.FragmentsGrand {
			t.Errorf("fragment counts must increase %v -> %v", a.Level, b.Level)
		}
		if a.MaxSparks >= b.MaxSparks {
			t.Errorf("spark cap must increase %v -> %v", a.Level, b.Level)
		}
		if a.SpawnChance >= b.SpawnChance {
			t.Errorf("spawn chance must increase %v -> %v", a.Level, b.Level)
		}
	}

	for _, p := range []Preset{low, med, high} {
		if p.FragmentsGrand <= p.FragmentsNormal {
			t.Errorf("%v: grand count %d must exceed normal %d", p.Level, p.FragmentsGrand, p.FragmentsNormal)
		}
		for _, sp := range []SpeedRange{p.Normal, p.Grand, p.Crackle} {
			if sp.Min <= 0 || sp.Min >= sp.Max {
				t.Errorf("%v: bad speed range %+v", p.Level, sp)
			}
		}
	}
}

func TestForLevelOutOfRange(t *testing.T) {
	if got := ForLevel(Level(99)); got.Level != Low {
		t.Errorf("out-of-range level mapped to %v, want low", got.Level)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"low", Low, true},
		{"medium", Medium, true},
		{"high", High, true},
		{"", Low, false},
		{"ultra", Low, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
