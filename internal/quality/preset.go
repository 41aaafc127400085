package quality

// SpeedRange bounds the initial speed of fragments for one burst kind,
// in pixels per tick (the sky scales these into world units).
type SpeedRange struct {
	Min, Max float64
}

// Preset is the single configuration struct threaded through every
// tick function. Nothing downstream compares Level directly; all
// branching happens on the fields below.
type Preset struct {
	Level Level

	// Fragments emitted by one detonation.
	FragmentsNormal int
	FragmentsGrand  int

	// Crackle is the secondary sub-burst grand detonations get on the
	// richer presets. Zero disables it.
	CrackleCount int

	// Visual toggles. TrailLen is the bounded ring of recent positions
	// kept per fragment; zero means no trail is ever recorded.
	TrailLen int
	Trails   bool
	Glow     bool

	// Spawning.
	SpawnChance float64 // per-tick launch probability in the sky phase
	MaxRockets  int
	MaxSparks   int

	Normal  SpeedRange
	Grand   SpeedRange
	Crackle SpeedRange
}

var presets = [3]Preset{
	Low: {
		Level:           Low,
		FragmentsNormal: 40,
		FragmentsGrand:  90,
		CrackleCount:    0,
		TrailLen:        0,
		Trails:          false,
		Glow:            false,
		SpawnChance:     0.020,
		MaxRockets:      4,
		MaxSparks:       700,
		Normal:          SpeedRange{1.5, 6.5},
		Grand:           SpeedRange{2.5, 9.0},
		Crackle:         SpeedRange{0.5, 2.0},
	},
	Medium: {
		Level:           Medium,
		FragmentsNormal: 70,
		FragmentsGrand:  160,
		CrackleCount:    24,
		TrailLen:        5,
		Trails:          true,
		Glow:            true,
		SpawnChance:     0.035,
		MaxRockets:      8,
		MaxSparks:       1400,
		Normal:          SpeedRange{1.5, 6.5},
		Grand:           SpeedRange{2.5, 9.0},
		Crackle:         SpeedRange{0.5, 2.0},
	},
	High: {
		Level:           High,
		FragmentsNormal: 110,
		FragmentsGrand:  260,
		CrackleCount:    40,
		TrailLen:        10,
		Trails:          true,
		Glow:            true,
		SpawnChance:     0.050,
		MaxRockets:      12,
		MaxSparks:       2600,
		Normal:          SpeedRange{1.5, 6.5},
		Grand:           SpeedRange{2.5, 9.0},
		Crackle:         SpeedRange{0.5, 2.0},
	},
}

// ForLevel returns the fixed preset for a level.
func ForLevel(l Level) Preset {
	if l < Low || l > High {
		l = Low
	}
	return presets[l]
}
