package config

import "time"

const (
	WindowWidth  = 1280
	WindowHeight = 720

	// Simulation advances in fixed steps; real frame time is
	// accumulated and drained in TickDt slices.
	TickRate = 60
	TickDt   = 1.0 / TickRate
)

// Loader (2D) physics, tuned in pixels per tick.
const (
	Gravity      = 0.055
	Drag         = 0.985
	LifeDecay    = 0.012
	CrackleDecay = 0.030

	RocketSpeedMin = 8.5
	RocketSpeedMax = 11.5
	RocketGravity  = 0.12
)

// Sky (3D) physics, in world units per tick. Burst speed ranges are
// the loader's scaled down to world space by SkySpeedScale.
const (
	SkyGravity    = 0.0125
	SkyDrag       = 0.982
	SkyLifeDecay  = 0.009
	SkySpeedScale = 0.22

	SkyRocketSpeedMin = 1.6
	SkyRocketSpeedMax = 2.3
	SkyRocketGravity  = 0.024
)

// Loader show script, in seconds of virtual simulation time.
const (
	BurstOneAt     = 0.4
	BurstTwoAt     = 1.4
	BurstThreeAt   = 2.4
	FinaleAt       = 3.6
	FinaleCount    = 5
	FinaleStagger  = 0.12
	TransitionAt   = 5.2
	TransitionFade = 1.2
	SkySeedBursts  = 6
)

// Lag governor. A smoothed frame interval above LagThreshold throttles
// future spawns; dropping below RecoverThreshold restores them.
const (
	LagThreshold     = 33300 * time.Microsecond
	RecoverThreshold = 28 * time.Millisecond
	LagSmoothing     = 0.12
	LagFactor        = 0.5
)

// Audio.
const (
	SampleRate      = 44100
	SpeakerBufferMs = 50

	BurstSoundDur  = 450 * time.Millisecond
	GrandSoundDur  = 900 * time.Millisecond
	BurstAttackSec = 0.004
	DefaultVolume  = 0.7
)
