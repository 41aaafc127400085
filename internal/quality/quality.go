// Package quality inspects coarse device signals once at startup and
// selects a fixed simulation preset. There is no error path: signals
// the host cannot report stay at their zero value and simply add
// nothing to the score, so missing data degrades toward Low.
package quality

import (
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"
)

type Level int

const (
	Low Level = iota
	Medium
	High
)

func (l Level) String() string {
	switch l {
	case Medium:
		return "medium"
	case High:
		return "high"
	default:
		return "low"
	}
}

// ParseLevel maps a user-supplied override to a Level. Unknown strings
// report ok=false and the caller should fall back to detection.
func ParseLevel(s string) (Level, bool) {
	switch s {
	case "low":
		return Low, true
	case "medium":
		return Medium, true
	case "high":
		return High, true
	}
	return Low, false
}

// Signals are the raw device capabilities fed to the scorer.
// Zero values mean "unknown".
type Signals struct {
	MemoryGB float64
	Cores    int
	ScreenW  int
	ScreenH  int
	HasGPU   bool
	Mobile   bool
}

// Collect fills in everything the host can report. Memory stays
// unknown: there is no portable way to ask for it, and guessing high
// would pick a preset the device cannot hold at 60 fps.
func Collect() Signals {
	s := Signals{
		Cores:  runtime.NumCPU(),
		HasGPU: true, // ebiten refuses to start without a graphics context
	}
	if m := ebiten.Monitor(); m != nil {
		s.ScreenW, s.ScreenH = m.Size()
	}
	return s
}

// Score is a pure deterministic sum over the signals.
func Score(s Signals) int {
	score := 0

	switch {
	case s.MemoryGB >= 8:
		score += 3
	case s.MemoryGB >= 4:
		score += 2
	case s.MemoryGB >= 2:
		score++
	}

	switch {
	case s.Cores >= 8:
		score += 3
	case s.Cores >= 4:
		score += 2
	case s.Cores >= 2:
		score++
	}

	area := s.ScreenW * s.ScreenH
	switch {
	case area >= 1920*1080:
		score += 2
	case area >= 1280*720:
		score++
	}

	if s.HasGPU {
		score += 2
	}
	if s.Mobile {
		score -= 2
	}
	return score
}

// Classify maps a score to a level.
func Classify(s Signals) Level {
	switch score := Score(s); {
	case score >= 8:
		return High
	case score >= 4:
		return Medium
	default:
		return Low
	}
}

// Detect is Collect followed by Classify.
func Detect() Level {
	return Classify(Collect())
}
