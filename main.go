package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/fireworks-show/internal/audio"
	"github.com/iburimskiy/fireworks-show/internal/config"
	"github.com/iburimskiy/fireworks-show/internal/quality"
	"github.com/iburimskiy/fireworks-show/internal/render"
	"github.com/iburimskiy/fireworks-show/internal/sim"
)

var (
	musicFlag   = flag.String("music", "", "soundtrack file (wav/mp3/flac)")
	qualityFlag = flag.String("quality", "", "force a preset: low, medium or high (default: detect)")
	seedFlag    = flag.Int64("seed", 0, "simulation seed (0 = current time)")
	muteFlag    = flag.Bool("mute", false, "start muted")
	pickFlag    = flag.Bool("pick-music", false, "open a soundtrack picker on start")
)

type game struct {
	preset quality.Preset

	loader   *sim.Loader
	sky      *sim.Sky
	renderer *render.Renderer
	snd      *audio.Player

	started bool
	inSky   bool
	last    time.Time

	prevKey map[ebiten.Key]bool
	touches []ebiten.TouchID
	w, h    int
	lastErr error
}

func newGame(preset quality.Preset, seed int64) *game {
	g := &game{
		preset:   preset,
		loader:   sim.NewLoader(preset, config.WindowWidth, config.WindowHeight, seed),
		sky:      sim.NewSky(preset, seed+1),
		renderer: render.New(),
		snd:      audio.New(*muteFlag),
		prevKey:  map[ebiten.Key]bool{},
		w:        config.WindowWidth,
		h:        config.WindowHeight,
	}
	g.loader.OnExplosion = g.snd.Explosion
	g.sky.OnExplosion = g.snd.Explosion
	if err := g.snd.Err(); err != nil {
		g.lastErr = err
	}
	return g
}

func (g *game) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if justPressed(ebiten.KeyM) {
		g.snd.ToggleMute()
	}
	if justPressed(ebiten.KeyArrowUp) {
		g.snd.SetVolume(g.snd.Volume() + 0.1)
	}
	if justPressed(ebiten.KeyArrowDown) {
		g.snd.SetVolume(g.snd.Volume() - 0.1)
	}

	g.touches = inpututil.AppendJustPressedTouchIDs(g.touches[:0])
	gesture := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) || len(g.touches) > 0
	if gesture && !g.started {
		g.started = true
		g.loader.Start()
		g.startMusic()
	}

	now := time.Now()
	dt := 0.0
	if !g.last.IsZero() {
		dt = now.Sub(g.last).Seconds()
	}
	g.last = now
	if dt > 0.25 {
		dt = 0.25 // stalls (window drag, suspend) must not fast-forward
	}

	if !g.inSky {
		g.loader.Advance(dt)
		if g.loader.Finished() {
			g.inSky = true
			g.sky.Seed(config.SkySeedBursts)
		}
	} else {
		g.sky.Advance(dt)
	}
	return nil
}

// startMusic runs once with the first gesture, mirroring the autoplay
// gate: sound may only begin after user input.
func (g *game) startMusic() {
	var err error
	switch {
	case *musicFlag != "":
		err = g.snd.PlayMusic(*musicFlag)
	case *pickFlag:
		err = g.snd.PickMusic()
	}
	if err != nil {
		g.lastErr = err // music is off; the show goes on
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 6, G: 7, B: 16, A: 255})

	if !g.inSky {
		g.renderer.DrawLoader(screen, g.loader, 1-g.loader.FadeProgress())
	} else {
		g.renderer.DrawSky(screen, g.sky)
	}

	ebitenutil.DebugPrintAt(screen, g.statusLine(), 12, 12)
}

func (g *game) statusLine() string {
	var status string
	switch {
	case !g.started:
		status = "Click or tap to start the show"
	case !g.inSky:
		status = fmt.Sprintf("quality: %s | rockets: %d", g.preset.Level, len(g.loader.Rockets))
	default:
		status = fmt.Sprintf("quality: %s | sparks: %d | avg frame: %.1fms",
			g.preset.Level, len(g.sky.Sparks), g.sky.Gov.Average().Seconds()*1000)
		if g.sky.Gov.Lagged() {
			status += " | throttled"
		}
	}
	if g.snd.Muted() {
		status += " | muted (M)"
	}
	if g.lastErr != nil {
		status += " | " + g.lastErr.Error()
	}
	return status
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.h {
		g.w, g.h = outsideWidth, outsideHeight
		g.loader.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

func main() {
	flag.Parse()

	level, ok := quality.ParseLevel(*qualityFlag)
	if !ok {
		level = quality.Detect()
	}
	preset := quality.ForLevel(level)

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("Fireworks - click to start, M: mute, Esc/Q: quit")
	ebiten.SetTPS(config.TickRate)

	g := newGame(preset, seed)
	log.Printf("quality preset: %s (seed %d)", preset.Level, seed)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
