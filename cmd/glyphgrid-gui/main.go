// Command glyphgrid-gui runs a glyph world in an Ebiten window with the
// screen inspector on top. Arrows move the '@'; F1 toggles the inspector.
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/plus3/glyphgrid/internal/cli"
	"github.com/plus3/glyphgrid/screen"
	"github.com/plus3/glyphgrid/screen/debugui"
	debugui_ebiten "github.com/plus3/glyphgrid/screen/debugui/ebiten"
	"github.com/plus3/glyphgrid/screen/gfx"
)

type Game struct {
	screen   *screen.Screen
	world    *world
	renderer *gfx.Renderer
	overlay  *debugui_ebiten.Overlay
	log      *zap.Logger
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "TOML or YAML config file.")
	walkers := flag.Int("walkers", 40, "The number of wandering items.")
	seed := flag.Uint64("seed", 1, "Random seed.")
	flag.Parse()

	cfg, err := cli.Load(*configPath)
	if err != nil {
		return err
	}
	if *configPath == "" {
		cfg.Screen.Width, cfg.Screen.Height = 160, 90
	}
	log, err := cli.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	s, err := screen.New(cfg.Screen, screen.WithLogger(log))
	if err != nil {
		return err
	}
	w, err := newWorld(s, rand.New(rand.NewPCG(*seed, *seed+1)), *walkers)
	if err != nil {
		return err
	}

	src, err := gfx.NewMonoSource()
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}
	renderer := gfx.New(src)
	renderer.OnFailure = w.onFailure

	backend := debugui_ebiten.NewImguiBackend("glyphgrid", cfg.Screen.WindowWidth, cfg.Screen.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	game := &Game{
		screen:   s,
		world:    w,
		renderer: renderer,
		overlay: &debugui_ebiten.Overlay{
			Backend:   backend,
			Inspector: debugui.NewInspector(),
		},
		log: log,
	}
	game.overlay.Inspector.Browser.Select(w.player)

	log.Info("starting", zap.Int("width", cfg.Screen.Width), zap.Int("height", cfg.Screen.Height))
	return ebiten.RunGame(game)
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.overlay.Inspector.Hidden = !g.overlay.Inspector.Hidden
	}
	g.overlay.Update(g.screen)

	if !g.overlay.Inspector.Input.WantCaptureKeyboard {
		if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
			return ebiten.Termination
		}
		dx, dy := 0, 0
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
			dx = -1
		case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
			dx = 1
		case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
			dy = -1
		case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
			dy = 1
		}
		if dx != 0 || dy != 0 {
			if err := g.world.movePlayer(dx, dy); err != nil {
				g.log.Warn("move player", zap.Error(err))
			}
		}
	}

	if err := g.world.step(); err != nil {
		return err
	}
	g.world.follow()
	return nil
}

func (g *Game) Draw(dst *ebiten.Image) {
	if err := g.renderer.Frame(dst, g.screen); err != nil {
		g.log.Warn("render", zap.Error(err))
	}
	g.overlay.Draw(dst)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.overlay.Layout(outsideWidth, outsideHeight)
	if err := g.screen.SetWindowSize(outsideWidth, outsideHeight); err != nil {
		g.log.Debug("ignored window size", zap.Error(err))
	}
	return outsideWidth, outsideHeight
}
