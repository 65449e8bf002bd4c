package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/floater/ecs"
	"github.com/milk9111/floater/prefabs"
	"golang.org/x/image/colornames"
)

type Game struct {
	frames int
	debug  bool
	paused bool

	sim     *simulation
	pause   *pauseUI
	watcher *prefabs.Watcher
}

func NewGame(levelPath string, debug, watch bool) (*Game, error) {
	sim, err := newSimulation(levelPath, &inputSystem{})
	if err != nil {
		return nil, err
	}
	sim.onGround = func(evt ecs.GroundedEvent) {
		if debug {
			log.Printf("%v grounded=%v", evt.Entity, evt.Grounded)
		}
	}

	g := &Game{debug: debug, sim: sim}
	g.pause = newPauseUI(g)

	if watch {
		w, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			// embedded prefabs still work, only hot reload is lost
			log.Printf("prefab hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++
	g.pollPrefabs()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
		if g.paused {
			g.pause.refresh(g.sim.world, g.sim.level.Player)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.sim.respawn(); err != nil {
			log.Printf("respawn: %v", err)
		}
	}

	if g.paused {
		g.pause.ui.Update()
		return nil
	}

	g.sim.step()
	return nil
}

// pollPrefabs retunes the player whenever its prefab changes on disk.
func (g *Game) pollPrefabs() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Changes:
			if !ok {
				g.watcher = nil
				return
			}
			if change.Name != filepath.Base(g.sim.level.Spec.Player) {
				continue
			}
			if err := g.sim.retune(); err != nil {
				log.Printf("hot reload %s: %v", change.Path, err)
				continue
			}
			log.Printf("hot reload: retuned player from %s", change.Path)
			g.pause.refresh(g.sim.world, g.sim.level.Player)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("prefab watcher: %v", err)
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	drawPhysics(g.sim.physics.Space(), g.sim.world, screen)
	if g.debug {
		drawProbes(g.sim.world, screen)
	}

	status := "airborne"
	if grounded, distance, ok := g.sim.probe(); grounded && ok {
		status = fmt.Sprintf("grounded %.1f", distance)
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS: %.2f  FPS: %.2f\n%s\nF1 probes  R respawn  Esc pause", ebiten.ActualTPS(), ebiten.ActualFPS(), status))

	if g.paused {
		g.pause.ui.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
