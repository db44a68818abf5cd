package game

import (
	"errors"
	"fmt"

	"github.com/cbodonnell/sceneflow/client/engine"
	"github.com/cbodonnell/sceneflow/client/flow"
	"github.com/cbodonnell/sceneflow/client/input"
	"github.com/cbodonnell/sceneflow/client/scenes"
	"github.com/cbodonnell/sceneflow/pkg/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Game implements ebiten.Game interface, which has Update, Draw and Layout methods.
type Game struct {
	// debug is a boolean value indicating whether the debug overlay is shown.
	debug bool
	// engine owns the drawing surface and the loading indicator.
	engine *engine.Engine
	// controller owns the active scene.
	controller *flow.Controller
}

type NewGameOptions struct {
	Debug      bool
	Engine     *engine.Engine
	Controller *flow.Controller
}

func NewGame(opts NewGameOptions) (*Game, error) {
	if opts.Engine == nil {
		return nil, fmt.Errorf("engine is required")
	}
	if opts.Controller == nil {
		return nil, fmt.Errorf("controller is required")
	}
	return &Game{
		debug:      opts.Debug,
		engine:     opts.Engine,
		controller: opts.Controller,
	}, nil
}

func (g *Game) Update() error {
	if input.IsDebugJustPressed() {
		g.debug = !g.debug
	}

	g.checkTransitionErrors()

	// The active scene may be swapped out by a transition between these two
	// calls, in which case it reports itself disposed and is skipped this tick.
	scene := g.controller.CurrentRenderTarget()
	if err := scene.Update(); err != nil && !errors.Is(err, scenes.ErrSceneDisposed) {
		return fmt.Errorf("failed to update scene: %v", err)
	}

	return nil
}

// checkTransitionErrors logs the failures of transitions triggered by the GUI.
// A failed transition leaves the previous scene active, so none of them is fatal.
func (g *Game) checkTransitionErrors() {
	for {
		select {
		case err := <-g.controller.Errors():
			log.Error("Scene flow error: %v", err)
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.controller.Render(func(state flow.State, scene scenes.Scene) {
		switch state {
		case flow.StateStart, flow.StateCutScene, flow.StateGame, flow.StateLose:
			scene.Draw(screen)
		default:
			// unknown states render nothing
		}
	})
	g.engine.DrawLoadingUI(screen)
	if g.debug {
		g.drawDebugOverlay(screen)
	}
}

func (g *Game) drawDebugOverlay(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n   FPS: %0.1f", ebiten.ActualFPS()))
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n\n   TPS: %0.1f", ebiten.ActualTPS()))
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n\n\n   State: %s", g.controller.CurrentState()))
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n\n\n\n   Transition: %t", g.controller.InTransition()))
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n\n\n\n\n   Pending game: %t", g.controller.HasPendingGameScene()))
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n\n\n\n\n\n   Scenes: %d", len(g.engine.LiveScenes())))
}

// Layout follows the outside size so scenes are laid out at the window's resolution.
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	g.controller.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Debug reports whether the debug overlay is shown.
func (g *Game) Debug() bool {
	return g.debug
}
