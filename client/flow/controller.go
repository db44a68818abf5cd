package flow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cbodonnell/sceneflow/client/scenes"
	"github.com/cbodonnell/sceneflow/pkg/log"
)

// Engine is the part of the rendering engine the controller drives.
type Engine interface {
	DisplayLoadingUI()
	HideLoadingUI()
	Resize(width, height int)
	Dispose() error
}

// SceneBuilder constructs the scenes of the flow. Every handler passed in is
// wired to exactly one widget of the returned scene.
type SceneBuilder interface {
	NewPlaceholderScene() (scenes.Scene, error)
	NewStartScene(onPlay func()) (scenes.Scene, error)
	NewCutScene(onNext func()) (scenes.Scene, error)
	NewGameScene() (scenes.Scene, error)
	SetupGameScene(scene scenes.Scene, onLose func()) error
	NewLoseScene(onMainMenu func()) (scenes.Scene, error)
}

const DefaultReadyTimeout = 10 * time.Second

type ControllerOptions struct {
	// ReadyTimeout bounds each wait for a scene to become ready.
	ReadyTimeout time.Duration
}

// Controller owns the active scene and the flow state. It is the only writer
// of both: callers read them or trigger transitions through the scenes' GUI.
type Controller struct {
	engine       Engine
	builder      SceneBuilder
	readyTimeout time.Duration

	// mu guards state and active. Transitions hold it only to swap the active scene.
	mu     sync.RWMutex
	state  State
	active scenes.Scene

	// busy is held for the whole duration of a transition and by Dispose.
	busy     atomic.Bool
	disposed atomic.Bool
	pending  atomic.Pointer[pendingScene]
	tasks    sync.WaitGroup
	errs     chan error
}

// pendingScene is a gameplay scene being constructed in the background.
// scene and err are set before done is closed.
type pendingScene struct {
	done  chan struct{}
	scene scenes.Scene
	err   error
}

// NewController builds the placeholder scene and camera shown until Start
// completes. The state is StateStart.
func NewController(engine Engine, builder SceneBuilder, opts ControllerOptions) (*Controller, error) {
	placeholder, err := builder.NewPlaceholderScene()
	if err != nil {
		return nil, fmt.Errorf("failed to build placeholder scene: %w", err)
	}
	placeholder.AttachInput()

	readyTimeout := opts.ReadyTimeout
	if readyTimeout <= 0 {
		readyTimeout = DefaultReadyTimeout
	}

	return &Controller{
		engine:       engine,
		builder:      builder,
		readyTimeout: readyTimeout,
		state:        StateStart,
		active:       placeholder,
		errs:         make(chan error, 8),
	}, nil
}

// Start transitions into StateStart from any state, replacing the active scene
// with a fresh start menu. Repeated calls leave the same state and scene shape.
func (c *Controller) Start(ctx context.Context) error {
	return c.run(ctx, EdgeStart, c.goToStart)
}

// CurrentRenderTarget returns the active scene. It never blocks on a transition
// that is waiting for a scene to become ready.
func (c *Controller) CurrentRenderTarget() scenes.Scene {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active
}

func (c *Controller) CurrentState() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Render calls fn with the current state and active scene. The active scene is
// not swapped out or disposed while fn runs. fn must not trigger transitions.
func (c *Controller) Render(fn func(state State, scene scenes.Scene)) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn(c.state, c.active)
}

func (c *Controller) InTransition() bool {
	return c.busy.Load() && !c.disposed.Load()
}

// HasPendingGameScene reports whether a gameplay scene is held for the next
// transition into StateGame.
func (c *Controller) HasPendingGameScene() bool {
	return c.pending.Load() != nil
}

// Errors delivers failures of transitions triggered by the GUI.
func (c *Controller) Errors() <-chan error {
	return c.errs
}

func (c *Controller) Resize(width, height int) {
	c.engine.Resize(width, height)
}

// Dispose tears down the scenes and the engine. It fails with
// ErrTransitionInFlight while a transition runs and with ErrDisposed when
// called twice.
func (c *Controller) Dispose() error {
	if c.disposed.Load() {
		return ErrDisposed
	}
	if !c.busy.CompareAndSwap(false, true) {
		return ErrTransitionInFlight
	}
	// busy stays held so nothing can start after this point
	c.disposed.Store(true)
	c.tasks.Wait()

	var errs []error
	if p := c.pending.Swap(nil); p != nil && p.scene != nil {
		if err := p.scene.Dispose(); err != nil {
			errs = append(errs, fmt.Errorf("failed to dispose pending game scene: %w", err))
		}
	}

	active := c.CurrentRenderTarget()
	active.DetachInput()
	if err := active.Dispose(); err != nil {
		errs = append(errs, fmt.Errorf("failed to dispose active scene: %w", err))
	}
	if err := c.engine.Dispose(); err != nil {
		errs = append(errs, fmt.Errorf("failed to dispose engine: %w", err))
	}
	return errors.Join(errs...)
}

// begin takes the transition guard and validates the edge against the current state.
func (c *Controller) begin(edge Edge) error {
	if c.disposed.Load() {
		return ErrDisposed
	}
	if !c.busy.CompareAndSwap(false, true) {
		return ErrTransitionInFlight
	}
	if from, ok := edge.source(); ok {
		if current := c.CurrentState(); current != from {
			c.busy.Store(false)
			return &InvalidTransitionError{From: current, Edge: edge}
		}
	}
	return nil
}

// run executes a transition on the calling goroutine.
func (c *Controller) run(ctx context.Context, edge Edge, transition func(context.Context) error) error {
	if err := c.begin(edge); err != nil {
		return err
	}
	defer c.busy.Store(false)

	log.Debug("Transition %s from %s", edge, c.CurrentState())
	if err := transition(ctx); err != nil {
		return fmt.Errorf("transition %s failed: %w", edge, err)
	}
	log.Debug("Transition %s committed in state %s", edge, c.CurrentState())
	return nil
}

// trigger starts a transition from a GUI handler. The guard and the source
// state are checked before returning; the transition itself runs on its own
// goroutine so the render loop keeps drawing while it waits for scenes.
func (c *Controller) trigger(edge Edge, transition func(context.Context) error) {
	if err := c.begin(edge); err != nil {
		log.Warn("Rejected transition %s: %v", edge, err)
		c.report(fmt.Errorf("transition %s rejected: %w", edge, err))
		return
	}

	c.tasks.Add(1)
	go func() {
		defer c.tasks.Done()
		defer c.busy.Store(false)

		log.Debug("Transition %s from %s", edge, c.CurrentState())
		if err := transition(context.Background()); err != nil {
			log.Error("Transition %s failed: %v", edge, err)
			c.report(fmt.Errorf("transition %s failed: %w", edge, err))
			return
		}
		log.Debug("Transition %s committed in state %s", edge, c.CurrentState())
	}()
}

func (c *Controller) report(err error) {
	select {
	case c.errs <- err:
	default:
		log.Warn("Dropping transition error, error channel is full: %v", err)
	}
}

func (c *Controller) onPlay() {
	c.trigger(EdgePlay, c.goToCutScene)
}

func (c *Controller) onNext() {
	c.trigger(EdgeNext, c.goToGame)
}

func (c *Controller) onLose() {
	c.trigger(EdgeLose, c.goToLose)
}

func (c *Controller) onMainMenu() {
	c.trigger(EdgeMainMenu, c.goToStart)
}

func (c *Controller) goToStart(ctx context.Context) error {
	c.engine.DisplayLoadingUI()

	old := c.CurrentRenderTarget()
	old.DetachInput()

	scene, err := c.builder.NewStartScene(c.onPlay)
	if err != nil {
		return c.rollback(old, nil, fmt.Errorf("failed to build start scene: %w", err))
	}
	if err := c.awaitReady(ctx, scene); err != nil {
		return c.rollback(old, scene, err)
	}

	c.install(old, scene, StateStart)
	scene.AttachInput()
	c.engine.HideLoadingUI()

	// leaving the cut-scene early drops the game it was preparing
	c.discardPending()
	return nil
}

func (c *Controller) goToCutScene(ctx context.Context) error {
	c.engine.DisplayLoadingUI()

	old := c.CurrentRenderTarget()
	old.DetachInput()

	cut, err := c.builder.NewCutScene(c.onNext)
	if err != nil {
		return c.rollback(old, nil, fmt.Errorf("failed to build cut-scene: %w", err))
	}
	if err := c.awaitReady(ctx, cut); err != nil {
		return c.rollback(old, cut, err)
	}

	c.install(old, cut, StateCutScene)
	cut.AttachInput()
	c.engine.HideLoadingUI()

	c.setupGame()
	return nil
}

// setupGame starts constructing the gameplay scene in the background,
// replacing any stale pending scene.
func (c *Controller) setupGame() {
	c.discardPending()

	p := &pendingScene{done: make(chan struct{})}
	c.pending.Store(p)

	c.tasks.Add(1)
	go func() {
		defer c.tasks.Done()
		defer close(p.done)
		p.scene, p.err = c.builder.NewGameScene()
		if p.err != nil {
			log.Error("Failed to build game scene in background: %v", p.err)
			return
		}
		log.Debug("Game scene %s constructed in background", p.scene.ID())
	}()
}

func (c *Controller) goToGame(ctx context.Context) error {
	old := c.CurrentRenderTarget()
	old.DetachInput()

	game, err := c.takePending(ctx)
	if err != nil {
		if !c.HasPendingGameScene() {
			c.setupGame()
		}
		return c.rollback(old, nil, err)
	}

	if err := c.builder.SetupGameScene(game, c.onLose); err != nil {
		c.pending.Store(nil)
		c.setupGame()
		return c.rollback(old, game, fmt.Errorf("failed to set up game scene: %w", err))
	}
	game.DetachInput()

	c.install(old, game, StateGame)
	c.pending.Store(nil)
	game.AttachInput()
	c.engine.HideLoadingUI()
	return nil
}

// takePending waits for the background gameplay scene and its ready signal.
// A scene that failed is disposed and the pending slot cleared.
func (c *Controller) takePending(ctx context.Context) (scenes.Scene, error) {
	p := c.pending.Load()
	if p == nil {
		return nil, fmt.Errorf("no pending game scene")
	}

	ctx, cancel := context.WithTimeout(ctx, c.readyTimeout)
	defer cancel()
	select {
	case <-p.done:
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: game scene still under construction: %v", ErrReadyTimeout, ctx.Err())
	}

	if p.err != nil {
		c.pending.Store(nil)
		return nil, fmt.Errorf("failed to build game scene: %w", p.err)
	}
	if err := c.awaitReady(ctx, p.scene); err != nil {
		c.pending.Store(nil)
		if derr := p.scene.Dispose(); derr != nil {
			log.Error("Failed to dispose game scene %s: %v", p.scene.ID(), derr)
		}
		return nil, err
	}
	return p.scene, nil
}

func (c *Controller) goToLose(ctx context.Context) error {
	old := c.CurrentRenderTarget()
	old.DetachInput()

	c.engine.DisplayLoadingUI()

	lose, err := c.builder.NewLoseScene(c.onMainMenu)
	if err != nil {
		return c.rollback(old, nil, fmt.Errorf("failed to build lose scene: %w", err))
	}
	if err := c.awaitReady(ctx, lose); err != nil {
		return c.rollback(old, lose, err)
	}

	c.install(old, lose, StateLose)
	lose.AttachInput()
	c.engine.HideLoadingUI()
	return nil
}

func (c *Controller) awaitReady(ctx context.Context, scene scenes.Scene) error {
	ctx, cancel := context.WithTimeout(ctx, c.readyTimeout)
	defer cancel()
	if err := scene.WhenReady(ctx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: scene %s after %s", ErrReadyTimeout, scene.ID(), c.readyTimeout)
		}
		return fmt.Errorf("scene %s failed to become ready: %w", scene.ID(), err)
	}
	return nil
}

// install disposes the outgoing scene and makes scene the render target.
// Both happen under the write lock, so the render loop never draws a disposed scene.
func (c *Controller) install(old, scene scenes.Scene, state State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := old.Dispose(); err != nil {
		log.Error("Failed to dispose scene %s: %v", old.ID(), err)
	}
	c.active = scene
	c.state = state
}

// rollback leaves the outgoing scene active after a failed transition.
func (c *Controller) rollback(old, built scenes.Scene, cause error) error {
	if built != nil {
		if err := built.Dispose(); err != nil {
			log.Error("Failed to dispose scene %s: %v", built.ID(), err)
		}
	}
	c.engine.HideLoadingUI()
	old.AttachInput()
	return cause
}

func (c *Controller) discardPending() {
	p := c.pending.Swap(nil)
	if p == nil {
		return
	}
	<-p.done
	if p.scene != nil {
		if err := p.scene.Dispose(); err != nil {
			log.Error("Failed to dispose stale game scene %s: %v", p.scene.ID(), err)
		}
	}
}
