// Package engine owns the drawing surface shared by all scenes. It tracks
// live scenes, prepares them in the background, shows the loading indicator
// and forwards resizes.
package engine

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/cbodonnell/sceneflow/client/objects"
	"github.com/cbodonnell/sceneflow/pkg/log"
	"github.com/hajimehoshi/ebiten/v2"
)

var ErrEngineDisposed = errors.New("engine disposed")

// Surface describes the on-screen drawing surface.
type Surface struct {
	// ID identifies the surface. It is used as the window title.
	ID     string
	Width  int
	Height int
}

type Engine struct {
	surface Surface

	mu       sync.Mutex
	scenes   map[string]struct{}
	width    int
	height   int
	disposed bool

	loadingVisible atomic.Bool
	loadingOverlay *objects.TextOverlayObject

	jobs   chan Loadable
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type Options struct {
	Surface Surface
	// LoadingText is shown by the loading indicator.
	LoadingText string
	// LoadingBackground covers the screen while the loading indicator is visible.
	LoadingBackground color.Color
	// Loaders is the number of background scene loaders. Defaults to 1.
	Loaders int
}

// New resolves the drawing surface and starts the background scene loaders.
// An unresolvable surface is fatal.
func New(opts Options) (*Engine, error) {
	if err := resolveSurface(opts.Surface); err != nil {
		return nil, fmt.Errorf("failed to resolve surface: %w", err)
	}

	loaders := opts.Loaders
	if loaders <= 0 {
		loaders = 1
	}
	background := opts.LoadingBackground
	if background == nil {
		background = color.Black
	}

	ctx, cancel := context.WithCancel(context.Background())
	e := &Engine{
		surface: opts.Surface,
		scenes:  make(map[string]struct{}),
		width:   opts.Surface.Width,
		height:  opts.Surface.Height,
		loadingOverlay: objects.NewTextOverlayObject("overlay-loading", objects.NewTextOverlayObjectOptions{
			Text:       opts.LoadingText,
			Background: background,
		}),
		jobs:   make(chan Loadable, 16),
		cancel: cancel,
	}

	for i := 0; i < loaders; i++ {
		worker := NewLoaderWorker(e.jobs)
		e.wg.Add(1)
		go func() {
			defer e.wg.Done()
			worker.Start(ctx)
		}()
	}

	return e, nil
}

func resolveSurface(s Surface) error {
	if s.ID == "" {
		return fmt.Errorf("surface id is required")
	}
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("surface %s has invalid size %dx%d", s.ID, s.Width, s.Height)
	}
	return nil
}

func (e *Engine) Surface() Surface {
	return e.surface
}

// Register records a newly constructed scene.
func (e *Engine) Register(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed {
		return ErrEngineDisposed
	}
	if _, ok := e.scenes[id]; ok {
		return fmt.Errorf("scene %s already registered", id)
	}
	e.scenes[id] = struct{}{}
	log.Trace("Registered scene %s", id)
	return nil
}

// Unregister forgets a disposed scene.
func (e *Engine) Unregister(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.scenes, id)
	log.Trace("Unregistered scene %s", id)
}

// LiveScenes returns the ids of all registered scenes, sorted.
func (e *Engine) LiveScenes() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	ids := make([]string, 0, len(e.scenes))
	for id := range e.scenes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Load queues a scene for background preparation. The scene is marked ready
// once prepared.
func (e *Engine) Load(l Loadable) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed {
		return ErrEngineDisposed
	}
	e.jobs <- l
	return nil
}

func (e *Engine) DisplayLoadingUI() {
	e.loadingVisible.Store(true)
}

func (e *Engine) HideLoadingUI() {
	e.loadingVisible.Store(false)
}

func (e *Engine) IsLoadingUIVisible() bool {
	return e.loadingVisible.Load()
}

// DrawLoadingUI draws the loading indicator over screen when it is visible.
func (e *Engine) DrawLoadingUI(screen *ebiten.Image) {
	if !e.IsLoadingUIVisible() {
		return
	}
	e.loadingOverlay.Draw(screen)
}

// Resize records the outside size of the surface.
func (e *Engine) Resize(width, height int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if width == e.width && height == e.height {
		return
	}
	e.width, e.height = width, height
	log.Debug("Surface %s resized to %dx%d", e.surface.ID, width, height)
}

func (e *Engine) Size() (int, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.width, e.height
}

// Dispose stops the loaders and fails every queued scene. It returns
// ErrEngineDisposed when called twice.
func (e *Engine) Dispose() error {
	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		return ErrEngineDisposed
	}
	e.disposed = true
	leaked := len(e.scenes)
	e.mu.Unlock()

	e.cancel()
	e.wg.Wait()

	// Load holds mu while sending, so nothing is added after disposed is set.
	close(e.jobs)
	for l := range e.jobs {
		l.MarkReady(ErrEngineDisposed)
	}

	if leaked > 0 {
		log.Warn("Engine disposed with %d live scenes", leaked)
	}
	return nil
}
