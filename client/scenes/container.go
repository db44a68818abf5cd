package scenes

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"sync"
	"sync/atomic"

	"github.com/cbodonnell/sceneflow/client/engine"
	"github.com/cbodonnell/sceneflow/client/input"
	"github.com/cbodonnell/sceneflow/client/objects"
	"github.com/cbodonnell/sceneflow/pkg/log"
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/solarlune/resolv"
)

var ErrSceneDisposed = errors.New("scene disposed")

// Container is the engine backed Scene. It owns an object tree, an optional
// camera, an optional GUI button and the placeholder geometry space.
type Container struct {
	id     string
	engine *engine.Engine

	mu         sync.Mutex
	clearColor color.Color
	root       *objects.SortedZIndexObject
	camera     objects.Camera
	ui         *ebitenui.UI
	button     *Button
	space      *resolv.Space
	hovered    *objects.Sphere

	inputAttached atomic.Bool
	disposed      atomic.Bool
	loadQueued    atomic.Bool

	ready     chan struct{}
	readyOnce sync.Once
	readyErr  error
}

type ContainerOptions struct {
	// Name prefixes the scene id.
	Name string
	// ClearColor fills the screen before the scene is drawn. Nil leaves it untouched.
	ClearColor color.Color
}

var (
	_ Scene           = &Container{}
	_ engine.Loadable = &Container{}
)

// New constructs an empty scene on e. Input starts detached.
func New(e *engine.Engine, opts ContainerOptions) (*Container, error) {
	name := opts.Name
	if name == "" {
		name = "scene"
	}
	id := fmt.Sprintf("%s-%s", name, uuid.NewString())
	if err := e.Register(id); err != nil {
		return nil, fmt.Errorf("failed to register scene %s: %w", id, err)
	}
	return &Container{
		id:         id,
		engine:     e,
		clearColor: opts.ClearColor,
		root:       objects.NewSortedZIndexObject(id + "-root"),
		space:      objects.NewGeometrySpace(),
		ready:      make(chan struct{}),
	}, nil
}

func (c *Container) ID() string {
	return c.id
}

func (c *Container) SetClearColor(clr color.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearColor = clr
}

func (c *Container) SetCamera(camera objects.Camera) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.camera = camera
}

func (c *Container) Camera() objects.Camera {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.camera
}

// GeometrySpace holds the footprints of the scene's placeholder meshes.
func (c *Container) GeometrySpace() *resolv.Space {
	return c.space
}

// AddObject adds obj to the scene's object tree. Objects added after the
// scene was prepared are initialized immediately.
func (c *Container) AddObject(obj objects.GameObject) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed.Load() {
		return ErrSceneDisposed
	}
	return c.root.AddChild(obj.GetID(), obj)
}

// Objects returns the top level objects of the scene in draw order.
func (c *Container) Objects() []objects.GameObject {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]objects.GameObject(nil), c.root.GetChildren()...)
}

// SetButton installs the scene's GUI, a single button, replacing any previous one.
func (c *Container) SetButton(b *Button) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.button = b
	c.ui = &ebitenui.UI{
		Container: b.container,
	}
}

func (c *Container) Button() *Button {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.button
}

// Load hands the scene to the engine's background loader.
func (c *Container) Load() error {
	if c.disposed.Load() {
		return ErrSceneDisposed
	}
	if !c.loadQueued.CompareAndSwap(false, true) {
		return nil
	}
	if err := c.engine.Load(c); err != nil {
		return fmt.Errorf("failed to load scene %s: %w", c.id, err)
	}
	return nil
}

// Prepare runs on an engine loader.
func (c *Container) Prepare() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed.Load() {
		return ErrSceneDisposed
	}
	return objects.InitTree(c.root)
}

func (c *Container) MarkReady(err error) {
	c.readyOnce.Do(func() {
		c.readyErr = err
		close(c.ready)
	})
}

func (c *Container) WhenReady(ctx context.Context) error {
	if !c.loadQueued.Load() {
		return fmt.Errorf("scene %s was never loaded", c.id)
	}
	select {
	case <-c.ready:
		return c.readyErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Container) AttachInput() {
	if c.disposed.Load() {
		return
	}
	c.inputAttached.Store(true)
}

func (c *Container) DetachInput() {
	c.inputAttached.Store(false)
}

func (c *Container) InputAttached() bool {
	return c.inputAttached.Load()
}

func (c *Container) Update() error {
	if c.disposed.Load() {
		return ErrSceneDisposed
	}

	c.mu.Lock()
	ui, button, camera := c.ui, c.button, c.camera
	err := objects.UpdateTree(c.root)
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to update scene %s: %v", c.id, err)
	}

	// Handlers may dispose this scene, so the lock is not held while they run.
	if !c.InputAttached() {
		c.hoverAt(-1, -1)
		return nil
	}
	c.hoverAt(ebiten.CursorPosition())
	if camera != nil {
		camera.Update()
	}
	if ui != nil {
		ui.Update()
	}
	if button != nil && button.KeyboardActivation() && c.InputAttached() && input.IsPositiveJustPressed() {
		log.Debug("Activating %s by keyboard/gamepad", button.label)
		button.fire()
	}
	return nil
}

func (c *Container) Draw(screen *ebiten.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed.Load() {
		return
	}
	if c.clearColor != nil {
		screen.Fill(c.clearColor)
	}
	objects.DrawTree(c.root, screen)
	if c.ui != nil {
		bounds := screen.Bounds()
		if root := c.button.relayout(bounds.Dx(), bounds.Dy()); root != nil {
			c.ui.Container = root
		}
		c.ui.Draw(screen)
	}
}

// hoverAt highlights the mesh under the screen point x, y and returns it.
// A point off screen clears the highlight.
func (c *Container) hoverAt(x, y int) *objects.Sphere {
	c.mu.Lock()
	defer c.mu.Unlock()
	hit := objects.HoverAt(c.space, float64(x), float64(y))
	if hit != c.hovered {
		if hit != nil {
			log.Trace("Pointer over %s in scene %s", hit.GetID(), c.id)
		}
		c.hovered = hit
	}
	return hit
}

// Dispose detaches input, destroys the object tree and releases the scene
// from the engine. Disposing twice is a no-op.
func (c *Container) Dispose() error {
	if !c.disposed.CompareAndSwap(false, true) {
		return nil
	}
	c.DetachInput()

	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.engine.Unregister(c.id)
	if err := objects.DestroyTree(c.root); err != nil {
		return fmt.Errorf("failed to destroy scene %s: %v", c.id, err)
	}
	return nil
}

func (c *Container) IsDisposed() bool {
	return c.disposed.Load()
}

// newWidgetRoot wraps a single widget in a full screen anchor layout.
func newWidgetRoot(padding widget.Insets) *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout(
			widget.AnchorLayoutOpts.Padding(padding),
		)),
	)
}
