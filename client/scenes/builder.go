package scenes

import (
	"fmt"
	"math"

	"github.com/cbodonnell/sceneflow/client/engine"
	"github.com/cbodonnell/sceneflow/client/objects"
	"github.com/cbodonnell/sceneflow/pkg/config"
	"github.com/ebitenui/ebitenui/widget"
)

// Builder constructs the scenes of the flow from the current config.
type Builder struct {
	engine *engine.Engine
	config *config.Store
}

func NewBuilder(e *engine.Engine, cfg *config.Store) *Builder {
	return &Builder{
		engine: e,
		config: cfg,
	}
}

// NewPlaceholderScene builds the minimal scene shown before the flow starts.
func (b *Builder) NewPlaceholderScene() (Scene, error) {
	cfg := b.config.Current()
	scene, err := New(b.engine, ContainerOptions{
		Name:       "placeholder",
		ClearColor: cfg.Scenes.Placeholder.ClearColor,
	})
	if err != nil {
		return nil, err
	}
	scene.SetCamera(newArcRotateCamera(cfg))
	return loaded(scene)
}

// NewStartScene builds the start menu with a PLAY button that fires on press.
func (b *Builder) NewStartScene(onPlay func()) (Scene, error) {
	cfg := b.config.Current()
	scene, err := b.newMenuScene("start", cfg.Scenes.Start)
	if err != nil {
		return nil, err
	}
	opts := b.bottomButtonOptions(cfg, "start", cfg.Scenes.Start.ButtonLabel, onPlay)
	opts.Trigger = TriggerPointerDown
	scene.SetButton(b.newButton(opts))
	return loaded(scene)
}

// NewCutScene builds the cut-scene with a NEXT button in the bottom right corner.
func (b *Builder) NewCutScene(onNext func()) (Scene, error) {
	cfg := b.config.Current()
	cut := cfg.Scenes.CutScene
	scene, err := b.newMenuScene("cutscene", cut.SceneConfig)
	if err != nil {
		return nil, err
	}
	scene.SetButton(b.newButton(ButtonOptions{
		Name:               "next",
		Label:              cut.ButtonLabel,
		HorizontalPosition: widget.AnchorLayoutPositionEnd,
		VerticalPosition:   widget.AnchorLayoutPositionEnd,
		// the corner offsets are percentages of the current screen size
		Layout: func(screenWidth, screenHeight int) (int, int, widget.Insets) {
			return cut.ButtonSize, cut.ButtonSize, widget.Insets{
				Bottom: percentOffset(screenHeight, cut.OffsetTopPercent),
				Right:  percentOffset(screenWidth, cut.OffsetLeftPercent),
			}
		},
		TextColor:          cfg.Button.TextColor,
		Idle:               cfg.Button.Idle,
		Hover:              cfg.Button.Hover,
		Pressed:            cfg.Button.Pressed,
		Trigger:            TriggerPointerUp,
		KeyboardActivation: cfg.Button.KeyboardActivation,
		OnActivate:         onNext,
	}))
	return loaded(scene)
}

// NewGameScene builds the empty gameplay scene and starts loading it in the
// background. SetupGameScene completes it.
func (b *Builder) NewGameScene() (Scene, error) {
	scene, err := New(b.engine, ContainerOptions{
		Name: "game",
	})
	if err != nil {
		return nil, err
	}
	return loaded(scene)
}

// SetupGameScene adds the gameplay camera, light, placeholder geometry and the
// LOSE button to a scene built by NewGameScene. The scene's input is left detached.
func (b *Builder) SetupGameScene(s Scene, onLose func()) error {
	scene, ok := s.(*Container)
	if !ok {
		return fmt.Errorf("unsupported scene type %T", s)
	}
	cfg := b.config.Current()

	scene.SetClearColor(cfg.Scenes.Game.ClearColor)
	camera := newArcRotateCamera(cfg)
	scene.SetCamera(camera)

	light := objects.NewHemisphericLight("light1", vector3(cfg.Game.Light.Direction), cfg.Game.Light.Intensity)
	if err := scene.AddObject(light); err != nil {
		return fmt.Errorf("failed to add light: %w", err)
	}
	sphere, err := objects.NewSphere("sphere", objects.NewSphereOptions{
		Diameter: cfg.Game.SphereDiameter,
		Color:    cfg.Game.SphereColor.NRGBA,
		Camera:   camera,
		Light:    light,
		Space:    scene.GeometrySpace(),
		ZIndex:   10,
	})
	if err != nil {
		return fmt.Errorf("failed to create sphere: %w", err)
	}
	if err := scene.AddObject(sphere); err != nil {
		return fmt.Errorf("failed to add sphere: %w", err)
	}

	scene.SetButton(b.newButton(b.bottomButtonOptions(cfg, "lose", cfg.Scenes.Game.ButtonLabel, onLose)))

	// no input while the game is loading
	scene.DetachInput()
	return nil
}

// NewLoseScene builds the lose screen with a centered MAIN MENU button.
func (b *Builder) NewLoseScene(onMainMenu func()) (Scene, error) {
	cfg := b.config.Current()
	scene, err := b.newMenuScene("lose", cfg.Scenes.Lose)
	if err != nil {
		return nil, err
	}
	opts := b.bottomButtonOptions(cfg, "mainmenu", cfg.Scenes.Lose.ButtonLabel, onMainMenu)
	opts.VerticalPosition = widget.AnchorLayoutPositionCenter
	opts.Layout = widthRatioLayout(cfg.Button, widget.Insets{})
	scene.SetButton(b.newButton(opts))
	return loaded(scene)
}

func (b *Builder) newMenuScene(name string, sc config.SceneConfig) (*Container, error) {
	scene, err := New(b.engine, ContainerOptions{
		Name:       name,
		ClearColor: sc.ClearColor,
	})
	if err != nil {
		return nil, err
	}
	camera := objects.NewFreeCamera("camera1", objects.Zero())
	camera.SetTarget(objects.Zero())
	scene.SetCamera(camera)
	return scene, nil
}

func (b *Builder) bottomButtonOptions(cfg *config.Config, name, label string, onActivate func()) ButtonOptions {
	return ButtonOptions{
		Name:               name,
		Label:              label,
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionEnd,
		Layout: widthRatioLayout(cfg.Button, widget.Insets{
			Bottom: -cfg.Button.OffsetTop,
		}),
		TextColor:          cfg.Button.TextColor,
		Idle:               cfg.Button.Idle,
		Hover:              cfg.Button.Hover,
		Pressed:            cfg.Button.Pressed,
		Trigger:            TriggerPointerUp,
		KeyboardActivation: cfg.Button.KeyboardActivation,
		OnActivate:         onActivate,
	}
}

// newButton lays the button out for the engine's current size. Later sizes
// are applied when the scene is drawn.
func (b *Builder) newButton(opts ButtonOptions) *Button {
	w, h := b.engine.Size()
	opts.Width, opts.Height, opts.Padding = opts.Layout(w, h)
	button := NewButton(opts)
	button.screenWidth, button.screenHeight = w, h
	return button
}

// widthRatioLayout sizes a button to a fraction of the screen width.
func widthRatioLayout(cfg config.ButtonConfig, padding widget.Insets) ButtonLayout {
	return func(screenWidth, _ int) (int, int, widget.Insets) {
		return int(math.Round(float64(screenWidth) * cfg.WidthRatio)), cfg.Height, padding
	}
}

func newArcRotateCamera(cfg *config.Config) *objects.ArcRotateCamera {
	return objects.NewArcRotateCamera("Camera", objects.NewArcRotateCameraOptions{
		Alpha:  cfg.Game.Camera.Alpha,
		Beta:   cfg.Game.Camera.Beta,
		Radius: cfg.Game.Camera.Radius,
		Target: objects.Zero(),
		FOV:    cfg.Game.Camera.FOV,
	})
}

// loaded queues scene for loading, disposing it when that fails.
func loaded(scene *Container) (Scene, error) {
	if err := scene.Load(); err != nil {
		scene.Dispose()
		return nil, err
	}
	return scene, nil
}

// percentOffset converts a negative percentage offset into a padding in pixels.
func percentOffset(size int, percent float64) int {
	return int(math.Round(float64(size) * math.Abs(percent) / 100))
}

func vector3(v [3]float64) objects.Vector3 {
	return objects.Vector3{X: v[0], Y: v[1], Z: v[2]}
}
