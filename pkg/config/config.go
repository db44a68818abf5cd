// Package config holds the tunable constants of the client: window surface,
// logging, flow timeouts and the visual defaults of every scene.
package config

import (
	"bytes"
	"fmt"
	"image/color"
	"io/fs"
	"math"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Window  WindowConfig  `toml:"window"`
	Log     LogConfig     `toml:"log"`
	Flow    FlowConfig    `toml:"flow"`
	Loading LoadingConfig `toml:"loading"`
	Button  ButtonConfig  `toml:"button"`
	Scenes  ScenesConfig  `toml:"scenes"`
	Game    GameConfig    `toml:"game"`
}

type WindowConfig struct {
	// ID identifies the drawing surface. It is also used as the window title.
	ID     string `toml:"id"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type FlowConfig struct {
	// ReadyTimeout bounds every wait for a scene to become ready.
	ReadyTimeout Duration `toml:"ready_timeout"`
}

type LoadingConfig struct {
	Text       string `toml:"text"`
	Background Color  `toml:"background"`
}

type ButtonConfig struct {
	// WidthRatio is the button width as a fraction of the screen width.
	WidthRatio float64 `toml:"width_ratio"`
	Height     int     `toml:"height"`
	// OffsetTop moves bottom aligned buttons up when negative.
	OffsetTop int   `toml:"offset_top"`
	TextColor Color `toml:"text_color"`
	Idle      Color `toml:"idle"`
	Hover     Color `toml:"hover"`
	Pressed   Color `toml:"pressed"`
	// KeyboardActivation lets the positive keyboard/gamepad input fire the
	// active scene's button in addition to the pointer.
	KeyboardActivation bool `toml:"keyboard_activation"`
}

type SceneConfig struct {
	ClearColor  Color  `toml:"clear_color"`
	ButtonLabel string `toml:"button_label"`
}

type CutSceneConfig struct {
	SceneConfig
	// ButtonSize is the square size in pixels of the NEXT button.
	ButtonSize int `toml:"button_size"`
	// OffsetTopPercent and OffsetLeftPercent position the NEXT button from the bottom right corner.
	OffsetTopPercent  float64 `toml:"offset_top_percent"`
	OffsetLeftPercent float64 `toml:"offset_left_percent"`
}

type ScenesConfig struct {
	Placeholder SceneConfig    `toml:"placeholder"`
	Start       SceneConfig    `toml:"start"`
	CutScene    CutSceneConfig `toml:"cutscene"`
	Game        SceneConfig    `toml:"game"`
	Lose        SceneConfig    `toml:"lose"`
}

type CameraConfig struct {
	Alpha  float64 `toml:"alpha"`
	Beta   float64 `toml:"beta"`
	Radius float64 `toml:"radius"`
	// FOV is the vertical field of view in radians.
	FOV float64 `toml:"fov"`
}

type LightConfig struct {
	Direction [3]float64 `toml:"direction"`
	Intensity float64    `toml:"intensity"`
}

type GameConfig struct {
	Camera         CameraConfig `toml:"camera"`
	Light          LightConfig  `toml:"light"`
	SphereDiameter float64      `toml:"sphere_diameter"`
	SphereColor    Color        `toml:"sphere_color"`
}

// Default returns the built-in configuration. Values loaded from a file are
// decoded on top of it.
func Default() *Config {
	white := Color{color.NRGBA{R: 255, G: 255, B: 255, A: 255}}
	black := Color{color.NRGBA{A: 255}}
	return &Config{
		Window: WindowConfig{
			ID:     "Sceneflow",
			Width:  1280,
			Height: 720,
		},
		Log: LogConfig{
			Level: "info",
		},
		Flow: FlowConfig{
			ReadyTimeout: Duration(10 * time.Second),
		},
		Loading: LoadingConfig{
			Text:       "Loading",
			Background: black,
		},
		Button: ButtonConfig{
			WidthRatio: 0.2,
			Height:     40,
			OffsetTop:  -14,
			TextColor:  white,
			Idle:       Color{color.NRGBA{A: 0}},
			Hover:      Color{color.NRGBA{R: 255, G: 255, B: 255, A: 40}},
			Pressed:    Color{color.NRGBA{R: 255, G: 255, B: 255, A: 80}},
		},
		Scenes: ScenesConfig{
			Placeholder: SceneConfig{ClearColor: black},
			Start:       SceneConfig{ClearColor: black, ButtonLabel: "PLAY"},
			CutScene: CutSceneConfig{
				SceneConfig:       SceneConfig{ClearColor: black, ButtonLabel: "NEXT"},
				ButtonSize:        64,
				OffsetTopPercent:  -3,
				OffsetLeftPercent: -12,
			},
			Game: SceneConfig{
				ClearColor:  Color{color.NRGBA{R: 4, G: 4, B: 52, A: 255}},
				ButtonLabel: "LOSE",
			},
			Lose: SceneConfig{ClearColor: black, ButtonLabel: "MAIN MENU"},
		},
		Game: GameConfig{
			Camera: CameraConfig{
				Alpha:  math.Pi / 2,
				Beta:   math.Pi / 2,
				Radius: 2,
				FOV:    0.8,
			},
			Light: LightConfig{
				Direction: [3]float64{1, 1, 0},
				Intensity: 1,
			},
			SphereDiameter: 1,
			SphereColor:    Color{color.NRGBA{R: 200, G: 200, B: 200, A: 255}},
		},
	}
}

// Decode decodes TOML data over the defaults and validates the result.
func Decode(data []byte) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and decodes the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFS reads and decodes the config file at path within fsys.
func LoadFS(fsys fs.FS, path string) (*Config, error) {
	data, err := fs.ReadFile(fsys, strings.TrimPrefix(path, "./"))
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Window.ID == "" {
		return fmt.Errorf("window id is required")
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Flow.ReadyTimeout.Duration() <= 0 {
		return fmt.Errorf("flow ready_timeout must be positive")
	}
	if c.Button.WidthRatio <= 0 || c.Button.WidthRatio > 1 {
		return fmt.Errorf("button width_ratio must be in (0, 1], got %v", c.Button.WidthRatio)
	}
	if c.Game.Camera.Radius <= 0 {
		return fmt.Errorf("game camera radius must be positive")
	}
	if c.Game.SphereDiameter <= 0 {
		return fmt.Errorf("game sphere_diameter must be positive")
	}
	return nil
}

// Duration is a time.Duration written as a Go duration string, e.g. "5s".
type Duration time.Duration

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Color is a color written as "#rrggbb" or "#rrggbbaa".
type Color struct {
	color.NRGBA
}

func (c *Color) UnmarshalText(text []byte) error {
	s := strings.TrimPrefix(string(text), "#")
	var r, g, b uint8
	a := uint8(255)
	switch len(s) {
	case 6:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
			return fmt.Errorf("invalid color %q: %w", text, err)
		}
	case 8:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x%02x", &r, &g, &b, &a); err != nil {
			return fmt.Errorf("invalid color %q: %w", text, err)
		}
	default:
		return fmt.Errorf("invalid color %q", text)
	}
	c.NRGBA = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)), nil
}
