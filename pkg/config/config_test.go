package config

import (
	"context"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "PLAY", cfg.Scenes.Start.ButtonLabel)
	assert.Equal(t, "NEXT", cfg.Scenes.CutScene.ButtonLabel)
	assert.Equal(t, "LOSE", cfg.Scenes.Game.ButtonLabel)
	assert.Equal(t, "MAIN MENU", cfg.Scenes.Lose.ButtonLabel)
	assert.Equal(t, math.Pi/2, cfg.Game.Camera.Alpha)
	assert.Equal(t, math.Pi/2, cfg.Game.Camera.Beta)
	assert.Equal(t, 2.0, cfg.Game.Camera.Radius)
	assert.Equal(t, 0.2, cfg.Button.WidthRatio)
	assert.Equal(t, -14, cfg.Button.OffsetTop)
	// only the pointer activates buttons unless enabled
	assert.False(t, cfg.Button.KeyboardActivation)
}

func TestDecode(t *testing.T) {
	data := []byte(`
[window]
id = "test-surface"
width = 640
height = 480

[flow]
ready_timeout = "250ms"

[scenes.start]
clear_color = "#102030"
button_label = "GO"

[game.camera]
radius = 4.5
`)

	cfg, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, "test-surface", cfg.Window.ID)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 250*time.Millisecond, cfg.Flow.ReadyTimeout.Duration())
	assert.Equal(t, "GO", cfg.Scenes.Start.ButtonLabel)
	assert.Equal(t, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, cfg.Scenes.Start.ClearColor.NRGBA)
	assert.Equal(t, 4.5, cfg.Game.Camera.Radius)
	// untouched values keep their defaults
	assert.Equal(t, "LOSE", cfg.Scenes.Game.ButtonLabel)
	assert.Equal(t, math.Pi/2, cfg.Game.Camera.Alpha)
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown field", "[window]\nfoo = 1\n"},
		{"bad color", "[scenes.lose]\nclear_color = \"#12\"\n"},
		{"bad duration", "[flow]\nready_timeout = \"soon\"\n"},
		{"zero width", "[window]\nwidth = 0\n"},
		{"empty id", "[window]\nid = \"\"\n"},
		{"zero radius", "[game.camera]\nradius = 0.0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestColor_RoundTrip(t *testing.T) {
	var c Color
	require.NoError(t, c.UnmarshalText([]byte("#04043480")))
	assert.Equal(t, color.NRGBA{R: 4, G: 4, B: 52, A: 128}, c.NRGBA)

	text, err := c.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "#04043480", string(text))
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"configs/client.toml": &fstest.MapFile{Data: []byte("[log]\nlevel = \"debug\"\n")},
	}

	cfg, err := LoadFS(fsys, "configs/client.toml")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)

	_, err = LoadFS(fsys, "configs/missing.toml")
	assert.Error(t, err)
}

func TestLoad_ShippedConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "client.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestStore_Watch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "client.toml")
	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \"info\"\n"), 0o644))

	initial, err := Load(path)
	require.NoError(t, err)
	store := NewStore(initial)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- store.Watch(ctx, path)
	}()

	// give the watcher time to register before writing
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \"trace\"\n"), 0o644))

	assert.Eventually(t, func() bool {
		return store.Current().Log.Level == "trace"
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}
