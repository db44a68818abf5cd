package scenes

import (
	"math"
	"testing"

	"github.com/cbodonnell/sceneflow/client/objects"
	"github.com/cbodonnell/sceneflow/pkg/config"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBuilder(t *testing.T) *Builder {
	t.Helper()
	return NewBuilder(newTestEngine(t), config.NewStore(config.Default()))
}

func asContainer(t *testing.T, s Scene) *Container {
	t.Helper()
	c, ok := s.(*Container)
	require.True(t, ok, "unexpected scene type %T", s)
	return c
}

func TestBuilder_PlaceholderScene(t *testing.T) {
	b := newTestBuilder(t)

	s, err := b.NewPlaceholderScene()
	require.NoError(t, err)
	waitReady(t, s)

	scene := asContainer(t, s)
	assert.Nil(t, scene.Button())
	assert.IsType(t, &objects.ArcRotateCamera{}, scene.Camera())
	assert.False(t, scene.InputAttached())
}

func TestBuilder_StartScene(t *testing.T) {
	b := newTestBuilder(t)

	played := 0
	s, err := b.NewStartScene(func() { played++ })
	require.NoError(t, err)
	waitReady(t, s)

	scene := asContainer(t, s)
	button := scene.Button()
	require.NotNil(t, button)
	assert.Equal(t, "PLAY", button.Label())
	assert.Equal(t, TriggerPointerDown, button.Trigger())

	camera, ok := scene.Camera().(*objects.FreeCamera)
	require.True(t, ok)
	assert.Equal(t, "camera1", camera.GetName())

	// the button spans a fifth of the screen width
	assert.Equal(t, 200, button.widget.GetWidget().MinWidth)

	button.fire()
	assert.Equal(t, 1, played)
}

func TestBuilder_CutScene(t *testing.T) {
	b := newTestBuilder(t)

	s, err := b.NewCutScene(func() {})
	require.NoError(t, err)
	waitReady(t, s)

	button := asContainer(t, s).Button()
	require.NotNil(t, button)
	assert.Equal(t, "NEXT", button.Label())
	assert.Equal(t, TriggerPointerUp, button.Trigger())
	assert.Equal(t, 64, button.widget.GetWidget().MinWidth)
	assert.Equal(t, 64, button.widget.GetWidget().MinHeight)
}

func TestBuilder_GameScene(t *testing.T) {
	b := newTestBuilder(t)

	s, err := b.NewGameScene()
	require.NoError(t, err)
	waitReady(t, s)

	scene := asContainer(t, s)
	assert.Nil(t, scene.Button())
	assert.Empty(t, scene.Objects())

	lost := 0
	scene.AttachInput()
	require.NoError(t, b.SetupGameScene(s, func() { lost++ }))

	assert.False(t, scene.InputAttached())
	button := scene.Button()
	require.NotNil(t, button)
	assert.Equal(t, "LOSE", button.Label())
	assert.Equal(t, TriggerPointerUp, button.Trigger())

	camera, ok := scene.Camera().(*objects.ArcRotateCamera)
	require.True(t, ok)
	assert.Equal(t, math.Pi/2, camera.Alpha())
	assert.Equal(t, math.Pi/2, camera.Beta())
	assert.Equal(t, 2.0, camera.Radius())

	ids := []string{}
	for _, obj := range scene.Objects() {
		ids = append(ids, obj.GetID())
		// the scene was already prepared so new objects are initialized on add
		assert.True(t, obj.IsInitialized())
	}
	assert.ElementsMatch(t, []string{"light1", "sphere"}, ids)
	assert.Len(t, scene.GeometrySpace().Objects(), 1)

	button.fire()
	assert.Equal(t, 1, lost)

	require.NoError(t, scene.Dispose())
	assert.Empty(t, scene.GeometrySpace().Objects())
}

type foreignScene struct {
	Scene
}

func TestBuilder_SetupGameScene_Unsupported(t *testing.T) {
	b := newTestBuilder(t)
	assert.Error(t, b.SetupGameScene(foreignScene{}, func() {}))
}

func TestBuilder_LoseScene(t *testing.T) {
	b := newTestBuilder(t)

	s, err := b.NewLoseScene(func() {})
	require.NoError(t, err)
	waitReady(t, s)

	button := asContainer(t, s).Button()
	require.NotNil(t, button)
	assert.Equal(t, "MAIN MENU", button.Label())
	assert.Equal(t, TriggerPointerUp, button.Trigger())
}

func TestBuilder_UsesCurrentConfig(t *testing.T) {
	store := config.NewStore(config.Default())
	b := NewBuilder(newTestEngine(t), store)

	cfg := config.Default()
	cfg.Scenes.Start.ButtonLabel = "GO"
	store.Set(cfg)

	s, err := b.NewStartScene(func() {})
	require.NoError(t, err)
	assert.Equal(t, "GO", asContainer(t, s).Button().Label())
}

func TestPercentOffset(t *testing.T) {
	assert.Equal(t, 15, percentOffset(500, -3))
	assert.Equal(t, 120, percentOffset(1000, -12))
	assert.Equal(t, 0, percentOffset(1000, 0))
}

func TestNewButton_Position(t *testing.T) {
	b := NewButton(ButtonOptions{
		Name:               "next",
		Label:              "NEXT",
		Width:              64,
		Height:             64,
		HorizontalPosition: widget.AnchorLayoutPositionEnd,
		VerticalPosition:   widget.AnchorLayoutPositionEnd,
	})

	data, ok := b.widget.GetWidget().LayoutData.(widget.AnchorLayoutData)
	require.True(t, ok)
	assert.Equal(t, widget.AnchorLayoutPositionEnd, data.HorizontalPosition)
	assert.Equal(t, widget.AnchorLayoutPositionEnd, data.VerticalPosition)
	assert.Equal(t, "next", b.Name())

	// buttons without a handler are inert
	assert.NotPanics(t, b.fire)
}

func TestBuilder_ButtonRelayout(t *testing.T) {
	b := newTestBuilder(t)

	s, err := b.NewStartScene(func() {})
	require.NoError(t, err)
	button := asContainer(t, s).Button()
	require.NotNil(t, button)
	initial := button.container

	// the size the button was built for is already applied
	assert.Nil(t, button.relayout(1000, 500))
	assert.Same(t, initial, button.container)

	root := button.relayout(2000, 1000)
	require.NotNil(t, root)
	assert.NotSame(t, initial, root)
	assert.Equal(t, 400, button.widget.GetWidget().MinWidth)
	assert.Equal(t, 40, button.widget.GetWidget().MinHeight)
	assert.Same(t, root.GetWidget(), button.widget.GetWidget().Parent())
}

func TestBuilder_CutSceneLayout(t *testing.T) {
	b := newTestBuilder(t)

	s, err := b.NewCutScene(func() {})
	require.NoError(t, err)
	button := asContainer(t, s).Button()
	require.NotNil(t, button)

	width, height, padding := button.layout(1000, 500)
	assert.Equal(t, 64, width)
	assert.Equal(t, 64, height)
	assert.Equal(t, widget.Insets{Bottom: 15, Right: 120}, padding)

	// the corner offsets scale with the screen
	_, _, padding = button.layout(2000, 1000)
	assert.Equal(t, widget.Insets{Bottom: 30, Right: 240}, padding)

	require.NotNil(t, button.relayout(2000, 1000))
	assert.Equal(t, 64, button.widget.GetWidget().MinWidth)
}

func TestBuilder_KeyboardActivation(t *testing.T) {
	store := config.NewStore(config.Default())
	b := NewBuilder(newTestEngine(t), store)

	s, err := b.NewLoseScene(func() {})
	require.NoError(t, err)
	assert.False(t, asContainer(t, s).Button().KeyboardActivation())

	cfg := config.Default()
	cfg.Button.KeyboardActivation = true
	store.Set(cfg)

	s, err = b.NewLoseScene(func() {})
	require.NoError(t, err)
	assert.True(t, asContainer(t, s).Button().KeyboardActivation())
}
