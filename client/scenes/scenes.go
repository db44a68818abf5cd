package scenes

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is a disposable handle to one renderable scene instance, its camera
// and its GUI tree.
type Scene interface {
	ID() string
	Update() error
	Draw(screen *ebiten.Image)

	// AttachInput lets the scene receive pointer, keyboard and gamepad events.
	AttachInput()
	// DetachInput stops event delivery. Handlers never fire on a detached scene.
	DetachInput()
	InputAttached() bool

	// WhenReady blocks until the scene's resources are loaded or ctx is done.
	WhenReady(ctx context.Context) error
	Dispose() error
}
