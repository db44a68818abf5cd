package objects

import (
	"image/color"
	"strings"

	"github.com/cbodonnell/sceneflow/client/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

// TextOverlayObject fills the screen with a background and centers its text on top.
type TextOverlayObject struct {
	*BaseObject

	text       string
	background color.Color
}

type NewTextOverlayObjectOptions struct {
	// Text is the text to display. It is drawn in upper case.
	Text string
	// Background fills the whole screen behind the text. Nil leaves the screen untouched.
	Background color.Color
	// ZIndex is the z-index of the overlay.
	ZIndex int
}

func NewTextOverlayObject(id string, opts NewTextOverlayObjectOptions) *TextOverlayObject {
	return &TextOverlayObject{
		BaseObject: NewBaseObject(id, &NewBaseObjectOpts{
			ZIndex: opts.ZIndex,
		}),
		text:       opts.Text,
		background: opts.Background,
	}
}

func (o *TextOverlayObject) Text() string {
	return o.text
}

func (o *TextOverlayObject) Draw(screen *ebiten.Image) {
	if o.background != nil {
		screen.Fill(o.background)
	}
	t := strings.ToUpper(o.text)
	f := fonts.TTFLargeFont
	bounds, _ := font.BoundString(f, t)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(screen.Bounds().Dx())/2-float64(bounds.Max.X>>6)/2, float64(screen.Bounds().Dy())/2-float64(bounds.Max.Y>>6)/2)
	op.ColorScale.ScaleWithColor(color.White)
	text.DrawWithOptions(screen, t, f, op)
}
