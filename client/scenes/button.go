package scenes

import (
	"image/color"

	"github.com/cbodonnell/sceneflow/client/fonts"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
)

// ButtonTrigger selects the pointer event that activates a button.
type ButtonTrigger int

const (
	// TriggerPointerUp fires on click, when the pointer is released over the button.
	TriggerPointerUp ButtonTrigger = iota
	// TriggerPointerDown fires as soon as the button is pressed.
	TriggerPointerDown
)

// ButtonLayout sizes and places a button for a screen size.
type ButtonLayout func(screenWidth, screenHeight int) (width, height int, padding widget.Insets)

type ButtonOptions struct {
	// Name identifies the button in logs.
	Name  string
	Label string
	// Width and Height are the minimum size in pixels.
	Width  int
	Height int
	// HorizontalPosition and VerticalPosition align the button on screen.
	HorizontalPosition widget.AnchorLayoutPosition
	VerticalPosition   widget.AnchorLayoutPosition
	// Padding offsets the button from the aligned screen edges.
	Padding widget.Insets
	// Layout, when set, recomputes Width, Height and Padding whenever the
	// screen size changes.
	Layout    ButtonLayout
	TextColor color.Color
	Idle      color.Color
	Hover     color.Color
	Pressed   color.Color
	Trigger   ButtonTrigger
	// KeyboardActivation lets the positive keyboard/gamepad input fire the button.
	KeyboardActivation bool
	// OnActivate is called once per activation.
	OnActivate func()
}

// Button is a scene's single GUI widget.
type Button struct {
	name       string
	label      string
	trigger    ButtonTrigger
	keyboard   bool
	onActivate func()
	widget     *widget.Button
	container  *widget.Container

	layout       ButtonLayout
	screenWidth  int
	screenHeight int
}

func NewButton(opts ButtonOptions) *Button {
	b := &Button{
		name:       opts.Name,
		label:      opts.Label,
		trigger:    opts.Trigger,
		keyboard:   opts.KeyboardActivation,
		onActivate: opts.OnActivate,
		layout:     opts.Layout,
	}

	buttonImage := &widget.ButtonImage{
		Idle:    image.NewNineSliceColor(orDefault(opts.Idle, color.Transparent)),
		Hover:   image.NewNineSliceColor(orDefault(opts.Hover, color.NRGBA{R: 255, G: 255, B: 255, A: 40})),
		Pressed: image.NewNineSliceColor(orDefault(opts.Pressed, color.NRGBA{R: 255, G: 255, B: 255, A: 80})),
	}

	b.widget = widget.NewButton(
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: opts.HorizontalPosition,
				VerticalPosition:   opts.VerticalPosition,
			}),
			widget.WidgetOpts.MinSize(opts.Width, opts.Height),
		),
		widget.ButtonOpts.Image(buttonImage),
		widget.ButtonOpts.Text(opts.Label, fonts.TTFNormalFont, &widget.ButtonTextColor{
			Idle:     orDefault(opts.TextColor, color.White),
			Disabled: color.NRGBA{R: 200, G: 200, B: 200, A: 255},
		}),
	)

	// register the activation handler with the relevant widget event
	handler := func(args interface{}) {
		b.fire()
	}
	switch opts.Trigger {
	case TriggerPointerDown:
		b.widget.PressedEvent.AddHandler(handler)
	default:
		b.widget.ClickedEvent.AddHandler(handler)
	}

	b.container = newWidgetRoot(opts.Padding)
	b.container.AddChild(b.widget)

	return b
}

func (b *Button) Name() string {
	return b.name
}

func (b *Button) Label() string {
	return b.label
}

func (b *Button) Trigger() ButtonTrigger {
	return b.trigger
}

// KeyboardActivation reports whether the positive keyboard/gamepad input fires the button.
func (b *Button) KeyboardActivation() bool {
	return b.keyboard
}

// relayout applies the button's layout to a new screen size. It returns the
// rebuilt root container, or nil when nothing changed.
func (b *Button) relayout(screenWidth, screenHeight int) *widget.Container {
	if b.layout == nil || (screenWidth == b.screenWidth && screenHeight == b.screenHeight) {
		return nil
	}
	b.screenWidth, b.screenHeight = screenWidth, screenHeight

	width, height, padding := b.layout(screenWidth, screenHeight)
	w := b.widget.GetWidget()
	w.MinWidth = width
	w.MinHeight = height

	// anchor padding is fixed at construction
	b.container.RemoveChild(b.widget)
	b.container = newWidgetRoot(padding)
	b.container.AddChild(b.widget)
	return b.container
}

func (b *Button) fire() {
	if b.onActivate != nil {
		b.onActivate()
	}
}

func orDefault(c color.Color, def color.Color) color.Color {
	if c == nil {
		return def
	}
	return c
}
