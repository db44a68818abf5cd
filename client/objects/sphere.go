package objects

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/solarlune/resolv"
)

const (
	// GeometrySpaceSize is the extent in pixels of the screen-space mesh index.
	GeometrySpaceSize = 4096
	// geometryCellSize is the size in pixels of a mesh index cell.
	geometryCellSize = 64
	// meshTag marks the footprints of pickable meshes.
	meshTag = "mesh"
)

// NewGeometrySpace creates the screen-space index of a scene's meshes. Each
// mesh keeps its footprint at the bounds it was last drawn at.
func NewGeometrySpace() *resolv.Space {
	return resolv.NewSpace(GeometrySpaceSize, GeometrySpaceSize, geometryCellSize, geometryCellSize)
}

// Sphere is a placeholder mesh drawn as a shaded disc. Its footprint lives in
// the scene's geometry space so the pointer can pick it.
type Sphere struct {
	*BaseObject

	center   Vector3
	diameter float64
	clr      color.NRGBA
	camera   Camera
	light    *HemisphericLight
	space    *resolv.Space
	object   *resolv.Object

	// screen position and radius from the last layout
	x, y, r float64
	visible bool
	hovered bool
}

type NewSphereOptions struct {
	Center   Vector3
	Diameter float64
	Color    color.NRGBA
	// Camera projects the sphere. Required.
	Camera Camera
	// Light shades the sphere. Nil draws it unlit.
	Light *HemisphericLight
	// Space receives the sphere footprint. Required.
	Space *resolv.Space
	// ZIndex is the z-index of the sphere.
	ZIndex int
}

var _ GameObject = &Sphere{}

func NewSphere(id string, opts NewSphereOptions) (*Sphere, error) {
	if opts.Camera == nil {
		return nil, fmt.Errorf("sphere %s requires a camera", id)
	}
	if opts.Space == nil {
		return nil, fmt.Errorf("sphere %s requires a geometry space", id)
	}
	if opts.Diameter <= 0 {
		return nil, fmt.Errorf("sphere %s has invalid diameter %v", id, opts.Diameter)
	}
	s := &Sphere{
		BaseObject: NewBaseObject(id, &NewBaseObjectOpts{
			ZIndex: opts.ZIndex,
		}),
		center:   opts.Center,
		diameter: opts.Diameter,
		clr:      opts.Color,
		camera:   opts.Camera,
		light:    opts.Light,
		space:    opts.Space,
		object:   resolv.NewObject(0, 0, 1, 1, meshTag, id),
	}
	s.object.Data = s
	return s, nil
}

func (s *Sphere) Init() error {
	s.space.Add(s.object)
	return s.BaseObject.Init()
}

func (s *Sphere) Destroy() error {
	s.space.Remove(s.object)
	s.hovered = false
	return s.BaseObject.Destroy()
}

func (s *Sphere) Footprint() *resolv.Object {
	return s.object
}

// Layout projects the sphere onto a screen of the given size and moves its
// footprint to the projected bounds.
func (s *Sphere) Layout(screenW, screenH int) {
	x, y, scale, ok := s.camera.Project(s.center, screenW, screenH)
	s.visible = ok
	if !ok {
		s.x, s.y, s.r = 0, 0, 0
	} else {
		s.x, s.y, s.r = x, y, s.diameter/2*scale
	}
	// an unprojected sphere keeps a one pixel footprint so it stays indexed
	s.object.Position = resolv.NewVector(s.x-s.r, s.y-s.r)
	s.object.Size = resolv.NewVector(math.Max(2*s.r, 1), math.Max(2*s.r, 1))
	s.object.Update()
}

// Contains reports whether the screen point lies on the disc drawn at the last layout.
func (s *Sphere) Contains(x, y float64) bool {
	if !s.visible {
		return false
	}
	dx, dy := x-s.x, y-s.y
	return dx*dx+dy*dy <= s.r*s.r
}

func (s *Sphere) Hovered() bool {
	return s.hovered
}

func (s *Sphere) Draw(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	s.Layout(w, h)
	if !s.visible {
		return
	}
	r := float32(s.r)

	toCamera := s.camera.Position().Sub(s.center).Normalize()
	shade := 1.0
	if s.light != nil {
		shade = s.light.Shade(toCamera)
	}
	if s.hovered {
		shade *= 1.25
	}
	vector.DrawFilledCircle(screen, float32(s.x), float32(s.y), r, scaleColor(s.clr, shade), true)

	if s.light == nil {
		return
	}
	// specular spot offset towards the light in screen space
	hx, hy, _, ok := s.camera.Project(s.center.Add(s.light.Direction().Scale(s.diameter/4)), w, h)
	if !ok {
		return
	}
	vector.DrawFilledCircle(screen, float32(hx), float32(hy), r/4, scaleColor(s.clr, shade*1.3), true)
}

// HoverAt marks the mesh under the screen point as hovered and clears the
// rest. It returns the hovered sphere, or nil.
func HoverAt(space *resolv.Space, x, y float64) *Sphere {
	var hit *Sphere
	cx, cy := space.WorldToSpace(x, y)
	for _, obj := range space.CheckCells(cx, cy, 1, 1, meshTag) {
		if s, ok := obj.Data.(*Sphere); ok && s.Contains(x, y) {
			hit = s
			break
		}
	}
	for _, obj := range space.Objects() {
		if s, ok := obj.Data.(*Sphere); ok {
			s.hovered = s == hit
		}
	}
	return hit
}

func scaleColor(c color.NRGBA, f float64) color.NRGBA {
	ch := func(v uint8) uint8 {
		s := float64(v) * f
		if s > 255 {
			return 255
		}
		return uint8(s)
	}
	return color.NRGBA{R: ch(c.R), G: ch(c.G), B: ch(c.B), A: c.A}
}
