package objects

import (
	"math"

	"github.com/cbodonnell/sceneflow/client/input"
)

// Camera projects scene space onto the screen.
type Camera interface {
	GetName() string
	Position() Vector3
	Target() Vector3
	// Project maps p to screen coordinates. scale is the size in pixels of one
	// scene unit at p. ok is false when p is behind the camera.
	Project(p Vector3, screenW, screenH int) (x, y, scale float64, ok bool)
	// Update applies user controls. It is only called while the scene's input is attached.
	Update()
}

const defaultFOV = 0.8

var worldUp = Vector3{0, 1, 0}

// FreeCamera looks from a fixed position towards a target.
type FreeCamera struct {
	name     string
	position Vector3
	target   Vector3
	fov      float64
}

func NewFreeCamera(name string, position Vector3) *FreeCamera {
	return &FreeCamera{
		name:     name,
		position: position,
		fov:      defaultFOV,
	}
}

func (c *FreeCamera) GetName() string {
	return c.name
}

func (c *FreeCamera) SetTarget(target Vector3) {
	c.target = target
}

func (c *FreeCamera) Position() Vector3 {
	return c.position
}

func (c *FreeCamera) Target() Vector3 {
	return c.target
}

func (c *FreeCamera) Project(p Vector3, screenW, screenH int) (float64, float64, float64, bool) {
	return project(c.position, c.target, c.fov, p, screenW, screenH)
}

func (c *FreeCamera) Update() {}

// ArcRotateCamera orbits a target. Alpha is the longitudinal and beta the
// latitudinal rotation, both in radians.
type ArcRotateCamera struct {
	name   string
	alpha  float64
	beta   float64
	radius float64
	target Vector3
	fov    float64

	drag input.CursorDrag
}

type NewArcRotateCameraOptions struct {
	Alpha  float64
	Beta   float64
	Radius float64
	Target Vector3
	// FOV is the vertical field of view in radians. Zero selects the default.
	FOV float64
}

// Radians moved per dragged pixel.
const orbitSensitivity = 0.01

// Beta is kept away from the poles so the view basis stays defined.
const minBeta, maxBeta = 0.01, math.Pi - 0.01

func NewArcRotateCamera(name string, opts NewArcRotateCameraOptions) *ArcRotateCamera {
	fov := opts.FOV
	if fov <= 0 {
		fov = defaultFOV
	}
	return &ArcRotateCamera{
		name:   name,
		alpha:  opts.Alpha,
		beta:   clamp(opts.Beta, minBeta, maxBeta),
		radius: opts.Radius,
		target: opts.Target,
		fov:    fov,
	}
}

func (c *ArcRotateCamera) GetName() string {
	return c.name
}

func (c *ArcRotateCamera) SetTarget(target Vector3) {
	c.target = target
}

func (c *ArcRotateCamera) Target() Vector3 {
	return c.target
}

func (c *ArcRotateCamera) Alpha() float64 {
	return c.alpha
}

func (c *ArcRotateCamera) Beta() float64 {
	return c.beta
}

func (c *ArcRotateCamera) Radius() float64 {
	return c.radius
}

func (c *ArcRotateCamera) Position() Vector3 {
	sinBeta := math.Sin(c.beta)
	return c.target.Add(Vector3{
		X: c.radius * math.Cos(c.alpha) * sinBeta,
		Y: c.radius * math.Cos(c.beta),
		Z: c.radius * math.Sin(c.alpha) * sinBeta,
	})
}

func (c *ArcRotateCamera) Project(p Vector3, screenW, screenH int) (float64, float64, float64, bool) {
	return project(c.Position(), c.target, c.fov, p, screenW, screenH)
}

// Rotate orbits the camera by the given angles.
func (c *ArcRotateCamera) Rotate(dAlpha, dBeta float64) {
	c.alpha += dAlpha
	c.beta = clamp(c.beta+dBeta, minBeta, maxBeta)
}

// Zoom changes the orbit radius, never below a small positive distance.
func (c *ArcRotateCamera) Zoom(delta float64) {
	c.radius = math.Max(0.1, c.radius-delta)
}

func (c *ArcRotateCamera) Update() {
	dx, dy := c.drag.Delta()
	if dx != 0 || dy != 0 {
		c.Rotate(float64(dx)*orbitSensitivity, -float64(dy)*orbitSensitivity)
	}
	if w := input.WheelDelta(); w != 0 {
		c.Zoom(w * 0.1)
	}
}

func project(eye, target Vector3, fov float64, p Vector3, screenW, screenH int) (float64, float64, float64, bool) {
	forward := target.Sub(eye).Normalize()
	if forward.Length() == 0 {
		return 0, 0, 0, false
	}
	right := forward.Cross(worldUp).Normalize()
	if right.Length() == 0 {
		right = Vector3{1, 0, 0}
	}
	up := right.Cross(forward)

	rel := p.Sub(eye)
	depth := rel.Dot(forward)
	if depth <= 0 {
		return 0, 0, 0, false
	}
	focal := float64(screenH) / 2 / math.Tan(fov/2)
	scale := focal / depth
	x := float64(screenW)/2 + rel.Dot(right)*scale
	y := float64(screenH)/2 - rel.Dot(up)*scale
	return x, y, scale, true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
