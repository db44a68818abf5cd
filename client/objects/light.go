package objects

// HemisphericLight lights surfaces facing its direction fully and surfaces
// facing away with the ground intensity.
type HemisphericLight struct {
	*BaseObject

	direction Vector3
	intensity float64
	ground    float64
}

var _ GameObject = &HemisphericLight{}

func NewHemisphericLight(id string, direction Vector3, intensity float64) *HemisphericLight {
	return &HemisphericLight{
		BaseObject: NewBaseObject(id, nil),
		direction:  direction.Normalize(),
		intensity:  intensity,
		ground:     0.2,
	}
}

func (l *HemisphericLight) Direction() Vector3 {
	return l.direction
}

// Shade returns the light factor in [0, intensity] for a surface normal.
func (l *HemisphericLight) Shade(normal Vector3) float64 {
	// hemispheric lighting blends sky and ground by the facing ratio
	t := (normal.Normalize().Dot(l.direction) + 1) / 2
	return l.intensity * (l.ground + (1-l.ground)*t)
}
