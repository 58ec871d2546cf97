package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// AmbientLight lights every surface equally.
type AmbientLight struct {
	Color     colorful.Color
	Intensity float32
}

// PointLight radiates from Position. Distance is the cutoff past which it
// contributes nothing, zero meaning unbounded. Decay is the falloff exponent.
type PointLight struct {
	Position  mgl32.Vec3
	Color     colorful.Color
	Intensity float32
	Distance  float32
	Decay     float32
}

// NewAmbientLight parses hex as a color such as "#333333".
func NewAmbientLight(hex string, intensity float32) (*AmbientLight, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, err
	}
	return &AmbientLight{Color: c, Intensity: intensity}, nil
}
