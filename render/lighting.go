package render

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/plus3/orrery/scene"
)

// lights is the graph's lighting gathered once per frame, in linear RGB.
type lights struct {
	ambient mgl32.Vec3
	points  []pointLight
}

type pointLight struct {
	position mgl32.Vec3
	color    mgl32.Vec3 // linear color times intensity
	distance float32
	decay    float32
}

func gatherLights(g *scene.Graph) lights {
	var l lights
	for _, a := range g.Ambient {
		l.ambient = l.ambient.Add(linear(a.Color).Mul(a.Intensity))
	}
	for _, p := range g.Points {
		l.points = append(l.points, pointLight{
			position: p.Position,
			color:    linear(p.Color).Mul(p.Intensity),
			distance: p.Distance,
			decay:    p.Decay,
		})
	}
	return l
}

// irradiance returns the Lambert-weighted light reaching a surface point
// with unit normal n, in linear RGB.
func (l *lights) irradiance(position, n mgl32.Vec3) mgl32.Vec3 {
	total := l.ambient
	for _, p := range l.points {
		toLight := p.position.Sub(position)
		d := toLight.Len()
		if d == 0 {
			continue
		}
		dotNL := n.Dot(toLight.Mul(1 / d))
		if dotNL <= 0 {
			continue
		}
		total = total.Add(p.color.Mul(dotNL * attenuation(d, p.distance, p.decay)))
	}
	return total.Mul(1 / math32.Pi)
}

// attenuation is inverse-power falloff smoothly windowed to zero at cutoff.
func attenuation(d, cutoff, decay float32) float32 {
	falloff := 1 / max(math32.Pow(d, decay), 0.01)
	if cutoff > 0 {
		r := d / cutoff
		w := mgl32.Clamp(1-r*r*r*r, 0, 1)
		falloff *= w * w
	}
	return falloff
}

// shade returns a vertex color in sRGB for a material under irradiance e.
func shade(m *scene.Material, e mgl32.Vec3) colorful.Color {
	r, g, b := m.Color.LinearRgb()
	return colorful.LinearRgb(r*float64(e[0]), g*float64(e[1]), b*float64(e[2])).Clamped()
}

func linear(c colorful.Color) mgl32.Vec3 {
	r, g, b := c.LinearRgb()
	return mgl32.Vec3{float32(r), float32(g), float32(b)}
}
