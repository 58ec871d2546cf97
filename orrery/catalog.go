package orrery

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// BodySpinRate is the self rotation, in radians per frame, shared by every
// orbiting body.
const BodySpinRate = 0.01

// SphereSegments is the width and height segment count of body spheres and
// the theta segment count of rings.
const SphereSegments = 30

// RingDescriptor is a flat annulus around a body.
type RingDescriptor struct {
	InnerRadius float32
	OuterRadius float32
	Texture     string
}

// BodyDescriptor holds everything needed to build and move one body.
type BodyDescriptor struct {
	Name            string
	Radius          float32
	Texture         string
	OrbitalDistance float32
	Ring            *RingDescriptor

	// SpinRate is added to the body's Y rotation every frame.
	SpinRate float32
	// OrbitRate is added to the pivot's Y rotation every frame.
	OrbitRate float32
}

// Catalog is the central body plus the orbiting bodies in spawn order.
type Catalog struct {
	Central BodyDescriptor
	Bodies  []BodyDescriptor
}

// Sun is the central body of DefaultCatalog.
var Sun = BodyDescriptor{
	Name:     "sun",
	Radius:   16,
	Texture:  "sun-texture.jpg",
	SpinRate: 0.004,
}

// SkyboxTextures are the cube faces of the background, +X through -Z.
var SkyboxTextures = [6]string{
	"start-background.jpg",
	"start-background.jpg",
	"start-background.jpg",
	"start-background.jpg",
	"start-background.jpg",
	"start-background.jpg",
}

func planet(name string, radius, distance, orbitRate float32) BodyDescriptor {
	return BodyDescriptor{
		Name:            name,
		Radius:          radius,
		Texture:         name + "-texture.jpg",
		OrbitalDistance: distance,
		SpinRate:        BodySpinRate,
		OrbitRate:       orbitRate,
	}
}

func ringed(desc BodyDescriptor, inner, outer float32) BodyDescriptor {
	desc.Ring = &RingDescriptor{
		InnerRadius: inner,
		OuterRadius: outer,
		Texture:     desc.Name + "-ring-texture.png",
	}
	return desc
}

// DefaultCatalog returns the sun and its nine bodies. Each call returns a
// fresh copy.
func DefaultCatalog() Catalog {
	return Catalog{
		Central: Sun,
		Bodies: []BodyDescriptor{
			planet("mercury", 3.2, 30, 0.008),
			planet("venus", 4, 45, 0.007),
			planet("earth", 5, 60, 0.006),
			planet("mars", 4, 90, 0.005),
			ringed(planet("saturn", 9, 120, 0.004), 12, 20),
			planet("jupiter", 10, 180, 0.003),
			ringed(planet("uranus", 7, 210, 0.0025), 9, 15),
			planet("neptune", 8, 240, 0.002),
			planet("pluto", 2, 270, 0.001),
		},
	}
}

// ValidateCatalog reports every descriptor that breaks the factory's input
// contract, duplicate names, and any body that orbits slower than a body
// farther out.
func ValidateCatalog(c Catalog) error {
	var errs []error

	if c.Central.Radius <= 0 {
		errs = append(errs, fmt.Errorf("central body %q: radius %g must be positive", c.Central.Name, c.Central.Radius))
	}

	seen := map[string]bool{c.Central.Name: true}
	for _, desc := range c.Bodies {
		if seen[desc.Name] {
			errs = append(errs, fmt.Errorf("body %q: duplicate name", desc.Name))
		}
		seen[desc.Name] = true
		errs = append(errs, validateBody(desc)...)
	}

	byDistance := slices.Clone(c.Bodies)
	slices.SortStableFunc(byDistance, func(a, b BodyDescriptor) int {
		return cmp.Compare(a.OrbitalDistance, b.OrbitalDistance)
	})
	for i := 1; i < len(byDistance); i++ {
		near, far := byDistance[i-1], byDistance[i]
		if near.OrbitalDistance < far.OrbitalDistance && near.OrbitRate < far.OrbitRate {
			errs = append(errs, fmt.Errorf("body %q at %g orbits slower (%g) than %q at %g (%g)",
				near.Name, near.OrbitalDistance, near.OrbitRate, far.Name, far.OrbitalDistance, far.OrbitRate))
		}
	}

	return errors.Join(errs...)
}

func validateBody(desc BodyDescriptor) []error {
	var errs []error
	if desc.Radius <= 0 {
		errs = append(errs, fmt.Errorf("body %q: radius %g must be positive", desc.Name, desc.Radius))
	}
	if desc.OrbitalDistance < 0 {
		errs = append(errs, fmt.Errorf("body %q: orbital distance %g must not be negative", desc.Name, desc.OrbitalDistance))
	}
	if r := desc.Ring; r != nil && (r.InnerRadius < 0 || r.InnerRadius >= r.OuterRadius) {
		errs = append(errs, fmt.Errorf("body %q: ring radii %g..%g must satisfy 0 <= inner < outer",
			desc.Name, r.InnerRadius, r.OuterRadius))
	}
	return errs
}
