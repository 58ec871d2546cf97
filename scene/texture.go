package scene

import (
	"image"
	"sync/atomic"
)

// Texture is an image that may arrive after the texture is first used. Until
// SetImage is called it has no pixels.
type Texture struct {
	Ref string

	img     atomic.Pointer[image.RGBA]
	version atomic.Uint64
}

// NewTexture returns an empty texture for ref.
func NewTexture(ref string) *Texture {
	return &Texture{Ref: ref}
}

// Image returns the loaded pixels, or nil.
func (t *Texture) Image() *image.RGBA {
	if t == nil {
		return nil
	}
	return t.img.Load()
}

// Loaded reports whether the texture has pixels.
func (t *Texture) Loaded() bool {
	return t.Image() != nil
}

// SetImage publishes img. It is safe to call from any goroutine.
func (t *Texture) SetImage(img *image.RGBA) {
	t.img.Store(img)
	t.version.Add(1)
}

// Version increases every time SetImage is called.
func (t *Texture) Version() uint64 {
	return t.version.Load()
}

// CubeTexture is six textures, one per box face in the order +X, -X, +Y, -Y,
// +Z, -Z.
type CubeTexture struct {
	Faces [6]*Texture
}

// Loaded reports whether every face has pixels.
func (c *CubeTexture) Loaded() bool {
	for _, face := range c.Faces {
		if !face.Loaded() {
			return false
		}
	}
	return true
}
