// Package ebiten draws render pipeline batches with Ebiten's DrawTriangles.
package ebiten

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/orrery/render"
	"github.com/plus3/orrery/scene"
)

type cachedImage struct {
	image   *ebiten.Image
	version uint64
}

// Renderer owns the GPU copies of scene textures. Create one per window.
type Renderer struct {
	Background color.Color

	pipeline *render.Pipeline
	images   map[*scene.Texture]cachedImage
	white    *ebiten.Image
	vertices []ebiten.Vertex
	options  ebiten.DrawTrianglesOptions
}

// NewRenderer returns a renderer clearing to black.
func NewRenderer() *Renderer {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)

	return &Renderer{
		Background: color.Black,
		pipeline:   render.NewPipeline(),
		images:     make(map[*scene.Texture]cachedImage),
		// The inner pixel avoids sampling the image edge.
		white: white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		options: ebiten.DrawTrianglesOptions{
			Filter:  ebiten.FilterLinear,
			Address: ebiten.AddressRepeat,
		},
	}
}

// Stats returns the pipeline counts from the last Draw.
func (r *Renderer) Stats() render.FrameStats {
	return r.pipeline.Stats()
}

// Draw renders the context's graph from its camera onto screen.
func (r *Renderer) Draw(screen *ebiten.Image, ctx *render.SceneContext) {
	screen.Fill(r.Background)

	w, h := ctx.Size()
	if w <= 0 || h <= 0 {
		b := screen.Bounds()
		w, h = b.Dx(), b.Dy()
	}

	for _, batch := range r.pipeline.Render(ctx.Graph, ctx.Camera, w, h) {
		src, bounds := r.source(batch.Texture)
		ox, oy := float32(bounds.Min.X), float32(bounds.Min.Y)
		sw, sh := float32(bounds.Dx()), float32(bounds.Dy())

		r.vertices = r.vertices[:0]
		for _, v := range batch.Vertices {
			r.vertices = append(r.vertices, ebiten.Vertex{
				DstX:   v.X,
				DstY:   v.Y,
				SrcX:   ox + v.U*sw,
				SrcY:   oy + v.V*sh,
				ColorR: v.R,
				ColorG: v.G,
				ColorB: v.B,
				ColorA: v.A,
			})
		}
		screen.DrawTriangles(r.vertices, batch.Indices, src, &r.options)
	}
}

// source returns the image to sample for tex and the region UVs map onto.
func (r *Renderer) source(tex *scene.Texture) (*ebiten.Image, image.Rectangle) {
	if tex == nil {
		return r.white, r.white.Bounds()
	}

	cached, ok := r.images[tex]
	if !ok || cached.version != tex.Version() {
		if cached.image != nil {
			cached.image.Deallocate()
		}
		cached = cachedImage{
			image:   ebiten.NewImageFromImage(tex.Image()),
			version: tex.Version(),
		}
		r.images[tex] = cached
	}

	return cached.image, cached.image.Bounds()
}
