package asset

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log/slog"
	"sync"
	"time"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/plus3/orrery/scene"
)

// ErrNotImage is returned for files whose contents are not a known image
// format.
var ErrNotImage = errors.New("not an image")

// DefaultMaxTextureSize bounds the longer side of decoded textures.
const DefaultMaxTextureSize = 2048

// TextureLoader decodes textures from a file system in the background.
// Textures with the same ref are loaded once and shared.
type TextureLoader struct {
	fsys    fs.FS
	maxSize int
	logger  *slog.Logger

	mu     sync.Mutex
	cache  map[string]*scene.Texture
	failed map[string]error
	wg     sync.WaitGroup
}

// NewTextureLoader loads refs relative to fsys. maxSize <= 0 selects
// DefaultMaxTextureSize; a nil logger selects slog.Default().
func NewTextureLoader(fsys fs.FS, maxSize int, logger *slog.Logger) *TextureLoader {
	if maxSize <= 0 {
		maxSize = DefaultMaxTextureSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TextureLoader{
		fsys:    fsys,
		maxSize: maxSize,
		logger:  logger,
		cache:   make(map[string]*scene.Texture),
		failed:  make(map[string]error),
	}
}

// Load returns the texture for ref immediately. Its pixels arrive when
// decoding finishes; if decoding fails the failure is logged and the texture
// stays empty.
func (l *TextureLoader) Load(ref string) *scene.Texture {
	l.mu.Lock()
	defer l.mu.Unlock()

	if tex, ok := l.cache[ref]; ok {
		return tex
	}

	tex := scene.NewTexture(ref)
	l.cache[ref] = tex
	l.wg.Add(1)
	go l.load(tex)
	return tex
}

// LoadCube loads six face textures in +X, -X, +Y, -Y, +Z, -Z order.
func (l *TextureLoader) LoadCube(refs [6]string) *scene.CubeTexture {
	cube := &scene.CubeTexture{}
	for i, ref := range refs {
		cube.Faces[i] = l.Load(ref)
	}
	return cube
}

// Wait blocks until every load started so far has finished.
func (l *TextureLoader) Wait() {
	l.wg.Wait()
}

// Err returns the error that left ref empty, or nil.
func (l *TextureLoader) Err(ref string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.failed[ref]
}

func (l *TextureLoader) load(tex *scene.Texture) {
	defer l.wg.Done()

	start := time.Now()
	img, err := l.decode(tex.Ref)
	if err != nil {
		l.mu.Lock()
		l.failed[tex.Ref] = err
		l.mu.Unlock()
		l.logger.Warn("texture load failed", "ref", tex.Ref, "err", err)
		return
	}

	tex.SetImage(img)
	l.logger.Debug("texture loaded", "ref", tex.Ref,
		"size", img.Bounds().Size().String(), "duration", time.Since(start))
}

func (l *TextureLoader) decode(ref string) (*image.RGBA, error) {
	data, err := fs.ReadFile(l.fsys, ref)
	if err != nil {
		return nil, fmt.Errorf("read texture: %w", err)
	}

	if !filetype.IsImage(data) {
		return nil, fmt.Errorf("texture %s: %w", ref, ErrNotImage)
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", ref, err)
	}
	l.logger.Debug("texture decoded", "ref", ref, "format", format)

	return toRGBA(src, l.maxSize), nil
}

// toRGBA copies src into a new RGBA image whose longer side is at most
// maxSize.
func toRGBA(src image.Image, maxSize int) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	if w > maxSize || h > maxSize {
		if w >= h {
			h = max(1, h*maxSize/w)
			w = maxSize
		} else {
			w = max(1, w*maxSize/h)
			h = maxSize
		}
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
		return dst
	}

	if rgba, ok := src.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(dst, dst.Bounds(), src, b.Min, xdraw.Src)
	return dst
}
