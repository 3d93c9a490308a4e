// Package media turns uploaded sitter photos into bounded webp images.
package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/nannyhub/babysitter-api/internal/httperr"
)

const (
	ContentType = "image/webp"
	Extension   = ".webp"

	DefaultMaxSide = 512
	maxSourceSide  = 8000
	quality        = 80
)

type PhotoProcessor struct {
	maxSide int
}

func NewPhotoProcessor(maxSide int) *PhotoProcessor {
	if maxSide <= 0 {
		maxSide = DefaultMaxSide
	}
	return &PhotoProcessor{maxSide: maxSide}
}

// Normalize decodes a jpeg, png or webp image, shrinks it to fit a
// maxSide square keeping the aspect ratio and re-encodes it as webp.
// Smaller images are never enlarged.
func (p *PhotoProcessor) Normalize(r io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read photo: %w", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, unsupported()
	}
	if cfg.Width > maxSourceSide || cfg.Height > maxSourceSide {
		return nil, httperr.Validation("photo_too_large", "photo dimensions are too large")
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, unsupported()
	}

	out := p.fit(src)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, out, &webp.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

func (p *PhotoProcessor) fit(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= p.maxSide && h <= p.maxSide {
		return src
	}

	nw, nh := p.maxSide, p.maxSide
	if w > h {
		nh = max(1, h*p.maxSide/w)
	} else {
		nw = max(1, w*p.maxSide/h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

func unsupported() error {
	return httperr.Validation("unsupported_image", "photo must be a jpeg, png or webp image")
}
