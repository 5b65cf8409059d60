// Package canvas provides the RGBA drawing surface the rendering pipelines
// draw through. The Surface interface is the narrow capability the mirror
// compositor and the frame loop need; Image is the in-memory implementation
// backing both. Keeping the compositor behind Surface keeps it testable
// without any codec.
package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
)

// Surface is a fixed-size RGBA pixel surface.
type Surface interface {
	// Width returns the surface width in pixels.
	Width() int

	// Height returns the surface height in pixels.
	Height() int

	// LoadPixels replaces the surface contents with raw RGBA bytes.
	// The buffer length must be exactly Width*Height*4.
	LoadPixels(pix []byte) error

	// Pixels returns the live RGBA buffer, 4 bytes per pixel in row-major
	// order with a stride of Width*4. Mutations are visible to the surface.
	Pixels() []byte

	// DrawRegion draws the sr region of src scaled into the dr region of
	// this surface with nearest sampling. With flipX or flipY set, the copy
	// is reflected about the boundary the two rectangles share on that axis:
	// the source column (or row) nearest the boundary lands on the
	// destination column (or row) nearest the boundary. When sr is one pixel
	// wider or taller than dr, the boundary-adjacent source line is
	// therefore duplicated into the reflection rather than dropped.
	DrawRegion(src Surface, sr, dr image.Rectangle, flipX, flipY bool)

	// EncodePNG writes the surface contents to w as a PNG still image.
	EncodePNG(w io.Writer) error
}

// ErrPixelSize is returned by LoadPixels when the buffer length does not
// match the surface dimensions.
var ErrPixelSize = errors.New("canvas: pixel buffer does not match surface size")

// Image is an in-memory Surface backed by an NRGBA pixel buffer.
type Image struct {
	img *image.NRGBA
}

// New allocates a transparent w×h surface.
func New(w, h int) *Image {
	return &Image{img: image.NewNRGBA(image.Rect(0, 0, w, h))}
}

// FromImage copies an arbitrary decoded image into a new surface.
func FromImage(src image.Image) *Image {
	return &Image{img: imaging.Clone(src)}
}

// Width returns the surface width in pixels.
func (s *Image) Width() int { return s.img.Rect.Dx() }

// Height returns the surface height in pixels.
func (s *Image) Height() int { return s.img.Rect.Dy() }

// NRGBA returns the backing image. The pixels are shared, not copied.
func (s *Image) NRGBA() *image.NRGBA { return s.img }

// LoadPixels replaces the surface contents with raw RGBA bytes.
func (s *Image) LoadPixels(pix []byte) error {
	if len(pix) != len(s.img.Pix) {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrPixelSize, len(pix), len(s.img.Pix))
	}
	copy(s.img.Pix, pix)
	return nil
}

// Pixels returns the live RGBA buffer.
func (s *Image) Pixels() []byte { return s.img.Pix }

// DrawRegion draws the sr region of src scaled into dr, optionally
// reflected. See Surface for the exact sampling contract.
func (s *Image) DrawRegion(src Surface, sr, dr image.Rectangle, flipX, flipY bool) {
	dr = dr.Intersect(s.img.Rect)
	if sr.Empty() || dr.Empty() {
		return
	}
	sw, sh := sr.Dx(), sr.Dy()
	dw, dh := dr.Dx(), dr.Dy()

	spix := src.Pixels()
	sstride := src.Width() * 4
	dpix := s.img.Pix
	dstride := s.img.Stride

	for dy := 0; dy < dh; dy++ {
		var sy int
		switch {
		case !flipY:
			sy = sr.Min.Y + dy*sh/dh
		case dr.Min.Y >= sr.Min.Y:
			// Destination below the seam: measure from its top edge.
			sy = sr.Max.Y - 1 - dy*sh/dh
		default:
			// Destination above the seam: measure from its bottom edge.
			sy = sr.Min.Y + (dh-1-dy)*sh/dh
		}
		srow := sy * sstride
		drow := (dr.Min.Y + dy) * dstride
		for dx := 0; dx < dw; dx++ {
			var sx int
			switch {
			case !flipX:
				sx = sr.Min.X + dx*sw/dw
			case dr.Min.X >= sr.Min.X:
				sx = sr.Max.X - 1 - dx*sw/dw
			default:
				sx = sr.Min.X + (dw-1-dx)*sw/dw
			}
			so := srow + sx*4
			do := drow + (dr.Min.X+dx)*4
			copy(dpix[do:do+4], spix[so:so+4])
		}
	}
}

// EncodePNG writes the surface contents to w as a PNG still image.
func (s *Image) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, s.img); err != nil {
		return fmt.Errorf("canvas: encoding png: %w", err)
	}
	return nil
}
