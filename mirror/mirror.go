package mirror

import (
	"errors"
	"image"

	"github.com/lilyknight39/symmetry/canvas"
)

var (
	// ErrEmptySurface is returned when the source has no pixels.
	ErrEmptySurface = errors.New("mirror: source surface is empty")
	// ErrSizeMismatch is returned when dst does not match the source size.
	ErrSizeMismatch = errors.New("mirror: destination size does not match source")
)

// Mirror draws the mirrored rendition of src into dst, which must have the
// same dimensions. dst is fully overwritten.
//
// The base region always takes the larger (ceil) half of an odd dimension;
// the reflected copy is a scaled blit into the remainder, so for odd sizes
// the center column or row is shared across the seam.
func Mirror(src, dst canvas.Surface, dir Direction) error {
	w, h := src.Width(), src.Height()
	if w <= 0 || h <= 0 {
		return ErrEmptySurface
	}
	if dst.Width() != w || dst.Height() != h {
		return ErrSizeMismatch
	}

	baseW := (w + 1) / 2
	baseH := (h + 1) / 2

	switch dir {
	case Left:
		base := image.Rect(0, 0, baseW, h)
		dst.DrawRegion(src, base, base, false, false)
		dst.DrawRegion(src, base, image.Rect(baseW, 0, w, h), true, false)
	case Right:
		base := image.Rect(w-baseW, 0, w, h)
		dst.DrawRegion(src, base, base, false, false)
		dst.DrawRegion(src, base, image.Rect(0, 0, w-baseW, h), true, false)
	case Up:
		base := image.Rect(0, 0, w, baseH)
		dst.DrawRegion(src, base, base, false, false)
		dst.DrawRegion(src, base, image.Rect(0, baseH, w, h), false, true)
	case Down:
		base := image.Rect(0, h-baseH, w, h)
		dst.DrawRegion(src, base, base, false, false)
		dst.DrawRegion(src, base, image.Rect(0, 0, w, h-baseH), false, true)
	case Both:
		base := image.Rect(0, 0, baseW, baseH)
		dst.DrawRegion(src, base, base, false, false)
		dst.DrawRegion(src, base, image.Rect(baseW, 0, w, baseH), true, false)
		dst.DrawRegion(src, base, image.Rect(0, baseH, baseW, h), false, true)
		dst.DrawRegion(src, base, image.Rect(baseW, baseH, w, h), true, true)
	default:
		return ErrUnknownDirection
	}
	return nil
}
