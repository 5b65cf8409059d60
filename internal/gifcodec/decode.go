// Package gifcodec converts between GIF containers and the pipeline's patch
// and surface types. Container parsing itself is delegated to the standard
// library; this package maps frames to animation patches on the way in and
// palettizes surfaces on the way out.
package gifcodec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"

	xdraw "golang.org/x/image/draw"

	"github.com/lilyknight39/symmetry/animation"
)

// ErrNoFrames is returned for a container with no image data.
var ErrNoFrames = errors.New("gifcodec: no frames")

// Animation holds a decoded GIF as canvas dimensions plus ordered patches.
type Animation struct {
	Width   int
	Height  int
	Patches []animation.Patch

	// LoopCount is the source container's loop count (0 = infinite). The
	// pipeline re-encodes with an infinite loop regardless; the original
	// value is surfaced for callers that want to inspect it.
	LoopCount int
}

// Sniff reports whether data starts with a GIF signature (GIF87a or GIF89a).
// It is an exact predicate on the header bytes, not a heuristic.
func Sniff(data []byte) bool {
	if len(data) < 6 {
		return false
	}
	sig := string(data[:6])
	return sig == "GIF87a" || sig == "GIF89a"
}

// Decode parses an animated GIF into patches. Each paletted sub-frame is
// expanded to RGBA so transparent palette entries become transparent pixels.
func Decode(data []byte) (*Animation, error) {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gifcodec: decoding: %w", err)
	}
	if len(g.Image) == 0 {
		return nil, ErrNoFrames
	}

	w, h := g.Config.Width, g.Config.Height
	if w == 0 || h == 0 {
		// Some writers omit the logical screen size; fall back to the first
		// frame's extent.
		b := g.Image[0].Bounds()
		w, h = b.Max.X, b.Max.Y
	}
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("gifcodec: %w", animation.ErrCanvasSize)
	}

	anim := &Animation{
		Width:     w,
		Height:    h,
		LoopCount: g.LoopCount,
		Patches:   make([]animation.Patch, len(g.Image)),
	}

	for i, frame := range g.Image {
		region := frame.Bounds()
		rgba := image.NewNRGBA(image.Rect(0, 0, region.Dx(), region.Dy()))
		xdraw.Draw(rgba, rgba.Bounds(), frame, region.Min, xdraw.Src)

		patch := animation.Patch{
			Region: region,
			Pix:    rgba.Pix,
		}
		if i < len(g.Delay) {
			patch.Delay = g.Delay[i]
		}
		if i < len(g.Disposal) {
			// GIF disposal byte values match the DisposeMethod constants.
			patch.Dispose = animation.DisposeMethod(g.Disposal[i])
		}
		anim.Patches[i] = patch
	}

	return anim, nil
}
