// Package animation reconstructs complete frames from an incrementally
// encoded animation.
//
// Animated containers store each frame as a patch: pixel data for a
// sub-rectangle of the canvas plus a dispose method describing how the
// canvas must be prepared after the frame is displayed. Reconstructor
// replays that protocol in order and emits full-canvas RGBA frames.
package animation

import "image"

// DisposeMethod controls how the canvas is treated after a frame is
// displayed, before the next frame is composited. The values coincide with
// the GIF graphic-control disposal field.
type DisposeMethod int

const (
	// DisposeNone specifies no disposal; the canvas is left as-is.
	DisposeNone DisposeMethod = 0
	// DisposeKeep leaves the canvas as-is, accumulating drawing across frames.
	DisposeKeep DisposeMethod = 1
	// DisposeBackground clears the frame's region to transparent.
	DisposeBackground DisposeMethod = 2
	// DisposePrevious restores the canvas to its state from just before the
	// frame was composited.
	DisposePrevious DisposeMethod = 3
)

// Patch is one decoded unit of the source animation: pixel data for a
// sub-rectangle of the canvas plus its display parameters.
type Patch struct {
	// Delay is the display duration in hundredths of a second.
	Delay int

	// Dispose specifies canvas cleanup after this frame is displayed.
	Dispose DisposeMethod

	// Region is the patch's placement on the canvas.
	Region image.Rectangle

	// Pix holds RGBA bytes, row-major. Its length must equal either
	// 4*Region.Dx()*Region.Dy() or the full canvas size (a full-canvas
	// replacement).
	Pix []byte
}

// Frame is a fully reconstructed animation frame. Pix is an owned
// full-canvas RGBA buffer; it is never mutated by later frames.
type Frame struct {
	Pix   []byte
	Delay int
}
