package animation

import (
	"errors"
	"fmt"
	"image"
)

var (
	// ErrCanvasSize is returned for a zero-area canvas.
	ErrCanvasSize = errors.New("animation: invalid canvas dimensions")
	// ErrMalformedFrame is returned when a patch's pixel buffer does not
	// match its region, or its region falls outside the canvas.
	ErrMalformedFrame = errors.New("animation: malformed frame")
	// ErrNoFrames is returned by NextFrame after the last frame.
	ErrNoFrames = errors.New("animation: no frames left")
)

// Reconstructor replays an animation's incremental-rendering protocol
// frame by frame. A single full-canvas working buffer is mutated in place
// across the whole sequence; callers receive an independent copy per frame.
//
// Dispose methods describe cleanup after display, so a frame's own dispose
// method is applied at the start of the next iteration, not its own. The
// snapshot for DisposePrevious is taken before the disposing frame is
// composited.
type Reconstructor struct {
	patches []Patch
	width   int
	height  int

	canvas []byte // working canvas, persists across frames
	snap   []byte // restore target for DisposePrevious, nil when not armed

	pendingDispose DisposeMethod
	pendingRegion  image.Rectangle

	pos int
}

// NewReconstructor creates a Reconstructor over a transparent width×height
// canvas. Patches are consumed strictly in order.
func NewReconstructor(patches []Patch, width, height int) (*Reconstructor, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrCanvasSize, width, height)
	}
	return &Reconstructor{
		patches: patches,
		width:   width,
		height:  height,
		canvas:  make([]byte, width*height*4),
	}, nil
}

// HasNext reports whether more frames are available.
func (r *Reconstructor) HasNext() bool {
	return r.pos < len(r.patches)
}

// NextFrame composites the next patch and returns the resolved full-canvas
// frame. The returned pixel buffer is owned by the caller.
func (r *Reconstructor) NextFrame() (Frame, error) {
	if !r.HasNext() {
		return Frame{}, ErrNoFrames
	}
	p := &r.patches[r.pos]

	if err := r.validate(p); err != nil {
		return Frame{}, fmt.Errorf("frame %d: %w", r.pos, err)
	}

	// Apply the previous frame's dispose method.
	switch r.pendingDispose {
	case DisposeBackground:
		r.clearRegion(r.pendingRegion)
	case DisposePrevious:
		if r.snap != nil {
			copy(r.canvas, r.snap)
		}
	}

	// A frame that will later restore-to-previous needs the canvas captured
	// before its own pixels land. Any older snapshot is dropped either way;
	// a stale one must never be restored by a later frame.
	if p.Dispose == DisposePrevious {
		snap := make([]byte, len(r.canvas))
		copy(snap, r.canvas)
		r.snap = snap
	} else {
		r.snap = nil
	}

	r.composite(p)

	out := make([]byte, len(r.canvas))
	copy(out, r.canvas)

	r.pendingDispose = p.Dispose
	r.pendingRegion = p.Region
	r.pos++

	return Frame{Pix: out, Delay: p.Delay}, nil
}

// validate checks the patch's region and pixel buffer against the canvas.
func (r *Reconstructor) validate(p *Patch) error {
	bounds := image.Rect(0, 0, r.width, r.height)
	if p.Region != p.Region.Intersect(bounds) {
		return fmt.Errorf("%w: region %v outside %dx%d canvas", ErrMalformedFrame, p.Region, r.width, r.height)
	}
	want := 4 * p.Region.Dx() * p.Region.Dy()
	if len(p.Pix) != want && len(p.Pix) != len(r.canvas) {
		return fmt.Errorf("%w: %d pixel bytes, want %d (region) or %d (canvas)", ErrMalformedFrame, len(p.Pix), want, len(r.canvas))
	}
	return nil
}

// composite draws the patch onto the working canvas. A full-canvas buffer
// replaces the canvas outright; a region-sized buffer is copied row by row
// at the region's offset.
func (r *Reconstructor) composite(p *Patch) {
	if len(p.Pix) == len(r.canvas) {
		copy(r.canvas, p.Pix)
		return
	}
	rowLen := p.Region.Dx() * 4
	for y := 0; y < p.Region.Dy(); y++ {
		src := y * rowLen
		dst := ((p.Region.Min.Y+y)*r.width + p.Region.Min.X) * 4
		copy(r.canvas[dst:dst+rowLen], p.Pix[src:src+rowLen])
	}
}

// clearRegion zero-fills a rectangle of the canvas, respecting the canvas
// stride. The rectangle is clamped to the canvas bounds.
func (r *Reconstructor) clearRegion(rect image.Rectangle) {
	rect = rect.Intersect(image.Rect(0, 0, r.width, r.height))
	if rect.Empty() {
		return
	}
	rowLen := rect.Dx() * 4
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		off := (y*r.width + rect.Min.X) * 4
		row := r.canvas[off : off+rowLen]
		for i := range row {
			row[i] = 0
		}
	}
}

// Reconstruct resolves every patch in order. It is shorthand for draining a
// Reconstructor.
func Reconstruct(patches []Patch, width, height int) ([]Frame, error) {
	rec, err := NewReconstructor(patches, width, height)
	if err != nil {
		return nil, err
	}
	frames := make([]Frame, 0, len(patches))
	for rec.HasNext() {
		f, err := rec.NextFrame()
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}
	return frames, nil
}
