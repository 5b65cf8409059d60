package gifcodec

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"

	"github.com/ericpauley/go-quantize/quantize"

	"github.com/lilyknight39/symmetry/canvas"
)

// maxColors is the GIF palette size limit.
const maxColors = 256

// EncoderOptions configures the Encoder.
type EncoderOptions struct {
	// LoopCount is the animation loop count (0 = loop forever).
	LoopCount int

	// NumColors is the per-frame palette size including the reserved
	// transparent slot, at most 256. Zero means 256.
	NumColors int
}

// Encoder writes an animated GIF frame by frame. Frames are emitted in
// submission order; Close assembles the container.
type Encoder struct {
	w      io.Writer
	g      *gif.GIF
	bounds image.Rectangle
	colors int
	quant  quantize.MedianCutQuantizer
	closed bool
}

// NewEncoder creates an Encoder for a width×height canvas.
// opts may be nil, which loops forever with full 256-color palettes.
func NewEncoder(w io.Writer, width, height int, opts *EncoderOptions) *Encoder {
	e := &Encoder{
		w:      w,
		bounds: image.Rect(0, 0, width, height),
		colors: maxColors,
		g: &gif.GIF{
			Config: image.Config{Width: width, Height: height},
		},
	}
	if opts != nil {
		e.g.LoopCount = opts.LoopCount
		if opts.NumColors > 0 && opts.NumColors <= maxColors {
			e.colors = opts.NumColors
		}
	}
	return e
}

// AddFrame appends one full-canvas frame with the given display duration in
// milliseconds. durations below the container's 10ms granularity floor to
// zero. The surface contents are consumed immediately; the caller may reuse
// the surface for the next frame.
func (e *Encoder) AddFrame(src canvas.Surface, delayMS int) error {
	if e.closed {
		return errors.New("gifcodec: encoder is closed")
	}
	if src.Width() != e.bounds.Dx() || src.Height() != e.bounds.Dy() {
		return fmt.Errorf("gifcodec: frame is %dx%d, canvas is %dx%d",
			src.Width(), src.Height(), e.bounds.Dx(), e.bounds.Dy())
	}

	img := image.NewNRGBA(e.bounds)
	copy(img.Pix, src.Pixels())

	// Median-cut to one less than the palette budget, keeping a slot for
	// transparency at index 0.
	p := e.quant.Quantize(make([]color.Color, 0, e.colors-1), img)
	pal := make(color.Palette, 0, len(p)+1)
	pal = append(pal, color.RGBA{})
	pal = append(pal, p...)

	frame := image.NewPaletted(e.bounds, pal)
	draw.FloydSteinberg.Draw(frame, e.bounds, img, image.Point{})

	e.g.Image = append(e.g.Image, frame)
	e.g.Delay = append(e.g.Delay, clampDelay(delayMS)/10)
	// Full-canvas frames with transparent pixels must not show through to
	// the frame below; clear before the next one.
	e.g.Disposal = append(e.g.Disposal, gif.DisposalBackground)
	return nil
}

// Close assembles the container and writes it out. The encoder accepts no
// frames afterwards.
func (e *Encoder) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	if len(e.g.Image) == 0 {
		return ErrNoFrames
	}
	if err := gif.EncodeAll(e.w, e.g); err != nil {
		return fmt.Errorf("gifcodec: encoding: %w", err)
	}
	return nil
}

// clampDelay floors a millisecond duration at zero.
func clampDelay(ms int) int {
	if ms < 0 {
		return 0
	}
	return ms
}
