package animation

import (
	"errors"
	"image"
	"testing"
)

var (
	red   = [4]byte{255, 0, 0, 255}
	green = [4]byte{0, 255, 0, 255}
	blue  = [4]byte{0, 0, 255, 255}
	white = [4]byte{255, 255, 255, 255}
	clear = [4]byte{0, 0, 0, 0}
)

// solidPix returns a w×h RGBA buffer filled with one color.
func solidPix(w, h int, c [4]byte) []byte {
	pix := make([]byte, w*h*4)
	for i := 0; i < len(pix); i += 4 {
		copy(pix[i:], c[:])
	}
	return pix
}

// at reads the pixel at (x, y) from a full-canvas buffer of width w.
func at(pix []byte, w, x, y int) [4]byte {
	var c [4]byte
	copy(c[:], pix[(y*w+x)*4:])
	return c
}

func TestReconstructTwoFrameWithBackgroundDisposal(t *testing.T) {
	patches := []Patch{
		{Delay: 5, Dispose: DisposeNone, Region: image.Rect(0, 0, 2, 2), Pix: solidPix(2, 2, red)},
		{Delay: 3, Dispose: DisposeBackground, Region: image.Rect(1, 1, 2, 2), Pix: solidPix(1, 1, blue)},
		{Delay: 1, Dispose: DisposeNone, Region: image.Rect(0, 0, 1, 1), Pix: solidPix(1, 1, red)},
	}

	frames, err := Reconstruct(patches, 2, 2)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("got %d frames, want 3", len(frames))
	}
	if frames[0].Delay != 5 || frames[1].Delay != 3 {
		t.Errorf("delays = %d, %d, want 5, 3", frames[0].Delay, frames[1].Delay)
	}

	// Frame 1: full red.
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := at(frames[0].Pix, 2, x, y); got != red {
				t.Errorf("frame 1 (%d,%d) = %v, want red", x, y, got)
			}
		}
	}

	// Frame 2: red with blue at (1,1).
	if got := at(frames[1].Pix, 2, 1, 1); got != blue {
		t.Errorf("frame 2 (1,1) = %v, want blue", got)
	}
	if got := at(frames[1].Pix, 2, 0, 1); got != red {
		t.Errorf("frame 2 (0,1) = %v, want red", got)
	}

	// Frame 3: frame 2's background disposal clears exactly (1,1).
	if got := at(frames[2].Pix, 2, 1, 1); got != clear {
		t.Errorf("frame 3 (1,1) = %v, want transparent", got)
	}
	if got := at(frames[2].Pix, 2, 1, 0); got != red {
		t.Errorf("frame 3 (1,0) = %v, want red", got)
	}
}

func TestBackgroundDisposalClearsDeclaredRegionOnly(t *testing.T) {
	// The cleared rectangle is the previous frame's declared region, even
	// when its pixel buffer was a full-canvas replacement.
	patches := []Patch{
		{Dispose: DisposeBackground, Region: image.Rect(1, 1, 3, 3), Pix: solidPix(4, 4, red)},
		{Dispose: DisposeNone, Region: image.Rect(0, 0, 1, 1), Pix: solidPix(1, 1, red)},
	}

	frames, err := Reconstruct(patches, 4, 4)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			inside := x >= 1 && x < 3 && y >= 1 && y < 3
			got := at(frames[1].Pix, 4, x, y)
			if inside && got != clear {
				t.Errorf("(%d,%d) = %v, want transparent", x, y, got)
			}
			if !inside && got != red {
				t.Errorf("(%d,%d) = %v, want red (unchanged)", x, y, got)
			}
		}
	}
}

func TestRestorePreviousSnapshotsBeforeCompositing(t *testing.T) {
	// Frame A disposes to previous, so the canvas must come back to its
	// state from before A's own pixels landed (all red), not after.
	patches := []Patch{
		{Dispose: DisposeKeep, Region: image.Rect(0, 0, 2, 2), Pix: solidPix(2, 2, red)},
		{Dispose: DisposePrevious, Region: image.Rect(0, 0, 1, 1), Pix: solidPix(1, 1, blue)},
		{Dispose: DisposeKeep, Region: image.Rect(1, 0, 2, 1), Pix: solidPix(1, 1, green)},
	}

	frames, err := Reconstruct(patches, 2, 2)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}

	if got := at(frames[1].Pix, 2, 0, 0); got != blue {
		t.Errorf("frame A (0,0) = %v, want blue", got)
	}
	if got := at(frames[2].Pix, 2, 0, 0); got != red {
		t.Errorf("after restore, (0,0) = %v, want red", got)
	}
	if got := at(frames[2].Pix, 2, 1, 0); got != green {
		t.Errorf("frame B (1,0) = %v, want green", got)
	}
}

func TestStaleSnapshotIsNotReused(t *testing.T) {
	// p0 arms a snapshot of the blank canvas. p1 does not dispose to
	// previous, so that snapshot must be dropped; p2's own snapshot is the
	// only one p3's restore may use.
	patches := []Patch{
		{Dispose: DisposePrevious, Region: image.Rect(0, 0, 2, 2), Pix: solidPix(2, 2, red)},
		{Dispose: DisposeKeep, Region: image.Rect(0, 0, 1, 1), Pix: solidPix(1, 1, green)},
		{Dispose: DisposePrevious, Region: image.Rect(1, 1, 2, 2), Pix: solidPix(1, 1, blue)},
		{Dispose: DisposeNone, Region: image.Rect(0, 1, 1, 2), Pix: solidPix(1, 1, white)},
	}

	frames, err := Reconstruct(patches, 2, 2)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}

	// p0's disposal restored the blank pre-p0 canvas, then p1 drew green.
	if got := at(frames[1].Pix, 2, 0, 0); got != green {
		t.Errorf("frame 2 (0,0) = %v, want green", got)
	}
	if got := at(frames[1].Pix, 2, 1, 0); got != clear {
		t.Errorf("frame 2 (1,0) = %v, want transparent", got)
	}

	// p2's disposal restores the frame-2 state: blue at (1,1) reverts.
	if got := at(frames[3].Pix, 2, 1, 1); got != clear {
		t.Errorf("frame 4 (1,1) = %v, want transparent", got)
	}
	if got := at(frames[3].Pix, 2, 0, 0); got != green {
		t.Errorf("frame 4 (0,0) = %v, want green", got)
	}
	if got := at(frames[3].Pix, 2, 0, 1); got != white {
		t.Errorf("frame 4 (0,1) = %v, want white", got)
	}
}

func TestKeepDisposalAccumulates(t *testing.T) {
	patches := []Patch{
		{Dispose: DisposeKeep, Region: image.Rect(0, 0, 1, 1), Pix: solidPix(1, 1, red)},
		{Dispose: DisposeKeep, Region: image.Rect(1, 0, 2, 1), Pix: solidPix(1, 1, blue)},
	}

	frames, err := Reconstruct(patches, 2, 1)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	if got := at(frames[1].Pix, 2, 0, 0); got != red {
		t.Errorf("frame 2 (0,0) = %v, want red carried over", got)
	}
	if got := at(frames[1].Pix, 2, 1, 0); got != blue {
		t.Errorf("frame 2 (1,0) = %v, want blue", got)
	}
}

func TestEmittedFramesAreOwnedCopies(t *testing.T) {
	patches := []Patch{
		{Dispose: DisposeKeep, Region: image.Rect(0, 0, 1, 1), Pix: solidPix(1, 1, red)},
		{Dispose: DisposeKeep, Region: image.Rect(1, 0, 2, 1), Pix: solidPix(1, 1, blue)},
	}

	rec, err := NewReconstructor(patches, 2, 1)
	if err != nil {
		t.Fatalf("NewReconstructor: %v", err)
	}
	first, err := rec.NextFrame()
	if err != nil {
		t.Fatalf("NextFrame: %v", err)
	}
	for i := range first.Pix {
		first.Pix[i] = 0xAA
	}
	second, err := rec.NextFrame()
	if err != nil {
		t.Fatalf("NextFrame: %v", err)
	}
	if got := at(second.Pix, 2, 0, 0); got != red {
		t.Errorf("frame 2 (0,0) = %v, want red; mutating frame 1 leaked into the canvas", got)
	}
}

func TestMalformedPixelBuffer(t *testing.T) {
	patches := []Patch{
		{Region: image.Rect(0, 0, 2, 2), Pix: make([]byte, 7)},
	}
	_, err := Reconstruct(patches, 4, 4)
	if !errors.Is(err, ErrMalformedFrame) {
		t.Errorf("got %v, want ErrMalformedFrame", err)
	}
}

func TestRegionOutsideCanvas(t *testing.T) {
	patches := []Patch{
		{Region: image.Rect(2, 2, 5, 5), Pix: solidPix(3, 3, red)},
	}
	_, err := Reconstruct(patches, 4, 4)
	if !errors.Is(err, ErrMalformedFrame) {
		t.Errorf("got %v, want ErrMalformedFrame", err)
	}
}

func TestZeroCanvas(t *testing.T) {
	if _, err := NewReconstructor(nil, 0, 10); !errors.Is(err, ErrCanvasSize) {
		t.Errorf("got %v, want ErrCanvasSize", err)
	}
	if _, err := NewReconstructor(nil, 10, 0); !errors.Is(err, ErrCanvasSize) {
		t.Errorf("got %v, want ErrCanvasSize", err)
	}
}

func TestNextFrameExhausted(t *testing.T) {
	rec, err := NewReconstructor(nil, 1, 1)
	if err != nil {
		t.Fatalf("NewReconstructor: %v", err)
	}
	if rec.HasNext() {
		t.Error("HasNext() = true for empty sequence")
	}
	if _, err := rec.NextFrame(); !errors.Is(err, ErrNoFrames) {
		t.Errorf("got %v, want ErrNoFrames", err)
	}
}

func TestFullCanvasFastPath(t *testing.T) {
	// A full-canvas pixel buffer replaces the canvas verbatim, regardless
	// of the declared region.
	patches := []Patch{
		{Dispose: DisposeKeep, Region: image.Rect(0, 0, 2, 2), Pix: solidPix(2, 2, red)},
		{Dispose: DisposeKeep, Region: image.Rect(0, 0, 1, 1), Pix: solidPix(2, 2, blue)},
	}
	frames, err := Reconstruct(patches, 2, 2)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := at(frames[1].Pix, 2, x, y); got != blue {
				t.Errorf("frame 2 (%d,%d) = %v, want blue", x, y, got)
			}
		}
	}
}
