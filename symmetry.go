package symmetry

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/lilyknight39/symmetry/animation"
	"github.com/lilyknight39/symmetry/canvas"
	"github.com/lilyknight39/symmetry/internal/gifcodec"
	"github.com/lilyknight39/symmetry/mirror"
)

// ErrInvalidImage is returned when a decoded image has no pixels.
var ErrInvalidImage = errors.New("symmetry: image has zero dimensions")

// IsAnimated reports whether data carries an animated-capable container
// signature. A false result routes unconditionally to the static pipeline.
func IsAnimated(data []byte) bool {
	return gifcodec.Sniff(data)
}

// Render produces the mirrored rendition of an image. Animated input yields
// an animated GIF; still input yields a PNG.
func Render(data []byte, dir mirror.Direction) ([]byte, error) {
	if IsAnimated(data) {
		return RenderAnimation(data, dir)
	}
	return RenderStatic(data, dir)
}

// RenderAnimation decodes an animated GIF, reconstructs its full frames,
// mirrors each one and re-encodes the result. Frame order and per-frame
// delays are preserved; the output loops forever.
//
// Two surfaces are reused across the frame loop: a scratch surface holding
// the reconstructed frame and an output surface for its mirrored rendition.
func RenderAnimation(data []byte, dir mirror.Direction) ([]byte, error) {
	anim, err := gifcodec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("symmetry: decoding animation: %w", err)
	}

	rec, err := animation.NewReconstructor(anim.Patches, anim.Width, anim.Height)
	if err != nil {
		return nil, fmt.Errorf("symmetry: %w", err)
	}

	scratch := canvas.New(anim.Width, anim.Height)
	out := canvas.New(anim.Width, anim.Height)

	var buf bytes.Buffer
	enc := gifcodec.NewEncoder(&buf, anim.Width, anim.Height, nil)

	for rec.HasNext() {
		frame, err := rec.NextFrame()
		if err != nil {
			return nil, fmt.Errorf("symmetry: %w", err)
		}
		if err := scratch.LoadPixels(frame.Pix); err != nil {
			return nil, fmt.Errorf("symmetry: %w", err)
		}
		if err := mirror.Mirror(scratch, out, dir); err != nil {
			return nil, fmt.Errorf("symmetry: %w", err)
		}
		// Source delays are hundredths of a second; the writer wants
		// milliseconds.
		if err := enc.AddFrame(out, frame.Delay*10); err != nil {
			return nil, fmt.Errorf("symmetry: encoding animation: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("symmetry: encoding animation: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderStatic decodes a still image, mirrors it and encodes the result as
// a PNG.
func RenderStatic(data []byte, dir mirror.Direction) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("symmetry: decoding image: %w", err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, ErrInvalidImage
	}

	src := canvas.FromImage(img)
	out := canvas.New(b.Dx(), b.Dy())
	if err := mirror.Mirror(src, out, dir); err != nil {
		return nil, fmt.Errorf("symmetry: %w", err)
	}

	var buf bytes.Buffer
	if err := out.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("symmetry: encoding image: %w", err)
	}
	return buf.Bytes(), nil
}
