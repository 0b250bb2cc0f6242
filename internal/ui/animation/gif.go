package animation

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"time"
)

// Frames is a decoded animation ready to play.
type Frames struct {
	Images []image.Image
	Delays []time.Duration
}

// DecodeGIF composites every frame of an animated GIF onto a full canvas so
// frames can be shown independently.
func DecodeGIF(data []byte, minDelay time.Duration) (Frames, error) {
	decoded, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return Frames{}, fmt.Errorf("decode gif: %w", err)
	}
	if len(decoded.Image) == 0 {
		return Frames{}, fmt.Errorf("decode gif: no frames")
	}

	bounds := image.Rect(0, 0, decoded.Config.Width, decoded.Config.Height)
	if bounds.Empty() {
		bounds = decoded.Image[0].Bounds()
	}
	canvas := image.NewRGBA(bounds)

	frames := Frames{
		Images: make([]image.Image, 0, len(decoded.Image)),
		Delays: make([]time.Duration, 0, len(decoded.Image)),
	}
	for i, frame := range decoded.Image {
		var previous *image.RGBA
		disposal := byte(0)
		if i < len(decoded.Disposal) {
			disposal = decoded.Disposal[i]
		}
		if disposal == gif.DisposalPrevious {
			previous = image.NewRGBA(bounds)
			draw.Draw(previous, bounds, canvas, bounds.Min, draw.Src)
		}

		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
		snapshot := image.NewRGBA(bounds)
		draw.Draw(snapshot, bounds, canvas, bounds.Min, draw.Src)
		frames.Images = append(frames.Images, snapshot)

		delay := minDelay
		if i < len(decoded.Delay) {
			if d := time.Duration(decoded.Delay[i]) * 10 * time.Millisecond; d > minDelay {
				delay = d
			}
		}
		frames.Delays = append(frames.Delays, delay)

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			draw.Draw(canvas, bounds, previous, bounds.Min, draw.Src)
		}
	}
	return frames, nil
}
