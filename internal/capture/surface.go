package capture

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"sync"

	"github.com/kozaktomas/face-attendance/internal/attendance"
	"golang.org/x/image/draw"
)

// Surface is a fixed-size offscreen raster. Every frame drawn onto it is
// scaled to the surface dimensions.
type Surface struct {
	mu      sync.Mutex
	canvas  *image.RGBA
	quality int
}

// NewSurface creates a width x height surface encoding JPEG at the given quality.
func NewSurface(width, height, quality int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	if quality < 1 || quality > 100 {
		return nil, fmt.Errorf("invalid JPEG quality %d", quality)
	}
	return &Surface{
		canvas:  image.NewRGBA(image.Rect(0, 0, width, height)),
		quality: quality,
	}, nil
}

// Bounds returns the surface rectangle.
func (s *Surface) Bounds() image.Rectangle {
	return s.canvas.Bounds()
}

// Rasterize draws img over the whole surface, encodes the result as JPEG and
// returns it as a data URI. The surface is cleared afterwards, so no frame
// outlives the payload produced from it.
func (s *Surface) Rasterize(img image.Image) (string, error) {
	if img == nil {
		return "", ErrNoFrame
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	draw.ApproxBiLinear.Scale(s.canvas, s.canvas.Bounds(), img, img.Bounds(), draw.Src, nil)
	defer s.clear()

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, s.canvas, &jpeg.Options{Quality: s.quality}); err != nil {
		return "", fmt.Errorf("failed to encode frame: %w", err)
	}
	return attendance.EncodeDataURI(attendance.MIMEJPEG, buf.Bytes()), nil
}

func (s *Surface) clear() {
	clear(s.canvas.Pix)
}
