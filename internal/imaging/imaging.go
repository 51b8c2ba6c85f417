// Package imaging is the upload collaborator: it turns raw image bytes into
// pool photos with known natural dimensions and produces preview thumbnails.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"github.com/matejkriz/bookpress/internal/book"
)

// FromBytes builds a pool photo from uploaded image bytes. Only the header
// is decoded, so large uploads stay cheap. The image reference is left for
// the caller to fill in once the bytes are stored.
func FromBytes(data []byte) (book.PoolPhoto, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return book.PoolPhoto{}, fmt.Errorf("failed to decode image: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return book.PoolPhoto{}, fmt.Errorf("image has invalid dimensions %dx%d", cfg.Width, cfg.Height)
	}

	return book.PoolPhoto{
		ID:     uuid.NewString(),
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}

// Thumbnail resizes an image to fit within maxEdge (width or height) while
// keeping aspect ratio, and re-encodes it as JPEG.
func Thumbnail(data []byte, maxEdge int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width <= maxEdge && height <= maxEdge {
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
			return nil, fmt.Errorf("failed to encode image: %w", err)
		}
		return buf.Bytes(), nil
	}

	var newWidth, newHeight int
	if width > height {
		newWidth = maxEdge
		newHeight = int(float64(height) * float64(maxEdge) / float64(width))
	} else {
		newHeight = maxEdge
		newWidth = int(float64(width) * float64(maxEdge) / float64(height))
	}

	resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("failed to encode resized image: %w", err)
	}
	return buf.Bytes(), nil
}
