package utils

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

// DownscaleImage decodes data (JPEG or PNG), scales it down to fit within
// maxWidth x maxHeight preserving aspect ratio, and re-encodes as JPEG with
// the given quality (1-100). Images already within bounds are still
// re-encoded, which normalizes PNGs to JPEG before upload.
func DownscaleImage(data []byte, maxWidth, maxHeight, quality int) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if width > height {
		if width > maxWidth {
			height = height * maxWidth / width
			width = maxWidth
		}
	} else {
		if height > maxHeight {
			width = width * maxHeight / height
			height = maxHeight
		}
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}
