package images

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

const jpegQuality = 85

// ImagesService re-encodes downloaded attachments into a bounded JPEG data
// URI so the outbound vision payload stays within provider size limits.
type ImagesService struct {
	maxSide int
}

// NewImagesService creates a service capping the longest image side at maxSide
func NewImagesService(maxSide int) *ImagesService {
	return &ImagesService{maxSide: maxSide}
}

// ReencodeAsDataURI decodes raw image bytes, scales the image down so its
// longest side does not exceed the configured bound, and returns the result
// as a base64 JPEG data URI. Images already within the bound are still
// re-encoded so the payload format is uniform.
func (s *ImagesService) ReencodeAsDataURI(data []byte) (string, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	targetWidth, targetHeight := width, height
	if longest := max(width, height); longest > s.maxSide {
		scale := float64(s.maxSide) / float64(longest)
		targetWidth = max(1, int(float64(width)*scale))
		targetHeight = max(1, int(float64(height)*scale))
	}

	dst := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("failed to encode image (source format %s): %w", format, err)
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
