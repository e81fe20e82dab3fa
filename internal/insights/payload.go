package insights

import (
	"bytes"
	"fmt"
	"image"

	"github.com/chai2010/webp"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/draw"

	// Register decoders for the photo formats listings carry.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// ThumbnailMaxDimension is the maximum dimension (width or height) for
// vision-payload thumbnails. Room classification does not need full
// resolution, and smaller payloads cut both upload time and token cost.
const ThumbnailMaxDimension = 1024

// encodeThumbnail downscales a photo buffer and re-encodes it as WebP for the
// vision payload. Photos already within the size limit are still re-encoded so
// every payload part carries the same MIME type.
func encodeThumbnail(photo []byte) ([]byte, string, error) {
	img, format, err := image.Decode(bytes.NewReader(photo))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode photo: %w", err)
	}

	bounds := img.Bounds()
	origWidth := bounds.Dx()
	origHeight := bounds.Dy()

	newWidth, newHeight := thumbnailDimensions(origWidth, origHeight, ThumbnailMaxDimension)

	if origWidth > ThumbnailMaxDimension || origHeight > ThumbnailMaxDimension {
		resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
		draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)
		img = resized
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: 80}); err != nil {
		return nil, "", fmt.Errorf("failed to encode thumbnail as WebP: %w", err)
	}

	log.Debug().
		Str("format", format).
		Int("orig_width", origWidth).
		Int("orig_height", origHeight).
		Int("thumb_width", newWidth).
		Int("thumb_height", newHeight).
		Int("output_size", buf.Len()).
		Msg("Vision payload thumbnail ready")

	return buf.Bytes(), "image/webp", nil
}

// thumbnailDimensions calculates downscaled dimensions maintaining aspect ratio.
func thumbnailDimensions(width, height, maxDimension int) (int, int) {
	if width <= maxDimension && height <= maxDimension {
		return width, height
	}

	if width > height {
		newWidth := maxDimension
		newHeight := int(float64(height) * float64(maxDimension) / float64(width))
		return newWidth, newHeight
	}

	newHeight := maxDimension
	newWidth := int(float64(width) * float64(maxDimension) / float64(height))
	return newWidth, newHeight
}
