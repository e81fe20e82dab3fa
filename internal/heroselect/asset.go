package heroselect

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"time"

	"github.com/rs/zerolog/log"

	// Register decoders for the photo formats listings carry.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// photoAsset holds the decoded metadata and pixels of one photo for the
// duration of its analysis. It is never retained after the metrics are
// extracted; each loop iteration drops the previous asset so only one
// decoded image is live at a time.
type photoAsset struct {
	width       int
	height      int
	format      string
	encodedSize int

	// img is nil when the header decoded but the pixel data did not.
	// Exposure scoring is skipped in that case, without penalty.
	img image.Image
}

// decodePhoto decodes the image header and, when possible, the pixel data.
// A corrupt header is a hard failure; corrupt pixel data degrades to a
// metadata-only asset.
func decodePhoto(buf []byte) (*photoAsset, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image header: %w", err)
	}

	asset := &photoAsset{
		width:       cfg.Width,
		height:      cfg.Height,
		format:      format,
		encodedSize: len(buf),
	}

	img, _, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		log.Debug().Err(err).Str("format", format).Msg("Pixel decode failed, continuing with header metadata only")
		return asset, nil
	}
	asset.img = img

	return asset, nil
}

// decodePhotoWithin runs decodePhoto under a deadline so a pathological buffer
// cannot hang the whole selection. The decode runs in its own goroutine; the
// buffered channel lets a late decode finish and exit without leaking.
func decodePhotoWithin(ctx context.Context, buf []byte, timeout time.Duration) (*photoAsset, error) {
	type decodeResult struct {
		asset *photoAsset
		err   error
	}

	ch := make(chan decodeResult, 1)
	go func() {
		asset, err := decodePhoto(buf)
		ch <- decodeResult{asset: asset, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		return res.asset, res.err
	case <-timer.C:
		return nil, fmt.Errorf("photo decode exceeded %v", timeout)
	case <-ctx.Done():
		return nil, fmt.Errorf("photo decode canceled: %w", ctx.Err())
	}
}

// meanBrightness returns the average of the R, G, and B channel means on a
// sampled pixel grid. The grid is capped at 256 samples per axis so the pass
// stays cheap on print-resolution photos. Returns false when pixel data is
// unavailable.
func (a *photoAsset) meanBrightness() (float64, bool) {
	if a.img == nil {
		return 0, false
	}

	bounds := a.img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return 0, false
	}

	stepX := bounds.Dx() / 256
	if stepX < 1 {
		stepX = 1
	}
	stepY := bounds.Dy() / 256
	if stepY < 1 {
		stepY = 1
	}

	var rSum, gSum, bSum float64
	var samples float64

	for y := bounds.Min.Y; y < bounds.Max.Y; y += stepY {
		for x := bounds.Min.X; x < bounds.Max.X; x += stepX {
			r, g, b, _ := a.img.At(x, y).RGBA()
			// RGBA() returns 16-bit values; scale to 8-bit
			rSum += float64(r >> 8)
			gSum += float64(g >> 8)
			bSum += float64(b >> 8)
			samples++
		}
	}

	if samples == 0 {
		return 0, false
	}

	rMean := rSum / samples
	gMean := gSum / samples
	bMean := bSum / samples

	return (rMean + gMean + bMean) / 3, true
}
