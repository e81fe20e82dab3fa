package heroselect

// quality.go scores the technical merit of a single photo from its decoded
// metadata and pixel statistics. The score is additive from a base of 5 with
// no fixed upper bound; in practice it lands in 0-15.

// Resolution tiers by total pixel count.
const (
	pixels4K    = 3840 * 2160
	pixels1080p = 1920 * 1080
	pixels720p  = 1280 * 720
	pixels480p  = 640 * 480
)

const baseQualityScore = 5.0

// qualityScore rates one photo's technical merit: resolution, aspect ratio,
// format, compression density, and exposure. It is side-effect-free and
// retains no reference to the asset after returning.
func qualityScore(a *photoAsset) float64 {
	score := baseQualityScore
	pixels := a.width * a.height

	// Resolution: more pixels means more cropping headroom for print and web
	// hero placements.
	switch {
	case pixels >= pixels4K:
		score += 4
	case pixels >= pixels1080p:
		score += 3
	case pixels >= pixels720p:
		score += 2
	case pixels >= pixels480p:
		score += 1
	default:
		score--
	}

	// Aspect ratio: landscape frames fill most marketing placements; extreme
	// panoramas and slivers crop badly everywhere.
	if a.height > 0 {
		ratio := float64(a.width) / float64(a.height)
		switch {
		case ratio >= 1.2 && ratio <= 2.0:
			score += 2
		case ratio >= 0.8 && ratio < 1.2:
			score++ // near-square works for feed posts
		case ratio > 2.5 || ratio < 0.4:
			score--
		}
	}

	switch a.format {
	case "jpeg":
		score++
	case "png":
		score += 0.5
	}

	// Compression density: encoded bytes per pixel. Heavily re-compressed
	// listing photos lose the detail that sells finishes.
	if pixels > 0 {
		density := float64(a.encodedSize) / float64(pixels)
		switch {
		case density > 0.5:
			score += 2
		case density > 0.2:
			score++
		case density < 0.1:
			score--
		}
	}

	// Exposure: average of RGB channel means. Skipped without penalty when
	// pixel statistics are unavailable.
	if brightness, ok := a.meanBrightness(); ok {
		switch {
		case brightness >= 50 && brightness <= 200:
			score++
		case brightness < 30 || brightness > 220:
			score -= 2
		}
	}

	if score < 0 {
		score = 0
	}
	return score
}
