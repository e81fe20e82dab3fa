package variants

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"runtime"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"

	"github.com/homecanvas/listing-media-engine/internal/metrics"
)

// jpegQuality is the fixed encode quality for every rendition. Marketing
// placements re-compress on upload anyway; 85 keeps the upload small without
// visible banding.
const jpegQuality = 85

// Variant is one successfully rendered platform rendition.
type Variant struct {
	Name                string `json:"name"`
	Buffer              []byte `json:"-"`
	Width               int    `json:"width"`
	Height              int    `json:"height"`
	PlatformDisplayName string `json:"platformDisplayName"`
	Description         string `json:"description"`
}

// Generator renders hero variants against a platform catalog. A Generator
// carries no state between calls; one instance is safe for concurrent use.
type Generator struct {
	platforms []PlatformSpec
}

// NewGenerator creates a Generator over the default platform catalog.
func NewGenerator() *Generator {
	return NewGeneratorWithPlatforms(DefaultPlatforms)
}

// NewGeneratorWithPlatforms creates a Generator over a custom catalog.
func NewGeneratorWithPlatforms(platforms []PlatformSpec) *Generator {
	return &Generator{platforms: platforms}
}

// GenerateHeroVariants renders the hero into one variant per catalog platform.
// It never returns an error: a platform whose render fails is logged and
// omitted, and an undecodable hero yields an empty list. Variant order follows
// catalog order.
//
// Platforms are rendered one at a time, yielding the scheduler between
// renders, so a print-resolution render cannot monopolize the runtime while
// holding several platform-sized pixel buffers at once.
func (g *Generator) GenerateHeroVariants(hero []byte, opts *OverlayOptions) []Variant {
	out := make([]Variant, 0, len(g.platforms))

	src, _, err := image.Decode(bytes.NewReader(hero))
	if err != nil {
		log.Error().Err(err).Msg("Hero image failed to decode, no variants generated")
		return out
	}

	failures := 0
	for _, spec := range g.platforms {
		variant, err := renderVariant(src, spec, opts)
		if err != nil {
			failures++
			log.Warn().Err(err).Str("platform", spec.Name).Msg("Variant render failed, skipping platform")
			continue
		}
		out = append(out, variant)
		runtime.Gosched()
	}

	metrics.New().
		Dimension("Operation", "variantGeneration").
		Metric("VariantsGenerated", float64(len(out)), metrics.UnitCount).
		Metric("VariantFailures", float64(failures), metrics.UnitCount).
		Flush()

	return out
}

// renderVariant cover-fits the source to the platform's exact dimensions and,
// when overlay options are present, composites the overlay layer before
// encoding.
func renderVariant(src image.Image, spec PlatformSpec, opts *OverlayOptions) (Variant, error) {
	if spec.Width <= 0 || spec.Height <= 0 {
		return Variant{}, fmt.Errorf("invalid platform dimensions %dx%d", spec.Width, spec.Height)
	}

	fitted := imaging.Fill(src, spec.Width, spec.Height, imaging.Center, imaging.Lanczos)

	description := fmt.Sprintf("%s %dx%d", spec.DisplayName, spec.Width, spec.Height)
	if opts != nil {
		layer, err := renderOverlay(spec, opts)
		if err != nil {
			return Variant{}, fmt.Errorf("failed to render overlay: %w", err)
		}
		fitted = imaging.Overlay(fitted, layer, image.Point{}, 1.0)
		description += " with listing overlay"
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, fitted, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Variant{}, fmt.Errorf("failed to encode variant: %w", err)
	}

	return Variant{
		Name:                spec.Name,
		Buffer:              buf.Bytes(),
		Width:               spec.Width,
		Height:              spec.Height,
		PlatformDisplayName: spec.DisplayName,
		Description:         description,
	}, nil
}
