// Package pipeline composes the full hero workflow: optional vision analysis,
// hero selection, and variant generation, with each stage degrading rather
// than failing the stages after it.
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/homecanvas/listing-media-engine/internal/heroselect"
	"github.com/homecanvas/listing-media-engine/internal/insights"
	"github.com/homecanvas/listing-media-engine/internal/metrics"
	"github.com/homecanvas/listing-media-engine/internal/variants"
)

// ErrNoPhotos is returned when Process is called with an empty photo set.
var ErrNoPhotos = errors.New("no photos provided")

// Options tunes one Process call.
type Options struct {
	// PropertyType is the free-text segment hint ("luxury", "condo", ...)
	// biasing room relevance during selection.
	PropertyType string

	// Preferences optionally biases selection toward an agent's lead room.
	Preferences *heroselect.Preferences

	// Overlay, when set, is composited onto every generated variant.
	Overlay *variants.OverlayOptions

	// SkipVariants stops after selection, for callers that only want the
	// hero decision.
	SkipVariants bool
}

// Result is the output of one full pipeline run.
type Result struct {
	// Original is the chosen hero's untouched source buffer.
	Original []byte

	SelectedIndex int
	Reason        string
	Confidence    float64

	// Selection carries the full ranked decision, alternatives included.
	Selection *heroselect.Result

	// Variants is empty when SkipVariants was set or every render failed.
	Variants []variants.Variant

	// Insights is nil when no analyzer was configured or analysis failed.
	Insights *insights.PhotoInsights
}

// Pipeline wires the three stages together. The analyzer is optional: without
// one, selection runs in quality-only mode.
type Pipeline struct {
	analyzer  insights.Analyzer
	selector  *heroselect.Selector
	generator *variants.Generator
}

// New creates a Pipeline with default selection weights and the default
// platform catalog. Pass a nil analyzer to skip vision analysis entirely.
func New(analyzer insights.Analyzer) *Pipeline {
	return &Pipeline{
		analyzer:  analyzer,
		selector:  heroselect.New(),
		generator: variants.NewGenerator(),
	}
}

// Process runs analysis, selection, and variant generation over a photo set.
// Analysis failure is logged and selection proceeds without insights; variant
// failures are already absorbed per platform. The only error is an empty
// photo set.
func (p *Pipeline) Process(ctx context.Context, photos [][]byte, opts Options) (*Result, error) {
	if len(photos) == 0 {
		return nil, ErrNoPhotos
	}

	start := time.Now()

	var ins *insights.PhotoInsights
	if p.analyzer != nil {
		analyzed, err := p.analyzer.Analyze(ctx, photos)
		if err != nil {
			log.Warn().Err(err).Msg("Vision analysis failed, selecting on quality alone")
		} else {
			ins = analyzed
		}
	}

	selection := p.selector.SelectOptimalHero(ctx, photos, ins, opts.PropertyType, opts.Preferences)
	original := photos[selection.SelectedIndex]

	result := &Result{
		Original:      original,
		SelectedIndex: selection.SelectedIndex,
		Reason:        selection.Reason,
		Confidence:    selection.Confidence,
		Selection:     selection,
		Variants:      []variants.Variant{},
		Insights:      ins,
	}

	if !opts.SkipVariants {
		result.Variants = p.generator.GenerateHeroVariants(original, opts.Overlay)
	}

	metrics.New().
		Dimension("Operation", "heroPipeline").
		Duration("PipelineLatencyMs", time.Since(start)).
		Metric("PhotosProcessed", float64(len(photos)), metrics.UnitCount).
		Metric("VariantsProduced", float64(len(result.Variants)), metrics.UnitCount).
		Count("PipelineRuns").
		Flush()

	log.Info().
		Int("selected", result.SelectedIndex).
		Int("variants", len(result.Variants)).
		Bool("analyzed", ins != nil).
		Msg("Hero pipeline complete")

	return result, nil
}
