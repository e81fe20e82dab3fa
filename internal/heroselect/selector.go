package heroselect

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/homecanvas/listing-media-engine/internal/insights"
	"github.com/homecanvas/listing-media-engine/internal/metrics"
)

// Config holds the selection weights. The defaults mirror the tuning the
// product shipped with; none of them have A/B-test backing yet, so they are
// parameters rather than constants.
type Config struct {
	// Insight-mode blend: total = QualityWeight·q + ContextWeight·c + AppealWeight·appeal.
	QualityWeight float64
	ContextWeight float64
	AppealWeight  float64

	// Quality-only-mode blend: total = QualityOnlyQualityWeight·q + QualityOnlyContextWeight·c.
	QualityOnlyQualityWeight float64
	QualityOnlyContextWeight float64

	// OverrideTolerance is the fraction of the top score the vision model's
	// suggested hero must reach for its suggestion to win.
	OverrideTolerance float64

	// ConfidenceTieWeight is the secondary sort weight breaking near-ties.
	ConfidenceTieWeight float64

	// PerPhotoTimeout bounds a single photo's decode; a hang degrades that
	// photo to the analysis-failed path instead of stalling the call.
	PerPhotoTimeout time.Duration
}

// DefaultConfig returns the shipped selection weights.
func DefaultConfig() Config {
	return Config{
		QualityWeight:            0.4,
		ContextWeight:            0.4,
		AppealWeight:             0.2,
		QualityOnlyQualityWeight: 0.7,
		QualityOnlyContextWeight: 0.3,
		OverrideTolerance:        0.85,
		ConfidenceTieWeight:      0.3,
		PerPhotoTimeout:          8 * time.Second,
	}
}

// Preferences optionally biases selection toward a listing agent's choice of
// lead room.
type Preferences struct {
	PreferredRoom insights.RoomType
}

// preferenceBonus is the context-score bump for the agent's preferred room.
const preferenceBonus = 1.0

// Selector ranks a listing's photos and picks the hero. A Selector carries no
// state between calls; one instance is safe for concurrent use.
type Selector struct {
	cfg Config
}

// New creates a Selector with the default weights.
func New() *Selector {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a Selector with custom weights.
func NewWithConfig(cfg Config) *Selector {
	return &Selector{cfg: cfg}
}

// SelectOptimalHero analyzes every photo sequentially, ranks the candidates,
// and reconciles the ranking against the vision model's suggested hero.
// It never returns an error: any failure degrades to a low-confidence result.
//
// Photos are processed one at a time in index order. Batch-decoding a whole
// listing shoot would multiply peak memory by the photo count, so the loop
// trades wall-clock latency for a bounded footprint.
func (s *Selector) SelectOptimalHero(ctx context.Context, photos [][]byte, ins *insights.PhotoInsights, propertyType string, prefs *Preferences) (result *Result) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Hero selection panicked, returning fallback result")
			result = fallbackResult(len(photos), start)
		}
	}()

	if len(photos) == 0 {
		log.Warn().Msg("Hero selection called with no photos")
		return emptyResult(start)
	}

	method := MethodQuality
	if ins != nil && len(ins.Rooms) == len(photos) {
		method = MethodInsight
	} else if ins != nil {
		log.Warn().
			Int("rooms", len(ins.Rooms)).
			Int("photos", len(photos)).
			Msg("Room analyses misaligned with photos, falling back to quality-only selection")
	}

	records := make([]*AnalysisRecord, 0, len(photos))
	for i, photo := range photos {
		var rec *AnalysisRecord
		if method == MethodInsight {
			rec = s.analyzeWithInsight(ctx, i, photo, &ins.Rooms[i], propertyType, prefs)
		} else {
			rec = s.analyzeByQuality(ctx, i, photo, len(photos), prefs)
		}
		records = append(records, rec)
	}

	ranked := s.rank(records)
	winner := ranked[0]
	if method == MethodInsight && ins.HeroCandidate != nil {
		winner = s.reconcileWithCandidate(ranked, ins.HeroCandidate.Index)
	}

	elapsed := time.Since(start)

	metrics.New().
		Dimension("Operation", "heroSelection").
		Duration("SelectionLatencyMs", elapsed).
		Metric("PhotosAnalyzed", float64(len(photos)), metrics.UnitCount).
		Count("SelectionCalls").
		Property("analysisMethod", method).
		Flush()

	log.Info().
		Int("selected", winner.Index).
		Str("method", method).
		Float64("confidence", winner.Confidence).
		Dur("elapsed", elapsed).
		Msg("Hero selection complete")

	return &Result{
		SelectedIndex: winner.Index,
		Reason:        winner.Reason,
		Confidence:    clamp01(winner.Confidence),
		Alternatives:  buildAlternatives(ranked, winner.Index),
		Metadata: Metadata{
			TotalPhotos:      len(photos),
			AnalysisMethod:   method,
			ProcessingTimeMs: elapsed.Milliseconds(),
		},
	}
}

// analyzeWithInsight scores one photo using both its pixels and the vision
// model's room analysis. A decode failure keeps the photo in contention as a
// degraded candidate rather than dropping it.
func (s *Selector) analyzeWithInsight(ctx context.Context, index int, photo []byte, room *insights.RoomAnalysis, propertyType string, prefs *Preferences) *AnalysisRecord {
	asset, err := decodePhotoWithin(ctx, photo, s.cfg.PerPhotoTimeout)
	if err != nil {
		log.Warn().Err(err).Int("index", index).Msg("Photo analysis failed, keeping degraded candidate")
		return failedRecord(index)
	}

	quality := qualityScore(asset)
	contextVal := contextScore(room, propertyType)
	if prefs != nil && prefs.PreferredRoom != "" && prefs.PreferredRoom == room.Type {
		contextVal += preferenceBonus
	}

	return &AnalysisRecord{
		Index:      index,
		Quality:    quality,
		Context:    contextVal,
		Score:      s.cfg.QualityWeight*quality + s.cfg.ContextWeight*contextVal + s.cfg.AppealWeight*room.Appeal,
		Confidence: estimateConfidence(quality, contextVal, room.Appeal, true, true, room.Type),
		Reason:     buildInsightReason(room, quality),
	}
}

// analyzeByQuality scores one photo on pixels alone, with a room type
// inferred from its position in the shoot.
func (s *Selector) analyzeByQuality(ctx context.Context, index int, photo []byte, totalPhotos int, prefs *Preferences) *AnalysisRecord {
	asset, err := decodePhotoWithin(ctx, photo, s.cfg.PerPhotoTimeout)
	if err != nil {
		log.Warn().Err(err).Int("index", index).Msg("Photo analysis failed, keeping degraded candidate")
		return failedRecord(index)
	}

	quality := qualityScore(asset)
	room := inferRoomType(index, totalPhotos)
	contextVal := positionContextScore(index, totalPhotos)
	if prefs != nil && prefs.PreferredRoom != "" && prefs.PreferredRoom == room {
		contextVal += preferenceBonus
	}

	return &AnalysisRecord{
		Index:      index,
		Quality:    quality,
		Context:    contextVal,
		Score:      s.cfg.QualityOnlyQualityWeight*quality + s.cfg.QualityOnlyContextWeight*contextVal,
		Confidence: qualityOnlyConfidence(quality),
		Reason:     buildQualityReason(room, quality),
	}
}

// failedRecord keeps a photo whose analysis failed in the candidate list at a
// heavy rank penalty. Partial failures must not abort, or shrink, a selection.
func failedRecord(index int) *AnalysisRecord {
	return &AnalysisRecord{
		Index:      index,
		Score:      1,
		Confidence: 0.1,
		Reason:     "Analysis failed",
	}
}

// rank sorts candidates by score descending, breaking near-ties with a
// confidence-weighted secondary key. The sort is stable, so exact ties keep
// photo-index order and the result is deterministic for identical inputs.
func (s *Selector) rank(records []*AnalysisRecord) []*AnalysisRecord {
	ranked := make([]*AnalysisRecord, len(records))
	copy(ranked, records)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score+s.cfg.ConfidenceTieWeight*ranked[i].Confidence >
			ranked[j].Score+s.cfg.ConfidenceTieWeight*ranked[j].Confidence
	})
	return ranked
}

// reconcileWithCandidate applies the vision model's suggested hero on top of
// the local ranking. The local ranking is a sanity check on the model's
// judgment, not a replacement for it: when the suggested photo scores within
// the override tolerance of the local top choice, the model's pick wins.
func (s *Selector) reconcileWithCandidate(ranked []*AnalysisRecord, candidateIndex int) *AnalysisRecord {
	winner := ranked[0]
	cand := recordByIndex(ranked, candidateIndex)
	if cand == nil || cand.Score < s.cfg.OverrideTolerance*winner.Score {
		return winner
	}

	if cand != winner {
		log.Info().
			Int("ai_index", cand.Index).
			Int("ranked_index", winner.Index).
			Float64("ai_score", cand.Score).
			Float64("top_score", winner.Score).
			Msg("Vision model hero suggestion overrides local ranking")
	}
	cand.Reason = "AI recommendation validated by quality analysis"
	return cand
}

func recordByIndex(records []*AnalysisRecord, index int) *AnalysisRecord {
	for _, rec := range records {
		if rec.Index == index {
			return rec
		}
	}
	return nil
}

// buildAlternatives returns up to three runners-up, never the winner.
func buildAlternatives(ranked []*AnalysisRecord, selectedIndex int) []Alternative {
	alternatives := make([]Alternative, 0, 3)
	for _, rec := range ranked {
		if rec.Index == selectedIndex {
			continue
		}
		alternatives = append(alternatives, Alternative{
			Index:      rec.Index,
			Reason:     rec.Reason,
			Score:      rec.Score,
			Confidence: clamp01(rec.Confidence),
		})
		if len(alternatives) == 3 {
			break
		}
	}
	return alternatives
}

func emptyResult(start time.Time) *Result {
	return &Result{
		SelectedIndex: 0,
		Reason:        "No photos provided",
		Confidence:    0,
		Alternatives:  []Alternative{},
		Metadata: Metadata{
			TotalPhotos:      0,
			AnalysisMethod:   MethodFallback,
			ProcessingTimeMs: time.Since(start).Milliseconds(),
		},
	}
}

// fallbackResult is the last-resort output when the selection pipeline itself
// fails: the first photo, at low confidence.
func fallbackResult(totalPhotos int, start time.Time) *Result {
	if totalPhotos == 0 {
		return emptyResult(start)
	}
	return &Result{
		SelectedIndex: 0,
		Reason:        "Selection could not be completed, defaulting to the first photo",
		Confidence:    0.2,
		Alternatives:  []Alternative{},
		Metadata: Metadata{
			TotalPhotos:      totalPhotos,
			AnalysisMethod:   MethodFallback,
			ProcessingTimeMs: time.Since(start).Milliseconds(),
		},
	}
}
