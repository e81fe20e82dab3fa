// Package heroselect chooses the hero photo for a listing: the single image
// that leads every marketing placement. It fuses raw pixel quality with
// room-level marketing relevance and, when available, the vision model's
// appeal estimates, and always returns a well-formed ranked result — degraded
// confidence, not errors, is how uncertainty reaches the caller.
package heroselect

// Analysis method labels reported in Result.Metadata.
const (
	MethodInsight  = "insight_analysis"
	MethodQuality  = "quality_analysis"
	MethodFallback = "fallback"
)

// AnalysisRecord is the per-photo working record built during one selection
// call. Records are created fresh for every call and never persisted; the list
// stays in photo-index order until the final ranking pass.
type AnalysisRecord struct {
	Index      int
	Quality    float64
	Context    float64
	Score      float64
	Confidence float64
	Reason     string
}

// Alternative is a ranked runner-up to the selected hero.
type Alternative struct {
	Index      int     `json:"index"`
	Reason     string  `json:"reason"`
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
}

// Metadata describes how a selection was produced.
type Metadata struct {
	TotalPhotos      int    `json:"totalPhotos"`
	AnalysisMethod   string `json:"analysisMethod"`
	ProcessingTimeMs int64  `json:"processingTimeMs"`
}

// Result is the sole output of a selection call. SelectedIndex is always a
// valid index into the input photo set (0 for an empty set), Confidence is
// clamped to [0, 1], and Alternatives holds at most three runners-up, never
// including the selected index.
type Result struct {
	SelectedIndex int           `json:"selectedIndex"`
	Reason        string        `json:"reason"`
	Confidence    float64       `json:"confidence"`
	Alternatives  []Alternative `json:"alternatives"`
	Metadata      Metadata      `json:"metadata"`
}
