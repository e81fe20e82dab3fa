package heroselect

import (
	"bytes"
	"context"
	"image/jpeg"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/homecanvas/listing-media-engine/internal/insights"
)

// jpegBytes encodes a uniform test image so selection tests exercise the real
// decode path.
func jpegBytes(t *testing.T, width, height int, level uint8) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, uniformImage(width, height, level), nil); err != nil {
		t.Fatalf("failed to encode test JPEG: %v", err)
	}
	return buf.Bytes()
}

func TestSelectOptimalHero_EmptyInput(t *testing.T) {
	result := New().SelectOptimalHero(context.Background(), nil, nil, "", nil)

	if result.SelectedIndex != 0 {
		t.Errorf("SelectedIndex = %d, want 0", result.SelectedIndex)
	}
	if result.Confidence != 0 {
		t.Errorf("Confidence = %v, want 0", result.Confidence)
	}
	if len(result.Alternatives) != 0 {
		t.Errorf("Alternatives = %v, want empty", result.Alternatives)
	}
	if result.Metadata.AnalysisMethod != MethodFallback {
		t.Errorf("AnalysisMethod = %q, want %q", result.Metadata.AnalysisMethod, MethodFallback)
	}
}

func TestSelectOptimalHero_InsightMode(t *testing.T) {
	photos := [][]byte{
		jpegBytes(t, 640, 480, 128),
		jpegBytes(t, 640, 480, 128),
	}
	ins := &insights.PhotoInsights{
		Rooms: []insights.RoomAnalysis{
			{Type: insights.RoomExterior, Condition: insights.ConditionExcellent, Appeal: 9},
			{Type: insights.RoomUtility, Condition: insights.ConditionNeedsUpdates, Appeal: 2},
		},
	}

	result := New().SelectOptimalHero(context.Background(), photos, ins, "", nil)

	if result.Metadata.AnalysisMethod != MethodInsight {
		t.Errorf("AnalysisMethod = %q, want %q", result.Metadata.AnalysisMethod, MethodInsight)
	}
	if result.SelectedIndex != 0 {
		t.Errorf("SelectedIndex = %d, want 0", result.SelectedIndex)
	}
	if !strings.Contains(result.Reason, "Exterior view") {
		t.Errorf("Reason = %q, want it to name the exterior", result.Reason)
	}
	if result.Confidence < 0 || result.Confidence > 1 {
		t.Errorf("Confidence = %v, want within [0, 1]", result.Confidence)
	}
	if len(result.Alternatives) != 1 || result.Alternatives[0].Index != 1 {
		t.Errorf("Alternatives = %v, want one entry for photo 1", result.Alternatives)
	}
	if result.Metadata.TotalPhotos != 2 {
		t.Errorf("TotalPhotos = %d, want 2", result.Metadata.TotalPhotos)
	}
}

func TestSelectOptimalHero_MisalignedInsightsFallToQuality(t *testing.T) {
	photos := [][]byte{
		jpegBytes(t, 640, 480, 128),
		jpegBytes(t, 640, 480, 128),
	}
	ins := &insights.PhotoInsights{
		Rooms: []insights.RoomAnalysis{
			{Type: insights.RoomKitchen, Appeal: 8},
		},
	}

	result := New().SelectOptimalHero(context.Background(), photos, ins, "", nil)

	if result.Metadata.AnalysisMethod != MethodQuality {
		t.Errorf("AnalysisMethod = %q, want %q", result.Metadata.AnalysisMethod, MethodQuality)
	}
	if !strings.Contains(result.Reason, "inferred from photo position") {
		t.Errorf("Reason = %q, want the position-inference marker", result.Reason)
	}
}

func TestSelectOptimalHero_CorruptPhotoDegrades(t *testing.T) {
	photos := [][]byte{
		jpegBytes(t, 640, 480, 128),
		[]byte("definitely not an image"),
		jpegBytes(t, 640, 480, 128),
	}

	result := New().SelectOptimalHero(context.Background(), photos, nil, "", nil)

	if result.SelectedIndex == 1 {
		t.Error("corrupt photo was selected as hero")
	}
	if len(result.Alternatives) != 2 {
		t.Fatalf("Alternatives count = %d, want 2", len(result.Alternatives))
	}

	var degraded *Alternative
	for i := range result.Alternatives {
		if result.Alternatives[i].Index == 1 {
			degraded = &result.Alternatives[i]
		}
	}
	if degraded == nil {
		t.Fatal("corrupt photo missing from alternatives")
	}
	if degraded.Reason != "Analysis failed" {
		t.Errorf("degraded Reason = %q, want %q", degraded.Reason, "Analysis failed")
	}
	if degraded.Confidence != 0.1 {
		t.Errorf("degraded Confidence = %v, want 0.1", degraded.Confidence)
	}
}

func TestSelectOptimalHero_AlternativesCappedAtThree(t *testing.T) {
	photos := make([][]byte, 6)
	for i := range photos {
		photos[i] = jpegBytes(t, 640, 480, 128)
	}

	result := New().SelectOptimalHero(context.Background(), photos, nil, "", nil)

	if len(result.Alternatives) != 3 {
		t.Errorf("Alternatives count = %d, want 3", len(result.Alternatives))
	}
	for _, alt := range result.Alternatives {
		if alt.Index == result.SelectedIndex {
			t.Errorf("alternative %d duplicates the selected hero", alt.Index)
		}
	}
}

func TestSelectOptimalHero_PreferenceFlipsNearTie(t *testing.T) {
	photo := jpegBytes(t, 640, 480, 128)
	photos := [][]byte{photo, photo}
	ins := &insights.PhotoInsights{
		Rooms: []insights.RoomAnalysis{
			{Type: insights.RoomDining, Appeal: 5},
			{Type: insights.RoomBedroom, Appeal: 6.5},
		},
	}

	without := New().SelectOptimalHero(context.Background(), photos, ins, "", nil)
	if without.SelectedIndex != 0 {
		t.Fatalf("without preference SelectedIndex = %d, want 0", without.SelectedIndex)
	}

	prefs := &Preferences{PreferredRoom: insights.RoomBedroom}
	with := New().SelectOptimalHero(context.Background(), photos, ins, "", prefs)
	if with.SelectedIndex != 1 {
		t.Errorf("with preference SelectedIndex = %d, want 1", with.SelectedIndex)
	}
}

func TestSelectOptimalHero_Deterministic(t *testing.T) {
	photos := [][]byte{
		jpegBytes(t, 1280, 720, 128),
		jpegBytes(t, 640, 480, 100),
		jpegBytes(t, 1920, 1080, 150),
	}
	ins := &insights.PhotoInsights{
		Rooms: []insights.RoomAnalysis{
			{Type: insights.RoomKitchen, Condition: insights.ConditionGood, Features: []string{"island", "granite counters"}, Appeal: 7},
			{Type: insights.RoomBathroom, Appeal: 4},
			{Type: insights.RoomExterior, Condition: insights.ConditionExcellent, Appeal: 9},
		},
		HeroCandidate: &insights.HeroCandidate{Index: 2, Reason: "curb appeal"},
	}

	first := New().SelectOptimalHero(context.Background(), photos, ins, "luxury", nil)
	second := New().SelectOptimalHero(context.Background(), photos, ins, "luxury", nil)

	first.Metadata.ProcessingTimeMs = 0
	second.Metadata.ProcessingTimeMs = 0
	if !reflect.DeepEqual(first, second) {
		t.Errorf("selection not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestReconcileWithCandidate(t *testing.T) {
	s := New()

	newRanked := func(candScore float64) []*AnalysisRecord {
		return []*AnalysisRecord{
			{Index: 0, Score: 100, Confidence: 0.9, Reason: "top ranked"},
			{Index: 3, Score: candScore, Confidence: 0.8, Reason: "runner up"},
		}
	}

	t.Run("candidate within tolerance wins", func(t *testing.T) {
		got := s.reconcileWithCandidate(newRanked(85), 3)
		if got.Index != 3 {
			t.Fatalf("winner index = %d, want 3", got.Index)
		}
		if got.Reason != "AI recommendation validated by quality analysis" {
			t.Errorf("Reason = %q, want the validation reason", got.Reason)
		}
	})

	t.Run("candidate below tolerance loses", func(t *testing.T) {
		got := s.reconcileWithCandidate(newRanked(84.9), 3)
		if got.Index != 0 {
			t.Errorf("winner index = %d, want 0", got.Index)
		}
		if got.Reason != "top ranked" {
			t.Errorf("Reason = %q, want the local reason untouched", got.Reason)
		}
	})

	t.Run("out-of-range candidate ignored", func(t *testing.T) {
		got := s.reconcileWithCandidate(newRanked(85), 7)
		if got.Index != 0 {
			t.Errorf("winner index = %d, want 0", got.Index)
		}
	})

	t.Run("candidate matching top keeps selection", func(t *testing.T) {
		got := s.reconcileWithCandidate(newRanked(85), 0)
		if got.Index != 0 {
			t.Errorf("winner index = %d, want 0", got.Index)
		}
	})
}

func TestFallbackResult(t *testing.T) {
	result := fallbackResult(5, time.Now())

	if result.SelectedIndex != 0 {
		t.Errorf("SelectedIndex = %d, want 0", result.SelectedIndex)
	}
	if result.Confidence != 0.2 {
		t.Errorf("Confidence = %v, want 0.2", result.Confidence)
	}
	if result.Metadata.AnalysisMethod != MethodFallback {
		t.Errorf("AnalysisMethod = %q, want %q", result.Metadata.AnalysisMethod, MethodFallback)
	}
	if result.Metadata.TotalPhotos != 5 {
		t.Errorf("TotalPhotos = %d, want 5", result.Metadata.TotalPhotos)
	}

	empty := fallbackResult(0, time.Now())
	if empty.Confidence != 0 {
		t.Errorf("empty-set fallback Confidence = %v, want 0", empty.Confidence)
	}
}
