package heroselect

import (
	"math"
	"testing"

	"github.com/homecanvas/listing-media-engine/internal/insights"
)

func TestEstimateConfidence_Bounds(t *testing.T) {
	tests := []struct {
		name                  string
		quality, context      float64
		appeal                float64
		hasAppeal, hasMeta    bool
		room                  insights.RoomType
	}{
		{"all signals maxed", 100, 100, 10, true, true, insights.RoomExterior},
		{"no signals", 0, 0, 0, false, false, insights.RoomUtility},
		{"negative inputs", -5, -5, -5, true, false, insights.RoomOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := estimateConfidence(tt.quality, tt.context, tt.appeal, tt.hasAppeal, tt.hasMeta, tt.room)
			if got < 0 || got > 1 {
				t.Errorf("estimateConfidence() = %v, want within [0, 1]", got)
			}
		})
	}
}

func TestEstimateConfidence_Terms(t *testing.T) {
	const eps = 1e-9

	// Baseline: nothing beyond the 0.5 floor.
	base := estimateConfidence(0, 0, 0, false, false, insights.RoomUtility)
	if base != 0.5 {
		t.Fatalf("baseline confidence = %v, want 0.5", base)
	}

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{
			"quality term capped at 0.3",
			estimateConfidence(30, 0, 0, false, false, insights.RoomUtility),
			0.8,
		},
		{
			"context term capped at 0.2",
			estimateConfidence(0, 30, 0, false, false, insights.RoomUtility),
			0.7,
		},
		{
			"appeal term capped at 0.2",
			estimateConfidence(0, 0, 10, true, false, insights.RoomUtility),
			0.7,
		},
		{
			"appeal ignored without analysis",
			estimateConfidence(0, 0, 10, false, false, insights.RoomUtility),
			0.5,
		},
		{
			"metadata bonus",
			estimateConfidence(0, 0, 0, false, true, insights.RoomUtility),
			0.6,
		},
		{
			"hero room bonus",
			estimateConfidence(0, 0, 0, false, false, insights.RoomExterior),
			0.6,
		},
		{
			"mid-range quality scales linearly",
			estimateConfidence(3, 0, 0, false, false, insights.RoomUtility),
			0.7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.want) > eps {
				t.Errorf("confidence = %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestQualityOnlyConfidence(t *testing.T) {
	tests := []struct {
		quality float64
		want    float64
	}{
		{0, 0},
		{7.5, 0.5},
		{12, 0.8},  // cap
		{100, 0.8}, // still capped
		{-3, 0},    // floored
	}

	for _, tt := range tests {
		if got := qualityOnlyConfidence(tt.quality); got != tt.want {
			t.Errorf("qualityOnlyConfidence(%v) = %v, want %v", tt.quality, got, tt.want)
		}
	}
}

func TestClamp01(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{-0.5, 0},
		{0, 0},
		{0.42, 0.42},
		{1, 1},
		{1.7, 1},
	}
	for _, tt := range tests {
		if got := clamp01(tt.in); got != tt.want {
			t.Errorf("clamp01(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
