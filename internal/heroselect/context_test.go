package heroselect

import (
	"testing"

	"github.com/homecanvas/listing-media-engine/internal/insights"
)

func TestContextScore_RoomBase(t *testing.T) {
	tests := []struct {
		room insights.RoomType
		want float64
	}{
		{insights.RoomExterior, 10},
		{insights.RoomKitchen, 9},
		{insights.RoomLiving, 8},
		{insights.RoomBathroom, 5},
		{insights.RoomGarage, 2},
		{insights.RoomUtility, 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.room), func(t *testing.T) {
			got := contextScore(&insights.RoomAnalysis{Type: tt.room}, "")
			if got != tt.want {
				t.Errorf("contextScore(%s) = %v, want %v", tt.room, got, tt.want)
			}
		})
	}
}

func TestContextScore_UnknownRoomFallsBackToOther(t *testing.T) {
	got := contextScore(&insights.RoomAnalysis{Type: insights.RoomType("atrium")}, "")
	if want := roomBaseScores[insights.RoomOther]; got != want {
		t.Errorf("contextScore(unknown room) = %v, want %v", got, want)
	}
}

func TestContextScore_Condition(t *testing.T) {
	tests := []struct {
		condition insights.Condition
		wantDelta float64
	}{
		{insights.ConditionExcellent, 2},
		{insights.ConditionGood, 1},
		{insights.ConditionNeedsUpdates, -1},
		{insights.Condition(""), 0},
	}

	base := contextScore(&insights.RoomAnalysis{Type: insights.RoomKitchen}, "")
	for _, tt := range tests {
		t.Run(string(tt.condition), func(t *testing.T) {
			got := contextScore(&insights.RoomAnalysis{Type: insights.RoomKitchen, Condition: tt.condition}, "")
			if got-base != tt.wantDelta {
				t.Errorf("condition %q delta = %v, want %v", tt.condition, got-base, tt.wantDelta)
			}
		})
	}
}

func TestContextScore_PropertyTypeModifiers(t *testing.T) {
	tests := []struct {
		name         string
		propertyType string
		room         insights.RoomType
		wantDelta    float64
	}{
		{"condo penalizes shared exterior", "condo", insights.RoomExterior, -2},
		{"waterfront boosts exterior", "waterfront", insights.RoomExterior, 3},
		{"luxury boosts pool", "luxury", insights.RoomPool, 2},
		{"starter boosts kitchen", "starter", insights.RoomKitchen, 2},
		{"free-text hint matches", "Luxury Estate with Views", insights.RoomExterior, 2},
		{"unmatched hint is neutral", "ranch", insights.RoomKitchen, 0},
		{"no hint is neutral", "", insights.RoomKitchen, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := contextScore(&insights.RoomAnalysis{Type: tt.room}, "")
			got := contextScore(&insights.RoomAnalysis{Type: tt.room}, tt.propertyType)
			if got-base != tt.wantDelta {
				t.Errorf("delta = %v, want %v", got-base, tt.wantDelta)
			}
		})
	}
}

func TestContextScore_FeatureBonuses(t *testing.T) {
	base := contextScore(&insights.RoomAnalysis{Type: insights.RoomLiving}, "")

	rich := contextScore(&insights.RoomAnalysis{
		Type:     insights.RoomLiving,
		Features: []string{"fireplace", "vaulted ceiling", "hardwood floors", "bay window"},
	}, "")
	if rich-base != 1 {
		t.Errorf("feature richness delta = %v, want 1", rich-base)
	}

	three := contextScore(&insights.RoomAnalysis{
		Type:     insights.RoomLiving,
		Features: []string{"fireplace", "vaulted ceiling", "hardwood floors"},
	}, "")
	if three != base {
		t.Errorf("three features delta = %v, want 0", three-base)
	}

	spa := contextScore(&insights.RoomAnalysis{
		Type:     insights.RoomLiving,
		Features: []string{"Spa bath"},
	}, "")
	if spa-base != 2 {
		t.Errorf("spa feature delta = %v, want 2", spa-base)
	}
}

func TestContextScore_FlooredAtZero(t *testing.T) {
	got := contextScore(&insights.RoomAnalysis{
		Type:      insights.RoomUtility,
		Condition: insights.ConditionNeedsUpdates,
	}, "")
	if got != 0 {
		t.Errorf("contextScore() = %v, want 0", got)
	}
}

func TestMatchPropertyType(t *testing.T) {
	tests := []struct {
		hint    string
		want    string
		wantOK  bool
	}{
		{"luxury", "luxury", true},
		{"  Waterfront Cottage ", "waterfront", true},
		{"luxury waterfront estate", "luxury", true}, // first keyword wins
		{"bungalow", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := matchPropertyType(tt.hint)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("matchPropertyType(%q) = %q, %v, want %q, %v", tt.hint, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestInferRoomType(t *testing.T) {
	tests := []struct {
		name        string
		index       int
		totalPhotos int
		want        insights.RoomType
	}{
		{"first photo is exterior", 0, 10, insights.RoomExterior},
		{"second photo is kitchen in a full set", 1, 10, insights.RoomKitchen},
		{"third photo is living in a full set", 2, 10, insights.RoomLiving},
		{"second photo rotates in a tiny set", 1, 3, insights.RoomBathroom},
		{"later photos rotate", 4, 10, insights.RoomBedroom},
		{"rotation wraps", 7, 10, insights.RoomOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := inferRoomType(tt.index, tt.totalPhotos)
			if got != tt.want {
				t.Errorf("inferRoomType(%d, %d) = %s, want %s", tt.index, tt.totalPhotos, got, tt.want)
			}
		})
	}
}

func TestPositionContextScore_FirstPhotoHighest(t *testing.T) {
	first := positionContextScore(0, 10)
	for i := 1; i < 10; i++ {
		if s := positionContextScore(i, 10); s > first {
			t.Errorf("positionContextScore(%d) = %v, exceeds first photo's %v", i, s, first)
		}
	}
}
