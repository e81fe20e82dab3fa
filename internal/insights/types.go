// Package insights defines the room-level photo analysis contract between the
// listing media core and the external vision model. The core only consumes
// RoomAnalysis entries and the hero candidate hint; everything else the vision
// model may return belongs to other subsystems.
package insights

import "strings"

// RoomType classifies what a listing photo depicts.
type RoomType string

// Room classifications returned by the vision model or inferred from photo position.
const (
	RoomKitchen  RoomType = "kitchen"
	RoomLiving   RoomType = "living"
	RoomBedroom  RoomType = "bedroom"
	RoomBathroom RoomType = "bathroom"
	RoomExterior RoomType = "exterior"
	RoomDining   RoomType = "dining"
	RoomOffice   RoomType = "office"
	RoomPool     RoomType = "pool"
	RoomGarage   RoomType = "garage"
	RoomUtility  RoomType = "utility"
	RoomOther    RoomType = "other"
)

// ParseRoomType normalizes a free-text room label to a known RoomType.
// Unrecognized labels map to RoomOther.
func ParseRoomType(s string) RoomType {
	switch RoomType(strings.ToLower(strings.TrimSpace(s))) {
	case RoomKitchen, RoomLiving, RoomBedroom, RoomBathroom, RoomExterior,
		RoomDining, RoomOffice, RoomPool, RoomGarage, RoomUtility:
		return RoomType(strings.ToLower(strings.TrimSpace(s)))
	default:
		return RoomOther
	}
}

// Condition describes the visible finish quality of a room.
type Condition string

// Visible condition tiers.
const (
	ConditionExcellent    Condition = "excellent"
	ConditionGood         Condition = "good"
	ConditionNeedsUpdates Condition = "needs_updates"
)

// RoomAnalysis is the vision model's verdict for a single photo.
// Appeal is a 0-10 marketing-appeal estimate for the photo itself,
// not the room category.
type RoomAnalysis struct {
	Type      RoomType  `json:"type"`
	Features  []string  `json:"features,omitempty"`
	Condition Condition `json:"condition,omitempty"`
	Appeal    float64   `json:"appeal"`
}

// HeroCandidate is the vision model's suggested lead photo.
type HeroCandidate struct {
	Index  int    `json:"index"`
	Reason string `json:"reason,omitempty"`
}

// PhotoInsights is the full analysis payload for a photo set.
// Rooms is aligned 1:1 with the analyzed photo buffers; a length mismatch
// means the insights cannot be trusted for per-photo scoring.
type PhotoInsights struct {
	Rooms         []RoomAnalysis `json:"rooms"`
	HeroCandidate *HeroCandidate `json:"heroCandidate,omitempty"`
}
