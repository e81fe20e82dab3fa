package heroselect

import (
	"strings"

	"github.com/homecanvas/listing-media-engine/internal/insights"
)

// reasons.go builds the human-readable justification strings carried on every
// candidate. These surface in agent-facing UIs, so they read as marketing
// shorthand, not scoring internals.

var roomLabels = map[insights.RoomType]string{
	insights.RoomKitchen:  "Kitchen",
	insights.RoomLiving:   "Living area",
	insights.RoomBedroom:  "Bedroom",
	insights.RoomBathroom: "Bathroom",
	insights.RoomExterior: "Exterior view",
	insights.RoomDining:   "Dining area",
	insights.RoomOffice:   "Home office",
	insights.RoomPool:     "Pool area",
	insights.RoomGarage:   "Garage",
	insights.RoomUtility:  "Utility space",
	insights.RoomOther:    "Property photo",
}

// Quality tiers for reason strings.
const (
	excellentQualityThreshold = 10
	goodQualityThreshold      = 7
)

func roomLabel(room insights.RoomType) string {
	if label, ok := roomLabels[room]; ok {
		return label
	}
	return roomLabels[insights.RoomOther]
}

// buildInsightReason describes an AI-analyzed candidate: room, image quality
// tier, condition, a couple of notable features, and marketing-appeal tier.
func buildInsightReason(room *insights.RoomAnalysis, quality float64) string {
	parts := []string{roomLabel(room.Type)}

	switch {
	case quality >= excellentQualityThreshold:
		parts = append(parts, "excellent image quality")
	case quality >= goodQualityThreshold:
		parts = append(parts, "good image quality")
	}

	switch room.Condition {
	case insights.ConditionExcellent:
		parts = append(parts, "shown in excellent condition")
	case insights.ConditionGood:
		parts = append(parts, "in good condition")
	}

	if len(room.Features) > 0 {
		features := room.Features
		if len(features) > 2 {
			features = features[:2]
		}
		parts = append(parts, "featuring "+strings.Join(features, ", "))
	}

	switch {
	case room.Appeal >= 8:
		parts = append(parts, "high marketing appeal")
	case room.Appeal >= 6:
		parts = append(parts, "solid marketing appeal")
	}

	return strings.Join(parts, ", ")
}

// buildQualityReason describes a candidate scored without vision analysis:
// inferred room plus quality tier only.
func buildQualityReason(room insights.RoomType, quality float64) string {
	parts := []string{roomLabel(room) + " (inferred from photo position)"}

	switch {
	case quality >= excellentQualityThreshold:
		parts = append(parts, "excellent image quality")
	case quality >= goodQualityThreshold:
		parts = append(parts, "good image quality")
	}

	return strings.Join(parts, ", ")
}
