package heroselect

import (
	"math"

	"github.com/homecanvas/listing-media-engine/internal/insights"
)

// confidence.go estimates how much to trust a scoring decision, independent
// of the score's magnitude. Confidence is always within [0, 1].

// heroRooms are the room types a hero image conventionally comes from;
// landing on one of them raises confidence in the decision.
var heroRooms = map[insights.RoomType]bool{
	insights.RoomExterior: true,
	insights.RoomKitchen:  true,
	insights.RoomLiving:   true,
	insights.RoomPool:     true,
}

// estimateConfidence combines quality, context, and AI appeal signals into a
// bounded confidence value. hasAppeal is false when no vision analysis backed
// this photo; hasMetadata is false when decode metadata was unobtainable.
func estimateConfidence(quality, contextScore, appeal float64, hasAppeal, hasMetadata bool, room insights.RoomType) float64 {
	c := 0.5
	c += math.Min(0.3, quality/15)
	c += math.Min(0.2, contextScore/15)
	if hasAppeal {
		c += math.Min(0.2, appeal/10)
	}
	if hasMetadata {
		c += 0.1
	}
	if heroRooms[room] {
		c += 0.1
	}
	return clamp01(c)
}

// qualityOnlyConfidence is the confidence for decisions made without vision
// analysis. Deliberately capped below 0.8: an un-assisted decision is
// categorically less trustworthy than one the vision model corroborates.
func qualityOnlyConfidence(quality float64) float64 {
	return math.Min(0.8, math.Max(0, quality/15))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
