package heroselect

// context.go scores the marketing relevance of what a photo depicts,
// independent of its photographic quality.

import (
	"strings"

	"github.com/homecanvas/listing-media-engine/internal/insights"
)

// roomBaseScores rates room types by marketing relevance: how strongly a
// lead photo of that room converts listing views. Exteriors and kitchens
// sell homes; garages and utility rooms do not.
var roomBaseScores = map[insights.RoomType]float64{
	insights.RoomExterior: 10,
	insights.RoomPool:     9,
	insights.RoomKitchen:  9,
	insights.RoomLiving:   8,
	insights.RoomDining:   7,
	insights.RoomBedroom:  6,
	insights.RoomBathroom: 5,
	insights.RoomOther:    5,
	insights.RoomOffice:   4,
	insights.RoomGarage:   2,
	insights.RoomUtility:  1,
}

// propertyTypeModifiers biases room relevance per property segment. This is
// additive data: supporting a new segment means a new table entry, not a new
// code path. A condo's shared exterior is less distinctive, so it scores down;
// a waterfront listing lives or dies on its exterior and pool shots.
var propertyTypeModifiers = map[string]map[insights.RoomType]float64{
	"luxury": {
		insights.RoomPool:     2,
		insights.RoomExterior: 2,
		insights.RoomKitchen:  1,
	},
	"starter": {
		insights.RoomKitchen: 2,
		insights.RoomLiving:  1,
		insights.RoomBedroom: 1,
	},
	"condo": {
		insights.RoomLiving:   2,
		insights.RoomKitchen:  1,
		insights.RoomExterior: -2,
	},
	"waterfront": {
		insights.RoomExterior: 3,
		insights.RoomPool:     3,
	},
	"commercial": {
		insights.RoomExterior: 2,
		insights.RoomOffice:   2,
		insights.RoomOther:    1,
	},
}

// propertyTypeKeywords fixes the match order so a hint like
// "luxury waterfront estate" resolves deterministically.
var propertyTypeKeywords = []string{"luxury", "starter", "condo", "waterfront", "commercial"}

// matchPropertyType resolves a free-text property hint to a modifier table key.
func matchPropertyType(hint string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(hint))
	if normalized == "" {
		return "", false
	}
	for _, key := range propertyTypeKeywords {
		if strings.Contains(normalized, key) {
			return key, true
		}
	}
	return "", false
}

// contextScore rates a fully analyzed room's marketing relevance: base score
// by room type, adjusted for condition, property segment, feature richness,
// and high-conversion amenities.
func contextScore(room *insights.RoomAnalysis, propertyType string) float64 {
	score, ok := roomBaseScores[room.Type]
	if !ok {
		score = roomBaseScores[insights.RoomOther]
	}

	switch room.Condition {
	case insights.ConditionExcellent:
		score += 2
	case insights.ConditionGood:
		score++
	case insights.ConditionNeedsUpdates:
		score--
	}

	if key, ok := matchPropertyType(propertyType); ok {
		if delta, ok := propertyTypeModifiers[key][room.Type]; ok {
			score += delta
		}
	}

	if len(room.Features) > 3 {
		score++
	}

	// Pool/spa amenities convert even when photographed from another room's
	// angle, so the boost is independent of the classified room type.
	if hasPoolOrSpaFeature(room.Features) {
		score += 2
	}

	if score < 0 {
		score = 0
	}
	return score
}

func hasPoolOrSpaFeature(features []string) bool {
	for _, f := range features {
		lower := strings.ToLower(f)
		if strings.Contains(lower, "pool") || strings.Contains(lower, "spa") {
			return true
		}
	}
	return false
}

// positionRotation is the room-type guess for photos past the conventional
// exterior/kitchen/living opening sequence of a listing shoot.
var positionRotation = []insights.RoomType{
	insights.RoomBedroom,
	insights.RoomBathroom,
	insights.RoomDining,
	insights.RoomOther,
}

// inferRoomType guesses a room type from photo position, for photo sets
// without vision analysis. Listing shoots conventionally lead with the
// exterior, then kitchen and living space; later photos rotate through
// the remaining rooms.
func inferRoomType(index, totalPhotos int) insights.RoomType {
	switch {
	case index == 0:
		return insights.RoomExterior
	case index == 1 && totalPhotos >= 4:
		return insights.RoomKitchen
	case index == 2 && totalPhotos >= 5:
		return insights.RoomLiving
	}
	return positionRotation[index%len(positionRotation)]
}

// positionContextScore is the quality-only-mode context score: the base table
// applied to the position-inferred room type, with none of the condition or
// feature bonuses — those need real analysis to be trustworthy.
func positionContextScore(index, totalPhotos int) float64 {
	return roomBaseScores[inferRoomType(index, totalPhotos)]
}
