package models

type Badge struct {
	Name          string `json:"name"`
	Level         int    `json:"level"`
	TripCount     int    `json:"trip_count"`
	NextThreshold *int   `json:"next_threshold,omitempty"`
	Remaining     int    `json:"remaining"`
}

type badgeTier struct {
	name      string
	threshold int
}

var badgeTiers = []badgeTier{
	{"New Traveler", 0},
	{"Explorer", 1},
	{"Adventurer", 3},
	{"Globetrotter", 6},
	{"World Citizen", 10},
}

// ComputeBadge maps a trip count onto the fixed badge ladder. It is pure:
// the same count always produces the same badge.
func ComputeBadge(tripCount int) Badge {
	badge := Badge{
		Name:      badgeTiers[0].name,
		TripCount: tripCount,
	}
	for i, tier := range badgeTiers {
		if tripCount < tier.threshold {
			break
		}
		badge.Name = tier.name
		badge.Level = i
		badge.NextThreshold = nil
		if i+1 < len(badgeTiers) {
			next := badgeTiers[i+1].threshold
			badge.NextThreshold = &next
		}
	}
	if badge.NextThreshold != nil {
		badge.Remaining = *badge.NextThreshold - tripCount
		if badge.Remaining < 0 {
			badge.Remaining = 0
		}
	}
	return badge
}
