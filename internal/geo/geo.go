// Package geo resolves destination names to approximate coordinates when a
// trip was saved without explicit latitude/longitude.
package geo

import "strings"

type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type centroid struct {
	name  string
	point Point
}

// Minimal fallback centroids for common destinations. Checked in order so a
// destination matching several names always resolves to the same point.
var fallbackCentroids = []centroid{
	{"france", Point{46.2, 2.2}},
	{"paris", Point{48.85, 2.35}},
	{"india", Point{20.59, 78.96}},
	{"usa", Point{37.09, -95.71}},
	{"japan", Point{36.20, 138.25}},
	{"tokyo", Point{35.67, 139.65}},
}

// FallbackCoords returns the first centroid whose name occurs as a substring
// of the destination, matching case-insensitively. The second return value is
// false when nothing matches.
func FallbackCoords(destination string) (Point, bool) {
	key := strings.ToLower(strings.TrimSpace(destination))
	for _, c := range fallbackCentroids {
		if strings.Contains(key, c.name) {
			return c.point, true
		}
	}
	return Point{}, false
}
