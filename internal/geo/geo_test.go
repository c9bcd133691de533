package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackCoords(t *testing.T) {
	p, ok := FallbackCoords("Paris")
	assert.True(t, ok)
	assert.Equal(t, Point{48.85, 2.35}, p)

	// substring match, case-insensitive
	p, ok = FallbackCoords("  Trip to TOKYO downtown ")
	assert.True(t, ok)
	assert.Equal(t, Point{35.67, 139.65}, p)

	_, ok = FallbackCoords("Atlantis")
	assert.False(t, ok)

	_, ok = FallbackCoords("")
	assert.False(t, ok)
}

func TestFallbackCoordsMultipleMatches(t *testing.T) {
	// "france" is listed before "paris", so it wins every time.
	for i := 0; i < 100; i++ {
		p, ok := FallbackCoords("Paris, France")
		assert.True(t, ok)
		assert.Equal(t, Point{46.2, 2.2}, p)
	}

	for i := 0; i < 100; i++ {
		p, ok := FallbackCoords("Tokyo, Japan")
		assert.True(t, ok)
		assert.Equal(t, Point{36.20, 138.25}, p)
	}
}
