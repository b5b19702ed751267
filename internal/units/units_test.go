package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNauticalMileConversions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1852.0, NauticalMilesToMeters(1))
	assert.Equal(t, 9260.0, NauticalMilesToMeters(5))
	assert.InDelta(t, 1.0, MetersToNauticalMiles(1852.0), 1e-12)

	// Round trip
	assert.InDelta(t, 3.7, MetersToNauticalMiles(NauticalMilesToMeters(3.7)), 1e-12)
}

func TestAngleConversions(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, math.Pi/6, DegreesToRadians(30), 1e-12)
	assert.InDelta(t, math.Pi, DegreesToRadians(180), 1e-12)
	assert.InDelta(t, 30.0, RadiansToDegrees(DegreesToRadians(30)), 1e-12)
}
