package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceMeters(t *testing.T) {
	// same point
	assert.InDelta(t, 0, DistanceMeters(19.076, 72.8777, 19.076, 72.8777), 0.001)

	// Mumbai CST to Gateway of India is roughly 2.3 km
	d := DistanceMeters(18.9398, 72.8355, 18.9220, 72.8347)
	assert.InDelta(t, 2000, d, 500)

	// symmetric
	assert.InDelta(t,
		DistanceMeters(19.0, 72.8, 28.6, 77.2),
		DistanceMeters(28.6, 77.2, 19.0, 72.8),
		0.01)
}
