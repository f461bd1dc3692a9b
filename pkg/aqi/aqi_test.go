package aqi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategory(t *testing.T) {
	tests := []struct {
		aqi  int
		want string
	}{
		{-1, "Unknown"},
		{0, "Good"},
		{50, "Good"},
		{51, "Moderate"},
		{150, "Unhealthy for Sensitive Groups"},
		{200, "Unhealthy"},
		{300, "Very Unhealthy"},
		{301, "Hazardous"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Category(tt.aqi), "aqi %d", tt.aqi)
	}
}

func TestWithinTolerance(t *testing.T) {
	assert.True(t, WithinTolerance(42, 42))
	assert.True(t, WithinTolerance(42, 45))
	assert.True(t, WithinTolerance(42, 39))
	assert.False(t, WithinTolerance(42, 46))
	assert.False(t, WithinTolerance(42, 38))
}

func TestLocationString(t *testing.T) {
	assert.Equal(t, "Delft, South Holland, Netherlands", Location{"Delft", "South Holland", "Netherlands"}.String())
	assert.NotEmpty(t, Locations)
}
