package services

import (
	"context"
	"sync"

	"github.com/jwebster45206/school-maze/pkg/aqi"
)

// MockAirQuality returns a fixed reading, or Err when set.
type MockAirQuality struct {
	mu      sync.Mutex
	AQI     int
	Err     error
	Queried []aqi.Location
}

var _ aqi.Lookup = (*MockAirQuality)(nil)

func NewMockAirQuality(reading int) *MockAirQuality {
	return &MockAirQuality{AQI: reading}
}

func (m *MockAirQuality) FetchAQI(ctx context.Context, loc aqi.Location) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Queried = append(m.Queried, loc)
	if m.Err != nil {
		return 0, m.Err
	}
	return m.AQI, nil
}
