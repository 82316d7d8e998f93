package testutil

import (
	"context"

	"weathercat/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockForecastProvider is a mock for the forecast API client
type MockForecastProvider struct {
	mock.Mock
}

func (m *MockForecastProvider) Exists(ctx context.Context, location string) (bool, error) {
	args := m.Called(ctx, location)
	return args.Bool(0), args.Error(1)
}

func (m *MockForecastProvider) Fetch(ctx context.Context, q domain.ForecastQuery) ([]byte, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockForecastCache is a mock for the payload cache
type MockForecastCache struct {
	mock.Mock
}

func (m *MockForecastCache) Len() int {
	args := m.Called()
	return args.Int(0)
}

func (m *MockForecastCache) Purge() int {
	args := m.Called()
	return args.Int(0)
}

// MockUserCounter is a mock for the user state store size
type MockUserCounter struct {
	mock.Mock
}

func (m *MockUserCounter) Len() int {
	args := m.Called()
	return args.Int(0)
}

// MockWeatherService is a mock for the weather service used by the dialogue engine
type MockWeatherService struct {
	mock.Mock
}

func (m *MockWeatherService) CheckLocation(ctx context.Context, location string) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockWeatherService) Current(ctx context.Context, settings domain.Settings) (domain.LocationInfo, domain.CurrentReport, error) {
	args := m.Called(ctx, settings)
	return args.Get(0).(domain.LocationInfo), args.Get(1).(domain.CurrentReport), args.Error(2)
}

func (m *MockWeatherService) Tomorrow(ctx context.Context, settings domain.Settings) (domain.LocationInfo, []domain.TomorrowReport, error) {
	args := m.Called(ctx, settings)
	if args.Get(1) == nil {
		return args.Get(0).(domain.LocationInfo), nil, args.Error(2)
	}
	return args.Get(0).(domain.LocationInfo), args.Get(1).([]domain.TomorrowReport), args.Error(2)
}

func (m *MockWeatherService) Forecast(ctx context.Context, settings domain.Settings) (domain.LocationInfo, []domain.DayReport, error) {
	args := m.Called(ctx, settings)
	if args.Get(1) == nil {
		return args.Get(0).(domain.LocationInfo), nil, args.Error(2)
	}
	return args.Get(0).(domain.LocationInfo), args.Get(1).([]domain.DayReport), args.Error(2)
}
