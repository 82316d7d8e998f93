package service

import (
	"context"
	"fmt"
	"strings"

	"weathercat/internal/domain"
	"weathercat/internal/weather"
)

// ForecastProvider is the remote forecast API
type ForecastProvider interface {
	Exists(ctx context.Context, location string) (bool, error)
	Fetch(ctx context.Context, q domain.ForecastQuery) ([]byte, error)
}

// WeatherService turns provider payloads into reports. Every failure comes back
// as ErrLocationNotFound, ErrProviderUnavailable or ErrMalformedPayload.
type WeatherService struct {
	provider ForecastProvider
}

// NewWeatherService creates a new weather service
func NewWeatherService(provider ForecastProvider) *WeatherService {
	return &WeatherService{provider: provider}
}

// CheckLocation returns nil if the provider knows the location
func (s *WeatherService) CheckLocation(ctx context.Context, location string) error {
	// the persisted format has no escaping
	if strings.TrimSpace(location) == "" || strings.ContainsAny(location, "|\r\n") {
		return domain.ErrLocationNotFound
	}

	exists, err := s.provider.Exists(ctx, location)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrLocationNotFound
	}
	return nil
}

// Current returns the weather of the first forecast interval
func (s *WeatherService) Current(ctx context.Context, settings domain.Settings) (domain.LocationInfo, domain.CurrentReport, error) {
	p, err := s.payload(ctx, settings)
	if err != nil {
		return domain.LocationInfo{}, domain.CurrentReport{}, err
	}
	return weather.Current(p)
}

// Tomorrow returns tomorrow's intervals in the location's local time
func (s *WeatherService) Tomorrow(ctx context.Context, settings domain.Settings) (domain.LocationInfo, []domain.TomorrowReport, error) {
	p, err := s.payload(ctx, settings)
	if err != nil {
		return domain.LocationInfo{}, nil, err
	}
	return weather.Tomorrow(p)
}

// Forecast returns the 4-day summary
func (s *WeatherService) Forecast(ctx context.Context, settings domain.Settings) (domain.LocationInfo, []domain.DayReport, error) {
	p, err := s.payload(ctx, settings)
	if err != nil {
		return domain.LocationInfo{}, nil, err
	}
	return weather.Forecast(p)
}

func (s *WeatherService) payload(ctx context.Context, settings domain.Settings) (weather.Payload, error) {
	raw, err := s.provider.Fetch(ctx, domain.QueryFor(settings))
	if err != nil {
		return weather.Payload{}, fmt.Errorf("failed to fetch forecast: %w", err)
	}
	return weather.DecodePayload(raw)
}
