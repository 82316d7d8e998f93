package service

import (
	"go.uber.org/zap"
)

// UserCounter reports how many users are known
type UserCounter interface {
	Len() int
}

// ForecastCache is the provider payload cache
type ForecastCache interface {
	Len() int
	Purge() int
}

// Stats is a point-in-time snapshot of the bot
type Stats struct {
	Users           int `json:"users"`
	CachedForecasts int `json:"cached_forecasts"`
}

// StatsService handles statistics and cleanup
type StatsService struct {
	users  UserCounter
	cache  ForecastCache
	logger *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(users UserCounter, cache ForecastCache, logger *zap.Logger) *StatsService {
	return &StatsService{
		users:  users,
		cache:  cache,
		logger: logger,
	}
}

// Snapshot returns current counters
func (s *StatsService) Snapshot() Stats {
	return Stats{
		Users:           s.users.Len(),
		CachedForecasts: s.cache.Len(),
	}
}

// CleanupExpiredForecasts removes stale cache entries
func (s *StatsService) CleanupExpiredForecasts() int {
	removed := s.cache.Purge()
	s.logger.Info("Forecast cache cleanup completed",
		zap.Int("removed", removed),
		zap.Int("remaining", s.cache.Len()),
	)
	return removed
}

// LogStats writes the current counters to the log
func (s *StatsService) LogStats() {
	stats := s.Snapshot()
	s.logger.Info("Bot stats",
		zap.Int("users", stats.Users),
		zap.Int("cached_forecasts", stats.CachedForecasts),
	)
}
