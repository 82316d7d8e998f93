package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"weathercat/internal/domain"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the OpenWeatherMap 5 day / 3 hour forecast endpoint
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5/forecast"

var (
	errRateLimited = errors.New("rate limited")
	errServerError = errors.New("server error")
)

// Options configures the OpenWeatherMap client
type Options struct {
	BaseURL          string
	APIKey           string
	Timeout          time.Duration
	RPS              float64
	Burst            int
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

// OpenWeatherMap talks to the forecast API. Calls are never retried.
type OpenWeatherMap struct {
	baseURL string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
	circuit *gobreaker.CircuitBreaker
	cache   *Cache
	logger  *zap.Logger
}

// NewOpenWeatherMap creates a client. cache may be nil.
func NewOpenWeatherMap(opts Options, cache *Cache, logger *zap.Logger) *OpenWeatherMap {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.FailureThreshold == 0 {
		opts.FailureThreshold = 5
	}
	if opts.OpenTimeout <= 0 {
		opts.OpenTimeout = 30 * time.Second
	}

	limit := rate.Inf
	if opts.RPS > 0 {
		limit = rate.Limit(opts.RPS)
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 1
	}

	threshold := opts.FailureThreshold
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweathermap",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     opts.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &OpenWeatherMap{
		baseURL: opts.BaseURL,
		apiKey:  opts.APIKey,
		client:  &http.Client{Timeout: opts.Timeout},
		limiter: rate.NewLimiter(limit, burst),
		circuit: cb,
		cache:   cache,
		logger:  logger,
	}
}

// Exists reports whether the API knows the location: 200 means yes,
// 429, 5xx and transport failures mean the answer is unknown.
func (p *OpenWeatherMap) Exists(ctx context.Context, location string) (bool, error) {
	values := url.Values{}
	values.Set("q", location)
	values.Set("appid", p.apiKey)

	status, _, err := p.get(ctx, values)
	if err != nil {
		return false, err
	}
	return status == http.StatusOK, nil
}

// Fetch returns the raw forecast payload for the query
func (p *OpenWeatherMap) Fetch(ctx context.Context, q domain.ForecastQuery) ([]byte, error) {
	key := cacheKey(q)
	if p.cache != nil {
		if data, ok := p.cache.Get(key); ok {
			p.logger.Debug("Forecast cache hit", zap.String("key", key))
			return data, nil
		}
	}

	values := url.Values{}
	values.Set("q", q.Location)
	values.Set("lang", q.Language.Code())
	values.Set("units", q.Units.APIParam())
	values.Set("appid", p.apiKey)

	status, body, err := p.get(ctx, values)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrProviderUnavailable, status)
	}

	if p.cache != nil {
		p.cache.Set(key, body)
	}
	return body, nil
}

// get performs one rate-limited request through the circuit breaker
func (p *OpenWeatherMap) get(ctx context.Context, values url.Values) (int, []byte, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return 0, nil, fmt.Errorf("%w: rate limit wait canceled: %v", domain.ErrProviderUnavailable, err)
	}

	type response struct {
		status int
		body   []byte
	}

	result, err := p.circuit.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+values.Encode(), nil)
		if err != nil {
			return nil, err
		}

		resp, err := p.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests {
			return nil, errRateLimited
		}
		if resp.StatusCode >= 500 {
			return nil, fmt.Errorf("%w: %d", errServerError, resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		return response{status: resp.StatusCode, body: body}, nil
	})
	if err != nil {
		p.logger.Warn("Forecast request failed",
			zap.String("location", values.Get("q")),
			zap.Error(err),
		)
		return 0, nil, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}

	resp := result.(response)
	return resp.status, resp.body, nil
}

func cacheKey(q domain.ForecastQuery) string {
	return strings.ToLower(q.Location) + "|" + q.Language.Code() + "|" + q.Units.APIParam()
}
