// Package weather implements the read side of the API: latest, historical
// and averaged measurements per city, with the derived feels-like field
// populated and unit conversion applied before anything is returned.
package weather

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/EvgDevt/weather-app/pkg/apperrors"
	"github.com/EvgDevt/weather-app/pkg/models"
	"github.com/EvgDevt/weather-app/pkg/units"
)

// Repository is the slice of the persistence layer the weather queries
// need. City matching is case-insensitive and locations come back joined.
type Repository interface {
	FindLatestWeatherByCity(ctx context.Context, city string) (models.WeatherData, error)
	FindWeatherByCityAndDateRange(ctx context.Context, city string, from, to time.Time) ([]models.WeatherData, error)
	FindFullHistoryByCity(ctx context.Context, city string, limit, offset int) ([]models.WeatherData, error)
	FindLatestWeatherByCities(ctx context.Context, cities []string) ([]models.WeatherData, error)
}

// Service answers weather queries. All methods take the caller's resolved
// unit system explicitly; nothing about units is ambient state.
type Service struct {
	repo  Repository
	cache *Cache
	now   func() time.Time
}

// NewService creates a weather query Service.
func NewService(repo Repository) *Service {
	return &Service{
		repo:  repo,
		cache: NewCache(),
		now:   time.Now,
	}
}

// Cache exposes the service cache so the scheduled flush job can clear it.
func (s *Service) Cache() *Cache {
	return s.cache
}

// toResponse populates the feels-like field from the canonical reading and
// converts to the requested unit system.
func toResponse(w models.WeatherData, unitSystem string) (models.WeatherResponse, error) {
	feelsLike, err := units.FeelsLike(w.Condition, w.Temperature)
	if err != nil {
		return models.WeatherResponse{}, fmt.Errorf("reading %d: %w", w.ID, err)
	}

	resp := models.WeatherResponse{
		Temperature:          w.Temperature,
		FeelsLikeTemperature: feelsLike,
		WindSpeed:            w.WindSpeed,
		WindDirection:        w.WindDirection,
		Humidity:             w.Humidity,
		WeatherCondition:     w.Condition,
		Location:             w.Location,
		CreatedAt:            w.CreatedAt,
	}
	return units.ConvertResponse(resp, unitSystem), nil
}

func toResponses(readings []models.WeatherData, unitSystem string) ([]models.WeatherResponse, error) {
	responses := make([]models.WeatherResponse, 0, len(readings))
	for _, w := range readings {
		resp, err := toResponse(w, unitSystem)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// LatestByCity returns the most recent reading for a city. The canonical
// reading is cached keyed by lowercase city; conversion is applied after
// the cache so repeated imperial requests always convert from Celsius.
func (s *Service) LatestByCity(ctx context.Context, city, unitSystem string) (models.WeatherResponse, error) {
	key := strings.ToLower(city)

	w, ok := s.cache.GetLatest(key)
	if !ok {
		var err error
		w, err = s.repo.FindLatestWeatherByCity(ctx, city)
		if err != nil {
			return models.WeatherResponse{}, err
		}
		s.cache.SetLatest(key, w)
	}

	return toResponse(w, unitSystem)
}

// HistoryByCityAndDateRange returns readings between startDate and endDate,
// both taken as calendar days: the window runs from startDate 00:00 up to
// but not including the day after endDate. Newest first.
func (s *Service) HistoryByCityAndDateRange(ctx context.Context, city string, startDate, endDate time.Time, unitSystem string) ([]models.WeatherResponse, error) {
	if startDate.After(endDate) {
		return nil, fmt.Errorf("%w: start date cannot be after end date", apperrors.ErrValidation)
	}

	from := startDate.Truncate(24 * time.Hour)
	to := endDate.Truncate(24 * time.Hour).AddDate(0, 0, 1)

	readings, err := s.repo.FindWeatherByCityAndDateRange(ctx, city, from, to)
	if err != nil {
		return nil, err
	}
	return toResponses(readings, unitSystem)
}

// FullHistoryByCity returns the paginated full history for a city,
// newest first.
func (s *Service) FullHistoryByCity(ctx context.Context, city string, params models.HistoryQueryParams, unitSystem string) ([]models.WeatherResponse, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	readings, err := s.repo.FindFullHistoryByCity(ctx, city, params.Limit, params.Offset())
	if err != nil {
		return nil, err
	}
	return toResponses(readings, unitSystem)
}

// SevenDayAverage averages the temperature over the trailing seven days.
// An empty window is absence, not zero: it returns apperrors.ErrNotFound.
// The Celsius average is cached keyed by lowercase city.
func (s *Service) SevenDayAverage(ctx context.Context, city, unitSystem string) (models.AverageWeatherResponse, error) {
	key := strings.ToLower(city)

	avg, ok := s.cache.GetAverage(key)
	if !ok {
		end := s.now()
		start := end.AddDate(0, 0, -7)

		readings, err := s.repo.FindWeatherByCityAndDateRange(ctx, city, start, end)
		if err != nil {
			return models.AverageWeatherResponse{}, err
		}
		if len(readings) == 0 {
			return models.AverageWeatherResponse{}, fmt.Errorf("no readings for city %q in the last 7 days: %w", city, apperrors.ErrNotFound)
		}

		var sum float64
		for _, w := range readings {
			sum += w.Temperature
		}
		avg = sum / float64(len(readings))
		s.cache.SetAverage(key, avg)
	}

	if strings.EqualFold(unitSystem, units.Imperial) {
		avg = units.CelsiusToFahrenheit(avg)
	}

	return models.AverageWeatherResponse{City: city, AverageTemperature: avg}, nil
}

// ByCities returns the single most recent reading for each requested city.
func (s *Service) ByCities(ctx context.Context, cities []string, unitSystem string) ([]models.WeatherResponse, error) {
	readings, err := s.repo.FindLatestWeatherByCities(ctx, cities)
	if err != nil {
		return nil, err
	}
	return toResponses(readings, unitSystem)
}
