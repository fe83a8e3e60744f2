package weather

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/EvgDevt/weather-app/pkg/apperrors"
	"github.com/EvgDevt/weather-app/pkg/models"
)

// fakeRepository serves readings from a slice, newest first, matching
// cities case-insensitively like the real repository does.
type fakeRepository struct {
	readings []models.WeatherData
	calls    int
}

func (f *fakeRepository) byCity(city string) []models.WeatherData {
	var out []models.WeatherData
	for _, w := range f.readings {
		if strings.EqualFold(w.Location.City, city) {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeRepository) FindLatestWeatherByCity(_ context.Context, city string) (models.WeatherData, error) {
	f.calls++
	rows := f.byCity(city)
	if len(rows) == 0 {
		return models.WeatherData{}, apperrors.ErrNotFound
	}
	return rows[0], nil
}

func (f *fakeRepository) FindWeatherByCityAndDateRange(_ context.Context, city string, from, to time.Time) ([]models.WeatherData, error) {
	f.calls++
	var out []models.WeatherData
	for _, w := range f.byCity(city) {
		if !w.CreatedAt.Before(from) && w.CreatedAt.Before(to) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeRepository) FindFullHistoryByCity(_ context.Context, city string, limit, offset int) ([]models.WeatherData, error) {
	f.calls++
	rows := f.byCity(city)
	if offset >= len(rows) {
		return nil, nil
	}
	rows = rows[offset:]
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (f *fakeRepository) FindLatestWeatherByCities(_ context.Context, cities []string) ([]models.WeatherData, error) {
	f.calls++
	var out []models.WeatherData
	for _, city := range cities {
		rows := f.byCity(city)
		if len(rows) > 0 {
			out = append(out, rows[0])
		}
	}
	return out, nil
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func reading(id int, city string, temp float64, cond models.WeatherCondition, age time.Duration) models.WeatherData {
	return models.WeatherData{
		ID:            id,
		Temperature:   temp,
		WindSpeed:     5.5,
		WindDirection: models.WindNorthWest,
		Humidity:      40,
		Condition:     cond,
		CreatedAt:     time.Now().Add(-age),
		Location:      models.Location{ID: 1, Country: "USA", City: city},
	}
}

func TestLatestByCity_ImperialScenario(t *testing.T) {
	repo := &fakeRepository{readings: []models.WeatherData{
		reading(1, "New York", 22.5, models.ConditionSunny, time.Hour),
	}}
	svc := NewService(repo)

	resp, err := svc.LatestByCity(context.Background(), "New York", "imperial")
	if err != nil {
		t.Fatalf("LatestByCity failed: %v", err)
	}

	if !almostEqual(resp.Temperature, 72.5) {
		t.Errorf("Temperature = %v, want 72.5", resp.Temperature)
	}
	// Feels-like: 22.5 + 5 (SUNNY) = 27.5°C → 81.5°F.
	if !almostEqual(resp.FeelsLikeTemperature, 81.5) {
		t.Errorf("FeelsLikeTemperature = %v, want 81.5", resp.FeelsLikeTemperature)
	}
	if resp.WindDirection != models.WindNorthWest {
		t.Errorf("WindDirection = %v, want NW", resp.WindDirection)
	}
}

func TestLatestByCity_CaseInsensitiveAndMetric(t *testing.T) {
	repo := &fakeRepository{readings: []models.WeatherData{
		reading(1, "New York", 22.5, models.ConditionSunny, time.Hour),
	}}
	svc := NewService(repo)

	resp, err := svc.LatestByCity(context.Background(), "new york", "metric")
	if err != nil {
		t.Fatalf("LatestByCity failed: %v", err)
	}
	if !almostEqual(resp.Temperature, 22.5) {
		t.Errorf("Temperature = %v, want 22.5", resp.Temperature)
	}
	if !almostEqual(resp.FeelsLikeTemperature, 27.5) {
		t.Errorf("FeelsLikeTemperature = %v, want 27.5", resp.FeelsLikeTemperature)
	}
}

func TestLatestByCity_NotFound(t *testing.T) {
	svc := NewService(&fakeRepository{})

	_, err := svc.LatestByCity(context.Background(), "Atlantis", "metric")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("LatestByCity = %v, want ErrNotFound", err)
	}
}

func TestLatestByCity_ConvertsFromCanonicalEveryTime(t *testing.T) {
	repo := &fakeRepository{readings: []models.WeatherData{
		reading(1, "London", 0, models.ConditionCloudy, time.Hour),
	}}
	svc := NewService(repo)
	ctx := context.Background()

	first, err := svc.LatestByCity(ctx, "London", "imperial")
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	// Second call is served from the cache and must not re-convert the
	// already converted value.
	second, err := svc.LatestByCity(ctx, "London", "imperial")
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}

	if !almostEqual(first.Temperature, 32) || !almostEqual(second.Temperature, 32) {
		t.Errorf("temperatures = %v, %v; want both 32", first.Temperature, second.Temperature)
	}
	if repo.calls != 1 {
		t.Errorf("repository calls = %d, want 1 (second served from cache)", repo.calls)
	}

	// A metric caller right after an imperial one still sees Celsius.
	metric, err := svc.LatestByCity(ctx, "London", "metric")
	if err != nil {
		t.Fatalf("metric call failed: %v", err)
	}
	if !almostEqual(metric.Temperature, 0) {
		t.Errorf("metric Temperature = %v, want 0", metric.Temperature)
	}
}

func TestHistoryByCityAndDateRange_ReversedRange(t *testing.T) {
	svc := NewService(&fakeRepository{})

	ranges := [][2]time.Time{
		{time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)},
		{time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)},
		{time.Date(2030, 6, 15, 0, 0, 0, 0, time.UTC), time.Date(2020, 6, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, r := range ranges {
		_, err := svc.HistoryByCityAndDateRange(context.Background(), "London", r[0], r[1], "metric")
		if !errors.Is(err, apperrors.ErrValidation) {
			t.Errorf("range %v..%v: err = %v, want ErrValidation", r[0], r[1], err)
		}
	}
}

func TestHistoryByCityAndDateRange_EndDateInclusive(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	repo := &fakeRepository{readings: []models.WeatherData{
		{
			ID: 1, Temperature: 5, Condition: models.ConditionCloudy,
			CreatedAt: day.Add(18 * time.Hour), // late on the end date
			Location:  models.Location{City: "London"},
		},
	}}
	svc := NewService(repo)

	got, err := svc.HistoryByCityAndDateRange(context.Background(), "London", day, day, "metric")
	if err != nil {
		t.Fatalf("HistoryByCityAndDateRange failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d readings, want 1 (end date is inclusive as a calendar day)", len(got))
	}
}

func TestSevenDayAverage(t *testing.T) {
	repo := &fakeRepository{readings: []models.WeatherData{
		reading(1, "Rome", 20.0, models.ConditionSunny, 24*time.Hour),
		reading(2, "Rome", 22.0, models.ConditionSunny, 48*time.Hour),
		reading(3, "Rome", -100, models.ConditionIcy, 9*24*time.Hour), // outside the window
	}}
	svc := NewService(repo)
	ctx := context.Background()

	metric, err := svc.SevenDayAverage(ctx, "Rome", "metric")
	if err != nil {
		t.Fatalf("SevenDayAverage failed: %v", err)
	}
	if !almostEqual(metric.AverageTemperature, 21.0) {
		t.Errorf("metric average = %v, want 21.0", metric.AverageTemperature)
	}
	if metric.City != "Rome" {
		t.Errorf("City = %q, want Rome", metric.City)
	}

	imperial, err := svc.SevenDayAverage(ctx, "Rome", "imperial")
	if err != nil {
		t.Fatalf("SevenDayAverage imperial failed: %v", err)
	}
	if !almostEqual(imperial.AverageTemperature, 69.8) {
		t.Errorf("imperial average = %v, want 69.8", imperial.AverageTemperature)
	}
}

func TestSevenDayAverage_EmptyWindowIsNotFound(t *testing.T) {
	repo := &fakeRepository{readings: []models.WeatherData{
		reading(1, "Oslo", 3.0, models.ConditionSnowy, 10*24*time.Hour), // too old
	}}
	svc := NewService(repo)

	_, err := svc.SevenDayAverage(context.Background(), "Oslo", "metric")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("SevenDayAverage = %v, want ErrNotFound (empty window is absence, not zero)", err)
	}
}

func TestSevenDayAverage_CachedPerCity(t *testing.T) {
	repo := &fakeRepository{readings: []models.WeatherData{
		reading(1, "Rome", 20.0, models.ConditionSunny, 24*time.Hour),
	}}
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.SevenDayAverage(ctx, "Rome", "metric"); err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	if _, err := svc.SevenDayAverage(ctx, "ROME", "imperial"); err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if repo.calls != 1 {
		t.Errorf("repository calls = %d, want 1 (cache keyed by lowercase city)", repo.calls)
	}

	// After a flush the repository is consulted again.
	svc.Cache().Flush()
	if _, err := svc.SevenDayAverage(ctx, "Rome", "metric"); err != nil {
		t.Fatalf("call after flush failed: %v", err)
	}
	if repo.calls != 2 {
		t.Errorf("repository calls = %d, want 2 after flush", repo.calls)
	}
}

func TestByCities_OneReadingPerCity(t *testing.T) {
	repo := &fakeRepository{readings: []models.WeatherData{
		reading(1, "London", 10, models.ConditionRainy, 3*time.Hour),
		reading(2, "London", 12, models.ConditionOvercast, time.Hour),
		reading(3, "Rome", 25, models.ConditionSunny, 2*time.Hour),
	}}
	svc := NewService(repo)

	got, err := svc.ByCities(context.Background(), []string{"London", "Rome"}, "metric")
	if err != nil {
		t.Fatalf("ByCities failed: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("got %d readings, want exactly one per requested city", len(got))
	}

	byCity := make(map[string]models.WeatherResponse)
	for _, r := range got {
		byCity[r.Location.City] = r
	}
	if !almostEqual(byCity["London"].Temperature, 12) {
		t.Errorf("London temperature = %v, want the most recent (12)", byCity["London"].Temperature)
	}
	if !almostEqual(byCity["Rome"].Temperature, 25) {
		t.Errorf("Rome temperature = %v, want 25", byCity["Rome"].Temperature)
	}
}

func TestFullHistoryByCity_Paging(t *testing.T) {
	repo := &fakeRepository{readings: []models.WeatherData{
		reading(1, "London", 10, models.ConditionRainy, 3*time.Hour),
		reading(2, "London", 11, models.ConditionRainy, 2*time.Hour),
		reading(3, "London", 12, models.ConditionRainy, time.Hour),
	}}
	svc := NewService(repo)

	page1, err := svc.FullHistoryByCity(context.Background(), "London", models.HistoryQueryParams{Page: 1, Limit: 2}, "metric")
	if err != nil {
		t.Fatalf("page 1 failed: %v", err)
	}
	if len(page1) != 2 || !almostEqual(page1[0].Temperature, 12) {
		t.Errorf("page 1 = %d rows starting at %v, want 2 rows newest-first", len(page1), page1[0].Temperature)
	}

	page2, err := svc.FullHistoryByCity(context.Background(), "London", models.HistoryQueryParams{Page: 2, Limit: 2}, "metric")
	if err != nil {
		t.Fatalf("page 2 failed: %v", err)
	}
	if len(page2) != 1 || !almostEqual(page2[0].Temperature, 10) {
		t.Errorf("page 2 = %d rows, want the single oldest reading", len(page2))
	}

	_, err = svc.FullHistoryByCity(context.Background(), "London", models.HistoryQueryParams{Page: 0, Limit: 2}, "metric")
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("invalid page: err = %v, want ErrValidation", err)
	}
}
