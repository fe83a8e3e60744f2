// Package units implements the request-scoped unit system selection and the
// temperature conversions applied to weather responses before they leave
// the server. Storage is always Celsius; conversion happens on the way out.
package units

import (
	"fmt"
	"strings"

	"github.com/EvgDevt/weather-app/pkg/models"
)

const (
	Metric   = "metric"
	Imperial = "imperial"
)

// Resolve normalizes the raw `units` query parameter. Only a case-insensitive
// "imperial" selects imperial; anything else, including the empty string,
// silently falls back to metric.
func Resolve(raw string) string {
	if strings.EqualFold(raw, Imperial) {
		return Imperial
	}
	return Metric
}

// CelsiusToFahrenheit converts a Celsius temperature to Fahrenheit.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// ConvertResponse converts the temperature fields of a response to the
// requested unit system. Metric input passes through untouched, so the
// function is a no-op unless units resolves to imperial. The input must
// carry canonical Celsius values.
func ConvertResponse(resp models.WeatherResponse, unitSystem string) models.WeatherResponse {
	if !strings.EqualFold(unitSystem, Imperial) {
		return resp
	}
	resp.Temperature = CelsiusToFahrenheit(resp.Temperature)
	resp.FeelsLikeTemperature = CelsiusToFahrenheit(resp.FeelsLikeTemperature)
	return resp
}

// FeelsLike derives the perceived temperature from the actual temperature
// and the weather condition via fixed offsets.
//
// A reading without a condition is a data-integrity fault, not a default:
// persisted readings always carry one, so an empty condition here means the
// row is broken and the error is not recoverable.
func FeelsLike(condition models.WeatherCondition, actualTempC float64) (float64, error) {
	if condition == "" {
		return 0, fmt.Errorf("weather condition is not set")
	}

	switch condition {
	case models.ConditionIcy, models.ConditionHail, models.ConditionSnowy,
		models.ConditionFreezingRain, models.ConditionTornado:
		return actualTempC - 7.0, nil
	case models.ConditionRainy, models.ConditionRain, models.ConditionThunderstorm,
		models.ConditionWindy, models.ConditionOvercast, models.ConditionFoggy,
		models.ConditionMist:
		return actualTempC - 3.0, nil
	case models.ConditionSunny, models.ConditionCloudless:
		return actualTempC + 5.0, nil
	case models.ConditionSandstorm, models.ConditionCloudy:
		return actualTempC, nil
	default:
		return 0, fmt.Errorf("unknown weather condition %q", condition)
	}
}
