package models

import "fmt"

// WeatherCondition is the enumerated sky/precipitation state of a measurement.
type WeatherCondition string

const (
	ConditionSunny        WeatherCondition = "SUNNY"
	ConditionCloudless    WeatherCondition = "CLOUDLESS"
	ConditionRainy        WeatherCondition = "RAINY"
	ConditionRain         WeatherCondition = "RAIN"
	ConditionCloudy       WeatherCondition = "CLOUDY"
	ConditionMist         WeatherCondition = "MIST"
	ConditionSnowy        WeatherCondition = "SNOWY"
	ConditionThunderstorm WeatherCondition = "THUNDERSTORM"
	ConditionWindy        WeatherCondition = "WINDY"
	ConditionFoggy        WeatherCondition = "FOGGY"
	ConditionHail         WeatherCondition = "HAIL"
	ConditionOvercast     WeatherCondition = "OVERCAST"
	ConditionTornado      WeatherCondition = "TORNADO"
	ConditionFreezingRain WeatherCondition = "FREEZING_RAIN"
	ConditionSandstorm    WeatherCondition = "SANDSTORM"
	ConditionIcy          WeatherCondition = "ICY"
)

var weatherConditions = map[WeatherCondition]struct{}{
	ConditionSunny:        {},
	ConditionCloudless:    {},
	ConditionRainy:        {},
	ConditionRain:         {},
	ConditionCloudy:       {},
	ConditionMist:         {},
	ConditionSnowy:        {},
	ConditionThunderstorm: {},
	ConditionWindy:        {},
	ConditionFoggy:        {},
	ConditionHail:         {},
	ConditionOvercast:     {},
	ConditionTornado:      {},
	ConditionFreezingRain: {},
	ConditionSandstorm:    {},
	ConditionIcy:          {},
}

// IsValid reports whether c is one of the enumerated weather conditions.
func (c WeatherCondition) IsValid() bool {
	_, ok := weatherConditions[c]
	return ok
}

// ParseWeatherCondition converts a stored string into a WeatherCondition.
func ParseWeatherCondition(s string) (WeatherCondition, error) {
	c := WeatherCondition(s)
	if !c.IsValid() {
		return "", fmt.Errorf("unknown weather condition %q", s)
	}
	return c, nil
}
