package api

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/EvgDevt/weather-app/pkg/models"
)

// CurrentWeather retrieves the latest reading for one city. Pass "imperial"
// as units for Fahrenheit; anything else is metric.
func (c *Client) CurrentWeather(city, unitSystem string) (*models.WeatherResponse, error) {
	params := url.Values{}
	params.Set("city", city)
	if unitSystem != "" {
		params.Set("units", unitSystem)
	}

	resp, err := c.doRequest("GET", basePath+"/weather-data/now?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var data models.WeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &data, nil
}

// CurrentWeatherByCities retrieves the latest reading per city.
func (c *Client) CurrentWeatherByCities(cities []string, unitSystem string) ([]models.WeatherResponse, error) {
	params := url.Values{}
	for _, city := range cities {
		params.Add("city", city)
	}
	if unitSystem != "" {
		params.Set("units", unitSystem)
	}

	resp, err := c.doRequest("GET", basePath+"/weather-data/now/cities?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var data []models.WeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return data, nil
}

// WeatherHistory retrieves readings between two dates, both inclusive.
func (c *Client) WeatherHistory(city string, startDate, endDate time.Time, unitSystem string) ([]models.WeatherResponse, error) {
	params := url.Values{}
	params.Set("startDate", startDate.Format("2006-01-02"))
	params.Set("endDate", endDate.Format("2006-01-02"))
	if unitSystem != "" {
		params.Set("units", unitSystem)
	}

	path := fmt.Sprintf("%s/weather-data/%s/history?%s", basePath, url.PathEscape(city), params.Encode())

	resp, err := c.doRequest("GET", path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var data []models.WeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return data, nil
}

// SevenDayAverage retrieves the trailing seven-day average temperature.
func (c *Client) SevenDayAverage(city, unitSystem string) (*models.AverageWeatherResponse, error) {
	params := url.Values{}
	if unitSystem != "" {
		params.Set("units", unitSystem)
	}

	path := fmt.Sprintf("%s/weather-data/%s/7-days-average", basePath, url.PathEscape(city))
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	resp, err := c.doRequest("GET", path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var data models.AverageWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &data, nil
}

// SubmitWeather ingests one reading. Requires an ADMIN token.
func (c *Client) SubmitWeather(req models.WeatherCreateRequest) (*models.WeatherData, error) {
	resp, err := c.doRequest("POST", basePath+"/weather-data", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var data models.WeatherData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &data, nil
}
