package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/EvgDevt/weather-app/pkg/models"
)

func TestAuthenticate_StoresToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/weather-api/v1/auth/authenticate" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}

		var req models.AuthenticationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req.Email != "jane@example.com" {
			t.Errorf("Expected email in request, got %s", req.Email)
		}

		json.NewEncoder(w).Encode(models.AuthenticationResponse{Token: "issued-token"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if err := client.Authenticate("jane@example.com", "Password123!"); err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}

	if client.token != "issued-token" {
		t.Errorf("Expected token to be stored on the client, got %q", client.token)
	}
}

func TestCurrentWeather_SendsBearerAndUnits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer my-token" {
			t.Errorf("Expected bearer token header, got %q", got)
		}
		if got := r.URL.Query().Get("city"); got != "New York" {
			t.Errorf("Expected city=New York, got %q", got)
		}
		if got := r.URL.Query().Get("units"); got != "imperial" {
			t.Errorf("Expected units=imperial, got %q", got)
		}

		json.NewEncoder(w).Encode(models.WeatherResponse{
			Temperature:          72.5,
			FeelsLikeTemperature: 81.5,
			WeatherCondition:     models.ConditionSunny,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, WithToken("my-token"), WithTimeout(5*time.Second))

	resp, err := client.CurrentWeather("New York", "imperial")
	if err != nil {
		t.Fatalf("CurrentWeather failed: %v", err)
	}

	if resp.Temperature != 72.5 || resp.FeelsLikeTemperature != 81.5 {
		t.Errorf("Unexpected response: %+v", resp)
	}
}

func TestWeatherHistory_EncodesDates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/weather-api/v1/weather-data/Oslo/history" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("startDate"); got != "2026-08-10" {
			t.Errorf("Expected startDate=2026-08-10, got %q", got)
		}
		if got := r.URL.Query().Get("endDate"); got != "2026-08-12" {
			t.Errorf("Expected endDate=2026-08-12, got %q", got)
		}

		json.NewEncoder(w).Encode([]models.WeatherResponse{{Temperature: 3.0}})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	history, err := client.WeatherHistory("Oslo",
		time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC),
		"")
	if err != nil {
		t.Fatalf("WeatherHistory failed: %v", err)
	}

	if len(history) != 1 || history[0].Temperature != 3.0 {
		t.Errorf("Unexpected history: %+v", history)
	}
}

func TestDoRequest_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{"code": 404, "error_description": "Requested resource was not found"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	if _, err := client.CurrentWeather("Atlantis", ""); err == nil {
		t.Error("Expected error for 404 response")
	}
}

func TestLogout_DropsToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/weather-api/v1/auth/logout" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "Logged out"})
	}))
	defer server.Close()

	client := NewClient(server.URL, WithToken("my-token"))

	if err := client.Logout(); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	if client.token != "" {
		t.Error("Expected token to be dropped after logout")
	}
}
