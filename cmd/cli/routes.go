package main

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/EvgDevt/weather-app/pkg/auth"
	"github.com/EvgDevt/weather-app/pkg/database"
	"github.com/EvgDevt/weather-app/pkg/models"
	"github.com/EvgDevt/weather-app/pkg/weather"
)

// principalStore is the account lookup the auth middleware re-verifies
// every request against.
type principalStore interface {
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
}

// RouteManager handles all API routes
type RouteManager struct {
	dbManager      *database.DatabaseManager
	principals     principalStore
	authService    *auth.Service
	weatherService *weather.Service
	validate       *validator.Validate
	Router         *mux.Router
}

// NewRouteManager creates a new RouteManager instance
func NewRouteManager(dbManager *database.DatabaseManager, authService *auth.Service, weatherService *weather.Service) *RouteManager {
	return &RouteManager{
		dbManager:      dbManager,
		principals:     dbManager,
		authService:    authService,
		weatherService: weatherService,
		validate:       validator.New(),
		Router:         mux.NewRouter(),
	}
}

// Setup configures all API routes
func (rm *RouteManager) Setup() {
	r := rm.Router
	r.Use(rm.corsMiddleware)

	// Global OPTIONS handler - catches all preflight requests
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Health check
	r.HandleFunc("/health", rm.healthHandler).Methods("GET")

	api := r.PathPrefix("/weather-api/v1").Subrouter()
	rm.setupAPIRoutes(api)
}

// setupAPIRoutes configures all API v1 routes
func (rm *RouteManager) setupAPIRoutes(api *mux.Router) {
	// Public auth endpoints (no auth required)
	api.HandleFunc("/auth/register", rm.handleRegister).Methods("POST")
	api.HandleFunc("/auth/authenticate", rm.handleAuthenticate).Methods("POST")

	// Protected endpoints (auth required)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(rm.JWTAuthMiddleware)

	protected.HandleFunc("/auth/logout", rm.handleLogout).Methods("POST")

	// Weather queries. The "units" query parameter is recognized here only.
	protected.HandleFunc("/weather-data/now", rm.handleCurrentWeather).Methods("GET")
	protected.HandleFunc("/weather-data/now/cities", rm.handleCurrentWeatherByCities).Methods("GET")
	protected.HandleFunc("/weather-data/{city}/history", rm.handleWeatherHistory).Methods("GET")
	protected.HandleFunc("/weather-data/{city}/history/all", rm.handleFullWeatherHistory).Methods("GET")
	protected.HandleFunc("/weather-data/{city}/7-days-average", rm.handleSevenDayAverage).Methods("GET")
	protected.HandleFunc("/weather-data", rm.requireAdmin(rm.handleCreateWeather)).Methods("POST")

	// User management
	protected.HandleFunc("/users", rm.requireAdmin(rm.handleListUsers)).Methods("GET")
	protected.HandleFunc("/users", rm.requireAdmin(rm.handleCreateUser)).Methods("POST")
	protected.HandleFunc("/users/{id}", rm.requireSelfOrAdmin(rm.handleGetUser)).Methods("GET")
	protected.HandleFunc("/users/{id}", rm.requireAdmin(rm.handleUpdateUser)).Methods("PUT")
	protected.HandleFunc("/users/{id}", rm.requireAdmin(rm.handleDeleteUser)).Methods("DELETE")
	protected.HandleFunc("/users/{id}/locations", rm.requireSelfOrAdmin(rm.handleListUserLocations)).Methods("GET")
	protected.HandleFunc("/users/{id}/locations", rm.requireSelfOrAdmin(rm.handleAddUserLocation)).Methods("POST")

	// Sensors
	protected.HandleFunc("/sensors", rm.handleListSensors).Methods("GET")
	protected.HandleFunc("/sensors", rm.requireAdmin(rm.handleCreateSensor)).Methods("POST")
	protected.HandleFunc("/sensors/{sensorId}", rm.handleGetSensor).Methods("GET")
	protected.HandleFunc("/sensors/{sensorId}", rm.requireAdmin(rm.handleDeleteSensor)).Methods("DELETE")
}
