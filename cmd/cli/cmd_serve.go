package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/spf13/cobra"

	"github.com/EvgDevt/weather-app/pkg/auth"
	"github.com/EvgDevt/weather-app/pkg/database"
	"github.com/EvgDevt/weather-app/pkg/weather"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the weather API server",
	Long:  `Start the HTTP server exposing the weather, user and sensor API.`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" || jwtSecret == "change_me_in_production" {
		return errors.New("JWT_SECRET environment variable is not set or has an invalid value")
	}

	tokenTTL, err := time.ParseDuration(getEnv("JWT_TTL", "24h"))
	if err != nil {
		return fmt.Errorf("invalid JWT_TTL value: %w", err)
	}

	dbManager := cmd.Context().Value(dbManagerContextKey).(*database.DatabaseManager)

	// Run migrations
	if err := dbManager.Init(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	tokenService := auth.NewTokenService(jwtSecret, tokenTTL)
	authService := auth.NewService(dbManager, tokenService, auth.NewBlacklist())
	weatherService := weather.NewService(dbManager)

	// The weather cache is cleared on a fixed schedule rather than per entry.
	scheduler := gocron.NewScheduler(time.UTC)
	if _, err := scheduler.Every(1).Hour().Do(func() {
		n := weatherService.Cache().Len()
		weatherService.Cache().Flush()
		log.Printf("Cleared weather cache (%d entries)", n)
	}); err != nil {
		return fmt.Errorf("failed to schedule cache flush: %w", err)
	}
	scheduler.StartAsync()

	// Setup Router
	routeManager := NewRouteManager(dbManager, authService, weatherService)
	routeManager.Setup()

	port := getEnv("SERVER_PORT", "8080")
	addr := ":" + port

	server := &http.Server{
		Handler:      routeManager.Router,
		Addr:         addr,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Shutdown signal received")

		scheduler.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting weather API server on %s...", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
