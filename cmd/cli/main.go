package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/EvgDevt/weather-app/pkg/database"
)

var rootCmd = &cobra.Command{
	Use:   "weather-app",
	Short: "Weather App - city weather measurement backend",
	Long: `Weather App serves current, historical and averaged weather
measurements per city, with user accounts, sensors and token-based
authentication.`,
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	dbManager, err := database.NewDatabaseManager()
	if err != nil {
		fmt.Printf("Failed to initialize database: %v\n", err)
		os.Exit(1)
	}
	defer dbManager.Close()

	ctx := context.WithValue(context.Background(), dbManagerContextKey, dbManager)
	rootCmd.SetContext(ctx)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
