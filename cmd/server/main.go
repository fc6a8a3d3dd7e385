// Package main provides the ephemeris API HTTP server.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"go.ngs.io/ephem-api/internal/adapter/store"
	"go.ngs.io/ephem-api/internal/adapter/store/csv"
	"go.ngs.io/ephem-api/internal/adapter/store/table"
	httpHandler "go.ngs.io/ephem-api/internal/http"
	"go.ngs.io/ephem-api/internal/usecase"
)

const version = "0.1.0"

func main() {
	// Parse command-line flags.
	showHelp := flag.Bool("help", false, "Show usage information")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showHelp {
		printUsage()
		return
	}

	if *showVersion {
		fmt.Printf("ephem-api version %s\n", version)
		return
	}

	// Load configuration from environment.
	port := getEnv("PORT", "8080")
	dataDir := getEnv("DATA_DIR", "./data")
	tablePath := getEnv("EPHEM_TABLE_PATH", "")
	rateLimitRPM, err := strconv.Atoi(getEnv("RATE_LIMIT_RPM", "600"))
	if err != nil {
		log.Fatalf("Invalid RATE_LIMIT_RPM: %v", err)
	}
	workers, err := strconv.Atoi(getEnv("BATCH_WORKERS", strconv.Itoa(usecase.DefaultWorkers)))
	if err != nil {
		log.Fatalf("Invalid BATCH_WORKERS: %v", err)
	}
	streamInterval, err := time.ParseDuration(getEnv("STREAM_INTERVAL", "1s"))
	if err != nil {
		log.Fatalf("Invalid STREAM_INTERVAL: %v", err)
	}

	log.Printf("Starting Ephemeris API server...")
	log.Printf("Port: %s", port)
	log.Printf("Data directory: %s", dataDir)
	log.Printf("Rate limit: %d requests/min per IP", rateLimitRPM)
	log.Printf("Batch workers: %d", workers)

	// Initialize stores.
	var places store.PlaceLoader = csv.NewPlaceStore(dataDir)

	// Initialize ephemeris table (optional).
	var tableReader store.TableReader
	if tablePath != "" {
		tableStore := table.NewStore(tablePath)
		start, end, err := tableStore.Range()
		if err != nil {
			log.Printf("Warning: ephemeris table unavailable, computing all positions: %v", err)
		} else {
			log.Printf("Ephemeris table: %s (DJD %.1f to %.1f)", tablePath, start, end)
			tableReader = tableStore
		}
	} else {
		log.Printf("Ephemeris table disabled (EPHEM_TABLE_PATH not set)")
	}

	// Initialize use case.
	ephemUC := usecase.NewEphemerisUseCase(tableReader, places, workers)

	// Setup router.
	router := httpHandler.SetupRouter(ephemUC, httpHandler.Config{
		RateLimitRPM:   rateLimitRPM,
		StreamInterval: streamInterval,
	})

	// Start server.
	addr := fmt.Sprintf(":%s", port)
	log.Printf("Server listening on %s", addr)
	log.Printf("Health check: http://localhost:%s/health", port)
	log.Printf("API endpoints:")
	log.Printf("  - GET /v1/bodies")
	log.Printf("  - GET /v1/places")
	log.Printf("  - GET /v1/positions")
	log.Printf("  - GET /v1/chart")
	log.Printf("  - GET /v1/lunation")
	log.Printf("  - GET /v1/series")
	log.Printf("  - GET /v1/stream (websocket)")
	log.Printf("  - GET /metrics")

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// printUsage prints usage information.
func printUsage() {
	fmt.Printf("Ephemeris API Server v%s\n\n", version)
	fmt.Println("USAGE:")
	fmt.Println("  ephem-api [flags]")
	fmt.Println()
	fmt.Println("FLAGS:")
	fmt.Println("  -help          Show this help message")
	fmt.Println("  -version       Show version information")
	fmt.Println()
	fmt.Println("ENVIRONMENT VARIABLES:")
	fmt.Println("  PORT                    Server port (default: 8080)")
	fmt.Println("  DATA_DIR                Directory holding places.csv (default: ./data)")
	fmt.Println("  EPHEM_TABLE_PATH        Precomputed NetCDF ephemeris table (optional)")
	fmt.Println("  CORS_ALLOWED_ORIGINS    Comma-separated list of allowed origins (default: all origins)")
	fmt.Println("  ORB_OVERRIDES_PATH      JSON file with custom moieties (default: data/orb_overrides.json)")
	fmt.Println("  RATE_LIMIT_RPM          Requests per minute per client IP, 0 disables (default: 600)")
	fmt.Println("  BATCH_WORKERS           Parallel workers for /v1/series (default: 4)")
	fmt.Println("  STREAM_INTERVAL         Default /v1/stream frame period (default: 1s)")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  # Start server with default settings")
	fmt.Println("  ephem-api")
	fmt.Println()
	fmt.Println("  # Serve tabulated positions where available")
	fmt.Println("  EPHEM_TABLE_PATH=./data/ephem.nc ephem-api")
	fmt.Println()
	fmt.Println("API ENDPOINTS:")
	fmt.Println("  GET /health                    Health check")
	fmt.Println("  GET /metrics                   Prometheus metrics")
	fmt.Println("  GET /v1/bodies                 List supported bodies")
	fmt.Println("  GET /v1/places                 List known places")
	fmt.Println("  GET /v1/positions              Positions at a moment")
	fmt.Println("  GET /v1/chart                  Horoscope for a moment and place")
	fmt.Println("  GET /v1/lunation               Lunar quarters closest to a date")
	fmt.Println("  GET /v1/series                 Positions over a time range")
	fmt.Println("  GET /v1/stream                 Live positions over a websocket")
	fmt.Println()
}
