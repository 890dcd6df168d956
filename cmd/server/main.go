/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the tenancy engine server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load optional .env, parse command-line flags
  2. Load the prediction model artifact
  3. Open the history backend (CSV file or SQLite)
  4. Load existing records into the store
  5. Configure HTTP router, start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port            HTTP server port (default: 8080, env PORT)
  -history         History path (default: tenant_history.csv, env HISTORY_PATH)
                   *.db / *.sqlite selects the SQLite backend,
                   ":memory:" keeps everything in memory
  -model           Model artifact path (default: tenant_model.json, env MODEL_PATH)
  -rent-threshold  Affordability threshold (default: 90000)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Exit

EXAMPLES:
  # CSV-backed history (the flat-file contract)
  ./server -history="./data/tenant_history.csv"

  # SQLite-backed history
  ./server -history="./data/tenant_history.db"

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/warp/tenancy-engine/api"
	"github.com/warp/tenancy-engine/predict"
	"github.com/warp/tenancy-engine/schedule"
	"github.com/warp/tenancy-engine/store"
	"github.com/warp/tenancy-engine/store/csvfile"
	"github.com/warp/tenancy-engine/store/sqlite"
	"github.com/warp/tenancy-engine/tenancy"
)

func main() {
	// Optional .env; missing file is fine.
	_ = godotenv.Load()

	port := flag.Int("port", envInt("PORT", 8080), "HTTP server port")
	historyPath := flag.String("history", envStr("HISTORY_PATH", "tenant_history.csv"),
		"history path (*.csv, *.db/*.sqlite, or \":memory:\")")
	modelPath := flag.String("model", envStr("MODEL_PATH", "tenant_model.json"),
		"prediction model artifact path")
	rentThreshold := flag.String("rent-threshold", "90000",
		"rent above this flags the tenant at risk")
	flag.Parse()

	// Model artifact: nothing works without it.
	model, err := predict.LoadModel(*modelPath)
	if err != nil {
		log.Fatalf("Failed to load prediction model: %v", err)
	}
	log.Printf("Loaded model %q from %s", model.Version, *modelPath)

	// History backend
	history, closeHistory, err := openHistory(*historyPath)
	if err != nil {
		log.Fatalf("Failed to open history: %v", err)
	}
	defer closeHistory()

	recordStore := tenancy.NewRecordStore(history)
	if err := recordStore.LoadHistory(context.Background()); err != nil {
		log.Fatalf("Failed to load history: %v", err)
	}
	log.Printf("Loaded %d records from %s", recordStore.Len(), *historyPath)

	threshold, err := decimal.NewFromString(*rentThreshold)
	if err != nil {
		log.Fatalf("Invalid rent threshold %q: %v", *rentThreshold, err)
	}

	handler := api.NewHandler(recordStore, model, schedule.SystemClock{})
	handler.RentThreshold = threshold

	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on http://localhost:%d", *port)
		log.Printf("API available at http://localhost:%d/api/records", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// openHistory picks the backend from the path: .db/.sqlite for SQLite,
// ":memory:" for an in-memory session, anything else is the CSV file.
func openHistory(path string) (tenancy.History, func(), error) {
	switch {
	case path == ":memory:":
		return store.NewMemory(), func() {}, nil
	case strings.HasSuffix(path, ".db") || strings.HasSuffix(path, ".sqlite"):
		h, err := sqlite.New(path)
		if err != nil {
			return nil, nil, err
		}
		return h, func() { h.Close() }, nil
	default:
		return csvfile.New(path), func() {}, nil
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
