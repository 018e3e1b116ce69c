package main

import (
	"log"
	"os"

	"github.com/hwpib/benchmarking-engine/internal/api"
	"github.com/hwpib/benchmarking-engine/internal/db"
	"github.com/hwpib/benchmarking-engine/internal/state"
)

func main() {
	log.Println("Starting private benchmarking engine...")

	// ─── Environment Variables ─────────────────────────────────────────
	// Run-audit persistence is optional: the engine runs fine with no
	// DATABASE_URL set, it just keeps no history across restarts.
	// ─────────────────────────────────────────────────────────────────

	var dbConn *db.PostgresStore
	if dbUrl := os.Getenv("DATABASE_URL"); dbUrl != "" {
		conn, err := db.Connect(dbUrl)
		if err != nil {
			log.Printf("Warning: failed to connect to PostgreSQL, continuing without run-audit persistence. Error: %v", err)
		} else {
			dbConn = conn
			defer dbConn.Close()
			if err := dbConn.InitSchema(); err != nil {
				log.Printf("Warning: DB schema init failed: %v", err)
			}
		}
	} else {
		log.Println("DATABASE_URL not set — running without run-audit persistence")
	}

	// Setup WebSocket Hub
	wsHub := api.NewHub()
	go wsHub.Run()

	srv := state.New()

	// Setup the Gin Router
	r := api.SetupRouter(srv, dbConn, wsHub)

	port := getEnvOrDefault("PORT", "5339")

	// Start the server
	log.Printf("Engine running on :%s\n", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// getEnvOrDefault returns the env var value or a safe default for non-secret settings.
func getEnvOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
