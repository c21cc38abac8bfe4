package main

import (
	"context"
	"log"
	"os"

	"github.com/rawblock/blackjack-engine/internal/api"
	"github.com/rawblock/blackjack-engine/internal/engine"
	"github.com/rawblock/blackjack-engine/internal/store"
)

func main() {
	log.Println("Starting exact-composition blackjack decision service...")

	rules := engine.DefaultRules()
	eng := engine.NewEngine(rules)
	sessions := store.NewStore()

	var audit *store.AuditStore
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		a, err := store.ConnectAudit(context.Background(), dbURL)
		if err != nil {
			log.Printf("Warning: failed to connect decision audit store, continuing without it: %v", err)
		} else {
			defer a.Close()
			if err := a.InitSchema(context.Background()); err != nil {
				log.Printf("Warning: audit schema init failed: %v", err)
			}
			audit = a
		}
	} else {
		log.Println("DATABASE_URL not set: running without a decision audit trail")
	}

	wsHub := api.NewHub()
	go wsHub.Run()

	r := api.SetupRouter(eng, sessions, audit, wsHub)

	port := getEnvOrDefault("PORT", "8080")
	log.Printf("Decision service listening on :%s\n", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func getEnvOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
