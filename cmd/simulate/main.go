package main

import (
	"log"
	"math/rand"
	"os"
	"strconv"

	"github.com/rawblock/blackjack-engine/internal/engine"
	"github.com/rawblock/blackjack-engine/internal/feed"
	"github.com/rawblock/blackjack-engine/internal/shadow"
	"github.com/rawblock/blackjack-engine/internal/simulate"
)

func main() {
	log.Println("Starting exact-composition blackjack simulator...")

	cfg := simulate.DefaultConfig()
	cfg.NumDecks = getEnvInt("SIM_NUM_DECKS", cfg.NumDecks)
	cfg.Hands = getEnvInt("SIM_HANDS", cfg.Hands)
	cfg.Rules = engine.DefaultRules()

	if getEnvInt("SIM_SHADOW_H17", 0) != 0 {
		shadowRules := cfg.Rules
		shadowRules.H17 = !cfg.Rules.H17
		cfg.ShadowRules = &shadowRules
	}

	eng := engine.NewEngine(cfg.Rules)

	var src feed.ShoeFeed
	if seedStr := os.Getenv("SIM_COMMIT_SEED"); seedStr != "" {
		src = feed.NewDeterministicFeed([]byte(seedStr), cfg.NumDecks)
	} else {
		src = feed.NewRandomFeed(rand.NewSource(getEnvInt64("SIM_SEED", 1)), cfg.NumDecks)
	}

	sim := simulate.NewSimulator(cfg, eng, src)

	stats, traces := sim.Run()

	if err := simulate.WriteSummary(os.Stdout, stats); err != nil {
		log.Fatalf("failed to write summary: %v", err)
	}

	if cfg.ShadowRules != nil {
		results := sim.ShadowResults()
		agreement := shadow.NewEvaluator().Summarize(results)
		log.Printf("[shadow] compared %d hands: exact_match=%.4f ari=%.4f vi=%.4f (h17 flipped %v -> %v)",
			agreement.N, agreement.ExactMatchRate, agreement.ARI, agreement.VI, cfg.Rules.H17, cfg.ShadowRules.H17)
	}

	if tracePath := os.Getenv("SIM_TRACE_CSV"); tracePath != "" {
		f, err := os.Create(tracePath)
		if err != nil {
			log.Fatalf("failed to create trace file: %v", err)
		}
		defer f.Close()
		if err := simulate.WriteTraceCSV(f, traces); err != nil {
			log.Fatalf("failed to write trace csv: %v", err)
		}
		log.Printf("wrote %d hand traces to %s\n", len(traces), tracePath)
	}
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: %s=%q is not an integer, using default %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("Warning: %s=%q is not an integer, using default %d", key, v, fallback)
		return fallback
	}
	return n
}
