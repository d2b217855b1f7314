package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/aaronzipp/serpents-and-stairways/internal/auth"
	"github.com/aaronzipp/serpents-and-stairways/internal/challenge"
	"github.com/aaronzipp/serpents-and-stairways/internal/config"
	"github.com/aaronzipp/serpents-and-stairways/internal/handlers"
	"github.com/aaronzipp/serpents-and-stairways/internal/leaderboard"
	"github.com/aaronzipp/serpents-and-stairways/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Loading config: %v", err)
	}

	tokens, err := auth.NewTokens(cfg.TokenSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatalf("Setting up tokens: %v", err)
	}

	var wins handlers.Leaderboard
	if lb, err := leaderboard.Open(cfg.LeaderboardDB); err != nil {
		log.Printf("Leaderboard disabled: %v", err)
	} else {
		defer lb.Close()
		wins = lb
	}

	generator := challenge.NewHTTP(cfg.ChallengeURL, cfg.ChallengeTimeout)
	if cfg.ChallengeURL == "" {
		log.Println("CHALLENGE_URL not set, challenges use the fallback table")
	}

	rooms := store.NewRoomStore()
	ctx := handlers.NewContext(rooms, tokens, generator, wins, cfg.PublicURL, cfg.FogDuration, cfg.BotDelay)

	log.Printf("Server starting on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, handlers.NewRouter(ctx)); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
