package main

import (
	"context"
	"encoding/json"
	"flag"
	"net/url"
	"os"
	"time"

	"go.uber.org/zap"

	"elasticreplan/config"
	"elasticreplan/seed"
	"elasticreplan/store"
)

func main() {
	printOnly := flag.Bool("print", false, "print the fixture itinerary as JSON instead of writing it to the session store")
	flag.Parse()

	cfg := config.Load()
	log := zap.NewExample().Sugar()
	defer log.Sync()

	if *printOnly {
		it := seed.Build(false)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(it); err != nil {
			log.Fatalw("encode fixture", "error", err)
		}
		return
	}

	addr := cfg.SessionStoreURL
	if u, err := url.Parse(cfg.SessionStoreURL); err == nil && u.Host != "" {
		addr = u.Host
	}
	sessionStore := store.NewRedis(addr, log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sessionStore.Ping(ctx); err != nil {
		log.Fatalw("session store unreachable", "addr", addr, "error", err)
	}

	it := seed.Seed(ctx, sessionStore)
	log.Infow("seeded Maya's demo itinerary", "sessionId", it.ID, "stops", len(it.Stops), "legs", len(it.Legs))
}
