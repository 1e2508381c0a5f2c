// Command seed loads event candidates from a YAML file and creates them
// through the same validation path the API uses, so a seeded catalog obeys
// the same rules as hand-entered events.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"eventlistings/config"
	"eventlistings/internal/domain"
	"eventlistings/internal/repository/mongodb"
	"eventlistings/internal/seed"
	"eventlistings/internal/services"
)

func main() {
	path := flag.String("file", "seed.example.yaml", "path to the seed YAML file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.NewLogger()

	inputs, err := seed.Load(*path)
	if err != nil {
		log.Fatalf("load seed file: %v", err)
	}

	ctx := context.Background()

	store := mongodb.NewStore(cfg.MongoURI, cfg.MongoDatabase, cfg.RequestTimeout)
	if err := store.Connect(ctx); err != nil {
		log.Fatalf("connect to mongodb: %v", err)
	}
	defer func() { _ = store.Disconnect(ctx) }()

	if err := store.EnsureIndexes(ctx); err != nil {
		log.Fatalf("ensure indexes: %v", err)
	}

	eventRepo := mongodb.NewEventRepo(store)
	// The seeder never imports feeds, so no fetcher is wired.
	eventService := services.NewEventService(eventRepo, nil, logger, cfg.RequestTimeout)

	var created, skipped, failed int
	for _, in := range inputs {
		event, err := eventService.CreateEvent(ctx, in)
		switch {
		case err == nil:
			created++
			fmt.Printf("ok    %s -> %s\n", in.Title, event.Slug)
		case errors.Is(err, domain.ErrDuplicateSlug):
			skipped++
			fmt.Printf("skip  %s: %v\n", in.Title, err)
		default:
			failed++
			fmt.Printf("fail  %s: %v\n", in.Title, err)
		}
	}

	fmt.Printf("\nseeded %d event(s), %d skipped, %d failed\n", created, skipped, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
