package main

import (
	"log"

	"eventlistings/config"
	"eventlistings/internal/app"

	_ "eventlistings/docs"
)

// @title			Event Listings API
// @version		1.0
// @description	REST API for publishing event listings, importing calendar feeds and taking bookings.
// @BasePath		/
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("init app: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("run app: %v", err)
	}
}
