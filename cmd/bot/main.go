package main

import (
	"context"
	"log"

	"well-reports-bot/internal/bootstrap"
	"well-reports-bot/internal/config"
	"well-reports-bot/internal/server"
	"well-reports-bot/internal/tracer"
	"well-reports-bot/pkg/database"
)

func main() {
	// 1. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 2. Load Configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Panicf("Invalid configuration: %v", err)
	}

	// 3. Database handle. Dials on first use so a cold store does not keep
	// the webhook endpoint from coming up.
	lazyDB := database.NewLazy(cfg.Database.Connection)

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(lazyDB, cfg)
	defer container.Logger.Sync()

	// 5. Start Background Services
	if container.SummaryConsumer != nil {
		log.Println("Background: Starting Summary Consumer...")
		if err := container.SummaryConsumer.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}

	// 6. Run Server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
