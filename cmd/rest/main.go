package main

import (
	"context"
	"log"

	"aura-ops-be/internal/bootstrap"
	"aura-ops-be/internal/config"
	"aura-ops-be/internal/server"
	"aura-ops-be/internal/tracer"
	"aura-ops-be/pkg/graph"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// 2. Initialize Graph Database
	graphClient, err := graph.NewClient(cfg.Graph.URI, cfg.Graph.Username, cfg.Graph.Password)
	if err != nil {
		log.Panicf("Unable to create graph client: %v", err)
	}
	if err := graphClient.VerifyConnectivity(context.Background()); err != nil {
		log.Printf("[WARN] Graph database not reachable at startup: %v", err)
	}
	defer graphClient.Close(context.Background())

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(graphClient, cfg)
	defer container.SysLogger.Sync()

	// 4. Start Background Services
	if err := container.NoticeService.Start(context.Background()); err != nil {
		log.Printf("Background Notice Consumer Error: %v", err)
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
