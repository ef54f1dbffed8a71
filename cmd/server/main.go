package main // Entry point package

import (
	"context" // context bounds the startup migration
	"log"     // Logging library
	"time"    // time bounds the startup migration

	"github.com/joho/godotenv"    // godotenv loads a local .env file when present
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/nazosched/schedule-coordinator/internal/config"
	"github.com/nazosched/schedule-coordinator/internal/database"
	"github.com/nazosched/schedule-coordinator/internal/handler"
	"github.com/nazosched/schedule-coordinator/internal/queue"
	"github.com/nazosched/schedule-coordinator/internal/repository"
	"github.com/nazosched/schedule-coordinator/internal/router"
	"github.com/nazosched/schedule-coordinator/internal/slotsource"
)

func main() {
	_ = godotenv.Load() // optional .env for local development
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database open: %v", err)
	}

	// Provision the schema before serving; idempotent on every start.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("database migrate: %v", err)
	}
	cancel()

	events := repository.NewEventRepo(db)
	selections := repository.NewSelectionRepo(db)
	slots := slotsource.New(cfg.SlotAPIBase, cfg.SlotAPITimeout)
	api := handler.NewAPI(events, selections, slots, cfg.FetchTimeout)

	rdb := config.NewRedisClient() // nil disables the rate limiter
	if rdb == nil {
		log.Printf("redis unavailable, rate limiting disabled")
	}

	// Activity log consumer; reconnects on its own and never stops the server.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e, api, cfg, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
