package main

import (
	"context"
	"log"
	"log/slog"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	natsadapter "github.com/stagewise/venuescout/internal/adapters/nats"
	"github.com/stagewise/venuescout/internal/adapters/postgres"
	"github.com/stagewise/venuescout/internal/core/usecases"
	"github.com/stagewise/venuescout/internal/pkg/config"
	"github.com/stagewise/venuescout/internal/pkg/logging"
	"github.com/stagewise/venuescout/internal/workflows"
)

func main() {
	cfg, err := config.Load("venuescout-holds")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx := context.Background()

	db, err := postgres.New(ctx, cfg.Database.DSN(), cfg.Database.MaxConns)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	natsConn, err := natsadapter.RawConn(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable, notifications degrade to logs", "error", err)
	}

	holdRepo := postgres.NewHoldRepo(db)
	venueRepo := postgres.NewVenueRepo(db)
	holdSvc := usecases.NewHoldService(holdRepo, venueRepo, natsadapter.NewNotifier(natsConn))

	// Connect to Temporal
	c, err := client.Dial(client.Options{
		HostPort: cfg.Temporal.HostPort,
	})
	if err != nil {
		log.Fatalf("temporal client: %v", err)
	}
	defer c.Close()

	w := worker.New(c, workflows.HoldTaskQueue, worker.Options{})

	// Register workflow & activities
	w.RegisterWorkflow(workflows.BookingHoldWorkflow)
	w.RegisterActivity(&workflows.HoldActivities{
		Holds: holdSvc,
	})

	slog.Info("booking hold worker started", "task_queue", workflows.HoldTaskQueue)
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatalf("worker: %v", err)
	}
}
