package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"

	"github.com/vitalsync/vitalsync/internal/config"
	"github.com/vitalsync/vitalsync/internal/database"
	"github.com/vitalsync/vitalsync/internal/queue"
	"github.com/vitalsync/vitalsync/internal/queue/workers"
	"github.com/vitalsync/vitalsync/internal/storage"
	"github.com/vitalsync/vitalsync/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.Connect(context.Background(), cfg.Mongo)
	if err != nil {
		slog.Error("mongodb unavailable", "error", err)
		os.Exit(1)
	}
	defer db.Client().Disconnect(context.Background())

	files, err := storage.NewLocalStorage(cfg.Upload.Dir)
	if err != nil {
		slog.Error("failed to prepare upload dir", "error", err)
		os.Exit(1)
	}

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			"critical": 6,
			"default":  3,
			"low":      1,
		},
	})

	mux := asynq.NewServeMux()
	docWorker := workers.NewDocumentWorker(store.NewDocumentStore(db), files)
	mux.HandleFunc(queue.TypeDocumentExtract, docWorker.ProcessTask)
	remWorker := workers.NewReminderWorker(store.NewReminderStore(db))
	mux.HandleFunc(queue.TypeReminderScan, remWorker.ProcessTask)

	// Due reminders are found by periodic scan rather than per-reminder
	// scheduling, so a reminder created while the worker was down is still
	// picked up.
	scheduler := asynq.NewScheduler(redisOpt, nil)
	if _, err := scheduler.Register("@every 1m", asynq.NewTask(queue.TypeReminderScan, nil)); err != nil {
		slog.Error("failed to register reminder scan", "error", err)
		os.Exit(1)
	}
	go func() {
		if err := scheduler.Run(); err != nil {
			slog.Error("scheduler error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("starting worker", "concurrency", 10)
	if err := srv.Run(mux); err != nil {
		slog.Error("worker error", "error", err)
		os.Exit(1)
	}
}
