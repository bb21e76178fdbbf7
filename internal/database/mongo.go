package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vitalsync/vitalsync/internal/config"
)

// Collection names used across the stores.
const (
	CollPrescriptions = "prescriptions"
	CollVitalSigns    = "vitalsigns"
	CollSymptoms      = "symptoms"
	CollActivities    = "activities"
	CollSleep         = "sleeps"
	CollReminders     = "reminders"
	CollDocuments     = "documents"
	CollProfiles      = "profiles"
)

func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return client.Database(cfg.Database), nil
}
