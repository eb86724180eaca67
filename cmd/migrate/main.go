package main

// Applies the plan-history schema to the configured database:
//   go run ./cmd/migrate

import (
	"context"
	"log"
	"os"

	"career-advisor/internal/shared/config"
	"career-advisor/internal/shared/storage/db"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	if err != nil {
		log.Printf("migrate: connect: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		log.Printf("migrate: apply: %v", err)
		os.Exit(1)
	}
	log.Printf("migrate: plan-history schema up to date")
}
