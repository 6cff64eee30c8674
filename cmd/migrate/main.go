package main

import (
	"context"
	"flag"
	"log"
	"os"

	"reelcraft-storefront/internal/config"
	"reelcraft-storefront/internal/db"
	"reelcraft-storefront/internal/migrate"
)

func main() {
	var down bool
	flag.BoolVar(&down, "down", false, "Roll back the most recent migration instead of applying")
	flag.Parse()

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[migrate] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	if down {
		if err := migrate.Rollback(ctx, pool); err != nil {
			logger.Fatalf("roll back migration: %v", err)
		}
		logger.Println("rolled back one migration")
		return
	}

	if err := migrate.Apply(ctx, pool); err != nil {
		logger.Fatalf("apply migrations: %v", err)
	}

	logger.Println("migrations applied")
}
