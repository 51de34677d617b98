package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"next-hire/internal/config"
	"next-hire/internal/database/migration"
	dbpostgres "next-hire/internal/database/postgres"
	"next-hire/internal/database/seeder"
	"next-hire/internal/pkg/credential"
	"next-hire/internal/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.App.Environment)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		lg.Fatal("db connect failed", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	if err := (migration.Runner{}).Run(ctx, db.SQLDB()); err != nil {
		lg.Fatal("migration failed", zap.Error(err))
	}

	r := seeder.Runner{
		Seeders: seeder.Defaults(credential.NewPasswordHasher(cfg.Security.BcryptCost)),
		Logger:  lg,
	}
	if err := r.Run(ctx, db); err != nil {
		lg.Fatal("seeding failed", zap.Error(err))
	}

	lg.Info("seed completed",
		zap.String("recruiter", seeder.DemoRecruiterEmail),
		zap.String("candidate", seeder.DemoCandidateEmail),
		zap.String("admin", seeder.DemoAdminEmail),
	)
}
