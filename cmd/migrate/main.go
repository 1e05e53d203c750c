package main

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"time"

	"bookcatalog/internal/logger"
	"bookcatalog/internal/platform/postgres"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	loadEnvFiles()

	log, err := logger.New(logger.Config{Level: "info"})
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	dir := migrationsDir()
	if *command == "create" {
		if *name == "" {
			log.Fatal("name is required for 'create' command")
		}
		if err := goose.Create(nil, dir, *name, "sql"); err != nil {
			log.Fatal("failed to create migration", zap.Error(err))
		}
		log.Info("migration created", zap.String("name", *name), zap.String("dir", dir))
		return
	}

	ctx := context.Background()
	pool, err := postgres.Open(ctx, databaseDSN(), 5*time.Second)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := migrate(db, *command, dir); err != nil {
		log.Fatal("migration failed", zap.String("command", *command), zap.Error(err))
	}
	log.Info("migration command finished", zap.String("command", *command), zap.String("dir", dir))
}

func migrate(db *sql.DB, command, dir string) error {
	goose.SetBaseFS(nil)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	switch command {
	case "up":
		return goose.Up(db, dir)
	case "down":
		return goose.Down(db, dir)
	case "status":
		return goose.Status(db, dir)
	default:
		return errors.Errorf("unknown command %q (use up, down, status, create)", command)
	}
}
