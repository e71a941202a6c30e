// migrate は埋め込みのSQLマイグレーションをgooseで適用します。
//
//	go run ./cmd/migrate -cmd up
//	go run ./cmd/migrate -cmd down
//	go run ./cmd/migrate -cmd status
package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	infradb "company_valuation/internal/platform/db"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cmd := flag.String("cmd", "up", "goose command: up, down or status")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded", "error", err)
	}

	if err := run(*cmd); err != nil {
		slog.Error("migration failed", "cmd", *cmd, "error", err)
		os.Exit(1)
	}
	slog.Info("migration finished", "cmd", *cmd)
}

func run(cmd string) error {
	cfg := infradb.LoadConfigFromEnv()
	if cfg.Name == "" {
		return errors.New("DB_NAME is required")
	}

	sqlDB, err := sql.Open("pgx", infradb.BuildDSN(cfg))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = sqlDB.Close() }()

	goose.SetBaseFS(infradb.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	switch cmd {
	case "up":
		return goose.Up(sqlDB, infradb.MigrationsDir)
	case "down":
		return goose.Down(sqlDB, infradb.MigrationsDir)
	case "status":
		return goose.Status(sqlDB, infradb.MigrationsDir)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}
