// opsctl は運用向けのコマンドラインツールです。
//
//	opsctl promote -email admin@example.com
//	opsctl demote -email admin@example.com
//	opsctl cache-latest
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	authadapters "company_valuation/internal/feature/auth/adapters"
	"company_valuation/internal/feature/auth/domain/entity"
	valuationadapters "company_valuation/internal/feature/valuation/adapters"
	infradb "company_valuation/internal/platform/db"
)

const usage = "usage: opsctl <promote|demote|cache-latest> [flags]"

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded", "error", err)
	}

	db, err := infradb.OpenDB(infradb.LoadConfigFromEnv())
	if err != nil {
		slog.Error("failed to connect database", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx, db, os.Args[1], os.Args[2:], os.Stdout); err != nil {
		slog.Error("opsctl failed", "cmd", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, db *gorm.DB, cmd string, args []string, out io.Writer) error {
	switch cmd {
	case "promote":
		return setRole(ctx, db, args, entity.RoleAdmin)
	case "demote":
		return setRole(ctx, db, args, entity.RoleMember)
	case "cache-latest":
		return cacheLatest(ctx, db, out)
	default:
		return errors.New(usage)
	}
}

func setRole(ctx context.Context, db *gorm.DB, args []string, role string) error {
	fs := flag.NewFlagSet("role", flag.ContinueOnError)
	email := fs.String("email", "", "target user email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	target := strings.ToLower(strings.TrimSpace(*email))
	if target == "" {
		return errors.New("-email is required")
	}

	if err := authadapters.NewUserRepository(db).SetRole(ctx, target, role); err != nil {
		return fmt.Errorf("set role: %w", err)
	}
	slog.Info("role updated", "email", target, "role", role)
	return nil
}

func cacheLatest(ctx context.Context, db *gorm.DB, out io.Writer) error {
	entry, err := valuationadapters.NewValuationCacheRepository(db).Latest(ctx)
	if err != nil {
		return fmt.Errorf("load latest cache entry: %w", err)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(entry)
}
