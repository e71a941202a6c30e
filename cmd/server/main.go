package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"company_valuation/internal/app/di"
	"company_valuation/internal/app/router"
	auditadapters "company_valuation/internal/feature/audit/adapters"
	audithandler "company_valuation/internal/feature/audit/transport/handler"
	auditusecase "company_valuation/internal/feature/audit/usecase"
	authadapters "company_valuation/internal/feature/auth/adapters"
	authhandler "company_valuation/internal/feature/auth/transport/handler"
	authusecase "company_valuation/internal/feature/auth/usecase"
	companieshandler "company_valuation/internal/feature/companies/transport/handler"
	companiesusecase "company_valuation/internal/feature/companies/usecase"
	comparisonhandler "company_valuation/internal/feature/comparison/transport/handler"
	comparisonusecase "company_valuation/internal/feature/comparison/usecase"
	"company_valuation/internal/feature/valuation/adapters/gemini"
	valuationhandler "company_valuation/internal/feature/valuation/transport/handler"
	valuationusecase "company_valuation/internal/feature/valuation/usecase"
	infradb "company_valuation/internal/platform/db"
	"company_valuation/internal/platform/externalapi/companieshouse"
	healthhandler "company_valuation/internal/platform/http/handler"
	jwtmw "company_valuation/internal/platform/jwt"
	infraredis "company_valuation/internal/platform/redis"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded", "error", err)
	}

	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	jwtCfg, err := jwtmw.LoadConfig()
	if err != nil {
		return err
	}

	// db
	db, err := infradb.OpenDB(infradb.LoadConfigFromEnv())
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()

	// Redis
	var rdb *redisv9.Client
	if rcfg := infraredis.LoadConfig(); rcfg.Enabled() {
		if tmp, err := infraredis.NewRedisClient(ctx, rcfg); err != nil {
			slog.Warn("Redis unavailable. Running without cache.", "error", err)
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// 外部API
	chClient := di.NewCompaniesHouseClient(companieshouse.LoadConfig())
	registry := di.NewCachedRegistry(chClient, rdb)

	analyzer, err := gemini.NewGeminiAnalyzer(ctx, gemini.LoadConfig())
	if err != nil {
		return err
	}

	// 監査ログ
	auditRepo := auditadapters.NewAuditLogRepository(db)
	recorder := auditusecase.NewRecorder(auditRepo, auditusecase.DefaultWriteTimeout)
	defer recorder.Close()

	// Usecase
	authUC := authusecase.NewAuthUsecase(authadapters.NewUserRepository(db), jwtmw.NewGenerator(jwtCfg.Secret, jwtCfg.Expiration), recorder)
	companiesUC := companiesusecase.NewCompaniesUsecase(registry, recorder)
	valuationUC := valuationusecase.NewValuationUsecase(
		registry,
		chClient,
		analyzer,
		di.NewValuationStore(db, rdb),
		recorder,
		valuationusecase.Options{},
	)
	comparisonUC := comparisonusecase.NewComparisonUsecase(registry, valuationUC, analyzer)
	auditUC := auditusecase.NewAuditUsecase(auditRepo)

	checks := map[string]healthhandler.Pinger{"db": sqlDB.PingContext}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	r := router.NewRouter(router.Handlers{
		Health:     healthhandler.NewHealthHandler(checks),
		Auth:       authhandler.NewAuthHandler(authUC),
		Companies:  companieshandler.NewCompaniesHandler(companiesUC),
		Valuation:  valuationhandler.NewValuationHandler(valuationUC),
		Comparison: comparisonhandler.NewComparisonHandler(comparisonUC),
		Audit:      audithandler.NewAuditHandler(auditUC),
	}, jwtCfg.Secret)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		slog.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	err = srv.Shutdown(shutdownCtx)

	// 切り離されたバリュエーション計算は監査ログとDBを使うため、deferでそれらを閉じる前に待つ
	drainCtx, cancelDrain := context.WithTimeout(context.Background(),
		valuationusecase.DefaultDocumentTimeout+valuationusecase.DefaultAnalysisTimeout)
	defer cancelDrain()
	if werr := valuationUC.Wait(drainCtx); werr != nil {
		slog.Warn("valuation computations still running at exit", "error", werr)
	}
	return err
}
