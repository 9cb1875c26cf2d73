package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"visit-dashboard-service/internal/config"
	"visit-dashboard-service/internal/logger"

	statsHttp "visit-dashboard-service/internal/statistics/adapters/http/fiber"
	statsRest "visit-dashboard-service/internal/statistics/adapters/http/restclient"
	statsRepoPg "visit-dashboard-service/internal/statistics/adapters/postgres"
	statsCache "visit-dashboard-service/internal/statistics/adapters/rediscache"
	"visit-dashboard-service/internal/statistics/core/ports"
	statsUsecase "visit-dashboard-service/internal/statistics/core/usecase"

	"github.com/gofiber/fiber/v2"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	_ "visit-dashboard-service/docs"
)

// @title Visit Dashboard API
// @version 1.0
// @description Traffic dashboard: KPI cards, PV/UV series and browser breakdown.
// @BasePath /
func main() {
	zap.ReplaceGlobals(zap.Must(zap.NewProduction()))

	// Config
	cfg, err := config.Read()
	if err != nil {
		zap.L().Fatal("failed to read configuration", zap.Error(err))
	}

	log, err := logger.New(cfg.App.LogLevel)
	if err != nil {
		zap.L().Fatal("failed to build logger", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	// Statistics source
	fetcher, closeSource, err := newFetcher(cfg, log)
	if err != nil {
		log.Fatal("failed to set up statistics source", zap.Error(err))
	}
	defer closeSource()

	if cfg.Cache.Redis.Enabled() {
		rdb := statsCache.NewClient(cfg.Cache.Redis.Addr, cfg.Cache.Redis.Password, cfg.Cache.Redis.DB)
		defer rdb.Close()
		fetcher = statsCache.NewCachingFetcher(fetcher, rdb, cfg.Cache.Redis.Key, cfg.Cache.Redis.TTL(), log)
		log.Info("statistics cache enabled", zap.String("addr", cfg.Cache.Redis.Addr))
	}

	// Usecases
	buildDashboardUC := statsUsecase.NewBuildDashboardUseCase(fetcher, log)

	// HTTP (Fiber) app + handlers
	app := fiber.New(fiber.Config{
		AppName:               "visit-dashboard",
		DisableStartupMessage: true,
	})

	dashboardHandler := statsHttp.NewDashboardHandler(buildDashboardUC, cfg.App.LoadTimeout(), log)
	dashboardHandler.Register(app)

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	addr := fmt.Sprintf(":%d", cfg.App.Port)
	go func() {
		if err := app.Listen(addr); err != nil {
			log.Error("fiber stopped", zap.Error(err))
		}
	}()

	log.Info("server started",
		zap.String("addr", addr),
		zap.String("source", cfg.Statistics.Source))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout())
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error("fiber shutdown error", zap.Error(err))
	}

	log.Info("server exiting")
}

// newFetcher wires the configured statistics source. The returned func
// releases whatever the source holds open.
func newFetcher(cfg config.Configuration, log *zap.Logger) (ports.StatisticsFetcherPort, func(), error) {
	switch cfg.Statistics.Source {
	case config.SourcePostgres:
		pg := cfg.Statistics.Postgres
		loc, err := pg.Location()
		if err != nil {
			return nil, nil, err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		db, err := statsRepoPg.Open(ctx, pg.DSN, statsRepoPg.PoolOptions{
			MaxOpenConns:    pg.MaxOpenConns,
			MaxIdleConns:    pg.MaxIdleConns,
			ConnMaxLifetime: 30 * time.Minute,
		})
		if err != nil {
			return nil, nil, err
		}

		repo := statsRepoPg.NewStatisticsRepository(db, statsRepoPg.Options{
			EventName: pg.EventName,
			Location:  loc,
		})
		log.Info("statistics source: postgres", zap.String("timezone", loc.String()))
		return repo, func() { _ = db.Close() }, nil

	default:
		h := cfg.Statistics.HTTP
		f := statsRest.NewStatisticsFetcher(statsRest.Options{
			BaseURL:  h.BaseURL,
			Path:     h.Path,
			Envelope: h.Envelope,
			Timeout:  h.Timeout(),
		}, log)
		log.Info("statistics source: http", zap.String("base_url", h.BaseURL))
		return f, func() {}, nil
	}
}
