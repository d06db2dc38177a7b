package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/provider-directory/internal/api/http"
	"github.com/spec-kit/provider-directory/internal/api/http/handlers"
	"github.com/spec-kit/provider-directory/internal/auth"
	"github.com/spec-kit/provider-directory/internal/config"
	"github.com/spec-kit/provider-directory/internal/observability"
	"github.com/spec-kit/provider-directory/internal/persistence"
	"github.com/spec-kit/provider-directory/internal/repository"
	"github.com/spec-kit/provider-directory/internal/service"
	"github.com/spec-kit/provider-directory/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()

	var (
		store repository.ProviderStore
		pg    *persistence.Postgres
		fs    *persistence.Firestore
	)
	switch cfg.Store.Backend {
	case config.StoreBackendFirestore:
		fs, err = persistence.NewFirestore(ctx, cfg.Firestore, logger)
		if err != nil {
			logger.Fatal("failed to connect firestore", zap.Error(err))
		}
		defer fs.Close()
		store = repository.NewFirestoreProviderStore(fs.Client, cfg.Firestore.Collection)
	case config.StoreBackendPostgres:
		pg, err = persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer pg.Close()
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		store = repository.NewPostgresProviderStore(pg.PoolHandle())
	case config.StoreBackendMemory:
		logger.Warn("using in-memory provider store; records will not survive restarts")
		store = repository.NewMemoryProviderStore()
	default:
		logger.Fatal("unknown store backend", zap.String("backend", cfg.Store.Backend))
	}

	objects, err := storage.NewFromConfig(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal("failed to init object storage", zap.Error(err))
	}

	var redis *persistence.Redis
	if cfg.Redis.Addr != "" {
		redis = persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewMiddleware(tokens)

	providerService := service.NewProviderService(service.Dependencies{
		Store:   store,
		Objects: objects,
		Logger:  logger,
	})

	app := fiber.New(fiber.Config{
		BodyLimit: service.MaxImageBytes + 1<<20,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	if local, ok := objects.(*storage.LocalStorage); ok {
		app.Static(cfg.Storage.Local.PublicPath, local.Dir())
	}

	var applyLimiter fiber.Handler
	if redis != nil {
		applyLimiter = httptransport.ApplyRateLimiter(redis.Client, logger, cfg.RateLimit.MaxRequests, cfg.RateLimit.Window())
	}

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Providers:      handlers.NewProvidersHandler(providerService),
		Categories:     handlers.NewCategoriesHandler(providerService),
		Admin:          handlers.NewAdminHandler(cfg.Auth, tokens),
		AuthMiddleware: authMiddleware,
		ApplyLimiter:   applyLimiter,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()
	logger.Info("server started",
		zap.String("addr", cfg.App.Addr()),
		zap.String("store", cfg.Store.Backend),
		zap.String("storage", cfg.Storage.Provider),
	)

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
