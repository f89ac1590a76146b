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

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"EstateView/config"
	"EstateView/favorites"
	"EstateView/handlers"
	"EstateView/listing"
	appmw "EstateView/middleware"
	"EstateView/records"
	"EstateView/routes"
	"EstateView/utils"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config error", "err", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("record store", "source", cfg.DataSource, "err", err)
		os.Exit(1)
	}
	defer closeStore()

	if err := seed(ctx, cfg, store); err != nil {
		logger.Warn("seeding skipped", "file", cfg.SeedFile, "err", err)
	}

	manager, closeFavorites, err := openFavorites(ctx, cfg, store, logger)
	if err != nil {
		logger.Error("favorites", "err", err)
		os.Exit(1)
	}
	defer closeFavorites()

	listings := listing.NewService(store, logger)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewRequestValidator()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	var identity echo.MiddlewareFunc
	if cfg.Authenticated() {
		identity = appmw.JWTIdentity(cfg.JWTSecret)
	}
	routes.RegisterRoutes(e, identity,
		handlers.NewPropertyController(listings),
		handlers.NewFavoriteController(manager, listings, logger),
	)

	go func() {
		logger.Info("server starting", "port", cfg.Port, "source", cfg.DataSource, "auth", cfg.Authenticated())
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (records.Store, func(), error) {
	switch cfg.DataSource {
	case config.DataSourceMongo:
		client, err := config.ConnectDB(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		store := records.NewMongoStore(client.Database(cfg.MongoDatabase), cfg.CountersCollection)
		return store, func() { client.Disconnect(context.Background()) }, nil

	case config.DataSourcePostgres:
		pool, err := config.NewPostgresPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		store := records.NewPostgresStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil
	}
	return records.NewMemoryStore(), func() {}, nil
}

func seed(ctx context.Context, cfg *config.Config, store records.Store) error {
	seeder, ok := store.(records.Seeder)
	if !ok || cfg.SeedFile == "" {
		return nil
	}
	recs, err := records.LoadSeedFile(cfg.SeedFile)
	if err != nil {
		return err
	}
	return seeder.Seed(ctx, records.TableProperties, recs)
}

func openFavorites(ctx context.Context, cfg *config.Config, store records.Store, logger *slog.Logger) (*favorites.Manager, func(), error) {
	if cfg.Authenticated() {
		m := favorites.NewRemoteManager(favorites.ContextIdentity{}, store, cfg.FavoritesSessionTTL, logger)
		go m.Start()
		return m, m.Stop, nil
	}

	var (
		kv      favorites.KV = utils.NewMemoryKV()
		closeKV              = func() {}
	)
	if cfg.RedisAddr != "" {
		client, err := utils.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, nil, err
		}
		kv = utils.NewRedisKV(client, "estateview:")
		closeKV = func() { client.Close() }
	}

	local, err := favorites.NewLocalStore(ctx, kv, cfg.FavoritesLocalKey)
	if err != nil {
		closeKV()
		return nil, nil, err
	}
	return favorites.NewLocalManager(local, logger), closeKV, nil
}
