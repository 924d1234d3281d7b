package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/lib/pq"

	"github.com/kobopay/bvn-bulk-service/internal/api"
	"github.com/kobopay/bvn-bulk-service/internal/config"
	"github.com/kobopay/bvn-bulk-service/internal/core/services"
	"github.com/kobopay/bvn-bulk-service/internal/db"
	"github.com/kobopay/bvn-bulk-service/internal/gateways"
	"github.com/kobopay/bvn-bulk-service/internal/health"
	"github.com/kobopay/bvn-bulk-service/internal/log"
	"github.com/kobopay/bvn-bulk-service/internal/redis"
	"github.com/kobopay/bvn-bulk-service/internal/repositories"
	"github.com/kobopay/bvn-bulk-service/pkg/cache"
	pkgHttp "github.com/kobopay/bvn-bulk-service/pkg/http"
	"github.com/kobopay/bvn-bulk-service/pkg/pubsub"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Error(context.Background(), "cannot load config", "err", err)
		return
	}

	// Context with log
	ctx := log.NewContext(context.Background(), cfg.Log.Level, cfg.Log.Mode, os.Stdout)

	if err := cfg.Sanitize(ctx); err != nil {
		log.Error(ctx, "there are errors in the configuration", "err", err)
		return
	}
	if err := cfg.SanitizeLive(); err != nil {
		log.Warn(ctx, "live provider not fully configured, only mock bulks can be processed", "err", err)
	}

	storage, err := db.NewStorage(cfg.Database.URL)
	if err != nil {
		log.Error(ctx, "cannot connect to database", "err", err)
		return
	}
	defer func() {
		if err := storage.Close(); err != nil {
			log.Error(ctx, "closing database", "err", err)
		}
	}()

	cachex, err := cache.NewCacheClient(ctx, *cfg)
	if err != nil {
		log.Error(ctx, "cannot initialize the cache", "err", err)
		return
	}

	pingers := []health.Ping{storage.Pgx}
	var publisher pubsub.Publisher = pubsub.NewMock()
	if cfg.Cache.Provider == config.CacheProviderRedis {
		rdb, err := redis.Open(ctx, cfg.Cache.Url)
		if err != nil {
			log.Error(ctx, "cannot connect to redis", "err", err, "host", cfg.Cache.Url)
			return
		}
		publisher = pubsub.NewRedis(rdb)
		pingers = append(pingers, redis.NewWrapper(rdb))
	}

	bulkRepo := repositories.NewBulk(*storage)
	recordRepo := repositories.NewRecord(*storage)
	lookupRepo := repositories.NewLookup(*storage)

	liveProvider := gateways.NewMonoProvider(
		pkgHttp.NewClient(http.Client{Timeout: cfg.Provider.Timeout}),
		cfg.Provider.BaseURL,
		cfg.Provider.SecretKey,
	)
	mockProvider := gateways.NewMockProvider()
	downstream := gateways.NewNodeServiceClient(pkgHttp.NewClientWithRetry(cfg.Downstream.Timeout), cfg.Downstream.NodeServiceURL)

	bulkService := services.NewBulk(
		bulkRepo,
		recordRepo,
		lookupRepo,
		liveProvider,
		mockProvider,
		downstream,
		publisher,
		cachex,
		services.BulkConfig{
			BatchSize:   cfg.Processing.BatchSize,
			Delay:       cfg.Processing.Delay,
			MaxInFlight: cfg.Processing.MaxInFlight,
		},
	)

	mux := chi.NewRouter()
	mux.Use(
		chiMiddleware.RequestID,
		log.ChiMiddleware(ctx),
		chiMiddleware.Recoverer,
		cors.Handler(cors.Options{AllowedOrigins: []string{"*"}}),
		chiMiddleware.NoCache,
	)
	api.NewServer(bulkService, health.New(pingers...)).RegisterRoutes(mux)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: mux,
	}
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info(ctx, fmt.Sprintf("server started on port:%d", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil {
			log.Error(ctx, "starting http server", "err", err)
		}
	}()

	<-quit
	log.Info(ctx, "Shutting down")
}
