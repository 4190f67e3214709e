// Command server runs the Share2care admin console backend.
//
// @title                       Share2care Admin Console API
// @version                     1.0
// @description                 Backend for the Share2care administration console.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/share2care/admin-console/internal/api"
	"github.com/share2care/admin-console/internal/api/handler"
	"github.com/share2care/admin-console/internal/core/ports"
	"github.com/share2care/admin-console/internal/core/service"
	mongostore "github.com/share2care/admin-console/internal/infrastructure/db/mongo"
	redisstore "github.com/share2care/admin-console/internal/infrastructure/db/redis"
	"github.com/share2care/admin-console/internal/infrastructure/documents"
	"github.com/share2care/admin-console/internal/infrastructure/gateway"
	"github.com/share2care/admin-console/internal/infrastructure/queue"
	"github.com/share2care/admin-console/internal/pkg/config"
	"github.com/share2care/admin-console/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: "share2care-admin",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Storage ---
	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()
	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	// --- Share2care API ---
	gw, err := gateway.New(gateway.Config{
		BaseURL:       cfg.Gateway.BaseURL,
		Timeout:       cfg.Gateway.Timeout,
		RatePerSecond: cfg.Gateway.RatePerSecond,
		Burst:         cfg.Gateway.Burst,
	}, logger.Component("gateway"))
	if err != nil {
		return err
	}

	docs, err := documentResolver(ctx, cfg.Documents)
	if err != nil {
		return err
	}

	// --- Services ---
	cache := redisstore.NewCache(rdb, cfg.Listing.CacheTTL)
	audit := mongostore.NewAuditRepository(db)

	views := service.NewViewRegistry(gw, gw, cfg.Listing.PageSize, logger.Component("views"))
	authService := service.NewAuthService(gw, redisstore.NewSessionStore(rdb), views, cfg.JWTSecret, cfg.SessionTTL, logger.Component("auth"))

	dispatcher := queue.NewDispatcher(queue.Config{
		Workers:       cfg.Messaging.Workers,
		RatePerSecond: cfg.Messaging.RatePerSecond,
	}, service.NewDeliverySender(gw), logger.Component("dispatcher"))

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()
	dispatcher.Start(workerCtx)

	go pruneViews(ctx, views, cfg.Listing.ViewIdleTTL, log)

	e := api.NewRouter(api.Dependencies{
		Log:         log,
		JWTSecret:   cfg.JWTSecret,
		CORSOrigins: cfg.CORSOrigins,
		Auth:        authService,
		Users:       service.NewUserService(gw, cache, views, docs, audit, cfg.Listing.PageSize, logger.Component("users")),
		Approval:    service.NewApprovalService(gw, gw, cache, views, audit, logger.Component("approval")),
		Events:      service.NewEventService(gw, cache, views, cfg.Listing.PageSize, logger.Component("events")),
		Catalog:     service.NewCatalogService(gw, cache, logger.Component("catalog")),
		Views:       views,
		Messaging: service.NewMessagingService(
			gw,
			redisstore.NewBroadcastDedup(rdb, cfg.Messaging.DedupTTL),
			dispatcher,
			audit,
			logger.Component("messaging"),
		),
		Dashboard: service.NewDashboardService(gw, cache, logger.Component("dashboard")),
		Checks: map[string]handler.Check{
			"mongodb":        func(ctx context.Context) error { return db.Client().Ping(ctx, nil) },
			"redis":          func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
			"share2care_api": gw.Ping,
		},
	})

	// --- Serve ---
	srvErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
		}
		close(srvErr)
	}()

	select {
	case err := <-srvErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}

	// Drain queued deliveries before the storage clients close.
	if err := dispatcher.Stop(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("delivery drain")
	}
	return nil
}

func documentResolver(ctx context.Context, cfg config.DocumentsConfig) (ports.DocumentResolver, error) {
	if cfg.Backend == config.DocumentsBackendS3 {
		return documents.NewS3Resolver(ctx, documents.S3Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3Access,
			SecretKey: cfg.S3Secret,
			TTL:       cfg.PresignTTL,
		})
	}
	return documents.NewBaseURLResolver(cfg.BaseURL)
}

// pruneViews drops listing views of sessions that expired without a logout.
func pruneViews(ctx context.Context, views *service.ViewRegistry, idle time.Duration, log zerolog.Logger) {
	if idle <= 0 {
		return
	}
	ticker := time.NewTicker(idle / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := views.Prune(idle); n > 0 {
				log.Debug().Int("sessions", n).Msg("pruned idle listing views")
			}
		}
	}
}
