// @title                      SMS API
// @version                    1.0
// @description                Backend of the sectoral monitoring system: menus, catalogs, indicators and tracking.
// @BasePath                   /api/sms
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	_ "github.com/mmaya/sms-monitoreo/docs"
	"github.com/mmaya/sms-monitoreo/internal/api"
	"github.com/mmaya/sms-monitoreo/internal/api/handler"
	"github.com/mmaya/sms-monitoreo/internal/core/service"
	"github.com/mmaya/sms-monitoreo/internal/infrastructure/config"
	mongodb "github.com/mmaya/sms-monitoreo/internal/infrastructure/db/mongo"
	redisdb "github.com/mmaya/sms-monitoreo/internal/infrastructure/db/redis"
	"github.com/mmaya/sms-monitoreo/internal/infrastructure/queue"
	"github.com/mmaya/sms-monitoreo/internal/infrastructure/scheduler"
	"github.com/mmaya/sms-monitoreo/internal/infrastructure/storage"
	"github.com/mmaya/sms-monitoreo/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "sms-api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret"
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "sms-api",
		Env:     cfg.Env,
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:      cfg.Redis.Addr,
		Password:  cfg.Redis.Password,
		DB:        cfg.Redis.DB,
		IOTimeout: cfg.Redis.Timeout,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	users := mongodb.NewUserRepository(db)
	menus := mongodb.NewMenuRepository(db)
	access := mongodb.NewAccessRepository(db)
	roles := mongodb.NewRoleRepository(db)
	catalogs := mongodb.NewCatalogRepository(db)
	areas := mongodb.NewAreaRepository(db)
	indicators := mongodb.NewIndicatorRepository(db)
	tracking := mongodb.NewTrackingRepository(db)
	attachments := mongodb.NewAttachmentRepository(db)
	events := mongodb.NewEventRepository(db)

	indexers := []interface{ EnsureIndexes(context.Context) error }{
		users, access, areas, indicators, tracking, attachments,
	}
	for _, ix := range indexers {
		if err := ix.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	if err := mongodb.EnsureEventIndexes(ctx, db); err != nil {
		return err
	}

	blobs, err := storage.NewDiskStore(cfg.Uploads.Dir)
	if err != nil {
		return err
	}

	eventService := service.NewEventService(events, logger.Component("audit"))
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, eventService, logger.Component("audit"))
	dispatcher.Start(ctx)

	attachmentService := service.NewAttachmentService(attachments, blobs, cfg.Uploads.MaxBytes, logger.Component("attachments"))

	svc := api.Services{
		Auth:        service.NewAuthService(users, cfg.JWTSecret, cfg.JWTTTL, logger.Component("auth")),
		Menus:       service.NewMenuService(menus, access, roles, redisdb.NewMenuCache(rdb, cfg.Redis.MenuCacheTTL), logger.Component("menu")),
		Roles:       service.NewRoleService(roles, menus, access, logger.Component("roles")),
		Catalogs:    service.NewCatalogService(catalogs, areas, indicators, logger.Component("catalogs")),
		Indicators:  service.NewIndicatorService(indicators, logger.Component("indicators")),
		Users:       service.NewUserService(users, logger.Component("users")),
		Tracking:    service.NewTrackingService(tracking, dispatcher, logger.Component("tracking")),
		Attachments: attachmentService,
		Dashboard:   service.NewDashboardService(indicators, tracking, catalogs, logger.Component("dashboard")),
	}

	sweeper := scheduler.New(attachmentService, cfg.Uploads.OrphanMinAge, logger.Component("scheduler"))
	if err := sweeper.Start(cfg.Uploads.OrphanSweepSchedule); err != nil {
		return err
	}
	defer sweeper.Stop()

	e := api.NewRouter(svc, api.Options{
		JWTSecret:      cfg.JWTSecret,
		LoginRate:      cfg.Login.RatePerSecond,
		LoginBurst:     cfg.Login.Burst,
		MaxUploadBytes: cfg.Uploads.MaxBytes,
		Checks: map[string]handler.DependencyCheck{
			"mongodb": handler.MongoCheck(client),
			"redis":   handler.RedisCheck(rdb),
		},
		Swagger: true,
		Logger:  log,
	})

	return serve(ctx, e, ":"+cfg.Port, log)
}

// serve runs the HTTP server until ctx is cancelled, then drains it.
func serve(ctx context.Context, e *echo.Echo, addr string, log zerolog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("http server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(sctx)
	})

	return g.Wait()
}
