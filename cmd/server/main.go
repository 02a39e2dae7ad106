package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/hpsapps/daily/api/swagger"
	"github.com/hpsapps/daily/internal/handler"
	"github.com/hpsapps/daily/internal/middleware"
	"github.com/hpsapps/daily/internal/repository"
	"github.com/hpsapps/daily/internal/service"
	"github.com/hpsapps/daily/internal/state"
	"github.com/hpsapps/daily/pkg/cache"
	"github.com/hpsapps/daily/pkg/config"
	"github.com/hpsapps/daily/pkg/database"
	"github.com/hpsapps/daily/pkg/logger"
	corsmiddleware "github.com/hpsapps/daily/pkg/middleware/cors"
	reqidmiddleware "github.com/hpsapps/daily/pkg/middleware/requestid"
)

// @title Daily Cover API
// @version 1.0.0
// @description Derives daily schedules and cover sheets for absent teachers
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Redis serves two roles: optional snapshot backend and the
	// derived-schedule cache. One client covers both.
	redisClient := connectRedis(cfg, logr)

	var persister state.Persister
	switch cfg.State.Backend {
	case config.StateBackendPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
		}
		repo := repository.NewPostgresSnapshotRepository(db, cfg.State.SnapshotKey)
		if err := repo.EnsureSchema(ctx); err != nil {
			logr.Sugar().Fatalw("failed to prepare snapshot schema", "error", err)
		}
		persister = repo
	case config.StateBackendRedis:
		if redisClient == nil {
			logr.Sugar().Fatalw("state backend is redis but redis is unavailable")
		}
		persister = repository.NewRedisSnapshotRepository(redisClient, cfg.State.SnapshotKey)
	case config.StateBackendNone:
		logr.Info("state persistence disabled, data lives for the process lifetime")
	default:
		logr.Sugar().Fatalw("unknown state backend", "backend", cfg.State.Backend)
	}

	store := state.New(persister, logr)
	store.Hydrate(ctx)

	metricsSvc := service.NewMetricsService()
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	termSvc := service.NewTermService()
	scheduleSvc := service.NewScheduleService(store, termSvc, cacheRepo, cfg.Schedule.CacheEnabled, cfg.Schedule.CacheTTL, metricsSvc, logr)
	store.SetOnChange(func() {
		invalidateCtx, cancelInvalidate := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelInvalidate()
		scheduleSvc.InvalidateCache(invalidateCtx)
	})

	rosterSvc := service.NewRosterService(store, logr)
	overrideSvc := service.NewOverrideService(store, logr)
	casualSvc := service.NewCasualService(store, logr)
	exportSvc := service.NewExportService(scheduleSvc, logr)
	authSvc := service.NewAuthService(*cfg, logr)
	if !authSvc.Enabled() {
		logr.Warn("ADMIN_PASSWORD_HASH is empty, mutating routes are unprotected")
	}

	authHandler := handler.NewAuthHandler(authSvc)
	teacherHandler := handler.NewTeacherHandler(rosterSvc)
	rosterHandler := handler.NewRosterHandler(rosterSvc, metricsSvc, cfg.Import.MaxFileSizeBytes)
	casualHandler := handler.NewCasualHandler(casualSvc)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc, termSvc)
	overrideHandler := handler.NewOverrideHandler(overrideSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, rosterSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	// Reads are open; the derived schedule carries nothing secret.
	api.GET("/teachers", teacherHandler.List)
	api.GET("/teachers/:id", teacherHandler.Get)
	api.GET("/casuals", casualHandler.List)
	api.GET("/schedule", scheduleHandler.Get)
	api.GET("/terms/resolve", scheduleHandler.ResolveTerm)
	api.GET("/export/cover-sheet", exportHandler.CoverSheet)
	api.GET("/roster/status", rosterHandler.Status)

	protected := api.Group("")
	protected.Use(middleware.JWT(authSvc))
	protected.POST("/roster/import", rosterHandler.Import)
	protected.POST("/casuals", casualHandler.Create)
	protected.PUT("/casuals/:id", casualHandler.Update)
	protected.DELETE("/casuals/:id", casualHandler.Delete)
	protected.POST("/duties/manual", overrideHandler.AddManualDuty)
	protected.DELETE("/duties/manual/:id", overrideHandler.DeleteManualDuty)
	protected.PUT("/duties/:id", overrideHandler.UpdateDuty)
	protected.DELETE("/duties/inherited/:id", overrideHandler.ResetDuty)
	protected.PUT("/rff/:id", overrideHandler.UpdateRFF)
	protected.DELETE("/rff/:id", overrideHandler.ResetRFF)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "state_backend", cfg.State.Backend)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

// connectRedis returns nil when Redis is unreachable. The schedule cache
// degrades gracefully without it; only the redis state backend treats a nil
// client as fatal.
func connectRedis(cfg *config.Config, logr *zap.Logger) *redis.Client {
	client, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, schedule caching disabled", zap.Error(err))
		return nil
	}
	return client
}
