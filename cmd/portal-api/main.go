package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/uniportal/results-portal-api/api/swagger"
	"github.com/uniportal/results-portal-api/internal/handler"
	"github.com/uniportal/results-portal-api/internal/middleware"
	"github.com/uniportal/results-portal-api/internal/notify"
	"github.com/uniportal/results-portal-api/internal/repository"
	"github.com/uniportal/results-portal-api/internal/service"
	"github.com/uniportal/results-portal-api/pkg/cache"
	"github.com/uniportal/results-portal-api/pkg/config"
	"github.com/uniportal/results-portal-api/pkg/database"
	"github.com/uniportal/results-portal-api/pkg/logger"
	corsmiddleware "github.com/uniportal/results-portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/uniportal/results-portal-api/pkg/middleware/requestid"
)

// @title Results Portal API
// @version 0.1.0
// @description University results portal announcement distribution service
// @BasePath /
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	// Recipient estimates degrade to the static table when Redis is down.
	var directory service.RecipientDirectory = service.StaticRecipientDirectory{}
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, using static recipient estimates", "error", err)
	} else {
		defer redisClient.Close()
		directory = repository.NewRedisRecipientDirectory(redisClient, logr)
	}

	metricsSvc := service.NewMetricsService()

	announcementRepo := repository.NewAnnouncementRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	sink := notify.NewHTTPSink(cfg.Announcements.ChannelEndpoints, cfg.Announcements.SendTimeout)
	dispatcher := notify.NewDispatcher(sink, cfg.Announcements.SendTimeout, logr)

	audienceSvc := service.NewAudienceService(directory, logr)
	activitySvc := service.NewActivityService(activityRepo, logr)
	announcementSvc := service.NewAnnouncementService(
		announcementRepo,
		service.NewDraftValidator(nil),
		audienceSvc,
		dispatcher,
		activitySvc,
		metricsSvc,
		logr,
		cfg.Announcements.DispatchTimeout,
	)
	authSvc := service.NewAuthService(cfg.JWT)

	announcementHandler := handler.NewAnnouncementHandler(announcementSvc)
	activityHandler := handler.NewActivityHandler(activitySvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.OptionalJWT(authSvc))
	{
		api.POST("/announcements", announcementHandler.Submit)
		api.GET("/announcements", announcementHandler.List)
		api.GET("/announcements/:id", announcementHandler.Get)
		api.GET("/activity", activityHandler.Recent)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
