package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/univcloud/campus-services/api/swagger"
	"github.com/univcloud/campus-services/internal/events"
	"github.com/univcloud/campus-services/internal/handler"
	"github.com/univcloud/campus-services/internal/middleware"
	"github.com/univcloud/campus-services/internal/repository"
	"github.com/univcloud/campus-services/internal/service"
	"github.com/univcloud/campus-services/pkg/cache"
	"github.com/univcloud/campus-services/pkg/config"
	"github.com/univcloud/campus-services/pkg/database"
	"github.com/univcloud/campus-services/pkg/logger"
	corsmiddleware "github.com/univcloud/campus-services/pkg/middleware/cors"
	reqidmiddleware "github.com/univcloud/campus-services/pkg/middleware/requestid"
)

// @title Classroom Service
// @version 0.1.0
// @description Classroom roster, availability and booking
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load("classroom")
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()
	validate := validator.New()

	cacheSvc := service.NewCacheService(nil, metricsSvc, cfg.Cache.TTL, logr, false)
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect redis", "error", err)
		}
		defer redisClient.Close()
		cacheSvc = service.NewCacheService(redisClient, metricsSvc, cfg.Cache.TTL, logr, true)
	}

	var publisher *events.Publisher
	if cfg.Kafka.Enabled {
		publisher, err = events.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.ScheduleTopic, logr)
		if err != nil {
			logr.Sugar().Fatalw("failed to init event publisher", "error", err)
		}
		defer publisher.Close()
	}

	classroomRepo := repository.NewClassroomRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)

	classroomSvc := service.NewClassroomService(classroomRepo, cacheSvc, logr)
	bookingSvc := service.NewBookingService(classroomRepo, scheduleRepo, publisher, validate, metricsSvc, logr)

	classroomHandler := handler.NewClassroomHandler(classroomSvc, bookingSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	r.GET("/classrooms", classroomHandler.List)
	r.GET("/classrooms/schedules", classroomHandler.Schedules)
	r.GET("/classrooms/:id/schedules", classroomHandler.RoomSchedules)
	r.PATCH("/classrooms/:id", classroomHandler.Update)
	r.POST("/classrooms/:id/book", classroomHandler.Book)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "service", cfg.Service)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
