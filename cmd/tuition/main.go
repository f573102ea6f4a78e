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
	"github.com/univcloud/campus-services/internal/handler"
	"github.com/univcloud/campus-services/internal/middleware"
	"github.com/univcloud/campus-services/internal/pricing"
	"github.com/univcloud/campus-services/internal/repository"
	"github.com/univcloud/campus-services/internal/service"
	"github.com/univcloud/campus-services/pkg/config"
	"github.com/univcloud/campus-services/pkg/database"
	"github.com/univcloud/campus-services/pkg/export"
	"github.com/univcloud/campus-services/pkg/logger"
	corsmiddleware "github.com/univcloud/campus-services/pkg/middleware/cors"
	reqidmiddleware "github.com/univcloud/campus-services/pkg/middleware/requestid"
)

// @title Tuition Service
// @version 0.1.0
// @description Tuition fee schedules, payment and receipts
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load("tuition")
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

	breaker := pricing.NewBreaker(cfg.Pricing.FailureThreshold, cfg.Pricing.FailureWindow, cfg.Pricing.Cooldown, nil, logr)
	priceClient := pricing.NewClient(cfg.Pricing.BaseURL, cfg.Pricing.Timeout, logr)

	tuitionRepo := repository.NewTuitionRepository(db)
	renderer := export.NewPDFRenderer()

	tuitionSvc := service.NewTuitionService(tuitionRepo, breaker, priceClient, renderer, metricsSvc, validate, logr)

	tuitionHandler := handler.NewTuitionHandler(tuitionSvc)
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

	r.GET("/tuition-fees", tuitionHandler.List)
	r.POST("/tuition-fees", tuitionHandler.Create)
	r.GET("/tuition-fees/:id", tuitionHandler.Get)
	r.POST("/tuition-fees/:id/pay", tuitionHandler.Pay)
	r.GET("/tuition-fees/:id/receipt", tuitionHandler.Receipt)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "service", cfg.Service)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
