package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	config "github.com/what2eat/what2eat/configs"
	"github.com/what2eat/what2eat/internal/application/services"
	"github.com/what2eat/what2eat/internal/core/ports"
	"github.com/what2eat/what2eat/internal/infrastructure/db"
	"github.com/what2eat/what2eat/internal/infrastructure/health"
	"github.com/what2eat/what2eat/internal/infrastructure/httpserver"
	"github.com/what2eat/what2eat/internal/infrastructure/openmeteo"
	"github.com/what2eat/what2eat/internal/infrastructure/redis"
	"github.com/what2eat/what2eat/internal/infrastructure/repositories"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Setup logger
	logger := logrus.New()
	if cfg.Log.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}

	logger.Info("Starting what2eat backend...")

	// Initialize database (apply pool settings from config)
	database, err := db.NewDatabase(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	logger.Info("Connected to database successfully")

	// Initialize Redis client
	redisClient, err := redis.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	logger.Info("Connected to Redis successfully")

	// Run migrations
	if err := database.Migrate("./migrations"); err != nil {
		logger.Warn("Failed to run migrations:", err)
	}

	// Shared outbound HTTP client; the timeout bounds both geocode and
	// forecast calls so a slow upstream cannot stall a request.
	httpClient := &http.Client{Timeout: cfg.Weather.RequestTimeout}

	// Cache without an extra prefix: weather keys are "weather:<city>".
	weatherCache := redis.NewRedisCache(redisClient, "")

	weatherClient := openmeteo.NewClient(&openmeteo.ClientConfig{
		GeocodingBaseURL: cfg.Weather.GeocodingBaseURL,
		ForecastBaseURL:  cfg.Weather.ForecastBaseURL,
	}, httpClient, logger)

	dishRepo := repositories.NewDishRepository(database, logger)

	dishService := services.NewDishService(dishRepo, logger)
	weatherService := services.NewWeatherService(weatherCache, weatherClient, cfg.Weather.CacheTTL, logger)

	hcSlice := []ports.HealthChecker{health.NewDBHealthChecker(database), health.NewRedisHealthChecker(redisClient)}

	serverConfig := &httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	deps := httpserver.ServerDeps{
		DishService:    dishService,
		WeatherService: weatherService,
		HealthCheckers: hcSlice,
	}

	server := httpserver.NewServer(serverConfig, logger, deps)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server:", err)
		}
	}()

	logger.Infof("Server started on %s:%s", cfg.Server.Host, cfg.Server.Port)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("Server exited")
}
