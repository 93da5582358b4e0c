package main

// @title Complaint Map API
// @version 1.0.0
// @description Citizen environmental complaint map. Residents report air quality, noise, heat, mobility and odor issues on a city map; the API serves the map, statistics, suggested solutions with the responsible authority, an air quality heatmap, address search and a solar canopy planner.

// @contact.name API Support
// @contact.email support@complaint-map.example.org

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/complaint-map/docs"
	"github.com/complaint-map/internal/config"
	httpDelivery "github.com/complaint-map/internal/delivery/http"
	"github.com/complaint-map/internal/delivery/http/handler"
	"github.com/complaint-map/internal/domain/repository"
	"github.com/complaint-map/internal/infrastructure/nominatim"
	"github.com/complaint-map/internal/infrastructure/openaq"
	"github.com/complaint-map/internal/pkg/logger"
	"github.com/complaint-map/internal/recommend"
	"github.com/complaint-map/internal/repository/cache"
	redisRepo "github.com/complaint-map/internal/repository/redis"
	"github.com/complaint-map/internal/repository/sqlstore"
	"github.com/complaint-map/internal/repository/upload"
	"github.com/complaint-map/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.NewWithFile(cfg.Log.Level, logger.FileConfig{
		Path:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Complaint Map API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("db_driver", cfg.Database.Driver),
	)

	city, err := config.LoadCityProfile(cfg.City.ProfilePath)
	if err != nil {
		log.Fatal("Failed to load city profile", zap.Error(err))
	}
	log.Info("City profile loaded", zap.String("city", city.Name), zap.Bool("geofence", city.Geofence))

	// 3. Open the complaint store and create the schema
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := sqlstore.Open(ctx, &cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to open complaint store", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close complaint store", zap.Error(err))
		}
	}()

	complaintRepo := sqlstore.NewComplaintRepository(db)
	if err := complaintRepo.Initialize(ctx); err != nil {
		log.Fatal("Failed to initialize complaint store", zap.Error(err))
	}
	log.Info("Complaint store ready")

	// 4. Redis is optional: without it nothing is cached and no escalation is published
	var (
		cacheRepo  repository.CacheRepository
		streamRepo repository.StreamRepository
	)
	if cfg.RedisEnabled() {
		redisClient, err := cache.NewRedis(ctx, &cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()

		cacheRepo = cache.NewCacheRepository(redisClient)
		streamRepo = redisRepo.NewStreamRepository(redisClient.Client(), log)
		log.Info("Redis connected")
	} else {
		cacheRepo = cache.NewNoopCache()
		streamRepo = redisRepo.NewNoopStreamRepository(log)
		log.Warn("Redis not configured, caching and escalation publishing disabled")
	}

	// 5. External collaborators
	uploadRepo, err := upload.NewLocalStore(cfg.Upload.Dir, log)
	if err != nil {
		log.Fatal("Failed to prepare upload directory", zap.Error(err))
	}
	geocodingRepo := nominatim.NewClient(&cfg.Nominatim, city.CountryCode, log)
	airQualityRepo := openaq.NewClient(&cfg.OpenAQ, city.CountryCode, log)
	if cfg.OpenAQ.APIKey == "" {
		log.Warn("OPENAQ_API_KEY is empty, the air quality heatmap will report unavailable")
	}

	directory := recommend.NewDirectory(city.Authorities)

	// 6. Use cases
	complaintUC := usecase.NewComplaintUseCase(complaintRepo, uploadRepo, streamRepo, directory, city, cfg.Escalation, log)
	mapUC := usecase.NewMapUseCase(complaintRepo, city, log)
	statsUC := usecase.NewStatsUseCase(complaintRepo, log)
	solutionUC := usecase.NewSolutionUseCase(complaintRepo, directory, city, log)
	airQualityUC := usecase.NewAirQualityUseCase(airQualityRepo, cacheRepo, city, cfg.Cache.AirQualityCacheTTL, log)
	geocodingUC := usecase.NewGeocodingUseCase(geocodingRepo, cacheRepo, city, cfg.Cache.GeocodeCacheTTL, log)
	cityUC := usecase.NewCityUseCase(city)
	solarUC := usecase.NewSolarUseCase(log)

	log.Info("Use cases initialized")

	// 7. HTTP server
	server := httpDelivery.NewServer(cfg, log, httpDelivery.Handlers{
		Complaint:  handler.NewComplaintHandler(complaintUC, log),
		Map:        handler.NewMapHandler(mapUC, log),
		Stats:      handler.NewStatsHandler(statsUC, log),
		Solution:   handler.NewSolutionHandler(solutionUC, log),
		AirQuality: handler.NewAirQualityHandler(airQualityUC, log),
		Search:     handler.NewSearchHandler(geocodingUC, log),
		City:       handler.NewCityHandler(cityUC),
		Solar:      handler.NewSolarHandler(solarUC, log),
	}, db)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
