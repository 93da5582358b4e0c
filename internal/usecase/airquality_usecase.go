package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/complaint-map/internal/aggregate"
	"github.com/complaint-map/internal/domain"
	"github.com/complaint-map/internal/domain/repository"
	"github.com/complaint-map/internal/repository/cache"
	"github.com/complaint-map/internal/usecase/dto"
)

// AirQualityUseCase - pollutant heatmap from the latest station readings
type AirQualityUseCase struct {
	airRepo   repository.AirQualityRepository
	cacheRepo repository.CacheRepository
	city      domain.CityProfile
	cacheTTL  time.Duration
	logger    *zap.Logger
}

func NewAirQualityUseCase(
	airRepo repository.AirQualityRepository,
	cacheRepo repository.CacheRepository,
	city domain.CityProfile,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *AirQualityUseCase {
	return &AirQualityUseCase{
		airRepo:   airRepo,
		cacheRepo: cacheRepo,
		city:      city,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// Heatmap never fails on provider errors: they turn into an empty layer with
// Available=false.
func (uc *AirQualityUseCase) Heatmap(ctx context.Context, req dto.AirQualityRequest) (*dto.AirQualityResponse, error) {
	resp := &dto.AirQualityResponse{
		Pollutant: req.Pollutant,
		Points:    []dto.HeatPoint{},
		Center:    uc.city.Center,
	}

	measurements, err := uc.measurements(ctx, req.Pollutant)
	if err != nil {
		uc.logger.Warn("Air quality provider unavailable",
			zap.String("pollutant", req.Pollutant),
			zap.Error(err))
		return resp, nil
	}
	resp.Available = true

	if len(measurements) == 0 {
		return resp, nil
	}

	values := make([]float64, len(measurements))
	var lat, lon float64
	for i, m := range measurements {
		values[i] = m.Value
		lat += m.Lat
		lon += m.Lon
	}

	resp.Min, resp.Max = values[0], values[0]
	for _, v := range values[1:] {
		if v < resp.Min {
			resp.Min = v
		}
		if v > resp.Max {
			resp.Max = v
		}
	}

	for i, w := range aggregate.NormalizeValues(values) {
		resp.Points = append(resp.Points, dto.HeatPoint{measurements[i].Lat, measurements[i].Lon, w})
	}
	n := float64(len(measurements))
	resp.Center = domain.Point{Lat: lat / n, Lon: lon / n}
	resp.Stations = len(measurements)

	return resp, nil
}

func (uc *AirQualityUseCase) measurements(ctx context.Context, pollutant string) ([]domain.Measurement, error) {
	key := cache.AirQualityKey(pollutant, uc.city.Name)

	var cached []domain.Measurement
	hit, err := cache.GetJSON(ctx, uc.cacheRepo, key, &cached)
	if err != nil {
		uc.logger.Warn("Failed to read air quality cache", zap.String("key", key), zap.Error(err))
	}
	if hit {
		uc.logger.Debug("Air quality served from cache", zap.String("key", key))
		return cached, nil
	}

	ms, err := uc.airRepo.LatestMeasurements(ctx, pollutant, uc.city.Bounds)
	if err != nil {
		return nil, err
	}

	if err := cache.SetJSON(ctx, uc.cacheRepo, key, ms, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache air quality", zap.String("key", key), zap.Error(err))
	}
	return ms, nil
}
