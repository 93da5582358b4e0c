package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/complaint-map/internal/domain"
	"github.com/complaint-map/internal/domain/repository"
	"github.com/complaint-map/internal/repository/cache"
	"github.com/complaint-map/internal/usecase/dto"
)

// DefaultGeocodeLimit is the number of candidates returned when none is asked
const DefaultGeocodeLimit = 5

// GeocodingUseCase - address search for the report form
type GeocodingUseCase struct {
	geoRepo   repository.GeocodingRepository
	cacheRepo repository.CacheRepository
	city      domain.CityProfile
	cacheTTL  time.Duration
	logger    *zap.Logger
}

func NewGeocodingUseCase(
	geoRepo repository.GeocodingRepository,
	cacheRepo repository.CacheRepository,
	city domain.CityProfile,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *GeocodingUseCase {
	return &GeocodingUseCase{
		geoRepo:   geoRepo,
		cacheRepo: cacheRepo,
		city:      city,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// Search returns the first candidates of the provider, each flagged with
// whether it falls inside the city bounds. Provider errors yield an empty
// list with Available=false.
func (uc *GeocodingUseCase) Search(ctx context.Context, req dto.GeocodeRequest) (*dto.GeocodeResponse, error) {
	if req.Limit == 0 {
		req.Limit = DefaultGeocodeLimit
	}

	resp := &dto.GeocodeResponse{
		Query:   req.Query,
		Results: []dto.GeocodeResult{},
	}

	places, err := uc.places(ctx, req.Query, req.Limit)
	if err != nil {
		uc.logger.Warn("Geocoding provider unavailable", zap.String("query", req.Query), zap.Error(err))
		return resp, nil
	}
	resp.Available = true

	if len(places) > req.Limit {
		places = places[:req.Limit]
	}
	for _, p := range places {
		resp.Results = append(resp.Results, dto.GeocodeResult{
			Place:    p,
			InBounds: uc.city.Bounds.IsZero() || uc.city.Bounds.Contains(domain.Point{Lat: p.Lat, Lon: p.Lon}),
		})
	}
	return resp, nil
}

func (uc *GeocodingUseCase) places(ctx context.Context, query string, limit int) ([]domain.Place, error) {
	key := cache.GeocodeKey(query, uc.city.CountryCode, limit)

	var cached []domain.Place
	hit, err := cache.GetJSON(ctx, uc.cacheRepo, key, &cached)
	if err != nil {
		uc.logger.Warn("Failed to read geocode cache", zap.String("key", key), zap.Error(err))
	}
	if hit {
		return cached, nil
	}

	places, err := uc.geoRepo.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	if err := cache.SetJSON(ctx, uc.cacheRepo, key, places, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache geocode result", zap.String("key", key), zap.Error(err))
	}
	return places, nil
}
