package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/complaint-map/internal/config"
	"github.com/complaint-map/internal/domain"
	"github.com/complaint-map/internal/pkg/errors"
	"github.com/complaint-map/internal/repository/cache"
	"github.com/complaint-map/internal/usecase"
	"github.com/complaint-map/internal/usecase/dto"
)

func TestAirQualityUseCase_Heatmap(t *testing.T) {
	ctx := context.Background()
	city := config.DefaultCityProfile()

	t.Run("normalizes values to [0,1]", func(t *testing.T) {
		air := &MockAirQualityRepository{}
		air.On("LatestMeasurements", ctx, "pm25", city.Bounds).Return([]domain.Measurement{
			{StationID: 1, Lat: 45.74, Lon: 4.82, Value: 10},
			{StationID: 2, Lat: 45.78, Lon: 4.88, Value: 30},
			{StationID: 3, Lat: 45.76, Lon: 4.85, Value: 20},
		}, nil)
		uc := usecase.NewAirQualityUseCase(air, cache.NewNoopCache(), city, time.Minute, zap.NewNop())

		resp, err := uc.Heatmap(ctx, dto.AirQualityRequest{Pollutant: "pm25"})
		require.NoError(t, err)

		assert.True(t, resp.Available)
		assert.Equal(t, 3, resp.Stations)
		assert.Equal(t, 10.0, resp.Min)
		assert.Equal(t, 30.0, resp.Max)
		assert.Equal(t, dto.HeatPoint{45.74, 4.82, 0}, resp.Points[0])
		assert.Equal(t, dto.HeatPoint{45.78, 4.88, 1}, resp.Points[1])
		assert.Equal(t, dto.HeatPoint{45.76, 4.85, 0.5}, resp.Points[2])
		assert.InDelta(t, 45.76, resp.Center.Lat, 1e-9)
	})

	t.Run("equal values all weigh 1", func(t *testing.T) {
		air := &MockAirQualityRepository{}
		air.On("LatestMeasurements", ctx, "pm10", city.Bounds).Return([]domain.Measurement{
			{StationID: 1, Lat: 45.74, Lon: 4.82, Value: 12},
			{StationID: 2, Lat: 45.78, Lon: 4.88, Value: 12},
		}, nil)
		uc := usecase.NewAirQualityUseCase(air, cache.NewNoopCache(), city, time.Minute, zap.NewNop())

		resp, err := uc.Heatmap(ctx, dto.AirQualityRequest{Pollutant: "pm10"})
		require.NoError(t, err)
		assert.Equal(t, 1.0, resp.Points[0][2])
		assert.Equal(t, 1.0, resp.Points[1][2])
	})

	t.Run("provider failure yields an unavailable empty layer", func(t *testing.T) {
		air := &MockAirQualityRepository{}
		air.On("LatestMeasurements", ctx, "pm25", city.Bounds).Return(nil, errors.ErrExternalService)
		uc := usecase.NewAirQualityUseCase(air, cache.NewNoopCache(), city, time.Minute, zap.NewNop())

		resp, err := uc.Heatmap(ctx, dto.AirQualityRequest{Pollutant: "pm25"})
		require.NoError(t, err)
		assert.False(t, resp.Available)
		assert.Empty(t, resp.Points)
		assert.Equal(t, city.Center, resp.Center)
	})

	t.Run("cache hit skips the provider", func(t *testing.T) {
		cached, _ := json.Marshal([]domain.Measurement{{StationID: 9, Lat: 45.76, Lon: 4.85, Value: 8}})
		cacheRepo := &MockCacheRepository{}
		cacheRepo.On("Get", ctx, cache.AirQualityKey("pm25", "Lyon")).Return(cached, nil)
		air := &MockAirQualityRepository{}
		uc := usecase.NewAirQualityUseCase(air, cacheRepo, city, time.Minute, zap.NewNop())

		resp, err := uc.Heatmap(ctx, dto.AirQualityRequest{Pollutant: "pm25"})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Stations)
		air.AssertNotCalled(t, "LatestMeasurements", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("fresh result is cached with the configured ttl", func(t *testing.T) {
		cacheRepo := &MockCacheRepository{}
		key := cache.AirQualityKey("pm25", "Lyon")
		cacheRepo.On("Get", ctx, key).Return(nil, nil)
		cacheRepo.On("Set", ctx, key, mock.Anything, 15*time.Minute).Return(nil)
		air := &MockAirQualityRepository{}
		air.On("LatestMeasurements", ctx, "pm25", city.Bounds).Return([]domain.Measurement{}, nil)
		uc := usecase.NewAirQualityUseCase(air, cacheRepo, city, 15*time.Minute, zap.NewNop())

		resp, err := uc.Heatmap(ctx, dto.AirQualityRequest{Pollutant: "pm25"})
		require.NoError(t, err)
		assert.True(t, resp.Available)
		assert.Zero(t, resp.Stations)
		cacheRepo.AssertExpectations(t)
	})
}
