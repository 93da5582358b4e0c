package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/complaint-map/internal/config"
	"github.com/complaint-map/internal/domain"
	"github.com/complaint-map/internal/pkg/errors"
	"github.com/complaint-map/internal/repository/cache"
	"github.com/complaint-map/internal/usecase"
	"github.com/complaint-map/internal/usecase/dto"
)

func TestGeocodingUseCase_Search(t *testing.T) {
	ctx := context.Background()
	city := config.DefaultCityProfile()

	t.Run("flags candidates outside the city", func(t *testing.T) {
		geo := &MockGeocodingRepository{}
		geo.On("Search", ctx, "rue de la republique", usecase.DefaultGeocodeLimit).Return([]domain.Place{
			{DisplayName: "Rue de la République, Lyon", Lat: 45.7640, Lon: 4.8357},
			{DisplayName: "Rue de la République, Marseille", Lat: 43.2990, Lon: 5.3670},
		}, nil)
		uc := usecase.NewGeocodingUseCase(geo, cache.NewNoopCache(), city, time.Hour, zap.NewNop())

		resp, err := uc.Search(ctx, dto.GeocodeRequest{Query: "rue de la republique"})
		require.NoError(t, err)

		assert.True(t, resp.Available)
		require.Len(t, resp.Results, 2)
		assert.True(t, resp.Results[0].InBounds)
		assert.False(t, resp.Results[1].InBounds)
	})

	t.Run("limit truncates the candidates", func(t *testing.T) {
		geo := &MockGeocodingRepository{}
		geo.On("Search", ctx, "place bellecour", 1).Return([]domain.Place{
			{DisplayName: "Place Bellecour", Lat: 45.7578, Lon: 4.8320},
			{DisplayName: "Bellecour Metro", Lat: 45.7577, Lon: 4.8330},
		}, nil)
		uc := usecase.NewGeocodingUseCase(geo, cache.NewNoopCache(), city, time.Hour, zap.NewNop())

		resp, err := uc.Search(ctx, dto.GeocodeRequest{Query: "place bellecour", Limit: 1})
		require.NoError(t, err)
		assert.Len(t, resp.Results, 1)
	})

	t.Run("provider errors return an empty list", func(t *testing.T) {
		geo := &MockGeocodingRepository{}
		geo.On("Search", ctx, "part dieu", usecase.DefaultGeocodeLimit).Return(nil, errors.ErrExternalService)
		uc := usecase.NewGeocodingUseCase(geo, cache.NewNoopCache(), city, time.Hour, zap.NewNop())

		resp, err := uc.Search(ctx, dto.GeocodeRequest{Query: "part dieu"})
		require.NoError(t, err)
		assert.False(t, resp.Available)
		assert.Empty(t, resp.Results)
	})

	t.Run("without bounds everything is in bounds", func(t *testing.T) {
		open := city
		open.Bounds = domain.BoundingBox{}
		geo := &MockGeocodingRepository{}
		geo.On("Search", ctx, "anywhere", usecase.DefaultGeocodeLimit).Return([]domain.Place{
			{DisplayName: "Somewhere", Lat: 10, Lon: 10},
		}, nil)
		uc := usecase.NewGeocodingUseCase(geo, cache.NewNoopCache(), open, time.Hour, zap.NewNop())

		resp, err := uc.Search(ctx, dto.GeocodeRequest{Query: "anywhere"})
		require.NoError(t, err)
		assert.True(t, resp.Results[0].InBounds)
	})
}
