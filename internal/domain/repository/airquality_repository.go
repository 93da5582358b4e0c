package repository

import (
	"context"

	"github.com/complaint-map/internal/domain"
)

// AirQualityRepository returns the latest readings of a pollutant inside a region
type AirQualityRepository interface {
	LatestMeasurements(ctx context.Context, pollutant string, bounds domain.BoundingBox) ([]domain.Measurement, error)
}
