package repository

import (
	"context"

	"github.com/complaint-map/internal/domain"
)

// GeocodingRepository resolves free text into candidate places
type GeocodingRepository interface {
	Search(ctx context.Context, query string, limit int) ([]domain.Place, error)
}
