package aggregate

import (
	"github.com/complaint-map/internal/domain"
	"github.com/complaint-map/internal/pkg/utils"
)

// NearestNeighbors returns complaints whose planar distance in degrees to
// origin is strictly below radius, in input order. Lat/lon are treated as a
// flat grid, which holds for a single city but not across regions.
func NearestNeighbors(cs []domain.Complaint, origin domain.Point, radius float64) []domain.Complaint {
	out := make([]domain.Complaint, 0)
	for _, c := range cs {
		if utils.EuclideanDegrees(origin.Lat, origin.Lon, c.Lat, c.Lon) < radius {
			out = append(out, c)
		}
	}
	return out
}

// Center returns the mean position of cs, or fallback when cs is empty
func Center(cs []domain.Complaint, fallback domain.Point) domain.Point {
	if len(cs) == 0 {
		return fallback
	}
	var lat, lon float64
	for _, c := range cs {
		lat += c.Lat
		lon += c.Lon
	}
	n := float64(len(cs))
	return domain.Point{Lat: lat / n, Lon: lon / n}
}
