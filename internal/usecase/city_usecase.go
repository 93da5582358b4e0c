package usecase

import (
	"github.com/complaint-map/internal/domain"
	"github.com/complaint-map/internal/usecase/dto"
)

// CityUseCase exposes the active city profile
type CityUseCase struct {
	city domain.CityProfile
}

func NewCityUseCase(city domain.CityProfile) *CityUseCase {
	return &CityUseCase{city: city}
}

func (uc *CityUseCase) GetCity() *dto.CityResponse {
	colors := make(map[string]string, len(uc.city.Colors))
	for k, v := range uc.city.Colors {
		colors[k] = v
	}
	return &dto.CityResponse{
		Name:        uc.city.Name,
		CountryCode: uc.city.CountryCode,
		Center:      uc.city.Center,
		Zoom:        uc.city.Zoom,
		Bounds:      uc.city.Bounds,
		Geofence:    uc.city.Geofence,
		Colors:      colors,
		IssueTypes:  domain.IssueTypes(),
		Pollutants:  domain.Pollutants(),
	}
}
