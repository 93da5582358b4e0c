package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/complaint-map/internal/domain"
)

// DefaultCityProfile is used when CITY_PROFILE is not set
func DefaultCityProfile() domain.CityProfile {
	return domain.CityProfile{
		Name:        "Lyon",
		CountryCode: "fr",
		Center:      domain.Point{Lat: 45.76, Lon: 4.85},
		Zoom:        13,
		Bounds: domain.BoundingBox{
			MinLat: 45.70, MinLon: 4.77,
			MaxLat: 45.82, MaxLon: 4.93,
		},
		Geofence: false,
		Colors: map[string]string{
			domain.IssueAirQuality: "#ff6961",
			domain.IssueNoise:      "#5c7cfa",
			domain.IssueHeat:       "#ffa94d",
			domain.IssueMobility:   "#51cf66",
			domain.IssueOdor:       "#9b5de5",
			domain.IssueOther:      "#6c757d",
		},
	}
}

// LoadCityProfile reads a YAML profile. Fields missing from the file keep
// the values of DefaultCityProfile; palette entries are merged per key.
func LoadCityProfile(path string) (domain.CityProfile, error) {
	profile := DefaultCityProfile()
	if path == "" {
		return profile, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.CityProfile{}, fmt.Errorf("failed to read city profile: %w", err)
	}

	var file domain.CityProfile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return domain.CityProfile{}, fmt.Errorf("failed to parse city profile %s: %w", path, err)
	}

	return mergeProfile(profile, file)
}

func mergeProfile(base, file domain.CityProfile) (domain.CityProfile, error) {
	out := base
	if file.Name != "" {
		out.Name = file.Name
	}
	if file.CountryCode != "" {
		out.CountryCode = file.CountryCode
	}
	if file.Center != (domain.Point{}) {
		out.Center = file.Center
	}
	if file.Zoom > 0 {
		out.Zoom = file.Zoom
	}
	if !file.Bounds.IsZero() {
		out.Bounds = file.Bounds
	}
	out.Geofence = file.Geofence

	colors := make(map[string]string, len(base.Colors)+len(file.Colors))
	for k, v := range base.Colors {
		colors[k] = v
	}
	for k, v := range file.Colors {
		colors[k] = v
	}
	out.Colors = colors
	out.Authorities = file.Authorities

	b := out.Bounds
	if b.MinLat > b.MaxLat || b.MinLon > b.MaxLon {
		return domain.CityProfile{}, fmt.Errorf("city profile %q: inverted bounds", out.Name)
	}
	if out.Geofence && b.IsZero() {
		return domain.CityProfile{}, fmt.Errorf("city profile %q: geofence enabled without bounds", out.Name)
	}
	return out, nil
}
