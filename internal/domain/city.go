package domain

// CityProfile is the per-deployment data that used to be hard-coded in
// page variants: city name, map defaults, geofence, palette and contacts.
type CityProfile struct {
	Name        string                 `json:"name" yaml:"name"`
	CountryCode string                 `json:"country_code" yaml:"country_code"`
	Center      Point                  `json:"center" yaml:"center"`
	Zoom        int                    `json:"zoom" yaml:"zoom"`
	Bounds      BoundingBox            `json:"bounds" yaml:"bounds"`
	Geofence    bool                   `json:"geofence" yaml:"geofence"`
	Colors      map[string]string      `json:"colors" yaml:"colors"`
	Authorities map[Category]Authority `json:"authorities" yaml:"authorities"`
}

// ColorFor returns the palette color of an issue type, or fallback
func (p CityProfile) ColorFor(issueType, fallback string) string {
	if c, ok := p.Colors[issueType]; ok && c != "" {
		return c
	}
	return fallback
}
