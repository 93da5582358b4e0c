package dto

// SubmitComplaintRequest - a new citizen report. Intensity outside 1..5 is
// clamped by the store, so it is not rejected here.
type SubmitComplaintRequest struct {
	IssueType   string  `json:"issue_type" form:"issue_type" validate:"required,max=100"`
	Intensity   int     `json:"intensity" form:"intensity"`
	Lat         float64 `json:"lat" form:"lat" validate:"min=-90,max=90"`
	Lon         float64 `json:"lon" form:"lon" validate:"min=-180,max=180"`
	Description *string `json:"description,omitempty" form:"description" validate:"omitempty,max=2000"`

	// Photo is filled from a multipart upload, never from JSON
	Photo *PhotoUpload `json:"-" form:"-"`
}

// PhotoUpload - raw bytes of an attached picture
type PhotoUpload struct {
	Filename string
	Data     []byte
}

// NearbyRequest - complaints around a point
type NearbyRequest struct {
	Lat    float64 `json:"lat" validate:"min=-90,max=90"`
	Lon    float64 `json:"lon" validate:"min=-180,max=180"`
	Radius float64 `json:"radius" validate:"gt=0,max=1"` // degrees
}

// MapRequest - filters of the map view. A nil Types means every type
// present in the data; an explicit empty list selects nothing.
type MapRequest struct {
	Types        []string `json:"types"`
	MinIntensity int      `json:"min_intensity" validate:"omitempty,min=1,max=5"`
	From         string   `json:"from" validate:"omitempty,datetime=2006-01-02"`
}

// StatsRequest - optional single issue type; empty means all. Granularity,
// when set, also returns that period series under "series".
type StatsRequest struct {
	Type        string `json:"type" validate:"omitempty,max=100"`
	Granularity string `json:"granularity" validate:"omitempty,max=10"`
}

// SolutionsRequest - optional issue filter, matched on the normalized category
type SolutionsRequest struct {
	Issue string `json:"issue" validate:"omitempty,max=100"`
}

// AirQualityRequest - pollutant heatmap
type AirQualityRequest struct {
	Pollutant string `json:"pollutant" validate:"required,oneof=pm25 pm10"`
}

// GeocodeRequest - free text address search
type GeocodeRequest struct {
	Query string `json:"q" validate:"required,min=3,max=200"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=20"`
}

// SolarPlanRequest - canopy sizing input. Either UsableArea or Length and
// Width must be set.
type SolarPlanRequest struct {
	Lat               float64  `json:"lat" validate:"min=-90,max=90"`
	UsableArea        float64  `json:"usable_area_m2" validate:"omitempty,gt=0"`
	Length            float64  `json:"length_m" validate:"omitempty,gt=0"`
	Width             float64  `json:"width_m" validate:"omitempty,gt=0"`
	PackingPct        float64  `json:"packing_pct" validate:"omitempty,gt=0,max=100"`
	MonthlyTargetKWh  float64  `json:"monthly_target_kwh" validate:"gt=0"`
	LossesPct         *float64 `json:"losses_pct,omitempty" validate:"omitempty,min=0,lt=100"`
	YearlyYieldPerKWp float64  `json:"yearly_yield_per_kwp" validate:"omitempty,gt=0"`
	Panel             string   `json:"panel,omitempty"`
	PanelCount        int      `json:"panel_count,omitempty" validate:"omitempty,min=1"`
}
