package dto

import (
	"time"

	"github.com/complaint-map/internal/aggregate"
	"github.com/complaint-map/internal/domain"
	"github.com/complaint-map/internal/solar"
)

// HeatPoint is [lat, lon, weight]
type HeatPoint [3]float64

// ComplaintCreatedResponse - result of a submission
type ComplaintCreatedResponse struct {
	ID        int64   `json:"id"`
	PhotoPath *string `json:"photo_path,omitempty"`
	// Escalated is true when the report pushed its area over the escalation threshold
	Escalated bool `json:"escalated"`
}

// ComplaintListResponse - the whole table, oldest first
type ComplaintListResponse struct {
	Complaints []domain.Complaint `json:"complaints"`
	Total      int                `json:"total"`
}

// ComplaintDetailResponse - one complaint with its recommendation context
type ComplaintDetailResponse struct {
	domain.Complaint
	Category       domain.Category  `json:"category"`
	Tier           domain.Tier      `json:"tier"`
	Recommendation string           `json:"recommendation"`
	Actions        []string         `json:"actions"`
	Authority      domain.Authority `json:"authority"`
	Color          string           `json:"color"`
}

// NearbyResponse - neighbors of a point
type NearbyResponse struct {
	Origin     domain.Point       `json:"origin"`
	Radius     float64            `json:"radius"`
	Complaints []domain.Complaint `json:"complaints"`
	// DistancesKm is the ground distance from Origin, keyed by complaint id
	DistancesKm map[int64]float64 `json:"distances_km"`
	Total       int               `json:"total"`
}

// VoteResponse - total upvotes after a vote
type VoteResponse struct {
	ID    int64 `json:"id"`
	Votes int   `json:"votes"`
}

// MapMarker - one filtered complaint on the map
type MapMarker struct {
	ID        int64   `json:"id"`
	IssueType string  `json:"issue_type"`
	Intensity int     `json:"intensity"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Date      string  `json:"date"`
	Color     string  `json:"color"`
}

// MapResponse - markers and heat layer of the filtered complaints
type MapResponse struct {
	Markers []MapMarker  `json:"markers"`
	Heat    []HeatPoint  `json:"heat"`
	Center  domain.Point `json:"center"`
	Zoom    int          `json:"zoom"`
	// IssueTypes and EarliestDate describe the unfiltered data for filter widgets
	IssueTypes   []string `json:"issue_types"`
	EarliestDate string   `json:"earliest_date,omitempty"`
	NoMatches    bool     `json:"no_matches"`
	Total        int      `json:"total"`
}

// StatsResponse - statistics page. Distribution covers all complaints, the
// remaining series only the selected type.
type StatsResponse struct {
	Type          string                  `json:"type"`
	Total         int                     `json:"total"`
	IssueTypes    []string                `json:"issue_types"`
	Distribution  []aggregate.TypeSummary `json:"distribution"`
	Summary       []aggregate.TypeSummary `json:"summary"`
	PerDay        []aggregate.Bucket      `json:"per_day"`
	PerMonth      []aggregate.Bucket      `json:"per_month"`
	PerYear       []aggregate.Bucket      `json:"per_year"`
	LastEvenYears []aggregate.Bucket      `json:"last_even_years"`
	Intensity     []aggregate.Bucket      `json:"intensity"`
	// Granularity and Series echo the requested period series
	Granularity aggregate.Granularity `json:"granularity,omitempty"`
	Series      []aggregate.Bucket    `json:"series,omitempty"`
}

// SolutionMarker - latest complaint of one (location, issue type) pair
type SolutionMarker struct {
	ComplaintID    int64           `json:"complaint_id"`
	Lat            float64         `json:"lat"`
	Lon            float64         `json:"lon"`
	IssueType      string          `json:"issue_type"`
	Category       domain.Category `json:"category"`
	Intensity      int             `json:"intensity"`
	Timestamp      time.Time       `json:"timestamp"`
	Recommendation string          `json:"recommendation"`
	Latest         bool            `json:"latest"`
}

// CurrentSolution - recommendation for the most recent report
type CurrentSolution struct {
	ComplaintID    int64            `json:"complaint_id"`
	Category       domain.Category  `json:"category"`
	Intensity      int              `json:"intensity"`
	Tier           domain.Tier      `json:"tier"`
	Recommendation string           `json:"recommendation"`
	Actions        []string         `json:"actions"`
	Authority      domain.Authority `json:"authority"`
}

// SolutionsResponse - solutions map
type SolutionsResponse struct {
	Issue      string            `json:"issue"`
	Categories []domain.Category `json:"categories"`
	Markers    []SolutionMarker  `json:"markers"`
	Heat       [][2]float64      `json:"heat"`
	Center     domain.Point      `json:"center"`
	Current    *CurrentSolution  `json:"current,omitempty"`
}

// AirQualityResponse - normalized pollutant heatmap. Min and Max are the raw
// values before normalization.
type AirQualityResponse struct {
	Pollutant string       `json:"pollutant"`
	Points    []HeatPoint  `json:"points"`
	Min       float64      `json:"min"`
	Max       float64      `json:"max"`
	Stations  int          `json:"stations"`
	Center    domain.Point `json:"center"`
	Available bool         `json:"available"`
}

// GeocodeResult - one candidate place
type GeocodeResult struct {
	domain.Place
	InBounds bool `json:"in_bounds"`
}

// GeocodeResponse - address search results
type GeocodeResponse struct {
	Query     string          `json:"query"`
	Results   []GeocodeResult `json:"results"`
	Available bool            `json:"available"`
}

// CityResponse - active city profile for clients
type CityResponse struct {
	Name        string             `json:"name"`
	CountryCode string             `json:"country_code"`
	Center      domain.Point       `json:"center"`
	Zoom        int                `json:"zoom"`
	Bounds      domain.BoundingBox `json:"bounds"`
	Geofence    bool               `json:"geofence"`
	Colors      map[string]string  `json:"colors"`
	IssueTypes  []string           `json:"issue_types"`
	Pollutants  []string           `json:"pollutants"`
}

// SolarPlanResponse - sizing for the whole catalog plus an optional manual pick
type SolarPlanResponse struct {
	*solar.Plan
	Partial *solar.PartialPlan `json:"partial,omitempty"`
}
