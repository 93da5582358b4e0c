package domain

import (
	"strings"
	"time"
)

// Issue types offered by the report form
const (
	IssueAirQuality = "Air quality"
	IssueNoise      = "Noise"
	IssueHeat       = "Heat"
	IssueMobility   = "Cycling / Walking"
	IssueOdor       = "Odor"
	IssueOther      = "Other"
)

const (
	MinIntensity = 1
	MaxIntensity = 5
)

// IssueTypes returns the report form issue types in display order
func IssueTypes() []string {
	return []string{
		IssueAirQuality,
		IssueNoise,
		IssueHeat,
		IssueMobility,
		IssueOdor,
		IssueOther,
	}
}

// IsKnownIssueType reports whether s is one of IssueTypes (exact match)
func IsKnownIssueType(s string) bool {
	for _, t := range IssueTypes() {
		if t == s {
			return true
		}
	}
	return false
}

// Complaint is one citizen-submitted environmental issue report.
// Rows are append-only: created once, never updated or deleted.
type Complaint struct {
	ID          int64     `json:"id" db:"id"`
	IssueType   string    `json:"issue_type" db:"issue_type"`
	Intensity   int       `json:"intensity" db:"intensity"`
	Lat         float64   `json:"lat" db:"lat"`
	Lon         float64   `json:"lon" db:"lon"`
	Timestamp   time.Time `json:"timestamp" db:"timestamp"`
	Description *string   `json:"description,omitempty" db:"description"`
	PhotoPath   *string   `json:"photo_path,omitempty" db:"photo_path"`
	Votes       int       `json:"votes" db:"votes"`
}

// Point returns the complaint location
func (c Complaint) Point() Point {
	return Point{Lat: c.Lat, Lon: c.Lon}
}

// NewComplaint carries the caller-supplied fields of a complaint. The store
// assigns id, timestamp and votes.
type NewComplaint struct {
	IssueType   string
	Intensity   int
	Lat         float64
	Lon         float64
	Description *string
	PhotoPath   *string
}

// ClampIntensity maps missing or non-positive values to 1 and caps at 5
func ClampIntensity(v int) int {
	if v < MinIntensity {
		return MinIntensity
	}
	if v > MaxIntensity {
		return MaxIntensity
	}
	return v
}

// Sanitized returns a copy with intensity clamped, issue type trimmed
// (empty becomes Other) and blank optional strings dropped.
func (n NewComplaint) Sanitized() NewComplaint {
	out := n
	out.Intensity = ClampIntensity(n.Intensity)
	out.IssueType = strings.TrimSpace(n.IssueType)
	if out.IssueType == "" {
		out.IssueType = IssueOther
	}
	out.Description = trimmedOrNil(n.Description)
	out.PhotoPath = trimmedOrNil(n.PhotoPath)
	return out
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
