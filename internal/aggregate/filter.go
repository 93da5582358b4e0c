package aggregate

import (
	"time"

	"github.com/complaint-map/internal/domain"
)

// Criteria selects complaints for the map view
type Criteria struct {
	// Types is the set of issue types to keep. An empty set matches nothing.
	Types []string
	// MinIntensity is inclusive
	MinIntensity int
	// StartDate is compared by calendar date only; zero keeps everything
	StartDate time.Time
}

// Filter keeps complaints c with c.IssueType in Types, c.Intensity >=
// MinIntensity and date(c.Timestamp) >= date(StartDate), preserving order.
func Filter(cs []domain.Complaint, cr Criteria) []domain.Complaint {
	out := make([]domain.Complaint, 0)
	if len(cs) == 0 || len(cr.Types) == 0 {
		return out
	}

	types := make(map[string]struct{}, len(cr.Types))
	for _, t := range cr.Types {
		types[t] = struct{}{}
	}

	start := civilDate(cr.StartDate)
	for _, c := range cs {
		if _, ok := types[c.IssueType]; !ok {
			continue
		}
		if c.Intensity < cr.MinIntensity {
			continue
		}
		if civilDate(c.Timestamp).Before(start) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// DistinctTypes returns the issue types present, sorted
func DistinctTypes(cs []domain.Complaint) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, c := range cs {
		if _, ok := seen[c.IssueType]; ok {
			continue
		}
		seen[c.IssueType] = struct{}{}
		out = append(out, c.IssueType)
	}
	sortStrings(out)
	return out
}

// EarliestDate returns the calendar date of the oldest complaint, or zero
func EarliestDate(cs []domain.Complaint) time.Time {
	var min time.Time
	for i, c := range cs {
		if i == 0 || c.Timestamp.Before(min) {
			min = c.Timestamp
		}
	}
	if min.IsZero() {
		return min
	}
	return civilDate(min)
}

// civilDate drops the clock part, keeping the date as observed in t's own
// location.
func civilDate(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
