package aggregate

import (
	"sort"

	"github.com/complaint-map/internal/domain"
)

type locationTypeKey struct {
	lat       float64
	lon       float64
	issueType string
}

// GroupLatestByLocationAndType keeps, for every distinct (lat, lon,
// issue_type), the complaint with the greatest timestamp. On equal
// timestamps the one appearing later in cs wins. Output is sorted by lat,
// lon, then issue type.
func GroupLatestByLocationAndType(cs []domain.Complaint) []domain.Complaint {
	latest := make(map[locationTypeKey]domain.Complaint, len(cs))
	for _, c := range cs {
		k := locationTypeKey{lat: c.Lat, lon: c.Lon, issueType: c.IssueType}
		cur, ok := latest[k]
		if !ok || !c.Timestamp.Before(cur.Timestamp) {
			latest[k] = c
		}
	}

	out := make([]domain.Complaint, 0, len(latest))
	for _, c := range latest {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Lat != b.Lat {
			return a.Lat < b.Lat
		}
		if a.Lon != b.Lon {
			return a.Lon < b.Lon
		}
		return a.IssueType < b.IssueType
	})
	return out
}

// Latest returns the index of the complaint with the greatest timestamp
// (last one on ties), or -1 for empty input.
func Latest(cs []domain.Complaint) int {
	idx := -1
	for i, c := range cs {
		if idx == -1 || !c.Timestamp.Before(cs[idx].Timestamp) {
			idx = i
		}
	}
	return idx
}
