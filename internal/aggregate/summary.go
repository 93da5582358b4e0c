package aggregate

import (
	"math"
	"sort"

	"github.com/complaint-map/internal/domain"
)

// TypeSummary aggregates the complaints of one issue type
type TypeSummary struct {
	IssueType     string  `json:"issue_type"`
	Count         int     `json:"count"`
	MeanIntensity float64 `json:"mean_intensity"`
	Percentage    float64 `json:"percentage"`
}

// SummarizeByType returns count, mean intensity and share (percent, one
// decimal) per issue type, most frequent first, ties by name.
func SummarizeByType(cs []domain.Complaint) []TypeSummary {
	type acc struct {
		count int
		sum   int
	}
	byType := make(map[string]*acc)
	for _, c := range cs {
		a, ok := byType[c.IssueType]
		if !ok {
			a = &acc{}
			byType[c.IssueType] = a
		}
		a.count++
		a.sum += c.Intensity
	}

	out := make([]TypeSummary, 0, len(byType))
	total := float64(len(cs))
	for t, a := range byType {
		out = append(out, TypeSummary{
			IssueType:     t,
			Count:         a.count,
			MeanIntensity: float64(a.sum) / float64(a.count),
			Percentage:    round1(float64(a.count) / total * 100),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].IssueType < out[j].IssueType
	})
	return out
}

// NormalizeValues rescales vs into [0,1] with (v-min)/(max-min). When every
// value is equal each one maps to 1.0.
func NormalizeValues(vs []float64) []float64 {
	out := make([]float64, len(vs))
	if len(vs) == 0 {
		return out
	}

	min, max := vs[0], vs[0]
	for _, v := range vs[1:] {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}

	for i, v := range vs {
		if max == min {
			out[i] = 1.0
			continue
		}
		out[i] = (v - min) / (max - min)
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func sortStrings(s []string) {
	sort.Strings(s)
}
