package aggregate

import (
	"fmt"

	"github.com/complaint-map/internal/domain"
)

// Granularity of a time bucket
type Granularity string

const (
	Day   Granularity = "day"
	Month Granularity = "month"
	Year  Granularity = "year"
)

// ParseGranularity accepts day, month or year
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case Day, Month, Year:
		return Granularity(s), nil
	default:
		return "", fmt.Errorf("unknown granularity %q", s)
	}
}

// Bucket is the number of complaints falling into one period value
// (day of month 1-31, month 1-12 or calendar year).
type Bucket struct {
	Period int `json:"period"`
	Count  int `json:"count"`
}

// BucketByPeriod counts complaints per period. Day yields 31 buckets and
// Month 12, whatever the input. Year yields every year from the earliest to
// the latest present, so gaps show up as zero and empty input gives none.
func BucketByPeriod(cs []domain.Complaint, g Granularity) []Bucket {
	switch g {
	case Day:
		return fixedBuckets(cs, 31, func(c domain.Complaint) int { return c.Timestamp.Day() })
	case Month:
		return fixedBuckets(cs, 12, func(c domain.Complaint) int { return int(c.Timestamp.Month()) })
	case Year:
		return yearBuckets(cs)
	default:
		return []Bucket{}
	}
}

func fixedBuckets(cs []domain.Complaint, n int, period func(domain.Complaint) int) []Bucket {
	out := make([]Bucket, n)
	for i := range out {
		out[i].Period = i + 1
	}
	for _, c := range cs {
		p := period(c)
		if p >= 1 && p <= n {
			out[p-1].Count++
		}
	}
	return out
}

func yearBuckets(cs []domain.Complaint) []Bucket {
	if len(cs) == 0 {
		return []Bucket{}
	}

	minY, maxY := cs[0].Timestamp.Year(), cs[0].Timestamp.Year()
	for _, c := range cs[1:] {
		y := c.Timestamp.Year()
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}

	out := make([]Bucket, maxY-minY+1)
	for i := range out {
		out[i].Period = minY + i
	}
	for _, c := range cs {
		out[c.Timestamp.Year()-minY].Count++
	}
	return out
}

// LastEvenYears keeps the last n buckets whose year is even, oldest first.
// This is the statistics page "last 5 even years" window.
func LastEvenYears(years []Bucket, n int) []Bucket {
	even := make([]Bucket, 0, len(years))
	for _, b := range years {
		if b.Period%2 == 0 {
			even = append(even, b)
		}
	}
	if n >= 0 && len(even) > n {
		even = even[len(even)-n:]
	}
	return even
}

// IntensityDistribution counts complaints per intensity 1..5
func IntensityDistribution(cs []domain.Complaint) []Bucket {
	return fixedBuckets(cs, domain.MaxIntensity, func(c domain.Complaint) int { return c.Intensity })
}
