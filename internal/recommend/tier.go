package recommend

import "github.com/complaint-map/internal/domain"

// TierOf buckets an intensity: 1-2 low, 3 medium, 4-5 high
func TierOf(intensity int) domain.Tier {
	switch {
	case intensity <= 2:
		return domain.TierLow
	case intensity == 3:
		return domain.TierMedium
	default:
		return domain.TierHigh
	}
}
