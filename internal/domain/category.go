package domain

// Category is the canonical classification used by the recommendation
// tables. Free-form issue types are folded into a Category before lookup.
type Category string

const (
	CategoryAir      Category = "Air"
	CategoryNoise    Category = "Noise"
	CategoryHeat     Category = "Heat"
	CategoryMobility Category = "Cycling / Walking"
	CategoryOdor     Category = "Odor"
	CategoryOther    Category = "Other"
)

// Categories lists every category, Other last
func Categories() []Category {
	return []Category{
		CategoryAir,
		CategoryNoise,
		CategoryHeat,
		CategoryMobility,
		CategoryOdor,
		CategoryOther,
	}
}

// IssueType returns the report form issue type matching the category
func (c Category) IssueType() string {
	switch c {
	case CategoryAir:
		return IssueAirQuality
	case CategoryNoise:
		return IssueNoise
	case CategoryHeat:
		return IssueHeat
	case CategoryMobility:
		return IssueMobility
	case CategoryOdor:
		return IssueOdor
	default:
		return IssueOther
	}
}

// Tier is the severity bucket derived from intensity
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// Authority is the department responsible for a category
type Authority struct {
	Department string `json:"department" yaml:"department"`
	Phone      string `json:"phone" yaml:"phone"`
	Email      string `json:"email" yaml:"email"`
}
