// Package recommend maps complaints to remediation actions and to the
// authority in charge. Everything here is a static lookup table.
package recommend

import (
	"strings"

	"github.com/complaint-map/internal/domain"
)

type keywordRule struct {
	category domain.Category
	keywords []string
}

// Rules are tried in order; the first keyword found as a substring of the
// lowercased input wins.
var keywordRules = []keywordRule{
	{domain.CategoryAir, []string{"air", "smoke", "fumée"}},
	{domain.CategoryNoise, []string{"noise", "bruit", "sound", "loud"}},
	{domain.CategoryHeat, []string{"heat", "chaleur", "temperature", "température"}},
	{domain.CategoryOdor, []string{"odor", "odour", "odeur", "smell"}},
	{domain.CategoryMobility, []string{"cycl", "walk", "vélo", "velo", "piéton", "pieton", "pedestrian", "bike"}},
}

// NormalizeCategory folds a free-form issue type into a Category. It never
// fails: unknown or empty input yields CategoryOther.
func NormalizeCategory(raw string) domain.Category {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return domain.CategoryOther
	}
	for _, r := range keywordRules {
		for _, kw := range r.keywords {
			if strings.Contains(v, kw) {
				return r.category
			}
		}
	}
	return domain.CategoryOther
}

// CanonicalIssueType maps legacy or localized issue labels to one of
// domain.IssueTypes.
func CanonicalIssueType(raw string) string {
	if domain.IsKnownIssueType(raw) {
		return raw
	}
	return NormalizeCategory(raw).IssueType()
}
