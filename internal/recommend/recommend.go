package recommend

import "github.com/complaint-map/internal/domain"

// Actions returns the ordered action list for the category and the tier of
// intensity. Unknown categories use CategoryOther. The slice is a copy.
func Actions(category domain.Category, intensity int) []string {
	byTier, ok := actions[category]
	if !ok {
		byTier = actions[domain.CategoryOther]
	}
	list := byTier[TierOf(intensity)]
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// Recommend picks one phrasing from Actions by variant modulo the list
// length. The variant only rotates wording so that neighbouring markers do
// not repeat the same text; it carries no priority.
func Recommend(category domain.Category, intensity, variant int) string {
	byTier, ok := actions[category]
	if !ok {
		byTier = actions[domain.CategoryOther]
	}
	list := byTier[TierOf(intensity)]
	i := variant % len(list)
	if i < 0 {
		i += len(list)
	}
	return list[i]
}

// Directory resolves the authority in charge of a category
type Directory struct {
	authorities map[domain.Category]domain.Authority
}

// NewDirectory layers overrides (usually a city profile) on top of the
// built-in contacts. Overrides with an empty department are ignored.
func NewDirectory(overrides map[domain.Category]domain.Authority) *Directory {
	m := make(map[domain.Category]domain.Authority, len(defaultAuthorities))
	for c, a := range defaultAuthorities {
		m[c] = a
	}
	for c, a := range overrides {
		if a.Department == "" {
			continue
		}
		m[c] = a
	}
	return &Directory{authorities: m}
}

// AuthorityFor always returns a record; unknown categories get Other's
func (d *Directory) AuthorityFor(category domain.Category) domain.Authority {
	if a, ok := d.authorities[category]; ok {
		return a
	}
	return d.authorities[domain.CategoryOther]
}
