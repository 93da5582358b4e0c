package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/complaint-map/internal/domain"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		raw  string
		want domain.Category
	}{
		{"BRUIT", domain.CategoryNoise},
		{"xyz", domain.CategoryOther},
		{"", domain.CategoryOther},
		{"   ", domain.CategoryOther},
		{"Air quality", domain.CategoryAir},
		{"air", domain.CategoryAir},
		{"Noise", domain.CategoryNoise},
		{"chaleur", domain.CategoryHeat},
		{"Heat", domain.CategoryHeat},
		{"Odour", domain.CategoryOdor},
		{"odeur", domain.CategoryOdor},
		{"Odor", domain.CategoryOdor},
		{"Cycling / Walking", domain.CategoryMobility},
		{"Vélo", domain.CategoryMobility},
		{"Other", domain.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := NormalizeCategory(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, got)
		})
	}
}

func TestCanonicalIssueType(t *testing.T) {
	assert.Equal(t, domain.IssueNoise, CanonicalIssueType("bruit"))
	assert.Equal(t, domain.IssueAirQuality, CanonicalIssueType("Air"))
	assert.Equal(t, domain.IssueMobility, CanonicalIssueType(domain.IssueMobility))
	assert.Equal(t, domain.IssueOther, CanonicalIssueType("graffiti"))
}

func TestTierOf(t *testing.T) {
	assert.Equal(t, domain.TierLow, TierOf(1))
	assert.Equal(t, domain.TierLow, TierOf(2))
	assert.Equal(t, domain.TierMedium, TierOf(3))
	assert.Equal(t, domain.TierHigh, TierOf(4))
	assert.Equal(t, domain.TierHigh, TierOf(5))
}

func TestTableIsComplete(t *testing.T) {
	for _, c := range domain.Categories() {
		for _, tier := range []domain.Tier{domain.TierLow, domain.TierMedium, domain.TierHigh} {
			assert.NotEmpty(t, actions[c][tier], "%s/%s", c, tier)
		}
		_, ok := defaultAuthorities[c]
		assert.True(t, ok, "no default authority for %s", c)
	}
}

func TestRecommend_Rotation(t *testing.T) {
	list := Actions(domain.CategoryAir, 5)
	assert.Len(t, list, 3)

	for variant := -7; variant < 10; variant++ {
		got := Recommend(domain.CategoryAir, 5, variant)
		want := list[((variant%3)+3)%3]
		assert.Equal(t, want, got, "variant %d", variant)
	}

	assert.Equal(t, Recommend(domain.CategoryAir, 5, 0), Recommend(domain.CategoryAir, 5, 3))
}

func TestRecommend_TierSelectsList(t *testing.T) {
	low := Recommend(domain.CategoryNoise, 1, 0)
	mid := Recommend(domain.CategoryNoise, 3, 0)
	high := Recommend(domain.CategoryNoise, 5, 0)

	assert.Equal(t, "Increase monitoring of noise levels and enforce regulations.", low)
	assert.Equal(t, "Install noise barriers along major roads.", high)
	assert.NotEqual(t, low, mid)
	assert.NotEqual(t, mid, high)
}

func TestRecommend_UnknownCategory(t *testing.T) {
	got := Recommend(domain.Category("Litter"), 4, 0)
	assert.Equal(t, "Further monitoring and assessment are recommended.", got)
}

func TestActions_ReturnsCopy(t *testing.T) {
	list := Actions(domain.CategoryHeat, 1)
	list[0] = "changed"
	assert.NotEqual(t, "changed", Actions(domain.CategoryHeat, 1)[0])
}

func TestDirectory_AuthorityFor(t *testing.T) {
	d := NewDirectory(map[domain.Category]domain.Authority{
		domain.CategoryNoise: {Department: "Night noise brigade", Email: "night@example.org"},
		domain.CategoryHeat:  {},
	})

	assert.Equal(t, "Night noise brigade", d.AuthorityFor(domain.CategoryNoise).Department)
	assert.Equal(t, defaultAuthorities[domain.CategoryHeat], d.AuthorityFor(domain.CategoryHeat))
	assert.Equal(t, defaultAuthorities[domain.CategoryOther], d.AuthorityFor(domain.Category("unknown")))

	for _, c := range domain.Categories() {
		a := d.AuthorityFor(NormalizeCategory(string(c)))
		assert.NotEmpty(t, a.Department)
		assert.NotEmpty(t, a.Email)
	}
}

func TestDirectory_NilOverrides(t *testing.T) {
	d := NewDirectory(nil)
	assert.Equal(t, defaultAuthorities[domain.CategoryAir], d.AuthorityFor(domain.CategoryAir))
}
