package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampIntensity(t *testing.T) {
	tests := []struct {
		name     string
		in       int
		expected int
	}{
		{name: "missing value defaults to 1", in: 0, expected: 1},
		{name: "negative value defaults to 1", in: -3, expected: 1},
		{name: "lower bound kept", in: 1, expected: 1},
		{name: "middle value kept", in: 3, expected: 3},
		{name: "upper bound kept", in: 5, expected: 5},
		{name: "above range capped", in: 9, expected: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClampIntensity(tt.in))
		})
	}
}

func TestNewComplaint_Sanitized(t *testing.T) {
	blank := "   "
	desc := "  loud traffic "

	got := NewComplaint{
		IssueType:   "  ",
		Intensity:   0,
		Lat:         17.40,
		Lon:         78.48,
		Description: &desc,
		PhotoPath:   &blank,
	}.Sanitized()

	assert.Equal(t, IssueOther, got.IssueType)
	assert.Equal(t, 1, got.Intensity)
	if assert.NotNil(t, got.Description) {
		assert.Equal(t, "loud traffic", *got.Description)
	}
	assert.Nil(t, got.PhotoPath)
	assert.Equal(t, "  loud traffic ", desc, "input must not be modified")
}

func TestBoundingBox_Contains(t *testing.T) {
	lyon := BoundingBox{MinLat: 45.6, MaxLat: 45.9, MinLon: 4.7, MaxLon: 5.1}

	tests := []struct {
		name     string
		point    Point
		expected bool
	}{
		{name: "city center", point: Point{Lat: 45.76, Lon: 4.85}, expected: true},
		{name: "edge is inside", point: Point{Lat: 45.6, Lon: 5.1}, expected: true},
		{name: "south of box", point: Point{Lat: 45.5, Lon: 4.85}, expected: false},
		{name: "east of box", point: Point{Lat: 45.76, Lon: 5.2}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, lyon.Contains(tt.point))
		})
	}

	assert.True(t, BoundingBox{}.IsZero())
	assert.False(t, lyon.IsZero())
}

func TestCategory_IssueType(t *testing.T) {
	for _, c := range Categories() {
		assert.True(t, IsKnownIssueType(c.IssueType()), "category %q", c)
	}
	assert.Equal(t, IssueAirQuality, CategoryAir.IssueType())
	assert.Equal(t, IssueOther, Category("unknown").IssueType())
}

func TestCityProfile_ColorFor(t *testing.T) {
	p := CityProfile{Colors: map[string]string{IssueNoise: "#5c7cfa"}}

	assert.Equal(t, "#5c7cfa", p.ColorFor(IssueNoise, "#000000"))
	assert.Equal(t, "#000000", p.ColorFor(IssueHeat, "#000000"))
}
