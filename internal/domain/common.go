package domain

type Point struct {
	Lat float64 `json:"lat" db:"lat" yaml:"lat"`
	Lon float64 `json:"lon" db:"lon" yaml:"lon"`
}

type BoundingBox struct {
	MinLat float64 `json:"min_lat" db:"min_lat" yaml:"min_lat"`
	MinLon float64 `json:"min_lon" db:"min_lon" yaml:"min_lon"`
	MaxLat float64 `json:"max_lat" db:"max_lat" yaml:"max_lat"`
	MaxLon float64 `json:"max_lon" db:"max_lon" yaml:"max_lon"`
}

// Contains reports whether p lies inside the box, edges included
func (b BoundingBox) Contains(p Point) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat &&
		p.Lon >= b.MinLon && p.Lon <= b.MaxLon
}

// IsZero reports whether the box was left unset
func (b BoundingBox) IsZero() bool {
	return b == BoundingBox{}
}
