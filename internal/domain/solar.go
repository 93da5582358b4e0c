package domain

// PanelType is one entry of the solar panel catalog
type PanelType struct {
	Name   string  `json:"name"`
	PeakW  float64 `json:"peak_w"`
	AreaM2 float64 `json:"area_m2"`
}
