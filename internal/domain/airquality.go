package domain

import "time"

// Pollutant codes understood by the air quality provider
const (
	PollutantPM25 = "pm25"
	PollutantPM10 = "pm10"
)

// Pollutants returns the supported pollutant codes
func Pollutants() []string {
	return []string{PollutantPM25, PollutantPM10}
}

// Measurement is the latest reading of one station
type Measurement struct {
	StationID int64     `json:"station_id"`
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	Value     float64   `json:"value"`
	Unit      string    `json:"unit,omitempty"`
	Measured  time.Time `json:"measured_at,omitempty"`
}
