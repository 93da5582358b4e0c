// Package solar sizes a rooftop or canopy PV installation against a
// monthly consumption target.
package solar

import (
	"math"

	"github.com/complaint-map/internal/domain"
	"github.com/complaint-map/internal/pkg/errors"
)

const (
	DefaultYearlyYield = 1200.0
	DefaultPackingPct  = 75.0
	DefaultLossesPct   = 14.0

	minTilt = 5.0
	maxTilt = 60.0
)

// Catalog is the fixed list of panel models, largest first
func Catalog() []domain.PanelType {
	return []domain.PanelType{
		{Name: "400W", PeakW: 400, AreaM2: 2.0},
		{Name: "330W", PeakW: 330, AreaM2: 1.7},
		{Name: "275W", PeakW: 275, AreaM2: 1.6},
		{Name: "200W", PeakW: 200, AreaM2: 1.2},
		{Name: "100W", PeakW: 100, AreaM2: 0.6},
		{Name: "50W", PeakW: 50, AreaM2: 0.3},
	}
}

// SuggestTilt approximates the annual optimum with |lat| kept in [5, 60]
func SuggestTilt(lat float64) float64 {
	return math.Max(minTilt, math.Min(maxTilt, math.Abs(lat)))
}

type PlanInput struct {
	Lat float64
	// UsableArea wins over Length x Width when positive
	UsableArea        float64
	Length            float64
	Width             float64
	PackingPct        float64
	MonthlyTargetKWh  float64
	LossesPct         float64
	YearlyYieldPerKWp float64
}

type PanelOption struct {
	Panel                 domain.PanelType `json:"panel"`
	MaxFit                int              `json:"max_fit"`
	InstalledKWpIfFull    float64          `json:"installed_kwp_if_full"`
	MonthlyProdIfFullKWh  float64          `json:"monthly_prod_if_full_kwh"`
	CoverageIfFullPct     float64          `json:"coverage_if_full_pct"`
	PanelsNeededForTarget int              `json:"panels_needed_for_target"`
	FitsTarget            bool             `json:"fits_target"`
}

type Plan struct {
	EffectiveAreaM2    float64       `json:"effective_area_m2"`
	TiltDeg            float64       `json:"tilt_deg"`
	RequiredKWp        float64       `json:"required_kwp"`
	MonthlyYieldPerKWp float64       `json:"monthly_yield_per_kwp"`
	Options            []PanelOption `json:"options"`
	Best               *PanelOption  `json:"best,omitempty"`
}

// Compute sizes the installation for every catalog panel. The best option is
// the one with the highest coverage when the effective area is filled; the
// earlier catalog entry wins ties.
func Compute(in PlanInput) (*Plan, error) {
	if in.YearlyYieldPerKWp <= 0 {
		return nil, invalid("yearly yield must be greater than zero")
	}
	if in.LossesPct < 0 || in.LossesPct >= 100 {
		return nil, invalid("losses must be in [0, 100)")
	}
	if in.MonthlyTargetKWh < 0 {
		return nil, invalid("monthly target must not be negative")
	}

	area := in.UsableArea
	if area <= 0 {
		area = in.Length * in.Width
	}
	if area <= 0 {
		return nil, invalid("usable area or length and width are required")
	}
	packing := in.PackingPct
	if packing <= 0 {
		packing = DefaultPackingPct
	}

	losses := in.LossesPct / 100
	monthlyPerKWp := in.YearlyYieldPerKWp / 12
	effArea := area * packing / 100
	required := in.MonthlyTargetKWh * 12 / (in.YearlyYieldPerKWp * (1 - losses))

	plan := &Plan{
		EffectiveAreaM2:    round(effArea, 3),
		TiltDeg:            round(SuggestTilt(in.Lat), 1),
		RequiredKWp:        round(required, 3),
		MonthlyYieldPerKWp: round(monthlyPerKWp, 1),
		Options:            make([]PanelOption, 0, len(Catalog())),
	}

	for _, p := range Catalog() {
		maxFit := int(math.Floor(effArea / p.AreaM2))
		installed := float64(maxFit) * p.PeakW / 1000
		prodMonth := installed * monthlyPerKWp * (1 - losses)
		needed := int(math.Ceil(required * 1000 / p.PeakW))

		coverage := 0.0
		if in.MonthlyTargetKWh > 0 {
			coverage = round(prodMonth/in.MonthlyTargetKWh*100, 1)
		}

		plan.Options = append(plan.Options, PanelOption{
			Panel:                 p,
			MaxFit:                maxFit,
			InstalledKWpIfFull:    round(installed, 2),
			MonthlyProdIfFullKWh:  round(prodMonth, 1),
			CoverageIfFullPct:     coverage,
			PanelsNeededForTarget: needed,
			FitsTarget:            needed <= maxFit,
		})
	}

	best := 0
	for i, o := range plan.Options {
		if o.CoverageIfFullPct > plan.Options[best].CoverageIfFullPct {
			best = i
		}
	}
	b := plan.Options[best]
	plan.Best = &b

	return plan, nil
}

type PartialPlan struct {
	Panel          domain.PanelType `json:"panel"`
	Panels         int              `json:"panels"`
	InstalledKWp   float64          `json:"installed_kwp"`
	MonthlyProdKWh float64          `json:"monthly_prod_kwh"`
	CoveragePct    float64          `json:"coverage_pct"`
}

// Partial estimates the production of n panels of one catalog type
func Partial(panel domain.PanelType, n int, yearlyYield, lossesPct, monthlyTarget float64) PartialPlan {
	installed := float64(n) * panel.PeakW / 1000
	prodMonth := installed * yearlyYield * (1 - lossesPct/100) / 12
	coverage := 0.0
	if monthlyTarget > 0 {
		coverage = round(prodMonth/monthlyTarget*100, 1)
	}
	return PartialPlan{
		Panel:          panel,
		Panels:         n,
		InstalledKWp:   round(installed, 3),
		MonthlyProdKWh: round(prodMonth, 2),
		CoveragePct:    coverage,
	}
}

// PanelByName finds a catalog entry
func PanelByName(name string) (domain.PanelType, bool) {
	for _, p := range Catalog() {
		if p.Name == name {
			return p, true
		}
	}
	return domain.PanelType{}, false
}

func invalid(reason string) error {
	return errors.ErrValidation.WithDetails(map[string]interface{}{"reason": reason})
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
