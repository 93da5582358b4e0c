package recommend

import "github.com/complaint-map/internal/domain"

type tierActions map[domain.Tier][]string

// actions holds the canned remediation phrasings per category and tier.
// Every list is non-empty.
var actions = map[domain.Category]tierActions{
	domain.CategoryAir: {
		domain.TierLow: {
			"Monitor air quality regularly and inform residents about pollution levels.",
			"Encourage reduced car usage and promote public transport or cycling.",
		},
		domain.TierMedium: {
			"Install additional air quality sensors near the reported area.",
			"Publish daily pollution alerts and advise sensitive groups to limit outdoor activity.",
		},
		domain.TierHigh: {
			"Restrict high-emission vehicles in the affected area during peak hours.",
			"Create urban green buffers to help absorb air pollutants.",
			"Introduce low-emission or electric-vehicle priority zones.",
		},
	},
	domain.CategoryNoise: {
		domain.TierLow: {
			"Increase monitoring of noise levels and enforce regulations.",
			"Raise public awareness about noise pollution.",
		},
		domain.TierMedium: {
			"Run targeted noise measurements at night and on weekends.",
			"Review delivery and construction schedules in the neighbourhood.",
		},
		domain.TierHigh: {
			"Install noise barriers along major roads.",
			"Restrict heavy vehicle traffic during night hours.",
			"Implement traffic calming and speed limits.",
		},
	},
	domain.CategoryHeat: {
		domain.TierLow: {
			"Increase tree planting and shaded areas to reduce heat exposure.",
			"Install shaded public seating and pedestrian shelters.",
		},
		domain.TierMedium: {
			"Add drinking fountains and misting points in public spaces.",
			"Open cooled public buildings during heat waves.",
		},
		domain.TierHigh: {
			"Apply cool-roof technologies to reduce temperatures.",
			"Use heat-reflective materials on roads and pavements.",
			"Redesign public spaces to improve airflow.",
		},
	},
	domain.CategoryMobility: {
		domain.TierLow: {
			"Repaint worn cycle lanes and pedestrian crossings.",
			"Add signage for cyclists and pedestrians.",
		},
		domain.TierMedium: {
			"Fix damaged pavements and remove obstacles from footpaths.",
			"Add secure bike parking near the reported location.",
		},
		domain.TierHigh: {
			"Build a protected cycle lane separated from motor traffic.",
			"Widen sidewalks and add raised pedestrian crossings.",
			"Reduce the speed limit to 30 km/h on the street.",
		},
	},
	domain.CategoryOdor: {
		domain.TierLow: {
			"Inspect sanitation and waste collection practices.",
			"Ensure regular cleaning and maintenance.",
		},
		domain.TierMedium: {
			"Increase waste collection frequency in the area.",
			"Inspect nearby drains and sewer outlets.",
		},
		domain.TierHigh: {
			"Improve waste management systems.",
			"Install odor treatment systems near the source.",
		},
	},
	domain.CategoryOther: {
		domain.TierLow:    {"Further monitoring and assessment are recommended."},
		domain.TierMedium: {"Further monitoring and assessment are recommended."},
		domain.TierHigh: {
			"Further monitoring and assessment are recommended.",
			"Forward the report to the citizen services desk for follow-up.",
		},
	},
}

// defaultAuthorities are used for categories a city profile leaves out
var defaultAuthorities = map[domain.Category]domain.Authority{
	domain.CategoryAir: {
		Department: "Environmental Protection Department",
		Phone:      "+00 000 000 001",
		Email:      "air@city.example.org",
	},
	domain.CategoryNoise: {
		Department: "Noise Control Office",
		Phone:      "+00 000 000 002",
		Email:      "noise@city.example.org",
	},
	domain.CategoryHeat: {
		Department: "Urban Greening and Climate Department",
		Phone:      "+00 000 000 003",
		Email:      "heat@city.example.org",
	},
	domain.CategoryMobility: {
		Department: "Mobility and Roads Department",
		Phone:      "+00 000 000 004",
		Email:      "mobility@city.example.org",
	},
	domain.CategoryOdor: {
		Department: "Sanitation and Waste Department",
		Phone:      "+00 000 000 005",
		Email:      "sanitation@city.example.org",
	},
	domain.CategoryOther: {
		Department: "Citizen Services",
		Phone:      "+00 000 000 000",
		Email:      "contact@city.example.org",
	},
}
