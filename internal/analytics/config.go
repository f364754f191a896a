package analytics

import (
	"salarydash/pkg/contracts/domain"
)

// DefaultMinSupport is the minimum group size a category must exceed to stay
// in a rendered view.
const DefaultMinSupport = 5

// DimensionLabels maps the human-readable label shown in the dashboard's
// selection control to the canonical field it groups by.
var DimensionLabels = map[string]string{
	"Job title":              domain.FieldJobTitle,
	"Sector":                 domain.FieldSector,
	"Region":                 domain.FieldRegion,
	"Educational background": domain.FieldEducationalBackground,
	"Highest education":      domain.FieldHighestEducation,
	"Gender":                 domain.FieldGender,
	"Danish national":        domain.FieldDanishNational,
	"Number of employees":    domain.FieldNumEmployees,
	"Number of subordinates": domain.FieldNumSubordinates,
	"Received equity":        domain.FieldReceivedEquity,
}

// SentinelValues lists, per dimension, the non-answer categories excluded
// from display. The rows keep these values in the table; only views drop
// them.
var SentinelValues = map[string][]string{
	domain.FieldJobTitle:              {"Other", "Prefer not to say"},
	domain.FieldSector:                {"Other", "Prefer not to say"},
	domain.FieldRegion:                {"Other", "Prefer not to say"},
	domain.FieldEducationalBackground: {"Other", "Prefer not to say"},
	domain.FieldHighestEducation:      {"Other", "Prefer not to say"},
	domain.FieldGender:                {"Other", "Prefer not to say", "no answer"},
	domain.FieldDanishNational:        {"Other", "Prefer not to say"},
	domain.FieldNumEmployees:          {"Other", "Prefer not to say"},
	domain.FieldNumSubordinates:       {"Other", "Prefer not to say"},
	domain.FieldReceivedEquity:        {"Other", "Prefer not to say"},
}

// ManualOrders fixes the display order of the ordinal bucket dimensions.
// A manual order also restricts the view to the listed categories, overriding
// both the median sort and the min-support filter.
var ManualOrders = map[string][]string{
	domain.FieldNumEmployees: {
		"1-10",
		"11-50",
		"51-100",
		"101-500",
		"501-1,000",
		"1,000+",
	},
	domain.FieldNumSubordinates: {
		"0",
		"1-5",
		"6-10",
		"11-20",
		"21-50",
		"50+",
	},
	domain.FieldHighestEducation: {
		"High school (e.g., gymnasium, HF)",
		"Undergraduate (e.g., bachelor, professionsbachelor)",
		"Graduate (e.g., master, candidatus)",
		"PhD",
	},
}

// MedianSortDimensions are ordered by ascending median salary in views.
var MedianSortDimensions = map[string]bool{
	domain.FieldJobTitle:              true,
	domain.FieldSector:                true,
	domain.FieldRegion:                true,
	domain.FieldEducationalBackground: true,
	domain.FieldGender:                true,
	domain.FieldDanishNational:        true,
	domain.FieldReceivedEquity:        true,
}
