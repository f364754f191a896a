package domain

import (
	"time"
)

// Canonical field names for the cleaned survey schema. Raw question texts are
// renamed to these during normalization; the aggregation layer addresses
// categorical dimensions by these names.
const (
	FieldTimestamp             = "timestamp"
	FieldSalary                = "salary"
	FieldBonus                 = "bonus"
	FieldReceivedEquity        = "received_equity"
	FieldJobTitle              = "job_title"
	FieldNumEmployees          = "num_employees"
	FieldNumSubordinates       = "num_subordinates"
	FieldSector                = "sector"
	FieldRegion                = "region"
	FieldEducationalBackground = "educational_background"
	FieldHighestEducation      = "highest_education"
	FieldYearsExperience       = "years_experience"
	FieldGender                = "gender"
	FieldDanishNational        = "danish_national"
)

// ToolUsage holds the boolean indicator columns derived from the multi-select
// tools question. A flag is true iff the respondent's semicolon-delimited
// answer contained that tool category's exact descriptive label.
type ToolUsage struct {
	HighLevelLanguage         bool `json:"uses_high_level_language"`
	MidLevelLanguage          bool `json:"uses_mid_level_language"`
	VisualisationTools        bool `json:"uses_visualisation_tools"`
	DeploymentTools           bool `json:"uses_deployment_tools"`
	VersionControl            bool `json:"uses_version_control"`
	Spreadsheets              bool `json:"uses_spreadsheets"`
	QueryLanguages            bool `json:"uses_query_languages"`
	DistributedComputingTools bool `json:"uses_distributed_computing_tools"`
	MonitoringTools           bool `json:"uses_monitoring_tools"`
	AutoMLTools               bool `json:"uses_automl_tools"`
	RPATools                  bool `json:"uses_rpa_tools"`
}

// CleanRecord is one cleaned survey response. Salary and bonus are monthly
// gross DKK; Salary is always > 0 after normalization. Consent is a filter
// during normalization and is never carried as a field.
type CleanRecord struct {
	Timestamp             time.Time `json:"timestamp"`
	Salary                int       `json:"salary" validate:"gt=0"`
	Bonus                 int       `json:"bonus" validate:"gte=0"`
	ReceivedEquity        string    `json:"received_equity"`
	JobTitle              string    `json:"job_title"`
	Tools                 ToolUsage `json:"tools"`
	NumEmployees          string    `json:"num_employees"`
	NumSubordinates       string    `json:"num_subordinates"`
	Sector                string    `json:"sector"`
	Region                string    `json:"region"`
	EducationalBackground string    `json:"educational_background"`
	HighestEducation      string    `json:"highest_education"`
	YearsExperience       int       `json:"years_experience" validate:"gte=0"`
	Gender                string    `json:"gender"`
	DanishNational        string    `json:"danish_national"`
}

// CategoricalValue returns the record's value for a named categorical
// dimension. The second return value is false for unknown or non-categorical
// field names (timestamp and the numeric fields are not dimensions).
func (r CleanRecord) CategoricalValue(field string) (string, bool) {
	switch field {
	case FieldReceivedEquity:
		return r.ReceivedEquity, true
	case FieldJobTitle:
		return r.JobTitle, true
	case FieldNumEmployees:
		return r.NumEmployees, true
	case FieldNumSubordinates:
		return r.NumSubordinates, true
	case FieldSector:
		return r.Sector, true
	case FieldRegion:
		return r.Region, true
	case FieldEducationalBackground:
		return r.EducationalBackground, true
	case FieldHighestEducation:
		return r.HighestEducation, true
	case FieldGender:
		return r.Gender, true
	case FieldDanishNational:
		return r.DanishNational, true
	default:
		return "", false
	}
}
