package dataprocessing

import (
	"salarydash/pkg/contracts/domain"
)

// The survey schema is a closed set of known questions; everything the
// pipeline renames, remaps or repairs lives here as plain lookup tables so
// each transformation stage stays a small parameterized function.

// ConsentQuestion is the exact header text of the consent column.
const ConsentQuestion = "Do you agree to take part in this survey?"

// ConsentAffirmative is the exact answer that enrolls a respondent. Anything
// else, including a missing answer, drops the row.
const ConsentAffirmative = "I am happy to take part in this survey"

// ToolsField is the canonical name of the multi-select tools column before
// it is expanded into indicator columns and dropped.
const ToolsField = "tools"

// FieldRenames maps each known raw question text to its canonical field
// name. Columns not listed here are dropped: the pipeline defines a closed
// schema and unexpected columns are excluded silently.
var FieldRenames = map[string]string{
	"Timestamp": domain.FieldTimestamp,
	"What is your monthly salary in DKK, before tax and including pension?": domain.FieldSalary,
	"How much bonus did you receive last year, in DKK?":                     domain.FieldBonus,
	"Have you received any equity in your company?":                         domain.FieldReceivedEquity,
	"What job title best reflects your daily work?":                         domain.FieldJobTitle,
	"What tools do you use in your daily work?":                             ToolsField,
	"How many people are employed at your work?":                            domain.FieldNumEmployees,
	"How many people are you managing at your work?":                        domain.FieldNumSubordinates,
	"In which sector do you work?":                                          domain.FieldSector,
	"In which Danish region is your office located?":                        domain.FieldRegion,
	"What educational background do you have?":                              domain.FieldEducationalBackground,
	"What is your highest level of education?":                              domain.FieldHighestEducation,
	"How many years of relevant full-time work experience do you have?":     domain.FieldYearsExperience,
	"What is your gender?":                                                  domain.FieldGender,
	"Are you a Danish national/citizen?":                                    domain.FieldDanishNational,
}

// ToolLabels maps each indicator column to the exact descriptive label used
// in the multi-select tools answer. Membership is tested against the full
// label string after splitting on ";". Free-text custom answers outside this
// list are discarded; none of them had more than two respondents.
var ToolLabels = map[string]string{
	"uses_high_level_language":         "High-level programming languages (e.g., Python, R, MATLAB, SAS, Julia, JavaScript)",
	"uses_mid_level_language":          "Mid-level programming languages (e.g., C, C++, C#, Java, Go)",
	"uses_visualisation_tools":         "Advanced visualisation tools (e.g., PowerBI, D3.js, Tableau, Qlik)",
	"uses_deployment_tools":            "Deployment tools (e.g., Docker, AWS SageMaker, Tensorflow Serving, MLflow)",
	"uses_version_control":             "Version control systems (e.g., GitHub, GitLab, BitBucket, Beanstalk)",
	"uses_spreadsheets":                "Spreadsheets (e.g., Excel, Google Sheets)",
	"uses_query_languages":             "Query languages (e.g., SQL, BigQuery)",
	"uses_distributed_computing_tools": "Distributed computing tools (e.g., Kubernetes, Apache Hadoop, Apache Spark, Ray)",
	"uses_monitoring_tools":            "Monitoring tools (e.g., Arize AI, WhyLabs, Grafana, Evidently, Fiddler)",
	"uses_automl_tools":                "AutoML / Low-code / No-code tools (e.g., PyCaret, TPOT, Google AutoML, Azure ML)",
	"uses_rpa_tools":                   "RPA tools (e.g., Zaptest, Eggplant, HelpSystems)",
}

// GenderMap collapses the raw gender variants. Values outside the table pass
// through unchanged.
var GenderMap = map[string]string{
	"Female (including transgender women)":                         "female",
	"Male (including transgender men)":                             "male",
	"Male as defined by the presence of an X- and a Y-chromosome":  "male",
	"Prefer not to say":                                            "no answer",
}

// SalaryRepairs corrects known data-entry errors by exact value match.
// Thousands typed as units are scaled up; clearly annual figures are divided
// by twelve. Only these literal values are ever touched.
var SalaryRepairs = map[int]int{
	56:      56000,
	65:      65000,
	700000:  700000 / 12,
	720000:  720000 / 12,
	1000000: 1000000 / 12,
}

// PharmaSector is the canonical label for any sector answer containing the
// case-insensitive substring "pharma".
const PharmaSector = "Pharmaceuticals"

// SectorMap collapses near-duplicate free-text sector labels.
var SectorMap = map[string]string{
	"University": "Education/Research",
	"Research":   "Education/Research",
	"Trading company (Preowned Medical Equipment)": "Retail/E-commerce",
	"Consumer industries":                          "Retail/E-commerce",
	"Agency":                                       "Consulting",
	"Jobportaler":                                  "Tech",
	"Union":                                        "Law",
}

// EducationalBackgroundMap collapses near-duplicate educational backgrounds.
var EducationalBackgroundMap = map[string]string{
	"Language and NLP":                       "Data Science",
	"Bs in Math, Bs and Ms in Anthropology":  "Maths / Stats",
	"It teknolog":                            "Computer Science",
	"Physics":                                "Natural Sciences",
}

// HighestEducationMap collapses near-duplicate highest-education answers.
var HighestEducationMap = map[string]string{
	"Doing my Master's": "Undergraduate (e.g., bachelor, professionsbachelor)",
	"Dr.scient.":        "PhD",
	"DrMedSc":           "PhD",
}

// TimestampFormats are tried in order against the raw timestamp column.
// The export writes Google-Forms style timestamps; any trailing "GMT+X"
// token is cut before parsing.
var TimestampFormats = []string{
	"2006/01/02 3:04:05 PM",
	"2006/01/02 15:04:05",
	"2006-01-02 15:04:05",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
}

// ApplyRemap returns the remapped value, or the value itself when it is not
// in the table. Remap targets are fixed points of their own mapping, so
// applying a remap twice equals applying it once.
func ApplyRemap(value string, remap map[string]string) string {
	if mapped, ok := remap[value]; ok {
		return mapped
	}
	return value
}
