package dataprocessing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salarydash/internal/errors"
)

// Header order for generated fixtures.
var fixtureQuestions = []string{
	ConsentQuestion,
	"Timestamp",
	"What is your monthly salary in DKK, before tax and including pension?",
	"How much bonus did you receive last year, in DKK?",
	"Have you received any equity in your company?",
	"What job title best reflects your daily work?",
	"What tools do you use in your daily work?",
	"How many people are employed at your work?",
	"How many people are you managing at your work?",
	"In which sector do you work?",
	"In which Danish region is your office located?",
	"What educational background do you have?",
	"What is your highest level of education?",
	"How many years of relevant full-time work experience do you have?",
	"What is your gender?",
	"Are you a Danish national/citizen?",
}

// fixtureRow returns a complete valid answer row with the given overrides,
// keyed by question text.
func fixtureRow(overrides map[string]string) []string {
	answers := map[string]string{
		ConsentQuestion: ConsentAffirmative,
		"Timestamp":     "2022/03/08 9:21:44 AM GMT+1",
		"What is your monthly salary in DKK, before tax and including pension?": "45000",
		"How much bonus did you receive last year, in DKK?":                     "0",
		"Have you received any equity in your company?":                         "No",
		"What job title best reflects your daily work?":                         "Data Scientist",
		"What tools do you use in your daily work?":                             "Query languages (e.g., SQL, BigQuery)",
		"How many people are employed at your work?":                            "51-100",
		"How many people are you managing at your work?":                        "0",
		"In which sector do you work?":                                          "Tech",
		"In which Danish region is your office located?":                        "Region Hovedstaden",
		"What educational background do you have?":                              "Computer Science",
		"What is your highest level of education?":                              "PhD",
		"How many years of relevant full-time work experience do you have?":     "5 years",
		"What is your gender?":                                                  "Female (including transgender women)",
		"Are you a Danish national/citizen?":                                    "Yes",
	}
	for q, v := range overrides {
		answers[q] = v
	}

	row := make([]string, len(fixtureQuestions))
	for i, q := range fixtureQuestions {
		row[i] = answers[q]
	}
	return row
}

func normalizeRows(t *testing.T, rows ...[]string) (*Normalizer, string) {
	t.Helper()
	all := append([][]string{fixtureQuestions}, rows...)
	path := writeCSVFile(t, all, false)
	return NewNormalizer(nil, DefaultNormalizerConfig()), path
}

func TestNormalize_EndToEndScenario(t *testing.T) {
	// 10 raw rows: 2 dissenting, 1 zero salary, 1 with the literal 65.
	rows := [][]string{
		fixtureRow(nil),
		fixtureRow(map[string]string{ConsentQuestion: "No thanks"}),
		fixtureRow(map[string]string{"What is your monthly salary in DKK, before tax and including pension?": "65"}),
		fixtureRow(nil),
		fixtureRow(map[string]string{ConsentQuestion: ""}),
		fixtureRow(map[string]string{"What is your monthly salary in DKK, before tax and including pension?": "0"}),
		fixtureRow(nil),
		fixtureRow(nil),
		fixtureRow(nil),
		fixtureRow(nil),
	}
	normalizer, path := normalizeRows(t, rows...)

	table, err := normalizer.Normalize(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 7, table.Len())

	repaired := 0
	for _, r := range table.Records() {
		assert.Greater(t, r.Salary, 0, "salary positivity invariant")
		if r.Salary == 65000 {
			repaired++
		}
	}
	assert.Equal(t, 1, repaired, "the literal 65 becomes 65000")
}

func TestNormalize_ConsentInvariant(t *testing.T) {
	normalizer, path := normalizeRows(t,
		fixtureRow(nil),
		fixtureRow(map[string]string{ConsentQuestion: "I do not wish to participate"}),
		fixtureRow(map[string]string{ConsentQuestion: ""}),
	)

	table, err := normalizer.Normalize(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
}

func TestNormalize_SalaryRepairs(t *testing.T) {
	salaryQ := "What is your monthly salary in DKK, before tax and including pension?"
	normalizer, path := normalizeRows(t,
		fixtureRow(map[string]string{salaryQ: "56"}),
		fixtureRow(map[string]string{salaryQ: "700000"}),
		fixtureRow(map[string]string{salaryQ: "45000"}),
	)

	table, err := normalizer.Normalize(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())

	assert.Equal(t, 56000, table.At(0).Salary)
	assert.Equal(t, 58333, table.At(1).Salary, "annual 700000 becomes 700000/12")
	assert.Equal(t, 45000, table.At(2).Salary, "values outside the repair table pass through")
}

func TestNormalize_ToolIndicators(t *testing.T) {
	toolsQ := "What tools do you use in your daily work?"
	normalizer, path := normalizeRows(t, fixtureRow(map[string]string{
		toolsQ: "Query languages (e.g., SQL, BigQuery);Spreadsheets (e.g., Excel, Google Sheets)",
	}))

	table, err := normalizer.Normalize(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())

	tools := table.At(0).Tools
	assert.True(t, tools.QueryLanguages)
	assert.True(t, tools.Spreadsheets)
	assert.False(t, tools.HighLevelLanguage)
	assert.False(t, tools.MidLevelLanguage)
	assert.False(t, tools.VisualisationTools)
	assert.False(t, tools.DeploymentTools)
	assert.False(t, tools.VersionControl)
	assert.False(t, tools.DistributedComputingTools)
	assert.False(t, tools.MonitoringTools)
	assert.False(t, tools.AutoMLTools)
	assert.False(t, tools.RPATools)
}

func TestNormalize_ExperienceParsing(t *testing.T) {
	expQ := "How many years of relevant full-time work experience do you have?"
	normalizer, path := normalizeRows(t,
		fixtureRow(map[string]string{expQ: "5 years"}),
		fixtureRow(map[string]string{expQ: "Less than a year"}),
		fixtureRow(map[string]string{expQ: "15+ years"}),
		fixtureRow(map[string]string{expQ: ""}),
	)

	table, err := normalizer.Normalize(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 4, table.Len())

	assert.Equal(t, 5, table.At(0).YearsExperience)
	assert.Equal(t, 0, table.At(1).YearsExperience)
	assert.Equal(t, 15, table.At(2).YearsExperience)
	assert.Equal(t, 0, table.At(3).YearsExperience)
}

func TestNormalize_GenderRemap(t *testing.T) {
	genderQ := "What is your gender?"
	normalizer, path := normalizeRows(t,
		fixtureRow(map[string]string{genderQ: "Female (including transgender women)"}),
		fixtureRow(map[string]string{genderQ: "Male as defined by the presence of an X- and a Y-chromosome"}),
		fixtureRow(map[string]string{genderQ: "Prefer not to say"}),
		fixtureRow(map[string]string{genderQ: "Non-binary"}),
	)

	table, err := normalizer.Normalize(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 4, table.Len())

	assert.Equal(t, "female", table.At(0).Gender)
	assert.Equal(t, "male", table.At(1).Gender)
	assert.Equal(t, "no answer", table.At(2).Gender)
	assert.Equal(t, "Non-binary", table.At(3).Gender, "unlisted values pass through unchanged")
}

func TestNormalize_SectorMerges(t *testing.T) {
	sectorQ := "In which sector do you work?"
	normalizer, path := normalizeRows(t,
		fixtureRow(map[string]string{sectorQ: "Big Pharma Company"}),
		fixtureRow(map[string]string{sectorQ: "PHARMACEUTICALS"}),
		fixtureRow(map[string]string{sectorQ: "University"}),
		fixtureRow(map[string]string{sectorQ: "Union"}),
		fixtureRow(map[string]string{sectorQ: "Finance"}),
	)

	table, err := normalizer.Normalize(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 5, table.Len())

	assert.Equal(t, "Pharmaceuticals", table.At(0).Sector)
	assert.Equal(t, "Pharmaceuticals", table.At(1).Sector)
	assert.Equal(t, "Education/Research", table.At(2).Sector)
	assert.Equal(t, "Law", table.At(3).Sector)
	assert.Equal(t, "Finance", table.At(4).Sector)
}

func TestNormalize_EducationMerges(t *testing.T) {
	backgroundQ := "What educational background do you have?"
	highestQ := "What is your highest level of education?"
	normalizer, path := normalizeRows(t,
		fixtureRow(map[string]string{backgroundQ: "Physics", highestQ: "Dr.scient."}),
		fixtureRow(map[string]string{backgroundQ: "Language and NLP", highestQ: "Doing my Master's"}),
	)

	table, err := normalizer.Normalize(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	assert.Equal(t, "Natural Sciences", table.At(0).EducationalBackground)
	assert.Equal(t, "PhD", table.At(0).HighestEducation)
	assert.Equal(t, "Data Science", table.At(1).EducationalBackground)
	assert.Equal(t, "Undergraduate (e.g., bachelor, professionsbachelor)", table.At(1).HighestEducation)
}

func TestNormalize_Timestamp(t *testing.T) {
	normalizer, path := normalizeRows(t, fixtureRow(nil))

	table, err := normalizer.Normalize(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())

	want := time.Date(2022, 3, 8, 9, 21, 44, 0, time.UTC)
	assert.Equal(t, want, table.At(0).Timestamp)
}

func TestNormalize_UnparseableTimestampFailsRun(t *testing.T) {
	normalizer, path := normalizeRows(t,
		fixtureRow(nil),
		fixtureRow(map[string]string{"Timestamp": "yesterday-ish"}),
	)

	_, err := normalizer.Normalize(context.Background(), path)
	require.Error(t, err)
	assert.True(t, errors.IsMalformedInput(err), "no row-level skip for timestamps")
}

func TestNormalize_UnparseableSalaryFailsRun(t *testing.T) {
	salaryQ := "What is your monthly salary in DKK, before tax and including pension?"
	normalizer, path := normalizeRows(t,
		fixtureRow(map[string]string{salaryQ: "fifty grand"}),
	)

	_, err := normalizer.Normalize(context.Background(), path)
	require.Error(t, err)
	assert.True(t, errors.IsMalformedInput(err))
}

func TestNormalize_MissingConsentColumnFailsRun(t *testing.T) {
	path := writeCSVFile(t, [][]string{
		{"Timestamp", "What is your gender?"},
		{"2022/03/08 9:21:44 AM GMT+1", "female"},
	}, false)
	normalizer := NewNormalizer(nil, DefaultNormalizerConfig())

	_, err := normalizer.Normalize(context.Background(), path)
	require.Error(t, err)
	assert.True(t, errors.IsMalformedInput(err))
}

func TestNormalize_Deterministic(t *testing.T) {
	normalizer, path := normalizeRows(t,
		fixtureRow(nil),
		fixtureRow(map[string]string{"In which sector do you work?": "pharma startup"}),
	)

	first, err := normalizer.Normalize(context.Background(), path)
	require.NoError(t, err)
	second, err := normalizer.Normalize(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, first.Records(), second.Records())
}

func TestExpandMultiSelect(t *testing.T) {
	labels := map[string]string{
		"uses_query_languages": "Query languages (e.g., SQL, BigQuery)",
		"uses_spreadsheets":    "Spreadsheets (e.g., Excel, Google Sheets)",
	}

	tests := []struct {
		name string
		raw  string
		want map[string]bool
	}{
		{
			name: "both present",
			raw:  "Query languages (e.g., SQL, BigQuery);Spreadsheets (e.g., Excel, Google Sheets)",
			want: map[string]bool{"uses_query_languages": true, "uses_spreadsheets": true},
		},
		{
			name: "custom answers discarded",
			raw:  "Query languages (e.g., SQL, BigQuery);My own shell scripts",
			want: map[string]bool{"uses_query_languages": true, "uses_spreadsheets": false},
		},
		{
			name: "partial label is not a match",
			raw:  "Query languages",
			want: map[string]bool{"uses_query_languages": false, "uses_spreadsheets": false},
		},
		{
			name: "empty answer",
			raw:  "",
			want: map[string]bool{"uses_query_languages": false, "uses_spreadsheets": false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandMultiSelect(tt.raw, labels))
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"45000", 45000, false},
		{" 45000 ", 45000, false},
		{"45000.0", 45000, false},
		{"", 0, false},
		{"-2000", -2000, false},
		{"fifty", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseAmount(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
