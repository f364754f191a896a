package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"salarydash/internal/errors"
	"salarydash/pkg/contracts/domain"
)

// Normalizer runs the ordered transformation pipeline from raw records to a
// CleanTable. Every rename, remap and repair is driven by a lookup table in
// its config; the stages themselves contain no schema knowledge.
type Normalizer struct {
	logger *slog.Logger
	config NormalizerConfig
}

// NormalizerConfig holds the lookup tables the pipeline stages are
// parameterized by. DefaultNormalizerConfig wires the fixed survey schema.
type NormalizerConfig struct {
	ConsentQuestion          string
	ConsentAnswer            string
	FieldRenames             map[string]string
	ToolLabels               map[string]string
	GenderMap                map[string]string
	SalaryRepairs            map[int]int
	PharmaSector             string
	SectorMap                map[string]string
	EducationalBackgroundMap map[string]string
	HighestEducationMap      map[string]string
	TimestampFormats         []string
}

// DefaultNormalizerConfig returns the pipeline configuration for the current
// survey's schema.
func DefaultNormalizerConfig() NormalizerConfig {
	return NormalizerConfig{
		ConsentQuestion:          ConsentQuestion,
		ConsentAnswer:            ConsentAffirmative,
		FieldRenames:             FieldRenames,
		ToolLabels:               ToolLabels,
		GenderMap:                GenderMap,
		SalaryRepairs:            SalaryRepairs,
		PharmaSector:             PharmaSector,
		SectorMap:                SectorMap,
		EducationalBackgroundMap: EducationalBackgroundMap,
		HighestEducationMap:      HighestEducationMap,
		TimestampFormats:         TimestampFormats,
	}
}

// NewNormalizer creates a normalizer with the given configuration.
func NewNormalizer(logger *slog.Logger, config NormalizerConfig) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{logger: logger, config: config}
}

// Normalize reads the export at path and produces the clean table. The run is
// deterministic for identical input. Structural and type failures abort the
// whole run as MalformedInput; dissenting-consent and non-positive-salary
// rows are dropped by design.
func (n *Normalizer) Normalize(ctx context.Context, path string) (*domain.CleanTable, error) {
	raw, err := ParseFile(path)
	if err != nil {
		return nil, err
	}

	var dissenting, nonPositive int
	rows := make([]domain.CleanRecord, 0, len(raw))

	for i, record := range raw {
		consent, ok := record[n.config.ConsentQuestion]
		if !ok {
			return nil, errors.NewMalformedInputError("consent column missing from export", nil).
				WithContext("row", i)
		}
		if consent != n.config.ConsentAnswer {
			dissenting++
			continue
		}

		// Rename to canonical fields; unmapped columns simply never make it
		// past this point, and the consent answer is not carried either.
		renamed := make(map[string]string, len(n.config.FieldRenames))
		for question, field := range n.config.FieldRenames {
			renamed[field] = record[question]
		}

		timestamp, err := parseTimestamp(renamed[domain.FieldTimestamp], n.config.TimestampFormats)
		if err != nil {
			return nil, errors.NewMalformedInputError("unparseable timestamp", err).
				WithContext("row", i).
				WithContext("value", renamed[domain.FieldTimestamp])
		}

		salary, err := parseAmount(renamed[domain.FieldSalary])
		if err != nil {
			return nil, errors.NewMalformedInputError("unparseable salary", err).
				WithContext("row", i).
				WithContext("value", renamed[domain.FieldSalary])
		}

		bonus, err := parseAmount(renamed[domain.FieldBonus])
		if err != nil {
			return nil, errors.NewMalformedInputError("unparseable bonus", err).
				WithContext("row", i).
				WithContext("value", renamed[domain.FieldBonus])
		}

		// Zero, negative and missing salaries are dropped before the repair
		// table is consulted.
		if salary <= 0 {
			nonPositive++
			continue
		}
		if repaired, ok := n.config.SalaryRepairs[salary]; ok {
			salary = repaired
		}

		sector := renamed[domain.FieldSector]
		if strings.Contains(strings.ToLower(sector), "pharma") {
			sector = n.config.PharmaSector
		}
		sector = ApplyRemap(sector, n.config.SectorMap)

		rows = append(rows, domain.CleanRecord{
			Timestamp:             timestamp,
			Salary:                salary,
			Bonus:                 bonus,
			ReceivedEquity:        renamed[domain.FieldReceivedEquity],
			JobTitle:              renamed[domain.FieldJobTitle],
			Tools:                 toolUsageFromFlags(ExpandMultiSelect(renamed[ToolsField], n.config.ToolLabels)),
			NumEmployees:          renamed[domain.FieldNumEmployees],
			NumSubordinates:       renamed[domain.FieldNumSubordinates],
			Sector:                sector,
			Region:                renamed[domain.FieldRegion],
			EducationalBackground: ApplyRemap(renamed[domain.FieldEducationalBackground], n.config.EducationalBackgroundMap),
			HighestEducation:      ApplyRemap(renamed[domain.FieldHighestEducation], n.config.HighestEducationMap),
			YearsExperience:       parseExperience(renamed[domain.FieldYearsExperience]),
			Gender:                ApplyRemap(renamed[domain.FieldGender], n.config.GenderMap),
			DanishNational:        renamed[domain.FieldDanishNational],
		})
	}

	n.logger.InfoContext(ctx, "survey export normalized",
		slog.String("path", path),
		slog.Int("raw_rows", len(raw)),
		slog.Int("dissenting", dissenting),
		slog.Int("non_positive_salary", nonPositive),
		slog.Int("clean_rows", len(rows)))

	return domain.NewCleanTable(rows), nil
}

// ExpandMultiSelect splits a multi-select answer on ";" and reports, for each
// indicator column, whether its full descriptive label is present. The label
// set is closed; answers outside it are discarded.
func ExpandMultiSelect(raw string, labels map[string]string) map[string]bool {
	selected := strings.Split(raw, ";")

	flags := make(map[string]bool, len(labels))
	for column, label := range labels {
		flags[column] = false
		for _, answer := range selected {
			if answer == label {
				flags[column] = true
				break
			}
		}
	}
	return flags
}

// toolUsageFromFlags packs the indicator columns into the domain struct.
func toolUsageFromFlags(flags map[string]bool) domain.ToolUsage {
	return domain.ToolUsage{
		HighLevelLanguage:         flags["uses_high_level_language"],
		MidLevelLanguage:          flags["uses_mid_level_language"],
		VisualisationTools:        flags["uses_visualisation_tools"],
		DeploymentTools:           flags["uses_deployment_tools"],
		VersionControl:            flags["uses_version_control"],
		Spreadsheets:              flags["uses_spreadsheets"],
		QueryLanguages:            flags["uses_query_languages"],
		DistributedComputingTools: flags["uses_distributed_computing_tools"],
		MonitoringTools:           flags["uses_monitoring_tools"],
		AutoMLTools:               flags["uses_automl_tools"],
		RPATools:                  flags["uses_rpa_tools"],
	}
}

// parseTimestamp converts the raw timestamp string to a time.Time. A trailing
// timezone token ("GMT+1") is cut before trying the known layouts.
func parseTimestamp(value string, formats []string) (time.Time, error) {
	v := strings.TrimSpace(value)
	if idx := strings.Index(v, " GMT"); idx >= 0 {
		v = v[:idx]
	}

	for _, format := range formats {
		if t, err := time.Parse(format, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("no known layout matches %q", value)
}

// parseExperience keeps only the digits of the answer ("15+ years" → 15,
// "Less than a year" → 0) and parses them as a non-negative integer.
func parseExperience(value string) int {
	var digits strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}

	years, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return years
}

// parseAmount parses a monetary cell as an integer. Empty cells are 0 (the
// salary-positivity filter drops them); anything non-numeric is an error the
// caller turns into MalformedInput. Decimal answers truncate toward zero.
func parseAmount(value string) (int, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return 0, nil
	}

	if amount, err := strconv.Atoi(v); err == nil {
		return amount, nil
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", value)
	}
	return int(f), nil
}
