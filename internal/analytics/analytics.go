// Package analytics derives the aggregated views the presentation layer
// renders: per-category counts and median salaries over a chosen dimension,
// with sentinel values filtered out, low-support categories dropped and a
// deterministic category order. The clean table is never mutated; every view
// is a fresh value, so tables can be shared across dashboard sessions.
package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"salarydash/pkg/contracts/domain"
)

// Aggregator builds views over a CleanTable.
type Aggregator struct {
	logger *slog.Logger
	config AggregatorConfig
}

// AggregatorConfig holds the view-building configuration.
type AggregatorConfig struct {
	MinSupport     int                 // categories with count <= MinSupport are dropped
	Sentinels      map[string][]string // per-field non-answer values to exclude
	ManualOrders   map[string][]string // fixed display orders for ordinal dimensions
	MedianSorted   map[string]bool     // dimensions ordered by ascending median salary
}

// DefaultAggregatorConfig returns the configuration for the current survey.
func DefaultAggregatorConfig() AggregatorConfig {
	return AggregatorConfig{
		MinSupport:   DefaultMinSupport,
		Sentinels:    SentinelValues,
		ManualOrders: ManualOrders,
		MedianSorted: MedianSortDimensions,
	}
}

// NewAggregator creates an aggregator with the given configuration.
func NewAggregator(logger *slog.Logger, config AggregatorConfig) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger, config: config}
}

// View is one renderable aggregation of the clean table over a single
// categorical dimension. An empty Categories slice is a valid "no data"
// state, not an error.
type View struct {
	Field        string
	Categories   []string         // display order
	Counts       map[string]int   // rows per category
	MedianSalary map[string]int   // median monthly salary per category
	Salaries     map[string][]int // per-category salary distributions, in row order
}

// BuildView composes the consumed contract: sentinel filter, min-support
// filter, per-category medians and the display order for one dimension.
func (a *Aggregator) BuildView(ctx context.Context, table *domain.CleanTable, field string) (*View, error) {
	records, err := a.FilterSentinels(table, field)
	if err != nil {
		return nil, err
	}

	counts := groupCounts(records, field)

	// A manual order restricts the view to its listed categories and skips
	// the support filter; otherwise low-support categories are dropped.
	var allowed map[string]bool
	if manual, ok := a.config.ManualOrders[field]; ok {
		allowed = make(map[string]bool, len(manual))
		for _, category := range manual {
			if counts[category] > 0 {
				allowed[category] = true
			}
		}
	} else {
		allowed = ApplyMinSupport(counts, a.config.MinSupport)
	}

	kept := make([]domain.CleanRecord, 0, len(records))
	for _, r := range records {
		value, _ := r.CategoricalValue(field)
		if allowed[value] {
			kept = append(kept, r)
		}
	}

	view := &View{
		Field:        field,
		Counts:       groupCounts(kept, field),
		MedianSalary: medianSalaries(kept, field),
		Salaries:     groupSalaries(kept, field),
	}

	view.Categories = a.CategoryOrder(field, view.Counts, view.MedianSalary)

	a.logger.DebugContext(ctx, "aggregated view built",
		slog.String("field", field),
		slog.Int("categories", len(view.Categories)),
		slog.Int("rows", len(kept)))

	return view, nil
}

// FilterSentinels returns the table's rows minus those whose value for field
// is a configured non-answer category.
func (a *Aggregator) FilterSentinels(table *domain.CleanTable, field string) ([]domain.CleanRecord, error) {
	if _, ok := (domain.CleanRecord{}).CategoricalValue(field); !ok {
		return nil, fmt.Errorf("unknown categorical dimension %q", field)
	}

	sentinels := make(map[string]bool, len(a.config.Sentinels[field]))
	for _, v := range a.config.Sentinels[field] {
		sentinels[v] = true
	}

	var kept []domain.CleanRecord
	for _, r := range table.Records() {
		value, _ := r.CategoricalValue(field)
		if !sentinels[value] {
			kept = append(kept, r)
		}
	}
	return kept, nil
}

// GroupCounts groups the table by field and counts rows per category.
func (a *Aggregator) GroupCounts(table *domain.CleanTable, field string) (map[string]int, error) {
	if _, ok := (domain.CleanRecord{}).CategoricalValue(field); !ok {
		return nil, fmt.Errorf("unknown categorical dimension %q", field)
	}
	return groupCounts(table.Records(), field), nil
}

// ApplyMinSupport returns the set of categories whose count strictly exceeds
// threshold. A category at exactly the threshold is dropped.
func ApplyMinSupport(counts map[string]int, threshold int) map[string]bool {
	kept := make(map[string]bool, len(counts))
	for category, count := range counts {
		if count > threshold {
			kept[category] = true
		}
	}
	return kept
}

// CategoryOrder returns the display order for a dimension's categories: the
// fixed manual order for the ordinal dimensions (restricted to categories
// present in counts), ascending median salary for the median-sorted ones,
// lexical order otherwise.
func (a *Aggregator) CategoryOrder(field string, counts, medians map[string]int) []string {
	if manual, ok := a.config.ManualOrders[field]; ok {
		order := make([]string, 0, len(manual))
		for _, category := range manual {
			if counts[category] > 0 {
				order = append(order, category)
			}
		}
		return order
	}
	if a.config.MedianSorted[field] {
		return sortByMedian(medians)
	}
	return sortedKeys(counts)
}

// MedianSalaryByCategory groups the table by field and computes the median
// monthly salary per category.
func (a *Aggregator) MedianSalaryByCategory(table *domain.CleanTable, field string) (map[string]int, error) {
	if _, ok := (domain.CleanRecord{}).CategoricalValue(field); !ok {
		return nil, fmt.Errorf("unknown categorical dimension %q", field)
	}
	return medianSalaries(table.Records(), field), nil
}

func groupCounts(records []domain.CleanRecord, field string) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		value, _ := r.CategoricalValue(field)
		counts[value]++
	}
	return counts
}

func groupSalaries(records []domain.CleanRecord, field string) map[string][]int {
	salaries := make(map[string][]int)
	for _, r := range records {
		value, _ := r.CategoricalValue(field)
		salaries[value] = append(salaries[value], r.Salary)
	}
	return salaries
}

func medianSalaries(records []domain.CleanRecord, field string) map[string]int {
	medians := make(map[string]int)
	for category, salaries := range groupSalaries(records, field) {
		medians[category] = median(salaries)
	}
	return medians
}

// median returns the median of values; for even counts, the mean of the two
// middle values, truncated.
func median(values []int) int {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// sortByMedian orders categories by ascending median salary, breaking ties
// lexically for determinism.
func sortByMedian(medians map[string]int) []string {
	categories := sortedKeys(medians)
	sort.SliceStable(categories, func(i, j int) bool {
		return medians[categories[i]] < medians[categories[j]]
	})
	return categories
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
