package domain

// CleanTable is the immutable output of one normalization run. Once built it
// is read-only and may be shared across concurrent consumers; every accessor
// that could expose internal state returns a copy, so consumers derive
// filtered or grouped views as new values instead of mutating the table.
type CleanTable struct {
	records []CleanRecord
}

// NewCleanTable builds a table from the given records. The slice is copied so
// the caller cannot mutate the table afterwards.
func NewCleanTable(records []CleanRecord) *CleanTable {
	copied := make([]CleanRecord, len(records))
	copy(copied, records)
	return &CleanTable{records: copied}
}

// Len returns the number of rows.
func (t *CleanTable) Len() int {
	return len(t.records)
}

// At returns the record at index i.
func (t *CleanTable) At(i int) CleanRecord {
	return t.records[i]
}

// Records returns a copy of all rows.
func (t *CleanTable) Records() []CleanRecord {
	copied := make([]CleanRecord, len(t.records))
	copy(copied, t.records)
	return copied
}

// Dimension returns the per-row values of a categorical field, in row order.
// The second return value is false for unknown dimensions.
func (t *CleanTable) Dimension(field string) ([]string, bool) {
	values := make([]string, 0, len(t.records))
	for _, r := range t.records {
		v, ok := r.CategoricalValue(field)
		if !ok {
			return nil, false
		}
		values = append(values, v)
	}
	return values, true
}

// Salaries returns a copy of the salary column, in row order.
func (t *CleanTable) Salaries() []int {
	salaries := make([]int, len(t.records))
	for i, r := range t.records {
		salaries[i] = r.Salary
	}
	return salaries
}
