package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"salarydash/internal/errors"
)

// RawRecord is one survey response as received: exact question text mapped to
// the raw answer string. Missing cells are empty strings. RawRecords exist
// only between parsing and normalization.
type RawRecord map[string]string

// ParseFile reads a tabular survey export into raw records keyed by the
// header row's exact question texts. CSV and XLSX exports are supported;
// the extension decides the reader. Structural problems are MalformedInput.
func ParseFile(path string) ([]RawRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return parseCSV(path)
	case ".xlsx":
		return parseXLSX(path)
	default:
		return nil, errors.NewMalformedInputError(
			fmt.Sprintf("unsupported export format %q", filepath.Ext(path)), nil).
			WithContext("path", path)
	}
}

// parseCSV reads a comma-separated export. A UTF-8 BOM is tolerated; ragged
// rows are padded with empty answers rather than rejected, matching how
// survey platforms trim trailing empty cells.
func parseCSV(path string) ([]RawRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewMalformedInputError("failed to open survey export", err).
			WithContext("path", path)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.NewMalformedInputError("failed to read survey export", err).
			WithContext("path", path)
	}

	// Remove BOM if present
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		content = content[3:]
	}

	reader := csv.NewReader(strings.NewReader(string(content)))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewMalformedInputError("failed to parse survey export as CSV", err).
			WithContext("path", path)
	}

	return rowsToRecords(rows, path)
}

// parseXLSX reads the first sheet of a spreadsheet export.
func parseXLSX(path string) ([]RawRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewMalformedInputError("failed to open survey workbook", err).
			WithContext("path", path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewMalformedInputError("survey workbook has no sheets", nil).
			WithContext("path", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.NewMalformedInputError("failed to read survey sheet", err).
			WithContext("path", path).
			WithContext("sheet", sheets[0])
	}

	return rowsToRecords(rows, path)
}

// rowsToRecords keys every data row by the header row's question texts.
func rowsToRecords(rows [][]string, path string) ([]RawRecord, error) {
	if len(rows) == 0 {
		return nil, errors.NewMalformedInputError("survey export has no header row", nil).
			WithContext("path", path)
	}

	header := make([]string, len(rows[0]))
	for i, question := range rows[0] {
		header[i] = strings.TrimSpace(question)
	}

	records := make([]RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}

		record := make(RawRecord, len(header))
		for i, question := range header {
			if question == "" {
				continue
			}
			if i < len(row) {
				record[question] = row[i]
			} else {
				record[question] = ""
			}
		}
		records = append(records, record)
	}

	return records, nil
}

// isEmptyRow reports whether every cell is blank.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
