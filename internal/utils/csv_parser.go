// Package utils provides shared helpers for the scheme eligibility engine.
package utils

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"scheme-eligibility-engine/internal/models"
)

// CSVParser errors
var (
	ErrEmptyCSV       = errors.New("CSV content is empty")
	ErrMissingColumns = errors.New("missing required columns")
	ErrNoDataRows     = errors.New("CSV file contains no data rows")
)

// RequiredColumns defines the columns that must be present in a scheme
// catalog CSV.
var RequiredColumns = []string{
	"name",
	"department",
	"category",
}

// ColumnAliases maps alternative column names to standard names.
var ColumnAliases = map[string]string{
	// name aliases
	"scheme_name": "name",
	"scheme name": "name",
	"schemename":  "name",
	"title":       "name",

	// department aliases
	"dept":     "department",
	"ministry": "department",

	// category aliases
	"sector": "category",
	"type":   "category",

	// criteria aliases
	"minimum_age":  "min_age",
	"min age":      "min_age",
	"maximum_age":  "max_age",
	"max age":      "max_age",
	"sex":          "gender",
	"income_limit": "max_income",
	"income limit": "max_income",
	"max income":   "max_income",
	"income_cap":   "max_income",
	"occupation":   "occupations",
	"professions":  "occupations",

	// custom criteria aliases
	"other_criteria": "custom_criteria",
	"conditions":     "custom_criteria",

	// misc
	"benefit":       "benefits",
	"scheme_status": "status",
}

// multiValueSeparator splits list columns (occupations, benefits, custom
// criteria) inside a single CSV cell.
const multiValueSeparator = ";"

// CSVParser handles parsing of scheme catalog CSV files.
type CSVParser struct {
	columnMapping map[string]int
}

// NewCSVParser creates a new CSV parser instance.
func NewCSVParser() *CSVParser {
	return &CSVParser{
		columnMapping: make(map[string]int),
	}
}

// ParseSchemes parses catalog CSV content and returns a slice of
// SchemeCreate objects plus per-row parse errors.
func (p *CSVParser) ParseSchemes(content string) ([]*models.SchemeCreate, []error) {
	if strings.TrimSpace(content) == "" {
		return nil, []error{ErrEmptyCSV}
	}

	reader := csv.NewReader(strings.NewReader(content))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	header, err := reader.Read()
	if err != nil {
		return nil, []error{fmt.Errorf("failed to read header: %w", err)}
	}

	if err := p.buildColumnMapping(header); err != nil {
		return nil, []error{err}
	}

	var schemes []*models.SchemeCreate
	var parseErrors []error
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			parseErrors = append(parseErrors, fmt.Errorf("line %d: %w", lineNum, err))
			continue
		}

		scheme, err := p.parseRow(record)
		if err != nil {
			parseErrors = append(parseErrors, fmt.Errorf("line %d: %w", lineNum, err))
			continue
		}

		if err := models.ValidateSchemeCreate(scheme); err != nil {
			parseErrors = append(parseErrors, fmt.Errorf("line %d: %w", lineNum, err))
			continue
		}

		schemes = append(schemes, scheme)
	}

	if len(schemes) == 0 && len(parseErrors) > 0 {
		return nil, append([]error{ErrNoDataRows}, parseErrors...)
	}

	return schemes, parseErrors
}

// buildColumnMapping creates a mapping of standard column names to indices.
func (p *CSVParser) buildColumnMapping(header []string) error {
	p.columnMapping = make(map[string]int)

	for i, col := range header {
		normalized := strings.ToLower(strings.TrimSpace(col))
		if alias, ok := ColumnAliases[normalized]; ok {
			normalized = alias
		}
		p.columnMapping[normalized] = i
	}

	var missing []string
	for _, required := range RequiredColumns {
		if _, ok := p.columnMapping[required]; !ok {
			missing = append(missing, required)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	return nil
}

// parseRow parses a single catalog row into a SchemeCreate object.
func (p *CSVParser) parseRow(record []string) (*models.SchemeCreate, error) {
	getValue := func(column string) string {
		idx, ok := p.columnMapping[column]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	scheme := &models.SchemeCreate{
		Name:        getValue("name"),
		Department:  getValue("department"),
		Category:    getValue("category"),
		Description: getValue("description"),
		Benefits:    splitList(getValue("benefits")),
		Status:      models.SchemeStatusActive,
	}

	if status := getValue("status"); status != "" {
		scheme.Status = models.NormalizeSchemeStatus(status)
	}

	if v := getValue("min_age"); v != "" {
		minAge, err := parseInt(v)
		if err != nil {
			return nil, fmt.Errorf("invalid min_age: %w", err)
		}
		scheme.Criteria.MinAge = &minAge
	}

	if v := getValue("max_age"); v != "" {
		maxAge, err := parseInt(v)
		if err != nil {
			return nil, fmt.Errorf("invalid max_age: %w", err)
		}
		scheme.Criteria.MaxAge = &maxAge
	}

	if v := getValue("gender"); v != "" {
		scheme.Criteria.Gender = models.NormalizeGender(v)
	}

	if v := getValue("max_income"); v != "" {
		maxIncome, err := parseAmount(v)
		if err != nil {
			return nil, fmt.Errorf("invalid max_income: %w", err)
		}
		scheme.Criteria.MaxIncome = &maxIncome
	}

	scheme.Criteria.Occupations = splitList(getValue("occupations"))
	scheme.Criteria.CustomCriteria = splitList(getValue("custom_criteria"))

	return scheme, nil
}

// splitList breaks a semicolon-separated cell into trimmed values.
func splitList(cell string) []string {
	if cell == "" {
		return nil
	}

	var values []string
	for _, part := range strings.Split(cell, multiValueSeparator) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

// parseAmount parses a currency amount string to int64, handling commas
// and currency symbols.
func parseAmount(s string) (int64, error) {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "₹")
	s = strings.TrimSpace(s)

	if s == "" {
		return 0, errors.New("empty value")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}

// parseInt parses a string to int, handling common formats.
func parseInt(s string) (int, error) {
	if s == "" {
		return 0, errors.New("empty value")
	}

	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	// Handle float strings (e.g., "60.0")
	if strings.Contains(s, ".") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, err
		}
		return int(f), nil
	}

	return strconv.Atoi(s)
}

// ValidateCSVStructure performs a quick validation of catalog CSV structure
// without full parsing.
func ValidateCSVStructure(content string) (*CSVValidationResult, error) {
	result := &CSVValidationResult{
		Valid:          false,
		RowCount:       0,
		Columns:        []string{},
		MissingColumns: []string{},
		Errors:         []string{},
	}

	if strings.TrimSpace(content) == "" {
		result.Errors = append(result.Errors, "empty file")
		return result, nil
	}

	reader := csv.NewReader(strings.NewReader(content))

	header, err := reader.Read()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("failed to read header: %v", err))
		return result, nil
	}

	normalizedColumns := make(map[string]bool)
	for _, col := range header {
		normalized := strings.ToLower(strings.TrimSpace(col))
		if alias, ok := ColumnAliases[normalized]; ok {
			normalized = alias
		}
		normalizedColumns[normalized] = true
		result.Columns = append(result.Columns, col)
	}

	for _, required := range RequiredColumns {
		if !normalizedColumns[required] {
			result.MissingColumns = append(result.MissingColumns, required)
		}
	}

	for {
		_, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row error: %v", err))
			continue
		}
		result.RowCount++
	}

	result.Valid = len(result.MissingColumns) == 0 && result.RowCount > 0

	return result, nil
}

// CSVValidationResult contains the results of CSV validation.
type CSVValidationResult struct {
	Valid          bool     `json:"valid"`
	RowCount       int      `json:"row_count"`
	Columns        []string `json:"columns"`
	MissingColumns []string `json:"missing_columns"`
	Errors         []string `json:"errors"`
}
