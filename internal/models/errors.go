// Package models defines the data structures for the scheme eligibility engine.
package models

import (
	"errors"
	"strings"
)

// Common errors
var (
	ErrInvalidAgeBounds     = errors.New("min_age cannot exceed max_age")
	ErrInvalidIncomeCeiling = errors.New("max_income cannot be negative")
	ErrInvalidGender        = errors.New("invalid gender value")
	ErrInvalidStatus        = errors.New("invalid scheme status")
	ErrEmptySchemeName      = errors.New("scheme name cannot be empty")
	ErrEmptyDepartment      = errors.New("department cannot be empty")
	ErrSchemeNotFound       = errors.New("scheme not found")
)

// NormalizeGender converts various gender spellings to standard values.
// Unrecognized input maps to GenderUnspecified so it is later treated as
// unverifiable rather than failing.
func NormalizeGender(gender string) Gender {
	normalized := strings.ToLower(strings.TrimSpace(gender))

	genderMap := map[string]Gender{
		"m":           GenderMale,
		"male":        GenderMale,
		"man":         GenderMale,
		"f":           GenderFemale,
		"female":      GenderFemale,
		"woman":       GenderFemale,
		"o":           GenderOther,
		"other":       GenderOther,
		"transgender": GenderOther,
		"non_binary":  GenderOther,
		"non-binary":  GenderOther,
		"nonbinary":   GenderOther,
		"all":         GenderAll,
		"any":         GenderAll,
	}

	if mapped, ok := genderMap[normalized]; ok {
		return mapped
	}

	return GenderUnspecified
}

// NormalizeSchemeStatus converts status strings to standard values.
func NormalizeSchemeStatus(status string) SchemeStatus {
	normalized := strings.ToLower(strings.TrimSpace(status))

	statusMap := map[string]SchemeStatus{
		"active":       SchemeStatusActive,
		"live":         SchemeStatusActive,
		"open":         SchemeStatusActive,
		"upcoming":     SchemeStatusUpcoming,
		"announced":    SchemeStatusUpcoming,
		"closed":       SchemeStatusClosed,
		"discontinued": SchemeStatusClosed,
		"expired":      SchemeStatusClosed,
	}

	if mapped, ok := statusMap[normalized]; ok {
		return mapped
	}

	return SchemeStatus(normalized)
}

// IsValid checks if the scheme status is valid.
func (s SchemeStatus) IsValid() bool {
	switch s {
	case SchemeStatusActive, SchemeStatusUpcoming, SchemeStatusClosed:
		return true
	}
	return false
}

// ValidateSchemeCreate validates scheme registration data.
func ValidateSchemeCreate(s *SchemeCreate) error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptySchemeName
	}

	if strings.TrimSpace(s.Department) == "" {
		return ErrEmptyDepartment
	}

	if !s.Status.IsValid() {
		return ErrInvalidStatus
	}

	return s.Criteria.Validate()
}
