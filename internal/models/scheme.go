// Package models defines the data structures for the scheme eligibility engine.
package models

import (
	"fmt"
	"strings"
	"time"
)

// SchemeStatus represents the lifecycle status of a scheme.
type SchemeStatus string

const (
	SchemeStatusActive   SchemeStatus = "active"
	SchemeStatusUpcoming SchemeStatus = "upcoming"
	SchemeStatusClosed   SchemeStatus = "closed"
)

// Scheme represents a government benefit program with declared eligibility
// rules and application metadata.
type Scheme struct {
	ID                 string              `json:"id" db:"id"`
	Name               string              `json:"name" db:"name"`
	Description        string              `json:"description" db:"description"`
	Department         string              `json:"department" db:"department"`
	Category           string              `json:"category" db:"category"`
	Criteria           EligibilityCriteria `json:"eligibility_criteria" db:"eligibility_criteria"`
	Benefits           []string            `json:"benefits" db:"benefits"`
	DocumentsRequired  []string            `json:"documents_required" db:"documents_required"`
	ApplicationProcess []string            `json:"application_process" db:"application_process"`
	ApplicationFee     string              `json:"application_fee,omitempty" db:"application_fee"`
	ProcessingTime     string              `json:"processing_time,omitempty" db:"processing_time"`
	OfficialWebsite    string              `json:"official_website,omitempty" db:"official_website"`
	HelplineNumber     string              `json:"helpline_number,omitempty" db:"helpline_number"`
	Status             SchemeStatus        `json:"status" db:"status"`
	LaunchDate         *time.Time          `json:"launch_date,omitempty" db:"launch_date"`
	Tags               []string            `json:"tags,omitempty" db:"tags"`
	CreatedAt          time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at" db:"updated_at"`
}

// SchemeCreate represents data needed to register a new scheme.
type SchemeCreate struct {
	Name               string              `json:"name" validate:"required,min=1,max=200"`
	Description        string              `json:"description"`
	Department         string              `json:"department" validate:"required"`
	Category           string              `json:"category"`
	Criteria           EligibilityCriteria `json:"eligibility_criteria"`
	Benefits           []string            `json:"benefits"`
	DocumentsRequired  []string            `json:"documents_required"`
	ApplicationProcess []string            `json:"application_process"`
	ApplicationFee     string              `json:"application_fee,omitempty"`
	ProcessingTime     string              `json:"processing_time,omitempty"`
	OfficialWebsite    string              `json:"official_website,omitempty"`
	HelplineNumber     string              `json:"helpline_number,omitempty"`
	Status             SchemeStatus        `json:"status"`
	Tags               []string            `json:"tags,omitempty"`
}

// SchemeSummary is a lightweight view for list and comparison displays.
type SchemeSummary struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Department string       `json:"department"`
	Category   string       `json:"category"`
	Status     SchemeStatus `json:"status"`
}

// ToSummary converts a Scheme to SchemeSummary.
func (s *Scheme) ToSummary() SchemeSummary {
	return SchemeSummary{
		ID:         s.ID,
		Name:       s.Name,
		Department: s.Department,
		Category:   s.Category,
		Status:     s.Status,
	}
}

// EligibilityCriteria is the declarative rule set attached to a scheme.
// Absent bounds mean the criterion is not part of the scheme at all.
type EligibilityCriteria struct {
	MinAge         *int     `json:"min_age,omitempty"`
	MaxAge         *int     `json:"max_age,omitempty"`
	Gender         Gender   `json:"gender,omitempty"`
	MaxIncome      *int64   `json:"max_income,omitempty"`
	Occupations    []string `json:"occupations,omitempty"`
	CustomCriteria []string `json:"custom_criteria,omitempty"`
}

// Validate reports whether the rule set is internally consistent.
func (c *EligibilityCriteria) Validate() error {
	if c.MinAge != nil && c.MaxAge != nil && *c.MinAge > *c.MaxAge {
		return ErrInvalidAgeBounds
	}
	if c.MaxIncome != nil && *c.MaxIncome < 0 {
		return ErrInvalidIncomeCeiling
	}
	if c.Gender != "" {
		if g := NormalizeGender(string(c.Gender)); !g.IsKnown() && g != GenderAll {
			return ErrInvalidGender
		}
	}
	return nil
}

// CriterionKind enumerates the closed set of criterion types a scheme
// may declare.
type CriterionKind string

const (
	CriterionAge        CriterionKind = "age"
	CriterionGender     CriterionKind = "gender"
	CriterionIncome     CriterionKind = "income"
	CriterionOccupation CriterionKind = "occupation"
	CriterionCustom     CriterionKind = "custom"
)

// Criterion is one structurally present rule of a scheme, expanded from
// EligibilityCriteria. Only the fields relevant to Kind are set.
type Criterion struct {
	Key         string
	Kind        CriterionKind
	MinAge      *int
	MaxAge      *int
	Gender      Gender
	MaxIncome   *int64
	Occupations []string
	Text        string
}

// Criteria expands the rule set into the ordered list of structurally
// present criteria. A rule that is absent produces no Criterion: absence
// is silence, not a pass.
func (c *EligibilityCriteria) Criteria() []Criterion {
	var out []Criterion

	if c.MinAge != nil || c.MaxAge != nil {
		out = append(out, Criterion{
			Key:    string(CriterionAge),
			Kind:   CriterionAge,
			MinAge: c.MinAge,
			MaxAge: c.MaxAge,
		})
	}

	// Criteria gender is canonicalized here so cased or aliased values
	// ("Female", "ALL") compare correctly; anything meaning "all" is no
	// restriction at all.
	if gender := NormalizeGender(string(c.Gender)); gender.IsKnown() {
		out = append(out, Criterion{
			Key:    string(CriterionGender),
			Kind:   CriterionGender,
			Gender: gender,
		})
	}

	if c.MaxIncome != nil {
		out = append(out, Criterion{
			Key:       string(CriterionIncome),
			Kind:      CriterionIncome,
			MaxIncome: c.MaxIncome,
		})
	}

	if len(c.Occupations) > 0 {
		out = append(out, Criterion{
			Key:         string(CriterionOccupation),
			Kind:        CriterionOccupation,
			Occupations: c.Occupations,
		})
	}

	for i, text := range c.CustomCriteria {
		if strings.TrimSpace(text) == "" {
			continue
		}
		out = append(out, Criterion{
			Key:  fmt.Sprintf("custom_%d", i+1),
			Kind: CriterionCustom,
			Text: text,
		})
	}

	return out
}

// CSVSchemeRow represents a row from an uploaded scheme catalog CSV.
type CSVSchemeRow struct {
	Name           string `csv:"name"`
	Department     string `csv:"department"`
	Category       string `csv:"category"`
	Description    string `csv:"description"`
	MinAge         string `csv:"min_age"`
	MaxAge         string `csv:"max_age"`
	Gender         string `csv:"gender"`
	MaxIncome      string `csv:"max_income"`
	Occupations    string `csv:"occupations"`
	CustomCriteria string `csv:"custom_criteria"`
	Benefits       string `csv:"benefits"`
	Status         string `csv:"status"`
}

// BulkInsertResult contains the results of a bulk insert operation.
type BulkInsertResult struct {
	InsertedCount int      `json:"inserted_count"`
	FailedCount   int      `json:"failed_count"`
	Errors        []string `json:"errors,omitempty"`
}
