// Package models defines the data structures for the scheme eligibility engine.
package models

import (
	"time"
)

// Gender represents the gender of a user or a scheme's gender restriction.
type Gender string

const (
	GenderMale        Gender = "male"
	GenderFemale      Gender = "female"
	GenderOther       Gender = "other"
	GenderUnspecified Gender = "unspecified"

	// GenderAll is only valid on scheme criteria and means "no restriction".
	GenderAll Gender = "all"
)

// ValidGenders returns the gender values accepted on a user profile.
func ValidGenders() []Gender {
	return []Gender{
		GenderMale,
		GenderFemale,
		GenderOther,
		GenderUnspecified,
	}
}

// IsValid checks if the gender is a valid profile value.
func (g Gender) IsValid() bool {
	for _, valid := range ValidGenders() {
		if g == valid {
			return true
		}
	}
	return false
}

// IsKnown reports whether the gender carries usable information for
// eligibility checks. Unspecified and empty values cannot be verified.
func (g Gender) IsKnown() bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}

// DocumentFlags records which identity documents a user holds.
type DocumentFlags struct {
	HasAadhaar        bool `json:"has_aadhaar"`
	HasPAN            bool `json:"has_pan"`
	HasRationCard     bool `json:"has_ration_card"`
	HasIncomeCert     bool `json:"has_income_certificate"`
	HasResidenceProof bool `json:"has_residence_proof"`
}

// UserProfile is an immutable snapshot of the attributes relevant to
// eligibility. It is constructed once per evaluation request from the
// authenticated session and never mutated during evaluation.
type UserProfile struct {
	Name         string        `json:"name"`
	PhoneNumber  string        `json:"phone_number,omitempty"`
	DateOfBirth  string        `json:"date_of_birth,omitempty"`
	Age          int           `json:"age,omitempty"`
	Gender       Gender        `json:"gender,omitempty"`
	State        string        `json:"state,omitempty"`
	City         string        `json:"city,omitempty"`
	Occupation   string        `json:"occupation,omitempty"`
	AnnualIncome string        `json:"annual_income,omitempty"`
	Documents    DocumentFlags `json:"documents"`
}

// ProfileSummary is a lightweight view of a profile for logging and display.
type ProfileSummary struct {
	Name       string `json:"name"`
	Age        int    `json:"age,omitempty"`
	Gender     Gender `json:"gender,omitempty"`
	State      string `json:"state,omitempty"`
	Occupation string `json:"occupation,omitempty"`
}

// ToSummary converts a UserProfile to ProfileSummary.
func (p *UserProfile) ToSummary() ProfileSummary {
	return ProfileSummary{
		Name:       p.Name,
		Age:        p.Age,
		Gender:     p.Gender,
		State:      p.State,
		Occupation: p.Occupation,
	}
}

// BirthDateLayouts are the date formats accepted for date_of_birth.
var BirthDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"02/01/2006",
}
