package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"scheme-eligibility-engine/internal/models"
)

func TestNormalizeGender(t *testing.T) {
	cases := []struct {
		input    string
		expected models.Gender
	}{
		{"male", models.GenderMale},
		{"M", models.GenderMale},
		{"  Female ", models.GenderFemale},
		{"woman", models.GenderFemale},
		{"transgender", models.GenderOther},
		{"non-binary", models.GenderOther},
		{"any", models.GenderAll},
		{"ALL", models.GenderAll},
		{"", models.GenderUnspecified},
		{"something else", models.GenderUnspecified},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, models.NormalizeGender(tc.input), "input %q", tc.input)
	}
}

func TestNormalizeSchemeStatus(t *testing.T) {
	cases := []struct {
		input    string
		expected models.SchemeStatus
	}{
		{"active", models.SchemeStatusActive},
		{"LIVE", models.SchemeStatusActive},
		{"open", models.SchemeStatusActive},
		{"announced", models.SchemeStatusUpcoming},
		{"discontinued", models.SchemeStatusClosed},
		{"expired", models.SchemeStatusClosed},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, models.NormalizeSchemeStatus(tc.input), "input %q", tc.input)
	}
}

func TestValidateSchemeCreate(t *testing.T) {
	valid := func() *models.SchemeCreate {
		return &models.SchemeCreate{
			Name:       "Widow Pension Scheme",
			Department: "Social Welfare",
			Status:     models.SchemeStatusActive,
		}
	}

	assert.NoError(t, models.ValidateSchemeCreate(valid()))

	s := valid()
	s.Name = "   "
	assert.ErrorIs(t, models.ValidateSchemeCreate(s), models.ErrEmptySchemeName)

	s = valid()
	s.Department = ""
	assert.ErrorIs(t, models.ValidateSchemeCreate(s), models.ErrEmptyDepartment)

	s = valid()
	s.Status = "draft"
	assert.ErrorIs(t, models.ValidateSchemeCreate(s), models.ErrInvalidStatus)

	s = valid()
	s.Criteria.Gender = "xyz"
	assert.ErrorIs(t, models.ValidateSchemeCreate(s), models.ErrInvalidGender)

	s = valid()
	s.Criteria.MinAge = intPtr(40)
	s.Criteria.MaxAge = intPtr(20)
	assert.ErrorIs(t, models.ValidateSchemeCreate(s), models.ErrInvalidAgeBounds)
}

func TestGenderIsValid(t *testing.T) {
	for _, g := range models.ValidGenders() {
		assert.True(t, g.IsValid(), "gender %q", g)
	}
	assert.False(t, models.GenderAll.IsValid(), "all is a criteria value, not a profile value")
	assert.False(t, models.Gender("Female").IsValid(), "profile values must be canonical")
}

func TestGenderIsKnown(t *testing.T) {
	assert.True(t, models.GenderMale.IsKnown())
	assert.True(t, models.GenderFemale.IsKnown())
	assert.True(t, models.GenderOther.IsKnown())
	assert.False(t, models.GenderUnspecified.IsKnown())
	assert.False(t, models.Gender("").IsKnown())
	assert.False(t, models.GenderAll.IsKnown())
}
