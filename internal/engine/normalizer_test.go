package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheme-eligibility-engine/internal/engine"
	"scheme-eligibility-engine/internal/models"
)

func TestNormalize_IncomeFormats(t *testing.T) {
	cases := []struct {
		raw      string
		expected int64
		known    bool
	}{
		{"300000", 300000, true},
		{"₹3,00,000", 300000, true},
		{"Rs. 250000", 250000, true},
		{"rs 250000", 250000, true},
		{"INR 1,50,000", 150000, true},
		{"250000.50", 250000, true},
		{"", 0, false},
		{"three lakh", 0, false},
		{"-5000", 0, false},
	}

	for _, tc := range cases {
		profile := models.UserProfile{AnnualIncome: tc.raw}
		np := engine.Normalize(profile, evaluationTime)

		if tc.known {
			require.NotNil(t, np.Income, "income %q should parse", tc.raw)
			assert.Equal(t, tc.expected, *np.Income, "income %q", tc.raw)
		} else {
			assert.Nil(t, np.Income, "income %q should be unknown", tc.raw)
		}
	}
}

func TestNormalize_DateOfBirthPreferredOverStatedAge(t *testing.T) {
	profile := models.UserProfile{
		DateOfBirth: "1995-06-01",
		Age:         50,
	}

	np := engine.Normalize(profile, evaluationTime)

	require.NotNil(t, np.Age)
	assert.Equal(t, 30, *np.Age)
}

func TestNormalize_FutureDateOfBirthFallsBackToStatedAge(t *testing.T) {
	profile := models.UserProfile{
		DateOfBirth: "2030-01-01",
		Age:         25,
	}

	np := engine.Normalize(profile, evaluationTime)

	require.NotNil(t, np.Age)
	assert.Equal(t, 25, *np.Age)
}

func TestNormalize_UnparsableBirthDateWithoutAgeIsUnknown(t *testing.T) {
	profile := models.UserProfile{
		DateOfBirth: "yesterday",
	}

	np := engine.Normalize(profile, evaluationTime)

	assert.Nil(t, np.Age)
}

func TestNormalize_AlternateBirthDateLayouts(t *testing.T) {
	// DD/MM/YYYY
	profile := models.UserProfile{DateOfBirth: "15/01/1990"}

	np := engine.Normalize(profile, evaluationTime)

	require.NotNil(t, np.Age)
	assert.Equal(t, 35, *np.Age)
}

func TestNormalize_OccupationIsCanonicalized(t *testing.T) {
	profile := models.UserProfile{Occupation: "  FARMER "}

	np := engine.Normalize(profile, evaluationTime)

	assert.Equal(t, "farmer", np.Occupation)
}

func TestNormalize_GenderAliases(t *testing.T) {
	np := engine.Normalize(models.UserProfile{Gender: "M"}, evaluationTime)
	assert.Equal(t, models.GenderMale, np.Gender)

	np = engine.Normalize(models.UserProfile{Gender: "unknown-value"}, evaluationTime)
	assert.Equal(t, models.GenderUnspecified, np.Gender)
}
