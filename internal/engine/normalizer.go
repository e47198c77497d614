// Package engine implements the eligibility determination and ranking engine.
// It is a pure, synchronous evaluator: it performs no I/O and holds no state
// between invocations.
package engine

import (
	"strconv"
	"strings"
	"time"

	"scheme-eligibility-engine/internal/models"
)

// NormalizedProfile holds the profile fields canonicalized into comparable
// primitives. A nil pointer or empty string means the value is unknown and
// can be neither confirmed nor denied against a criterion.
type NormalizedProfile struct {
	Age        *int
	Gender     models.Gender
	Income     *int64
	Occupation string
}

// Normalize canonicalizes a user profile for evaluation as of the given
// instant. It fails closed: any unparsable field becomes unknown rather
// than producing an error, so it propagates as "cannot verify" instead of
// silently passing or failing.
func Normalize(profile models.UserProfile, asOf time.Time) NormalizedProfile {
	np := NormalizedProfile{
		Occupation: strings.ToLower(strings.TrimSpace(profile.Occupation)),
	}

	if age, ok := resolveAge(profile, asOf); ok {
		np.Age = &age
	}

	gender := models.NormalizeGender(string(profile.Gender))
	if gender.IsKnown() {
		np.Gender = gender
	} else {
		np.Gender = models.GenderUnspecified
	}

	if income, ok := parseIncome(profile.AnnualIncome); ok {
		np.Income = &income
	}

	return np
}

// resolveAge derives age in whole years, preferring date of birth over a
// stated age. A birth date in the future or a non-positive stated age is
// treated as unknown.
func resolveAge(profile models.UserProfile, asOf time.Time) (int, bool) {
	dob := strings.TrimSpace(profile.DateOfBirth)
	if dob != "" {
		for _, layout := range models.BirthDateLayouts {
			born, err := time.Parse(layout, dob)
			if err != nil {
				continue
			}
			if born.After(asOf) {
				break
			}
			return yearsBetween(born, asOf), true
		}
	}

	if profile.Age > 0 {
		return profile.Age, true
	}

	return 0, false
}

// yearsBetween counts completed years from born to asOf.
func yearsBetween(born, asOf time.Time) int {
	years := asOf.Year() - born.Year()
	anniversary := born.AddDate(years, 0, 0)
	if anniversary.After(asOf) {
		years--
	}
	return years
}

// parseIncome converts an annual income string ("300000", "₹3,00,000",
// "Rs. 250000", "250000.50") into a non-negative integer rupee amount.
func parseIncome(raw string) (int64, bool) {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	if cleaned == "" {
		return 0, false
	}

	for _, prefix := range []string{"₹", "rs.", "rs", "inr"} {
		cleaned = strings.TrimPrefix(cleaned, prefix)
	}
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || value < 0 {
		return 0, false
	}

	return int64(value), true
}
