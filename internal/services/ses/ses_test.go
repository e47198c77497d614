// Package ses_test contains tests for digest email construction
package ses_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheme-eligibility-engine/internal/models"
	"scheme-eligibility-engine/internal/services/ses"
)

func rankedResults() []models.EligibilityResult {
	return []models.EligibilityResult{
		{SchemeName: "Kisan Samman", Category: "agriculture", EligibilityScore: 100, IsEligible: true},
		{SchemeName: "PM Awas", Category: "housing", EligibilityScore: 100, IsEligible: true},
		{SchemeName: "Ujjwala", Category: "welfare", EligibilityScore: 75, IsEligible: true},
	}
}

func TestBuildDigestParams_KeepsRankOrder(t *testing.T) {
	params := ses.BuildDigestParams("Asha", "asha@example.com", rankedResults(), "https://portal.example", 10)

	require.Len(t, params.TopSchemes, 3)
	assert.Equal(t, "Kisan Samman", params.TopSchemes[0].SchemeName)
	assert.Equal(t, "Ujjwala", params.TopSchemes[2].SchemeName)
	assert.Equal(t, "asha@example.com", params.UserEmail)
	assert.Equal(t, "https://portal.example", params.PortalURL)
}

func TestBuildDigestParams_LimitTruncates(t *testing.T) {
	params := ses.BuildDigestParams("Asha", "asha@example.com", rankedResults(), "", 2)

	require.Len(t, params.TopSchemes, 2)
	assert.Equal(t, "PM Awas", params.TopSchemes[1].SchemeName)
}

func TestBuildDigestParams_ZeroLimitMeansAll(t *testing.T) {
	params := ses.BuildDigestParams("Asha", "asha@example.com", rankedResults(), "", 0)

	assert.Len(t, params.TopSchemes, 3)
}

func TestBuildDigestParams_EmptyResults(t *testing.T) {
	params := ses.BuildDigestParams("Asha", "asha@example.com", nil, "", 5)

	assert.Empty(t, params.TopSchemes)
}
