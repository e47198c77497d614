package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheme-eligibility-engine/internal/engine"
	"scheme-eligibility-engine/internal/models"
)

func TestRecommend_OnlyIneligibleOutcomesProduceSuggestions(t *testing.T) {
	outcomes := []models.FieldOutcome{
		{CriterionKey: "age", Status: models.StatusEligible, Message: "ok"},
		{CriterionKey: "income", Status: models.StatusPartial, Message: "unknown"},
		{CriterionKey: "occupation", Status: models.StatusIneligible, RequiredValue: "farmer, weaver"},
	}

	recommendations := engine.Recommend(outcomes)

	require.Len(t, recommendations, 1)
	assert.Contains(t, recommendations[0], "farmer, weaver")
}

func TestRecommend_IncomeGap(t *testing.T) {
	outcomes := []models.FieldOutcome{
		{
			CriterionKey:  "income",
			Status:        models.StatusIneligible,
			UserValue:     "500000",
			RequiredValue: "300000",
		},
	}

	recommendations := engine.Recommend(outcomes)

	require.Len(t, recommendations, 1)
	assert.Contains(t, recommendations[0], "₹200000", "Recommendation should state the income gap")
	assert.Contains(t, recommendations[0], "₹300000")
}

func TestRecommend_MisconfiguredScheme(t *testing.T) {
	outcomes := []models.FieldOutcome{
		{CriterionKey: "criteria", Status: models.StatusIneligible},
	}

	recommendations := engine.Recommend(outcomes)

	require.Len(t, recommendations, 1)
	assert.Contains(t, recommendations[0], "helpline")
}

func TestClassify_PreservesEvaluationOrder(t *testing.T) {
	outcomes := []models.FieldOutcome{
		{Status: models.StatusEligible, Message: "first"},
		{Status: models.StatusIneligible, Message: "blocked"},
		{Status: models.StatusEligible, Message: "second"},
		{Status: models.StatusPartial, Message: "maybe"},
	}

	reasons := engine.Classify(outcomes)

	assert.Equal(t, []string{"first", "second"}, reasons.Eligible)
	assert.Equal(t, []string{"blocked"}, reasons.Ineligible)
	assert.Equal(t, []string{"maybe"}, reasons.Warnings)
}

func TestClassify_EmptyOutcomes(t *testing.T) {
	reasons := engine.Classify(nil)

	assert.NotNil(t, reasons.Eligible)
	assert.NotNil(t, reasons.Ineligible)
	assert.NotNil(t, reasons.Warnings)
	assert.Empty(t, reasons.Eligible)
}
