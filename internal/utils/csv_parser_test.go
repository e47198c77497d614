// Package utils_test contains tests for the catalog CSV parser
package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheme-eligibility-engine/internal/models"
	"scheme-eligibility-engine/internal/utils"
)

func TestParseSchemes_ValidCatalog(t *testing.T) {
	content := `name,department,category,min_age,max_age,gender,max_income,occupations,custom_criteria,benefits,status
Kisan Samman,Agriculture,agriculture,18,,all,"2,00,000",farmer; tenant farmer,Must own cultivable land,₹6000 per year,active
Widow Pension,Social Welfare,welfare,40,79,female,100000,,,Monthly pension,live`

	parser := utils.NewCSVParser()
	schemes, errs := parser.ParseSchemes(content)

	require.Empty(t, errs)
	require.Len(t, schemes, 2)

	kisan := schemes[0]
	assert.Equal(t, "Kisan Samman", kisan.Name)
	assert.Equal(t, "Agriculture", kisan.Department)
	require.NotNil(t, kisan.Criteria.MinAge)
	assert.Equal(t, 18, *kisan.Criteria.MinAge)
	assert.Nil(t, kisan.Criteria.MaxAge)
	assert.Equal(t, models.GenderAll, kisan.Criteria.Gender)
	require.NotNil(t, kisan.Criteria.MaxIncome)
	assert.Equal(t, int64(200000), *kisan.Criteria.MaxIncome)
	assert.Equal(t, []string{"farmer", "tenant farmer"}, kisan.Criteria.Occupations)
	assert.Equal(t, []string{"Must own cultivable land"}, kisan.Criteria.CustomCriteria)
	assert.Equal(t, models.SchemeStatusActive, kisan.Status)

	widow := schemes[1]
	assert.Equal(t, models.GenderFemale, widow.Criteria.Gender)
	assert.Equal(t, models.SchemeStatusActive, widow.Status, "live should normalize to active")
}

func TestParseSchemes_ColumnAliases(t *testing.T) {
	content := `scheme_name,ministry,sector,minimum_age,income_limit
PM Awas,Housing,housing,21,180000`

	parser := utils.NewCSVParser()
	schemes, errs := parser.ParseSchemes(content)

	require.Empty(t, errs)
	require.Len(t, schemes, 1)
	assert.Equal(t, "PM Awas", schemes[0].Name)
	assert.Equal(t, "Housing", schemes[0].Department)
	require.NotNil(t, schemes[0].Criteria.MinAge)
	assert.Equal(t, 21, *schemes[0].Criteria.MinAge)
	require.NotNil(t, schemes[0].Criteria.MaxIncome)
	assert.Equal(t, int64(180000), *schemes[0].Criteria.MaxIncome)
}

func TestParseSchemes_MissingRequiredColumns(t *testing.T) {
	content := `name,min_age
Some Scheme,18`

	parser := utils.NewCSVParser()
	schemes, errs := parser.ParseSchemes(content)

	assert.Nil(t, schemes)
	require.NotEmpty(t, errs)
	assert.ErrorIs(t, errs[0], utils.ErrMissingColumns)
}

func TestParseSchemes_EmptyContent(t *testing.T) {
	parser := utils.NewCSVParser()
	schemes, errs := parser.ParseSchemes("   ")

	assert.Nil(t, schemes)
	require.NotEmpty(t, errs)
	assert.ErrorIs(t, errs[0], utils.ErrEmptyCSV)
}

func TestParseSchemes_BadRowsDoNotBlockGoodRows(t *testing.T) {
	content := `name,department,category,min_age
Good Scheme,Dept A,welfare,18
Bad Scheme,Dept B,welfare,eighteen
,Dept C,welfare,21
Another Good,Dept D,welfare,25`

	parser := utils.NewCSVParser()
	schemes, errs := parser.ParseSchemes(content)

	require.Len(t, schemes, 2)
	assert.Equal(t, "Good Scheme", schemes[0].Name)
	assert.Equal(t, "Another Good", schemes[1].Name)
	assert.Len(t, errs, 2, "One invalid min_age and one empty name")
}

func TestParseSchemes_InvertedAgeBoundsRejected(t *testing.T) {
	content := `name,department,category,min_age,max_age
Broken Scheme,Dept,welfare,60,18`

	parser := utils.NewCSVParser()
	schemes, errs := parser.ParseSchemes(content)

	assert.Empty(t, schemes)
	require.NotEmpty(t, errs)
}

func TestValidateCSVStructure(t *testing.T) {
	content := `name,department,category
A,B,welfare
C,D,education`

	result, err := utils.ValidateCSVStructure(content)

	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, 2, result.RowCount)
	assert.Empty(t, result.MissingColumns)
}

func TestValidateCSVStructure_MissingColumns(t *testing.T) {
	content := `name,min_age
A,18`

	result, err := utils.ValidateCSVStructure(content)

	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.ElementsMatch(t, []string{"department", "category"}, result.MissingColumns)
}
