package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheme-eligibility-engine/internal/utils"
)

func TestInitLogger(t *testing.T) {
	require.NoError(t, utils.InitLogger("debug"))
	assert.NotNil(t, utils.Logger)

	assert.NoError(t, utils.InitLogger("not-a-level"))
}

func TestInitLogger_LambdaEnvironment(t *testing.T) {
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "eligibility-check")

	require.NoError(t, utils.InitLogger("info"))
	assert.NotNil(t, utils.Logger)
}

func TestGetLogger_InitializesLazily(t *testing.T) {
	utils.Logger = nil

	assert.NotNil(t, utils.GetLogger())
}
