package gptfunc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalExpression(t *testing.T) {
	out, err := EvalExpression("2+2")
	require.NoError(t, err)
	assert.Equal(t, "4", out)

	out, err = EvalExpression("2.5 * 2")
	require.NoError(t, err)
	assert.Equal(t, "5", out)

	out, err = EvalExpression("(3 - 1) * 10")
	require.NoError(t, err)
	assert.Equal(t, "20", out)
}

func TestEvalExpressionErrors(t *testing.T) {
	_, err := EvalExpression("2 +")
	require.Error(t, err)

	_, err = EvalExpression(`"not" + "numbers"`)
	require.Error(t, err)
}
