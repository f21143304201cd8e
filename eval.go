package gptfunc

import (
	"fmt"
	"strconv"

	"github.com/expr-lang/expr"
)

// ExpressionEvaluator evaluates one arithmetic expression and returns its
// printable numeric result, for splicing back into an argument string.
type ExpressionEvaluator func(expression string) (string, error)

// EvalExpression is the default evaluator behind WithExpressionEval.
func EvalExpression(expression string) (string, error) {
	out, err := expr.Eval(expression, nil)
	if err != nil {
		return "", err
	}
	switch v := out.(type) {
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	}
	return "", fmt.Errorf("expression %q did not evaluate to a number", expression)
}
