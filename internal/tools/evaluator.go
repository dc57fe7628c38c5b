package tools

import (
	"context"
	"fmt"

	"github.com/expr-lang/expr"
)

// EvalToolName is the tool the model calls to evaluate numeric expressions
// instead of doing large arithmetic itself.
const EvalToolName = "numerical_expression_eval"

const evalDescription = `Performs numerical expression evaluation of a plain
arithmetic expression, e.g. "870912 * 15" or "(1238912.5 + 3) / 7".

Supported operators: + - * / % ^ and parentheses. Negative numbers should be
parenthesized, e.g. (-2). The evaluator may not support the full range of
whatever you are calculating; very large integers can overflow.`

// NewEvaluatorTool builds the numeric expression evaluator tool.
func NewEvaluatorTool() Tool {
	return Tool{
		Name:        EvalToolName,
		Description: evalDescription,
		Params: []Param{
			{
				Name:        "expression",
				Type:        "string",
				Description: "The arithmetic expression to evaluate",
				Required:    true,
			},
		},
		Invoke: evaluateExpression,
	}
}

func evaluateExpression(_ context.Context, args map[string]any) string {
	raw, ok := args["expression"]
	if !ok {
		return `Error: missing required argument "expression"`
	}

	expression, ok := raw.(string)
	if !ok {
		return `Error: argument "expression" must be a string`
	}

	out, err := expr.Eval(expression, map[string]any{})
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}

	return fmt.Sprintf("%v", out)
}
