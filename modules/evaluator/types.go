package evaluator

import "github.com/example/finance-calculator/domain/operation"

// ServiceEvaluate is the request-reply service name of the evaluator.
const ServiceEvaluate = "evaluate"

// EvaluateRequest is the request for evaluating one operation from raw text.
type EvaluateRequest struct {
	Operator string `json:"operator"`
	Operand1 string `json:"operand1"`
	Operand2 string `json:"operand2"`
	Operand3 string `json:"operand3"`
}

// EvaluateResponse is the result of an evaluation. Exactly one of Result or
// Error is meaningful.
type EvaluateResponse struct {
	Operator operation.Operator `json:"operator,omitempty"`
	Operands Operands           `json:"operands"`
	Result   float64            `json:"result"`
	Error    *operation.Error   `json:"error,omitempty"`
}

// Evaluation is a successful evaluation as seen by callers of EvaluatorPort.
type Evaluation struct {
	Operator operation.Operator
	Operands Operands
	Result   float64
}
