package operation

import (
	"fmt"
	"strings"
	"time"
)

// Operator identifies one of the closed-form formulas the evaluator knows.
type Operator string

const (
	OpAdd      Operator = "+"
	OpSubtract Operator = "-"
	OpMultiply Operator = "*"
	OpDivide   Operator = "/"
	OpModulo   Operator = "%"
	OpPower    Operator = "^"
	OpSqrt     Operator = "√"
	OpEMI      Operator = "EMI"
	OpSI       Operator = "SI"
	OpCI       Operator = "CI"
)

// Operators lists every supported operator in display order.
var Operators = []Operator{
	OpAdd, OpSubtract, OpMultiply, OpDivide,
	OpModulo, OpPower, OpSqrt,
	OpEMI, OpSI, OpCI,
}

// TimestampLayout is the second-precision local date-time format of Record.Timestamp.
const TimestampLayout = "2006-01-02 15:04:05"

// Arity is the number of operands an operator consumes.
type Arity int

const (
	Unary   Arity = 1
	Binary  Arity = 2
	Ternary Arity = 3
)

// Arity returns how many operands op needs.
func (op Operator) Arity() Arity {
	switch op {
	case OpSqrt:
		return Unary
	case OpEMI, OpSI, OpCI:
		return Ternary
	default:
		return Binary
	}
}

// IsFinancial reports whether op is one of the interest/instalment formulas.
func (op Operator) IsFinancial() bool {
	return op.Arity() == Ternary
}

// Valid reports whether op is a known operator.
func (op Operator) Valid() bool {
	for _, known := range Operators {
		if op == known {
			return true
		}
	}
	return false
}

func (op Operator) String() string {
	return string(op)
}

// ParseOperator resolves a user-supplied tag. Financial tags are matched
// case-insensitively and "sqrt" is accepted for the square root.
func ParseOperator(tag string) (Operator, error) {
	tag = strings.TrimSpace(tag)
	if strings.EqualFold(tag, "sqrt") {
		return OpSqrt, nil
	}
	candidate := Operator(strings.ToUpper(tag))
	if candidate.Valid() {
		return candidate, nil
	}
	if op := Operator(tag); op.Valid() {
		return op, nil
	}
	return "", fmt.Errorf("%w: unknown operator %q", ErrDomain, tag)
}

// Record is one evaluated operation. Records are immutable once logged.
type Record struct {
	Operand1  float64  `json:"operand1"`
	Operand2  float64  `json:"operand2"`
	Operator  Operator `json:"operator"`
	Result    float64  `json:"result"`
	Timestamp string   `json:"timestamp"`
}

// NewRecord stamps a record with the local time at second precision.
func NewRecord(a, b float64, op Operator, result float64, at time.Time) Record {
	if op.Arity() == Unary {
		b = 0
	}
	return Record{
		Operand1:  a,
		Operand2:  b,
		Operator:  op,
		Result:    result,
		Timestamp: at.Local().Format(TimestampLayout),
	}
}
