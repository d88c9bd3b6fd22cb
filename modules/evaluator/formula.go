package evaluator

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/example/finance-calculator/config"
	"github.com/example/finance-calculator/domain/operation"
)

// Operands holds the numeric inputs of one evaluation. B is unused by unary
// operators and T is only read by the financial formulas.
type Operands struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
	T float64 `json:"t"`
}

type formula func(in Operands) (float64, error)

// Evaluator maps an operator to its closed-form formula.
type Evaluator struct {
	emiUnit  config.TimeUnit
	formulas map[operation.Operator]formula
}

// NewEvaluator creates an evaluator. emiUnit is the unit of the EMI period.
func NewEvaluator(emiUnit config.TimeUnit) *Evaluator {
	e := &Evaluator{emiUnit: emiUnit}
	e.formulas = map[operation.Operator]formula{
		operation.OpAdd:      add,
		operation.OpSubtract: subtract,
		operation.OpMultiply: multiply,
		operation.OpDivide:   divide,
		operation.OpModulo:   modulo,
		operation.OpPower:    power,
		operation.OpSqrt:     sqrt,
		operation.OpEMI:      e.emi,
		operation.OpSI:       simpleInterest,
		operation.OpCI:       compoundInterest,
	}
	return e
}

// Supports reports whether op has a formula.
func (e *Evaluator) Supports(op operation.Operator) bool {
	_, ok := e.formulas[op]
	return ok
}

// Evaluate applies op to in. Non-finite results are rejected with ErrDomain.
func (e *Evaluator) Evaluate(op operation.Operator, in Operands) (float64, error) {
	f, ok := e.formulas[op]
	if !ok {
		return 0, fmt.Errorf("%w: unknown operator %q", operation.ErrDomain, op)
	}

	result, err := f(in)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, fmt.Errorf("%w: %s result is not a finite number", operation.ErrDomain, op)
	}
	return result, nil
}

// ParseOperands parses the raw text inputs op needs. Inputs op does not
// consume are ignored, so a stale time field never breaks an addition.
func ParseOperands(op operation.Operator, raw1, raw2, raw3 string) (Operands, error) {
	var (
		in  Operands
		err error
	)

	if in.A, err = parseNumber(firstLabel(op), raw1); err != nil {
		return Operands{}, err
	}
	if op.Arity() >= operation.Binary {
		if in.B, err = parseNumber(secondLabel(op), raw2); err != nil {
			return Operands{}, err
		}
	}
	if op.Arity() == operation.Ternary {
		if in.T, err = parseNumber("time", raw3); err != nil {
			return Operands{}, err
		}
	}
	return in, nil
}

func parseNumber(label, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is required", operation.ErrInput, label)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s %q is not a number", operation.ErrInput, label, raw)
	}
	return v, nil
}

func firstLabel(op operation.Operator) string {
	if op.IsFinancial() {
		return "principal"
	}
	return "operand 1"
}

func secondLabel(op operation.Operator) string {
	if op.IsFinancial() {
		return "rate"
	}
	return "operand 2"
}

func add(in Operands) (float64, error)      { return in.A + in.B, nil }
func subtract(in Operands) (float64, error) { return in.A - in.B, nil }
func multiply(in Operands) (float64, error) { return in.A * in.B, nil }

func divide(in Operands) (float64, error) {
	if in.B == 0 {
		return 0, fmt.Errorf("%w: cannot divide %v by zero", operation.ErrDivision, in.A)
	}
	return in.A / in.B, nil
}

// modulo is floored: the result takes the sign of the divisor.
func modulo(in Operands) (float64, error) {
	if in.B == 0 {
		return 0, fmt.Errorf("%w: cannot take %v modulo zero", operation.ErrDivision, in.A)
	}
	r := math.Mod(in.A, in.B)
	if r != 0 && (r < 0) != (in.B < 0) {
		r += in.B
	}
	return r, nil
}

func power(in Operands) (float64, error) {
	return math.Pow(in.A, in.B), nil
}

func sqrt(in Operands) (float64, error) {
	if in.A < 0 {
		return 0, fmt.Errorf("%w: cannot take square root of negative number %v", operation.ErrDomain, in.A)
	}
	return math.Sqrt(in.A), nil
}

// emi computes the equated monthly instalment for principal A at annual
// rate B percent over T periods.
func (e *Evaluator) emi(in Operands) (float64, error) {
	rate := in.B / 1200
	months := in.T
	if e.emiUnit == config.Years {
		months *= 12
	}
	if rate == 0 || months == 0 {
		return 0, fmt.Errorf("%w: EMI needs a non-zero rate and period", operation.ErrDivision)
	}

	growth := math.Pow(1+rate, months)
	if growth == 1 {
		return 0, fmt.Errorf("%w: EMI rate too small for period", operation.ErrDivision)
	}
	return in.A * rate * growth / (growth - 1), nil
}

func simpleInterest(in Operands) (float64, error) {
	return in.A * in.B * in.T / 100, nil
}

func compoundInterest(in Operands) (float64, error) {
	return in.A*math.Pow(1+in.B/100, in.T) - in.A, nil
}
