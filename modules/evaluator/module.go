package evaluator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/finance-calculator/config"
	"github.com/example/finance-calculator/domain/operation"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// Module exposes the formula table as the evaluate service.
type Module struct {
	evaluator *Evaluator
	emiUnit   config.TimeUnit
	logger    types.Logger
}

// Compile-time interface checks
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
)

// NewModule creates a new evaluator module.
func NewModule(emiUnit config.TimeUnit, logger types.Logger) *Module {
	return &Module{
		evaluator: NewEvaluator(emiUnit),
		emiUnit:   emiUnit,
		logger:    logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "evaluator"
}

// RegisterServices registers the evaluate service.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceEvaluate, json.Unmarshal, json.Marshal, m.evaluate,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceEvaluate, err)
	}

	m.logger.Info("Registered evaluator services", "services", []string{ServiceEvaluate})
	return nil
}

// Start initializes the module.
func (m *Module) Start(_ context.Context) error {
	m.logger.Info("Evaluator module started", "operators", len(operation.Operators), "emiTimeUnit", m.emiUnit)
	return nil
}

// Stop shuts down the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Evaluator module stopped")
	return nil
}

// evaluate handles the evaluate service request. Evaluation failures are
// returned in the payload; the service error is reserved for transport.
func (m *Module) evaluate(_ context.Context, req EvaluateRequest, _ *mono.Msg) (EvaluateResponse, error) {
	op, err := operation.ParseOperator(req.Operator)
	if err != nil {
		return m.fail(req, err), nil
	}

	in, err := ParseOperands(op, req.Operand1, req.Operand2, req.Operand3)
	if err != nil {
		return m.fail(req, err), nil
	}

	result, err := m.evaluator.Evaluate(op, in)
	if err != nil {
		return m.fail(req, err), nil
	}

	m.logger.Debug("Evaluated operation", "operator", op, "result", result)
	return EvaluateResponse{
		Operator: op,
		Operands: in,
		Result:   result,
	}, nil
}

func (m *Module) fail(req EvaluateRequest, err error) EvaluateResponse {
	wire := operation.NewError(err)
	m.logger.Debug("Evaluation rejected", "operator", req.Operator, "kind", wire.Kind, "error", wire.Message)
	return EvaluateResponse{Error: wire}
}
