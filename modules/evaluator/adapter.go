package evaluator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// EvaluatorPort defines the interface other modules use to evaluate operations.
type EvaluatorPort interface {
	Evaluate(ctx context.Context, req EvaluateRequest) (*Evaluation, error)
}

// evaluatorAdapter wraps ServiceContainer for type-safe cross-module communication.
type evaluatorAdapter struct {
	container mono.ServiceContainer
}

// NewEvaluatorAdapter creates a new adapter for the evaluator services.
// container is the ServiceContainer received via SetDependencyServiceContainer.
func NewEvaluatorAdapter(container mono.ServiceContainer) EvaluatorPort {
	if container == nil {
		panic("evaluator adapter requires non-nil ServiceContainer")
	}
	return &evaluatorAdapter{container: container}
}

// Evaluate calls the evaluate service. A rejected evaluation is returned as an
// *operation.Error, which unwraps to ErrInput, ErrDomain or ErrDivision.
func (a *evaluatorAdapter) Evaluate(ctx context.Context, req EvaluateRequest) (*Evaluation, error) {
	var resp EvaluateResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceEvaluate,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("%s service call failed: %w", ServiceEvaluate, err)
	}

	if resp.Error != nil {
		return nil, resp.Error
	}

	return &Evaluation{
		Operator: resp.Operator,
		Operands: resp.Operands,
		Result:   resp.Result,
	}, nil
}
