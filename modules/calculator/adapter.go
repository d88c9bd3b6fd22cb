package calculator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// CalculatorPort defines the interface the console uses to drive calculations.
type CalculatorPort interface {
	Calculate(ctx context.Context, req CalculateRequest) (*CalculateResponse, error)
	History(ctx context.Context, limit int) (*HistoryResponse, error)
	ExportReport(ctx context.Context, path string) (*ExportReportResponse, error)
	Last(ctx context.Context) (*LastResponse, error)
}

// calculatorAdapter wraps ServiceContainer for type-safe cross-module communication.
type calculatorAdapter struct {
	container mono.ServiceContainer
}

// NewCalculatorAdapter creates a new adapter for the calculator services.
func NewCalculatorAdapter(container mono.ServiceContainer) CalculatorPort {
	if container == nil {
		panic("calculator adapter requires non-nil ServiceContainer")
	}
	return &calculatorAdapter{container: container}
}

// Calculate calls the calculate service. Rejections are reported in the
// response's Error field; the returned error is reserved for transport failures.
func (a *calculatorAdapter) Calculate(ctx context.Context, req CalculateRequest) (*CalculateResponse, error) {
	var resp CalculateResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceCalculate,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("%s service call failed: %w", ServiceCalculate, err)
	}
	return &resp, nil
}

// History calls the history service.
func (a *calculatorAdapter) History(ctx context.Context, limit int) (*HistoryResponse, error) {
	req := HistoryRequest{Limit: limit}
	var resp HistoryResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceHistory,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("%s service call failed: %w", ServiceHistory, err)
	}
	return &resp, nil
}

// ExportReport calls the export-report service.
func (a *calculatorAdapter) ExportReport(ctx context.Context, path string) (*ExportReportResponse, error) {
	req := ExportReportRequest{Path: path}
	var resp ExportReportResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceExportReport,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("%s service call failed: %w", ServiceExportReport, err)
	}
	return &resp, nil
}

// Last calls the last-operation service.
func (a *calculatorAdapter) Last(ctx context.Context) (*LastResponse, error) {
	req := LastRequest{}
	var resp LastResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceLast,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("%s service call failed: %w", ServiceLast, err)
	}
	return &resp, nil
}
