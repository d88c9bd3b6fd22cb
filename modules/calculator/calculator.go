package calculator

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/example/finance-calculator/domain/operation"
	"github.com/example/finance-calculator/modules/evaluator"
	"github.com/example/finance-calculator/modules/ledger"
	"github.com/go-monolith/mono/pkg/types"
)

// Calculator runs one calculation end to end: evaluate, log, refresh history.
type Calculator struct {
	evaluator   evaluator.EvaluatorPort
	ledger      ledger.LedgerPort
	historySize int
	reportPath  string
	now         func() time.Time
	logger      types.Logger
}

// NewCalculator creates a Calculator over the given ports.
func NewCalculator(eval evaluator.EvaluatorPort, store ledger.LedgerPort, historySize int, reportPath string, logger types.Logger) *Calculator {
	return &Calculator{
		evaluator:   eval,
		ledger:      store,
		historySize: historySize,
		reportPath:  reportPath,
		now:         time.Now,
		logger:      logger,
	}
}

// Calculate evaluates req and, on success, appends the record to the log.
// A failed evaluation leaves the log untouched.
func (c *Calculator) Calculate(ctx context.Context, req CalculateRequest) CalculateResponse {
	eval, err := c.evaluator.Evaluate(ctx, evaluator.EvaluateRequest{
		Operator: req.Operator,
		Operand1: req.Operand1,
		Operand2: req.Operand2,
		Operand3: req.Operand3,
	})
	if err != nil {
		return CalculateResponse{Error: operation.NewError(err)}
	}

	rec := operation.NewRecord(eval.Operands.A, eval.Operands.B, eval.Operator, eval.Result, c.now())
	appended, err := c.ledger.Append(ctx, rec)
	if err != nil {
		c.logger.Error("Failed to log operation", "operator", rec.Operator, "error", err)
		return CalculateResponse{Error: operation.NewError(fmt.Errorf("failed to log operation: %w", err))}
	}

	resp := CalculateResponse{
		ID:      appended.ID,
		Record:  &appended.Record,
		Display: FormatResult(appended.Record.Result),
	}

	history, err := c.ledger.Recent(ctx, c.historySize)
	if err != nil {
		// the operation is already logged; the caller still gets its result
		c.logger.Warn("Failed to refresh history", "error", err)
		return resp
	}
	resp.History = FormatHistory(history)
	return resp
}

// History returns up to limit recent records, newest first. A non-positive
// limit falls back to the configured history size.
func (c *Calculator) History(ctx context.Context, limit int) (HistoryResponse, error) {
	if limit <= 0 {
		limit = c.historySize
	}

	records, err := c.ledger.Recent(ctx, limit)
	if err != nil {
		return HistoryResponse{}, fmt.Errorf("failed to load history: %w", err)
	}

	return HistoryResponse{
		Lines:   FormatHistory(records),
		Records: records,
	}, nil
}

// ExportReport writes the full log as CSV to path, or to the configured
// report path when path is empty.
func (c *Calculator) ExportReport(ctx context.Context, path string) ExportReportResponse {
	path = strings.TrimSpace(path)
	if path == "" {
		path = c.reportPath
	}

	exported, err := c.ledger.ExportAll(ctx, path)
	if err != nil {
		return ExportReportResponse{
			Path:  path,
			Error: exportError(err),
		}
	}

	return ExportReportResponse{
		ID:   exported.ID,
		Path: exported.Destination,
		Rows: exported.Rows,
	}
}

// Last returns the most recently logged operation. Found is false when the
// log is empty.
func (c *Calculator) Last(ctx context.Context) (LastResponse, error) {
	rec, err := c.ledger.Latest(ctx)
	if errors.Is(err, ledger.ErrEmptyLog) {
		return LastResponse{}, nil
	}
	if err != nil {
		return LastResponse{}, fmt.Errorf("failed to load last operation: %w", err)
	}
	return LastResponse{
		Found:  true,
		Record: rec,
		Line:   FormatRecord(*rec),
	}, nil
}

// exportError classifies an export failure. A rejected destination is the
// caller's input; anything else is internal.
func exportError(err error) *operation.Error {
	if errors.Is(err, ledger.ErrInvalidDestination) {
		return &operation.Error{Kind: operation.KindInput, Message: err.Error()}
	}
	return operation.NewError(err)
}

// FormatResult renders a result for display.
func FormatResult(v float64) string {
	return fmt.Sprintf("Result: %.2f", v)
}

// FormatHistory renders records as history lines, preserving order.
func FormatHistory(records []operation.Record) []string {
	lines := make([]string, len(records))
	for i, rec := range records {
		lines[i] = FormatRecord(rec)
	}
	return lines
}

// FormatRecord renders one record as "{a} {op} {b} = {result}". Unary
// operations omit the second operand.
func FormatRecord(rec operation.Record) string {
	if rec.Operator.Arity() == operation.Unary {
		return fmt.Sprintf("%s %s = %.2f", rec.Operator, formatOperand(rec.Operand1), rec.Result)
	}
	return fmt.Sprintf("%s %s %s = %.2f",
		formatOperand(rec.Operand1), rec.Operator, formatOperand(rec.Operand2), rec.Result)
}

func formatOperand(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
