package calculator

import (
	"context"
	"time"

	"github.com/example/finance-calculator/events"
	"github.com/go-monolith/mono"
)

// calculate handles the calculate service request. Evaluation and logging
// failures travel in the payload.
func (m *Module) calculate(ctx context.Context, req CalculateRequest, _ *mono.Msg) (CalculateResponse, error) {
	resp := m.calc.Calculate(ctx, req)
	if resp.Error != nil {
		m.logger.Debug("Calculation rejected", "operator", req.Operator, "kind", resp.Error.Kind, "error", resp.Error.Message)
		m.publishRejected(req.Operator, resp)
		return resp, nil
	}

	m.logger.Info("Recorded operation", "id", resp.ID, "operator", resp.Record.Operator, "result", resp.Record.Result)
	m.publishRecorded(resp)
	return resp, nil
}

// history handles the history service request.
func (m *Module) history(ctx context.Context, req HistoryRequest, _ *mono.Msg) (HistoryResponse, error) {
	return m.calc.History(ctx, req.Limit)
}

// last handles the last-operation service request.
func (m *Module) last(ctx context.Context, _ LastRequest, _ *mono.Msg) (LastResponse, error) {
	return m.calc.Last(ctx)
}

// exportReport handles the export-report service request.
func (m *Module) exportReport(ctx context.Context, req ExportReportRequest, _ *mono.Msg) (ExportReportResponse, error) {
	resp := m.calc.ExportReport(ctx, req.Path)
	if resp.Error != nil {
		m.logger.Error("Report export failed", "path", resp.Path, "error", resp.Error.Message)
		return resp, nil
	}

	m.logger.Info("Report exported", "export", resp.ID, "path", resp.Path, "rows", resp.Rows)
	if m.eventBus != nil {
		event := events.ReportExportedEvent{
			ExportID:   resp.ID,
			Path:       resp.Path,
			Rows:       resp.Rows,
			ExportedAt: time.Now(),
		}
		if err := events.ReportExportedV1.Publish(m.eventBus, event, nil); err != nil {
			m.logger.Warn("Failed to publish ReportExported event", "export", resp.ID, "error", err)
		}
	}
	return resp, nil
}

func (m *Module) publishRecorded(resp CalculateResponse) {
	if m.eventBus == nil {
		return
	}
	event := events.OperationRecordedEvent{
		ID:         resp.ID,
		Operator:   string(resp.Record.Operator),
		Operand1:   resp.Record.Operand1,
		Operand2:   resp.Record.Operand2,
		Result:     resp.Record.Result,
		RecordedAt: time.Now(),
	}
	if err := events.OperationRecordedV1.Publish(m.eventBus, event, nil); err != nil {
		m.logger.Warn("Failed to publish OperationRecorded event", "id", resp.ID, "error", err)
	}
}

func (m *Module) publishRejected(operator string, resp CalculateResponse) {
	if m.eventBus == nil {
		return
	}
	event := events.OperationRejectedEvent{
		Operator:   operator,
		Kind:       string(resp.Error.Kind),
		Message:    resp.Error.Message,
		RejectedAt: time.Now(),
	}
	if err := events.OperationRejectedV1.Publish(m.eventBus, event, nil); err != nil {
		m.logger.Warn("Failed to publish OperationRejected event", "operator", operator, "error", err)
	}
}
