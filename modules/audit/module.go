package audit

import (
	"context"
	"fmt"
	"sync"

	"github.com/example/finance-calculator/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// Summary is a point-in-time view of session activity.
type Summary struct {
	Recorded   int            `json:"recorded"`
	Rejected   int            `json:"rejected"`
	Exports    int            `json:"exports"`
	ByOperator map[string]int `json:"by_operator"`
	ByKind     map[string]int `json:"by_kind"`
	LastExport string         `json:"last_export,omitempty"`
}

// Module tallies calculator events for the running session.
type Module struct {
	mu         sync.RWMutex
	recorded   int
	rejected   int
	exports    int
	byOperator map[string]int
	byKind     map[string]int
	lastExport string
	logger     types.Logger
}

var (
	_ mono.Module                = (*Module)(nil)
	_ mono.EventConsumerModule   = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

func NewModule(logger types.Logger) *Module {
	return &Module{
		byOperator: make(map[string]int),
		byKind:     make(map[string]int),
		logger:     logger,
	}
}

func (m *Module) Name() string {
	return "audit"
}

func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.OperationRecordedV1, m.handleOperationRecorded, m); err != nil {
		return fmt.Errorf("failed to register OperationRecorded consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.OperationRejectedV1, m.handleOperationRejected, m); err != nil {
		return fmt.Errorf("failed to register OperationRejected consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.ReportExportedV1, m.handleReportExported, m); err != nil {
		return fmt.Errorf("failed to register ReportExported consumer: %w", err)
	}

	m.logger.Info("Registered event consumers", "events", []string{"OperationRecorded", "OperationRejected", "ReportExported"})
	return nil
}

func (m *Module) handleOperationRecorded(_ context.Context, event events.OperationRecordedEvent, _ *mono.Msg) error {
	m.mu.Lock()
	m.recorded++
	m.byOperator[event.Operator]++
	m.mu.Unlock()

	m.logger.Debug("Operation recorded", "id", event.ID, "operator", event.Operator)
	return nil
}

func (m *Module) handleOperationRejected(_ context.Context, event events.OperationRejectedEvent, _ *mono.Msg) error {
	m.mu.Lock()
	m.rejected++
	m.byKind[event.Kind]++
	m.mu.Unlock()

	m.logger.Debug("Operation rejected", "operator", event.Operator, "kind", event.Kind)
	return nil
}

func (m *Module) handleReportExported(_ context.Context, event events.ReportExportedEvent, _ *mono.Msg) error {
	m.mu.Lock()
	m.exports++
	m.lastExport = event.Path
	m.mu.Unlock()

	m.logger.Info("Report exported", "export", event.ExportID, "path", event.Path, "rows", event.Rows)
	return nil
}

// Summary returns a copy of the current tallies.
func (m *Module) Summary() Summary {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := Summary{
		Recorded:   m.recorded,
		Rejected:   m.rejected,
		Exports:    m.exports,
		ByOperator: make(map[string]int, len(m.byOperator)),
		ByKind:     make(map[string]int, len(m.byKind)),
		LastExport: m.lastExport,
	}
	for k, v := range m.byOperator {
		s.ByOperator[k] = v
	}
	for k, v := range m.byKind {
		s.ByKind[k] = v
	}
	return s
}

func (m *Module) Health(_ context.Context) mono.HealthStatus {
	s := m.Summary()
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"recorded": s.Recorded,
			"rejected": s.Rejected,
			"exports":  s.Exports,
		},
	}
}

func (m *Module) Start(_ context.Context) error {
	m.logger.Info("Audit module started")
	return nil
}

func (m *Module) Stop(_ context.Context) error {
	s := m.Summary()
	m.logger.Info("Audit module stopped", "recorded", s.Recorded, "rejected", s.Rejected, "exports", s.Exports)
	return nil
}
