package calculator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/finance-calculator/events"
	"github.com/example/finance-calculator/modules/evaluator"
	"github.com/example/finance-calculator/modules/ledger"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// Module is the command layer between the console and the evaluator and
// ledger modules.
type Module struct {
	calc        *Calculator
	evalPort    evaluator.EvaluatorPort
	ledgerPort  ledger.LedgerPort
	historySize int
	reportPath  string
	eventBus    mono.EventBus
	logger      types.Logger
}

// Compile-time interface checks
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.DependentModule       = (*Module)(nil)
	_ mono.EventEmitterModule    = (*Module)(nil)
)

// NewModule creates a new calculator module.
func NewModule(historySize int, reportPath string, logger types.Logger) *Module {
	return &Module{
		historySize: historySize,
		reportPath:  reportPath,
		logger:      logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "calculator"
}

// Dependencies returns the list of module dependencies.
func (m *Module) Dependencies() []string {
	return []string{"evaluator", "ledger"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "evaluator":
		m.evalPort = evaluator.NewEvaluatorAdapter(container)
	case "ledger":
		m.ledgerPort = ledger.NewLedgerAdapter(container)
	}
}

// SetEventBus receives the event bus used for calculator events.
func (m *Module) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module publishes.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.OperationRecordedV1.ToBase(),
		events.OperationRejectedV1.ToBase(),
		events.ReportExportedV1.ToBase(),
	}
}

// RegisterServices registers the calculator request-reply services.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceCalculate, json.Unmarshal, json.Marshal, m.calculate,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceCalculate, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceHistory, json.Unmarshal, json.Marshal, m.history,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceHistory, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceExportReport, json.Unmarshal, json.Marshal, m.exportReport,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceExportReport, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceLast, json.Unmarshal, json.Marshal, m.last,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceLast, err)
	}

	m.logger.Info("Registered calculator services",
		"services", []string{ServiceCalculate, ServiceHistory, ServiceExportReport, ServiceLast})
	return nil
}

// Start verifies dependencies and builds the calculator.
func (m *Module) Start(_ context.Context) error {
	if m.evalPort == nil {
		return fmt.Errorf("evaluator dependency not set")
	}
	if m.ledgerPort == nil {
		return fmt.Errorf("ledger dependency not set")
	}

	m.calc = NewCalculator(m.evalPort, m.ledgerPort, m.historySize, m.reportPath, m.logger)
	m.logger.Info("Calculator module started", "historySize", m.historySize, "reportPath", m.reportPath)
	return nil
}

// Stop shuts down the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Calculator module stopped")
	return nil
}
