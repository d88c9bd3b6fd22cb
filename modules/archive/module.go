package archive

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/example/finance-calculator/events"
	"github.com/go-monolith/mono"
	fsjetstream "github.com/go-monolith/mono/plugin/fs-jetstream"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// BucketName is the object store bucket holding archived reports.
const BucketName = "reports"

// Module copies every exported CSV report into a JetStream object store.
type Module struct {
	storage  *fsjetstream.PluginModule
	bucket   fsjetstream.FileStoragePort
	archived atomic.Int64
	failed   atomic.Int64
	logger   types.Logger
}

// Compile-time interface checks
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.UsePluginModule       = (*Module)(nil)
	_ mono.EventConsumerModule   = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a new report archive module.
func NewModule(logger types.Logger) *Module {
	return &Module{
		logger: logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "archive"
}

// SetPlugin receives the storage plugin from the framework.
func (m *Module) SetPlugin(alias string, plugin mono.PluginModule) {
	if alias != "storage" {
		return
	}
	storage, ok := plugin.(*fsjetstream.PluginModule)
	if !ok {
		m.logger.Error("Invalid plugin type for storage",
			"alias", alias,
			"expected", "*fsjetstream.PluginModule")
		return
	}
	m.storage = storage
}

// RegisterEventConsumers subscribes to report exports.
func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.ReportExportedV1, m.handleReportExported, m); err != nil {
		return fmt.Errorf("failed to register ReportExported consumer: %w", err)
	}
	return nil
}

// Start resolves the reports bucket.
func (m *Module) Start(_ context.Context) error {
	if m.storage == nil {
		return fmt.Errorf("required plugin 'storage' not registered")
	}

	m.bucket = m.storage.Bucket(BucketName)
	if m.bucket == nil {
		return fmt.Errorf("bucket %q not found in storage plugin", BucketName)
	}

	m.logger.Info("Archive module started", "bucket", BucketName)
	return nil
}

// Stop shuts down the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Archive module stopped", "archived", m.archived.Load(), "failed", m.failed.Load())
	return nil
}

// Health reports archive counters.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.bucket != nil,
		Message: "operational",
		Details: map[string]any{
			"bucket":   BucketName,
			"archived": m.archived.Load(),
			"failed":   m.failed.Load(),
		},
	}
}
