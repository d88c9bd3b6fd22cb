package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/example/finance-calculator/events"
	"github.com/go-monolith/mono"
	fsjetstream "github.com/go-monolith/mono/plugin/fs-jetstream"
)

// Key returns the object name an export is archived under.
func Key(exportID, path string) string {
	return fmt.Sprintf("%s/%s", exportID, filepath.Base(path))
}

// handleReportExported stores a copy of the exported report. Archiving is
// best-effort: failures are logged and counted, never redelivered.
func (m *Module) handleReportExported(ctx context.Context, event events.ReportExportedEvent, _ *mono.Msg) error {
	if err := m.archive(ctx, event); err != nil {
		m.failed.Add(1)
		m.logger.Error("Failed to archive report", "export", event.ExportID, "path", event.Path, "error", err)
	}
	return nil
}

func (m *Module) archive(ctx context.Context, event events.ReportExportedEvent) error {
	if m.bucket == nil {
		return fmt.Errorf("archive bucket not initialized")
	}
	if event.ExportID == "" || event.Path == "" {
		return fmt.Errorf("export id and path are required")
	}

	data, err := os.ReadFile(event.Path)
	if err != nil {
		return fmt.Errorf("failed to read report: %w", err)
	}

	key := Key(event.ExportID, event.Path)
	info, err := m.bucket.Put(ctx, key, data,
		fsjetstream.WithDescription(fmt.Sprintf("Report: %s", filepath.Base(event.Path))),
		fsjetstream.WithHeaders(map[string]string{
			"Content-Type": "text/csv",
			"Export-ID":    event.ExportID,
			"Rows":         strconv.Itoa(event.Rows),
			"Exported-At":  event.ExportedAt.Format(time.RFC3339),
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to store report: %w", err)
	}

	m.archived.Add(1)
	m.logger.Info("Archived report", "key", key, "size", info.Size, "digest", info.Digest)
	return nil
}
