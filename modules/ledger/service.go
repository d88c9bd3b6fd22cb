package ledger

import (
	"context"
	"fmt"

	"github.com/example/finance-calculator/domain/operation"
	"github.com/go-monolith/mono"
	"github.com/google/uuid"
)

// Failures travel in the response Error field so callers can match them
// with errors.Is.

// appendOperation handles the append-operation service request.
func (m *Module) appendOperation(_ context.Context, req AppendRequest, _ *mono.Msg) (AppendResponse, error) {
	entry, err := m.repo.Append(req.Record)
	if err != nil {
		m.logger.Error("Failed to append operation", "operator", req.Record.Operator, "error", err)
		return AppendResponse{Error: newError(err)}, nil
	}

	m.logger.Debug("Appended operation", "id", entry.ID, "operator", entry.Operator)
	return AppendResponse{
		ID:     entry.ID,
		Record: entry.Record(),
	}, nil
}

// recentOperations handles the recent-operations service request.
func (m *Module) recentOperations(_ context.Context, req RecentRequest, _ *mono.Msg) (RecentResponse, error) {
	entries, err := m.repo.Recent(req.Limit)
	if err != nil {
		m.logger.Error("Failed to load recent operations", "limit", req.Limit, "error", err)
		return RecentResponse{Error: newError(err)}, nil
	}

	records := make([]operation.Record, len(entries))
	for i, e := range entries {
		records[i] = e.Record()
	}

	return RecentResponse{
		Records: records,
		Total:   len(records),
	}, nil
}

// latestOperation handles the latest-operation service request.
func (m *Module) latestOperation(_ context.Context, _ LatestRequest, _ *mono.Msg) (LatestResponse, error) {
	entry, err := m.repo.Latest()
	if err != nil {
		m.logger.Debug("No latest operation", "error", err)
		return LatestResponse{Error: newError(err)}, nil
	}

	rec := entry.Record()
	return LatestResponse{
		ID:     entry.ID,
		Record: &rec,
	}, nil
}

// exportOperations handles the export-operations service request.
func (m *Module) exportOperations(_ context.Context, req ExportRequest, _ *mono.Msg) (ExportResponse, error) {
	id := uuid.New().String()

	rows, err := m.repo.ExportAll(req.Destination)
	if err != nil {
		m.logger.Error("Failed to export operations", "export", id, "destination", req.Destination, "error", err)
		return ExportResponse{
			Destination: req.Destination,
			Error:       newError(fmt.Errorf("export to %q failed: %w", req.Destination, err)),
		}, nil
	}

	m.logger.Info("Exported operations", "export", id, "destination", req.Destination, "rows", rows)
	return ExportResponse{
		ID:          id,
		Destination: req.Destination,
		Rows:        rows,
	}, nil
}
