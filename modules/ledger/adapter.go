package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/finance-calculator/domain/operation"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// LedgerPort defines the interface other modules use to reach the operation log.
type LedgerPort interface {
	Append(ctx context.Context, rec operation.Record) (*AppendResponse, error)
	Recent(ctx context.Context, n int) ([]operation.Record, error)
	ExportAll(ctx context.Context, destination string) (*ExportResponse, error)
	Latest(ctx context.Context) (*operation.Record, error)
}

// ledgerAdapter wraps ServiceContainer for type-safe cross-module communication.
type ledgerAdapter struct {
	container mono.ServiceContainer
}

// NewLedgerAdapter creates a new adapter for the ledger services.
func NewLedgerAdapter(container mono.ServiceContainer) LedgerPort {
	if container == nil {
		panic("ledger adapter requires non-nil ServiceContainer")
	}
	return &ledgerAdapter{container: container}
}

// Ledger failures come back as *Error, which unwraps to ErrEmptyLog,
// ErrInvalidRecord or ErrInvalidDestination.

// Append logs rec.
func (a *ledgerAdapter) Append(ctx context.Context, rec operation.Record) (*AppendResponse, error) {
	req := AppendRequest{Record: rec}
	var resp AppendResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceAppend,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("%s service call failed: %w", ServiceAppend, err)
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	return &resp, nil
}

// Recent returns up to n records, newest first.
func (a *ledgerAdapter) Recent(ctx context.Context, n int) ([]operation.Record, error) {
	req := RecentRequest{Limit: n}
	var resp RecentResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceRecent,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("%s service call failed: %w", ServiceRecent, err)
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	if resp.Records == nil {
		return []operation.Record{}, nil
	}
	return resp.Records, nil
}

// ExportAll writes the full log as CSV to destination.
func (a *ledgerAdapter) ExportAll(ctx context.Context, destination string) (*ExportResponse, error) {
	req := ExportRequest{Destination: destination}
	var resp ExportResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceExport,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("%s service call failed: %w", ServiceExport, err)
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	return &resp, nil
}

// Latest returns the most recently logged record.
func (a *ledgerAdapter) Latest(ctx context.Context) (*operation.Record, error) {
	req := LatestRequest{}
	var resp LatestResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceLatest,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("%s service call failed: %w", ServiceLatest, err)
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	if resp.Record == nil {
		return nil, ErrEmptyLog
	}
	return resp.Record, nil
}
