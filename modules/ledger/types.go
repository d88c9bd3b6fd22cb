package ledger

import "github.com/example/finance-calculator/domain/operation"

// Service names for the ledger module.
const (
	ServiceAppend = "append-operation"
	ServiceRecent = "recent-operations"
	ServiceExport = "export-operations"
	ServiceLatest = "latest-operation"
)

// AppendRequest is the request for logging an evaluated operation.
type AppendRequest struct {
	Record operation.Record `json:"record"`
}

// AppendResponse is the response after logging an operation.
type AppendResponse struct {
	ID     uint             `json:"id"`
	Record operation.Record `json:"record"`
	Error  *Error           `json:"error,omitempty"`
}

// RecentRequest is the request for the most recent operations.
type RecentRequest struct {
	Limit int `json:"limit"`
}

// RecentResponse lists operations newest first.
type RecentResponse struct {
	Records []operation.Record `json:"records"`
	Total   int                `json:"total"`
	Error   *Error             `json:"error,omitempty"`
}

// LatestRequest is the request for the most recently logged operation.
type LatestRequest struct{}

// LatestResponse carries the most recent operation, or an Error with
// CodeEmptyLog when nothing has been logged.
type LatestResponse struct {
	ID     uint              `json:"id,omitempty"`
	Record *operation.Record `json:"record,omitempty"`
	Error  *Error            `json:"error,omitempty"`
}

// ExportRequest is the request for exporting the full log.
type ExportRequest struct {
	Destination string `json:"destination"`
}

// ExportResponse describes a written report.
type ExportResponse struct {
	ID          string `json:"id"`
	Destination string `json:"destination"`
	Rows        int    `json:"rows"`
	Error       *Error `json:"error,omitempty"`
}
