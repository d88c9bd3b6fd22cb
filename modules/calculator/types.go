package calculator

import "github.com/example/finance-calculator/domain/operation"

// Service names for the calculator module.
const (
	ServiceCalculate    = "calculate"
	ServiceHistory      = "history"
	ServiceExportReport = "export-report"
	ServiceLast         = "last-operation"
)

// CalculateRequest carries the raw operand text and operator tag of one
// calculation. Operand3 is only read by the financial operators.
type CalculateRequest struct {
	Operator string `json:"operator"`
	Operand1 string `json:"operand1"`
	Operand2 string `json:"operand2,omitempty"`
	Operand3 string `json:"operand3,omitempty"`
}

// CalculateResponse is either a logged record with its display text and the
// refreshed history, or an Error. Both are never set together.
type CalculateResponse struct {
	ID      uint              `json:"id,omitempty"`
	Record  *operation.Record `json:"record,omitempty"`
	Display string            `json:"display,omitempty"`
	History []string          `json:"history,omitempty"`
	Error   *operation.Error  `json:"error,omitempty"`
}

// HistoryRequest asks for the most recent operations. A zero Limit means the
// configured history size.
type HistoryRequest struct {
	Limit int `json:"limit"`
}

// HistoryResponse lists recent operations newest first.
type HistoryResponse struct {
	Lines   []string           `json:"lines"`
	Records []operation.Record `json:"records"`
}

// ExportReportRequest asks for a CSV report. An empty Path means the
// configured report path.
type ExportReportRequest struct {
	Path string `json:"path,omitempty"`
}

// ExportReportResponse describes a written report.
type ExportReportResponse struct {
	ID    string           `json:"id,omitempty"`
	Path  string           `json:"path"`
	Rows  int              `json:"rows"`
	Error *operation.Error `json:"error,omitempty"`
}

// LastRequest asks for the most recently logged operation.
type LastRequest struct{}

// LastResponse carries the most recent operation and its history line.
// Found is false when nothing has been logged yet.
type LastResponse struct {
	Found  bool              `json:"found"`
	Record *operation.Record `json:"record,omitempty"`
	Line   string            `json:"line,omitempty"`
}
