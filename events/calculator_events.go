package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// OperationRecordedEvent is emitted after an evaluated operation is logged.
type OperationRecordedEvent struct {
	ID         uint      `json:"id"`
	Operator   string    `json:"operator"`
	Operand1   float64   `json:"operand1"`
	Operand2   float64   `json:"operand2"`
	Result     float64   `json:"result"`
	RecordedAt time.Time `json:"recorded_at"`
}

// OperationRecordedV1 is the typed event definition for logged operations.
// Subject: events.calculator.v1.operation-recorded
var OperationRecordedV1 = helper.EventDefinition[OperationRecordedEvent](
	"calculator", "OperationRecorded", "v1",
)

// OperationRejectedEvent is emitted when an evaluation fails.
type OperationRejectedEvent struct {
	Operator   string    `json:"operator"`
	Kind       string    `json:"kind"`
	Message    string    `json:"message"`
	RejectedAt time.Time `json:"rejected_at"`
}

// OperationRejectedV1 is the typed event definition for rejected operations.
// Subject: events.calculator.v1.operation-rejected
var OperationRejectedV1 = helper.EventDefinition[OperationRejectedEvent](
	"calculator", "OperationRejected", "v1",
)

// ReportExportedEvent is emitted after the operation log is written to CSV.
type ReportExportedEvent struct {
	ExportID   string    `json:"export_id"`
	Path       string    `json:"path"`
	Rows       int       `json:"rows"`
	ExportedAt time.Time `json:"exported_at"`
}

// ReportExportedV1 is the typed event definition for report exports.
// Subject: events.calculator.v1.report-exported
var ReportExportedV1 = helper.EventDefinition[ReportExportedEvent](
	"calculator", "ReportExported", "v1",
)
