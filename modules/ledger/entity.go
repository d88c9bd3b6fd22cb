package ledger

import "github.com/example/finance-calculator/domain/operation"

// Entry is one row of the append-only operation log.
type Entry struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Operand1  float64 `gorm:"not null" json:"operand1"`
	Operand2  float64 `gorm:"not null" json:"operand2"`
	Operator  string  `gorm:"size:8;not null" json:"operator"`
	Result    float64 `gorm:"not null" json:"result"`
	Timestamp string  `gorm:"size:19;not null" json:"timestamp"`
}

// TableName returns the table name for Entry model.
func (Entry) TableName() string {
	return "operations"
}

// Record returns the domain view of the entry.
func (e Entry) Record() operation.Record {
	return operation.Record{
		Operand1:  e.Operand1,
		Operand2:  e.Operand2,
		Operator:  operation.Operator(e.Operator),
		Result:    e.Result,
		Timestamp: e.Timestamp,
	}
}

func newEntry(rec operation.Record) *Entry {
	return &Entry{
		Operand1:  rec.Operand1,
		Operand2:  rec.Operand2,
		Operator:  string(rec.Operator),
		Result:    rec.Result,
		Timestamp: rec.Timestamp,
	}
}
