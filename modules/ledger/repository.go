package ledger

import (
	"errors"
	"fmt"

	"github.com/example/finance-calculator/domain/operation"
	"gorm.io/gorm"
)

// Repository provides access to the operation log. Rows are only ever
// inserted; the auto-increment ID orders them chronologically.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new ledger repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Append writes rec to the log and returns the stored entry.
func (r *Repository) Append(rec operation.Record) (*Entry, error) {
	if rec.Operator == "" || rec.Timestamp == "" {
		return nil, ErrInvalidRecord
	}

	entry := newEntry(rec)
	if err := r.db.Create(entry).Error; err != nil {
		return nil, fmt.Errorf("failed to append operation: %w", err)
	}
	return entry, nil
}

// Recent returns up to n entries, newest first.
func (r *Repository) Recent(n int) ([]Entry, error) {
	if n <= 0 {
		return []Entry{}, nil
	}

	var entries []Entry
	if err := r.db.Order("id DESC").Limit(n).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to find recent operations: %w", err)
	}
	return entries, nil
}

// Latest returns the most recently appended entry.
func (r *Repository) Latest() (*Entry, error) {
	var entry Entry
	if err := r.db.Order("id DESC").First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmptyLog
		}
		return nil, fmt.Errorf("failed to find latest operation: %w", err)
	}
	return &entry, nil
}

// All returns every entry in insertion order.
func (r *Repository) All() ([]Entry, error) {
	var entries []Entry
	if err := r.db.Order("id ASC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to find operations: %w", err)
	}
	return entries, nil
}

// Count returns the number of logged operations.
func (r *Repository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&Entry{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count operations: %w", err)
	}
	return count, nil
}
