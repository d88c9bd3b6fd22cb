package ledger

import (
	"testing"

	"github.com/example/finance-calculator/domain/operation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open test database")

	// every pooled connection would otherwise get its own empty database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&Entry{}), "failed to migrate test database")
	return db
}

func record(a, b float64, op operation.Operator, result float64, ts string) operation.Record {
	return operation.Record{
		Operand1:  a,
		Operand2:  b,
		Operator:  op,
		Result:    result,
		Timestamp: ts,
	}
}

func seed(t *testing.T, repo *Repository, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		_, err := repo.Append(record(float64(i), 1, operation.OpAdd, float64(i+1), "2024-01-01 10:00:00"))
		require.NoError(t, err)
	}
}

func TestRepository_Append(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	entry, err := repo.Append(record(2, 3, operation.OpAdd, 5, "2024-01-01 10:00:00"))
	require.NoError(t, err)
	assert.NotZero(t, entry.ID)
	assert.Equal(t, "+", entry.Operator)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	latest, err := repo.Latest()
	require.NoError(t, err)
	assert.Equal(t, record(2, 3, operation.OpAdd, 5, "2024-01-01 10:00:00"), latest.Record())
}

func TestRepository_Append_IDsIncrease(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	first, err := repo.Append(record(1, 1, operation.OpAdd, 2, "2024-01-01 10:00:00"))
	require.NoError(t, err)
	second, err := repo.Append(record(1, 1, operation.OpAdd, 2, "2024-01-01 10:00:00"))
	require.NoError(t, err)

	assert.Greater(t, second.ID, first.ID)
}

func TestRepository_Append_Invalid(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	_, err := repo.Append(record(1, 1, "", 2, "2024-01-01 10:00:00"))
	assert.ErrorIs(t, err, ErrInvalidRecord)

	_, err = repo.Append(record(1, 1, operation.OpAdd, 2, ""))
	assert.ErrorIs(t, err, ErrInvalidRecord)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRepository_Recent(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	seed(t, repo, 12)

	tests := []struct {
		name      string
		n         int
		wantLen   int
		wantFirst float64
	}{
		{name: "fewer than logged", n: 10, wantLen: 10, wantFirst: 12},
		{name: "exactly logged", n: 12, wantLen: 12, wantFirst: 12},
		{name: "more than logged", n: 50, wantLen: 12, wantFirst: 12},
		{name: "one", n: 1, wantLen: 1, wantFirst: 12},
		{name: "zero", n: 0, wantLen: 0},
		{name: "negative", n: -3, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := repo.Recent(tt.n)
			require.NoError(t, err)
			require.NotNil(t, entries)
			require.Len(t, entries, tt.wantLen)
			if tt.wantLen == 0 {
				return
			}
			assert.Equal(t, tt.wantFirst, entries[0].Operand1)
			for i := 1; i < len(entries); i++ {
				assert.Greater(t, entries[i-1].ID, entries[i].ID, "entries must be newest first")
			}
		})
	}
}

func TestRepository_Recent_Empty(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	entries, err := repo.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRepository_All(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	seed(t, repo, 3)

	entries, err := repo.All()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, []float64{1, 2, 3}, []float64{entries[0].Operand1, entries[1].Operand1, entries[2].Operand1})
}

func TestRepository_Latest_Empty(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	_, err := repo.Latest()
	assert.ErrorIs(t, err, ErrEmptyLog)
}

func TestRepository_UnaryRecordKeepsZeroOperand(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	_, err := repo.Append(record(81, 0, operation.OpSqrt, 9, "2024-01-01 10:00:00"))
	require.NoError(t, err)

	latest, err := repo.Latest()
	require.NoError(t, err)
	assert.Equal(t, operation.OpSqrt, latest.Record().Operator)
	assert.Zero(t, latest.Operand2)
}
