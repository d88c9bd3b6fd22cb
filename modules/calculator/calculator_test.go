package calculator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/finance-calculator/config"
	"github.com/example/finance-calculator/domain/operation"
	"github.com/example/finance-calculator/modules/evaluator"
	"github.com/example/finance-calculator/modules/ledger"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(_ string, _ ...any)         {}
func (m *mockLogger) Info(_ string, _ ...any)          {}
func (m *mockLogger) Warn(_ string, _ ...any)          {}
func (m *mockLogger) Error(_ string, _ ...any)         {}
func (m *mockLogger) With(_ ...any) types.Logger       { return m }
func (m *mockLogger) WithModule(_ string) types.Logger { return m }
func (m *mockLogger) WithError(_ error) types.Logger   { return m }

// fakeEvaluator runs the real formula table in-process.
type fakeEvaluator struct {
	eval *evaluator.Evaluator
	err  error
}

func newFakeEvaluator() *fakeEvaluator {
	return &fakeEvaluator{eval: evaluator.NewEvaluator(config.Months)}
}

func (f *fakeEvaluator) Evaluate(_ context.Context, req evaluator.EvaluateRequest) (*evaluator.Evaluation, error) {
	if f.err != nil {
		return nil, f.err
	}
	op, err := operation.ParseOperator(req.Operator)
	if err != nil {
		return nil, operation.NewError(err)
	}
	in, err := evaluator.ParseOperands(op, req.Operand1, req.Operand2, req.Operand3)
	if err != nil {
		return nil, operation.NewError(err)
	}
	result, err := f.eval.Evaluate(op, in)
	if err != nil {
		return nil, operation.NewError(err)
	}
	return &evaluator.Evaluation{Operator: op, Operands: in, Result: result}, nil
}

// fakeLedger keeps records in memory.
type fakeLedger struct {
	records   []operation.Record
	appendErr error
	recentErr error
	exportErr error
	exported  []string
}

func (f *fakeLedger) Append(_ context.Context, rec operation.Record) (*ledger.AppendResponse, error) {
	if f.appendErr != nil {
		return nil, f.appendErr
	}
	f.records = append(f.records, rec)
	return &ledger.AppendResponse{ID: uint(len(f.records)), Record: rec}, nil
}

func (f *fakeLedger) Recent(_ context.Context, n int) ([]operation.Record, error) {
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	out := []operation.Record{}
	for i := len(f.records) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, f.records[i])
	}
	return out, nil
}

func (f *fakeLedger) ExportAll(_ context.Context, destination string) (*ledger.ExportResponse, error) {
	if f.exportErr != nil {
		return nil, f.exportErr
	}
	f.exported = append(f.exported, destination)
	return &ledger.ExportResponse{ID: "export-1", Destination: destination, Rows: len(f.records)}, nil
}

func (f *fakeLedger) Latest(_ context.Context) (*operation.Record, error) {
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	if len(f.records) == 0 {
		return nil, ledger.ErrEmptyLog
	}
	rec := f.records[len(f.records)-1]
	return &rec, nil
}

func newTestCalculator(eval evaluator.EvaluatorPort, store ledger.LedgerPort) *Calculator {
	c := NewCalculator(eval, store, 10, "report.csv", &mockLogger{})
	c.now = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local) }
	return c
}

func TestCalculator_Calculate(t *testing.T) {
	store := &fakeLedger{}
	c := newTestCalculator(newFakeEvaluator(), store)

	resp := c.Calculate(context.Background(), CalculateRequest{Operator: "+", Operand1: "2", Operand2: "3"})

	require.Nil(t, resp.Error)
	require.NotNil(t, resp.Record)
	assert.Equal(t, uint(1), resp.ID)
	assert.Equal(t, 5.0, resp.Record.Result)
	assert.Equal(t, "2024-03-09 14:05:07", resp.Record.Timestamp)
	assert.Equal(t, "Result: 5.00", resp.Display)
	assert.Equal(t, []string{"2 + 3 = 5.00"}, resp.History)
	require.Len(t, store.records, 1)
}

func TestCalculator_Calculate_Financial(t *testing.T) {
	tests := []struct {
		name    string
		req     CalculateRequest
		display string
		line    string
	}{
		{
			name:    "emi",
			req:     CalculateRequest{Operator: "EMI", Operand1: "100000", Operand2: "10", Operand3: "12"},
			display: "Result: 8791.59",
			line:    "100000 EMI 10 = 8791.59",
		},
		{
			name:    "compound interest",
			req:     CalculateRequest{Operator: "CI", Operand1: "1000", Operand2: "5", Operand3: "2"},
			display: "Result: 102.50",
			line:    "1000 CI 5 = 102.50",
		},
		{
			name:    "simple interest",
			req:     CalculateRequest{Operator: "SI", Operand1: "1000", Operand2: "5", Operand3: "2"},
			display: "Result: 100.00",
			line:    "1000 SI 5 = 100.00",
		},
		{
			name:    "square root",
			req:     CalculateRequest{Operator: "√", Operand1: "81"},
			display: "Result: 9.00",
			line:    "√ 81 = 9.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCalculator(newFakeEvaluator(), &fakeLedger{})

			resp := c.Calculate(context.Background(), tt.req)
			require.Nil(t, resp.Error)
			assert.Equal(t, tt.display, resp.Display)
			assert.Equal(t, []string{tt.line}, resp.History)
		})
	}
}

func TestCalculator_Calculate_Rejected(t *testing.T) {
	tests := []struct {
		name string
		req  CalculateRequest
		kind operation.ErrorKind
	}{
		{name: "non numeric", req: CalculateRequest{Operator: "+", Operand1: "abc", Operand2: "1"}, kind: operation.KindInput},
		{name: "divide by zero", req: CalculateRequest{Operator: "/", Operand1: "1", Operand2: "0"}, kind: operation.KindDivision},
		{name: "modulo by zero", req: CalculateRequest{Operator: "%", Operand1: "1", Operand2: "0"}, kind: operation.KindDivision},
		{name: "negative sqrt", req: CalculateRequest{Operator: "√", Operand1: "-4"}, kind: operation.KindDomain},
		{name: "unknown operator", req: CalculateRequest{Operator: "log", Operand1: "1"}, kind: operation.KindDomain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeLedger{}
			c := newTestCalculator(newFakeEvaluator(), store)

			resp := c.Calculate(context.Background(), tt.req)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.kind, resp.Error.Kind)
			assert.Nil(t, resp.Record)
			assert.Empty(t, resp.Display)
			assert.Empty(t, store.records, "rejected operations must not be logged")
		})
	}
}

func TestCalculator_Calculate_TransportFailure(t *testing.T) {
	eval := newFakeEvaluator()
	eval.err = errors.New("evaluate service call failed: timeout")
	store := &fakeLedger{}
	c := newTestCalculator(eval, store)

	resp := c.Calculate(context.Background(), CalculateRequest{Operator: "+", Operand1: "1", Operand2: "1"})
	require.NotNil(t, resp.Error)
	assert.Equal(t, operation.KindInternal, resp.Error.Kind)
	assert.Empty(t, store.records)
}

func TestCalculator_Calculate_AppendFailure(t *testing.T) {
	store := &fakeLedger{appendErr: errors.New("disk full")}
	c := newTestCalculator(newFakeEvaluator(), store)

	resp := c.Calculate(context.Background(), CalculateRequest{Operator: "+", Operand1: "1", Operand2: "1"})
	require.NotNil(t, resp.Error)
	assert.Equal(t, operation.KindInternal, resp.Error.Kind)
	assert.Contains(t, resp.Error.Message, "disk full")
	assert.Nil(t, resp.Record)
}

func TestCalculator_Calculate_HistoryFailureKeepsResult(t *testing.T) {
	store := &fakeLedger{recentErr: errors.New("locked")}
	c := newTestCalculator(newFakeEvaluator(), store)

	resp := c.Calculate(context.Background(), CalculateRequest{Operator: "*", Operand1: "4", Operand2: "2.5"})
	require.Nil(t, resp.Error)
	assert.Equal(t, "Result: 10.00", resp.Display)
	assert.Nil(t, resp.History)
	assert.Len(t, store.records, 1)
}

func TestCalculator_Calculate_HistoryIsBounded(t *testing.T) {
	store := &fakeLedger{}
	c := newTestCalculator(newFakeEvaluator(), store)
	ctx := context.Background()

	var resp CalculateResponse
	for i := 0; i < 12; i++ {
		resp = c.Calculate(ctx, CalculateRequest{Operator: "+", Operand1: "1", Operand2: "1"})
		require.Nil(t, resp.Error)
	}
	assert.Len(t, resp.History, 10)
	assert.Len(t, store.records, 12)
}

func TestCalculator_History(t *testing.T) {
	store := &fakeLedger{}
	c := newTestCalculator(newFakeEvaluator(), store)
	ctx := context.Background()

	c.Calculate(ctx, CalculateRequest{Operator: "+", Operand1: "2", Operand2: "3"})
	c.Calculate(ctx, CalculateRequest{Operator: "-", Operand1: "2", Operand2: "3"})

	resp, err := c.History(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"2 - 3 = -1.00", "2 + 3 = 5.00"}, resp.Lines)
	assert.Len(t, resp.Records, 2)

	resp, err = c.History(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"2 - 3 = -1.00"}, resp.Lines)
}

func TestCalculator_History_Error(t *testing.T) {
	c := newTestCalculator(newFakeEvaluator(), &fakeLedger{recentErr: errors.New("locked")})

	_, err := c.History(context.Background(), 5)
	assert.Error(t, err)
}

func TestCalculator_ExportReport(t *testing.T) {
	store := &fakeLedger{}
	c := newTestCalculator(newFakeEvaluator(), store)
	ctx := context.Background()
	c.Calculate(ctx, CalculateRequest{Operator: "+", Operand1: "2", Operand2: "3"})

	resp := c.ExportReport(ctx, "")
	require.Nil(t, resp.Error)
	assert.Equal(t, "report.csv", resp.Path)
	assert.Equal(t, 1, resp.Rows)
	assert.Equal(t, "export-1", resp.ID)

	resp = c.ExportReport(ctx, " out/custom.csv ")
	require.Nil(t, resp.Error)
	assert.Equal(t, "out/custom.csv", resp.Path)
	assert.Equal(t, []string{"report.csv", "out/custom.csv"}, store.exported)
}

func TestCalculator_ExportReport_Error(t *testing.T) {
	c := newTestCalculator(newFakeEvaluator(), &fakeLedger{exportErr: errors.New("permission denied")})

	resp := c.ExportReport(context.Background(), "report.csv")
	require.NotNil(t, resp.Error)
	assert.Equal(t, operation.KindInternal, resp.Error.Kind)
	assert.Equal(t, "report.csv", resp.Path)
}

func TestCalculator_ExportReport_InvalidDestination(t *testing.T) {
	c := newTestCalculator(newFakeEvaluator(), &fakeLedger{exportErr: &ledger.Error{
		Code:    ledger.CodeInvalidDestination,
		Message: "invalid export destination",
	}})

	resp := c.ExportReport(context.Background(), "report.csv")
	require.NotNil(t, resp.Error)
	assert.Equal(t, operation.KindInput, resp.Error.Kind)
	assert.ErrorIs(t, resp.Error, operation.ErrInput)
}

func TestCalculator_Last(t *testing.T) {
	store := &fakeLedger{}
	c := newTestCalculator(newFakeEvaluator(), store)
	ctx := context.Background()

	resp, err := c.Last(ctx)
	require.NoError(t, err)
	assert.False(t, resp.Found)
	assert.Nil(t, resp.Record)

	c.Calculate(ctx, CalculateRequest{Operator: "+", Operand1: "2", Operand2: "3"})
	c.Calculate(ctx, CalculateRequest{Operator: "√", Operand1: "81"})

	resp, err = c.Last(ctx)
	require.NoError(t, err)
	require.True(t, resp.Found)
	assert.Equal(t, operation.OpSqrt, resp.Record.Operator)
	assert.Equal(t, "√ 81 = 9.00", resp.Line)
}

func TestCalculator_Last_Error(t *testing.T) {
	c := newTestCalculator(newFakeEvaluator(), &fakeLedger{recentErr: errors.New("locked")})

	_, err := c.Last(context.Background())
	assert.Error(t, err)
}

func TestFormatRecord(t *testing.T) {
	tests := []struct {
		rec  operation.Record
		want string
	}{
		{operation.Record{Operand1: 2, Operand2: 3, Operator: operation.OpAdd, Result: 5}, "2 + 3 = 5.00"},
		{operation.Record{Operand1: 1.5, Operand2: 2, Operator: operation.OpPower, Result: 2.25}, "1.5 ^ 2 = 2.25"},
		{operation.Record{Operand1: 10, Operand2: 3, Operator: operation.OpDivide, Result: 10.0 / 3}, "10 / 3 = 3.33"},
		{operation.Record{Operand1: 2, Operator: operation.OpSqrt, Result: 1.4142135}, "√ 2 = 1.41"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRecord(tt.rec))
		})
	}
}

func TestFormatResult(t *testing.T) {
	assert.Equal(t, "Result: 102.50", FormatResult(102.5))
	assert.Equal(t, "Result: -0.50", FormatResult(-0.5))
}
