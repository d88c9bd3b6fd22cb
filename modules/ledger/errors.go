package ledger

import "errors"

// Sentinel errors for ledger operations.
var (
	// ErrEmptyLog is returned by Latest when nothing has been logged yet.
	ErrEmptyLog = errors.New("operation log is empty")

	// ErrInvalidRecord is returned when a record is missing its operator or timestamp.
	ErrInvalidRecord = errors.New("invalid operation record")

	// ErrInvalidDestination is returned when an export destination is empty.
	ErrInvalidDestination = errors.New("invalid export destination")
)

// ErrorCode is the wire form of a ledger failure.
type ErrorCode string

const (
	CodeEmptyLog           ErrorCode = "empty_log"
	CodeInvalidRecord      ErrorCode = "invalid_record"
	CodeInvalidDestination ErrorCode = "invalid_destination"
	CodeStorage            ErrorCode = "storage"
)

// Error carries a ledger failure across a service boundary. It unwraps to
// the sentinel of its Code, so errors.Is keeps working on the caller side.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// newError converts err into its wire form. A nil err yields nil.
func newError(err error) *Error {
	if err == nil {
		return nil
	}
	code := CodeStorage
	switch {
	case errors.Is(err, ErrEmptyLog):
		code = CodeEmptyLog
	case errors.Is(err, ErrInvalidRecord):
		code = CodeInvalidRecord
	case errors.Is(err, ErrInvalidDestination):
		code = CodeInvalidDestination
	}
	return &Error{Code: code, Message: err.Error()}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	switch e.Code {
	case CodeEmptyLog:
		return ErrEmptyLog
	case CodeInvalidRecord:
		return ErrInvalidRecord
	case CodeInvalidDestination:
		return ErrInvalidDestination
	default:
		return nil
	}
}
