package operation

import "errors"

// Sentinel errors for evaluation failures.
var (
	// ErrInput is returned for non-numeric or missing input text.
	ErrInput = errors.New("input error")

	// ErrDomain is returned for values outside a formula's domain
	// (negative square root, unknown operator, non-finite result).
	ErrDomain = errors.New("domain error")

	// ErrDivision is returned when a formula would divide by zero.
	ErrDivision = errors.New("division by zero")
)

// ErrorKind is the wire form of an evaluation failure.
type ErrorKind string

const (
	KindInput    ErrorKind = "input"
	KindDomain   ErrorKind = "domain"
	KindDivision ErrorKind = "division"
	KindInternal ErrorKind = "internal"
)

// KindOf classifies err by the sentinel it wraps.
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrInput):
		return KindInput
	case errors.Is(err, ErrDomain):
		return KindDomain
	case errors.Is(err, ErrDivision):
		return KindDivision
	default:
		return KindInternal
	}
}

// Sentinel returns the sentinel error for kind, or nil for KindInternal.
func (k ErrorKind) Sentinel() error {
	switch k {
	case KindInput:
		return ErrInput
	case KindDomain:
		return ErrDomain
	case KindDivision:
		return ErrDivision
	default:
		return nil
	}
}

// Error carries an evaluation failure across a service boundary. It unwraps
// to the sentinel of its Kind so errors.Is keeps working on the caller side.
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// NewError converts err into its wire form. A nil err yields nil.
func NewError(err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindOf(err), Message: err.Error()}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind.Sentinel()
}
