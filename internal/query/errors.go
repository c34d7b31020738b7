package query

import "errors"

var (
	ErrStatus    = errors.New("unexpected status")
	ErrTransport = errors.New("transport failure")
	ErrTimeout   = errors.New("request timed out")
)

type Kind int

const (
	KindStatus Kind = iota + 1
	KindTransport
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindStatus:
		return "status"
	case KindTransport:
		return "transport"
	case KindTimeout:
		return "timeout"
	}
	return "unknown"
}

// Error is a classified failure from a single query.
//
// Use errors.Is with ErrStatus, ErrTransport or ErrTimeout to match on the kind,
// or errors.As to get at the status code and message.
type Error struct {
	Kind Kind
	// StatusCode is 0 unless Kind is KindStatus
	StatusCode int
	Message    string
	// Extracted is true when Message was read from the response body
	Extracted bool
	Cause     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrStatus:
		return e.Kind == KindStatus
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrTimeout:
		return e.Kind == KindTimeout
	}
	return false
}

// WithMessage returns a copy of the error with the message replaced
func (e *Error) WithMessage(message string) *Error {
	withMessage := *e
	withMessage.Message = message
	return &withMessage
}
