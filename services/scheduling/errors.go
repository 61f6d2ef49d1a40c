package scheduling

import "fmt"

const (
	CodeInvalidFormat     = "invalidFormat"
	CodeInvalidRange      = "invalidRange"
	CodeSlotUnavailable   = "slotUnavailable"
	CodeInvalidTransition = "invalidTransition"
	CodeInvalidProviderID = "invalidProviderId"
)

// Error is the typed failure returned by every engine operation.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches on Code so callers can use errors.Is against the sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrInvalidFormat     = &Error{Code: CodeInvalidFormat, Message: "malformed date or time"}
	ErrInvalidRange      = &Error{Code: CodeInvalidRange, Message: "range start must precede its end"}
	ErrSlotUnavailable   = &Error{Code: CodeSlotUnavailable, Message: "requested time is not available"}
	ErrInvalidTransition = &Error{Code: CodeInvalidTransition, Message: "booking status change not allowed"}
	ErrInvalidProviderID = &Error{Code: CodeInvalidProviderID, Message: "malformed provider id"}
)

func newError(code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Errorf builds a typed error with the given code for callers outside the engine.
func Errorf(code, format string, args ...any) error {
	return newError(code, format, args...)
}
