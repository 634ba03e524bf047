package scheduling

import "fmt"

// ErrorCode classifies scheduling failures for callers. Validation codes
// mean the caller picked bad input; conflict codes mean the world changed
// since the caller last looked; store_unavailable is the only code a caller
// may retry, and only for idempotent operations.
type ErrorCode string

const (
	CodeInvalidSlot       ErrorCode = "invalid_slot"
	CodeOutOfHorizon      ErrorCode = "out_of_horizon"
	CodePastSlot          ErrorCode = "past_slot"
	CodeSlotTaken         ErrorCode = "slot_taken"
	CodeIllegalTransition ErrorCode = "illegal_transition"
	CodeNotFound          ErrorCode = "not_found"
	CodeForbidden         ErrorCode = "forbidden"
	CodeStoreUnavailable  ErrorCode = "store_unavailable"
)

// Error is the domain error type of the scheduling engine.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches by code so wrapped and re-worded instances compare equal to
// the package sentinels under errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Sentinels for errors.Is checks. Functions below produce instances with
// specific messages; they all compare equal to these by code.
var (
	ErrInvalidSlot       = &Error{CodeInvalidSlot, "date or time is malformed, or time is not a bookable slot"}
	ErrOutOfHorizon      = &Error{CodeOutOfHorizon, "date is outside the allowed booking horizon"}
	ErrPastSlot          = &Error{CodePastSlot, "the requested slot is in the past"}
	ErrSlotTaken         = &Error{CodeSlotTaken, "this slot was just taken"}
	ErrIllegalTransition = &Error{CodeIllegalTransition, "the requested status transition is not allowed"}
	ErrNotFound          = &Error{CodeNotFound, "booking not found"}
	ErrForbidden         = &Error{CodeForbidden, "actor is not allowed to perform this operation"}
	ErrStoreUnavailable  = &Error{CodeStoreUnavailable, "booking store unavailable; availability unknown"}
)

func newError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}
