package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource (claim, rule, employee) could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidState indicates that the requested action is illegal from the claim's current stage.
var ErrInvalidState = errors.New("action not allowed from current claim stage")

// ErrWrongStage indicates that the acting user's role does not match the claim's current pending stage.
var ErrWrongStage = errors.New("actor role does not match claim's pending stage")

// ErrUnknownField indicates that an HR edit referenced a field that is not editable.
var ErrUnknownField = errors.New("unknown claim field")

// ErrRuleConflict indicates that a skip-rule set contains ambiguous overlapping rules.
// Raised only by the rule-authoring validation pass, never during resolution.
var ErrRuleConflict = errors.New("skip rule conflict")

// ErrForbidden indicates the authenticated user is not allowed to perform the requested action.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates missing or invalid authentication.
var ErrUnauthorized = errors.New("unauthorized")

// AppError carries a status code alongside a wrapped cause.
// Used primarily by the repository layer for infrastructure failures.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
