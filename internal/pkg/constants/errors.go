package constants

import "net/http"

// CodedError is an error carrying the HTTP status it should surface with.
// Services return these (possibly wrapped), the api error handler unwraps them.
type CodedError struct {
	code    int
	message string
}

func NewCodedError(code int, message string) *CodedError {
	return &CodedError{code: code, message: message}
}

func (e *CodedError) Error() string {
	return e.message
}

func (e *CodedError) Code() int {
	return e.code
}

var (
	// store-level
	ErrDBNotFound         = NewCodedError(http.StatusNotFound, "not found")
	ErrUniquenessConflict = NewCodedError(http.StatusConflict, "uniqueness conflict")

	// referenced rows
	ErrAreaNotFound      = NewCodedError(http.StatusNotFound, "area not found")
	ErrProgramNotFound   = NewCodedError(http.StatusNotFound, "program not found")
	ErrIndicatorNotFound = NewCodedError(http.StatusNotFound, "indicator not found")
	ErrPeriodNotFound    = NewCodedError(http.StatusNotFound, "period not found")
	ErrUserNotFound      = NewCodedError(http.StatusNotFound, "user not found")
	ErrBatchNotFound     = NewCodedError(http.StatusNotFound, "batch not found")
	ErrFileNotFound      = NewCodedError(http.StatusNotFound, "file not found")
	ErrTargetNotFound    = NewCodedError(http.StatusNotFound, "target not found")

	// integrity violations, detected before any mutation
	ErrProgramRequired     = NewCodedError(http.StatusUnprocessableEntity, "program required for this indicator")
	ErrProgramAreaMismatch = NewCodedError(http.StatusUnprocessableEntity, "program does not belong to indicator's area")
	ErrInvalidPeriodShape  = NewCodedError(http.StatusUnprocessableEntity, "invalid period discriminators")

	// access
	ErrPermissionDenied  = NewCodedError(http.StatusForbidden, "permission denied")
	ErrUnauthorized      = NewCodedError(http.StatusUnauthorized, "unauthorized")
	ErrMissingAuthCookie = NewCodedError(http.StatusUnauthorized, "missing auth cookie")
)
