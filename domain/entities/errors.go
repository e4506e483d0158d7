package entities

import (
	"errors"
)

// ErrorKind classifies a domain error so callers can map it to a response
type ErrorKind string

const (
	ErrorKindValidation    ErrorKind = "validation"
	ErrorKindState         ErrorKind = "state"
	ErrorKindAuthorization ErrorKind = "authorization"
	ErrorKindInvalidInput  ErrorKind = "invalid_input"
	ErrorKindNotFound      ErrorKind = "not_found"
	ErrorKindInternal      ErrorKind = "internal"
)

// DomainError is a user-facing failure with a stable kind
type DomainError struct {
	Kind    ErrorKind
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by kind and message so wrapped copies still compare equal
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// NewValidationError creates a validation error with the given message
func NewValidationError(message string) *DomainError {
	return &DomainError{Kind: ErrorKindValidation, Message: message}
}

// NewNotFoundError creates a not-found error with the given message
func NewNotFoundError(message string) *DomainError {
	return &DomainError{Kind: ErrorKindNotFound, Message: message}
}

// Lifecycle and authorization errors
var (
	ErrBetNotOpen           = &DomainError{Kind: ErrorKindState, Message: "bet must be open to close"}
	ErrBetNotClosed         = &DomainError{Kind: ErrorKindState, Message: "bet must be closed to settle"}
	ErrBetAlreadySettled    = &DomainError{Kind: ErrorKindState, Message: "bet already settled"}
	ErrBetNotAcceptingWager = &DomainError{Kind: ErrorKindState, Message: "bet is not accepting wagers"}
	ErrNotHostOrCreator     = &DomainError{Kind: ErrorKindAuthorization, Message: "only the host or the bet creator can close or settle a bet"}
	ErrInvalidWinningOption = &DomainError{Kind: ErrorKindInvalidInput, Message: "winning option does not belong to this bet"}
	ErrInvalidOption        = &DomainError{Kind: ErrorKindInvalidInput, Message: "option does not belong to this bet"}
	ErrBetNotFound          = &DomainError{Kind: ErrorKindNotFound, Message: "bet not found"}
	ErrPartyNotFound        = &DomainError{Kind: ErrorKindNotFound, Message: "party not found"}
)

// KindOf returns the kind of the first domain error in err's chain, or internal
func KindOf(err error) ErrorKind {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return ErrorKindInternal
}
