package services

import "errors"

// Kind classifies a business failure so the HTTP layer can pick a
// status code without parsing messages.
type Kind int

const (
	KindInvalidState Kind = iota
	KindNotFound
	KindForbidden
)

// Error is a business rule violation with a participant-facing message.
// The frontend surfaces these messages verbatim to explain why a
// reservation could not proceed.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func InvalidState(message string) *Error {
	return &Error{Kind: KindInvalidState, Message: message}
}

// AsError extracts a business error, if err is one.
func AsError(err error) (*Error, bool) {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}
