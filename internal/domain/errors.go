package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindConfiguration           ErrorKind = "ConfigurationError"
	KindUpstreamRateLimited     ErrorKind = "UpstreamRateLimited"
	KindUpstreamInvalidResponse ErrorKind = "UpstreamInvalidResponse"
	KindUpstreamUnavailable     ErrorKind = "UpstreamUnavailable"
	KindStockNotFound           ErrorKind = "StockNotFound"
	KindInsufficientBalance     ErrorKind = "InsufficientBalance"
	KindInsufficientShares      ErrorKind = "InsufficientShares"
	KindInvalidQuantity         ErrorKind = "InvalidQuantity"
	KindUnauthenticated         ErrorKind = "Unauthenticated"
	KindStorageUnavailable      ErrorKind = "StorageUnavailable"
	KindLessonNotFound          ErrorKind = "LessonNotFound"
	KindInvalidInput            ErrorKind = "InvalidInput"
	KindInternal                ErrorKind = "Internal"
)

// Error is a failure with a kind the request layer can act on. Message is
// safe to show to users; Err carries the underlying cause, if any.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err.Error())
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

func WrapError(kind ErrorKind, err error, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// KindOf returns the kind of the outermost *Error in err's chain, or
// KindInternal when there is none.
func KindOf(err error) ErrorKind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// UserMessage is the message of the outermost *Error, falling back to the
// raw error text.
func UserMessage(err error) string {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return err.Error()
}
