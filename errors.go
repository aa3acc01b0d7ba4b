package gmtstamp

import (
	"errors"
	"fmt"
)

type Kind string

const (
	// The parameter needs a newer GMT than the one in use.
	KindUnsupportedFeature Kind = "unsupported feature"

	// The parameter value is rejected before GMT is called.
	KindInvalidValue Kind = "invalid value"

	// GMT itself failed. The cause carries its stderr as-is.
	KindEngine Kind = "engine"
)

type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func newError(kind Kind, message string, cause error) error {
	return &Error{
		Kind:    kind,
		Message: message,
		Cause:   cause,
	}
}

func IsUnsupportedFeature(err error) bool {
	return isKind(err, KindUnsupportedFeature)
}

func IsInvalidValue(err error) bool {
	return isKind(err, KindInvalidValue)
}

func IsEngine(err error) bool {
	return isKind(err, KindEngine)
}

func isKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
