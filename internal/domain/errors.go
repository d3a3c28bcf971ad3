package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure. The HTTP layer owns the single
// translation table from kinds to status codes.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindAuthorization
	KindValidation
	KindUnavailableItem
	KindConflict
)

type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Authorization(format string, args ...any) error {
	return &Error{Kind: KindAuthorization, Msg: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func UnavailableItem(format string, args ...any) error {
	return &Error{Kind: KindUnavailableItem, Msg: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// KindOf unwraps err and reports its domain kind, or KindUnknown for
// errors that did not originate in the domain layer.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}
