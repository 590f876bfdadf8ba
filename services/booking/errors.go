package booking

import (
	"errors"
	"fmt"
)

// Error codes for the booking domain.
const (
	CodeNotFound   = "not_found"
	CodeConflict   = "conflict"
	CodeValidation = "validation"
)

type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewNotFound(msg string) error {
	return &Error{Code: CodeNotFound, Message: msg}
}

func NewConflict(msg string) error {
	return &Error{Code: CodeConflict, Message: msg}
}

func NewValidation(msg string) error {
	return &Error{Code: CodeValidation, Message: msg}
}

func isCode(err error, code string) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

func IsNotFound(err error) bool   { return isCode(err, CodeNotFound) }
func IsConflict(err error) bool   { return isCode(err, CodeConflict) }
func IsValidation(err error) bool { return isCode(err, CodeValidation) }
