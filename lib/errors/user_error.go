package errors

import "fmt"

// UserError is the interface an error has to comply with to be consumable by
// an external client of the service. User errors carry an HTTP status along
// with a stable error code and a human readable message.
type UserError interface {
	error
	Status() int
	Code() string
	Message() string
	Cause() error
}

// userError is the internal implementation of UserError.
type userError struct {
	status  int
	code    string
	message string
	cause   error
}

// Error returns the consumable message of the user error.
func (e *userError) Error() string {
	return e.message
}

// Status returns the HTTP status associated with the user error.
func (e *userError) Status() int {
	return e.status
}

// Code returns the stable error code associated with the user error.
func (e *userError) Code() string {
	return e.code
}

// Message returns the consumable message of the user error.
func (e *userError) Message() string {
	return e.message
}

// Cause returns the underlying error that triggered the user error, if any.
func (e *userError) Cause() error {
	return e.cause
}

// NewUserError creates a new user error with the specified status, code and
// message, marking err as its cause (err can be nil).
func NewUserError(
	err error,
	status int,
	code string,
	message string,
) UserError {
	return &userError{
		status:  status,
		code:    code,
		message: message,
		cause:   err,
	}
}

// NewUserErrorf creates a new user error with the specified status, code and
// formatted message, marking err as its cause (err can be nil).
func NewUserErrorf(
	err error,
	status int,
	code string,
	format string,
	args ...interface{},
) UserError {
	return &userError{
		status:  status,
		code:    code,
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// ExtractUserError extracts the most recent UserError attached to the error
// trace, or nil if the error does not carry one.
func ExtractUserError(err error) UserError {
	for err != nil {
		switch e := err.(type) {
		case UserError:
			return e
		case *wrap:
			err = e.previous
		default:
			return nil
		}
	}
	return nil
}

// ConcreteUserError is the materialization of a UserError for marshalling.
type ConcreteUserError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Build constructs a ConcreteUserError from a UserError.
func Build(err UserError) *ConcreteUserError {
	return &ConcreteUserError{
		Status:  err.Status(),
		Code:    err.Code(),
		Message: err.Message(),
	}
}
