package errors

import (
	"fmt"
	"runtime"
	"strings"
)

// wrap is the internal error type used to attach trace information to an
// underlying error. As an error is returned up the stack it gets wrapped in
// wrap structures each recording the location of the Trace call.
type wrap struct {
	traceFile    string
	traceLine    int
	traceMessage string

	previous error
}

// Error returns the error message of the underlying error.
func (e *wrap) Error() string {
	if e.previous != nil {
		return e.previous.Error()
	}
	return e.traceMessage
}

func (e *wrap) setLocation(callDepth int) {
	_, file, line, _ := runtime.Caller(callDepth + 1)
	e.traceFile = file
	e.traceLine = line
}

// Newf creates a new raw error and traces it.
func Newf(format string, args ...interface{}) error {
	err := &wrap{
		previous: fmt.Errorf(format, args...),
	}
	err.setLocation(1)
	return err
}

// Trace attaches a location to the error. It should be called each time an
// error is returned. If the error is nil, it returns nil.
func Trace(other error) error {
	if other == nil {
		return nil
	}
	err := &wrap{
		previous: other,
	}
	err.setLocation(1)
	return err
}

// Tracef attaches a location and an annotation to the error. If the error is
// nil, it returns nil.
func Tracef(other error, format string, args ...interface{}) error {
	if other == nil {
		return nil
	}
	err := &wrap{
		traceMessage: fmt.Sprintf(format, args...),
		previous:     other,
	}
	err.setLocation(1)
	return err
}

// Cause returns the underlying error at the origin of the trace.
func Cause(err error) error {
	for err != nil {
		w, ok := err.(*wrap)
		if !ok {
			return err
		}
		err = w.previous
	}
	return err
}

// ErrorStack returns the lines of the trace attached to the error, innermost
// first.
func ErrorStack(err error) []string {
	if err == nil {
		return nil
	}
	lines := []string{}
	for err != nil {
		switch e := err.(type) {
		case *wrap:
			line := fmt.Sprintf("%s:%d", e.traceFile, e.traceLine)
			if e.traceMessage != "" {
				line = fmt.Sprintf("%s: %s", line, e.traceMessage)
			}
			lines = append(lines, line)
			err = e.previous
		case *userError:
			lines = append(lines, fmt.Sprintf(
				"[%d] %s: %s", e.status, e.code, e.message))
			err = e.cause
		default:
			lines = append(lines, e.Error())
			err = nil
		}
	}
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
	return lines
}

// Details returns a printable representation of the error along with its
// trace, for logging or fatal output.
func Details(err error) string {
	if err == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s\n  %s",
		err.Error(), strings.Join(ErrorStack(err), "\n  "))
}
