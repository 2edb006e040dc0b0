package dialog

import (
	"errors"
	"fmt"
	"strings"
)

// Code classifies dialog failures.
type Code int

const (
	CodeIO Code = iota + 1
	CodeInvalidString
	CodeNoImplementation
	CodeKilled
	CodeInvalidPercentage
	CodeImplementation
)

func (c Code) String() string {
	switch c {
	case CodeIO:
		return "io failure"
	case CodeInvalidString:
		return "invalid string"
	case CodeNoImplementation:
		return "no dialog implementation available"
	case CodeKilled:
		return "dialog process killed"
	case CodeInvalidPercentage:
		return "invalid percentage"
	case CodeImplementation:
		return "dialog implementation error"
	default:
		return fmt.Sprintf("code(%d)", int(c))
	}
}

// Error is returned by every dialog operation that fails.
// User cancellation is never reported as an Error.
type Error struct {
	Code Code
	Op   string // backend or operation, e.g. "zenity" or "progress"
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	parts := make([]string, 0, 4)
	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	parts = append(parts, e.Code.String())
	if e.Msg != "" {
		parts = append(parts, e.Msg)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the code sentinels below, so errors.Is(err, ErrKilled) works
// for any killed-process error regardless of its details.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.Msg == "" && t.Err == nil && t.Code == e.Code
}

// Code sentinels for errors.Is.
var (
	ErrIO                = &Error{Code: CodeIO}
	ErrInvalidString     = &Error{Code: CodeInvalidString}
	ErrNoImplementation  = &Error{Code: CodeNoImplementation}
	ErrKilled            = &Error{Code: CodeKilled}
	ErrInvalidPercentage = &Error{Code: CodeInvalidPercentage}
	ErrImplementation    = &Error{Code: CodeImplementation}
)

// ErrAlreadyShown is returned when a finalized request is shown a second time.
var ErrAlreadyShown = errors.New("dialog request already shown")

// IOError wraps a subprocess or pipe failure.
func IOError(op string, err error) error {
	return &Error{Code: CodeIO, Op: op, Err: err}
}

// InvalidString reports backend output that is not valid UTF-8 or is malformed.
func InvalidString(op, msg string) error {
	return &Error{Code: CodeInvalidString, Op: op, Msg: msg}
}

// NoImplementation reports that no backend can serve the request.
func NoImplementation(msg string) error {
	return &Error{Code: CodeNoImplementation, Msg: msg}
}

// Killed reports a backend process terminated by a signal.
func Killed(program string) error {
	return &Error{Code: CodeKilled, Op: program}
}

// InvalidPercentage reports a progress value outside 0..100.
func InvalidPercentage(percent float64) error {
	return &Error{Code: CodeInvalidPercentage, Msg: fmt.Sprintf("%g is outside 0..100", percent)}
}

// Implementation reports a backend failure it described itself.
func Implementation(op, msg string) error {
	return &Error{Code: CodeImplementation, Op: op, Msg: msg}
}
