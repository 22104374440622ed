// Package errs defines the failure taxonomy shared by model bundles, codecs and
// the cross validation harness.
package errs

import (
	"errors"
	"fmt"
)

// FormatError reports a structurally invalid model bundle: a missing canonical
// artifact, an artifact of the wrong capability or an unsupported format version.
type FormatError struct {
	Msg string
	Err error
}

func (e *FormatError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("invalid format: %s: %v", e.Msg, e.Err)
	}
	return "invalid format: " + e.Msg
}

func (e *FormatError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ConfigurationError is returned during setup, before any training starts.
type ConfigurationError struct {
	Msg string
	Err error
}

func (e *ConfigurationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("configuration: %s: %v", e.Msg, e.Err)
	}
	return "configuration: " + e.Msg
}

func (e *ConfigurationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IOError wraps a read or index failure with the operation that was running.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func NewFormatError(format string, args ...interface{}) error {
	return &FormatError{Msg: fmt.Sprintf(format, args...)}
}

func WrapFormat(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	var formatErr *FormatError
	if errors.As(err, &formatErr) {
		return err
	}
	return &FormatError{Msg: fmt.Sprintf(format, args...), Err: err}
}

func NewConfigurationError(format string, args ...interface{}) error {
	return &ConfigurationError{Msg: fmt.Sprintf(format, args...)}
}

func WrapConfiguration(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ConfigurationError{Msg: fmt.Sprintf(format, args...), Err: err}
}

// WrapIO adds op as context to err. An error that already is an IOError is
// returned as is so context is not stacked twice.
func WrapIO(op string, err error) error {
	if err == nil {
		return nil
	}
	var ioErr *IOError
	if errors.As(err, &ioErr) {
		return err
	}
	return &IOError{Op: op, Err: err}
}

func IsFormat(err error) bool {
	var target *FormatError
	return errors.As(err, &target)
}

func IsConfiguration(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

func IsIO(err error) bool {
	var target *IOError
	return errors.As(err, &target)
}
