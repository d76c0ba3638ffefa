// Package zerr defines the error taxonomy shared by codec and zpaq:
// Io, InvalidFormat, UnsupportedVersion, InvalidOption and Corrupt.
// Each kind is a sentinel base error; call sites wrap it with context
// using Wrap so callers can still match with errors.Is.
package zerr

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel kinds. Match against these with errors.Is.
var (
	ErrIo                = errors.New("io error")
	ErrInvalidFormat     = errors.New("invalid format")
	ErrUnsupportedVersion = errors.New("unsupported version")
	ErrInvalidOption     = errors.New("invalid option")
	ErrCorrupt           = errors.New("corrupt stream")
)

// InvalidFormat builds an InvalidFormat error carrying reason.
func InvalidFormat(reason string) error {
	return errors.Wrap(ErrInvalidFormat, reason)
}

// UnsupportedVersion builds an UnsupportedVersion error for version v.
func UnsupportedVersion(v byte) error {
	return errors.Wrapf(ErrUnsupportedVersion, "version %d", v)
}

// InvalidOption builds an InvalidOption error carrying reason.
func InvalidOption(reason string) error {
	return errors.Wrap(ErrInvalidOption, reason)
}

// Corrupt builds a Corrupt error carrying reason.
func Corrupt(reason string) error {
	return errors.Wrap(ErrCorrupt, reason)
}

// Io wraps an underlying I/O failure from the byte-stream boundary.
func Io(err error) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(ErrIo, err.Error())
}

// Wrapf attaches additional context to any error kind while keeping it
// matchable with errors.Is against the original sentinel.
func Wrapf(err error, format string, args ...any) error {
	return errors.Wrapf(err, format, args...)
}

// Is is a re-export of errors.Is for callers that only import zerr.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Format renders err with a stack trace when available, for CLI
// top-level error reporting.
func Format(err error) string {
	return fmt.Sprintf("%+v", err)
}
