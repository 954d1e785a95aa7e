// Package fault defines the failure taxonomy shared by every stegano
// operation.
//
// Each failure carries a Kind that callers can branch on without parsing
// messages. Errors compare equal under errors.Is when their kinds match, so
// the exported sentinels work as targets:
//
//	if errors.Is(err, fault.ErrDelimiterNotFound) {
//		// no hidden message in this carrier
//	}
//
// Use the Builder to attach context:
//
//	err := fault.New(fault.KindCapacityExceeded).
//		Detail("message needs %d bits, carrier has %d", need, have).
//		Build()
package fault

import (
	"errors"
	"fmt"
	"strings"
)

// Kind categorizes a failure.
type Kind string

const (
	KindEmptyMessage              Kind = "empty_message"
	KindMessageSourceConflict     Kind = "message_source_conflict"
	KindUnsupportedCarrierFormat  Kind = "unsupported_carrier_format"
	KindCapacityExceeded          Kind = "capacity_exceeded"
	KindUnsupportedSampleWidth    Kind = "unsupported_sample_width"
	KindInsufficientCoverCapacity Kind = "insufficient_cover_capacity"
	KindDelimiterNotFound         Kind = "delimiter_not_found"
	KindTruncatedPayload          Kind = "truncated_payload"
	KindCarrierIO                 Kind = "carrier_io_error"
	KindOutputIO                  Kind = "output_io_error"
)

var (
	ErrEmptyMessage              = &Error{Kind: KindEmptyMessage}
	ErrMessageSourceConflict     = &Error{Kind: KindMessageSourceConflict}
	ErrUnsupportedCarrierFormat  = &Error{Kind: KindUnsupportedCarrierFormat}
	ErrCapacityExceeded          = &Error{Kind: KindCapacityExceeded}
	ErrUnsupportedSampleWidth    = &Error{Kind: KindUnsupportedSampleWidth}
	ErrInsufficientCoverCapacity = &Error{Kind: KindInsufficientCoverCapacity}
	ErrDelimiterNotFound         = &Error{Kind: KindDelimiterNotFound}
	ErrTruncatedPayload          = &Error{Kind: KindTruncatedPayload}
	ErrCarrierIO                 = &Error{Kind: KindCarrierIO}
	ErrOutputIO                  = &Error{Kind: KindOutputIO}
)

// Error is the structured failure returned by stegano operations.
type Error struct {
	Cause  error
	Kind   Kind
	Path   string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Path != "" {
		b.WriteString(" [")
		b.WriteString(e.Path)
		b.WriteByte(']')
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}
	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// KindOf returns the kind of the first *Error in err's chain,
// or the empty Kind if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(kind Kind) *Builder {
	return &Builder{err: Error{Kind: kind}}
}

// Path sets the file the failure relates to
func (b *Builder) Path(path string) *Builder {
	b.err.Path = path
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Wrap annotates err with a kind. A nil err yields nil.
func Wrap(kind Kind, err error, path string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Path: path, Cause: err}
}
