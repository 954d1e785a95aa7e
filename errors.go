package stegano

import "github.com/yyyoichi/stegano_zero/fault"

type (
	// Kind distinguishes failures; see the fault package.
	Kind = fault.Kind
	// Error is the structured failure returned by every operation.
	Error = fault.Error
)

var (
	ErrEmptyMessage              = fault.ErrEmptyMessage
	ErrMessageSourceConflict     = fault.ErrMessageSourceConflict
	ErrUnsupportedCarrierFormat  = fault.ErrUnsupportedCarrierFormat
	ErrCapacityExceeded          = fault.ErrCapacityExceeded
	ErrUnsupportedSampleWidth    = fault.ErrUnsupportedSampleWidth
	ErrInsufficientCoverCapacity = fault.ErrInsufficientCoverCapacity
	ErrDelimiterNotFound         = fault.ErrDelimiterNotFound
	ErrTruncatedPayload          = fault.ErrTruncatedPayload
	ErrCarrierIO                 = fault.ErrCarrierIO
	ErrOutputIO                  = fault.ErrOutputIO
)

// KindOf returns the failure kind of err, or "" for foreign errors.
func KindOf(err error) Kind {
	return fault.KindOf(err)
}
