package usagelimits

import "errors"

var (
	// ErrNoRecordForDate indicates no usage record exists for the requested date.
	ErrNoRecordForDate = errors.New("no usage record for date")
	// ErrLimitReached indicates the tier's daily usage limit is exhausted.
	ErrLimitReached = errors.New("limit reached")
	// ErrUnknownTier indicates a tier other than JR or SR.
	ErrUnknownTier = errors.New("unknown tier")
)
