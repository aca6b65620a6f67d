package analyses

import "errors"

var (
	ErrNotFound  = errors.New("not found")
	ErrInvalidID = errors.New("invalid analysis id")
)
