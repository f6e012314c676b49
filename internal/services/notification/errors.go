package notification

import "errors"

// Service errors
var (
	ErrNotOwner = errors.New("notification does not belong to caller")
)
