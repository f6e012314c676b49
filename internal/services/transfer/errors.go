package transfer

import "errors"

// Service errors
var (
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrSelfTransfer     = errors.New("cannot transfer to self")
	ErrReceiverNotFound = errors.New("receiver not found")
	ErrTransferNotFound = errors.New("transfer not found")
)
