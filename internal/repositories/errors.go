package repositories

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailTaken           = errors.New("email already taken")
	ErrTransferNotFound     = errors.New("transfer not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrDatabaseOperation    = errors.New("database operation failed")
)
