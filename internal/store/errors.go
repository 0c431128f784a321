package store

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrProtectedUser is returned when an operation targets the seeded admin
	// account, which can never be deleted, deactivated, or renamed.
	ErrProtectedUser = errors.New("the admin account cannot be modified")
	// ErrDuplicateUsername is returned when a username collides with an
	// existing one, ignoring case.
	ErrDuplicateUsername = errors.New("username already exists")
)
