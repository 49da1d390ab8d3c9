package repository

import "errors"

// Common repository errors
var (
	// ErrNotFound is returned when a record is not found
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when trying to create a user with an existing email.
	// The users.email unique index is the true enforcement point; a read-then-write
	// race always surfaces here.
	ErrDuplicateEmail = errors.New("user with this email already exists")

	// ErrDuplicateVideo is returned when trying to record a video with an existing video id
	ErrDuplicateVideo = errors.New("video with this id already exists")
)
