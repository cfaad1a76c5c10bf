package domain

import "errors"

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// Person errors
var (
	ErrInvalidGender         = errors.New("gender must be male or female")
	ErrInvalidDate           = errors.New("date must be formatted as YYYY-MM-DD")
	ErrInvalidAttendanceType = errors.New("attendance type must be in or out")
	ErrInvalidRating         = errors.New("rating must be between 1 and 5")
	ErrInvalidAmount         = errors.New("amount must not be negative")
)
