package quotes

import "errors"

var (
	// ErrMissingName is returned when the name field is empty after trimming
	ErrMissingName = errors.New("name is required")

	// ErrMissingEmail is returned when the email field is empty after trimming
	ErrMissingEmail = errors.New("email is required")

	// ErrInvalidEmail is returned when the email does not parse as an address
	ErrInvalidEmail = errors.New("email address is not valid")
)
