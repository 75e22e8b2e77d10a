package movie

import "errors"

// Sentinel kinds for movie validation errors.
var (
	ErrInvalidMovie = errors.New("invalid movie")
)
