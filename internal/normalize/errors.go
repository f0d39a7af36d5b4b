package normalize

import "errors"

var (
	// ErrInvalidArgument reports a malformed input, such as non-positive
	// dimensions or bounds.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotAnImage reports a path or URL whose extension does not match
	// a recognized image format.
	ErrNotAnImage = errors.New("not an image")
)
