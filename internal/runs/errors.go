package runs

import "errors"

// ErrInvalidInput indicates a run that cannot be stored.
var ErrInvalidInput = errors.New("invalid input")
