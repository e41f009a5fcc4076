package core

import "errors"

// ErrNonFinite is returned when scene input contains NaN or infinite values
var ErrNonFinite = errors.New("value is NaN or infinite")
