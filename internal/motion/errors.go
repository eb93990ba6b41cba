package motion

import "errors"

// ErrRange reports a malformed interpolation range or an unknown extrapolation mode.
var ErrRange = errors.New("invalid interpolation range")
