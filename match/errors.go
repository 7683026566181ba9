package match

import "errors"

// ErrMatcherReleased indicates a Match call after Release.
var ErrMatcherReleased = errors.New("matcher has been released")
