package renderer

import "errors"

// ErrNoBackend indicates drawing without a surface.
var ErrNoBackend = errors.New("renderer has no backend")
