package camera

import "errors"

// ErrDriverNotFound is returned by GetDriver when no registered
// driver matches the requested manufacturer/model and no "any"
// fallback exists for that manufacturer.
var ErrDriverNotFound = errors.New("camera: no driver registered for this manufacturer/model")
