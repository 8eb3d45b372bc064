package addrstore

import "errors"

// Each failing operation returns one of these joined with the underlying
// cause, so callers classify with errors.Is and still see the driver message.
var (
	ErrConfig          = errors.New("addrstore: malformed connection uri")
	ErrConnection      = errors.New("addrstore: cannot reach mongo deployment")
	ErrResolution      = errors.New("addrstore: database or collection unavailable")
	ErrPermission      = errors.New("addrstore: write permission check failed")
	ErrNotInitialized  = errors.New("addrstore: gateway not initialized")
	ErrInvalidArgument = errors.New("addrstore: invalid argument")
	ErrWrite           = errors.New("addrstore: insert rejected")
	ErrRead            = errors.New("addrstore: read failed")
	ErrRuntimeClosed   = errors.New("addrstore: runtime is shut down")
)
