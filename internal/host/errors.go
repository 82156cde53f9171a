// internal/host/errors.go
package host

import "errors"

// The two failure kinds a host can produce. Both degrade navigation to a
// slower strategy; neither is ever shown to the user as an error.
var (
	// ErrCapability means the control cannot provide a required range or
	// position (not implemented, or lookup failed).
	ErrCapability = errors.New("host capability unavailable")

	// ErrCommunication means a cross-process call to the control failed.
	ErrCommunication = errors.New("host communication failure")
)

// IsRecoverable reports whether err is one of the host failure kinds that
// navigation recovers from by falling back.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrCapability) || errors.Is(err, ErrCommunication)
}
