package selkt

import "errors"

// Misuse of the engine panics with one of these, wrapped with detail, so a
// recovered value can still be matched with errors.Is.
var (
	ErrUnknownTier    = errors.New("selkt: unknown listener tier")
	ErrDestroyed      = errors.New("selkt: store used after Destroy")
	ErrWrongGoroutine = errors.New("selkt: runtime used outside its owning goroutine")
	ErrDrainLimit     = errors.New("selkt: drain pass limit exceeded")
)
