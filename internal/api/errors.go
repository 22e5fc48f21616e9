package api

import "fmt"

// Error is the single failure type surfaced by the client. Status is the HTTP
// status code, zero for transport-level failures. Message is the server's
// detail/message text when present, else a generic fallback.
type Error struct {
	Op      string
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: http %d: %s", e.Op, e.Status, e.Message)
}

// System reports whether the failure is infrastructural (transport error,
// 5xx, throttling) as opposed to a business-rule rejection meant for the user.
func (e *Error) System() bool {
	return e.Status == 0 || e.Status >= 500 || e.Status == 429
}
