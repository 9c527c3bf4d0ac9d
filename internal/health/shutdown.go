package health

import "sync/atomic"

var notReady atomic.Bool

// SetReady flips the process-wide readiness gate. Shutdown hooks call
// SetReady(false) so load balancers drain traffic before connections close.
func SetReady(ready bool) {
	notReady.Store(!ready)
}

// IsReady reports whether the process accepts traffic.
func IsReady() bool {
	return !notReady.Load()
}
