// Package lifecycle holds shared process lifecycle constants.
package lifecycle

import "time"

// DefaultTimeout bounds graceful start/stop work (DB ping, HTTP shutdown).
const DefaultTimeout = 10 * time.Second
