// Package lifecycle holds shared bounds for start and stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds database pings and server shutdown.
const DefaultTimeout = 10 * time.Second
